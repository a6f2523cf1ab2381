package domain

import (
	"net/http"
	"strconv"
	"time"
)

// Candidate is a single address considered during one discovery run: scheme, host
// and port. Immutable value; generated fresh per run by the candidate source and
// never persisted individually.
type Candidate struct {
	Scheme string
	Host   string
	Port   int
}

// BaseURL returns the candidate as a base URL without trailing slash,
// e.g. "http://192.168.0.42:8080".
func (c Candidate) BaseURL() string {
	return c.Scheme + "://" + c.Host + ":" + strconv.Itoa(c.Port)
}

// DiscoveryResult is the winner of a discovery run: the backend base address and
// when it was discovered. Owned by the discoverer; the only externally visible
// part is Address. Persisted as one serialized JSON value under a single key so a
// torn write reads as absent, never partially applied.
type DiscoveryResult struct {
	Address      string    `json:"address"`
	DiscoveredAt time.Time `json:"discovered_at"`
}

// Response is the result of a successful ResilientClient request (any 2xx status).
// Body is fully read; Header is the response header as returned by the backend.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// RequestOptions tunes a single ResilientClient request. All fields are optional;
// nil options means JSON body, no extra headers.
// RawBody, when set, is sent as-is with ContentType (e.g. a multipart form the
// caller encoded); the body argument of Request is ignored in that case.
type RequestOptions struct {
	Header      http.Header
	RawBody     []byte
	ContentType string
}
