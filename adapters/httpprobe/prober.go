// Package httpprobe implements the liveness prober over plain HTTP.
package httpprobe

import (
	"context"
	"io"
	"net/http"
	"time"

	"backendlink/domain"
	"backendlink/helpers"
	"backendlink/interfaces"
)

// prober implements interfaces.Prober with a single GET against the candidate's
// liveness path. Used by service.discoverer for re-checking cached results and
// for batch fan-out during full discovery. Holds the liveness path and http.Client.
type prober struct {
	livenessPath string
	client       *http.Client
}

// NewProber creates an interfaces.Prober that GETs candidate.BaseURL()+livenessPath. Panics on empty livenessPath or nil client.
//
// Parameters: livenessPath — well-known liveness path starting with "/" (e.g. "/health"); client — HTTP client; its own Timeout should be zero or larger than the per-probe timeout, since each probe carries its own context deadline.
//
// Returns: interfaces.Prober (*prober).
//
// Called from cmd when wiring the discoverer.
func NewProber(livenessPath string, client *http.Client) interfaces.Prober {
	return &prober{
		livenessPath: helpers.StrPanic(livenessPath, "httpprobe.prober.go: livenessPath is required"),
		client:       helpers.NilPanic(client, "httpprobe.prober.go: http client is required"),
	}
}

// Probe performs GET {candidate}/{livenessPath} with its own timeout. Success is exactly HTTP 200 within the timeout; any request error, any other status or a timeout yields false. No retries — retry policy lives in the discoverer, not here.
//
// Parameters: ctx — outer context (cancel aborts early); candidate — address to check; timeout — per-probe deadline, independent of other probes in the batch.
//
// Returns: true on 200, false otherwise. Never returns an error and never panics.
//
// Called from service.discoverer.Resolve.
func (p *prober) Probe(ctx context.Context, candidate domain.Candidate, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	reqURL := candidate.BaseURL() + p.livenessPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}
