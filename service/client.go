package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"backendlink/domain"
	"backendlink/helpers"
	"backendlink/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// sessionState is the per-process client session state: uninitialized (no backend
// address bound), resolving (discovery in flight for this call) and ready
// (address bound). A transport-level failure moves ready back to uninitialized;
// a 401 does not — the address is still valid, only the credential is stale.
type sessionState string

const (
	sessionUninitialized sessionState = "uninitialized"
	sessionResolving     sessionState = "resolving"
	sessionReady         sessionState = "ready"
)

// ClientOption configures optional parts of the resilient client.
type ClientOption func(*resilientClient)

// WithRequestProcessors sets the processor chain run on every outgoing request
// after the bearer credential is attached (e.g. request logging, extra headers).
func WithRequestProcessors(processors ...interfaces.RequestProcessor) ClientOption {
	return func(c *resilientClient) {
		c.processors = helpers.NewRequestProcessorChain(processors...)
	}
}

// WithOnUnauthorized sets the hook fired when the backend answers 401. The hook
// is the signal for the application's auth logic to clear its session; the
// client itself never clears the token and never re-discovers on 401.
func WithOnUnauthorized(fn func()) ClientOption {
	return func(c *resilientClient) {
		c.onUnauthorized = fn
	}
}

// resilientClient implements interfaces.Client. It binds the discovered backend
// base address on first use, attaches the bearer token to every request when one
// is set, and keeps 401 handling and transport-failure handling as two separate
// paths: 401 → surface remote_error + fire onUnauthorized, keep the session
// ready; transport failure → Discoverer.Invalidate, session back to
// uninitialized (the next request re-resolves), surface network_error with no
// inline retry so an outage is never masked as latency.
// Fields: discoverer, httpClient, logger, processors, onUnauthorized; under mu:
// base, token, state.
type resilientClient struct {
	discoverer     interfaces.Discoverer
	httpClient     *http.Client
	logger         log.Logger
	processors     helpers.RequestProcessorChain
	onUnauthorized func()

	mu    sync.Mutex
	base  string
	token string
	state sessionState
}

// NewResilientClient creates the authenticated HTTP client over the given discoverer. Panics on nil discoverer, httpClient or logger.
//
// Parameters: discoverer — address source (Resolve on first use, Invalidate on transport failure); httpClient — underlying *http.Client (the caller's timeout semantics live here and on the request context, not on discovery); logger — logger; opts — optional processors and 401 hook.
//
// Returns: interfaces.Client (*resilientClient) in the uninitialized state.
//
// Called from cmd when wiring the application, once per process.
func NewResilientClient(
	discoverer interfaces.Discoverer,
	httpClient *http.Client,
	logger log.Logger,
	opts ...ClientOption,
) interfaces.Client {
	c := &resilientClient{
		discoverer: helpers.NilPanic(discoverer, "service.client.go: discoverer is required"),
		httpClient: helpers.NilPanic(httpClient, "service.client.go: httpClient is required"),
		logger:     log.With(helpers.NilPanic(logger, "service.client.go: logger is required"), "component", "resilient_client"),
		state:      sessionUninitialized,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetAuthToken sets (non-empty) or clears (empty) the bearer token attached to subsequent requests. Requests never attach a token when none is set, so unauthenticated calls (e.g. login) pass through unchanged.
//
// Parameter token — bearer token from the application's login flow, or "" on logout / after a 401.
//
// Called from the application's auth logic; never from the client itself.
func (c *resilientClient) SetAuthToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Request performs one HTTP request against the bound backend address, resolving it first when the session is uninitialized.
//
// Parameters: ctx — caller context (carries the caller's own timeout, independent of discovery's probe timeouts); method — HTTP method; path — path starting with "/"; body — JSON-marshalled when non-nil, unless opts.RawBody is set (opaque bytes, e.g. multipart, sent with opts.ContentType); opts — optional extra headers and raw body (nil allowed).
//
// Returns: (*domain.Response, nil) on any 2xx; (nil, not_initialized) when discovery fails; (nil, bad_parameter) on an unmarshallable body or malformed request; (nil, network_error) on transport failure — discovery is invalidated and the session reset so the next call re-resolves, the failing call is not retried; (nil, remote_error with Status and Body) on any non-2xx, including 401 which additionally fires the onUnauthorized hook. Errors are never swallowed.
//
// Called from application stores and revalidating-cache fetch functions.
func (c *resilientClient) Request(
	ctx context.Context,
	method string,
	path string,
	body any,
	opts *domain.RequestOptions,
) (*domain.Response, error) {
	base, err := c.ensureReady(ctx)
	if err != nil {
		return nil, NewNotInitializedError("backend address is not resolved", err)
	}

	var reader io.Reader
	contentType := ""
	switch {
	case opts != nil && opts.RawBody != nil:
		reader = bytes.NewReader(opts.RawBody)
		contentType = opts.ContentType
	case body != nil:
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, NewBadParameterError("request body is not JSON-marshallable", err)
		}
		reader = bytes.NewReader(raw)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, base+path, reader)
	if err != nil {
		return nil, NewBadParameterError("malformed request", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if opts != nil {
		for k, vs := range opts.Header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
	}

	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if err := c.processors.Process(req); err != nil {
		return nil, NewInternalServerError("request processor failed", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.onTransportFailure(method, path, err)
		return nil, NewNetworkError("request transport failure", err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		// Connection lost mid-body is a transport failure, not a backend answer.
		c.onTransportFailure(method, path, err)
		return nil, NewNetworkError("response read failure", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		_ = level.Info(c.logger).Log("msg", "backend returned 401, signaling auth expiry", "method", method, "path", path)
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, NewRemoteError(resp.StatusCode, respBody)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, NewRemoteError(resp.StatusCode, respBody)
	}
	return &domain.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

// ensureReady returns the bound base address, resolving it via the discoverer when the session is uninitialized (state uninitialized → resolving → ready; back to uninitialized on resolve failure).
//
// Parameter ctx — caller context passed to Resolve(false).
//
// Returns: (base address, nil) or ("", resolve error).
//
// Called only from Request.
func (c *resilientClient) ensureReady(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.state == sessionReady {
		base := c.base
		c.mu.Unlock()
		return base, nil
	}
	c.state = sessionResolving
	c.mu.Unlock()

	addr, err := c.discoverer.Resolve(ctx, false)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = sessionUninitialized
		return "", err
	}
	c.base = addr
	c.state = sessionReady
	return addr, nil
}

// onTransportFailure resets the session to uninitialized and invalidates the discoverer's cache so the next Request performs a fresh Resolve. The failing request itself is surfaced to its caller (not retried here).
//
// Parameters: method, path — for the log line; err — the transport error.
//
// Called only from Request on connection-layer failures (never on HTTP error statuses).
func (c *resilientClient) onTransportFailure(method, path string, err error) {
	_ = level.Warn(c.logger).Log("msg", "transport failure, invalidating discovered address", "method", method, "path", path, "err", err)
	c.mu.Lock()
	c.base = ""
	c.state = sessionUninitialized
	c.mu.Unlock()
	c.discoverer.Invalidate()
}
