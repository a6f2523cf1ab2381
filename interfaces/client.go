package interfaces

import (
	"context"

	"backendlink/domain"
)

// Client is the authenticated HTTP client bound to the discovered backend
// address. It resolves the address lazily on first use, attaches the bearer token
// when one is set, and on transport-level failure invalidates discovery so the
// next call re-resolves. This is the only request entry point the rest of the
// application (screens, stores, login flow) is permitted to call.
//
// Implemented by service.resilientClient.
//
//go:generate moq -stub -out mock/client.go -pkg mock . Client
type Client interface {
	// Request performs one HTTP request against the bound backend address.
	// Parameters: ctx — caller context (carries the caller's own timeout semantics, not discovery's); method — HTTP method; path — path starting with "/"; body — JSON-marshalled unless nil or opts.RawBody is set; opts — optional per-request tuning (nil allowed).
	// Returns: (*Response, nil) on any 2xx; (nil, network_error) on transport failure (discovery is invalidated as a side effect, no inline retry); (nil, remote_error with status and body) on any non-2xx including 401; (nil, not_initialized) when the address cannot be resolved.
	// Called from application stores and the revalidating-cache fetch functions they build.
	Request(ctx context.Context, method string, path string, body any, opts *domain.RequestOptions) (*domain.Response, error)

	// SetAuthToken sets (non-empty) or clears (empty string) the bearer token
	// attached to subsequent requests. The client never clears the token itself —
	// on 401 it only signals the application via the OnUnauthorized hook.
	// Called from the application's login/logout flow.
	SetAuthToken(token string)
}
