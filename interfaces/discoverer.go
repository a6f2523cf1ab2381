package interfaces

import "context"

// Discoverer finds one working backend base address, applying a memory cache, a
// persisted cache (KVStore) and batched candidate probing. At most one
// DiscoveryResult is current at any time; writing a new one atomically supersedes
// the old one.
//
// Implemented by service.discoverer. Called from service.resilientClient on first
// use (Resolve) and on transport-level failure (Invalidate), and from cmd/discover.
//
//go:generate moq -stub -out mock/discoverer.go -pkg mock . Discoverer
type Discoverer interface {
	// Resolve returns a base address that currently reaches a live backend.
	// Parameters: ctx — caller context; forceRefresh — when true, both caches are skipped and full discovery runs.
	// Returns: (address, nil) — a generated candidate's address or, in lenient fallback mode, the configured fallback; ("", backend_unreachable) when every candidate is dead in strict mode. Storage failures are absorbed as cache miss and never surfaced here.
	// Called from service.resilientClient.ensureReady and cmd/discover. One call is one bounded attempt; it is never retried silently in a loop.
	Resolve(ctx context.Context, forceRefresh bool) (string, error)

	// Invalidate clears the in-memory and persisted DiscoveryResult so the next
	// Resolve performs full discovery. Safe to call concurrently with an in-flight
	// Resolve; storage delete failures are logged and ignored.
	// Called from service.resilientClient on transport-level request failure.
	Invalidate()
}
