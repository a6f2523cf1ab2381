package interfaces

import "time"

// TimeProvider supplies the current time for discovery cache-window checks and
// cache-entry TTL checks. Injected so tests can use a fixed clock instead of
// time.Now().
//
// Used by service.discoverer to decide whether a cached DiscoveryResult is still
// inside the cache window and by service.revalidatingCache to decide whether an
// entry is stale. Constructed in cmd via NewTimeProvider(func() time.Time { return time.Now().UTC() }).
//
//go:generate moq -stub -out mock/time_provider.go -pkg mock . TimeProvider
type TimeProvider interface {
	// Now returns current time (UTC in prod; in tests — fixed time for deterministic TTL checks).
	// Parameters: none.
	// Returns: time.Time — "now" for comparison with discovered_at / fetched_at timestamps.
	// Called from service.discoverer.Resolve and service.revalidatingCache.Fetch.
	Now() time.Time
}
