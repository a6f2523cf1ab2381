package interfaces

import (
	"context"

	"backendlink/domain"
)

// FetchFunc loads the fresh value for one cache key, typically by calling
// Client.Request and decoding the body. Its error type is the caller's own and
// passes through the cache unchanged.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// FetchOptions tunes one RevalidatingCache.Fetch call.
type FetchOptions struct {
	// ForceRefresh skips the freshness check and fetches now. When a previous
	// value exists the refresh runs behind it (Refreshing), never blanking it.
	ForceRefresh bool
}

// RevalidatingCache holds one typed value per key with a last-fetch timestamp and
// in-flight state, serving the cached value immediately while a refresh happens
// in the background once the value is older than the store TTL
// (stale-while-revalidate). One instance per resource type; keys distinguish
// consumers (e.g. one key per driver id for documents).
//
// Implemented by service.revalidatingCache.
//
//go:generate moq -stub -out mock/revalidating_cache.go -pkg mock . RevalidatingCache
type RevalidatingCache[T any] interface {
	// Fetch returns the entry snapshot for key, fetching or refreshing as needed.
	// No entry (or ForceRefresh without a previous value): blocking fetch with Loading=true for observers; fresh entry: cached snapshot, no network; stale entry: cached snapshot plus exactly one background refresh — a concurrent Fetch for the same stale key never starts a second one.
	// Returns: (snapshot, nil) when the snapshot is servable (possibly stale); (snapshot, fetchFn's error) when a blocking fetch failed — the previous value, if any, is left intact.
	// Called from application stores on screen render.
	Fetch(ctx context.Context, key string, fetchFn FetchFunc[T], opts FetchOptions) (domain.Snapshot[T], error)

	// Subscribe registers fn to receive a snapshot after every mutation of the
	// entry for key (flags flipped, value stored, refresh failed). Returns a
	// cancel func; after cancel returns no new notifications are scheduled for fn.
	Subscribe(key string, fn func(domain.Snapshot[T])) (cancel func())

	// ClearCache drops the entries for the given keys, or all entries when none
	// are given (e.g. on logout). Subsequent Fetch calls behave as first-time
	// fetches.
	ClearCache(keys ...string)
}
