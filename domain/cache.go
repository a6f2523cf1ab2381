package domain

import "time"

// DiscoveryResultKey is the single well-known PersistentKV key the discoverer
// stores its serialized DiscoveryResult under. One key, one JSON value: an
// interrupted write reads back as fully present or absent, never partial.
const DiscoveryResultKey = "backendlink:discovery_result"

// Snapshot is the externally observable state of one revalidating-cache entry.
// HasValue is false until the first successful fetch; Loading is true only while
// a first-time (or value-less) fetch is in flight; Refreshing is true while a
// background refresh runs behind an already visible value; Err is the error of
// the most recent failed fetch for this key, cleared by the next success.
type Snapshot[T any] struct {
	Value      T
	HasValue   bool
	FetchedAt  time.Time
	Loading    bool
	Refreshing bool
	Err        error
}
