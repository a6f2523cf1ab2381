package service

import (
	"context"
	"sync"
	"time"

	"backendlink/domain"
	"backendlink/helpers"
	"backendlink/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// CacheOption configures optional parts of a revalidating cache.
type CacheOption[T any] func(*revalidatingCache[T])

// WithOnStore sets a hook invoked after every successful fetch with the key and
// the freshly stored value. Applications use it to recompute derived values
// (e.g. "days until nearest expiring document") deterministically from the full
// fresh value, never from a partially updated cache.
func WithOnStore[T any](fn func(key string, value T)) CacheOption[T] {
	return func(c *revalidatingCache[T]) {
		c.onStore = fn
	}
}

// entry is one cached resource: the typed value, its last-fetch timestamp and
// the in-flight flags. The flags act as the mutex substitute for the pending
// operation: set under the store lock before the blocking fetch, cleared only in
// that fetch's completion path, never speculatively.
type entry[T any] struct {
	value      T
	hasValue   bool
	fetchedAt  time.Time
	loading    bool
	refreshing bool
	err        error
}

// revalidatingCache implements interfaces.RevalidatingCache. One instance per
// resource type; keys distinguish consumers. A fresh entry is served with no
// network call; a stale entry is served immediately while exactly one background
// refresh runs behind it; a failed refresh leaves the previous value intact —
// staleness is preferred over data loss.
// Fields: timeProvider, ttl, logger, onStore; under mu: entries, subs, nextSubID.
type revalidatingCache[T any] struct {
	timeProvider interfaces.TimeProvider
	ttl          time.Duration
	logger       log.Logger
	onStore      func(key string, value T)

	mu        sync.Mutex
	entries   map[string]*entry[T]
	subs      map[string]map[int]func(domain.Snapshot[T])
	nextSubID int
}

// NewRevalidatingCache creates a stale-while-revalidate cache with the given TTL. Panics on nil timeProvider or logger, or non-positive ttl.
//
// Parameters: timeProvider — clock for staleness checks; ttl — age after which an entry is stale and served with a background refresh; logger — logger (refresh failures are logged); opts — optional on-store hook.
//
// Returns: interfaces.RevalidatingCache[T] (*revalidatingCache[T]) with no entries.
//
// Called from application stores, one instance per cached resource type (documents, assignments, etc.).
func NewRevalidatingCache[T any](
	timeProvider interfaces.TimeProvider,
	ttl time.Duration,
	logger log.Logger,
	opts ...CacheOption[T],
) interfaces.RevalidatingCache[T] {
	if ttl <= 0 {
		panic("service.revalidating_cache.go: ttl must be positive")
	}
	c := &revalidatingCache[T]{
		timeProvider: helpers.NilPanic(timeProvider, "service.revalidating_cache.go: timeProvider is required"),
		ttl:          ttl,
		logger:       log.With(helpers.NilPanic(logger, "service.revalidating_cache.go: logger is required"), "component", "revalidating_cache"),
		entries:      make(map[string]*entry[T]),
		subs:         make(map[string]map[int]func(domain.Snapshot[T])),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the entry snapshot for key, fetching or refreshing as the entry state requires.
//
// Parameters: ctx — caller context for a blocking fetch (a background refresh runs detached from it, so screen-scoped cancellation does not kill the refresh); key — resource key (e.g. "docs-42"); fetchFn — loader for the fresh value, its error type passes through unchanged; opts — ForceRefresh to skip the freshness check.
//
// Returns: no entry or no previous value — blocking fetch with Loading=true for observers, (snapshot, fetchFn error); fresh entry — (cached snapshot, nil) with no network call; stale entry — (cached snapshot, nil) plus exactly one background refresh (the refreshing flag dedupes concurrent callers); forced refresh behind an existing value — blocking fetch with Refreshing=true so the visible value is never blanked. Any fetch failure leaves the previous value intact.
//
// Called from application stores on screen render.
func (c *revalidatingCache[T]) Fetch(
	ctx context.Context,
	key string,
	fetchFn interfaces.FetchFunc[T],
	opts interfaces.FetchOptions,
) (domain.Snapshot[T], error) {
	if fetchFn == nil {
		return domain.Snapshot[T]{}, NewBadParameterError("fetchFn is required", nil)
	}

	c.mu.Lock()
	e := c.entries[key]
	if e == nil {
		e = &entry[T]{}
		c.entries[key] = e
	}

	if !e.hasValue {
		if e.loading {
			// First-time fetch already in flight; do not start a second one.
			snap := snapshotLocked(e)
			c.mu.Unlock()
			return snap, nil
		}
		e.loading = true
		c.mu.Unlock()
		c.notify(key)
		return c.runFetch(ctx, key, fetchFn)
	}

	if opts.ForceRefresh {
		if e.loading || e.refreshing {
			snap := snapshotLocked(e)
			c.mu.Unlock()
			return snap, nil
		}
		e.refreshing = true
		c.mu.Unlock()
		c.notify(key)
		return c.runFetch(ctx, key, fetchFn)
	}

	if c.timeProvider.Now().Sub(e.fetchedAt) < c.ttl {
		snap := snapshotLocked(e)
		c.mu.Unlock()
		return snap, nil
	}

	// Stale: serve the cached value immediately and trigger at most one
	// background refresh behind it.
	started := false
	if !e.loading && !e.refreshing {
		e.refreshing = true
		started = true
	}
	snap := snapshotLocked(e)
	c.mu.Unlock()
	if started {
		c.notify(key)
		go func() {
			_, _ = c.runFetch(context.Background(), key, fetchFn)
		}()
	}
	return snap, nil
}

// Subscribe registers fn for snapshots of key's entry after every mutation. Returns a cancel func; after cancel returns no new notifications are scheduled for fn (one already in flight may still be delivered).
//
// Parameters: key — resource key; fn — callback receiving the snapshot (called outside the store lock; it may call Fetch).
//
// Returns: cancel func, safe to call more than once.
//
// Called from application stores that render reactively.
func (c *revalidatingCache[T]) Subscribe(key string, fn func(domain.Snapshot[T])) func() {
	fn = helpers.NilPanic(fn, "service.revalidating_cache.go: fn is required")
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	if c.subs[key] == nil {
		c.subs[key] = make(map[int]func(domain.Snapshot[T]))
	}
	c.subs[key][id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		if m := c.subs[key]; m != nil {
			delete(m, id)
			if len(m) == 0 {
				delete(c.subs, key)
			}
		}
		c.mu.Unlock()
	}
}

// ClearCache drops the entries for the given keys, or all entries when none are given (e.g. on logout). Subscribers of dropped keys receive a zero snapshot; subsequent Fetch calls behave as first-time fetches. A fetch in flight for a dropped key discards its result on completion.
//
// Parameter keys — keys to drop; empty means all.
//
// Called from the application's logout flow and pull-to-refresh reset paths.
func (c *revalidatingCache[T]) ClearCache(keys ...string) {
	c.mu.Lock()
	if len(keys) == 0 {
		keys = make([]string, 0, len(c.entries))
		for k := range c.entries {
			keys = append(keys, k)
		}
	}
	for _, k := range keys {
		delete(c.entries, k)
	}
	c.mu.Unlock()
	for _, k := range keys {
		c.notify(k)
	}
}

// runFetch executes fetchFn and folds the result into key's entry: on success the value, fetchedAt and cleared flags (then the on-store hook); on failure the previous value is kept, flags cleared and the error recorded on the entry. If the entry was cleared while the fetch was in flight the result is discarded.
//
// Parameters: ctx — fetch context; key — resource key; fetchFn — loader.
//
// Returns: (snapshot after the update, fetchFn's error or nil).
//
// Called from Fetch, either inline (blocking first fetch / forced refresh) or in the background goroutine (stale revalidation).
func (c *revalidatingCache[T]) runFetch(ctx context.Context, key string, fetchFn interfaces.FetchFunc[T]) (domain.Snapshot[T], error) {
	value, err := fetchFn(ctx)

	c.mu.Lock()
	e := c.entries[key]
	if e == nil {
		// ClearCache ran while the fetch was in flight; drop the result.
		c.mu.Unlock()
		return domain.Snapshot[T]{}, err
	}
	if err != nil {
		e.loading = false
		e.refreshing = false
		e.err = err
		snap := snapshotLocked(e)
		c.mu.Unlock()
		_ = level.Warn(c.logger).Log("msg", "cache fetch failed, keeping previous value", "key", key, "err", err)
		c.notify(key)
		return snap, err
	}
	e.value = value
	e.hasValue = true
	e.fetchedAt = c.timeProvider.Now()
	e.loading = false
	e.refreshing = false
	e.err = nil
	snap := snapshotLocked(e)
	onStore := c.onStore
	c.mu.Unlock()
	if onStore != nil {
		onStore(key, value)
	}
	c.notify(key)
	return snap, nil
}

// notify delivers the current snapshot of key (zero snapshot when the entry is gone) to all subscribers of key. Callbacks run outside the store lock.
func (c *revalidatingCache[T]) notify(key string) {
	c.mu.Lock()
	var snap domain.Snapshot[T]
	if e := c.entries[key]; e != nil {
		snap = snapshotLocked(e)
	}
	fns := make([]func(domain.Snapshot[T]), 0, len(c.subs[key]))
	for _, fn := range c.subs[key] {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}

// snapshotLocked copies the entry into an externally safe Snapshot. Caller must hold c.mu.
func snapshotLocked[T any](e *entry[T]) domain.Snapshot[T] {
	return domain.Snapshot[T]{
		Value:      e.value,
		HasValue:   e.hasValue,
		FetchedAt:  e.fetchedAt,
		Loading:    e.loading,
		Refreshing: e.refreshing,
		Err:        e.err,
	}
}
