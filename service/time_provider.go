package service

import (
	"time"

	"backendlink/helpers"
	"backendlink/interfaces"
)

// timeProvider implements interfaces.TimeProvider. It returns the current time via the injected now func.
// Used by service.discoverer for cache-window checks and by service.revalidatingCache for entry TTLs;
// tests inject a fixed or advancing now. Built in cmd with time.Now().UTC.
type timeProvider struct {
	now func() time.Time
}

// NewTimeProvider creates a TimeProvider that returns time via the given now func. Panics on nil now.
//
// Parameter now — no-arg function returning current time (in prod — time.Now().UTC, in tests — fixed time).
//
// Returns: interfaces.TimeProvider (*timeProvider).
//
// Called from cmd when wiring the discoverer and caches.
func NewTimeProvider(now func() time.Time) interfaces.TimeProvider {
	return &timeProvider{now: helpers.NilPanic(now, "service.time_provider.go: now is required")}
}

// Now returns current time from the injected function (UTC in prod or fixed in tests).
//
// Returns: time.Time.
//
// Called from service.discoverer.Resolve and service.revalidatingCache.Fetch when comparing timestamps with TTLs.
func (t *timeProvider) Now() time.Time {
	return t.now()
}
