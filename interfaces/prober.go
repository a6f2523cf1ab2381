package interfaces

import (
	"context"
	"time"

	"backendlink/domain"
)

// Prober issues a single bounded-time "is this endpoint alive" check against a
// candidate address. No retries inside a probe (retry policy lives in the
// discoverer, not here); every failure — connection error, malformed response,
// non-200 status, timeout — folds into false. Never panics.
//
// Implemented by adapters/httpprobe.Prober. Called from service.discoverer when
// re-checking a cached result and during batched full discovery.
//
//go:generate moq -stub -out mock/prober.go -pkg mock . Prober
type Prober interface {
	// Probe checks whether candidate answers the liveness path with HTTP 200 within timeout.
	// Parameters: ctx — outer context (cancel aborts the probe early); candidate — address to check; timeout — per-probe deadline, independent of other probes in the batch.
	// Returns: true only on a well-formed 200 response within timeout; false on any error, any other status or timeout.
	// Called from service.discoverer.Resolve (single re-probe of a cached result and batch fan-out during full discovery).
	Probe(ctx context.Context, candidate domain.Candidate, timeout time.Duration) bool
}
