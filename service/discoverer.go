package service

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"sync"
	"time"

	"backendlink/domain"
	"backendlink/helpers"
	"backendlink/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// storageOpTimeout bounds the KV delete issued by Invalidate, which has no caller context.
const storageOpTimeout = 2 * time.Second

// discoverer implements interfaces.Discoverer. It finds one working backend base
// address: a fresh in-memory DiscoveryResult is re-probed once and reused; else a
// persisted result inside the cache window is re-probed and promoted; else the
// candidate sequence is probed in fixed-size batches (full fan-out within a
// batch, batches strictly sequential, first alive candidate in generation order
// wins). The winner is written to memory and to the KV store under one key.
// Fields: source, prober, kv, timeProvider, cfg, logger; resolveMu serializes
// full discovery runs; under mu: result. Invalidate takes only mu, so it never
// blocks behind an in-flight discovery.
type discoverer struct {
	source       interfaces.CandidateSource
	prober       interfaces.Prober
	kv           interfaces.KVStore
	timeProvider interfaces.TimeProvider
	cfg          domain.DiscoveryConfig
	logger       log.Logger

	resolveMu sync.Mutex
	mu        sync.Mutex
	result    *domain.DiscoveryResult
}

// NewDiscoverer creates a Discoverer over the given candidate source, prober and KV store. Panics on nil dependencies or an invalid config.
//
// Parameters: source — ordered candidate sequence for full discovery; prober — single-candidate liveness check; kv — persisted storage for the DiscoveryResult (failures degrade to cache miss); timeProvider — clock for cache-window checks; cfg — validated discovery config (BatchSize, ProbeTimeout, CacheWindow, Fallback); logger — logger (storage failures and discovery progress are logged).
//
// Returns: interfaces.Discoverer (*discoverer).
//
// Called from cmd when wiring the client, once per process (the composition root owns the only instance; no module-level state).
func NewDiscoverer(
	source interfaces.CandidateSource,
	prober interfaces.Prober,
	kv interfaces.KVStore,
	timeProvider interfaces.TimeProvider,
	cfg domain.DiscoveryConfig,
	logger log.Logger,
) interfaces.Discoverer {
	if err := domain.ValidateDiscoveryConfig(cfg); err != nil {
		panic("service.discoverer.go: invalid discovery config: " + err.Error())
	}
	return &discoverer{
		source:       helpers.NilPanic(source, "service.discoverer.go: source is required"),
		prober:       helpers.NilPanic(prober, "service.discoverer.go: prober is required"),
		kv:           helpers.NilPanic(kv, "service.discoverer.go: kv is required"),
		timeProvider: helpers.NilPanic(timeProvider, "service.discoverer.go: timeProvider is required"),
		cfg:          cfg,
		logger:       log.With(helpers.NilPanic(logger, "service.discoverer.go: logger is required"), "component", "discoverer"),
	}
}

// Resolve returns a base address that currently reaches a live backend: memory cache first, then persisted cache, then full batched discovery, then the configured fallback policy.
//
// Parameters: ctx — caller context (cancel folds in-flight probes to false and aborts between batches); forceRefresh — skip both caches and run full discovery.
//
// Returns: (address, nil) with a generated candidate's address or, in lenient mode, the configured fallback; ("", backend_unreachable) on exhaustion in strict mode or when ctx is canceled mid-discovery. Storage failures never abort discovery — they are logged and treated as cache miss.
//
// Called from service.resilientClient.ensureReady on first use and after invalidation, and from cmd/discover. One call is one bounded attempt: wall-clock cost is at most ceil(candidates/BatchSize) * ProbeTimeout.
func (d *discoverer) Resolve(ctx context.Context, forceRefresh bool) (string, error) {
	if !forceRefresh {
		if addr, ok := d.fromMemory(ctx); ok {
			return addr, nil
		}
		if addr, ok := d.fromStorage(ctx); ok {
			return addr, nil
		}
	}
	return d.discover(ctx, forceRefresh)
}

// Invalidate clears the in-memory and persisted DiscoveryResult so the next Resolve performs full discovery. Takes only the state mutex, so it is safe (and non-blocking) concurrently with an in-flight Resolve; the KV delete failure is logged and ignored.
//
// Parameters and return: none.
//
// Called from service.resilientClient on transport-level request failure.
func (d *discoverer) Invalidate() {
	d.mu.Lock()
	d.result = nil
	d.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), storageOpTimeout)
	defer cancel()
	if err := d.kv.Remove(ctx, domain.DiscoveryResultKey); err != nil {
		_ = level.Warn(d.logger).Log("msg", "failed to remove persisted discovery result", "err", err)
	}
}

// fromMemory returns the cached address when the in-memory result is inside the cache window and still answers a single fresh probe. A stale result or a failed probe clears the memory cache (treated as absent).
//
// Parameter ctx — caller context for the verification probe.
//
// Returns: (address, true) on a live cached result; ("", false) otherwise.
//
// Called only from Resolve and discover.
func (d *discoverer) fromMemory(ctx context.Context) (string, bool) {
	d.mu.Lock()
	res := d.result
	d.mu.Unlock()
	if res == nil {
		return "", false
	}
	if d.timeProvider.Now().Sub(res.DiscoveredAt) >= d.cfg.CacheWindow {
		d.dropMemory(res.Address)
		return "", false
	}
	cand, err := candidateFromAddress(res.Address)
	if err != nil {
		d.dropMemory(res.Address)
		return "", false
	}
	if !d.prober.Probe(ctx, cand, d.cfg.ProbeTimeout) {
		d.dropMemory(res.Address)
		return "", false
	}
	return res.Address, true
}

// dropMemory clears the in-memory result if it still holds addr (a concurrent discovery may have replaced it with a fresh winner — that one is kept).
func (d *discoverer) dropMemory(addr string) {
	d.mu.Lock()
	if d.result != nil && d.result.Address == addr {
		d.result = nil
	}
	d.mu.Unlock()
}

// fromStorage loads the persisted DiscoveryResult; when present, parseable and inside the cache window it is re-probed once; on success it is promoted to memory and returned, on probe failure it is discarded from storage. Read errors, unparseable values and stale results are all treated as absent (stale and unparseable ones are also removed).
//
// Parameter ctx — caller context for the KV read and verification probe.
//
// Returns: (address, true) on a live persisted result; ("", false) otherwise.
//
// Called only from Resolve when the memory cache missed.
func (d *discoverer) fromStorage(ctx context.Context) (string, bool) {
	raw, ok, err := d.kv.Get(ctx, domain.DiscoveryResultKey)
	if err != nil {
		_ = level.Warn(d.logger).Log("msg", "failed to read persisted discovery result, treating as cache miss", "err", err)
		return "", false
	}
	if !ok {
		return "", false
	}
	var res domain.DiscoveryResult
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		_ = level.Warn(d.logger).Log("msg", "persisted discovery result is unparseable, discarding", "err", err)
		d.removePersisted(ctx)
		return "", false
	}
	if d.timeProvider.Now().Sub(res.DiscoveredAt) >= d.cfg.CacheWindow {
		d.removePersisted(ctx)
		return "", false
	}
	cand, err := candidateFromAddress(res.Address)
	if err != nil {
		d.removePersisted(ctx)
		return "", false
	}
	if !d.prober.Probe(ctx, cand, d.cfg.ProbeTimeout) {
		d.removePersisted(ctx)
		return "", false
	}
	d.mu.Lock()
	d.result = &res
	d.mu.Unlock()
	return res.Address, true
}

// discover runs full batched discovery under resolveMu: the candidate sequence is partitioned into BatchSize batches; within a batch every probe is issued before any result is awaited (true fan-out) and the batch fully settles before evaluation; the first alive candidate in generation order wins and later batches are never probed. The winner is stored in memory and KV. On exhaustion the fallback policy applies: strict fails, lenient returns the configured fallback without caching it (so the next Resolve attempts fresh discovery rather than being stuck on the fallback).
//
// Parameters: ctx — caller context, checked between batches; forceRefresh — when false, the memory cache is re-checked after acquiring resolveMu so a concurrent Resolve's fresh winner is reused instead of scanning again.
//
// Returns: (address, nil) or ("", backend_unreachable).
//
// Called only from Resolve.
func (d *discoverer) discover(ctx context.Context, forceRefresh bool) (string, error) {
	d.resolveMu.Lock()
	defer d.resolveMu.Unlock()

	if !forceRefresh {
		// A concurrent Resolve may have finished while we waited for the lock.
		if addr, ok := d.fromMemory(ctx); ok {
			return addr, nil
		}
	}

	candidates := d.source.Generate()
	for start := 0; start < len(candidates); start += d.cfg.BatchSize {
		if err := ctx.Err(); err != nil {
			return "", NewBackendUnreachableError("discovery canceled", err)
		}
		end := start + d.cfg.BatchSize
		if end > len(candidates) {
			end = len(candidates)
		}
		batch := candidates[start:end]
		alive := make([]bool, len(batch))
		var wg sync.WaitGroup
		for i, cand := range batch {
			wg.Add(1)
			go func(i int, cand domain.Candidate) {
				defer wg.Done()
				alive[i] = d.prober.Probe(ctx, cand, d.cfg.ProbeTimeout)
			}(i, cand)
		}
		wg.Wait()
		for i, ok := range alive {
			if ok {
				addr := batch[i].BaseURL()
				d.store(ctx, addr)
				_ = level.Info(d.logger).Log("msg", "backend discovered", "address", addr)
				return addr, nil
			}
		}
	}

	if d.cfg.Fallback.Mode == domain.FallbackLenient {
		_ = level.Warn(d.logger).Log("msg", "no backend reachable, using fallback address", "address", d.cfg.Fallback.Address)
		return d.cfg.Fallback.Address, nil
	}
	return "", NewBackendUnreachableError("no backend reachable", nil)
}

// store writes the winner to memory and to the KV store as one serialized JSON value. A storage write failure is logged only — discovery has already succeeded.
func (d *discoverer) store(ctx context.Context, addr string) {
	res := domain.DiscoveryResult{Address: addr, DiscoveredAt: d.timeProvider.Now()}
	d.mu.Lock()
	d.result = &res
	d.mu.Unlock()

	raw, err := json.Marshal(res)
	if err != nil {
		_ = level.Warn(d.logger).Log("msg", "failed to marshal discovery result", "err", err)
		return
	}
	if err := d.kv.Set(ctx, domain.DiscoveryResultKey, string(raw)); err != nil {
		_ = level.Warn(d.logger).Log("msg", "failed to persist discovery result", "err", err)
	}
}

// removePersisted deletes the persisted result, logging (not propagating) failures.
func (d *discoverer) removePersisted(ctx context.Context) {
	if err := d.kv.Remove(ctx, domain.DiscoveryResultKey); err != nil {
		_ = level.Warn(d.logger).Log("msg", "failed to remove persisted discovery result", "err", err)
	}
}

// candidateFromAddress parses a stored base address back into a Candidate for re-probing. The port defaults from the scheme (80/443) when the address has none.
//
// Parameter addr — base URL as stored in a DiscoveryResult, e.g. "http://192.168.0.42:8080".
//
// Returns: (Candidate, nil) or (zero, error) on an unparseable address or scheme other than http/https.
//
// Called from fromMemory and fromStorage.
func candidateFromAddress(addr string) (domain.Candidate, error) {
	u, err := url.Parse(addr)
	if err != nil {
		return domain.Candidate{}, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return domain.Candidate{}, &domain.DiscoveryConfigError{Field: "address", Reason: "scheme must be http|https"}
	}
	port := 80
	if u.Scheme == "https" {
		port = 443
	}
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return domain.Candidate{}, err
		}
	}
	return domain.Candidate{Scheme: u.Scheme, Host: u.Hostname(), Port: port}, nil
}
