package service

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backendlink/domain"
	"backendlink/helpers"
	"backendlink/interfaces"
	"backendlink/interfaces/mock"
)

// discovererFixture wires a discoverer over mocks with a controllable clock.
// now is mutable so tests can advance time past the cache window.
type discovererFixture struct {
	source *mock.CandidateSourceMock
	prober *mock.ProberMock
	kv     *mock.KVStoreMock
	now    time.Time
	mu     sync.Mutex
}

func (f *discovererFixture) advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func (f *discovererFixture) currentNow() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// newDiscovererFixture builds a discoverer over three candidates with BatchSize 2:
// batch 1 is [10.0.0.1, 10.0.0.2], batch 2 is [10.0.0.3]. aliveHosts lists the
// hosts whose probes answer.
func newDiscovererFixture(t *testing.T, cfg domain.DiscoveryConfig, aliveHosts ...string) (*discovererFixture, interfaces.Discoverer) {
	t.Helper()

	alive := make(map[string]bool, len(aliveHosts))
	for _, h := range aliveHosts {
		alive[h] = true
	}

	f := &discovererFixture{
		source: &mock.CandidateSourceMock{
			GenerateFunc: func() []domain.Candidate {
				return []domain.Candidate{
					{Scheme: "http", Host: "10.0.0.1", Port: 8080},
					{Scheme: "http", Host: "10.0.0.2", Port: 8080},
					{Scheme: "http", Host: "10.0.0.3", Port: 8080},
				}
			},
		},
		prober: &mock.ProberMock{
			ProbeFunc: func(ctx context.Context, candidate domain.Candidate, timeout time.Duration) bool {
				return alive[candidate.Host]
			},
		},
		kv:  &mock.KVStoreMock{},
		now: helpers.TestNow(),
	}

	d := NewDiscoverer(
		f.source,
		f.prober,
		f.kv,
		&mock.TimeProviderMock{NowFunc: f.currentNow},
		cfg,
		log.NewNopLogger(),
	)
	return f, d
}

func batchedConfig() domain.DiscoveryConfig {
	return domain.DiscoveryConfig{
		SubnetPrefixes: []string{"10.0.0"},
		HostOctets:     []int{1, 2, 3},
		Port:           8080,
		Scheme:         "http",
		LivenessPath:   "/health",
		BatchSize:      2,
		ProbeTimeout:   200 * time.Millisecond,
		CacheWindow:    5 * time.Minute,
		Fallback:       domain.FallbackConfig{Mode: domain.FallbackStrict},
	}
}

func TestNewDiscoverer_PanicsOnNilDependencies(t *testing.T) {
	cfg := batchedConfig()
	source := &mock.CandidateSourceMock{}
	prober := &mock.ProberMock{}
	kv := &mock.KVStoreMock{}
	tp := &mock.TimeProviderMock{}
	logger := log.NewNopLogger()

	t.Run("source", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.discoverer.go: source is required", func() {
			NewDiscoverer(nil, prober, kv, tp, cfg, logger)
		})
	})
	t.Run("prober", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.discoverer.go: prober is required", func() {
			NewDiscoverer(source, nil, kv, tp, cfg, logger)
		})
	})
	t.Run("kv", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.discoverer.go: kv is required", func() {
			NewDiscoverer(source, prober, nil, tp, cfg, logger)
		})
	})
	t.Run("timeProvider", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.discoverer.go: timeProvider is required", func() {
			NewDiscoverer(source, prober, kv, nil, cfg, logger)
		})
	})
	t.Run("logger", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.discoverer.go: logger is required", func() {
			NewDiscoverer(source, prober, kv, tp, cfg, nil)
		})
	})
	t.Run("invalid_config", func(t *testing.T) {
		bad := cfg
		bad.BatchSize = 0
		assert.Panics(t, func() {
			NewDiscoverer(source, prober, kv, tp, bad, logger)
		})
	})
}

func TestDiscoverer_Resolve_FirstAliveInSecondBatch(t *testing.T) {
	f, d := newDiscovererFixture(t, batchedConfig(), "10.0.0.3")

	addr, err := d.Resolve(context.Background(), false)

	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.3:8080", addr)
	// all of batch 1 plus the single candidate of batch 2
	assert.Len(t, f.prober.ProbeCalls(), 3)

	// winner is persisted under the fixed key
	setCalls := f.kv.SetCalls()
	require.Len(t, setCalls, 1)
	assert.Equal(t, domain.DiscoveryResultKey, setCalls[0].Key)
	var stored domain.DiscoveryResult
	require.NoError(t, json.Unmarshal([]byte(setCalls[0].Value), &stored))
	assert.Equal(t, "http://10.0.0.3:8080", stored.Address)
	assert.Equal(t, helpers.TestNow(), stored.DiscoveredAt)
}

func TestDiscoverer_Resolve_WinnerInFirstBatchStopsScan(t *testing.T) {
	// only the second candidate of batch 1 is alive: it wins and batch 2 is
	// never probed
	f, d := newDiscovererFixture(t, batchedConfig(), "10.0.0.2")

	addr, err := d.Resolve(context.Background(), false)

	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.2:8080", addr)
	assert.Len(t, f.prober.ProbeCalls(), 2)
	for _, call := range f.prober.ProbeCalls() {
		assert.NotEqual(t, "10.0.0.3", call.Candidate.Host)
	}
}

func TestDiscoverer_Resolve_GenerationOrderWinsWithinBatch(t *testing.T) {
	// both batch-1 candidates alive: the earlier one wins, batch 2 is never probed
	f, d := newDiscovererFixture(t, batchedConfig(), "10.0.0.1", "10.0.0.2")

	addr, err := d.Resolve(context.Background(), false)

	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.1:8080", addr)
	assert.Len(t, f.prober.ProbeCalls(), 2)
	for _, call := range f.prober.ProbeCalls() {
		assert.NotEqual(t, "10.0.0.3", call.Candidate.Host)
	}
}

func TestDiscoverer_Resolve_ConcurrencyBoundedByBatchSize(t *testing.T) {
	f, d := newDiscovererFixture(t, batchedConfig())

	var inFlight, peak int32
	f.prober.ProbeFunc = func(ctx context.Context, candidate domain.Candidate, timeout time.Duration) bool {
		cur := atomic.AddInt32(&inFlight, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if cur <= old || atomic.CompareAndSwapInt32(&peak, old, cur) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return false
	}

	_, err := d.Resolve(context.Background(), false)

	assert.Error(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
	assert.Len(t, f.prober.ProbeCalls(), 3)
}

func TestDiscoverer_Resolve_MemoryCacheReusedWithSingleProbe(t *testing.T) {
	f, d := newDiscovererFixture(t, batchedConfig(), "10.0.0.3")

	first, err := d.Resolve(context.Background(), false)
	require.NoError(t, err)
	probesAfterDiscovery := len(f.prober.ProbeCalls())

	second, err := d.Resolve(context.Background(), false)

	require.NoError(t, err)
	assert.Equal(t, first, second)
	// one verification probe, no second scan
	assert.Len(t, f.prober.ProbeCalls(), probesAfterDiscovery+1)
	assert.Len(t, f.source.GenerateCalls(), 1)
	assert.Len(t, f.kv.SetCalls(), 1)
}

func TestDiscoverer_Resolve_StaleMemoryTriggersFreshDiscovery(t *testing.T) {
	f, d := newDiscovererFixture(t, batchedConfig(), "10.0.0.3")

	_, err := d.Resolve(context.Background(), false)
	require.NoError(t, err)

	f.advance(20 * time.Minute)
	// persisted copy is equally stale; Get stub returns cache miss here
	addr, err := d.Resolve(context.Background(), false)

	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.3:8080", addr)
	assert.Len(t, f.source.GenerateCalls(), 2)
}

func TestDiscoverer_Resolve_MemoryProbeFailureFallsThrough(t *testing.T) {
	f, d := newDiscovererFixture(t, batchedConfig(), "10.0.0.3")

	_, err := d.Resolve(context.Background(), false)
	require.NoError(t, err)

	// cached backend went away, another one appeared
	f.prober.ProbeFunc = func(ctx context.Context, candidate domain.Candidate, timeout time.Duration) bool {
		return candidate.Host == "10.0.0.2"
	}
	addr, err := d.Resolve(context.Background(), false)

	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.2:8080", addr)
	assert.Len(t, f.source.GenerateCalls(), 2)
}

func TestDiscoverer_Resolve_ForceRefreshSkipsCaches(t *testing.T) {
	f, d := newDiscovererFixture(t, batchedConfig(), "10.0.0.3")

	_, err := d.Resolve(context.Background(), false)
	require.NoError(t, err)

	_, err = d.Resolve(context.Background(), true)

	require.NoError(t, err)
	assert.Len(t, f.source.GenerateCalls(), 2)
	// the first resolve read storage once on its cache miss; force refresh adds no read
	assert.Len(t, f.kv.GetCalls(), 1)
}

func TestDiscoverer_Resolve_PersistedResultPromoted(t *testing.T) {
	f, d := newDiscovererFixture(t, batchedConfig(), "10.0.0.2")

	raw, err := json.Marshal(domain.DiscoveryResult{
		Address:      "http://10.0.0.2:8080",
		DiscoveredAt: helpers.TestNow().Add(-time.Minute),
	})
	require.NoError(t, err)
	f.kv.GetFunc = func(ctx context.Context, key string) (string, bool, error) {
		return string(raw), true, nil
	}

	addr, err := d.Resolve(context.Background(), false)

	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.2:8080", addr)
	assert.Empty(t, f.source.GenerateCalls())
	assert.Len(t, f.prober.ProbeCalls(), 1)

	// promoted to memory: the next resolve never reads storage again
	_, err = d.Resolve(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, f.kv.GetCalls(), 1)
}

func TestDiscoverer_Resolve_StalePersistedResultDiscarded(t *testing.T) {
	f, d := newDiscovererFixture(t, batchedConfig(), "10.0.0.2")

	raw, err := json.Marshal(domain.DiscoveryResult{
		Address:      "http://10.0.0.2:8080",
		DiscoveredAt: helpers.TestNow().Add(-time.Hour),
	})
	require.NoError(t, err)
	f.kv.GetFunc = func(ctx context.Context, key string) (string, bool, error) {
		return string(raw), true, nil
	}

	addr, err := d.Resolve(context.Background(), false)

	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.2:8080", addr)
	assert.Len(t, f.source.GenerateCalls(), 1)
	require.Len(t, f.kv.RemoveCalls(), 1)
	assert.Equal(t, domain.DiscoveryResultKey, f.kv.RemoveCalls()[0].Key)
}

func TestDiscoverer_Resolve_UnparseablePersistedResultDiscarded(t *testing.T) {
	f, d := newDiscovererFixture(t, batchedConfig(), "10.0.0.1")

	f.kv.GetFunc = func(ctx context.Context, key string) (string, bool, error) {
		return "{not json", true, nil
	}

	addr, err := d.Resolve(context.Background(), false)

	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.1:8080", addr)
	assert.Len(t, f.kv.RemoveCalls(), 1)
}

func TestDiscoverer_Resolve_DeadPersistedResultDiscarded(t *testing.T) {
	f, d := newDiscovererFixture(t, batchedConfig(), "10.0.0.1")

	raw, err := json.Marshal(domain.DiscoveryResult{
		Address:      "http://10.0.0.9:8080",
		DiscoveredAt: helpers.TestNow().Add(-time.Minute),
	})
	require.NoError(t, err)
	f.kv.GetFunc = func(ctx context.Context, key string) (string, bool, error) {
		return string(raw), true, nil
	}

	addr, err := d.Resolve(context.Background(), false)

	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.1:8080", addr)
	assert.Len(t, f.kv.RemoveCalls(), 1)
}

func TestDiscoverer_Resolve_StorageReadErrorIsCacheMiss(t *testing.T) {
	f, d := newDiscovererFixture(t, batchedConfig(), "10.0.0.1")

	f.kv.GetFunc = func(ctx context.Context, key string) (string, bool, error) {
		return "", false, NewStorageUnavailableError("read failed", nil)
	}

	addr, err := d.Resolve(context.Background(), false)

	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.1:8080", addr)
	assert.Len(t, f.source.GenerateCalls(), 1)
}

func TestDiscoverer_Resolve_StorageWriteErrorIsNonFatal(t *testing.T) {
	f, d := newDiscovererFixture(t, batchedConfig(), "10.0.0.1")

	f.kv.SetFunc = func(ctx context.Context, key string, value string) error {
		return NewStorageUnavailableError("write failed", nil)
	}

	addr, err := d.Resolve(context.Background(), false)

	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.1:8080", addr)
}

func TestDiscoverer_Resolve_ExhaustionStrict(t *testing.T) {
	f, d := newDiscovererFixture(t, batchedConfig())

	addr, err := d.Resolve(context.Background(), false)

	assert.Empty(t, addr)
	require.Error(t, err)
	assert.True(t, IsBackendUnreachableError(err))
	assert.Len(t, f.prober.ProbeCalls(), 3)
	assert.Empty(t, f.kv.SetCalls())
}

func TestDiscoverer_Resolve_ExhaustionLenientFallbackNotCached(t *testing.T) {
	cfg := batchedConfig()
	cfg.Fallback = domain.FallbackConfig{Mode: domain.FallbackLenient, Address: "http://fallback.local:8080"}
	f, d := newDiscovererFixture(t, cfg)

	addr, err := d.Resolve(context.Background(), false)

	require.NoError(t, err)
	assert.Equal(t, "http://fallback.local:8080", addr)
	assert.Empty(t, f.kv.SetCalls())

	// the fallback is not cached: the next resolve scans again
	_, err = d.Resolve(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, f.source.GenerateCalls(), 2)
}

func TestDiscoverer_Resolve_CanceledContext(t *testing.T) {
	f, d := newDiscovererFixture(t, batchedConfig(), "10.0.0.1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	addr, err := d.Resolve(ctx, false)

	assert.Empty(t, addr)
	require.Error(t, err)
	assert.True(t, IsBackendUnreachableError(err))
	assert.Empty(t, f.prober.ProbeCalls())
}

func TestDiscoverer_Invalidate(t *testing.T) {
	f, d := newDiscovererFixture(t, batchedConfig(), "10.0.0.3")

	_, err := d.Resolve(context.Background(), false)
	require.NoError(t, err)

	d.Invalidate()

	require.Len(t, f.kv.RemoveCalls(), 1)
	assert.Equal(t, domain.DiscoveryResultKey, f.kv.RemoveCalls()[0].Key)

	// memory is gone: the next resolve runs full discovery again
	_, err = d.Resolve(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, f.source.GenerateCalls(), 2)
}

func TestDiscoverer_Invalidate_StorageErrorIgnored(t *testing.T) {
	f, d := newDiscovererFixture(t, batchedConfig(), "10.0.0.1")
	f.kv.RemoveFunc = func(ctx context.Context, key string) error {
		return NewStorageUnavailableError("remove failed", nil)
	}

	assert.NotPanics(t, func() {
		d.Invalidate()
	})
}
