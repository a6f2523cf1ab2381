// Command discover runs backend discovery with the configured candidate set and
// prints the resolved base address. It is the reference composition root for the
// library: candidate source, prober, KV store, discoverer and client are wired
// here and owned here — no hidden module-level state.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"backendlink/adapters/filekv"
	"backendlink/adapters/httpprobe"
	"backendlink/adapters/rediskv"
	"backendlink/interfaces"
	"backendlink/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

func main() {
	// Initialize logger
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"subnets", len(config.Discovery.SubnetPrefixes),
		"batch_size", config.Discovery.BatchSize,
		"fallback_mode", config.Discovery.Fallback.Mode,
		"force_refresh", config.ForceRefresh,
	)

	// Create KV store (file-backed or redis-backed)
	var kv interfaces.KVStore
	{
		if config.RedisAddr != "" {
			redisClient, err := rediskv.NewRedisUniversalClient(config.RedisAddr)
			if err != nil {
				level.Error(logger).Log("msg", "Failed to create Redis client", "err", err)
				os.Exit(1)
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := redisClient.Ping(ctx).Err(); err != nil {
				level.Error(logger).Log("msg", "Failed to connect to Redis", "err", err)
				os.Exit(1)
			}
			kv = rediskv.NewStore(redisClient, "backendlink")
		} else {
			kv = filekv.NewStore(config.StoragePath)
		}
	}

	// Create discoverer
	timeProvider := service.NewTimeProvider(func() time.Time { return time.Now().UTC() })
	source := service.NewCandidateSource(config.Discovery)
	prober := httpprobe.NewProber(config.Discovery.LivenessPath, &http.Client{})
	discoverer := service.NewDiscoverer(source, prober, kv, timeProvider, config.Discovery, logger)

	// Resolve
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	addr, err := discoverer.Resolve(ctx, config.ForceRefresh)
	if err != nil {
		level.Error(logger).Log("msg", "Discovery failed", "err", err)
		os.Exit(1)
	}

	// Sanity request through the client against the liveness path.
	client := service.NewResilientClient(
		discoverer,
		&http.Client{Timeout: 10 * time.Second},
		logger,
		service.WithRequestProcessors(service.NewRequestLogProcessor(logger)),
	)
	if _, err := client.Request(ctx, http.MethodGet, config.Discovery.LivenessPath, nil, nil); err != nil {
		level.Warn(logger).Log("msg", "Liveness request through client failed", "err", err)
	}

	fmt.Println(addr)
}
