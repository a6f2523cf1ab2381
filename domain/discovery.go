package domain

import (
	"strconv"
	"strings"
	"time"
)

// FallbackMode selects what Resolve does when every candidate is dead:
// strict fails with backend_unreachable, lenient returns the configured
// fallback address without caching it as a discovered result.
type FallbackMode string

const (
	FallbackStrict  FallbackMode = "strict"
	FallbackLenient FallbackMode = "lenient"
)

// FallbackConfig holds the exhaustion policy and, for lenient, the stable
// fallback address (e.g. the production endpoint).
type FallbackConfig struct {
	Mode    FallbackMode
	Address string
}

// DiscoveryConfig is the static configuration of one discovery setup:
// which addresses to try (SubnetPrefixes × HostOctets on Scheme://host:Port,
// plus localhost last), how hard to try them (BatchSize parallel probes,
// ProbeTimeout each), how long a winner stays trusted (CacheWindow) and what
// to do when nothing answers (Fallback).
type DiscoveryConfig struct {
	// SubnetPrefixes are the first three octets of each subnet to scan,
	// e.g. "192.168.0", "10.0.0". Order is preserved in candidate order.
	SubnetPrefixes []string
	// HostOctets are the last octets tried within each subnet, in order.
	HostOctets []int
	Port       int
	Scheme     string
	// LivenessPath is the well-known path probed on each candidate, e.g. "/health".
	LivenessPath string

	BatchSize    int
	ProbeTimeout time.Duration
	CacheWindow  time.Duration

	Fallback FallbackConfig
}

// ValidateDiscoveryConfig validates the static discovery configuration: at least one subnet prefix, each prefix three dotted octets in 0-255, at least one host octet in 1-254, port 1-65535, scheme http|https, liveness path starting with "/", positive batch size, probe timeout and cache window, fallback mode strict|lenient with a non-empty address for lenient.
//
// Parameter cfg — discovery config (usually from YAML via cmd LoadConfig).
//
// Returns: nil when the config is valid; *DiscoveryConfigError with Field and Reason on the first error found.
//
// Called from service.NewCandidateSource and service.NewDiscoverer constructors and from cmd LoadConfig before wiring.
func ValidateDiscoveryConfig(cfg DiscoveryConfig) error {
	if len(cfg.SubnetPrefixes) == 0 {
		return &DiscoveryConfigError{Field: "subnet_prefixes", Reason: "at least one subnet prefix is required"}
	}
	for i, p := range cfg.SubnetPrefixes {
		if !validSubnetPrefix(p) {
			return &DiscoveryConfigError{Field: "subnet_prefixes[" + strconv.Itoa(i) + "]", Reason: "must be three dotted octets 0-255, e.g. 192.168.0"}
		}
	}
	if len(cfg.HostOctets) == 0 {
		return &DiscoveryConfigError{Field: "host_octets", Reason: "at least one host octet is required"}
	}
	for i, o := range cfg.HostOctets {
		if o < 1 || o > 254 {
			return &DiscoveryConfigError{Field: "host_octets[" + strconv.Itoa(i) + "]", Reason: "must be 1-254"}
		}
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return &DiscoveryConfigError{Field: "port", Reason: "must be 1-65535"}
	}
	switch cfg.Scheme {
	case "http", "https":
	default:
		return &DiscoveryConfigError{Field: "scheme", Reason: "must be http|https"}
	}
	if cfg.LivenessPath == "" || cfg.LivenessPath[0] != '/' {
		return &DiscoveryConfigError{Field: "liveness_path", Reason: "must start with /"}
	}
	if cfg.BatchSize <= 0 {
		return &DiscoveryConfigError{Field: "batch_size", Reason: "must be positive"}
	}
	if cfg.ProbeTimeout <= 0 {
		return &DiscoveryConfigError{Field: "probe_timeout_ms", Reason: "must be positive"}
	}
	if cfg.CacheWindow <= 0 {
		return &DiscoveryConfigError{Field: "cache_window_ms", Reason: "must be positive"}
	}
	switch cfg.Fallback.Mode {
	case FallbackStrict:
	case FallbackLenient:
		if strings.TrimSpace(cfg.Fallback.Address) == "" {
			return &DiscoveryConfigError{Field: "fallback.address", Reason: "is required when fallback.mode=lenient"}
		}
	default:
		return &DiscoveryConfigError{Field: "fallback.mode", Reason: "must be strict|lenient"}
	}
	return nil
}

// validSubnetPrefix reports whether p looks like the first three octets of an
// IPv4 address ("a.b.c" with each part 0-255, no leading plus/minus signs).
func validSubnetPrefix(p string) bool {
	parts := strings.Split(p, ".")
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || part == "" || n < 0 || n > 255 {
			return false
		}
		if part != strconv.Itoa(n) {
			return false
		}
	}
	return true
}

// DiscoveryConfigError is returned by ValidateDiscoveryConfig when a field is invalid.
// Field is the YAML-ish field path; Reason is a human-readable message.
type DiscoveryConfigError struct {
	Field  string
	Reason string
}

// Error implements error; returns a string like "discovery.port: must be 1-65535"
// for logging and user output.
func (e *DiscoveryConfigError) Error() string {
	return "discovery." + e.Field + ": " + e.Reason
}
