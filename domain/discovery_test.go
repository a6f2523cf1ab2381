package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() DiscoveryConfig {
	return DiscoveryConfig{
		SubnetPrefixes: []string{"192.168.0", "10.0.0"},
		HostOctets:     []int{1, 2, 100},
		Port:           8080,
		Scheme:         "http",
		LivenessPath:   "/health",
		BatchSize:      5,
		ProbeTimeout:   800 * time.Millisecond,
		CacheWindow:    5 * time.Minute,
		Fallback:       FallbackConfig{Mode: FallbackStrict},
	}
}

func TestCandidate_BaseURL(t *testing.T) {
	c := Candidate{Scheme: "http", Host: "192.168.0.42", Port: 8080}
	assert.Equal(t, "http://192.168.0.42:8080", c.BaseURL())

	c = Candidate{Scheme: "https", Host: "localhost", Port: 443}
	assert.Equal(t, "https://localhost:443", c.BaseURL())
}

func TestValidateDiscoveryConfig_Valid(t *testing.T) {
	require.NoError(t, ValidateDiscoveryConfig(validConfig()))

	lenient := validConfig()
	lenient.Fallback = FallbackConfig{Mode: FallbackLenient, Address: "https://api.example.com"}
	require.NoError(t, ValidateDiscoveryConfig(lenient))
}

func TestValidateDiscoveryConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DiscoveryConfig)
		field  string
	}{
		{"no_subnets", func(c *DiscoveryConfig) { c.SubnetPrefixes = nil }, "subnet_prefixes"},
		{"bad_prefix_two_octets", func(c *DiscoveryConfig) { c.SubnetPrefixes = []string{"192.168"} }, "subnet_prefixes[0]"},
		{"bad_prefix_octet_range", func(c *DiscoveryConfig) { c.SubnetPrefixes = []string{"192.168.300"} }, "subnet_prefixes[0]"},
		{"bad_prefix_not_numeric", func(c *DiscoveryConfig) { c.SubnetPrefixes = []string{"192.168.x"} }, "subnet_prefixes[0]"},
		{"bad_prefix_leading_zero", func(c *DiscoveryConfig) { c.SubnetPrefixes = []string{"192.168.01"} }, "subnet_prefixes[0]"},
		{"no_host_octets", func(c *DiscoveryConfig) { c.HostOctets = nil }, "host_octets"},
		{"host_octet_zero", func(c *DiscoveryConfig) { c.HostOctets = []int{0} }, "host_octets[0]"},
		{"host_octet_255", func(c *DiscoveryConfig) { c.HostOctets = []int{1, 255} }, "host_octets[1]"},
		{"port_zero", func(c *DiscoveryConfig) { c.Port = 0 }, "port"},
		{"port_too_big", func(c *DiscoveryConfig) { c.Port = 70000 }, "port"},
		{"bad_scheme", func(c *DiscoveryConfig) { c.Scheme = "ftp" }, "scheme"},
		{"empty_liveness_path", func(c *DiscoveryConfig) { c.LivenessPath = "" }, "liveness_path"},
		{"relative_liveness_path", func(c *DiscoveryConfig) { c.LivenessPath = "health" }, "liveness_path"},
		{"zero_batch_size", func(c *DiscoveryConfig) { c.BatchSize = 0 }, "batch_size"},
		{"zero_probe_timeout", func(c *DiscoveryConfig) { c.ProbeTimeout = 0 }, "probe_timeout_ms"},
		{"zero_cache_window", func(c *DiscoveryConfig) { c.CacheWindow = 0 }, "cache_window_ms"},
		{"empty_fallback_mode", func(c *DiscoveryConfig) { c.Fallback.Mode = "" }, "fallback.mode"},
		{"unknown_fallback_mode", func(c *DiscoveryConfig) { c.Fallback.Mode = "maybe" }, "fallback.mode"},
		{"lenient_without_address", func(c *DiscoveryConfig) { c.Fallback = FallbackConfig{Mode: FallbackLenient} }, "fallback.address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := ValidateDiscoveryConfig(cfg)
			require.Error(t, err)
			var cfgErr *DiscoveryConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestDiscoveryConfigError_Error(t *testing.T) {
	e := &DiscoveryConfigError{Field: "port", Reason: "must be 1-65535"}
	assert.Equal(t, "discovery.port: must be 1-65535", e.Error())
}
