package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"backendlink/domain"

	"gopkg.in/yaml.v3"
)

// Env variable names.
const (
	envConfigPath   = "CONFIG_PATH"
	envStoragePath  = "STORAGE_PATH"
	envRedisAddr    = "REDIS_ADDR"
	envForceRefresh = "FORCE_REFRESH"
)

// Config holds the full discover configuration loaded by LoadConfig from environment variables and the YAML file.
// Discovery comes from the YAML at CONFIG_PATH; exactly one of StoragePath (file-backed KV) and RedisAddr
// (redis-backed KV) must be set; ForceRefresh (from FORCE_REFRESH=true) skips both discovery caches.
type Config struct {
	Discovery    domain.DiscoveryConfig
	StoragePath  string
	RedisAddr    string
	ForceRefresh bool
}

// yamlConfig is the root struct for YAML unmarshalling; contains the discovery section.
type yamlConfig struct {
	Discovery yamlDiscovery `yaml:"discovery"`
}

// yamlDiscovery is the discovery section: candidate generation (subnet_prefixes, host_octets, port, scheme,
// liveness_path), probing (batch_size, probe_timeout_ms), caching (cache_window_ms) and the fallback policy.
type yamlDiscovery struct {
	SubnetPrefixes []string     `yaml:"subnet_prefixes"`
	HostOctets     []int        `yaml:"host_octets"`
	Port           int          `yaml:"port"`
	Scheme         string       `yaml:"scheme"`
	LivenessPath   string       `yaml:"liveness_path"`
	BatchSize      int          `yaml:"batch_size"`
	ProbeTimeout   int          `yaml:"probe_timeout_ms"`
	CacheWindow    int          `yaml:"cache_window_ms"`
	Fallback       yamlFallback `yaml:"fallback"`
}

// yamlFallback holds fallback mode (strict|lenient) and, for lenient, the stable fallback address.
type yamlFallback struct {
	Mode    string `yaml:"mode"`
	Address string `yaml:"address"`
}

// loadYAMLConfig reads the YAML file at path and unmarshals it into yamlConfig.
//
// Parameter path — absolute path to the file (LoadConfig converts CONFIG_PATH to absolute via filepath.Abs).
//
// Returns: (*yamlConfig, nil) on successful read and yaml.Unmarshal; (nil, error) on os.ReadFile or yaml.Unmarshal error.
//
// Called only from LoadConfig.
func loadYAMLConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out yamlConfig
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoadConfig builds discover config from environment variables and YAML at CONFIG_PATH. Reads CONFIG_PATH (required), STORAGE_PATH or REDIS_ADDR (exactly one required), FORCE_REFRESH (optional, "true" enables). The YAML discovery section is mapped to domain.DiscoveryConfig and validated with ValidateDiscoveryConfig.
//
// Parameters: none (source — os.Getenv and file at CONFIG_PATH).
//
// Returns: (*Config, nil) on success; (nil, error) on missing CONFIG_PATH, both or neither of STORAGE_PATH/REDIS_ADDR, YAML load/parse error or invalid discovery config.
//
// Called only from main at startup.
func LoadConfig() (*Config, error) {
	configPath := strings.TrimSpace(os.Getenv(envConfigPath))
	if configPath == "" {
		return nil, fmt.Errorf("%s is required", envConfigPath)
	}
	if !filepath.IsAbs(configPath) {
		abs, absErr := filepath.Abs(configPath)
		if absErr != nil {
			return nil, absErr
		}
		configPath = abs
	}
	raw, err := loadYAMLConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", configPath, err)
	}

	discovery := domain.DiscoveryConfig{
		SubnetPrefixes: raw.Discovery.SubnetPrefixes,
		HostOctets:     raw.Discovery.HostOctets,
		Port:           raw.Discovery.Port,
		Scheme:         raw.Discovery.Scheme,
		LivenessPath:   raw.Discovery.LivenessPath,
		BatchSize:      raw.Discovery.BatchSize,
		ProbeTimeout:   time.Duration(raw.Discovery.ProbeTimeout) * time.Millisecond,
		CacheWindow:    time.Duration(raw.Discovery.CacheWindow) * time.Millisecond,
		Fallback: domain.FallbackConfig{
			Mode:    domain.FallbackMode(raw.Discovery.Fallback.Mode),
			Address: raw.Discovery.Fallback.Address,
		},
	}
	if err := domain.ValidateDiscoveryConfig(discovery); err != nil {
		return nil, err
	}

	storagePath := strings.TrimSpace(os.Getenv(envStoragePath))
	redisAddr := strings.TrimSpace(os.Getenv(envRedisAddr))
	if storagePath == "" && redisAddr == "" {
		return nil, fmt.Errorf("%s or %s is required", envStoragePath, envRedisAddr)
	}
	if storagePath != "" && redisAddr != "" {
		return nil, fmt.Errorf("%s and %s are mutually exclusive", envStoragePath, envRedisAddr)
	}

	return &Config{
		Discovery:    discovery,
		StoragePath:  storagePath,
		RedisAddr:    redisAddr,
		ForceRefresh: os.Getenv(envForceRefresh) == "true",
	}, nil
}
