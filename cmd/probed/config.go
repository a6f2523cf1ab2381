package main

import (
	"fmt"
	"os"
	"strconv"
)

type ProbedConfig struct {
	HTTPPort    int
	ServiceName string
}

// LoadConfig loads configuration from environment variables.
// SERVICE_PORT_HTTP is required; SERVICE_NAME defaults to the hostname so a
// developer scanning a LAN can tell which machine answered.
func LoadConfig() (*ProbedConfig, error) {
	httpPortStr := os.Getenv("SERVICE_PORT_HTTP")
	if httpPortStr == "" {
		return nil, fmt.Errorf("SERVICE_PORT_HTTP is required")
	}
	httpPort, err := strconv.Atoi(httpPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVICE_PORT_HTTP: %w", err)
	}
	if httpPort <= 0 || httpPort > 65535 {
		return nil, fmt.Errorf("SERVICE_PORT_HTTP must be 1-65535, got %d", httpPort)
	}

	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "probed"
		}
		serviceName = hostname
	}

	return &ProbedConfig{
		HTTPPort:    httpPort,
		ServiceName: serviceName,
	}, nil
}
