// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the daemon configuration. It covers ambient concerns only:
// the device protocol (VID/PID, frame layout, transfer timeout, node
// naming) is locked in code and has no configuration surface.
type Config struct {
	Daemon DaemonConfig `yaml:"daemon"`
}

type DaemonConfig struct {
	Log  LogConfig  `yaml:"log"`
	Scan ScanConfig `yaml:"scan"`
	Pool PoolConfig `yaml:"pool"`
}

// ---- LOGGING ----

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// ---- DEVICE PRESENCE SCAN ----

type ScanConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// ---- TRANSFER BUFFER POOL ----

type PoolConfig struct {
	Buffers int `yaml:"buffers"`
}

// Load reads and parses a YAML configuration file. A missing path
// yields the zero Config, which Normalize fills with defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}
