// internal/config/validate.go
package config

import "fmt"

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	switch cfg.Daemon.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q: must be debug, info, warn or error", cfg.Daemon.Log.Level)
	}

	switch cfg.Daemon.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: log.format %q: must be console or json", cfg.Daemon.Log.Format)
	}

	if cfg.Daemon.Scan.IntervalMs < 0 {
		return fmt.Errorf("config: scan.interval_ms must be >= 0")
	}

	if cfg.Daemon.Pool.Buffers < 0 {
		return fmt.Errorf("config: pool.buffers must be >= 0")
	}

	return nil
}
