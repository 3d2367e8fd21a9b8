// internal/config/normalize.go
package config

// Defaults applied by Normalize.
const (
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"
	DefaultScanIntervalMs = 1000
	DefaultPoolBuffers    = 8
)

// Normalize applies post-validation defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Daemon.Log.Level == "" {
		cfg.Daemon.Log.Level = DefaultLogLevel
	}
	if cfg.Daemon.Log.Format == "" {
		cfg.Daemon.Log.Format = DefaultLogFormat
	}
	if cfg.Daemon.Scan.IntervalMs == 0 {
		cfg.Daemon.Scan.IntervalMs = DefaultScanIntervalMs
	}
	if cfg.Daemon.Pool.Buffers == 0 {
		cfg.Daemon.Pool.Buffers = DefaultPoolBuffers
	}
}
