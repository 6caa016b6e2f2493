// Package config defines all configuration structures for the trace engine
// and its collaborators.  No I/O or parsing logic lives here — only plain
// data types and validation.
package config

import (
	"fmt"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP listener tunables.  The engine itself is a library
// invoked in-process or via the CLI; these settings are loaded and validated,
// but nothing in this repository starts an HTTP listener.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// TraceConfig holds the default parameters used by trace_from_smiles when a
// caller does not supply an explicit radius or fingerprint size.
type TraceConfig struct {
	DefaultRadius          int `mapstructure:"default_radius"`
	DefaultFingerprintSize int `mapstructure:"default_fingerprint_size"`
	MaxRadius              int `mapstructure:"max_radius"`
}

// CacheConfig holds the token-metrics cache tunables.
type CacheConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	MaxEntries int  `mapstructure:"max_entries"`
}

// DescriptorsConfig holds bulk-descriptor-batch tunables.
type DescriptorsConfig struct {
	BatchSize   int           `mapstructure:"batch_size"`
	Concurrency int           `mapstructure:"concurrency"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// TensorOpConfig holds the tensor-operator worker-pool tunables.
type TensorOpConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `mapstructure:"format"` // "json" | "console"
}

// MetricsConfig holds Prometheus metrics-collector parameters.
type MetricsConfig struct {
	Enabled              bool   `mapstructure:"enabled"`
	Namespace            string `mapstructure:"namespace"`
	Subsystem            string `mapstructure:"subsystem"`
	EnableGoMetrics      bool   `mapstructure:"enable_go_metrics"`
	EnableProcessMetrics bool   `mapstructure:"enable_process_metrics"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure for the trace engine.  Every
// component reads its settings from the relevant sub-struct.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Trace       TraceConfig       `mapstructure:"trace"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Descriptors DescriptorsConfig `mapstructure:"descriptors"`
	TensorOp    TensorOpConfig    `mapstructure:"tensorop"`
	Log         LogConfig         `mapstructure:"log"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	// Trace
	if c.Trace.DefaultRadius < 0 {
		return fmt.Errorf("config: trace.default_radius must be ≥ 0, got %d", c.Trace.DefaultRadius)
	}
	if c.Trace.MaxRadius < c.Trace.DefaultRadius {
		return fmt.Errorf("config: trace.max_radius %d must be ≥ default_radius %d", c.Trace.MaxRadius, c.Trace.DefaultRadius)
	}
	if c.Trace.DefaultFingerprintSize < 1 {
		return fmt.Errorf("config: trace.default_fingerprint_size must be ≥ 1, got %d", c.Trace.DefaultFingerprintSize)
	}

	// Cache
	if c.Cache.Enabled && c.Cache.MaxEntries < 1 {
		return fmt.Errorf("config: cache.max_entries must be ≥ 1 when cache.enabled, got %d", c.Cache.MaxEntries)
	}

	// Descriptors
	if c.Descriptors.BatchSize < 1 {
		return fmt.Errorf("config: descriptors.batch_size must be ≥ 1, got %d", c.Descriptors.BatchSize)
	}
	if c.Descriptors.Concurrency < 1 {
		return fmt.Errorf("config: descriptors.concurrency must be ≥ 1, got %d", c.Descriptors.Concurrency)
	}

	// TensorOp
	if c.TensorOp.Concurrency < 1 {
		return fmt.Errorf("config: tensorop.concurrency must be ≥ 1, got %d", c.TensorOp.Concurrency)
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}
