// Package config provides configuration loading, defaults, and validation for
// the trace engine and its collaborators.
package config

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerPort = 9090
	DefaultServerMode = "debug"

	DefaultRadius          = 2
	DefaultFingerprintSize = 2048
	DefaultMaxRadius       = 8

	DefaultCacheMaxEntries = 100000

	DefaultDescriptorBatchSize   = 256
	DefaultDescriptorConcurrency = 4

	DefaultTensorOpConcurrency = 8

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsNamespace = "ecfptrace"
)

// ─────────────────────────────────────────────────────────────────────────────
// ApplyDefaults fills zero-value fields in cfg with well-known defaults.
// It must be called after unmarshalling raw config data and before Validate()
// so that optional-but-defaulted fields are never seen as missing.
// ─────────────────────────────────────────────────────────────────────────────

// ApplyDefaults fills every zero-value field in cfg with the platform default.
// Fields that have already been set by the caller (non-zero values) are left
// unchanged so that explicit configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}

	// ── Trace ─────────────────────────────────────────────────────────────────
	if cfg.Trace.DefaultRadius == 0 {
		cfg.Trace.DefaultRadius = DefaultRadius
	}
	if cfg.Trace.DefaultFingerprintSize == 0 {
		cfg.Trace.DefaultFingerprintSize = DefaultFingerprintSize
	}
	if cfg.Trace.MaxRadius == 0 {
		cfg.Trace.MaxRadius = DefaultMaxRadius
	}

	// ── Cache ─────────────────────────────────────────────────────────────────
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = DefaultCacheMaxEntries
	}

	// ── Descriptors ───────────────────────────────────────────────────────────
	if cfg.Descriptors.BatchSize == 0 {
		cfg.Descriptors.BatchSize = DefaultDescriptorBatchSize
	}
	if cfg.Descriptors.Concurrency == 0 {
		cfg.Descriptors.Concurrency = DefaultDescriptorConcurrency
	}

	// ── TensorOp ──────────────────────────────────────────────────────────────
	if cfg.TensorOp.Concurrency == 0 {
		cfg.TensorOp.Concurrency = DefaultTensorOpConcurrency
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
}
