package prometheus

import (
	"strconv"
	"sync"
	"time"
)

// EngineMetrics holds the metrics this module emits. It replaces a much
// larger platform-wide catalogue with the handful of series that matter for
// a trace-and-fingerprint engine: how long calls take, how reliable they
// are, and how effective the token-metrics cache is.
type EngineMetrics struct {
	TraceRequestsTotal   CounterVec
	TraceDuration        HistogramVec
	TraceParseFailures   CounterVec
	TraceTokensPerCall   HistogramVec

	MetricsCacheHitsTotal   CounterVec
	MetricsCacheMissesTotal CounterVec
	MetricsCacheSize        GaugeVec

	DescriptorBatchDuration HistogramVec
	DescriptorBatchErrors   CounterVec

	TensorOpElementsTotal CounterVec
	TensorOpErrorsTotal   CounterVec
}

// Default histogram buckets.
var (
	DefaultTraceDurationBuckets  = []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1}
	DefaultTokenCountBuckets     = []float64{0, 1, 2, 5, 10, 20, 50, 100, 200}
	DefaultBatchDurationBuckets  = []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}
)

// NewEngineMetrics registers all trace-engine metrics and returns the
// populated EngineMetrics struct.
func NewEngineMetrics(collector MetricsCollector) *EngineMetrics {
	m := &EngineMetrics{}

	m.TraceRequestsTotal = collector.RegisterCounter("trace_requests_total", "Total trace_from_smiles calls", "outcome")
	m.TraceDuration = collector.RegisterHistogram("trace_duration_seconds", "trace_from_smiles call duration", DefaultTraceDurationBuckets)
	m.TraceParseFailures = collector.RegisterCounter("trace_parse_failures_total", "SMILES strings that failed to parse")
	m.TraceTokensPerCall = collector.RegisterHistogram("trace_tokens_per_call", "Number of tokens (one per center and radius) produced per trace", DefaultTokenCountBuckets)

	m.MetricsCacheHitsTotal = collector.RegisterCounter("token_metrics_cache_hits_total", "Token-metrics cache hits")
	m.MetricsCacheMissesTotal = collector.RegisterCounter("token_metrics_cache_misses_total", "Token-metrics cache misses")
	m.MetricsCacheSize = collector.RegisterGauge("token_metrics_cache_size", "Entries currently held in the token-metrics cache")

	m.DescriptorBatchDuration = collector.RegisterHistogram("descriptor_batch_duration_seconds", "Bulk descriptor batch duration", DefaultBatchDurationBuckets, "batch_size")
	m.DescriptorBatchErrors = collector.RegisterCounter("descriptor_batch_errors_total", "Bulk descriptor batch errors")

	m.TensorOpElementsTotal = collector.RegisterCounter("tensorop_elements_total", "Tensor operator elements processed", "outcome")
	m.TensorOpErrorsTotal = collector.RegisterCounter("tensorop_errors_total", "Tensor operator per-element errors")

	return m
}

// RecordTrace records a single trace_from_smiles invocation.
func RecordTrace(metrics *EngineMetrics, parsed bool, numTokens int, duration time.Duration) {
	outcome := "parsed"
	if !parsed {
		outcome = "unparseable"
		metrics.TraceParseFailures.WithLabelValues().Inc()
	}
	metrics.TraceRequestsTotal.WithLabelValues(outcome).Inc()
	metrics.TraceDuration.WithLabelValues().Observe(duration.Seconds())
	metrics.TraceTokensPerCall.WithLabelValues().Observe(float64(numTokens))
}

// RecordCacheAccess records a token-metrics cache lookup outcome.
func RecordCacheAccess(metrics *EngineMetrics, hit bool) {
	if hit {
		metrics.MetricsCacheHitsTotal.WithLabelValues().Inc()
	} else {
		metrics.MetricsCacheMissesTotal.WithLabelValues().Inc()
	}
}

// RecordDescriptorBatch records a single bulk-descriptor batch's duration
// and whether it produced an error.
func RecordDescriptorBatch(metrics *EngineMetrics, batchSize int, duration time.Duration, err error) {
	metrics.DescriptorBatchDuration.WithLabelValues(strconv.Itoa(batchSize)).Observe(duration.Seconds())
	if err != nil {
		metrics.DescriptorBatchErrors.WithLabelValues().Inc()
	}
}

// RecordTensorOpElement records a single tensor-operator element outcome.
func RecordTensorOpElement(metrics *EngineMetrics, outcome string) {
	metrics.TensorOpElementsTotal.WithLabelValues(outcome).Inc()
	if outcome == "error" {
		metrics.TensorOpErrorsTotal.WithLabelValues().Inc()
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Global EngineMetrics — optional hook for packages that cannot take an
// *EngineMetrics as a constructor parameter without changing an adapter
// contract fixed by spec (internal/chem/trace's cache, internal/tensorop.Process).
// Unset by default; every Record* call above already tolerates a nil
// receiver indirectly through these guarded wrappers.
// ─────────────────────────────────────────────────────────────────────────────

var (
	globalMu      sync.RWMutex
	globalMetrics *EngineMetrics
)

// SetGlobalMetrics installs the process-wide EngineMetrics instance. Call
// once during startup, after NewEngineMetrics; passing nil disables metrics
// recording everywhere GetGlobalMetrics is consulted.
func SetGlobalMetrics(m *EngineMetrics) {
	globalMu.Lock()
	globalMetrics = m
	globalMu.Unlock()
}

// GetGlobalMetrics returns the process-wide EngineMetrics instance, or nil
// if none has been installed.
func GetGlobalMetrics() *EngineMetrics {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalMetrics
}

// RecordCacheAccessGlobal records a cache access against the global
// EngineMetrics, if one has been installed; it is a no-op otherwise.
func RecordCacheAccessGlobal(hit bool) {
	if m := GetGlobalMetrics(); m != nil {
		RecordCacheAccess(m, hit)
	}
}

// RecordTensorOpElementGlobal records a tensor-operator element outcome
// against the global EngineMetrics, if one has been installed.
func RecordTensorOpElementGlobal(outcome string) {
	if m := GetGlobalMetrics(); m != nil {
		RecordTensorOpElement(m, outcome)
	}
}

// RecordTraceGlobal records a trace_from_smiles invocation against the
// global EngineMetrics, if one has been installed.
func RecordTraceGlobal(parsed bool, numTokens int, duration time.Duration) {
	if m := GetGlobalMetrics(); m != nil {
		RecordTrace(m, parsed, numTokens, duration)
	}
}

// RecordDescriptorBatchGlobal records a bulk-descriptor batch against the
// global EngineMetrics, if one has been installed.
func RecordDescriptorBatchGlobal(batchSize int, duration time.Duration, err error) {
	if m := GetGlobalMetrics(); m != nil {
		RecordDescriptorBatch(m, batchSize, duration, err)
	}
}
