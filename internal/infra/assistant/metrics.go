package assistant

import (
	"time"

	"newsroom/internal/observability/metrics"
	"newsroom/internal/usecase/ai"
)

// MetricsRecorder abstracts completion metrics so tests can inject a fake.
type MetricsRecorder interface {
	RecordRequest(provider, operation string, success bool, duration time.Duration)
}

// PrometheusMetrics records completion and fallback metrics to the default
// Prometheus registry. It also satisfies ai.FallbackRecorder.
type PrometheusMetrics struct{}

// RecordRequest implements MetricsRecorder.
func (PrometheusMetrics) RecordRequest(provider, operation string, success bool, duration time.Duration) {
	metrics.RecordAIRequest(provider, operation, success, duration)
}

// RecordFallback implements ai.FallbackRecorder.
func (PrometheusMetrics) RecordFallback(op ai.Operation) {
	metrics.RecordAIFallback(string(op))
}
