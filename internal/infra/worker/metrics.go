package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Job run statuses.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	// StatusSkipped marks a run that found the newspaper already generated or
	// nothing to publish.
	StatusSkipped = "skipped"
)

// WorkerMetrics holds the worker's Prometheus collectors.
type WorkerMetrics struct {
	JobRunsTotal            *prometheus.CounterVec
	JobDurationSeconds      prometheus.Histogram
	NewslettersIncluded     prometheus.Counter
	JobLastSuccessTimestamp prometheus.Gauge
	ConfigFallbacksTotal    *prometheus.CounterVec
	ConfigFallbackActive    prometheus.Gauge
}

// NewWorkerMetrics creates the collectors and registers them with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewWorkerMetrics(reg prometheus.Registerer) *WorkerMetrics {
	f := promauto.With(reg)
	return &WorkerMetrics{
		JobRunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_newspaper_job_runs_total",
			Help: "Total number of newspaper job runs by status (success/failure/skipped)",
		}, []string{"status"}),

		JobDurationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_newspaper_job_duration_seconds",
			Help:    "Duration of newspaper job runs in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300}, // 1s to 5m
		}),

		NewslettersIncluded: f.NewCounter(prometheus.CounterOpts{
			Name: "worker_newspaper_newsletters_included_total",
			Help: "Total number of newsletters included in generated newspapers",
		}),

		JobLastSuccessTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Name: "worker_newspaper_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful newspaper job run",
		}),

		ConfigFallbacksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_config_fallbacks_total",
			Help: "Total number of configuration values replaced by defaults",
		}, []string{"field"}),

		ConfigFallbackActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "worker_config_fallback_active",
			Help: "1 if any configuration fallback is active, 0 otherwise",
		}),
	}
}

// RecordJobRun counts a finished run and observes its duration.
func (m *WorkerMetrics) RecordJobRun(status string, seconds float64) {
	m.JobRunsTotal.WithLabelValues(status).Inc()
	m.JobDurationSeconds.Observe(seconds)
	if status == StatusSuccess {
		m.JobLastSuccessTimestamp.SetToCurrentTime()
	}
}

// RecordNewslettersIncluded adds the item count of a generated newspaper.
func (m *WorkerMetrics) RecordNewslettersIncluded(count int) {
	m.NewslettersIncluded.Add(float64(count))
}

// RecordFallback counts a configuration field that fell back to its default.
func (m *WorkerMetrics) RecordFallback(field string) {
	m.ConfigFallbacksTotal.WithLabelValues(field).Inc()
}

// SetFallbackActive flags whether the loaded configuration uses any fallback.
func (m *WorkerMetrics) SetFallbackActive(active bool) {
	if active {
		m.ConfigFallbackActive.Set(1)
		return
	}
	m.ConfigFallbackActive.Set(0)
}
