// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics track newsroom activity
var (
	// NewslettersCreatedTotal counts newsletter drafts created
	NewslettersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "newsletters_created_total",
			Help: "Total number of newsletters created",
		},
	)

	// NewsletterMutationsTotal counts updates and deletes
	NewsletterMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsletter_mutations_total",
			Help: "Total number of newsletter updates and deletes",
		},
		[]string{"operation"}, // update, delete
	)

	// FollowsToggledTotal counts follow graph changes by action
	FollowsToggledTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "follows_toggled_total",
			Help: "Total number of follow and unfollow operations",
		},
		[]string{"action"},
	)

	// NewspapersGeneratedTotal counts daily newspaper generation attempts by result
	NewspapersGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newspapers_generated_total",
			Help: "Total number of daily newspaper generation attempts",
		},
		[]string{"result"}, // created, already_exists, no_content, failure
	)

	// NewspaperItems measures how many items each generated newspaper holds
	NewspaperItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "newspaper_items",
			Help:    "Number of items in a generated daily newspaper",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		},
	)

	// SignInAttemptsTotal counts sign-in attempts by result
	SignInAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signin_attempts_total",
			Help: "Total number of sign-in attempts",
		},
		[]string{"result"}, // success, invalid_credentials, error
	)
)

// AI metrics track completion provider usage
var (
	// AIRequestsTotal counts completion requests by provider, operation and status
	AIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_requests_total",
			Help: "Total number of AI completion requests",
		},
		[]string{"provider", "operation", "status"},
	)

	// AIRequestDuration measures completion latency per provider
	AIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_request_duration_seconds",
			Help:    "Time taken by a single AI completion call",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		},
		[]string{"provider"},
	)

	// AIFallbacksTotal counts deterministic fallbacks served by operation
	AIFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_fallbacks_total",
			Help: "Total number of AI assist fallbacks served",
		},
		[]string{"operation"},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks in-use database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)
