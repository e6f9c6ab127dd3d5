package auth

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	signInDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "auth_signin_duration_seconds",
			Help:    "Sign-in request duration by result",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
		[]string{"result"},
	)

	// rejectedAccess counts requests turned away by RequireUser/RequireAdmin.
	rejectedAccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_rejected_requests_total",
			Help: "Requests rejected for a missing session or missing admin role",
		},
		[]string{"reason", "method"},
	)
)

func recordSignInDuration(result string, d time.Duration) {
	signInDuration.WithLabelValues(result).Observe(d.Seconds())
}

func recordRejected(reason, method string) {
	rejectedAccess.WithLabelValues(reason, method).Inc()
}
