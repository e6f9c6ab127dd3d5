package metrics

import (
	"time"
)

// RecordNewsletterCreated increments the newsletter creation counter.
func RecordNewsletterCreated() {
	NewslettersCreatedTotal.Inc()
}

// RecordNewsletterMutation records an update or delete.
func RecordNewsletterMutation(operation string) {
	NewsletterMutationsTotal.WithLabelValues(operation).Inc()
}

// RecordFollowToggled records a follow or unfollow.
func RecordFollowToggled(action string) {
	FollowsToggledTotal.WithLabelValues(action).Inc()
}

// RecordNewspaperGenerated records the outcome of a daily newspaper run.
// items is only observed for the "created" result.
func RecordNewspaperGenerated(result string, items int) {
	NewspapersGeneratedTotal.WithLabelValues(result).Inc()
	if result == "created" {
		NewspaperItems.Observe(float64(items))
	}
}

// RecordSignIn records a sign-in attempt.
func RecordSignIn(result string) {
	SignInAttemptsTotal.WithLabelValues(result).Inc()
}

// RecordAIRequest records one completion call against a provider.
func RecordAIRequest(provider, operation string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	AIRequestsTotal.WithLabelValues(provider, operation, status).Inc()
	AIRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordAIFallback records that an assist operation served its fallback.
func RecordAIFallback(operation string) {
	AIFallbacksTotal.WithLabelValues(operation).Inc()
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "list_feed", "create_newspaper").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
