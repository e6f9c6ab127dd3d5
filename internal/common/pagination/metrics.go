package pagination

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagination_requests_total",
			Help: "Paginated list requests by endpoint, status and page bucket",
		},
		[]string{"endpoint", "status", "page_range"},
	)

	durationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pagination_duration_seconds",
			Help:    "Paginated list request duration",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0},
		},
		[]string{"endpoint"},
	)
)

// RecordRequest records one paginated request.
func RecordRequest(endpoint string, status, page int, d time.Duration) {
	requestsTotal.WithLabelValues(endpoint, strconv.Itoa(status), pageRange(page)).Inc()
	durationSeconds.WithLabelValues(endpoint).Observe(d.Seconds())
}

func pageRange(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
