package pagination

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts paginated listing requests.
	// Labels: resource (articles, comments), status, page_range (1-10, 11-50, ..., unbounded, empty)
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_pagination_requests_total",
			Help: "Total number of paginated listing requests",
		},
		[]string{"resource", "status", "page_range"},
	)

	// DurationSeconds tracks listing duration distribution.
	// Labels: resource, operation (handler, repository)
	DurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "listing_pagination_duration_seconds",
			Help:    "Listing duration distribution",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0},
		},
		[]string{"resource", "operation"},
	)

	// TotalCount is the last total_count computed per resource.
	TotalCount = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "listing_total_count",
			Help: "Last computed total count of a filtered listing",
		},
		[]string{"resource"},
	)

	// ErrorsTotal counts pagination errors by type.
	// Labels: type (validation, not_found, database)
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_pagination_errors_total",
			Help: "Total number of pagination errors",
		},
		[]string{"type"},
	)
)

// RecordRequest records a paginated listing request.
func RecordRequest(resource string, statusCode int, w Window) {
	RequestsTotal.WithLabelValues(resource, strconv.Itoa(statusCode), pageRangeBucket(w)).Inc()
}

// RecordDuration records operation duration in seconds.
func RecordDuration(resource, operation string, duration float64) {
	DurationSeconds.WithLabelValues(resource, operation).Observe(duration)
}

// UpdateTotalCount updates the total count gauge of resource.
func UpdateTotalCount(resource string, count int64) {
	TotalCount.WithLabelValues(resource).Set(float64(count))
}

// RecordError records an error metric.
// errorType should be one of: "validation", "not_found", "database"
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

func pageRangeBucket(w Window) string {
	switch {
	case w.Unbounded:
		return "unbounded"
	case w.Empty:
		return "empty"
	case w.Page <= 10:
		return "1-10"
	case w.Page <= 50:
		return "11-50"
	case w.Page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
