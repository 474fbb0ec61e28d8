package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resource labels are the table names: articles, comments, topics, users.
var (
	ResourcesCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resources_created_total",
		Help: "Total number of resources created",
	}, []string{"resource"})

	ResourcesDeletedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resources_deleted_total",
		Help: "Total number of resources deleted",
	}, []string{"resource"})

	// VotesTotal sums absolute vote deltas; direction is "up" or "down".
	VotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "votes_total",
		Help: "Total number of votes applied",
	}, []string{"resource", "direction"})

	// APIErrorsTotal counts error envelopes by apperror kind.
	APIErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "api_errors_total",
		Help: "Total number of API error responses",
	}, []string{"kind"})
)

// The operation label is the statement's leading keyword (select, insert,
// update, delete, with, begin) or "other".
var (
	DBQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Database query duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
	}, []string{"operation"})

	// DBQueryErrorsTotal excludes statement errors such as constraint
	// violations; it counts failures that say the database is unwell.
	DBQueryErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "db_query_errors_total",
		Help: "Total number of failed database statements",
	}, []string{"operation"})

	DBConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_connections_active",
		Help: "Number of active database connections",
	})

	DBConnectionsIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_connections_idle",
		Help: "Number of idle database connections",
	})
)
