package metrics

import "time"

// RecordCreated records a successful insert of resource.
func RecordCreated(resource string) {
	ResourcesCreatedTotal.WithLabelValues(resource).Inc()
}

// RecordDeleted records a successful delete of resource.
func RecordDeleted(resource string) {
	ResourcesDeletedTotal.WithLabelValues(resource).Inc()
}

// RecordVotes records a vote delta applied to resource.
// A zero delta is ignored.
func RecordVotes(resource string, delta int64) {
	switch {
	case delta > 0:
		VotesTotal.WithLabelValues(resource, "up").Add(float64(delta))
	case delta < 0:
		VotesTotal.WithLabelValues(resource, "down").Add(float64(-delta))
	}
}

// RecordAPIError records an error envelope of the given kind.
func RecordAPIError(kind string) {
	APIErrorsTotal.WithLabelValues(kind).Inc()
}

// RecordDBQuery records the duration of a database query.
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordDBError records a failed database statement.
func RecordDBError(operation string) {
	DBQueryErrorsTotal.WithLabelValues(operation).Inc()
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
