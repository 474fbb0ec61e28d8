package pagination

import (
	"log/slog"
	"time"
)

// LogResponse logs a paginated response with duration and status.
func LogResponse(logger *slog.Logger, resource string, w Window, returnedCount int, duration time.Duration, statusCode int) {
	logger.Info("paginated response",
		slog.String("resource", resource),
		slog.Int("page", w.Page),
		slog.Int64("limit", w.Limit),
		slog.Bool("unbounded", w.Unbounded),
		slog.Int("returned_count", returnedCount),
		slog.Int64("duration_ms", duration.Milliseconds()),
		slog.Int("status", statusCode))
}

// LogError logs a rejected pagination request.
func LogError(logger *slog.Logger, resource, limitToken, pageToken string, err error) {
	logger.Warn("pagination rejected",
		slog.String("resource", resource),
		slog.String("limit", limitToken),
		slog.String("page", pageToken),
		slog.Any("error", err))
}
