// Package logging builds the application's slog.Logger and carries a
// request-scoped copy of it through context.
//
// The request middleware stores a logger tagged with the request id; code
// further in retrieves it with FromContext and falls back to slog.Default
// outside a request:
//
//	logger := logging.New(os.Stdout, "info", "json")
//	ctx = logging.WithLogger(ctx, logging.WithRequestID(ctx, logger))
//	logging.FromContext(ctx).Warn("comment body trimmed to empty")
package logging
