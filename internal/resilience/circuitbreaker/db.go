package circuitbreaker

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"nc-news/internal/observability/metrics"
	"nc-news/internal/observability/tracing"
)

// DBCircuitBreaker wraps a database connection with circuit breaker protection.
// It prevents cascading failures when the database becomes unavailable or slow.
// Every call is also timed into db_query_duration_seconds and traced as a
// client span.
type DBCircuitBreaker struct {
	cb *CircuitBreaker
	db *sql.DB
}

// DBConfig returns the database breaker defaults: it opens once five calls
// in a row fail and half-opens after 30 seconds. IsSuccessful is left nil
// so the value compares equal; NewDBCircuitBreakerWithConfig sets it.
func DBConfig() Config {
	return Config{
		Name:             "database",
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 1.0,
		MinRequests:      5,
	}
}

func NewDBCircuitBreaker(db *sql.DB) *DBCircuitBreaker {
	return NewDBCircuitBreakerWithConfig(db, DBConfig())
}

// NewDBCircuitBreakerWithConfig uses cfg as loaded from configuration. An
// empty Name becomes "database" and a nil IsSuccessful becomes
// IsStatementError, so errors a live server reports about the statement
// itself never count as failures.
func NewDBCircuitBreakerWithConfig(db *sql.DB, cfg Config) *DBCircuitBreaker {
	if cfg.Name == "" {
		cfg.Name = "database"
	}
	if cfg.IsSuccessful == nil {
		cfg.IsSuccessful = IsStatementError
	}
	return &DBCircuitBreaker{cb: New(cfg), db: db}
}

// guarded runs fn through the breaker inside a client span and records its
// duration. An open breaker returns gobreaker.ErrOpenState without calling fn.
func guarded[T any](ctx context.Context, dcb *DBCircuitBreaker, op, query string, fn func(context.Context) (T, error)) (T, error) {
	ctx, span := startSpan(ctx, op, query)
	defer span.End()

	start := time.Now()
	result, err := dcb.cb.Execute(func() (any, error) {
		return fn(ctx)
	})
	observe(span, op, start, err)

	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}

func (dcb *DBCircuitBreaker) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return guarded(ctx, dcb, statementKind(query), query, func(ctx context.Context) (*sql.Rows, error) {
		return dcb.db.QueryContext(ctx, query, args...)
	})
}

func (dcb *DBCircuitBreaker) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return guarded(ctx, dcb, statementKind(query), query, func(ctx context.Context) (sql.Result, error) {
		return dcb.db.ExecContext(ctx, query, args...)
	})
}

// QueryRowContext is traced and timed but bypasses the breaker: a *sql.Row
// defers its error to Scan, so the outcome is unknown here.
func (dcb *DBCircuitBreaker) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	op := statementKind(query)
	ctx, span := startSpan(ctx, op, query)
	defer span.End()

	start := time.Now()
	row := dcb.db.QueryRowContext(ctx, query, args...)
	observe(span, op, start, row.Err())
	return row
}

// BeginTx opens a transaction through the breaker. Statements run on the
// returned *sql.Tx bypass it.
func (dcb *DBCircuitBreaker) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return guarded(ctx, dcb, "begin", "BEGIN", func(ctx context.Context) (*sql.Tx, error) {
		return dcb.db.BeginTx(ctx, opts)
	})
}

// PingContext checks connectivity through the breaker.
func (dcb *DBCircuitBreaker) PingContext(ctx context.Context) error {
	_, err := dcb.cb.Execute(func() (any, error) {
		return nil, dcb.db.PingContext(ctx)
	})
	return err
}

// Stats returns the pool statistics of the underlying database and mirrors
// them into the connection gauges.
func (dcb *DBCircuitBreaker) Stats() sql.DBStats {
	stats := dcb.db.Stats()
	metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)
	return stats
}

func (dcb *DBCircuitBreaker) State() gobreaker.State {
	return dcb.cb.State()
}

func (dcb *DBCircuitBreaker) IsOpen() bool {
	return dcb.cb.IsOpen()
}

// IsStatementError reports whether err proves the database is reachable: a
// missing row, a cancelled request, or a server error about the statement
// (bad input, constraint violation, undefined column). Connection, resource
// and operator-intervention classes are not statement errors.
func IsStatementError(err error) bool {
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, context.Canceled) {
		return true
	}

	var code string
	var pgErr *pgconn.PgError
	var pqErr *pq.Error
	switch {
	case errors.As(err, &pgErr):
		code = pgErr.Code
	case errors.As(err, &pqErr):
		code = string(pqErr.Code)
	default:
		return false
	}

	if len(code) < 2 {
		return false
	}
	switch code[:2] {
	case "08", "53", "57", "58", "XX":
		return false
	default:
		return true
	}
}

// statementKind returns the lower-cased leading keyword of query, used as a
// low-cardinality metric label.
func statementKind(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "other"
	}
	switch kw := strings.ToLower(fields[0]); kw {
	case "select", "insert", "update", "delete", "with", "begin":
		return kw
	default:
		return "other"
	}
}

func startSpan(ctx context.Context, op, query string) (context.Context, trace.Span) {
	return tracing.StartClientSpan(ctx, "db."+op,
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", op),
		attribute.String("db.statement", query),
	)
}

func observe(span trace.Span, op string, start time.Time, err error) {
	metrics.RecordDBQuery(op, time.Since(start))
	if err != nil && !IsStatementError(err) {
		metrics.RecordDBError(op)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
