// Package http provides the middleware, health probes and metrics endpoint
// shared by the resource handlers in its subpackages.
package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"nc-news/internal/handler/http/respond"
)

// Check outcomes, ordered from best to worst.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// poolSaturation is the in-use share of the pool reported as degraded.
const poolSaturation = 0.8

var statusRank = map[string]int{StatusHealthy: 0, StatusDegraded: 1, StatusUnhealthy: 2}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the outcome of one named check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// DBProbe is the part of the database handle the probes use. Both *sql.DB
// and the circuit breaker wrapper satisfy it.
type DBProbe interface {
	PingContext(ctx context.Context) error
	Stats() sql.DBStats
}

// BreakerState reports the database circuit breaker state.
type BreakerState interface {
	State() gobreaker.State
}

// ClientCounter reports how many clients the rate limiter tracks.
type ClientCounter interface {
	Clients() int
}

// HealthHandler serves GET /health. The overall status is the worst check;
// only an unhealthy check turns the response into 503.
type HealthHandler struct {
	DB      DBProbe
	Breaker BreakerState  // optional
	Limiter ClientCounter // optional
	Version string
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]CheckStatus{"database": databaseCheck(ctx, h.DB)}
	if h.Breaker != nil {
		checks["circuit_breaker"] = breakerCheck(h.Breaker.State())
	}
	if h.Limiter != nil {
		checks["rate_limiter"] = CheckStatus{
			Status:  StatusHealthy,
			Details: map[string]any{"active_clients": h.Limiter.Clients()},
		}
	}

	overall := StatusHealthy
	for _, c := range checks {
		if statusRank[c.Status] > statusRank[overall] {
			overall = c.Status
		}
	}

	code := http.StatusOK
	if overall == StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Cache-Control", "no-store")
	respond.JSON(w, code, HealthResponse{
		Status:    overall,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

// databaseCheck pings the pool and grades its utilisation. An unbounded
// pool cannot be graded and is reported as degraded.
func databaseCheck(ctx context.Context, db DBProbe) CheckStatus {
	if db == nil {
		return CheckStatus{Status: StatusUnhealthy, Message: "not configured"}
	}
	if err := db.PingContext(ctx); err != nil {
		return CheckStatus{Status: StatusUnhealthy, Message: respond.SanitizeError(err)}
	}

	stats := db.Stats()
	check := CheckStatus{
		Status: StatusHealthy,
		Details: map[string]any{
			"max_open_connections": stats.MaxOpenConnections,
			"open_connections":     stats.OpenConnections,
			"in_use":               stats.InUse,
			"idle":                 stats.Idle,
			"wait_count":           stats.WaitCount,
			"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
		},
	}
	if stats.MaxOpenConnections == 0 {
		check.Status = StatusDegraded
		check.Message = "connection pool is unbounded"
		return check
	}

	utilisation := float64(stats.InUse) / float64(stats.MaxOpenConnections)
	check.Details["utilization_percent"] = utilisation * 100
	if utilisation >= poolSaturation {
		check.Status = StatusDegraded
		check.Message = "connection pool utilization above 80%"
	}
	return check
}

// breakerCheck reports an open breaker as degraded: statements fail fast
// with 500 until it half-opens, but the process itself is fine.
func breakerCheck(state gobreaker.State) CheckStatus {
	check := CheckStatus{
		Status:  StatusHealthy,
		Details: map[string]any{"state": state.String()},
	}
	if state == gobreaker.StateOpen {
		check.Status = StatusDegraded
		check.Message = "database circuit breaker is open"
	}
	return check
}

// ReadyHandler serves GET /ready: 200 once the database answers a ping and
// the breaker is not open, 503 otherwise.
type ReadyHandler struct {
	DB      DBProbe
	Breaker BreakerState // optional
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	reason := ""
	switch {
	case h.DB == nil:
		reason = "database not configured"
	case h.Breaker != nil && h.Breaker.State() == gobreaker.StateOpen:
		reason = "database circuit breaker is open"
	default:
		if err := h.DB.PingContext(ctx); err != nil {
			reason = "database not ready: " + respond.SanitizeError(err)
		}
	}

	w.Header().Set("Cache-Control", "no-store")
	if reason != "" {
		respond.JSON(w, http.StatusServiceUnavailable, CheckStatus{Status: StatusUnhealthy, Message: reason})
		return
	}
	respond.JSON(w, http.StatusOK, CheckStatus{Status: StatusHealthy})
}

// LiveHandler serves GET /live and answers 200 while the process runs.
type LiveHandler struct{}

func (LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, CheckStatus{Status: StatusHealthy})
}
