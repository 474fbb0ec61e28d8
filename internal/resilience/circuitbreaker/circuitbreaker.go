// Package circuitbreaker guards the database pool with a gobreaker circuit
// breaker so an unreachable PostgreSQL fails requests fast instead of
// queueing them behind connection timeouts.
package circuitbreaker

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Config tunes a breaker. The zero values of Name and IsSuccessful are
// filled in by the constructor that owns the breaker.
type Config struct {
	Name string `yaml:"-"`

	// MaxRequests is the number of trial calls let through while half-open.
	MaxRequests uint32 `yaml:"max_requests"`
	// Interval clears the closed-state counts; 0 never clears them.
	Interval time.Duration `yaml:"interval"`
	// Timeout is how long the breaker stays open before half-opening.
	Timeout time.Duration `yaml:"timeout"`
	// FailureThreshold is the failure ratio, in (0, 1], that trips the breaker.
	FailureThreshold float64 `yaml:"failure_threshold"`
	// MinRequests is the number of calls observed before the ratio applies.
	MinRequests uint32 `yaml:"min_requests"`

	// IsSuccessful reports whether a non-nil error still counts as a success.
	// Nil means every error is a failure.
	IsSuccessful func(err error) bool `yaml:"-"`
}

// Validate checks the tunables; Name and IsSuccessful are not inspected.
func (c Config) Validate() error {
	var errs []error
	if c.MaxRequests == 0 {
		errs = append(errs, errors.New("circuit breaker max_requests must be positive"))
	}
	if c.Interval < 0 {
		errs = append(errs, fmt.Errorf("circuit breaker interval must be non-negative, got %s", c.Interval))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("circuit breaker timeout must be positive, got %s", c.Timeout))
	}
	if c.FailureThreshold <= 0 || c.FailureThreshold > 1 {
		errs = append(errs, fmt.Errorf("circuit breaker failure_threshold must be in (0, 1], got %g", c.FailureThreshold))
	}
	if c.MinRequests == 0 {
		errs = append(errs, errors.New("circuit breaker min_requests must be positive"))
	}
	return errors.Join(errs...)
}

// CircuitBreaker wraps gobreaker.CircuitBreaker with ratio-based tripping and
// state change logging.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
}

func New(cfg Config) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}
	if cfg.IsSuccessful != nil {
		isSuccessful := cfg.IsSuccessful
		settings.IsSuccessful = func(err error) bool {
			return err == nil || isSuccessful(err)
		}
	}
	return &CircuitBreaker{breaker: gobreaker.NewCircuitBreaker(settings)}
}

// Execute runs fn unless the breaker is open, in which case it returns
// gobreaker.ErrOpenState without calling fn.
func (cb *CircuitBreaker) Execute(fn func() (any, error)) (any, error) {
	return cb.breaker.Execute(fn)
}

func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}
