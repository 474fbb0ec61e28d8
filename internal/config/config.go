// Package config assembles the runtime configuration of the API server.
//
// Values come from three layers, later ones winning: built-in defaults, an
// optional YAML file named by CONFIG_FILE, and environment variables.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"nc-news/internal/common/pagination"
	"nc-news/internal/infra/db"
	"nc-news/internal/resilience/circuitbreaker"
	envcfg "nc-news/pkg/config"
)

type Config struct {
	HTTP       HTTPConfig        `yaml:"http"`
	Database   DatabaseConfig    `yaml:"database"`
	Pagination pagination.Config `yaml:"pagination"`
	RateLimit  RateLimitConfig   `yaml:"rate_limit"`
	Log        LogConfig         `yaml:"log"`
	Tracing    TracingConfig     `yaml:"tracing"`
	Version    string            `yaml:"version"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
}

type DatabaseConfig struct {
	URL     string                `yaml:"url"`
	Pool    db.ConnectionConfig   `yaml:"pool"`
	Breaker circuitbreaker.Config `yaml:"breaker"`
}

// RateLimitConfig configures the per-client limiter. Forwarding headers are
// honoured only for peers inside TrustedProxies (IPs or CIDR ranges).
type RateLimitConfig struct {
	Enabled        bool     `yaml:"enabled"`
	RPS            float64  `yaml:"rps"`
	Burst          int      `yaml:"burst"`
	MaxClients     int      `yaml:"max_clients"`
	TrustedProxies []string `yaml:"trusted_proxies"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type TracingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:            ":9090",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		Database: DatabaseConfig{
			Pool:    db.DefaultConnectionConfig(),
			Breaker: circuitbreaker.DBConfig(),
		},
		Pagination: pagination.DefaultConfig(),
		RateLimit: RateLimitConfig{
			Enabled:    true,
			RPS:        10,
			Burst:      20,
			MaxClients: 10000,
		},
		Log:     LogConfig{Level: "info", Format: "json"},
		Tracing: TracingConfig{Enabled: false},
		Version: "dev",
	}
}

// Load builds the configuration from defaults, CONFIG_FILE and the
// environment, then validates it.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// mergeFile overlays the YAML file at path. Keys absent from the file keep
// their current values.
func (c *Config) mergeFile(path string) error {
	// #nosec G304 -- path comes from the operator, not from requests
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.HTTP.Addr = envcfg.GetEnvString("HTTP_ADDR", c.HTTP.Addr)
	c.HTTP.ShutdownTimeout = envcfg.GetEnvDuration("HTTP_SHUTDOWN_TIMEOUT", c.HTTP.ShutdownTimeout)

	c.Database.URL = envcfg.GetEnvString("DATABASE_URL", c.Database.URL)
	c.Database.Pool.MaxOpenConns = envcfg.GetEnvInt("DB_MAX_OPEN_CONNS", c.Database.Pool.MaxOpenConns)
	c.Database.Pool.MaxIdleConns = envcfg.GetEnvInt("DB_MAX_IDLE_CONNS", c.Database.Pool.MaxIdleConns)
	c.Database.Pool.ConnMaxLifetime = envcfg.GetEnvDuration("DB_CONN_MAX_LIFETIME", c.Database.Pool.ConnMaxLifetime)
	c.Database.Pool.ConnMaxIdleTime = envcfg.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", c.Database.Pool.ConnMaxIdleTime)
	c.Database.Breaker.Timeout = envcfg.GetEnvDuration("DB_BREAKER_TIMEOUT", c.Database.Breaker.Timeout)
	c.Database.Breaker.FailureThreshold = envcfg.GetEnvFloat("DB_BREAKER_FAILURE_THRESHOLD", c.Database.Breaker.FailureThreshold)
	c.Database.Breaker.MinRequests = envUint32("DB_BREAKER_MIN_REQUESTS", c.Database.Breaker.MinRequests)

	c.Pagination.DefaultLimit = envcfg.GetEnvInt("PAGINATION_DEFAULT_LIMIT", c.Pagination.DefaultLimit)
	c.Pagination.DefaultPage = envcfg.GetEnvInt("PAGINATION_DEFAULT_PAGE", c.Pagination.DefaultPage)

	c.RateLimit.Enabled = envcfg.GetEnvBool("RATELIMIT_ENABLED", c.RateLimit.Enabled)
	c.RateLimit.RPS = envcfg.GetEnvFloat("RATELIMIT_RPS", c.RateLimit.RPS)
	c.RateLimit.Burst = envcfg.GetEnvInt("RATELIMIT_BURST", c.RateLimit.Burst)
	c.RateLimit.MaxClients = envcfg.GetEnvInt("RATELIMIT_MAX_CLIENTS", c.RateLimit.MaxClients)
	c.RateLimit.TrustedProxies = envcfg.GetEnvList("RATELIMIT_TRUSTED_PROXIES", c.RateLimit.TrustedProxies)

	c.Log.Level = envcfg.GetEnvString("LOG_LEVEL", c.Log.Level)
	c.Log.Format = envcfg.GetEnvString("LOG_FORMAT", c.Log.Format)
	c.Tracing.Enabled = envcfg.GetEnvBool("TRACING_ENABLED", c.Tracing.Enabled)
	c.Version = envcfg.GetEnvString("VERSION", c.Version)
}

// envUint32 reads a count; negative or oversized values keep def.
func envUint32(key string, def uint32) uint32 {
	v := envcfg.GetEnvInt(key, int(def))
	if v < 0 || int64(v) > math.MaxUint32 {
		return def
	}
	return uint32(v)
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("http addr is required"))
	}
	if c.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	for name, d := range map[string]time.Duration{
		"http read_timeout":     c.HTTP.ReadTimeout,
		"http write_timeout":    c.HTTP.WriteTimeout,
		"http idle_timeout":     c.HTTP.IdleTimeout,
		"http shutdown_timeout": c.HTTP.ShutdownTimeout,
	} {
		if err := envcfg.ValidatePositiveDuration(d); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("http max_body_bytes must be positive, got %d", c.HTTP.MaxBodyBytes))
	}
	if err := c.Database.Pool.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Database.Breaker.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Pagination.DefaultLimit < 1 {
		errs = append(errs, fmt.Errorf("pagination default_limit must be at least 1, got %d", c.Pagination.DefaultLimit))
	}
	if c.Pagination.DefaultPage < 1 {
		errs = append(errs, fmt.Errorf("pagination default_page must be at least 1, got %d", c.Pagination.DefaultPage))
	}
	if c.RateLimit.Enabled {
		if err := envcfg.ValidatePositiveFloat(c.RateLimit.RPS); err != nil {
			errs = append(errs, fmt.Errorf("rate_limit rps: %w", err))
		}
		if err := envcfg.ValidateIntRange(c.RateLimit.Burst, 1, 1_000_000); err != nil {
			errs = append(errs, fmt.Errorf("rate_limit burst: %w", err))
		}
		if err := envcfg.ValidateIntRange(c.RateLimit.MaxClients, 1, 10_000_000); err != nil {
			errs = append(errs, fmt.Errorf("rate_limit max_clients: %w", err))
		}
		if _, err := envcfg.ParseTrustedProxies(c.RateLimit.TrustedProxies); err != nil {
			errs = append(errs, fmt.Errorf("rate_limit trusted_proxies: %w", err))
		}
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log format must be json or text, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}
