package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"nc-news/internal/config"
	pgRepo "nc-news/internal/infra/adapter/persistence/postgres"
	"nc-news/internal/infra/db"
	"nc-news/internal/observability/logging"
	"nc-news/internal/observability/tracing"
	"nc-news/internal/resilience/circuitbreaker"
	envcfg "nc-news/pkg/config"

	artUC "nc-news/internal/usecase/article"
	comUC "nc-news/internal/usecase/comment"
	topicUC "nc-news/internal/usecase/topic"
	userUC "nc-news/internal/usecase/user"

	hhttp "nc-news/internal/handler/http"
	hapi "nc-news/internal/handler/http/api"
	harticle "nc-news/internal/handler/http/article"
	hcomment "nc-news/internal/handler/http/comment"
	"nc-news/internal/handler/http/requestid"
	htopic "nc-news/internal/handler/http/topic"
	huser "nc-news/internal/handler/http/user"

	_ "nc-news/docs" // swagger docs
)

// @title           NC News API
// @version         1.0
// @description     REST API for news articles, their comments, topics and users.
// @description     Listings support sorting, filtering and limit/p pagination.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:9090
// @BasePath  /

const serviceName = "nc-news"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := tracing.Setup(serviceName, cfg.Version, cfg.Tracing.Enabled)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	database, err := db.Open(ctx, cfg.Database.URL, cfg.Database.Pool)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()
	breaker := circuitbreaker.NewDBCircuitBreakerWithConfig(database, cfg.Database.Breaker)

	handler, err := buildHandler(cfg, logger, breaker)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout, // Prevent Slowloris attacks
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTP.Addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// buildHandler registers every route and wraps the mux in the middleware
// chain. Outermost first: request ID, rate limit, recovery, logging, body
// limit, metrics, tracing, mux.
func buildHandler(cfg config.Config, logger *slog.Logger, database *circuitbreaker.DBCircuitBreaker) (http.Handler, error) {
	artSvc := artUC.Service{Repo: pgRepo.NewArticleRepo(database)}
	comSvc := comUC.Service{Repo: pgRepo.NewCommentRepo(database)}
	topicSvc := topicUC.Service{Repo: pgRepo.NewTopicRepo(database)}
	userSvc := userUC.Service{Repo: pgRepo.NewUserRepo(database)}

	var limiter *hhttp.RateLimiter
	if cfg.RateLimit.Enabled {
		proxies, err := envcfg.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
		if err != nil {
			return nil, err
		}
		limiter, err = hhttp.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.MaxClients, proxies...)
		if err != nil {
			return nil, err
		}
		logger.Info("rate limiting initialized",
			slog.Float64("rps", cfg.RateLimit.RPS),
			slog.Int("burst", cfg.RateLimit.Burst),
			slog.Int("max_clients", cfg.RateLimit.MaxClients),
			slog.Int("trusted_proxies", len(proxies)))
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	health := &hhttp.HealthHandler{DB: database, Breaker: database, Version: cfg.Version}
	if limiter != nil {
		health.Limiter = limiter
	}

	mux := http.NewServeMux()
	mux.Handle("GET /health", health)
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database, Breaker: database})
	mux.Handle("GET /live", hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	hapi.Register(mux)
	harticle.Register(mux, artSvc, cfg.Pagination, logger)
	hcomment.Register(mux, comSvc, cfg.Pagination, logger)
	htopic.Register(mux, topicSvc)
	huser.Register(mux, userSvc)

	var h http.Handler = tracing.Middleware(mux)
	h = hhttp.MetricsMiddleware(h)
	h = hhttp.LimitRequestBody(cfg.HTTP.MaxBodyBytes)(h)
	h = hhttp.Logging(logger)(h)
	h = hhttp.Recover(logger)(h)
	if limiter != nil {
		h = limiter.Limit(h)
	}
	h = requestid.Middleware(h)
	return h, nil
}
