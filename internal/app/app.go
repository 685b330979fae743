// Package app wires configuration, adapters, services and transport into a
// running HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/shadowing-backend/internal/adapter/cache/explanation"
	"github.com/heartmarshall/shadowing-backend/internal/adapter/postgres"
	"github.com/heartmarshall/shadowing-backend/internal/adapter/postgres/practicesession"
	"github.com/heartmarshall/shadowing-backend/internal/adapter/postgres/vocabulary"
	"github.com/heartmarshall/shadowing-backend/internal/adapter/provider/freedict"
	"github.com/heartmarshall/shadowing-backend/internal/auth"
	"github.com/heartmarshall/shadowing-backend/internal/config"
	"github.com/heartmarshall/shadowing-backend/internal/observe"
	"github.com/heartmarshall/shadowing-backend/internal/service/practice"
	"github.com/heartmarshall/shadowing-backend/internal/transport/middleware"
	"github.com/heartmarshall/shadowing-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, serves HTTP until ctx is canceled, then shuts down
// gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	tel, err := observe.InitProvider(observe.ProviderConfig{
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: Version,
	})
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown", slog.String("error", err.Error()))
		}
	}()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	dictionary := freedict.NewProvider(freedict.Config{
		BaseURL:    cfg.Explanation.BaseURL,
		Timeout:    cfg.Explanation.Timeout,
		RetryDelay: cfg.Explanation.RetryDelay,
		UserAgent:  UserAgent(),
	}, logger)
	explainer := explanation.New(dictionary, cfg.Explanation.CacheSize, cfg.Explanation.CacheTTL, tel.Metrics, logger)

	svc := practice.NewService(
		logger,
		practicesession.New(pool),
		vocabulary.New(pool),
		explainer,
		postgres.NewTxManager(pool),
		tel.Metrics,
		practice.Config{
			MaxSaveAttempts:    cfg.Practice.MaxSaveAttempts,
			ExplainConcurrency: cfg.Practice.ExplainConcurrency,
			MaxTextRunes:       cfg.Practice.MaxTextRunes,
		},
	)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := newHandler(handlerDeps{
		cfg:       cfg,
		logger:    logger,
		service:   svc,
		metrics:   tel.Metrics,
		scrape:    tel.Handler(),
		checks:    map[string]rest.Pinger{"database": pool},
		validator: auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, 0),
		limiter:   limiter,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

type handlerDeps struct {
	cfg       *config.Config
	logger    *slog.Logger
	service   *practice.Service
	metrics   *observe.Metrics
	scrape    http.Handler
	checks    map[string]rest.Pinger
	validator *auth.JWTManager
	limiter   *middleware.RateLimiter
}

// newHandler assembles the router and the global middleware chain. Order
// matters: Logger and Recovery sit directly around the mux so the matched
// route is visible to Telemetry and Logger.
func newHandler(d handlerDeps) http.Handler {
	return rest.NewRouter(rest.RouterDeps{
		Practice:    rest.NewPracticeHandler(d.service, d.logger, d.cfg.Server.MaxBodyBytes),
		Health:      rest.NewHealthHandler(BuildVersion(), d.checks),
		Metrics:     d.scrape,
		MetricsPath: d.cfg.Telemetry.MetricsPath,
		ScoreLimit:  d.limiter.Limit(d.cfg.Server.ScoreRatePerMinute),
		Global: middleware.Chain(
			middleware.RequestID,
			middleware.CORS(d.cfg.CORS),
			middleware.Auth(d.validator),
			middleware.Telemetry(d.metrics),
			middleware.Logger(d.logger),
			middleware.Recovery(d.logger),
		),
	})
}

func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received, draining connections",
		slog.Duration("timeout", shutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	logger.Info("http server stopped")
	return nil
}
