package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osmanylima/osmany-lima/internal/config"
	"github.com/osmanylima/osmany-lima/internal/handler"
	"github.com/osmanylima/osmany-lima/internal/metrics"
	"github.com/osmanylima/osmany-lima/internal/middleware"
	"github.com/osmanylima/osmany-lima/internal/service"
	"github.com/osmanylima/osmany-lima/pkg/cache"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.uber.org/zap"
)

type Application struct {
	config   *config.Config
	router   *gin.Engine
	logger   *zap.Logger
	redis    *cache.RedisClient
	registry *prometheus.Registry
	server   *http.Server
}

// New wires the application. Redis is optional: when it is not configured or
// not reachable the rate limiter falls back to an in-process store.
func New(cfg *config.Config, logger *zap.Logger) (*Application, error) {
	var redisClient *cache.RedisClient
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(cfg.Redis, logger)
		if err != nil {
			logger.Error("Failed to create Redis client", zap.Error(err))
		} else {
			redisClient = client
		}
	}

	switch cfg.Server.Mode {
	case gin.ReleaseMode:
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	app := &Application{
		config:   cfg,
		router:   router,
		logger:   logger,
		redis:    redisClient,
		registry: registry,
	}

	rateLimiter, err := app.newRateLimiter()
	if err != nil {
		_ = redisClient.Close()
		return nil, err
	}

	currencyService := service.NewCurrencyService(logger, m)
	currencyHandler := handler.NewCurrencyHandler(currencyService, logger, cfg.Exchange.LegacyRouteMismatchStatus)

	var pinger handler.Pinger
	if redisClient != nil {
		pinger = redisClient
	}
	healthHandler := handler.NewHealthHandler(pinger)

	app.setupMiddleware(m, rateLimiter)
	app.setupRouter(currencyHandler, healthHandler)
	logger.Info("Application initialized",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.String("mode", gin.Mode()),
		zap.Bool("redis_connected", redisClient != nil),
		zap.Bool("rate_limit", rateLimiter != nil),
	)
	return app, nil
}

// NewLogger builds the zap logger described by cfg.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zcfg.Level = level
	return zcfg.Build()
}

func (a *Application) newRateLimiter() (*limiter.Limiter, error) {
	if !a.config.RateLimit.Enabled {
		return nil, nil
	}
	rate, err := limiter.NewRateFromFormatted(a.config.RateLimit.Rate)
	if err != nil {
		return nil, fmt.Errorf("parse rate limit %q: %w", a.config.RateLimit.Rate, err)
	}

	store := memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: a.config.RateLimit.Prefix})
	if a.redis != nil {
		store, err = sredis.NewStoreWithOptions(a.redis.Client(), limiter.StoreOptions{
			Prefix:   a.config.RateLimit.Prefix,
			MaxRetry: 3,
		})
		if err != nil {
			return nil, fmt.Errorf("create redis rate limit store: %w", err)
		}
	}
	return limiter.New(store, rate), nil
}

func (a *Application) setupMiddleware(m *metrics.Metrics, rateLimiter *limiter.Limiter) {
	a.router.Use(middleware.RequestIDMiddleware())
	a.router.Use(middleware.RecoveryMiddleware(a.logger))
	a.router.Use(middleware.LoggingMiddleware(a.logger, "/health", a.config.Metrics.Path))
	a.router.Use(middleware.MetricsMiddleware(m))
	a.router.Use(middleware.CORSMiddleware(a.config.CORS.AllowedOrigins))
	a.router.Use(middleware.JSONContentType())
	if rateLimiter != nil {
		a.router.Use(middleware.RateLimit(rateLimiter, a.logger))
	}
	a.logger.Debug("Middleware configured")
}

func (a *Application) setupRouter(currencyHandler *handler.CurrencyHandler, healthHandler *handler.HealthHandler) {
	a.router.GET("/health", healthHandler.HealthCheck)
	a.router.GET("/exchange/*params", currencyHandler.Exchange)
	if a.config.Metrics.Enabled {
		a.router.GET(a.config.Metrics.Path, gin.WrapH(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})))
	}
	a.router.NoRoute(currencyHandler.NotFound)
	a.logger.Debug("Routes configured",
		zap.String("health", "GET /health"),
		zap.String("exchange", "GET /exchange/{amount}/{from}/{to}/{rate}"),
		zap.Bool("metrics", a.config.Metrics.Enabled),
	)
}

// Handler exposes the configured router.
func (a *Application) Handler() http.Handler {
	return a.router
}

// Run serves until the server fails or SIGINT/SIGTERM arrives, then shuts
// down gracefully.
func (a *Application) Run() error {
	a.server = &http.Server{
		Addr:         a.config.Server.Addr(),
		Handler:      a.router,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)

	go func() {
		a.logger.Info("Server starting",
			zap.String("address", a.server.Addr),
			zap.String("mode", a.config.Server.Mode),
		)

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serverErr:
		if !ok {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		a.logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		return a.Shutdown()
	}
}

// Shutdown stops accepting connections, waits for in-flight requests up to
// the configured timeout and releases Redis.
func (a *Application) Shutdown() error {
	a.logger.Info("Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("graceful shutdown failed: %w", err))
		}
	}
	if err := a.redis.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close redis: %w", err))
	}

	_ = a.logger.Sync()
	a.logger.Info("Server stopped gracefully")
	return errors.Join(errs...)
}
