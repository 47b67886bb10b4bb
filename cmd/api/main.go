package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/garcia-realty/leadflow/internal/api/router"
	"github.com/garcia-realty/leadflow/internal/compliance"
	appconfig "github.com/garcia-realty/leadflow/internal/config"
	"github.com/garcia-realty/leadflow/internal/observability/metrics"
	"github.com/garcia-realty/leadflow/internal/qualification"
	"github.com/garcia-realty/leadflow/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting leadflow API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var pool *pgxpool.Pool
	var repo qualification.Repository = qualification.NewInMemoryRepository()
	if cfg.DatabaseURL != "" {
		var err error
		pool, err = pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		repo = qualification.NewPostgresRepository(pool)
	} else {
		logger.Warn("DATABASE_URL unset, storing results in memory")
	}

	var cache *qualification.ResultCache
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		cache = qualification.NewResultCache(redis.NewClient(opts), cfg.ResultCacheTTL)
	}

	registry := prometheus.NewRegistry()
	pipelineMetrics := metrics.NewPipelineMetrics(registry)

	engine := qualification.NewEngine(qualification.EngineConfig{
		Classifier: qualification.NewClassifier(cfg.SellerTags, cfg.BuyerTags),
		Gate:       qualification.NewComplianceGate(cfg.DeactivationTags),
		Repo:       repo,
		Cache:      cache,
		Metrics:    pipelineMetrics,
		Logger:     logger,
	})

	handler := qualification.NewHandler(qualification.HandlerConfig{
		Engine:  engine,
		Audit:   compliance.NewAuditService(pool),
		Repo:    repo,
		Cache:   cache,
		Metrics: pipelineMetrics,
		Logger:  logger,
	})

	r := router.New(&router.Config{
		Logger:               logger,
		QualificationHandler: handler,
		MetricsHandler:       promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins:   cfg.CORSAllowedOrigins,
		RateLimitPerSecond:   cfg.RateLimitPerSecond,
		RateLimitBurst:       cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
