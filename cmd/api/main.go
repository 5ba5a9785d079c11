package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	memRepo "doc-genie/internal/infra/adapter/persistence/memory"
	pgRepo "doc-genie/internal/infra/adapter/persistence/postgres"
	"doc-genie/internal/infra/db"
	"doc-genie/internal/infra/generator"
	"doc-genie/internal/repository"
	"doc-genie/pkg/config"
	"doc-genie/pkg/ratelimit"

	artUC "doc-genie/internal/usecase/article"

	hhttp "doc-genie/internal/handler/http"
	harticle "doc-genie/internal/handler/http/article"
	hauth "doc-genie/internal/handler/http/auth"
	"doc-genie/internal/handler/http/requestid"
)

func main() {
	logger := initLogger()

	secret := validateJWTSecret(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rateLimitCfg, err := config.LoadRateLimitConfig()
	if err != nil {
		logger.Error("failed to load rate limit configuration", slog.Any("error", err))
		os.Exit(1)
	}

	database, store, repo := initStorage(ctx, logger)
	if database != nil {
		defer func() {
			if err := database.Close(); err != nil {
				logger.Error("failed to close database", slog.Any("error", err))
			}
		}()
	}

	limiter := ratelimit.NewLimiter(rateLimitCfg, store, ratelimit.LimiterOptions{
		Metrics: ratelimit.NewPrometheusMetrics(prometheus.DefaultRegisterer),
		Logger:  logger,
	})

	resolver := hauth.NewResolver(hauth.NewJWTVerifier([]byte(secret)), logger)
	svc := artUC.NewService(repo, initGenerator(logger))

	apiMux := http.NewServeMux()
	harticle.Register(apiMux, svc, resolver, limiter)

	handler := hhttp.Chain(apiMux,
		requestid.Middleware,
		hhttp.LoggingMiddleware(logger),
		hhttp.MetricsMiddleware,
		hhttp.TimeoutMiddleware(150*time.Second),
	)

	opsMux := http.NewServeMux()
	opsMux.Handle("/health", &hhttp.HealthHandler{DB: database, Version: getVersion()})
	opsMux.Handle("/live", &hhttp.LiveHandler{})
	opsMux.Handle("/metrics", hhttp.MetricsHandler())

	scheduler := startPurgeScheduler(ctx, logger, store)
	defer scheduler.Stop()

	runServers(ctx, logger, handler, opsMux)
}

// initLogger initializes and returns a structured logger based on environment configuration.
func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// validateJWTSecret validates the JWT_SECRET environment variable for security requirements.
func validateJWTSecret(logger *slog.Logger) string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Error("JWT_SECRET must be set")
		os.Exit(1)
	}
	if len(secret) < 32 {
		logger.Error("JWT_SECRET must be at least 32 characters (256 bits)")
		os.Exit(1)
	}
	return secret
}

// initStorage opens the configured persistence backend.
//
// With DATABASE_URL set, counters and articles live in Postgres. Without
// it, both fall back to in-memory implementations suitable for local
// development only.
func initStorage(ctx context.Context, logger *slog.Logger) (*sql.DB, ratelimit.Store, repository.ArticleRepository) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Warn("DATABASE_URL not set, using in-memory storage")
		return nil, ratelimit.NewMemoryStore(), memRepo.NewArticleRepo()
	}

	database, err := db.Open(ctx, dsn)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	return database, pgRepo.NewRateLimitStore(database), pgRepo.NewArticleRepo(database)
}

// initGenerator selects the AI provider from AI_PROVIDER.
// Supported values: "claude" (default when ANTHROPIC_API_KEY is set),
// "openai", "noop".
func initGenerator(logger *slog.Logger) generator.Generator {
	provider := os.Getenv("AI_PROVIDER")
	if provider == "" && os.Getenv("ANTHROPIC_API_KEY") != "" {
		provider = "claude"
	}

	switch provider {
	case "claude":
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			logger.Error("ANTHROPIC_API_KEY must be set for the claude provider")
			os.Exit(1)
		}
		return generator.NewClaude(key)
	case "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			logger.Error("OPENAI_API_KEY must be set for the openai provider")
			os.Exit(1)
		}
		return generator.NewOpenAI(key)
	default:
		logger.Warn("no AI provider configured, using noop generator",
			slog.String("provider", provider))
		return generator.NewNoOp()
	}
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// startPurgeScheduler runs an hourly sweep deleting expired counters.
// Expiry is enforced by reads either way; the sweep only bounds growth.
func startPurgeScheduler(ctx context.Context, logger *slog.Logger, store ratelimit.Store) *cron.Cron {
	scheduler := cron.New()
	_, err := scheduler.AddFunc("@hourly", func() {
		purgeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		removed, err := store.PurgeExpired(purgeCtx, time.Now())
		if err != nil {
			logger.Error("rate limit purge failed", slog.Any("error", err))
			return
		}
		logger.Info("rate limit purge completed", slog.Int64("removed", removed))
	})
	if err != nil {
		logger.Error("failed to schedule rate limit purge", slog.Any("error", err))
		os.Exit(1)
	}
	scheduler.Start()
	return scheduler
}

// runServers starts the API and operations listeners and handles graceful shutdown.
func runServers(ctx context.Context, logger *slog.Logger, apiHandler, opsHandler http.Handler) {
	apiAddr := config.GetEnvString("LISTEN_ADDR", ":8080")
	opsAddr := config.GetEnvString("OPS_LISTEN_ADDR", ":9090")

	apiSrv := &http.Server{
		Addr:              apiAddr,
		Handler:           apiHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	opsSrv := &http.Server{
		Addr:              opsAddr,
		Handler:           opsHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("api server starting",
			slog.String("addr", apiAddr),
			slog.String("version", getVersion()))
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("ops server starting", slog.String("addr", opsAddr))
		if err := opsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down servers...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := apiSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("api server shutdown failed", slog.Any("error", err))
		}
		if err := opsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("ops server shutdown failed", slog.Any("error", err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("servers stopped")
}
