package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/WeblateOrg/weblate-sub003/internal/handlers"
	"github.com/WeblateOrg/weblate-sub003/internal/infrastructure/cache"
	"github.com/WeblateOrg/weblate-sub003/internal/infrastructure/config"
	"github.com/WeblateOrg/weblate-sub003/internal/infrastructure/database"
	"github.com/WeblateOrg/weblate-sub003/internal/infrastructure/metrics"
	"github.com/WeblateOrg/weblate-sub003/internal/repositories/postgres"
	"github.com/WeblateOrg/weblate-sub003/internal/services"
	"github.com/WeblateOrg/weblate-sub003/internal/services/accesscontrol"
	"github.com/WeblateOrg/weblate-sub003/pkg/cache/memorycache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const defaultEnv = "dev"

func main() {
	// Get environment from ENV variable or use default
	env := os.Getenv("ENV")
	if env == "" {
		env = defaultEnv
	}

	logger, err := newLogger(env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Initialize configuration
	if err := config.InitConfig(env); err != nil {
		logger.Fatal("Failed to initialize config", zap.Error(err))
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Connect to database
	pg, err := database.NewPostgres(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pg.Close()

	logger.Info("Connected to database",
		zap.String("user", cfg.Database.User),
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("database", cfg.Database.Database))

	// Initialize repositories
	userRepo := postgres.NewPostgresUserRepository(pg.DB)
	roleRepo := postgres.NewPostgresRoleRepository(pg.DB)
	groupRepo := postgres.NewPostgresGroupRepository(pg.DB)
	catalogRepo := postgres.NewPostgresCatalogRepository(pg.DB)

	// Initialize services
	directory := services.NewDirectoryService(userRepo, roleRepo, groupRepo)
	catalog := services.NewCatalogService(catalogRepo)
	resolver := accesscontrol.NewResolver(catalogRepo)

	collector := metrics.NewCollector()
	exporter := metrics.NewPrometheusExporter(collector)

	var checker accesscontrol.CheckerInterface
	if cfg.Cache.Enabled {
		accessCache, err := memorycache.New(&memorycache.Config{
			MaxSizeBytes:  cfg.Cache.MaxMemoryBytes,
			DefaultTTL:    time.Duration(cfg.Cache.TTLMinutes) * time.Minute,
			EnableMetrics: cfg.Cache.Metrics,
		})
		if err != nil {
			logger.Fatal("Failed to create access cache", zap.Error(err))
		}
		collector.SetCache(accessCache)

		revisions := cache.NewRevisionManager(pg.DB, cfg.Database.ConnectionString(), 30*time.Second)
		if err := revisions.Start(context.Background()); err != nil {
			logger.Fatal("Failed to start revision manager", zap.Error(err))
		}
		defer revisions.Stop()

		checker = accesscontrol.NewCheckerWithCache(
			directory,
			resolver,
			accessCache,
			revisions,
			time.Duration(cfg.Cache.TTLMinutes)*time.Minute,
		)
		logger.Info("Access cache enabled",
			zap.Int64("max_memory_bytes", cfg.Cache.MaxMemoryBytes),
			zap.Int("ttl_minutes", cfg.Cache.TTLMinutes))
	} else {
		checker = accesscontrol.NewChecker(directory, resolver)
	}

	lookup := accesscontrol.NewLookup(checker, catalogRepo, userRepo)

	// Assemble the HTTP API
	router := handlers.NewRouter(
		handlers.NewAccessHandler(checker, lookup),
		handlers.NewDirectoryHandler(directory),
		handlers.NewCatalogHandler(catalog),
		handlers.RouterConfig{
			Logger:         logger,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			JWTSecret:      cfg.Auth.JWTSecret,
			Metrics:        metrics.Middleware(collector, exporter),
			Health:         pg.HealthCheck,
		},
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	metricsServer := startMetricsServer(cfg.Server.MetricsPort, exporter, logger)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	select {
	case err := <-serverErrors:
		logger.Fatal("Server error", zap.Error(err))
	case sig := <-sigChan:
		logger.Info("Received signal, initiating graceful shutdown", zap.String("signal", sig.String()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Shutdown timeout exceeded, forcing close", zap.Error(err))
			server.Close()
		}
		if metricsServer != nil {
			metricsServer.Shutdown(shutdownCtx)
		}

		logger.Info("Shutdown complete")
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// startMetricsServer serves Prometheus metrics on a separate port. The
// exporter's gauges are refreshed on a fixed interval.
func startMetricsServer(port int, exporter *metrics.PrometheusExporter, logger *zap.Logger) *http.Server {
	if port == 0 {
		return nil
	}

	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			exporter.Update()
		}
	}()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}
	go func() {
		logger.Info("Metrics server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Metrics server error", zap.Error(err))
		}
	}()
	return server
}
