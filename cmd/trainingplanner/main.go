package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/javy001/trainingplanner/internal/adapters/http/api"
	"github.com/javy001/trainingplanner/internal/adapters/http/swagger"
	"github.com/javy001/trainingplanner/internal/adapters/repository"
	"github.com/javy001/trainingplanner/internal/adapters/source"
	app "github.com/javy001/trainingplanner/internal/app"
	"github.com/javy001/trainingplanner/internal/config"
	"github.com/javy001/trainingplanner/pkg/logger"
	"github.com/javy001/trainingplanner/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 30 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	serviceMetricsInterval = 10 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			logger.Error(err)
		}
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, err := buildStore(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to build store", logger.Error(err))
		return
	}

	opts := []app.Option{
		app.WithLogger(log),
		app.WithStore(store),
		app.WithBridgeName(cfg.BridgeName),
		app.WithLaunchImportDays(cfg.LaunchImportDays),
		app.WithDurationTolerance(cfg.DurationTolerance),
		app.WithDistanceTolerance(cfg.DistanceToleranceMiles),
	}
	if cfg.SourceURL != "" {
		opts = append(opts, app.WithSource(source.NewHTTPProvider(cfg.SourceURL)))
	} else {
		log.Warn(ctx, "no source_url configured; importing disabled")
	}

	svc := app.New(opts...)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	go startServiceMetricsUpdater(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// API documentation under /api-docs
	swagger.Register(ctx, mux)

	// Business API routes with the service dependency.
	api.NewServer(svc).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// buildStore selects the workout store backend from configuration.
func buildStore(ctx context.Context, cfg *config.Config, log logger.Logger) (repository.Store, error) {
	switch cfg.StoreBackend {
	case "postgres":
		log.Info(ctx, "using postgres store")
		return repository.NewPostgresStore(ctx, cfg.PostgresDSN)
	default:
		log.Info(ctx, "using in-memory store")
		return repository.NewMemoryStore(), nil
	}
}

// startServiceMetricsUpdater keeps gauge metrics fresh between writes.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.UpdateWorkoutCount(svc.GetStats(ctx).WorkoutCount)
		}
	}
}
