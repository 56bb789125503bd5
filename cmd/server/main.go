package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/arcdefender/arc-defender/internal/config"
	"github.com/arcdefender/arc-defender/internal/database"
	"github.com/arcdefender/arc-defender/internal/events"
	"github.com/arcdefender/arc-defender/internal/generator"
	"github.com/arcdefender/arc-defender/internal/handler"
	"github.com/arcdefender/arc-defender/internal/logging"
	"github.com/arcdefender/arc-defender/internal/service"
	"github.com/arcdefender/arc-defender/internal/telemetry"
	"github.com/arcdefender/arc-defender/internal/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.IsProduction(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := database.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}
	defer store.Close()

	if cfg.MetricsEnabled {
		telemetry.Init()
	}

	tokens, err := token.NewManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	if err != nil {
		logger.Fatal("invalid token configuration", zap.Error(err))
	}

	// Services
	authSvc := service.NewAuthService(store, tokens, cfg.BcryptCost, logger)
	dashboardSvc := service.NewDashboardService(store, store, store, store)
	threatSvc := service.NewThreatService(store)
	analyticsSvc := service.NewAnalyticsService(store, store, cfg.TrendLocation)

	r := handler.NewRouter(handler.RouterConfig{
		Auth:           authSvc,
		Dashboard:      dashboardSvc,
		Threats:        threatSvc,
		Analytics:      analyticsSvc,
		Store:          store,
		CORSOrigins:    cfg.CORSOrigins,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		MetricsEnabled: cfg.MetricsEnabled,
		Logger:         logger,
	})

	genDone := make(chan struct{})
	if cfg.Generator.Enabled {
		publisher, err := events.New(cfg.Events, logger)
		if err != nil {
			logger.Fatal("failed to create event publisher", zap.Error(err))
		}
		defer publisher.Close()

		go func() {
			defer close(genDone)
			runGenerator(ctx, cfg, store, publisher, logger)
		}()
	} else {
		close(genDone)
	}

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting Arc Defender API",
			zap.String("addr", addr),
			zap.String("store", cfg.DatabaseDriver),
			zap.Bool("generator", cfg.Generator.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	<-genDone
	logger.Info("server stopped")
}

func runGenerator(ctx context.Context, cfg *config.Config, store generator.Sink, publisher events.Publisher, logger *zap.Logger) {
	catalog := generator.DefaultCatalog()
	if cfg.Generator.CatalogPath != "" {
		loaded, err := generator.LoadCatalog(cfg.Generator.CatalogPath)
		if err != nil {
			logger.Error("failed to load generator catalog, using defaults", zap.Error(err))
		} else {
			catalog = loaded
		}
	}

	state := generator.NewState(catalog, time.Now().UnixNano())
	gen := generator.New(state, generator.NewPublishingSink(store, publisher, logger), logger)
	generator.NewScheduler(logger, gen.Tasks(cfg.Generator.Interval, cfg.Generator.ThreatInterval)...).Run(ctx)
}
