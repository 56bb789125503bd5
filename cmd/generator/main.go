// Command generator writes synthetic dashboard data on a fixed schedule.
// With -seed it resets the snapshot tables to a baseline and exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/arcdefender/arc-defender/internal/config"
	"github.com/arcdefender/arc-defender/internal/database"
	"github.com/arcdefender/arc-defender/internal/events"
	"github.com/arcdefender/arc-defender/internal/generator"
	"github.com/arcdefender/arc-defender/internal/logging"
	"github.com/arcdefender/arc-defender/internal/telemetry"
)

func main() {
	seedOnly := flag.Bool("seed", false, "reset snapshot tables to baseline data and exit")
	randSeed := flag.Int64("rand-seed", 0, "random seed for reproducible runs (0 uses the clock)")
	flag.Parse()

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

	catalog := generator.DefaultCatalog()
	if cfg.Generator.CatalogPath != "" {
		if catalog, err = generator.LoadCatalog(cfg.Generator.CatalogPath); err != nil {
			logger.Fatal("failed to load generator catalog", zap.Error(err))
		}
	}

	seed := *randSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	state := generator.NewState(catalog, seed)

	if *seedOnly {
		if err := generator.Seed(ctx, store, state, time.Now()); err != nil {
			logger.Fatal("seed failed", zap.Error(err))
		}
		logger.Info("baseline data seeded")
		return
	}

	telemetry.Init()

	publisher, err := events.New(cfg.Events, logger)
	if err != nil {
		logger.Fatal("failed to create event publisher", zap.Error(err))
	}
	defer publisher.Close()

	gen := generator.New(state, generator.NewPublishingSink(store, publisher, logger), logger)
	logger.Info("generator started",
		zap.Duration("interval", cfg.Generator.Interval),
		zap.Duration("threat_interval", cfg.Generator.ThreatInterval),
		zap.String("broker", cfg.Events.Broker),
	)
	generator.NewScheduler(logger, gen.Tasks(cfg.Generator.Interval, cfg.Generator.ThreatInterval)...).Run(ctx)
	logger.Info("generator stopped")
}
