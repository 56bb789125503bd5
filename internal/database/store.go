package database

import (
	"context"

	"go.uber.org/zap"

	"github.com/arcdefender/arc-defender/internal/config"
	"github.com/arcdefender/arc-defender/internal/generator"
	"github.com/arcdefender/arc-defender/internal/repository"
	"github.com/arcdefender/arc-defender/internal/repository/sqlite"
	"github.com/arcdefender/arc-defender/internal/service"
)

// Store is everything the API and the generator need from a backend.
type Store interface {
	service.UserStore
	service.AlertStore
	service.MetricStore
	service.StatusStore
	service.ActivityStore
	service.ThreatStore
	generator.SeedStore

	Ping(ctx context.Context) error
	Close() error
}

var (
	_ Store = (*repository.Store)(nil)
	_ Store = (*sqlite.Store)(nil)
)

// OpenStore connects to the backend selected by cfg.DatabaseDriver.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, error) {
	if cfg.DatabaseDriver == config.DriverSQLite {
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("using sqlite store", zap.String("path", cfg.SQLitePath))
		return s, nil
	}

	poolCfg := DefaultPoolConfig(cfg.DatabaseURL)
	poolCfg.Logger = logger
	pool, err := Open(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	return repository.NewStore(pool), nil
}
