package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store bundles the PostgreSQL repositories behind a single value so it can
// satisfy the service and generator store contracts at once.
type Store struct {
	*UserRepository
	*AlertRepository
	*MetricRepository
	*StatusRepository
	*ActivityRepository
	*ThreatRepository

	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		UserRepository:     NewUserRepository(pool),
		AlertRepository:    NewAlertRepository(pool),
		MetricRepository:   NewMetricRepository(pool),
		StatusRepository:   NewStatusRepository(pool),
		ActivityRepository: NewActivityRepository(pool),
		ThreatRepository:   NewThreatRepository(pool),
		pool:               pool,
	}
}

// ResetSnapshots clears the metric, alert, system status and network
// activity tables. Users and threats are kept.
func (s *Store) ResetSnapshots(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `TRUNCATE metrics, alerts, system_statuses, network_activity`)
	if err != nil {
		return fmt.Errorf("failed to reset snapshot tables: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
