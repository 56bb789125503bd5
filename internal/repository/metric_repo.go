package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arcdefender/arc-defender/internal/model"
)

type MetricRepository struct {
	pool *pgxpool.Pool
}

func NewMetricRepository(pool *pgxpool.Pool) *MetricRepository {
	return &MetricRepository{pool: pool}
}

func (r *MetricRepository) CreateMetric(ctx context.Context, m *model.Metric) error {
	query := `
		INSERT INTO metrics (id, active_threats, blocked_intrusions, system_uptime, users_online, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query, m.ID, m.ActiveThreats, m.BlockedIntrusions, m.SystemUptime, m.UsersOnline, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert metric: %w", err)
	}
	return nil
}

// RecentMetrics returns up to limit metric rows in reverse insertion order.
func (r *MetricRepository) RecentMetrics(ctx context.Context, limit int) ([]model.Metric, error) {
	query := `
		SELECT id, active_threats, blocked_intrusions, system_uptime, users_online, created_at
		FROM metrics ORDER BY seq DESC LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list metrics: %w", err)
	}
	defer rows.Close()

	var metrics []model.Metric
	for rows.Next() {
		var m model.Metric
		if err := rows.Scan(&m.ID, &m.ActiveThreats, &m.BlockedIntrusions, &m.SystemUptime, &m.UsersOnline, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan metric: %w", err)
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}
