package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arcdefender/arc-defender/internal/model"
)

type ActivityRepository struct {
	pool *pgxpool.Pool
}

func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

func (r *ActivityRepository) CreateActivity(ctx context.Context, a *model.NetworkActivity) error {
	query := `INSERT INTO network_activity (id, date, intrusions_detected, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.pool.Exec(ctx, query, a.ID, a.Date, a.IntrusionsDetected, a.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert network activity: %w", err)
	}
	return nil
}

// RecentActivity returns the newest limit points, ordered oldest first for
// charting.
func (r *ActivityRepository) RecentActivity(ctx context.Context, limit int) ([]model.NetworkActivity, error) {
	query := `
		SELECT id, date, intrusions_detected, created_at FROM (
			SELECT id, date, intrusions_detected, created_at
			FROM network_activity ORDER BY date DESC LIMIT $1
		) recent ORDER BY date ASC
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list network activity: %w", err)
	}
	defer rows.Close()

	points := []model.NetworkActivity{}
	for rows.Next() {
		var a model.NetworkActivity
		if err := rows.Scan(&a.ID, &a.Date, &a.IntrusionsDetected, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan network activity: %w", err)
		}
		points = append(points, a)
	}
	return points, rows.Err()
}
