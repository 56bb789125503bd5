package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arcdefender/arc-defender/internal/model"
)

type AlertRepository struct {
	pool *pgxpool.Pool
}

func NewAlertRepository(pool *pgxpool.Pool) *AlertRepository {
	return &AlertRepository{pool: pool}
}

func (r *AlertRepository) CreateAlert(ctx context.Context, a *model.Alert) error {
	query := `INSERT INTO alerts (id, message, severity, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.pool.Exec(ctx, query, a.ID, a.Message, string(a.Severity), a.Timestamp); err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}
	return nil
}

// RecentAlerts returns up to limit alerts, newest first.
func (r *AlertRepository) RecentAlerts(ctx context.Context, limit int) ([]model.Alert, error) {
	query := `SELECT id, message, severity, created_at FROM alerts ORDER BY created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	alerts := []model.Alert{}
	for rows.Next() {
		var a model.Alert
		var severity string
		if err := rows.Scan(&a.ID, &a.Message, &severity, &a.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		a.Severity = model.Severity(severity)
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}
