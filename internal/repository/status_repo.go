package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arcdefender/arc-defender/internal/model"
)

type StatusRepository struct {
	pool *pgxpool.Pool
}

func NewStatusRepository(pool *pgxpool.Pool) *StatusRepository {
	return &StatusRepository{pool: pool}
}

// ReplaceStatuses swaps the whole status set in one transaction, so readers
// never observe an empty table mid-replacement.
func (r *StatusRepository) ReplaceStatuses(ctx context.Context, statuses []model.SystemStatus) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM system_statuses`); err != nil {
			return fmt.Errorf("failed to clear system statuses: %w", err)
		}

		batch := &pgx.Batch{}
		for i, s := range statuses {
			batch.Queue(
				`INSERT INTO system_statuses (id, component, status, position) VALUES ($1, $2, $3, $4)`,
				s.ID, s.Component, s.Status, i,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert system statuses: %w", err)
		}
		return nil
	})
}

func (r *StatusRepository) ListStatuses(ctx context.Context) ([]model.SystemStatus, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, component, status FROM system_statuses ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list system statuses: %w", err)
	}
	defer rows.Close()

	statuses := []model.SystemStatus{}
	for rows.Next() {
		var s model.SystemStatus
		if err := rows.Scan(&s.ID, &s.Component, &s.Status); err != nil {
			return nil, fmt.Errorf("failed to scan system status: %w", err)
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}
