package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arcdefender/arc-defender/internal/model"
)

const threatColumns = `id, detected_at, threat_type, category, severity, source_ip, count`

type ThreatRepository struct {
	pool *pgxpool.Pool
}

func NewThreatRepository(pool *pgxpool.Pool) *ThreatRepository {
	return &ThreatRepository{pool: pool}
}

func (r *ThreatRepository) CreateThreat(ctx context.Context, t *model.Threat) error {
	query := `
		INSERT INTO threats (id, detected_at, threat_type, category, severity, source_ip, count)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	severity := t.Severity
	if severity == "" {
		severity = model.SeverityLow
	}
	_, err := r.pool.Exec(ctx, query, t.ID, t.Timestamp, t.Type, t.Category, string(severity), t.SourceIP, t.Count)
	if err != nil {
		return fmt.Errorf("failed to insert threat: %w", err)
	}
	return nil
}

// RecentThreats returns up to limit threats, newest first.
func (r *ThreatRepository) RecentThreats(ctx context.Context, limit int) ([]model.Threat, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+threatColumns+` FROM threats ORDER BY detected_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list threats: %w", err)
	}
	return scanThreats(rows)
}

// AllThreats returns every stored threat in insertion-independent order.
func (r *ThreatRepository) AllThreats(ctx context.Context) ([]model.Threat, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+threatColumns+` FROM threats`)
	if err != nil {
		return nil, fmt.Errorf("failed to list threats: %w", err)
	}
	return scanThreats(rows)
}

func scanThreats(rows pgx.Rows) ([]model.Threat, error) {
	defer rows.Close()

	threats := []model.Threat{}
	for rows.Next() {
		var t model.Threat
		var severity string
		if err := rows.Scan(&t.ID, &t.Timestamp, &t.Type, &t.Category, &severity, &t.SourceIP, &t.Count); err != nil {
			return nil, fmt.Errorf("failed to scan threat: %w", err)
		}
		t.Severity = model.Severity(severity)
		threats = append(threats, t)
	}
	return threats, rows.Err()
}
