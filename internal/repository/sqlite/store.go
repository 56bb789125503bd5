// Package sqlite implements the Arc Defender store contracts on an embedded
// SQLite database through GORM. It backs local development and tests.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/arcdefender/arc-defender/internal/model"
	"github.com/arcdefender/arc-defender/internal/repository"
)

type userRow struct {
	ID           string `gorm:"primaryKey"`
	Name         string
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userRow) TableName() string { return "users" }

type alertRow struct {
	ID        string `gorm:"primaryKey"`
	Message   string
	Severity  string
	CreatedAt time.Time `gorm:"index"`
}

func (alertRow) TableName() string { return "alerts" }

type metricRow struct {
	Seq               uint   `gorm:"primaryKey;autoIncrement"`
	ID                string `gorm:"uniqueIndex"`
	ActiveThreats     int
	BlockedIntrusions int
	SystemUptime      string
	UsersOnline       int
	CreatedAt         time.Time
}

func (metricRow) TableName() string { return "metrics" }

type statusRow struct {
	ID        string `gorm:"primaryKey"`
	Component string
	Status    string
	Position  int
}

func (statusRow) TableName() string { return "system_statuses" }

type activityRow struct {
	ID                 string    `gorm:"primaryKey"`
	Date               time.Time `gorm:"index"`
	IntrusionsDetected int
	CreatedAt          time.Time
}

func (activityRow) TableName() string { return "network_activity" }

type threatRow struct {
	ID         string    `gorm:"primaryKey"`
	DetectedAt time.Time `gorm:"index"`
	ThreatType string
	Category   string
	Severity   string
	SourceIP   string
	Count      int
}

func (threatRow) TableName() string { return "threats" }

// Store implements every store contract on a single GORM handle.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the SQLite database at dsn and migrates
// the schema.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// SQLite allows one writer; the generator and the API share this handle.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&userRow{}, &alertRow{}, &metricRow{}, &statusRow{}, &activityRow{}, &threatRow{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// --- users ---

func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	row := userRow{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt.UTC(),
		UpdatedAt:    u.UpdatedAt.UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("user %s: %w", u.Email, repository.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getUser(ctx, "email = ?", email)
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.getUser(ctx, "id = ?", id.String())
}

func (s *Store) getUser(ctx context.Context, cond string, arg any) (*model.User, error) {
	var row userRow
	if err := s.db.WithContext(ctx).Where(cond, arg).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt user id %q: %w", row.ID, err)
	}
	return &model.User{
		ID:           id,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

func (s *Store) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	result := s.db.WithContext(ctx).Model(&userRow{}).Where("id = ?", id.String()).
		Updates(map[string]any{"password_hash": hash, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return fmt.Errorf("failed to update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// --- alerts ---

func (s *Store) CreateAlert(ctx context.Context, a *model.Alert) error {
	row := alertRow{ID: a.ID.String(), Message: a.Message, Severity: string(a.Severity), CreatedAt: a.Timestamp.UTC()}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}
	return nil
}

func (s *Store) RecentAlerts(ctx context.Context, limit int) ([]model.Alert, error) {
	var rows []alertRow
	if err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	alerts := make([]model.Alert, 0, len(rows))
	for _, r := range rows {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, fmt.Errorf("corrupt alert id %q: %w", r.ID, err)
		}
		alerts = append(alerts, model.Alert{ID: id, Message: r.Message, Severity: model.Severity(r.Severity), Timestamp: r.CreatedAt})
	}
	return alerts, nil
}

// --- metrics ---

func (s *Store) CreateMetric(ctx context.Context, m *model.Metric) error {
	row := metricRow{
		ID:                m.ID.String(),
		ActiveThreats:     m.ActiveThreats,
		BlockedIntrusions: m.BlockedIntrusions,
		SystemUptime:      m.SystemUptime,
		UsersOnline:       m.UsersOnline,
		CreatedAt:         m.CreatedAt.UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert metric: %w", err)
	}
	return nil
}

func (s *Store) RecentMetrics(ctx context.Context, limit int) ([]model.Metric, error) {
	var rows []metricRow
	if err := s.db.WithContext(ctx).Order("seq DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list metrics: %w", err)
	}
	metrics := make([]model.Metric, 0, len(rows))
	for _, r := range rows {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, fmt.Errorf("corrupt metric id %q: %w", r.ID, err)
		}
		metrics = append(metrics, model.Metric{
			ID:                id,
			ActiveThreats:     r.ActiveThreats,
			BlockedIntrusions: r.BlockedIntrusions,
			SystemUptime:      r.SystemUptime,
			UsersOnline:       r.UsersOnline,
			CreatedAt:         r.CreatedAt,
		})
	}
	return metrics, nil
}

// --- system status ---

func (s *Store) ReplaceStatuses(ctx context.Context, statuses []model.SystemStatus) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM system_statuses").Error; err != nil {
			return fmt.Errorf("failed to clear system statuses: %w", err)
		}
		if len(statuses) == 0 {
			return nil
		}
		rows := make([]statusRow, 0, len(statuses))
		for i, st := range statuses {
			rows = append(rows, statusRow{ID: st.ID.String(), Component: st.Component, Status: st.Status, Position: i})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to insert system statuses: %w", err)
		}
		return nil
	})
}

func (s *Store) ListStatuses(ctx context.Context) ([]model.SystemStatus, error) {
	var rows []statusRow
	if err := s.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list system statuses: %w", err)
	}
	statuses := make([]model.SystemStatus, 0, len(rows))
	for _, r := range rows {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, fmt.Errorf("corrupt status id %q: %w", r.ID, err)
		}
		statuses = append(statuses, model.SystemStatus{ID: id, Component: r.Component, Status: r.Status})
	}
	return statuses, nil
}

// --- network activity ---

func (s *Store) CreateActivity(ctx context.Context, a *model.NetworkActivity) error {
	row := activityRow{ID: a.ID.String(), Date: a.Date.UTC(), IntrusionsDetected: a.IntrusionsDetected, CreatedAt: a.CreatedAt.UTC()}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert network activity: %w", err)
	}
	return nil
}

// RecentActivity returns the newest limit points, oldest first.
func (s *Store) RecentActivity(ctx context.Context, limit int) ([]model.NetworkActivity, error) {
	var rows []activityRow
	if err := s.db.WithContext(ctx).Order("date DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list network activity: %w", err)
	}
	points := make([]model.NetworkActivity, len(rows))
	for i, r := range rows {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, fmt.Errorf("corrupt activity id %q: %w", r.ID, err)
		}
		points[len(rows)-1-i] = model.NetworkActivity{ID: id, Date: r.Date, IntrusionsDetected: r.IntrusionsDetected, CreatedAt: r.CreatedAt}
	}
	return points, nil
}

// --- threats ---

func (s *Store) CreateThreat(ctx context.Context, t *model.Threat) error {
	severity := t.Severity
	if severity == "" {
		severity = model.SeverityLow
	}
	if !severity.Valid() {
		return fmt.Errorf("failed to insert threat: invalid severity %q", t.Severity)
	}
	row := threatRow{
		ID:         t.ID.String(),
		DetectedAt: t.Timestamp.UTC(),
		ThreatType: t.Type,
		Category:   t.Category,
		Severity:   string(severity),
		SourceIP:   t.SourceIP,
		Count:      t.Count,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert threat: %w", err)
	}
	return nil
}

func (s *Store) RecentThreats(ctx context.Context, limit int) ([]model.Threat, error) {
	var rows []threatRow
	if err := s.db.WithContext(ctx).Order("detected_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list threats: %w", err)
	}
	return toThreats(rows)
}

func (s *Store) AllThreats(ctx context.Context) ([]model.Threat, error) {
	var rows []threatRow
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list threats: %w", err)
	}
	return toThreats(rows)
}

func toThreats(rows []threatRow) ([]model.Threat, error) {
	threats := make([]model.Threat, 0, len(rows))
	for _, r := range rows {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, fmt.Errorf("corrupt threat id %q: %w", r.ID, err)
		}
		threats = append(threats, model.Threat{
			ID:        id,
			Timestamp: r.DetectedAt,
			Type:      r.ThreatType,
			Category:  r.Category,
			Severity:  model.Severity(r.Severity),
			SourceIP:  r.SourceIP,
			Count:     r.Count,
		})
	}
	return threats, nil
}

// ResetSnapshots clears the metric, alert, system status and network
// activity tables. Users and threats are kept.
func (s *Store) ResetSnapshots(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"metrics", "alerts", "system_statuses", "network_activity"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("failed to reset %s: %w", table, err)
			}
		}
		return nil
	})
}
