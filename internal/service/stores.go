package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/arcdefender/arc-defender/internal/model"
)

// UserStore persists user accounts. Lookups of missing users return
// repository.ErrNotFound; inserting a taken email returns
// repository.ErrDuplicate.
type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
}

type AlertStore interface {
	RecentAlerts(ctx context.Context, limit int) ([]model.Alert, error)
}

type MetricStore interface {
	RecentMetrics(ctx context.Context, limit int) ([]model.Metric, error)
}

type StatusStore interface {
	ListStatuses(ctx context.Context) ([]model.SystemStatus, error)
}

type ActivityStore interface {
	RecentActivity(ctx context.Context, limit int) ([]model.NetworkActivity, error)
}

type ThreatStore interface {
	RecentThreats(ctx context.Context, limit int) ([]model.Threat, error)
	AllThreats(ctx context.Context) ([]model.Threat, error)
}
