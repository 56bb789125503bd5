package service

import (
	"context"

	"github.com/arcdefender/arc-defender/internal/model"
)

const (
	summaryAlertLimit = 5
	recentAlertLimit  = 10
	activityWindow    = 7
)

// DashboardService serves the latest snapshot of each collection without
// aggregation.
type DashboardService struct {
	alerts   AlertStore
	metrics  MetricStore
	statuses StatusStore
	activity ActivityStore
}

func NewDashboardService(alerts AlertStore, metrics MetricStore, statuses StatusStore, activity ActivityStore) *DashboardService {
	return &DashboardService{alerts: alerts, metrics: metrics, statuses: statuses, activity: activity}
}

func (s *DashboardService) Summary(ctx context.Context) (*model.DashboardSummary, error) {
	metrics, err := s.metrics.RecentMetrics(ctx, 1)
	if err != nil {
		return nil, err
	}
	alerts, err := s.alerts.RecentAlerts(ctx, summaryAlertLimit)
	if err != nil {
		return nil, err
	}
	statuses, err := s.statuses.ListStatuses(ctx)
	if err != nil {
		return nil, err
	}

	summary := &model.DashboardSummary{Alerts: alerts, SystemStatus: statuses}
	if len(metrics) > 0 {
		summary.Metrics = &metrics[0]
	}
	return summary, nil
}

func (s *DashboardService) RecentAlerts(ctx context.Context) ([]model.Alert, error) {
	return s.alerts.RecentAlerts(ctx, recentAlertLimit)
}

// RecentActivity returns the last seven network activity points, oldest
// first.
func (s *DashboardService) RecentActivity(ctx context.Context) ([]model.NetworkActivity, error) {
	return s.activity.RecentActivity(ctx, activityWindow)
}
