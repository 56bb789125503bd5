package service

import (
	"context"
	"time"

	"github.com/arcdefender/arc-defender/internal/analytics"
	"github.com/arcdefender/arc-defender/internal/model"
)

// AnalyticsService recomputes every statistic from the stored rows on each
// call. Nothing is cached.
type AnalyticsService struct {
	threats ThreatStore
	metrics MetricStore
	loc     *time.Location
}

// NewAnalyticsService returns a service whose trend buckets are keyed in loc
// (process local time when nil).
func NewAnalyticsService(threats ThreatStore, metrics MetricStore, loc *time.Location) *AnalyticsService {
	if loc == nil {
		loc = time.Local
	}
	return &AnalyticsService{threats: threats, metrics: metrics, loc: loc}
}

func (s *AnalyticsService) Efficiency(ctx context.Context) (model.EfficiencyStats, error) {
	metrics, err := s.metrics.RecentMetrics(ctx, analytics.EfficiencyWindow)
	if err != nil {
		return model.EfficiencyStats{}, err
	}
	return analytics.Efficiency(metrics), nil
}

func (s *AnalyticsService) Trends(ctx context.Context) ([]model.TrendBucket, error) {
	threats, err := s.threats.AllThreats(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Trends(threats, s.loc, analytics.TrendLimit), nil
}

func (s *AnalyticsService) Origins(ctx context.Context) ([]model.OriginCount, error) {
	threats, err := s.threats.AllThreats(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Origins(threats, analytics.OriginLimit), nil
}

func (s *AnalyticsService) Overview(ctx context.Context) (model.SeverityOverview, error) {
	threats, err := s.threats.AllThreats(ctx)
	if err != nil {
		return model.SeverityOverview{}, err
	}
	return analytics.Overview(threats), nil
}
