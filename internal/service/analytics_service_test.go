package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcdefender/arc-defender/internal/model"
)

func TestAnalyticsService(t *testing.T) {
	at := time.Date(2025, 12, 31, 23, 59, 10, 0, time.UTC)
	store := &fakeSnapshots{
		metrics: []model.Metric{{ActiveThreats: 500, BlockedIntrusions: 500}},
		threats: []model.Threat{
			{Timestamp: at, Severity: model.SeverityHigh, SourceIP: "A", Count: 3},
			{Timestamp: at.Add(20 * time.Second), Severity: model.SeverityHigh, SourceIP: "B", Count: 10},
			{Timestamp: at.Add(time.Minute), Severity: model.SeverityLow, SourceIP: "A", Count: 2},
		},
	}
	svc := NewAnalyticsService(store, store, time.UTC)
	ctx := context.Background()

	eff, err := svc.Efficiency(ctx)
	require.NoError(t, err)
	assert.Equal(t, "50.0", eff.Efficiency.String())
	assert.Equal(t, 500, eff.Blocked)
	assert.Equal(t, 1000, eff.Total)
	assert.Equal(t, 10, store.lastLimit)

	trends, err := svc.Trends(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.TrendBucket{{Key: "12-31 23:59", Count: 13}, {Key: "01-01 00:00", Count: 2}}, trends)

	origins, err := svc.Origins(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.OriginCount{{SourceIP: "B", Count: 10}, {SourceIP: "A", Count: 5}}, origins)

	overview, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.SeverityOverview{HighSeverity: 2, LowSeverity: 1}, overview)

	again, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, overview, again)
}
