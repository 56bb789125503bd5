package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcdefender/arc-defender/internal/model"
)

func TestDashboardSummary(t *testing.T) {
	now := time.Now()
	alerts := make([]model.Alert, 8)
	for i := range alerts {
		alerts[i] = model.Alert{ID: uuid.New(), Message: "a", Severity: model.SeverityLow, Timestamp: now.Add(-time.Duration(i) * time.Minute)}
	}
	store := &fakeSnapshots{
		alerts:   alerts,
		metrics:  []model.Metric{{ActiveThreats: 12}, {ActiveThreats: 40}},
		statuses: []model.SystemStatus{{Component: "IDS engine", Status: "Running"}},
	}
	svc := NewDashboardService(store, store, store, store)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.NotNil(t, summary.Metrics)
	assert.Equal(t, 12, summary.Metrics.ActiveThreats)
	assert.Len(t, summary.Alerts, 5)
	assert.Len(t, summary.SystemStatus, 1)
}

func TestDashboardSummary_EmptyStore(t *testing.T) {
	store := &fakeSnapshots{}
	summary, err := NewDashboardService(store, store, store, store).Summary(context.Background())
	require.NoError(t, err)
	assert.Nil(t, summary.Metrics)
}

func TestDashboardLimits(t *testing.T) {
	store := &fakeSnapshots{}
	svc := NewDashboardService(store, store, store, store)
	ctx := context.Background()

	_, err := svc.RecentAlerts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, store.lastLimit)

	_, err = svc.RecentActivity(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, store.lastLimit)

	_, err = NewThreatService(store).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, store.lastLimit)
}

func TestDashboard_StoreError(t *testing.T) {
	store := &fakeSnapshots{err: errStoreDown}
	_, err := NewDashboardService(store, store, store, store).Summary(context.Background())
	assert.True(t, errors.Is(err, errStoreDown))
}
