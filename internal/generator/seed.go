package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/arcdefender/arc-defender/internal/model"
)

// SeedStore is a Sink that can also clear the snapshot collections.
type SeedStore interface {
	Sink
	ResetSnapshots(ctx context.Context) error
}

var baselineAlerts = []model.Alert{
	{Message: "Unauthorized login attempt detected.", Severity: model.SeverityMedium},
	{Message: "Firewall rule triggered on port 443.", Severity: model.SeverityLow},
	{Message: "System process anomaly detected.", Severity: model.SeverityHigh},
	{Message: "Port scan activity from external IP.", Severity: model.SeverityMedium},
	{Message: "Brute-force login attempt blocked.", Severity: model.SeverityHigh},
}

// Seed clears metrics, alerts, statuses and network activity, then writes a
// baseline snapshot plus one activity point per day for the last week.
// Users and threats are left alone. Unlike the scheduled ticks, the first
// failure aborts the seed.
func Seed(ctx context.Context, store SeedStore, state *State, now time.Time) error {
	if err := store.ResetSnapshots(ctx); err != nil {
		return fmt.Errorf("reset snapshots: %w", err)
	}

	metric := model.Metric{
		ID:                state.newID(),
		ActiveThreats:     46,
		BlockedIntrusions: 1212,
		SystemUptime:      "99.14%",
		UsersOnline:       10,
		CreatedAt:         now,
	}
	if err := store.CreateMetric(ctx, &metric); err != nil {
		return fmt.Errorf("seed metric: %w", err)
	}

	for i, a := range baselineAlerts {
		a.ID = state.newID()
		// Later entries are newer so the listing order is stable.
		a.Timestamp = now.Add(time.Duration(i-len(baselineAlerts)+1) * time.Second)
		if err := store.CreateAlert(ctx, &a); err != nil {
			return fmt.Errorf("seed alert: %w", err)
		}
	}

	if err := store.ReplaceStatuses(ctx, NextStatuses(state)); err != nil {
		return fmt.Errorf("seed statuses: %w", err)
	}

	for day := 6; day >= 0; day-- {
		at := now.Add(-time.Duration(day) * 24 * time.Hour)
		activity := NextActivity(state, at)
		if err := store.CreateActivity(ctx, &activity); err != nil {
			return fmt.Errorf("seed network activity: %w", err)
		}
	}
	return nil
}
