package generator

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/arcdefender/arc-defender/internal/telemetry"
)

const (
	KindAlert    = "alert"
	KindMetric   = "metric"
	KindStatus   = "system_status"
	KindActivity = "network_activity"
	KindThreat   = "threat"
)

// Generator ties the producers to a Sink. Every store write is independent:
// a failed write is logged and counted, never retried, and does not stop
// the writes that follow it.
type Generator struct {
	sink   Sink
	logger *zap.Logger
	now    func() time.Time

	mu    sync.Mutex
	state *State
}

func New(state *State, sink Sink, logger *zap.Logger) *Generator {
	return &Generator{state: state, sink: sink, logger: logger, now: time.Now}
}

// SnapshotTick inserts one alert, one metric, the status set and one
// network activity point.
func (g *Generator) SnapshotTick(ctx context.Context) {
	now := g.now()

	g.mu.Lock()
	alert := NextAlert(g.state, now)
	metric := NextMetric(g.state, now)
	statuses := NextStatuses(g.state)
	activity := NextActivity(g.state, now)
	g.mu.Unlock()

	g.record(KindAlert, g.sink.CreateAlert(ctx, &alert))
	g.record(KindMetric, g.sink.CreateMetric(ctx, &metric))
	g.record(KindStatus, g.sink.ReplaceStatuses(ctx, statuses))
	g.record(KindActivity, g.sink.CreateActivity(ctx, &activity))

	g.logger.Debug("snapshot generated",
		zap.String("alert", alert.Message),
		zap.Int("intrusions", activity.IntrusionsDetected),
	)
}

func (g *Generator) ThreatTick(ctx context.Context) {
	g.mu.Lock()
	threat := NextThreat(g.state, g.now())
	g.mu.Unlock()

	g.record(KindThreat, g.sink.CreateThreat(ctx, &threat))
}

func (g *Generator) record(kind string, err error) {
	if err != nil {
		telemetry.GeneratorErrors.WithLabelValues(kind).Inc()
		g.logger.Error("generator write failed", zap.String("kind", kind), zap.Error(err))
		return
	}
	telemetry.GeneratorRecords.WithLabelValues(kind).Inc()
}

// Tasks returns the scheduled work for this generator.
func (g *Generator) Tasks(snapshotInterval, threatInterval time.Duration) []Task {
	return []Task{
		{Name: "snapshot", Interval: snapshotInterval, Run: g.SnapshotTick},
		{Name: "threat", Interval: threatInterval, Run: g.ThreatTick},
	}
}
