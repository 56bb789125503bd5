package generator

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/arcdefender/arc-defender/internal/events"
	"github.com/arcdefender/arc-defender/internal/model"
	"github.com/arcdefender/arc-defender/internal/telemetry"
)

// Sink persists generated records. Both store implementations satisfy it.
type Sink interface {
	CreateAlert(ctx context.Context, a *model.Alert) error
	CreateMetric(ctx context.Context, m *model.Metric) error
	ReplaceStatuses(ctx context.Context, statuses []model.SystemStatus) error
	CreateActivity(ctx context.Context, a *model.NetworkActivity) error
	CreateThreat(ctx context.Context, t *model.Threat) error
}

// PublishingSink forwards alerts and threats to a Publisher once they are
// stored. Publish failures are logged and counted but never fail the write.
type PublishingSink struct {
	Sink
	publisher events.Publisher
	logger    *zap.Logger
}

func NewPublishingSink(sink Sink, publisher events.Publisher, logger *zap.Logger) *PublishingSink {
	return &PublishingSink{Sink: sink, publisher: publisher, logger: logger}
}

func (p *PublishingSink) CreateAlert(ctx context.Context, a *model.Alert) error {
	if err := p.Sink.CreateAlert(ctx, a); err != nil {
		return err
	}
	p.publish(ctx, events.KindAlert, a.Timestamp, a)
	return nil
}

func (p *PublishingSink) CreateThreat(ctx context.Context, t *model.Threat) error {
	if err := p.Sink.CreateThreat(ctx, t); err != nil {
		return err
	}
	p.publish(ctx, events.KindThreat, t.Timestamp, t)
	return nil
}

func (p *PublishingSink) publish(ctx context.Context, kind string, at time.Time, payload any) {
	err := p.publisher.Publish(ctx, events.Event{Kind: kind, OccurredAt: at, Payload: payload})
	if err != nil {
		telemetry.EventsPublished.WithLabelValues(kind, "error").Inc()
		p.logger.Warn("failed to publish event", zap.String("kind", kind), zap.Error(err))
		return
	}
	telemetry.EventsPublished.WithLabelValues(kind, "ok").Inc()
}
