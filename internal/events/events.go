// Package events fans generated alerts and threats out to a message broker
// so downstream consumers can react without polling the API.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/arcdefender/arc-defender/internal/config"
)

const (
	KindAlert  = "alert"
	KindThreat = "threat"
)

// Event is the envelope written to the broker.
type Event struct {
	Kind       string    `json:"kind"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

func (e Event) encode() ([]byte, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s event: %w", e.Kind, err)
	}
	return b, nil
}

// Publisher delivers events to a broker.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }

// New returns the publisher selected by cfg.Broker.
func New(cfg config.EventsConfig, logger *zap.Logger) (Publisher, error) {
	switch cfg.Broker {
	case "":
		return NopPublisher{}, nil
	case "amqp":
		return NewAMQPPublisher(cfg.AMQPURL, cfg.Topic, logger)
	case "kafka":
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.Topic, logger), nil
	default:
		return nil, fmt.Errorf("unsupported event broker %q", cfg.Broker)
	}
}
