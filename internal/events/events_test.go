package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arcdefender/arc-defender/internal/config"
	"github.com/arcdefender/arc-defender/internal/model"
)

func TestEventEncode(t *testing.T) {
	at := time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC)
	e := Event{
		Kind:       KindThreat,
		OccurredAt: at,
		Payload:    model.Threat{Type: "Port Scan", Category: "ddos", Severity: model.SeverityHigh, SourceIP: "10.0.0.1", Count: 4},
	}

	b, err := e.encode()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "threat", decoded["kind"])
	assert.Equal(t, "2025-03-04T10:30:00Z", decoded["occurredAt"])

	payload := decoded["payload"].(map[string]any)
	assert.Equal(t, "10.0.0.1", payload["sourceIP"])
	assert.Equal(t, "high", payload["severity"])
}

func TestNew_NoBroker(t *testing.T) {
	p, err := New(config.EventsConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, NopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), Event{Kind: KindAlert}))
	assert.NoError(t, p.Close())
}

func TestNew_Kafka(t *testing.T) {
	p, err := New(config.EventsConfig{Broker: "kafka", KafkaBrokers: []string{"localhost:9092"}, Topic: "arc.events"}, zap.NewNop())
	require.NoError(t, err)
	kp, ok := p.(*KafkaPublisher)
	require.True(t, ok)
	assert.Equal(t, "arc.events", kp.writer.Topic)
	assert.Equal(t, 1, kp.writer.MaxAttempts, "publishing is best-effort, no retries")
	assert.NoError(t, p.Close())
}

func TestNew_UnknownBroker(t *testing.T) {
	_, err := New(config.EventsConfig{Broker: "nats"}, zap.NewNop())
	assert.Error(t, err)
}
