package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/bibbank/creditrisk/internal/domain/event"
	pkgkafka "github.com/bibbank/creditrisk/pkg/kafka"
)

// MessagePublisher is the slice of pkg/kafka.Producer the publisher needs.
type MessagePublisher interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// EventPublisher implements port.EventPublisher by writing events to Kafka,
// keyed by aggregate id so one request's events stay on one partition.
type EventPublisher struct {
	producer MessagePublisher
	logger   *slog.Logger
	topic    string
}

// NewEventPublisher creates a publisher targeting the given producer and topic.
func NewEventPublisher(producer MessagePublisher, topic string, logger *slog.Logger) *EventPublisher {
	return &EventPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish serialises and sends domain events to Kafka.
func (p *EventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(events))
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.DebugContext(ctx, "publishing domain event",
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
			"topic", p.topic,
			"payload_size", len(payload),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type":   evt.EventType(),
				"event_id":     evt.EventID(),
				"content_type": "application/json",
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", p.topic, err)
	}
	return nil
}

// DiscardPublisher drops events. It stands in for Kafka when no brokers are
// configured.
type DiscardPublisher struct {
	logger *slog.Logger
}

// NewDiscardPublisher returns a publisher that only logs at debug level.
func NewDiscardPublisher(logger *slog.Logger) *DiscardPublisher {
	return &DiscardPublisher{logger: logger}
}

// Publish implements port.EventPublisher.
func (p *DiscardPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	for _, evt := range events {
		p.logger.DebugContext(ctx, "event publishing disabled, dropping event",
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
		)
	}
	return nil
}
