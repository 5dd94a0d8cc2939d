package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"
)

// Handler processes a consumed Kafka message. A returned error is logged and
// the message is not committed.
type Handler func(ctx context.Context, msg Message) error

// Consumer reads one topic and hands each message to a Handler.
type Consumer struct {
	reader  *kafkago.Reader
	handler Handler
	logger  *slog.Logger
	grouped bool
}

// NewConsumer creates a Consumer for topic. Without a ConsumerGroup the
// reader reads partition 0 and never commits offsets; FromLatest then skips
// history.
func NewConsumer(cfg Config, topic string, handler Handler, logger *slog.Logger) (*Consumer, error) {
	readerCfg := kafkago.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    topic,
		GroupID:  cfg.ConsumerGroup,
		MinBytes: 1,
		MaxBytes: 10 << 20,
	}
	if cfg.ConsumerGroup == "" && cfg.FromLatest {
		readerCfg.StartOffset = kafkago.LastOffset
	}

	if cfg.TLS || cfg.SASLEnabled {
		mechanism, err := resolveSASL(cfg)
		if err != nil {
			return nil, fmt.Errorf("kafka consumer: %w", err)
		}
		readerCfg.Dialer = &kafkago.Dialer{
			ClientID:      cfg.ClientID,
			DualStack:     true,
			TLS:           resolveTLS(cfg),
			SASLMechanism: mechanism,
		}
	}

	return &Consumer{
		reader:  kafkago.NewReader(readerCfg),
		handler: handler,
		logger:  logger.With("topic", topic, "group", cfg.ConsumerGroup),
		grouped: cfg.ConsumerGroup != "",
	}, nil
}

// Start consumes until ctx is canceled, which is a clean stop.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("consumer starting")

	for {
		m, err := c.reader.FetchMessage(ctx)
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			c.logger.Info("consumer stopped")
			return nil
		case err != nil:
			return fmt.Errorf("fetching message: %w", err)
		}
		c.handle(ctx, m)
	}
}

func (c *Consumer) handle(ctx context.Context, m kafkago.Message) {
	log := c.logger.With("partition", m.Partition, "offset", m.Offset)

	if err := c.handler(ctx, toMessage(m)); err != nil {
		log.ErrorContext(ctx, "handler error", "error", err)
		return
	}
	if !c.grouped {
		return
	}
	if err := c.reader.CommitMessages(ctx, m); err != nil {
		log.ErrorContext(ctx, "commit error", "error", err)
	}
}

// Close closes the reader.
func (c *Consumer) Close() error {
	if err := c.reader.Close(); err != nil {
		return fmt.Errorf("closing kafka reader: %w", err)
	}
	return nil
}

func toMessage(m kafkago.Message) Message {
	msg := Message{
		Topic:     m.Topic,
		Partition: m.Partition,
		Offset:    m.Offset,
		Time:      m.Time,
		Key:       m.Key,
		Value:     m.Value,
		Headers:   make(map[string]string, len(m.Headers)),
	}
	for _, h := range m.Headers {
		msg.Headers[h.Key] = string(h.Value)
	}
	return msg
}
