package kafka

import (
	"context"
	"fmt"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Message represents a Kafka message. Topic, Partition, Offset and Time are
// filled in on consumed messages and ignored by the producer.
type Message struct {
	Time      time.Time
	Headers   map[string]string
	Topic     string
	Key       []byte
	Value     []byte
	Partition int
	Offset    int64
}

// Producer wraps kafka-go writers for publishing messages, one per topic.
type Producer struct {
	transport  *kafkago.Transport
	writers    map[string]*kafkago.Writer
	brokers    []string
	mu         sync.Mutex
	autoCreate bool
}

// NewProducer creates a new Producer with the given configuration. It fails
// only when the SASL settings cannot be resolved.
func NewProducer(cfg Config) (*Producer, error) {
	mechanism, err := resolveSASL(cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return &Producer{
		transport: &kafkago.Transport{
			ClientID: cfg.ClientID,
			TLS:      resolveTLS(cfg),
			SASL:     mechanism,
		},
		writers:    make(map[string]*kafkago.Writer),
		brokers:    cfg.Brokers,
		autoCreate: cfg.AutoCreateTopics,
	}, nil
}

// Publish sends messages to the specified topic.
func (p *Producer) Publish(ctx context.Context, topic string, messages ...Message) error {
	if len(messages) == 0 {
		return nil
	}
	w := p.getOrCreateWriter(topic)

	kafkaMessages := make([]kafkago.Message, 0, len(messages))
	for _, msg := range messages {
		km := kafkago.Message{
			Key:   msg.Key,
			Value: msg.Value,
		}
		for k, v := range msg.Headers {
			km.Headers = append(km.Headers, kafkago.Header{
				Key:   k,
				Value: []byte(v),
			})
		}
		kafkaMessages = append(kafkaMessages, km)
	}

	if err := w.WriteMessages(ctx, kafkaMessages...); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", topic, err)
	}
	return nil
}

// Close closes all writers.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing writer for topic %s: %w", topic, err)
		}
	}
	p.writers = make(map[string]*kafkago.Writer)
	return firstErr
}

// getOrCreateWriter lazily creates a writer for a topic.
func (p *Producer) getOrCreateWriter(topic string) *kafkago.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w, ok := p.writers[topic]; ok {
		return w
	}

	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(p.brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: p.autoCreate,
		Transport:              p.transport,
	}
	p.writers[topic] = w
	return w
}
