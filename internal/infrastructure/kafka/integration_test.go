package kafka_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/creditrisk/internal/domain/event"
	"github.com/bibbank/creditrisk/internal/infrastructure/kafka"
	pkgkafka "github.com/bibbank/creditrisk/pkg/kafka"
	"github.com/bibbank/creditrisk/pkg/testutil"
)

func TestEventPublisher_RoundTripThroughBroker(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	broker := testutil.NewKafkaContainer(ctx, t)
	cfg := pkgkafka.Config{Brokers: broker.Brokers, AutoCreateTopics: true}
	const topic = "risk.credit-score-events.it"

	producer, err := pkgkafka.NewProducer(cfg)
	require.NoError(t, err)
	defer producer.Close()

	evt := computedEvent()
	publisher := kafka.NewEventPublisher(producer, topic, slog.Default())
	require.Eventually(t, func() bool {
		return publisher.Publish(ctx, evt) == nil
	}, time.Minute, time.Second, "topic never became writable")

	received := make(chan pkgkafka.Message, 1)
	consumer, err := pkgkafka.NewConsumer(cfg, topic, func(_ context.Context, msg pkgkafka.Message) error {
		select {
		case received <- msg:
		default:
		}
		return nil
	}, slog.Default())
	require.NoError(t, err)
	defer consumer.Close()

	consumeCtx, stop := context.WithCancel(ctx)
	defer stop()
	go func() { _ = consumer.Start(consumeCtx) }()

	select {
	case msg := <-received:
		var decoded event.CreditScoreComputed
		require.NoError(t, json.Unmarshal(msg.Value, &decoded))
		assert.Equal(t, evt.EventID(), decoded.EventID())
		assert.Equal(t, event.TypeCreditScoreComputed, msg.Headers["event_type"])
	case <-ctx.Done():
		t.Fatal("timed out waiting for the published event")
	}
}
