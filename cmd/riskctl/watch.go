package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	pkgkafka "github.com/bibbank/creditrisk/pkg/kafka"
)

func newWatchCmd(logger func(*cobra.Command) *slog.Logger) *cobra.Command {
	var (
		cfg   pkgkafka.Config
		topic string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Tail credit score decision events",
		Long:  "Prints one JSON line per decision event until interrupted. Without --group it reads partition 0 and commits nothing.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg.ClientID = "riskctl"
			cfg.SASLEnabled = cfg.SASLMechanism != ""

			out := cmd.OutOrStdout()
			consumer, err := pkgkafka.NewConsumer(cfg, topic, func(_ context.Context, msg pkgkafka.Message) error {
				return printEvent(out, msg)
			}, logger(cmd))
			if err != nil {
				return err
			}
			defer consumer.Close()

			return consumer.Start(cmd.Context())
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&cfg.Brokers, "brokers", []string{"localhost:9092"}, "Kafka bootstrap brokers")
	f.StringVarP(&topic, "topic", "t", "risk.credit-score-events", "Decision event topic")
	f.StringVar(&cfg.ConsumerGroup, "group", "", "Consumer group; empty reads without committing")
	f.BoolVar(&cfg.FromLatest, "from-latest", true, "Start at the newest offset when no group is set")
	f.StringVar(&cfg.SASLMechanism, "sasl-mechanism", "", "SASL mechanism (PLAIN, SCRAM-SHA-256, SCRAM-SHA-512)")
	f.StringVar(&cfg.SASLUsername, "sasl-username", "", "SASL username")
	f.StringVar(&cfg.SASLPassword, "sasl-password", "", "SASL password")
	f.BoolVar(&cfg.TLS, "tls", false, "Use TLS to the brokers")
	return cmd
}

type watchedEvent struct {
	Payload   json.RawMessage `json:"payload"`
	EventType string          `json:"event_type"`
	Key       string          `json:"key"`
	Partition int             `json:"partition"`
	Offset    int64           `json:"offset"`
}

func printEvent(w io.Writer, msg pkgkafka.Message) error {
	if !json.Valid(msg.Value) {
		return fmt.Errorf("event %s: payload is not JSON", msg.Headers["event_id"])
	}
	out, err := json.Marshal(watchedEvent{
		EventType: msg.Headers["event_type"],
		Key:       string(msg.Key),
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Payload:   msg.Value,
	})
	if err != nil {
		return err
	}
	return printJSONLine(w, out)
}
