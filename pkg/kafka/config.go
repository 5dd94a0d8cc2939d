package kafka

// Config holds Kafka connection parameters.
type Config struct {
	ClientID      string
	ConsumerGroup string

	// SASL configuration for authentication.
	SASLMechanism string // "PLAIN" or "SCRAM-SHA-256" or "SCRAM-SHA-512"
	SASLUsername  string
	SASLPassword  string

	Brokers []string

	// TLS enables TLS for Kafka connections.
	TLS         bool
	SASLEnabled bool

	// AutoCreateTopics lets the producer create missing topics on first write.
	AutoCreateTopics bool

	// FromLatest makes a group-less consumer start at the newest offset.
	FromLatest bool
}
