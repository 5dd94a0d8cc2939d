package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type KafkaConfig struct {
	Brokers       []string
	Topic         string
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
	TLS           bool
}

// Enabled reports whether decision events should be published.
func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type LogConfig struct {
	Level  string
	Format string
}

type Config struct {
	ModelPath      string
	ServiceName    string
	OTLPEndpoint   string
	Log            LogConfig
	TLS            TLSConfig
	Kafka          KafkaConfig
	GRPCPort       int
	HTTPPort       int
	GRPCReflection bool
}

// Validate reports the first setting that would keep the service from
// starting.
func (c Config) Validate() error {
	if c.GRPCPort < 1 || c.GRPCPort > 65535 {
		return fmt.Errorf("GRPC_PORT %d out of range", c.GRPCPort)
	}
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT %d out of range", c.HTTPPort)
	}
	if c.GRPCPort == c.HTTPPort {
		return errors.New("GRPC_PORT and HTTP_PORT must differ")
	}
	if c.ModelPath == "" {
		return errors.New("MODEL_PATH is required")
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		return errors.New("GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE must be set together")
	}
	if c.Kafka.Enabled() && c.Kafka.Topic == "" {
		return errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}
	return nil
}

// Load reads configuration from the environment. Values from the optional
// dotenv files never override variables that are already set.
func Load(dotenvFiles ...string) (Config, error) {
	if len(dotenvFiles) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			dotenvFiles = []string{".env"}
		}
	}
	if len(dotenvFiles) > 0 {
		if err := godotenv.Load(dotenvFiles...); err != nil {
			return Config{}, fmt.Errorf("load dotenv: %w", err)
		}
	}

	return Config{
		GRPCPort:       getEnvInt("GRPC_PORT", 9091),
		HTTPPort:       getEnvInt("HTTP_PORT", 8091),
		ModelPath:      getEnv("MODEL_PATH", "models/credit_risk_v1.json"),
		ServiceName:    "credit-risk-service",
		OTLPEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		GRPCReflection: getEnvBool("GRPC_REFLECTION", false),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		TLS: TLSConfig{
			CertFile: getEnv("GRPC_TLS_CERT_FILE", ""),
			KeyFile:  getEnv("GRPC_TLS_KEY_FILE", ""),
		},
		Kafka: KafkaConfig{
			Brokers:       splitList(getEnv("KAFKA_BROKERS", "")),
			Topic:         getEnv("KAFKA_TOPIC", "risk.credit-score-events"),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", ""),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
			TLS:           getEnvBool("KAFKA_TLS", false),
		},
	}, nil
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
