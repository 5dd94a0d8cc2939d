package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/creditrisk/internal/infrastructure/config"
)

// clearEnv unsets every key for the duration of the test. Keys set to an
// empty string would still shadow dotenv values.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GRPC_PORT", "HTTP_PORT", "MODEL_PATH", "LOG_LEVEL", "LOG_FORMAT",
		"KAFKA_BROKERS", "KAFKA_TOPIC", "OTEL_EXPORTER_OTLP_ENDPOINT",
		"GRPC_TLS_CERT_FILE", "GRPC_TLS_KEY_FILE", "GRPC_REFLECTION",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9091, cfg.GRPCPort)
	assert.Equal(t, 8091, cfg.HTTPPort)
	assert.Equal(t, "models/credit_risk_v1.json", cfg.ModelPath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "risk.credit-score-events", cfg.Kafka.Topic)
	assert.False(t, cfg.GRPCReflection)
	assert.Equal(t, ":9091", cfg.GRPCAddr())
	assert.Equal(t, ":8091", cfg.HTTPAddr())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRPC_PORT", "7000")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("GRPC_REFLECTION", "true")
	t.Setenv("HTTP_PORT", "not-a-number")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.GRPCPort)
	assert.Equal(t, 8091, cfg.HTTPPort)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.True(t, cfg.GRPCReflection)
}

func TestLoad_DotenvDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "risk.env")
	require.NoError(t, os.WriteFile(path, []byte("MODEL_PATH=/srv/models/v2.yaml\nLOG_LEVEL=debug\n"), 0o600))
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/models/v2.yaml", cfg.ModelPath)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingDotenvFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() config.Config {
		return config.Config{GRPCPort: 9091, HTTPPort: 8091, ModelPath: "m.json"}
	}

	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		message string
	}{
		{"grpc port zero", func(c *config.Config) { c.GRPCPort = 0 }, "GRPC_PORT"},
		{"http port too large", func(c *config.Config) { c.HTTPPort = 70000 }, "HTTP_PORT"},
		{"same ports", func(c *config.Config) { c.HTTPPort = c.GRPCPort }, "must differ"},
		{"no model path", func(c *config.Config) { c.ModelPath = "" }, "MODEL_PATH"},
		{"cert without key", func(c *config.Config) { c.TLS.CertFile = "tls.crt" }, "set together"},
		{"brokers without topic", func(c *config.Config) { c.Kafka.Brokers = []string{"k:9092"} }, "KAFKA_TOPIC"},
	}

	assert.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
