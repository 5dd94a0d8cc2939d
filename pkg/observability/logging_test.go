package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{input: "debug", expected: slog.LevelDebug},
		{input: "DEBUG", expected: slog.LevelDebug},
		{input: " info ", expected: slog.LevelInfo},
		{input: "warn", expected: slog.LevelWarn},
		{input: "Warning", expected: slog.LevelWarn},
		{input: "error", expected: slog.LevelError},
		{input: "", expected: slog.LevelInfo},
		{input: "verbose", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec), line)
		records = append(records, rec)
	}
	return records
}

func TestInitLoggerJSONFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{
		Output:      &buf,
		Level:       "info",
		Format:      "json",
		ServiceName: "credit-risk-service",
	})

	logger.Debug("suppressed")
	logger.Info("model loaded", "model_version", "v1")

	records := decodeLines(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, "model loaded", records[0]["msg"])
	assert.Equal(t, "credit-risk-service", records[0]["service"])
	assert.Equal(t, "v1", records[0]["model_version"])
}

func TestInitLoggerTextIsDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{Output: &buf, Level: "warn"})

	logger.Info("suppressed")
	logger.Warn("artifact digest changed")

	out := buf.String()
	assert.NotContains(t, out, "suppressed")
	assert.Contains(t, out, `msg="artifact digest changed"`)
	assert.Contains(t, out, "level=WARN")
}

func TestInitLoggerRedactsApplicantAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{Output: &buf, Format: "json"})

	logger.Info("scored", "income", "1200000", "Loan_Amount", "2560000", "credit_score", 592)

	records := decodeLines(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, Redacted, records[0]["income"])
	assert.Equal(t, Redacted, records[0]["Loan_Amount"])
	assert.InDelta(t, 592, records[0]["credit_score"], 0)
}

func TestInitLoggerCustomRedactKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{Output: &buf, Format: "json", RedactKeys: []string{"request_id"}})

	logger.Info("scored", "request_id", "r-1", "income", "100")

	records := decodeLines(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, Redacted, records[0]["request_id"])
	assert.Equal(t, "100", records[0]["income"])
}

func TestInitLoggerSetsDefault(t *testing.T) {
	logger := InitLogger(LogConfig{Output: &bytes.Buffer{}, Format: "json"})
	assert.Equal(t, logger.Handler(), slog.Default().Handler())
}
