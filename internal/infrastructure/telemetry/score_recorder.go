package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bibbank/creditrisk/internal/domain/port"
	"github.com/bibbank/creditrisk/internal/domain/valueobject"
)

const meterName = "github.com/bibbank/creditrisk"

// probabilityBuckets are histogram boundaries for default probability.
var probabilityBuckets = []float64{0.01, 0.02, 0.05, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.8, 0.9}

// ScoreRecorder implements port.ScoreRecorder with OpenTelemetry instruments.
type ScoreRecorder struct {
	scored      metric.Int64Counter
	failed      metric.Int64Counter
	probability metric.Float64Histogram
	version     attribute.KeyValue
}

// NewScoreRecorder creates the scoring instruments on provider. Every
// measurement carries modelVersion.
func NewScoreRecorder(provider metric.MeterProvider, modelVersion string) (*ScoreRecorder, error) {
	meter := provider.Meter(meterName)

	scored, err := meter.Int64Counter("risk.scores",
		metric.WithDescription("Applicants scored, by rating."),
		metric.WithUnit("{score}"))
	if err != nil {
		return nil, fmt.Errorf("create scores counter: %w", err)
	}

	failed, err := meter.Int64Counter("risk.score_failures",
		metric.WithDescription("Scoring requests that produced no result, by kind."),
		metric.WithUnit("{request}"))
	if err != nil {
		return nil, fmt.Errorf("create failures counter: %w", err)
	}

	probability, err := meter.Float64Histogram("risk.probability_of_default",
		metric.WithDescription("Predicted probability of default."),
		metric.WithExplicitBucketBoundaries(probabilityBuckets...))
	if err != nil {
		return nil, fmt.Errorf("create probability histogram: %w", err)
	}

	return &ScoreRecorder{
		scored:      scored,
		failed:      failed,
		probability: probability,
		version:     attribute.String("model_version", modelVersion),
	}, nil
}

// RecordScore implements port.ScoreRecorder.
func (r *ScoreRecorder) RecordScore(ctx context.Context, rating valueobject.Rating, probability float64) {
	r.scored.Add(ctx, 1, metric.WithAttributes(r.version, attribute.String("rating", rating.String())))
	r.probability.Record(ctx, probability, metric.WithAttributes(r.version))
}

// RecordFailure implements port.ScoreRecorder.
func (r *ScoreRecorder) RecordFailure(ctx context.Context, kind port.FailureKind) {
	r.failed.Add(ctx, 1, metric.WithAttributes(r.version, attribute.String("kind", string(kind))))
}
