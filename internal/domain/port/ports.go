package port

import (
	"context"

	"github.com/bibbank/creditrisk/internal/domain/event"
	"github.com/bibbank/creditrisk/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Telemetry port
// ---------------------------------------------------------------------------

// FailureKind classifies a scoring request that produced no result.
type FailureKind string

const (
	FailureInvalidInput FailureKind = "invalid_input"
	FailureInternal     FailureKind = "internal"
)

// ScoreRecorder records scoring outcomes for operational metrics.
type ScoreRecorder interface {
	RecordScore(ctx context.Context, rating valueobject.Rating, probability float64)
	RecordFailure(ctx context.Context, kind FailureKind)
}
