package usecase_test

import (
	"context"
	"sync"

	"github.com/bibbank/creditrisk/internal/domain/event"
	"github.com/bibbank/creditrisk/internal/domain/port"
	"github.com/bibbank/creditrisk/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockScoreRecorder struct {
	mu       sync.Mutex
	ratings  []valueobject.Rating
	failures []port.FailureKind
}

func (m *mockScoreRecorder) RecordScore(_ context.Context, rating valueobject.Rating, _ float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ratings = append(m.ratings, rating)
}

func (m *mockScoreRecorder) RecordFailure(_ context.Context, kind port.FailureKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, kind)
}
