package event

import (
	"github.com/bibbank/creditrisk/internal/domain/model"
	"github.com/bibbank/creditrisk/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Credit Assessment Events
// ---------------------------------------------------------------------------

const (
	// TypeCreditScoreComputed is the event type for a completed assessment.
	TypeCreditScoreComputed = "risk.credit_score.computed"

	aggregateCreditAssessment = "CreditAssessment"
)

// CreditScoreComputed is raised after an applicant has been scored. It
// carries the decision only; applicant attributes never leave the service.
type CreditScoreComputed struct {
	events.BaseEvent
	ModelVersion string  `json:"model_version"`
	Rating       string  `json:"rating"`
	Probability  float64 `json:"probability_of_default"`
	Score        int     `json:"credit_score"`
}

// NewCreditScoreComputed builds the event for result under requestID.
func NewCreditScoreComputed(requestID string, result model.ScoringResult) CreditScoreComputed {
	return CreditScoreComputed{
		BaseEvent:    events.NewBaseEvent(TypeCreditScoreComputed, requestID, aggregateCreditAssessment),
		ModelVersion: result.ModelVersion,
		Rating:       result.Rating.String(),
		Probability:  result.Probability,
		Score:        result.Score,
	}
}
