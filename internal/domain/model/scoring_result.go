package model

import "github.com/bibbank/creditrisk/internal/domain/valueobject"

// ScoringResult is the outcome of scoring one applicant. Score and Rating are
// derived from Probability by the model's score scale and rating table.
type ScoringResult struct {
	Rating       valueobject.Rating
	ModelVersion string
	Probability  float64
	Score        int
}

// Evaluation is a ScoringResult together with the encoded features and the
// clamped log-odds it was computed from.
type Evaluation struct {
	Features FeatureVector
	Result   ScoringResult
	LogOdds  float64
}
