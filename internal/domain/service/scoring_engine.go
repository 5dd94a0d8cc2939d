package service

import (
	"fmt"

	"github.com/bibbank/creditrisk/internal/domain/model"
)

// ---------------------------------------------------------------------------
// ScoringEngine – the single entry point for scoring an applicant
// ---------------------------------------------------------------------------

// ScoringEngine composes encoder, probability model, score scaler and rating
// classifier around one immutable parameter set. It holds no mutable state and
// is safe for concurrent use.
type ScoringEngine struct {
	params     model.ModelParameters
	encoder    *FeatureEncoder
	model      *ProbabilityModel
	scaler     *ScoreScaler
	classifier *RatingClassifier
}

// NewScoringEngine checks params against the encoder's feature schema and
// returns an engine bound to them. A mismatch wraps model.ErrParameterLoad.
func NewScoringEngine(params model.ModelParameters) (*ScoringEngine, error) {
	encoder := NewFeatureEncoder()
	if err := CheckCompatibility(encoder, params); err != nil {
		return nil, err
	}

	return &ScoringEngine{
		params:     params,
		encoder:    encoder,
		model:      NewProbabilityModel(),
		scaler:     NewScoreScaler(params.ScoreScale()),
		classifier: NewRatingClassifier(params.RatingBands()),
	}, nil
}

// CheckCompatibility verifies that params were fitted on the encoder's feature
// schema, dimensionality and ordering.
func CheckCompatibility(encoder *FeatureEncoder, params model.ModelParameters) error {
	if params.IsZero() {
		return fmt.Errorf("%w: no model parameters", model.ErrParameterLoad)
	}
	if params.FeatureSchema() != encoder.SchemaVersion() {
		return fmt.Errorf("%w: artifact feature schema %q, encoder expects %q",
			model.ErrParameterLoad, params.FeatureSchema(), encoder.SchemaVersion())
	}

	want := encoder.FeatureNames()
	got := params.FeatureNames()
	if len(got) != len(want) {
		return fmt.Errorf("%w: artifact has %d features, encoder produces %d",
			model.ErrParameterLoad, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("%w: feature %d is %q in the artifact, encoder produces %q",
				model.ErrParameterLoad, i, got[i], want[i])
		}
	}
	return nil
}

// Score encodes, predicts, scales and classifies profile. The first failure is
// returned and no partial result is produced.
func (e *ScoringEngine) Score(profile model.ApplicantProfile) (model.ScoringResult, error) {
	ev, err := e.Evaluate(profile)
	if err != nil {
		return model.ScoringResult{}, err
	}
	return ev.Result, nil
}

// Evaluate scores profile in one pass and keeps the feature vector and
// log-odds the result was derived from.
func (e *ScoringEngine) Evaluate(profile model.ApplicantProfile) (model.Evaluation, error) {
	features, err := e.encoder.Encode(profile)
	if err != nil {
		return model.Evaluation{}, fmt.Errorf("encode profile: %w", err)
	}

	logOdds := e.model.LogOdds(features, e.params)
	probability := sigmoid(logOdds)
	score := e.scaler.ScaleToScore(probability)

	return model.Evaluation{
		Features: features,
		LogOdds:  logOdds,
		Result: model.ScoringResult{
			Probability:  probability,
			Score:        score,
			Rating:       e.classifier.Classify(score),
			ModelVersion: e.params.ModelVersion(),
		},
	}, nil
}

// Explain returns the encoded features and default log-odds for profile.
func (e *ScoringEngine) Explain(profile model.ApplicantProfile) (model.FeatureVector, float64, error) {
	ev, err := e.Evaluate(profile)
	if err != nil {
		return model.FeatureVector{}, 0, err
	}
	return ev.Features, ev.LogOdds, nil
}

// Parameters returns the bound parameter set.
func (e *ScoringEngine) Parameters() model.ModelParameters { return e.params }
