package service

import (
	"math"

	"github.com/bibbank/creditrisk/internal/domain/model"
)

// MaxLogOdds bounds the linear predictor before exponentiation so the
// logistic transform never saturates to exactly 0 or 1.
const MaxLogOdds = 35.0

// ProbabilityModel is the logistic probability-of-default model.
type ProbabilityModel struct{}

// NewProbabilityModel returns a new model.
func NewProbabilityModel() *ProbabilityModel {
	return &ProbabilityModel{}
}

// LogOdds returns the clamped default log-odds
// intercept + Σ coefficient_i · x_i, where x_i is min-max scaled when the
// parameters carry feature scaling. features.Len() must equal
// params.Dimension(); ScoringEngine guarantees this.
func (m *ProbabilityModel) LogOdds(features model.FeatureVector, params model.ModelParameters) float64 {
	z := params.Intercept()
	scaled := params.HasScaling()
	for i := 0; i < features.Len(); i++ {
		x := features.At(i)
		if scaled {
			x = params.Scaling(i).Apply(x)
		}
		z += params.Coefficient(i) * x
	}
	return clamp(z, -MaxLogOdds, MaxLogOdds)
}

// PredictProbability returns the probability of default in (0,1).
func (m *ProbabilityModel) PredictProbability(features model.FeatureVector, params model.ModelParameters) float64 {
	return sigmoid(m.LogOdds(features, params))
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
