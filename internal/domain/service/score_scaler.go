package service

import (
	"math"

	"github.com/bibbank/creditrisk/internal/domain/model"
)

// Probability bounds reachable from a clamped linear predictor.
var (
	minProbability = sigmoid(-MaxLogOdds)
	maxProbability = sigmoid(MaxLogOdds)
)

// ScoreScaler maps a default probability onto the bounded integer score scale.
// Scores grow linearly with the log-odds of repayment, so lower risk means a
// higher score.
type ScoreScaler struct {
	scale model.ScoreScale
}

// NewScoreScaler creates a scaler for the given scale.
func NewScoreScaler(scale model.ScoreScale) *ScoreScaler {
	return &ScoreScaler{scale: scale}
}

// ScaleToScore converts probability to a score in [MinScore, MaxScore].
// Out-of-range raw scores are clamped. A NaN probability is treated as the
// highest representable default risk.
func (s *ScoreScaler) ScaleToScore(probability float64) int {
	if math.IsNaN(probability) {
		probability = maxProbability
	}
	p := clamp(probability, minProbability, maxProbability)

	raw := s.scale.Offset + s.scale.Factor*repaymentLogOdds(p)
	raw = clamp(math.Round(raw), float64(s.scale.MinScore), float64(s.scale.MaxScore))
	return int(raw)
}

// Bounds returns the closed score range.
func (s *ScoreScaler) Bounds() (minScore, maxScore int) {
	return s.scale.MinScore, s.scale.MaxScore
}

// repaymentLogOdds is the inverse logistic of the repayment probability 1-p.
func repaymentLogOdds(p float64) float64 {
	return math.Log((1 - p) / p)
}
