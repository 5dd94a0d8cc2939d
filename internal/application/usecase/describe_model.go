package usecase

import (
	"github.com/bibbank/creditrisk/internal/application/dto"
	"github.com/bibbank/creditrisk/internal/domain/service"
)

// DescribeModelUseCase reports what the engine was loaded with.
type DescribeModelUseCase struct {
	engine *service.ScoringEngine
	digest string
}

// NewDescribeModelUseCase wires dependencies. digest identifies the artifact
// bytes the engine was built from and may be empty.
func NewDescribeModelUseCase(engine *service.ScoringEngine, digest string) *DescribeModelUseCase {
	return &DescribeModelUseCase{engine: engine, digest: digest}
}

// Execute returns the model description.
func (uc *DescribeModelUseCase) Execute() dto.ModelDescriptionResponse {
	params := uc.engine.Parameters()
	scale := params.ScoreScale()

	names := params.FeatureNames()
	coefficients := params.Coefficients()
	features := make([]dto.FeatureCoefficient, len(names))
	for i, name := range names {
		features[i] = dto.FeatureCoefficient{Name: name, Coefficient: coefficients[i]}
	}

	bands := params.RatingBands()
	table := make([]dto.RatingBandResponse, len(bands))
	lower := scale.MinScore
	for i, b := range bands {
		upper := min(b.MaxScore, scale.MaxScore)
		table[i] = dto.RatingBandResponse{Rating: b.Rating.String(), MinScore: lower, MaxScore: upper}
		lower = b.MaxScore + 1
	}

	return dto.ModelDescriptionResponse{
		ModelVersion:   params.ModelVersion(),
		FeatureSchema:  params.FeatureSchema(),
		ArtifactDigest: uc.digest,
		Features:       features,
		Intercept:      params.Intercept(),
		MinScore:       scale.MinScore,
		MaxScore:       scale.MaxScore,
		RatingBands:    table,
	}
}
