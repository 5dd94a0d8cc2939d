package model_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/creditrisk/internal/domain/model"
	"github.com/bibbank/creditrisk/internal/domain/valueobject"
	"github.com/bibbank/creditrisk/pkg/testutil"
)

func TestNewModelParameters_Valid(t *testing.T) {
	params, err := model.NewModelParameters(testutil.IllustrativeSpec())
	require.NoError(t, err)

	assert.Equal(t, "credit-risk-lr-illustrative-1", params.ModelVersion())
	assert.Equal(t, "credit-risk-features/v1", params.FeatureSchema())
	assert.Equal(t, 14, params.Dimension())
	assert.True(t, params.HasScaling())
	assert.InDelta(t, -5.2, params.Intercept(), 0)
	assert.Equal(t, 300, params.ScoreScale().MinScore)
	assert.Len(t, params.RatingBands(), 4)
	assert.False(t, params.IsZero())
}

func TestNewModelParameters_DefensiveCopies(t *testing.T) {
	spec := testutil.IllustrativeSpec()
	params, err := model.NewModelParameters(spec)
	require.NoError(t, err)

	spec.Coefficients[0] = 99
	spec.FeatureNames[0] = "mutated"
	assert.InDelta(t, -1.4, params.Coefficient(0), 0)
	assert.Equal(t, "age", params.FeatureNames()[0])

	names := params.FeatureNames()
	names[1] = "mutated"
	assert.Equal(t, "loan_tenure_months", params.FeatureNames()[1])
}

func TestNewModelParameters_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *model.ParameterSpec)
		message string
	}{
		{"missing model version", func(s *model.ParameterSpec) { s.ModelVersion = "" }, "model version"},
		{"missing feature schema", func(s *model.ParameterSpec) { s.FeatureSchema = "" }, "feature schema"},
		{"no features", func(s *model.ParameterSpec) {
			s.FeatureNames, s.Coefficients, s.FeatureScaling = nil, nil, nil
		}, "at least one feature"},
		{"duplicate feature", func(s *model.ParameterSpec) { s.FeatureNames[1] = "age" }, "duplicate feature"},
		{"empty feature name", func(s *model.ParameterSpec) { s.FeatureNames[2] = "" }, "empty name"},
		{"coefficient count mismatch", func(s *model.ParameterSpec) { s.Coefficients = s.Coefficients[:13] }, "coefficient count 13"},
		{"NaN coefficient", func(s *model.ParameterSpec) { s.Coefficients[3] = math.NaN() }, "credit_utilization_ratio"},
		{"huge coefficient", func(s *model.ParameterSpec) { s.Coefficients[3] = 1e7 }, "not a finite value"},
		{"infinite intercept", func(s *model.ParameterSpec) { s.Intercept = math.Inf(-1) }, "intercept"},
		{"scaling count mismatch", func(s *model.ParameterSpec) { s.FeatureScaling = s.FeatureScaling[:2] }, "feature scaling count"},
		{"degenerate scaling", func(s *model.ParameterSpec) { s.FeatureScaling[0] = model.FeatureScaling{Min: 5, Max: 5} }, "max > min"},
		{"infinite scaling", func(s *model.ParameterSpec) { s.FeatureScaling[0].Max = math.Inf(1) }, "not finite"},
		{"zero factor", func(s *model.ParameterSpec) { s.ScoreScale.Factor = 0 }, "score factor"},
		{"empty score range", func(s *model.ParameterSpec) { s.ScoreScale.MinScore = 900 }, "score bounds"},
		{"no bands", func(s *model.ParameterSpec) { s.RatingBands = nil }, "at least one rating band"},
		{"unordered bands", func(s *model.ParameterSpec) { s.RatingBands[2].MaxScore = 600 }, "must end above"},
		{"non-monotonic ratings", func(s *model.ParameterSpec) {
			s.RatingBands[1].Rating = valueobject.RatingPoor
		}, "must be better than"},
		{"zero rating", func(s *model.ParameterSpec) { s.RatingBands[0].Rating = valueobject.Rating{} }, "has no rating"},
		{"bands do not cover max score", func(s *model.ParameterSpec) { s.RatingBands[3].MaxScore = 850 }, "below the maximum score"},
		{"first band below min score", func(s *model.ParameterSpec) {
			s.RatingBands[0].MaxScore = 200
		}, "below the minimum score"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := testutil.IllustrativeSpec()
			tt.mutate(&spec)

			_, err := model.NewModelParameters(spec)
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrParameterLoad)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestNewModelParameters_ScalingIsOptional(t *testing.T) {
	spec := testutil.IllustrativeSpec()
	spec.FeatureScaling = nil

	params, err := model.NewModelParameters(spec)
	require.NoError(t, err)
	assert.False(t, params.HasScaling())
}

func TestNewModelParameters_ThreeBandTable(t *testing.T) {
	spec := testutil.IllustrativeSpec()
	spec.RatingBands = []model.RatingBand{
		{Rating: valueobject.RatingPoor, MaxScore: 580},
		{Rating: valueobject.RatingAverage, MaxScore: 670},
		{Rating: valueobject.RatingGood, MaxScore: 900},
	}

	_, err := model.NewModelParameters(spec)
	assert.NoError(t, err)
}

func TestFeatureVector(t *testing.T) {
	names := []string{"a", "b"}
	values := []float64{1, 2}
	fv, err := model.NewFeatureVector(names, values)
	require.NoError(t, err)

	values[0] = 42
	assert.InDelta(t, 1.0, fv.At(0), 0)
	assert.Equal(t, 2, fv.Len())
	assert.Equal(t, "b", fv.Name(1))

	v, ok := fv.Value("b")
	assert.True(t, ok)
	assert.InDelta(t, 2.0, v, 0)

	_, ok = fv.Value("missing")
	assert.False(t, ok)

	_, err = model.NewFeatureVector([]string{"a"}, []float64{1, 2})
	assert.Error(t, err)
}
