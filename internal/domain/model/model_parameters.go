package model

import (
	"math"

	"github.com/bibbank/creditrisk/internal/domain/valueobject"
)

// Load-time bounds that keep the linear predictor finite for every valid
// profile.
const (
	MaxCoefficientMagnitude = 1e6
	MinScalingSpan          = 1e-9
)

// ---------------------------------------------------------------------------
// Parameter building blocks
// ---------------------------------------------------------------------------

// FeatureScaling min-max scales a single feature: (x - Min) / (Max - Min).
type FeatureScaling struct {
	Min float64
	Max float64
}

// Apply scales x.
func (s FeatureScaling) Apply(x float64) float64 {
	return (x - s.Min) / (s.Max - s.Min)
}

// ScoreScale maps repayment log-odds onto a bounded integer score:
// score = Offset + Factor * log_odds, clamped to [MinScore, MaxScore].
type ScoreScale struct {
	Offset   float64
	Factor   float64
	MinScore int
	MaxScore int
}

// RatingBand assigns Rating to every score up to and including MaxScore that
// is above the previous band's MaxScore.
type RatingBand struct {
	Rating   valueobject.Rating
	MaxScore int
}

// ParameterSpec is the unvalidated content of a parameter artifact.
type ParameterSpec struct {
	ModelVersion   string
	FeatureSchema  string
	FeatureNames   []string
	Coefficients   []float64
	FeatureScaling []FeatureScaling
	RatingBands    []RatingBand
	ScoreScale     ScoreScale
	Intercept      float64
}

// ---------------------------------------------------------------------------
// ModelParameters
// ---------------------------------------------------------------------------

// ModelParameters is the trained, read-only parameter set of the
// probability-of-default model together with its score scale and rating
// table. It is safe for unsynchronised concurrent reads.
type ModelParameters struct {
	modelVersion  string
	featureSchema string
	featureNames  []string
	coefficients  []float64
	scaling       []FeatureScaling
	bands         []RatingBand
	scale         ScoreScale
	intercept     float64
}

// NewModelParameters validates spec and returns an immutable parameter set.
// Every failure wraps ErrParameterLoad.
func NewModelParameters(spec ParameterSpec) (ModelParameters, error) {
	if spec.ModelVersion == "" {
		return ModelParameters{}, parameterError("model version is required")
	}
	if spec.FeatureSchema == "" {
		return ModelParameters{}, parameterError("feature schema is required")
	}
	if len(spec.FeatureNames) == 0 {
		return ModelParameters{}, parameterError("at least one feature is required")
	}
	seen := make(map[string]bool, len(spec.FeatureNames))
	for i, name := range spec.FeatureNames {
		if name == "" {
			return ModelParameters{}, parameterError("feature %d has an empty name", i)
		}
		if seen[name] {
			return ModelParameters{}, parameterError("duplicate feature %q", name)
		}
		seen[name] = true
	}

	if len(spec.Coefficients) != len(spec.FeatureNames) {
		return ModelParameters{}, parameterError("coefficient count %d does not match feature count %d",
			len(spec.Coefficients), len(spec.FeatureNames))
	}
	for i, c := range spec.Coefficients {
		if !boundedFinite(c, MaxCoefficientMagnitude) {
			return ModelParameters{}, parameterError("coefficient for %q is not a finite value within ±%g",
				spec.FeatureNames[i], MaxCoefficientMagnitude)
		}
	}
	if !boundedFinite(spec.Intercept, MaxCoefficientMagnitude) {
		return ModelParameters{}, parameterError("intercept is not a finite value within ±%g", MaxCoefficientMagnitude)
	}

	if len(spec.FeatureScaling) != 0 {
		if len(spec.FeatureScaling) != len(spec.FeatureNames) {
			return ModelParameters{}, parameterError("feature scaling count %d does not match feature count %d",
				len(spec.FeatureScaling), len(spec.FeatureNames))
		}
		for i, s := range spec.FeatureScaling {
			if math.IsNaN(s.Min) || math.IsInf(s.Min, 0) || math.IsNaN(s.Max) || math.IsInf(s.Max, 0) {
				return ModelParameters{}, parameterError("scaling for %q is not finite", spec.FeatureNames[i])
			}
			if s.Max-s.Min < MinScalingSpan {
				return ModelParameters{}, parameterError("scaling for %q needs max > min", spec.FeatureNames[i])
			}
		}
	}

	if err := validateScoreScale(spec.ScoreScale); err != nil {
		return ModelParameters{}, err
	}
	if err := validateRatingBands(spec.RatingBands, spec.ScoreScale); err != nil {
		return ModelParameters{}, err
	}

	return ModelParameters{
		modelVersion:  spec.ModelVersion,
		featureSchema: spec.FeatureSchema,
		featureNames:  append([]string(nil), spec.FeatureNames...),
		coefficients:  append([]float64(nil), spec.Coefficients...),
		scaling:       append([]FeatureScaling(nil), spec.FeatureScaling...),
		bands:         append([]RatingBand(nil), spec.RatingBands...),
		scale:         spec.ScoreScale,
		intercept:     spec.Intercept,
	}, nil
}

func validateScoreScale(s ScoreScale) error {
	if math.IsNaN(s.Offset) || math.IsInf(s.Offset, 0) {
		return parameterError("score offset is not finite")
	}
	if math.IsNaN(s.Factor) || math.IsInf(s.Factor, 0) || s.Factor <= 0 {
		return parameterError("score factor must be a positive finite value")
	}
	if s.MinScore >= s.MaxScore {
		return parameterError("score bounds [%d, %d] are empty", s.MinScore, s.MaxScore)
	}
	return nil
}

func validateRatingBands(bands []RatingBand, s ScoreScale) error {
	if len(bands) == 0 {
		return parameterError("at least one rating band is required")
	}
	for i, b := range bands {
		if b.Rating.IsZero() {
			return parameterError("rating band %d has no rating", i)
		}
		if i == 0 {
			if b.MaxScore < s.MinScore {
				return parameterError("rating band %s ends below the minimum score %d", b.Rating, s.MinScore)
			}
			continue
		}
		prev := bands[i-1]
		if b.MaxScore <= prev.MaxScore {
			return parameterError("rating band %s must end above %d", b.Rating, prev.MaxScore)
		}
		if !b.Rating.Better(prev.Rating) {
			return parameterError("rating band %s must be better than %s", b.Rating, prev.Rating)
		}
	}
	if last := bands[len(bands)-1]; last.MaxScore < s.MaxScore {
		return parameterError("rating bands end at %d, below the maximum score %d", last.MaxScore, s.MaxScore)
	}
	return nil
}

func boundedFinite(v, limit float64) bool {
	return !math.IsNaN(v) && math.Abs(v) <= limit
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// ModelVersion identifies the trained model.
func (p ModelParameters) ModelVersion() string { return p.modelVersion }

// FeatureSchema is the encoder schema tag the model was fitted on.
func (p ModelParameters) FeatureSchema() string { return p.featureSchema }

// Dimension is the number of features.
func (p ModelParameters) Dimension() int { return len(p.coefficients) }

// Coefficient returns the weight of feature i.
func (p ModelParameters) Coefficient(i int) float64 { return p.coefficients[i] }

// Intercept returns the model bias term.
func (p ModelParameters) Intercept() float64 { return p.intercept }

// HasScaling reports whether features are min-max scaled before weighting.
func (p ModelParameters) HasScaling() bool { return len(p.scaling) > 0 }

// Scaling returns the scaling range of feature i. Only valid when HasScaling.
func (p ModelParameters) Scaling(i int) FeatureScaling { return p.scaling[i] }

// ScoreScale returns the log-odds to score mapping.
func (p ModelParameters) ScoreScale() ScoreScale { return p.scale }

// IsZero reports whether p was never constructed.
func (p ModelParameters) IsZero() bool { return p.modelVersion == "" }

// FeatureNames returns a copy of the ordered feature names.
func (p ModelParameters) FeatureNames() []string { return append([]string(nil), p.featureNames...) }

// Coefficients returns a copy of the coefficients in feature order.
func (p ModelParameters) Coefficients() []float64 { return append([]float64(nil), p.coefficients...) }

// RatingBands returns a copy of the rating table, ordered by MaxScore.
func (p ModelParameters) RatingBands() []RatingBand { return append([]RatingBand(nil), p.bands...) }
