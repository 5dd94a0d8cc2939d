package model

import "fmt"

// FeatureVector is the ordered numeric encoding of one ApplicantProfile.
// It is immutable: accessors hand out copies.
type FeatureVector struct {
	names  []string
	values []float64
}

// NewFeatureVector pairs feature names with their values.
func NewFeatureVector(names []string, values []float64) (FeatureVector, error) {
	if len(names) != len(values) {
		return FeatureVector{}, fmt.Errorf("feature vector: %d names for %d values", len(names), len(values))
	}
	fv := FeatureVector{
		names:  make([]string, len(names)),
		values: make([]float64, len(values)),
	}
	copy(fv.names, names)
	copy(fv.values, values)
	return fv, nil
}

// Len returns the dimensionality of the vector.
func (f FeatureVector) Len() int { return len(f.values) }

// At returns the i-th feature value.
func (f FeatureVector) At(i int) float64 { return f.values[i] }

// Name returns the i-th feature name.
func (f FeatureVector) Name(i int) string { return f.names[i] }

// Values returns a copy of the feature values.
func (f FeatureVector) Values() []float64 {
	out := make([]float64, len(f.values))
	copy(out, f.values)
	return out
}

// Names returns a copy of the feature names.
func (f FeatureVector) Names() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// Value looks a feature up by name.
func (f FeatureVector) Value(name string) (float64, bool) {
	for i, n := range f.names {
		if n == name {
			return f.values[i], true
		}
	}
	return 0, false
}
