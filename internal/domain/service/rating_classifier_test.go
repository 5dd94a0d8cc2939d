package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bibbank/creditrisk/internal/domain/model"
	"github.com/bibbank/creditrisk/internal/domain/service"
	"github.com/bibbank/creditrisk/internal/domain/valueobject"
	"github.com/bibbank/creditrisk/pkg/testutil"
)

func TestRatingClassifier_BoundaryScores(t *testing.T) {
	classifier := service.NewRatingClassifier(testutil.IllustrativeSpec().RatingBands)

	tests := []struct {
		expected valueobject.Rating
		score    int
	}{
		{expected: valueobject.RatingPoor, score: 300},
		{expected: valueobject.RatingPoor, score: 579},
		{expected: valueobject.RatingPoor, score: 580},
		{expected: valueobject.RatingAverage, score: 581},
		{expected: valueobject.RatingAverage, score: 670},
		{expected: valueobject.RatingGood, score: 671},
		{expected: valueobject.RatingGood, score: 750},
		{expected: valueobject.RatingExcellent, score: 751},
		{expected: valueobject.RatingExcellent, score: 900},
		{expected: valueobject.RatingExcellent, score: 1200},
		{expected: valueobject.RatingPoor, score: -10},
	}

	for _, tt := range tests {
		t.Run(tt.expected.String(), func(t *testing.T) {
			result := classifier.Classify(tt.score)
			assert.True(t, tt.expected.Equal(result),
				"expected %s for score %d, got %s", tt.expected, tt.score, result)
		})
	}
}

func TestRatingClassifier_Monotonic(t *testing.T) {
	classifier := service.NewRatingClassifier(testutil.IllustrativeSpec().RatingBands)

	prev := classifier.Classify(300)
	for s := 301; s <= 900; s++ {
		r := classifier.Classify(s)
		assert.False(t, prev.Better(r), "rating(%d)=%s is worse than rating(%d)=%s", s, r, s-1, prev)
		prev = r
	}
}

func TestRatingClassifier_RecalibratedTable(t *testing.T) {
	classifier := service.NewRatingClassifier([]model.RatingBand{
		{Rating: valueobject.RatingPoor, MaxScore: 500},
		{Rating: valueobject.RatingGood, MaxScore: 900},
	})

	assert.True(t, valueobject.RatingPoor.Equal(classifier.Classify(500)))
	assert.True(t, valueobject.RatingGood.Equal(classifier.Classify(501)))
}

func TestRatingClassifier_EmptyTable(t *testing.T) {
	for _, bands := range [][]model.RatingBand{nil, {}} {
		classifier := service.NewRatingClassifier(bands)

		assert.NotPanics(t, func() { classifier.Classify(600) })
		assert.True(t, classifier.Classify(600).IsZero())
	}
}
