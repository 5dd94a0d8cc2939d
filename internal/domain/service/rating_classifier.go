package service

import (
	"github.com/bibbank/creditrisk/internal/domain/model"
	"github.com/bibbank/creditrisk/internal/domain/valueobject"
)

// RatingClassifier maps a score onto the ordered rating bands.
//
// Bands are upper-inclusive: a score equal to a band's MaxScore belongs to
// that band, not to the next one. With the shipped table
//
//	score <= 580 -> Poor
//	score <= 670 -> Average
//	score <= 750 -> Good
//	otherwise    -> Excellent
type RatingClassifier struct {
	bands []model.RatingBand
}

// NewRatingClassifier creates a classifier over bands, which must be ordered
// by MaxScore (ModelParameters guarantees this).
func NewRatingClassifier(bands []model.RatingBand) *RatingClassifier {
	return &RatingClassifier{bands: append([]model.RatingBand(nil), bands...)}
}

// Classify returns the rating of the first band whose MaxScore is at least
// score. Scores above the last band take the last band's rating. An empty
// table classifies nothing and returns the zero Rating.
func (c *RatingClassifier) Classify(score int) valueobject.Rating {
	if len(c.bands) == 0 {
		return valueobject.Rating{}
	}
	for _, b := range c.bands {
		if score <= b.MaxScore {
			return b.Rating
		}
	}
	return c.bands[len(c.bands)-1].Rating
}
