package valueobject

import "fmt"

// Rating is an immutable, ordered credit rating. A higher rank is a better
// rating.
type Rating struct {
	value string
	rank  int
}

var (
	RatingPoor      = Rating{value: "Poor", rank: 1}
	RatingAverage   = Rating{value: "Average", rank: 2}
	RatingGood      = Rating{value: "Good", rank: 3}
	RatingExcellent = Rating{value: "Excellent", rank: 4}
)

// Ratings lists every rating from worst to best.
func Ratings() []Rating {
	return []Rating{RatingPoor, RatingAverage, RatingGood, RatingExcellent}
}

// RatingFromString reconstructs a Rating from its string representation.
func RatingFromString(s string) (Rating, error) {
	for _, r := range Ratings() {
		if r.value == s {
			return r, nil
		}
	}
	return Rating{}, fmt.Errorf("invalid rating: %q", s)
}

// String returns the string representation.
func (r Rating) String() string { return r.value }

// Rank returns the position of the rating in the order Poor < Average < Good < Excellent.
// The zero Rating has rank 0.
func (r Rating) Rank() int { return r.rank }

// Better reports whether r is strictly better than other.
func (r Rating) Better(other Rating) bool { return r.rank > other.rank }

// IsZero returns true if the Rating has not been set.
func (r Rating) IsZero() bool { return r.value == "" }

// Equal checks equality with another Rating.
func (r Rating) Equal(other Rating) bool { return r.value == other.value }
