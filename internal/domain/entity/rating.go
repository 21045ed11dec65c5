package entity

import (
	"math"
)

// MinStars and MaxStars bound a rating's star value.
const (
	MinStars = 1
	MaxStars = 5
)

// Rating is a (product, user) star value in [MinStars, MaxStars].
// A user may rate the same product more than once; uniqueness per
// (product, user) is intentionally not enforced.
type Rating struct {
	ID        string
	ProductID string
	UserID    string
	Stars     int
}

// AverageStars returns the arithmetic mean of the star values rounded to
// one decimal place. An empty set averages to exactly 0.
func AverageStars(ratings []Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Stars
	}
	return math.Round(float64(sum)/float64(len(ratings))*10) / 10
}
