package scheduler

import (
	"github.com/abhisek/recall/internal/card"
)

// RetentionRate computes the percentage of successful reviews across
// the review-experienced population (cards in review state, or with
// any completed reviews): 100 * (Σreps − Σlapses) / Σreps. Returns 0
// when that population has no reviews, including for empty input.
func RetentionRate(cards []card.Card) float64 {
	var reps, lapses int
	for _, c := range cards {
		if c.State != card.StateReview && c.Reps == 0 {
			continue
		}
		reps += c.Reps
		lapses += c.Lapses
	}
	if reps == 0 {
		return 0
	}
	return 100.0 * float64(reps-lapses) / float64(reps)
}
