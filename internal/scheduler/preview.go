package scheduler

import (
	"github.com/abhisek/recall/internal/card"
	"github.com/abhisek/recall/internal/deck"
)

// Preview runs the scheduler for all four ratings against copies of
// the card, without mutating the original and without interval fuzz,
// so callers can show exact "if you answer X" intervals. For review
// cards the intervals are monotonic across Hard/Good/Easy, and the
// Again entry carries the reduced post-lapse interval.
func (s *Scheduler) Preview(c card.Card, set deck.Settings, ctx Context) (map[card.Rating]Result, error) {
	out := make(map[card.Rating]Result, 4)
	for _, r := range []card.Rating{card.Again, card.Hard, card.Good, card.Easy} {
		res, err := s.schedule(c, r, set, ctx, false)
		if err != nil {
			return nil, err
		}
		out[r] = res
	}
	return out, nil
}
