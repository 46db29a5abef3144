package card

import (
	"github.com/abhisek/recall/internal/deck"
)

// RepairResult carries the normalized card and what was changed.
type RepairResult struct {
	Success bool
	Card    Card
	Changes []string
}

// Repair normalizes an inconsistent card: negative counters are zeroed
// first so the state/reps reconciliation sees the corrected values,
// then state/reps mismatches are resolved, the queue is realigned with
// the state, and the ease factor is clamped into bounds. Repair is
// idempotent; a consistent card comes back value-equal.
func Repair(c Card, s deck.Settings) RepairResult {
	var changes []string

	if c.Ivl < 0 {
		c.Ivl = 0
		changes = append(changes, "zeroed negative interval")
	}
	if c.Reps < 0 {
		c.Reps = 0
		changes = append(changes, "zeroed negative reps")
	}
	if c.Lapses < 0 {
		c.Lapses = 0
		changes = append(changes, "zeroed negative lapses")
	}
	if c.Left < 0 {
		c.Left = 0
		changes = append(changes, "zeroed negative left")
	}

	switch {
	case c.State == StateNew && c.Reps > 0:
		c.State = StateReview
		changes = append(changes, "promoted new card with completed reviews to review")
	case c.State == StateReview && c.Reps == 0:
		c.State = StateNew
		changes = append(changes, "demoted review card with no reviews to new")
	}

	if q, ok := QueueFor(c.State); ok && c.Queue != q {
		c.Queue = q
		changes = append(changes, "realigned queue with state")
	}

	switch {
	case c.Factor < deck.MinFactor:
		c.Factor = deck.MinFactor
		changes = append(changes, "raised ease factor to minimum")
	case c.Factor > deck.MaxFactor:
		c.Factor = deck.MaxFactor
		changes = append(changes, "lowered ease factor to maximum")
	}

	return RepairResult{Success: true, Card: c, Changes: changes}
}
