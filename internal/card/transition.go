package card

import (
	"fmt"
	"time"

	"github.com/abhisek/recall/internal/deck"
)

// TransitionResult records the outcome of a direct state jump.
type TransitionResult struct {
	Success       bool
	Card          Card
	PreviousState State
	NewState      State
	Validation    ValidationResult
}

// Transition applies the structural side effects of entering target.
// This is a direct jump, not a graded reschedule: it validates the
// input card, then sets only the fields the target state requires.
// On validation failure or an unknown target state the card is
// returned unchanged.
func Transition(c Card, target State, s deck.Settings, now time.Time) TransitionResult {
	vr := Validate(c, s)
	if !vr.Valid {
		return TransitionResult{
			Success:       false,
			Card:          c,
			PreviousState: c.State,
			NewState:      c.State,
			Validation:    vr,
		}
	}

	prev := c.State

	switch target {
	case StateLearning:
		c.State = StateLearning
		c.Queue = QueueLearning
		c.LearningStep = 0
		c.Left = firstStep(s.NewCards.StepsMinutes, 1)
		c.LastReviewedAt = now

	case StateReview:
		c.State = StateReview
		c.Queue = QueueReview
		c.LearningStep = 0
		c.Left = 0
		if prev == StateRelearning {
			// The post-lapse interval was computed when the card
			// lapsed; graduation only clamps it.
			c.Ivl = maxInt(s.Lapses.MinimumInterval, c.Ivl)
		} else {
			c.Ivl = graduatingInterval(c, s)
		}
		c.Due = DayNumber(now, s.Advanced.DayStartsAt) + c.Ivl

	case StateRelearning:
		c.State = StateRelearning
		c.Queue = QueueLearning
		c.LearningStep = 0
		c.Left = firstStep(s.Lapses.StepsMinutes, 10)
		c.LastReviewedAt = now

	case StateSuspended:
		c.State = StateSuspended
		c.Queue = QueueSuspended
		c.OriginalDue = c.Due
		c.Due = 0

	case StateBuried:
		c.State = StateBuried
		c.Queue = QueueBuried
		c.OriginalDue = c.Due
		c.Due = DayNumber(now, s.Advanced.DayStartsAt) + 1

	case StateNew:
		// Hard reset: the card forgets its history.
		c.State = StateNew
		c.Queue = QueueNew
		c.Reps = 0
		c.Lapses = 0
		c.Ivl = 0
		c.Due = 0
		c.Left = 0
		c.LearningStep = 0

	default:
		vr.Valid = false
		vr.Errors = append(vr.Errors, fmt.Sprintf("invalid target state: %q", target))
		return TransitionResult{
			Success:       false,
			Card:          c,
			PreviousState: prev,
			NewState:      prev,
			Validation:    vr,
		}
	}

	return TransitionResult{
		Success:       true,
		Card:          c,
		PreviousState: prev,
		NewState:      c.State,
		Validation:    vr,
	}
}

// graduatingInterval resolves the first review interval for a freshly
// graduated card: the per-card cached value, then the deck setting,
// then one day.
func graduatingInterval(c Card, s deck.Settings) int {
	if c.GraduationInterval > 0 {
		return c.GraduationInterval
	}
	if s.NewCards.GraduatingInterval > 0 {
		return s.NewCards.GraduatingInterval
	}
	return 1
}

// firstStep returns the first step of a sequence in minutes, or the
// fallback when the sequence is empty.
func firstStep(steps []int, fallback int) int {
	if len(steps) == 0 {
		return fallback
	}
	return steps[0]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
