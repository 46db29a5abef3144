// Package steps drives cards through their learning and relearning
// step sequences: short minute-scale intervals a new or lapsed card
// passes through before (re)graduating to review.
package steps

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/abhisek/recall/internal/card"
	"github.com/abhisek/recall/internal/deck"
)

// ErrNotLearningState is returned when a card outside the learning
// states is fed into the step engine.
var ErrNotLearningState = errors.New("invalid card state for learning steps")

// Service owns the learning/relearning step progression.
type Service struct{}

// NewService creates a step progression service.
func NewService() *Service {
	return &Service{}
}

// Result is the outcome of a learning-step answer.
type Result struct {
	Card       card.Card
	WasCorrect bool
	NextReview time.Time
	Reasoning  string
}

// ProcessLearningCard applies a rating to a new, learning, or
// relearning card. Again resets the step sequence (and counts a lapse,
// even before first graduation — intentional, matching observed
// behavior), Hard moves back one step, Good advances or graduates,
// Easy graduates immediately.
func (s *Service) ProcessLearningCard(c card.Card, rating card.Rating, set deck.Settings, elapsedMs int64, now time.Time) (Result, error) {
	switch c.State {
	case card.StateNew, card.StateLearning, card.StateRelearning:
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrNotLearningState, c.State)
	}
	if !rating.Valid() {
		return Result{}, fmt.Errorf("invalid rating: %d", rating)
	}

	// A new card enters learning the moment it is answered.
	if c.State == card.StateNew {
		c.State = card.StateLearning
		c.Queue = card.QueueLearning
	}

	steps := stepsFor(c.State, set)
	if c.LearningStep < 0 {
		c.LearningStep = 0
	}
	if c.LearningStep >= len(steps) {
		c.LearningStep = len(steps) - 1
	}

	var reasoning string
	wasCorrect := false

	switch rating {
	case card.Again:
		c.LearningStep = 0
		c.Left = steps[0]
		c.Lapses++
		reasoning = "step sequence reset"

	case card.Hard:
		if c.LearningStep > 0 {
			c.LearningStep--
		}
		c.Left = steps[c.LearningStep]
		reasoning = "moved back one step"

	case card.Good:
		if c.LearningStep+1 < len(steps) {
			c.LearningStep++
			c.Left = steps[c.LearningStep]
			reasoning = "advanced to next step"
		} else {
			graduate(&c, set)
			reasoning = "graduated after final step"
		}
		wasCorrect = true

	case card.Easy:
		graduateEasy(&c, set)
		reasoning = "graduated early on easy rating"
		wasCorrect = true
	}

	recordAnswer(&c, elapsedMs, set, now)

	return Result{
		Card:       c,
		WasCorrect: wasCorrect,
		NextReview: nextReview(c, now),
		Reasoning:  reasoning,
	}, nil
}

// graduate moves a card from learning/relearning into review at the
// end of its step sequence.
func graduate(c *card.Card, set deck.Settings) {
	fromRelearning := c.State == card.StateRelearning

	c.State = card.StateReview
	c.Queue = card.QueueReview
	c.LearningStep = 0
	c.Left = 0

	if fromRelearning {
		// The post-lapse interval was already reduced when the card
		// lapsed; never let it drop below the configured floor.
		c.Ivl = maxInt(set.Lapses.MinimumInterval, c.Ivl)
	} else {
		c.Ivl = graduatingInterval(*c, set)
	}

	if c.Factor == 0 {
		c.Factor = set.NewCards.StartingEase
	}
}

// graduateEasy graduates immediately with the easy interval and an
// ease boost.
func graduateEasy(c *card.Card, set deck.Settings) {
	c.State = card.StateReview
	c.Queue = card.QueueReview
	c.LearningStep = 0
	c.Left = 0

	if c.EasyInterval > 0 {
		c.Ivl = c.EasyInterval
	} else {
		c.Ivl = set.NewCards.EasyInterval
	}
	c.Factor = minInt(deck.MaxFactor, set.NewCards.StartingEase+150)
}

// recordAnswer updates the per-card answer aggregates and, for a card
// that graduated, its review due day.
func recordAnswer(c *card.Card, elapsedMs int64, set deck.Settings, now time.Time) {
	if limit := int64(set.Advanced.MaxAnswerSeconds) * 1000; limit > 0 && elapsedMs > limit {
		elapsedMs = limit
	}
	c.TotalStudyTime += elapsedMs
	c.Reps++
	c.AverageAnswerTime = int64(math.Round(float64(c.TotalStudyTime) / float64(c.Reps)))
	c.LastReviewedAt = now

	if c.State == card.StateReview {
		c.Due = card.DayNumber(now, set.Advanced.DayStartsAt) + c.Ivl
	}
}

// nextReview computes the instant the card comes up again: anchored
// minutes while still in steps, whole days once graduated.
func nextReview(c card.Card, now time.Time) time.Time {
	if c.State == card.StateReview {
		return now.AddDate(0, 0, c.Ivl)
	}
	return now.Add(time.Duration(c.Left) * time.Minute)
}

// stepsFor selects the active step sequence. An empty configured list
// falls back to a single 1-minute step.
func stepsFor(state card.State, set deck.Settings) []int {
	var steps []int
	if state == card.StateRelearning {
		steps = set.Lapses.StepsMinutes
	} else {
		steps = set.NewCards.StepsMinutes
	}
	if len(steps) == 0 {
		return []int{1}
	}
	return steps
}

func graduatingInterval(c card.Card, set deck.Settings) int {
	if c.GraduationInterval > 0 {
		return c.GraduationInterval
	}
	if set.NewCards.GraduatingInterval > 0 {
		return set.NewCards.GraduatingInterval
	}
	return 1
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
