// Package scheduler is the primary scheduling entry point. It
// dispatches each (card, rating) pair either to the learning-step
// engine or to its own SM-2+ review-interval algorithm, and exposes
// rating previews, retention measurement, and a settings auto-tuner.
package scheduler

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/abhisek/recall/internal/card"
	"github.com/abhisek/recall/internal/deck"
	"github.com/abhisek/recall/internal/steps"
)

// Algorithm tags recorded in Debug.
const (
	AlgoLearning = "ANKI_LEARNING"
	AlgoReview   = "SM2_PLUS"
	AlgoLapse    = "SM2_PLUS_LAPSE"
)

// Sentinel errors. Check with errors.Is.
var (
	ErrInvalidCard        = errors.New("cannot schedule invalid card")
	ErrUnschedulableState = errors.New("cannot schedule card in state")
	ErrInvalidRating      = errors.New("invalid rating")
)

// Config configures a Scheduler. The zero value fuzzes review
// intervals with a time-based seed.
type Config struct {
	// Seed seeds the fuzz RNG. Zero means time-based.
	Seed int64

	// DisableFuzzing turns off interval fuzz for deterministic output.
	DisableFuzzing bool
}

// Scheduler computes the next scheduling state for a card given a
// study rating. It holds no card state; every call is a pure function
// of its inputs apart from the fuzz RNG.
type Scheduler struct {
	steps          *steps.Service
	rng            *rand.Rand
	disableFuzzing bool
}

// New creates a Scheduler.
func New(cfg Config) *Scheduler {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Scheduler{
		steps:          steps.NewService(),
		rng:            rand.New(rand.NewSource(seed)),
		disableFuzzing: cfg.DisableFuzzing,
	}
}

// Context carries the ephemeral per-call inputs.
type Context struct {
	Now       time.Time
	ElapsedMs int64
}

// Debug documents how an interval was computed. Reasoning is
// free-text diagnostics, never part of the contract.
type Debug struct {
	Algorithm        string
	ComputedInterval int
	FuzzedInterval   int
	FinalInterval    int
	EaseDelta        int
	Reasoning        string
}

// Result is the outcome of a scheduling call. The caller owns
// persisting the card and triggering any side effects.
type Result struct {
	Card           card.Card
	WasCorrect     bool
	PreviousState  card.State
	NewState       card.State
	IntervalChange int
	NextReview     time.Time
	Debug          Debug
}

// ScheduleCard applies a rating to a card and returns its next state.
// The input card must validate cleanly and be in a studyable state.
func (s *Scheduler) ScheduleCard(c card.Card, rating card.Rating, set deck.Settings, ctx Context) (Result, error) {
	return s.schedule(c, rating, set, ctx, !s.disableFuzzing)
}

func (s *Scheduler) schedule(c card.Card, rating card.Rating, set deck.Settings, ctx Context, fuzz bool) (Result, error) {
	if !rating.Valid() {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidRating, rating)
	}

	vr := card.Validate(c, set)
	if !vr.Valid {
		return Result{}, fmt.Errorf("%w: %s", ErrInvalidCard, strings.Join(vr.Errors, "; "))
	}

	switch c.State {
	case card.StateNew, card.StateLearning, card.StateRelearning:
		return s.scheduleLearning(c, rating, set, ctx)
	case card.StateReview:
		return s.scheduleReview(c, rating, set, ctx, fuzz)
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnschedulableState, c.State)
	}
}

// scheduleLearning delegates to the step engine and wraps its result.
func (s *Scheduler) scheduleLearning(c card.Card, rating card.Rating, set deck.Settings, ctx Context) (Result, error) {
	prev := c.State
	prevIvl := c.Ivl

	r, err := s.steps.ProcessLearningCard(c, rating, set, ctx.ElapsedMs, ctx.Now)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Card:           r.Card,
		WasCorrect:     r.WasCorrect,
		PreviousState:  prev,
		NewState:       r.Card.State,
		IntervalChange: r.Card.Ivl - prevIvl,
		NextReview:     r.NextReview,
		Debug: Debug{
			Algorithm:        AlgoLearning,
			ComputedInterval: r.Card.Ivl,
			FuzzedInterval:   r.Card.Ivl,
			FinalInterval:    r.Card.Ivl,
			Reasoning:        r.Reasoning,
		},
	}, nil
}

// scheduleReview runs the SM-2+ algorithm on a graduated card.
func (s *Scheduler) scheduleReview(c card.Card, rating card.Rating, set deck.Settings, ctx Context, fuzz bool) (Result, error) {
	prevIvl := c.Ivl
	prevFactor := c.Factor

	if rating == card.Again {
		return s.lapse(c, set, ctx), nil
	}

	var computed int
	var reasoning string

	switch rating {
	case card.Hard:
		computed = int(math.Round(float64(c.Ivl) * set.Reviews.HardInterval))
		c.Factor = maxInt(deck.MinFactor, c.Factor-150)
		reasoning = fmt.Sprintf("hard: ivl x %.2f, ease -150", set.Reviews.HardInterval)
	case card.Good:
		computed = int(math.Round(float64(c.Ivl) * easeMultiplier(c.Factor) * set.Reviews.IntervalModifier))
		reasoning = "good: ivl x ease x modifier"
	case card.Easy:
		computed = int(math.Round(float64(c.Ivl) * easeMultiplier(c.Factor) * set.Reviews.IntervalModifier * set.Reviews.EasyBonus))
		c.Factor = minInt(deck.MaxFactor, c.Factor+150)
		reasoning = "easy: ivl x ease x modifier x bonus"
	}

	computed = clampInt(computed, set.Reviews.MinimumInterval, set.Reviews.MaximumInterval)

	final := computed
	if fuzz {
		final = applyFuzz(computed, set.Reviews.MaximumInterval, s.rng)
	}

	c.Ivl = final
	c.Due = card.DayNumber(ctx.Now, set.Advanced.DayStartsAt) + final
	recordAnswer(&c, ctx.ElapsedMs, set, ctx.Now)

	return Result{
		Card:           c,
		WasCorrect:     true,
		PreviousState:  card.StateReview,
		NewState:       card.StateReview,
		IntervalChange: final - prevIvl,
		NextReview:     ctx.Now.AddDate(0, 0, final),
		Debug: Debug{
			Algorithm:        AlgoReview,
			ComputedInterval: computed,
			FuzzedInterval:   final,
			FinalInterval:    final,
			EaseDelta:        c.Factor - prevFactor,
			Reasoning:        reasoning,
		},
	}, nil
}

// lapse handles an Again rating on a review card: the ease drops, the
// post-lapse interval is computed and stored for eventual
// re-graduation, and the card enters relearning — unless it crossed
// the leech threshold with a suspend action, which parks it instead.
func (s *Scheduler) lapse(c card.Card, set deck.Settings, ctx Context) Result {
	prevIvl := c.Ivl
	prevFactor := c.Factor

	c.Lapses++
	c.Factor = maxInt(deck.MinFactor, c.Factor-200)

	computed := maxInt(set.Lapses.MinimumInterval,
		int(math.Round(float64(c.Ivl)*set.Lapses.NewInterval)))
	c.Ivl = computed

	c.State = card.StateRelearning
	c.Queue = card.QueueLearning
	c.LearningStep = 0
	c.Left = firstStep(set.Lapses.StepsMinutes, 10)

	reasoning := "lapse: entered relearning"
	if s.steps.IsLeech(c, set) {
		switch set.Lapses.LeechAction {
		case deck.LeechSuspend:
			c = s.steps.HandleLeech(c, set)
			reasoning = "lapse: leech threshold crossed, suspended"
		case deck.LeechTag:
			c = s.steps.HandleLeech(c, set)
			reasoning = "lapse: leech threshold crossed, tagged"
		}
	}

	recordAnswer(&c, ctx.ElapsedMs, set, ctx.Now)

	var next time.Time
	if c.State == card.StateRelearning {
		next = ctx.Now.Add(time.Duration(c.Left) * time.Minute)
	}

	return Result{
		Card:           c,
		WasCorrect:     false,
		PreviousState:  card.StateReview,
		NewState:       c.State,
		IntervalChange: c.Ivl - prevIvl,
		NextReview:     next,
		Debug: Debug{
			Algorithm:        AlgoLapse,
			ComputedInterval: computed,
			FuzzedInterval:   computed,
			FinalInterval:    computed,
			EaseDelta:        c.Factor - prevFactor,
			Reasoning:        reasoning,
		},
	}
}

// recordAnswer updates the per-card answer-time aggregates.
func recordAnswer(c *card.Card, elapsedMs int64, set deck.Settings, now time.Time) {
	if limit := int64(set.Advanced.MaxAnswerSeconds) * 1000; limit > 0 && elapsedMs > limit {
		elapsedMs = limit
	}
	c.TotalStudyTime += elapsedMs
	c.Reps++
	c.AverageAnswerTime = int64(math.Round(float64(c.TotalStudyTime) / float64(c.Reps)))
	c.LastReviewedAt = now
}

// easeMultiplier converts a per-mille factor to the interval
// multiplier (2500 -> 2.5).
func easeMultiplier(factor int) float64 {
	return float64(factor) / 1000.0
}

func firstStep(stepsMinutes []int, fallback int) int {
	if len(stepsMinutes) == 0 {
		return fallback
	}
	return stepsMinutes[0]
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
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
