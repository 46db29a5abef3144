package scheduler

import (
	"math"

	"github.com/abhisek/recall/internal/card"
	"github.com/abhisek/recall/internal/deck"
)

// Damped adjustment constants. A 10-point retention gap moves the
// interval modifier by 0.05; the modifier stays within sane bounds
// regardless of input.
const (
	modifierStep = 0.005
	modifierMin  = 0.50
	modifierMax  = 2.00
)

// OptimizeSettings tunes the deck settings toward a target retention
// percentage based on the review history embedded in the cards. Only
// review-state cards contribute. The input settings are never
// mutated; a new value is always returned, and with no review cards
// it is returned unadjusted.
func OptimizeSettings(cards []card.Card, set deck.Settings, targetPercent float64) deck.Settings {
	out := set

	var review []card.Card
	for _, c := range cards {
		if c.State == card.StateReview {
			review = append(review, c)
		}
	}
	if len(review) == 0 {
		return out
	}

	actual := RetentionRate(review)
	gap := actual - targetPercent
	out.Reviews.IntervalModifier = clampFloat(
		set.Reviews.IntervalModifier+gap*modifierStep, modifierMin, modifierMax)

	var sum int
	for _, c := range review {
		sum += c.Factor
	}
	mean := float64(sum) / float64(len(review))
	if mean < deck.DefaultStartingEase {
		// Cards drifting hard across the deck: start future cards
		// with more headroom, half the observed shortfall.
		boost := int(math.Round((deck.DefaultStartingEase - mean) / 2))
		ease := set.NewCards.StartingEase + boost
		if ease > deck.MaxFactor {
			ease = deck.MaxFactor
		}
		if ease < deck.MinFactor {
			ease = deck.MinFactor
		}
		out.NewCards.StartingEase = ease
	}

	return out
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
