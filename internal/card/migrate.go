package card

import (
	"fmt"
	"math"

	"github.com/abhisek/recall/internal/deck"
)

// LegacyCard is the pre-schema card shape accepted by Migrate. Missing
// numeric fields default to a 2.5 ease and zero counters.
type LegacyCard struct {
	ID           string  `json:"id"`
	DeckID       string  `json:"deckId"`
	Front        string  `json:"front"`
	Back         string  `json:"back"`
	ReviewCount  int     `json:"reviewCount"`
	LapseCount   int     `json:"lapseCount"`
	IntervalDays int     `json:"intervalDays"`
	EaseFactor   float64 `json:"easeFactor"`
	CreatedAt    string  `json:"createdAt,omitempty"`
}

// MigrationResult carries the migrated card plus human-readable notes
// about the decisions taken.
type MigrationResult struct {
	Success bool
	Card    Card
	Notes   []string
}

// Migrate converts a legacy card into the current schema. The
// heuristic: any completed review means the card was in circulation,
// so it lands in review state; otherwise it restarts as new. Migration
// always succeeds.
func Migrate(legacy LegacyCard, s deck.Settings) MigrationResult {
	var notes []string

	c := Card{
		ID:                 legacy.ID,
		DeckID:             legacy.DeckID,
		Front:              legacy.Front,
		Back:               legacy.Back,
		CreatedAt:          legacy.CreatedAt,
		GraduationInterval: s.NewCards.GraduatingInterval,
		EasyInterval:       s.NewCards.EasyInterval,
	}

	if legacy.ReviewCount > 0 {
		ease := legacy.EaseFactor
		if ease == 0 {
			ease = 2.5
			notes = append(notes, "missing ease factor, defaulted to 2.5")
		}
		c.State = StateReview
		c.Queue = QueueReview
		c.Reps = legacy.ReviewCount
		c.Lapses = legacy.LapseCount
		c.Ivl = legacy.IntervalDays
		c.Factor = int(math.Round(ease * 1000))
		notes = append(notes, "migrated as review card based on reviewCount > 0")
	} else {
		c.State = StateNew
		c.Queue = QueueNew
		c.Factor = deck.DefaultStartingEase
		notes = append(notes, "migrated as new card")
	}

	if legacy.LapseCount > 0 && legacy.ReviewCount == 0 {
		notes = append(notes, fmt.Sprintf("dropped %d lapses recorded without reviews", legacy.LapseCount))
	}

	return MigrationResult{Success: true, Card: c, Notes: notes}
}
