package card

import (
	"fmt"
	"time"

	"github.com/abhisek/recall/internal/deck"
)

// ValidationResult collects structural problems found in a card.
// Errors block scheduling; warnings are advisory and never do.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Validate checks a card's structural invariants against the deck
// settings. It never mutates the card.
func Validate(c Card, s deck.Settings) ValidationResult {
	var errs, warns []string

	if c.ID == "" {
		errs = append(errs, "card id is required")
	}
	if c.DeckID == "" {
		errs = append(errs, "card deck id is required")
	}
	if c.Front == "" {
		errs = append(errs, "card content is required")
	}

	q, known := QueueFor(c.State)
	if !known {
		errs = append(errs, fmt.Sprintf("invalid card state: %q", c.State))
	} else if c.Queue != q {
		errs = append(errs, "inconsistent state-queue combination")
	}

	if c.Ivl < 0 {
		errs = append(errs, "interval must be non-negative")
	}
	if c.Reps < 0 {
		errs = append(errs, "reps must be non-negative")
	}
	if c.Lapses < 0 {
		errs = append(errs, "lapses must be non-negative")
	}
	if c.Left < 0 {
		errs = append(errs, "left must be non-negative")
	}

	if c.Factor <= 0 {
		errs = append(errs, "ease factor must be a positive number")
	} else if c.Factor < deck.MinFactor || c.Factor > deck.MaxFactor {
		warns = append(warns, fmt.Sprintf("ease factor %d outside normal range [%d, %d]",
			c.Factor, deck.MinFactor, deck.MaxFactor))
	}

	if s.Lapses.LeechThreshold > 0 && c.Lapses >= s.Lapses.LeechThreshold {
		warns = append(warns, fmt.Sprintf("card may be a leech (%d lapses)", c.Lapses))
	}

	if c.State == StateNew && c.Reps > 0 {
		warns = append(warns, "new card has completed reviews")
	}

	if c.CreatedAt != "" {
		if _, err := time.Parse(time.RFC3339, c.CreatedAt); err != nil {
			errs = append(errs, fmt.Sprintf("createdAt is not a valid date: %v", err))
		}
	}

	return ValidationResult{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warns,
	}
}

// ValidateAll aggregates validation across many cards, prefixing each
// finding with the card's id for traceability.
func ValidateAll(cards []Card, s deck.Settings) ValidationResult {
	agg := ValidationResult{Valid: true}
	for _, c := range cards {
		vr := Validate(c, s)
		for _, e := range vr.Errors {
			agg.Errors = append(agg.Errors, fmt.Sprintf("card %s: %s", c.ID, e))
		}
		for _, w := range vr.Warnings {
			agg.Warnings = append(agg.Warnings, fmt.Sprintf("card %s: %s", c.ID, w))
		}
	}
	agg.Valid = len(agg.Errors) == 0
	return agg
}
