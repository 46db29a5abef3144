package steps

import (
	"github.com/abhisek/recall/internal/card"
	"github.com/abhisek/recall/internal/deck"
)

// IsLeech reports whether the card has lapsed enough times to cross
// the deck's leech threshold. The threshold applies identically in
// relearning and review. A zero threshold disables detection.
func (s *Service) IsLeech(c card.Card, set deck.Settings) bool {
	return set.Lapses.LeechThreshold > 0 && c.Lapses >= set.Lapses.LeechThreshold
}

// HandleLeech applies the deck's leech action: suspend parks the card,
// tag only sets the leech flag bit and leaves scheduling untouched.
func (s *Service) HandleLeech(c card.Card, set deck.Settings) card.Card {
	switch set.Lapses.LeechAction {
	case deck.LeechSuspend:
		c.State = card.StateSuspended
		c.Queue = card.QueueSuspended
		c.OriginalDue = c.Due
		c.Due = 0
	case deck.LeechTag:
		c.Flags |= card.FlagLeech
	}
	return c
}
