package queue

import (
	"time"

	"github.com/abhisek/recall/internal/card"
	"github.com/abhisek/recall/internal/deck"
)

// Bury hides a card until tomorrow. The current due value is
// snapshotted so unburying can restore it.
func Bury(c card.Card, set deck.Settings, now time.Time) card.Card {
	c.State = card.StateBuried
	c.Queue = card.QueueBuried
	c.OriginalDue = c.Due
	c.Due = card.DayNumber(now, set.Advanced.DayStartsAt) + 1
	return c
}

// Suspend parks a card indefinitely.
func Suspend(c card.Card) card.Card {
	c.State = card.StateSuspended
	c.Queue = card.QueueSuspended
	c.OriginalDue = c.Due
	c.Due = 0
	return c
}

// Unsuspend restores a suspended card: back to new if it was never
// reviewed, otherwise to review, due at its snapshotted day (or today
// when no snapshot exists).
func Unsuspend(c card.Card, set deck.Settings, now time.Time) card.Card {
	return restore(c, set, now)
}

// UnburyCards restores every buried card whose bury day has arrived,
// returning a new slice; other cards pass through unchanged.
func UnburyCards(cards []card.Card, set deck.Settings, now time.Time) []card.Card {
	today := card.DayNumber(now, set.Advanced.DayStartsAt)
	out := make([]card.Card, len(cards))
	for i, c := range cards {
		if c.State == card.StateBuried && c.Due <= today {
			c = restore(c, set, now)
		}
		out[i] = c
	}
	return out
}

// BuriedCards returns the buried cards that are eligible to unbury now
// (bury day reached).
func BuriedCards(cards []card.Card, set deck.Settings, now time.Time) []card.Card {
	today := card.DayNumber(now, set.Advanced.DayStartsAt)
	var out []card.Card
	for _, c := range cards {
		if c.State == card.StateBuried && c.Due <= today {
			out = append(out, c)
		}
	}
	return out
}

func restore(c card.Card, set deck.Settings, now time.Time) card.Card {
	if c.Reps == 0 {
		c.State = card.StateNew
		c.Queue = card.QueueNew
		c.Due = 0
	} else {
		c.State = card.StateReview
		c.Queue = card.QueueReview
		if c.OriginalDue != 0 {
			c.Due = c.OriginalDue
		} else {
			c.Due = card.DayNumber(now, set.Advanced.DayStartsAt)
		}
	}
	c.OriginalDue = 0
	return c
}
