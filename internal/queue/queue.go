// Package queue builds the daily study queue for a deck: it buckets
// cards by due state, honors the per-day caps, orders each bucket,
// and selects the next card to present.
package queue

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/abhisek/recall/internal/card"
	"github.com/abhisek/recall/internal/deck"
)

// Category labels which bucket a card was studied from.
type Category string

const (
	CategoryNew        Category = "new"
	CategoryLearning   Category = "learning"
	CategoryRelearning Category = "relearning"
	CategoryReview     Category = "review"
)

// CategoryFor maps a card's state to its study category.
func CategoryFor(s card.State) Category {
	switch s {
	case card.StateLearning:
		return CategoryLearning
	case card.StateRelearning:
		return CategoryRelearning
	case card.StateReview:
		return CategoryReview
	default:
		return CategoryNew
	}
}

// Per-category answer-time estimates, in seconds.
const (
	estimateNewSec        = 30
	estimateLearningSec   = 15
	estimateRelearningSec = 20
	estimateReviewSec     = 10
)

// Counts aggregates a built queue, with review cards split at the
// mature-interval threshold.
type Counts struct {
	New          int
	Learning     int
	Relearning   int
	Review       int
	YoungReview  int
	MatureReview int
}

// Remaining holds how many more new cards and reviews the daily caps
// allow.
type Remaining struct {
	NewCardsRemaining int
	ReviewsRemaining  int
}

// StudyQueue is a read-only snapshot of what is studyable right now.
// It is rebuilt after every answered card, never partially mutated.
type StudyQueue struct {
	DeckID string

	New        []card.Card
	Learning   []card.Card
	Relearning []card.Card
	Review     []card.Card

	Counts Counts
	Limits Remaining

	// NextCardDue is the earliest due instant strictly after today,
	// nil when nothing is scheduled beyond today.
	NextCardDue *time.Time

	// EstimatedStudyTime is the projected minutes to clear the queue.
	EstimatedStudyTime int
}

// Manager builds study queues against an injected daily-limits store.
type Manager struct {
	limits *LimitsStore
	rng    *rand.Rand
}

// NewManager creates a queue manager around the given limits store.
func NewManager(limits *LimitsStore) *Manager {
	return &Manager{
		limits: limits,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// BuildStudyQueue partitions a deck's cards into due buckets, caps the
// new and review buckets by what the daily limits still allow, and
// orders each bucket. Suspended and buried cards are excluded
// entirely; learning cards are never capped.
func (m *Manager) BuildStudyQueue(deckID string, all []card.Card, set deck.Settings, now time.Time) StudyQueue {
	lim := m.limits.Get(deckID, now)
	today := card.DayNumber(now, set.Advanced.DayStartsAt)

	var newCards, learning, relearning, review []card.Card
	for _, c := range all {
		switch c.State {
		case card.StateNew:
			newCards = append(newCards, c)
		case card.StateLearning:
			if c.LearningDue(now) {
				learning = append(learning, c)
			}
		case card.StateRelearning:
			if c.LearningDue(now) {
				relearning = append(relearning, c)
			}
		case card.StateReview:
			if c.Due <= today {
				review = append(review, c)
			}
		}
	}

	remaining := Remaining{
		NewCardsRemaining: maxInt(0, set.NewCards.PerDay-lim.NewCardsStudied),
		ReviewsRemaining:  maxInt(0, set.Reviews.PerDay-lim.ReviewsCompleted),
	}

	if len(newCards) > remaining.NewCardsRemaining {
		newCards = newCards[:remaining.NewCardsRemaining]
	}
	if len(review) > remaining.ReviewsRemaining {
		review = review[:remaining.ReviewsRemaining]
	}

	if set.NewCards.Order == deck.OrderRandom {
		m.rng.Shuffle(len(newCards), func(i, j int) {
			newCards[i], newCards[j] = newCards[j], newCards[i]
		})
	} else {
		sort.SliceStable(newCards, func(i, j int) bool {
			return newCards[i].Due < newCards[j].Due
		})
	}

	byDueInstant := func(cards []card.Card) {
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].LearningDueAt().Before(cards[j].LearningDueAt())
		})
	}
	byDueInstant(learning)
	byDueInstant(relearning)

	sort.SliceStable(review, func(i, j int) bool {
		if review[i].Due != review[j].Due {
			return review[i].Due < review[j].Due
		}
		return review[i].ID < review[j].ID
	})

	counts := Counts{
		New:        len(newCards),
		Learning:   len(learning),
		Relearning: len(relearning),
		Review:     len(review),
	}
	for _, c := range review {
		if c.Ivl < deck.MatureInterval {
			counts.YoungReview++
		} else {
			counts.MatureReview++
		}
	}

	seconds := estimateNewSec*counts.New +
		estimateLearningSec*counts.Learning +
		estimateRelearningSec*counts.Relearning +
		estimateReviewSec*counts.Review

	return StudyQueue{
		DeckID:             deckID,
		New:                newCards,
		Learning:           learning,
		Relearning:         relearning,
		Review:             review,
		Counts:             counts,
		Limits:             remaining,
		NextCardDue:        nextDueBeyondToday(all, set, today, now),
		EstimatedStudyTime: int(math.Round(float64(seconds) / 60.0)),
	}
}

// nextDueBeyondToday finds the earliest due instant strictly after the
// current scheduling day, ignoring suspended and buried cards.
func nextDueBeyondToday(all []card.Card, set deck.Settings, today int, now time.Time) *time.Time {
	boundary := card.DayStart(today+1, set.Advanced.DayStartsAt)

	var next *time.Time
	consider := func(t time.Time) {
		if t.Before(boundary) {
			return
		}
		if next == nil || t.Before(*next) {
			tt := t
			next = &tt
		}
	}

	for _, c := range all {
		switch c.State {
		case card.StateReview:
			if c.Due > today {
				consider(card.DayStart(c.Due, set.Advanced.DayStartsAt))
			}
		case card.StateLearning, card.StateRelearning:
			consider(c.LearningDueAt())
		}
	}
	return next
}

// NextCard selects the next card to present in strict priority order:
// learning, relearning, review (cap permitting), then new (cap
// permitting). Returns nil when the queue is exhausted.
func (m *Manager) NextCard(q StudyQueue) *card.Card {
	if len(q.Learning) > 0 {
		return &q.Learning[0]
	}
	if len(q.Relearning) > 0 {
		return &q.Relearning[0]
	}
	if len(q.Review) > 0 && q.Limits.ReviewsRemaining > 0 {
		return &q.Review[0]
	}
	if len(q.New) > 0 && q.Limits.NewCardsRemaining > 0 {
		return &q.New[0]
	}
	return nil
}

// UpdateDailyLimits records an answered card against the deck's daily
// counters. Pass the card as it was presented, before the answer
// changed its state.
func (m *Manager) UpdateDailyLimits(deckID string, c card.Card, studyTimeMs int64, now time.Time) {
	m.limits.Record(deckID, CategoryFor(c.State), studyTimeMs, now)
}

// ResetDailyLimits zeroes one deck's counters.
func (m *Manager) ResetDailyLimits(deckID string, now time.Time) {
	m.limits.Reset(deckID, now)
}

// ResetAllDailyLimits clears every deck's counters.
func (m *Manager) ResetAllDailyLimits() {
	m.limits.ResetAll()
}

// CheckDayRollover reports whether any tracked deck's counters predate
// the current scheduling day and should be reset by the caller.
func (m *Manager) CheckDayRollover(set deck.Settings, now time.Time) bool {
	return m.limits.Stale(set, now)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
