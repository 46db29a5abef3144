package queue

import (
	"sync"
	"time"

	"github.com/abhisek/recall/internal/deck"
)

// Limits tracks one deck's study counters for the current day. Counts
// live in memory only: a process restart loses same-day counts, which
// is an accepted limitation of the design.
type Limits struct {
	NewCardsStudied        int
	ReviewsCompleted       int
	LearningCardsCompleted int
	TotalStudyTime         int64 // ms
	ResetAt                time.Time
}

// LimitsStore holds per-deck daily limits. It is the only mutable
// shared state in the engine and is owned by the caller, injected into
// the queue Manager rather than hidden inside it. The mutex suffices
// because each entry is updated as a whole.
type LimitsStore struct {
	mu    sync.Mutex
	decks map[string]*Limits
}

// NewLimitsStore creates an empty limits store.
func NewLimitsStore() *LimitsStore {
	return &LimitsStore{decks: make(map[string]*Limits)}
}

// Get returns the deck's limits, creating a zeroed entry on first use.
// The returned value is a copy; use the mutating methods to update.
func (ls *LimitsStore) Get(deckID string, now time.Time) Limits {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return *ls.entry(deckID, now)
}

// Record increments the counters for one answered card.
func (ls *LimitsStore) Record(deckID string, category Category, studyTimeMs int64, now time.Time) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	l := ls.entry(deckID, now)
	switch category {
	case CategoryNew:
		l.NewCardsStudied++
	case CategoryReview:
		l.ReviewsCompleted++
	case CategoryLearning, CategoryRelearning:
		l.LearningCardsCompleted++
	}
	l.TotalStudyTime += studyTimeMs
}

// Reset zeroes one deck's counters.
func (ls *LimitsStore) Reset(deckID string, now time.Time) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.decks[deckID] = &Limits{ResetAt: now}
}

// ResetAll clears the entire store.
func (ls *LimitsStore) ResetAll() {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.decks = make(map[string]*Limits)
}

// Stale reports whether any tracked deck's counters predate the
// current scheduling day, whose boundary is today at the deck's
// day-start hour (rolled back one calendar day when the current time
// is before that hour).
func (ls *LimitsStore) Stale(set deck.Settings, now time.Time) bool {
	boundary := dayBoundary(set, now)

	ls.mu.Lock()
	defer ls.mu.Unlock()
	for _, l := range ls.decks {
		if l.ResetAt.Before(boundary) {
			return true
		}
	}
	return false
}

func (ls *LimitsStore) entry(deckID string, now time.Time) *Limits {
	l, ok := ls.decks[deckID]
	if !ok {
		l = &Limits{ResetAt: now}
		ls.decks[deckID] = l
	}
	return l
}

func dayBoundary(set deck.Settings, now time.Time) time.Time {
	boundary := time.Date(now.Year(), now.Month(), now.Day(),
		set.Advanced.DayStartsAt, 0, 0, 0, now.Location())
	if now.Before(boundary) {
		boundary = boundary.AddDate(0, 0, -1)
	}
	return boundary
}
