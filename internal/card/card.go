// Package card defines the flashcard scheduling model: the Card value
// type, its lifecycle states, and the structural operations over them
// (validation, direct transitions, legacy migration, repair).
package card

import "time"

// State represents a card's position in the scheduling lifecycle.
type State string

const (
	StateNew        State = "new"
	StateLearning   State = "learning"
	StateReview     State = "review"
	StateRelearning State = "relearning"
	StateSuspended  State = "suspended"
	StateBuried     State = "buried"
)

// Queue codes mirror State for fast filtering. Learning and relearning
// share a queue.
const (
	QueueNew       = 0
	QueueLearning  = 1
	QueueReview    = 2
	QueueSuspended = -1
	QueueBuried    = -2
)

// QueueFor returns the queue code for a state. The second return is
// false for unknown states.
func QueueFor(s State) (int, bool) {
	switch s {
	case StateNew:
		return QueueNew, true
	case StateLearning, StateRelearning:
		return QueueLearning, true
	case StateReview:
		return QueueReview, true
	case StateSuspended:
		return QueueSuspended, true
	case StateBuried:
		return QueueBuried, true
	default:
		return 0, false
	}
}

// Rating is a study answer on the standard four-point scale.
type Rating int

const (
	Again Rating = 1
	Hard  Rating = 2
	Good  Rating = 3
	Easy  Rating = 4
)

// Valid reports whether r is one of the four defined ratings.
func (r Rating) Valid() bool {
	return r >= Again && r <= Easy
}

func (r Rating) String() string {
	switch r {
	case Again:
		return "again"
	case Hard:
		return "hard"
	case Good:
		return "good"
	case Easy:
		return "easy"
	default:
		return "unknown"
	}
}

// FlagLeech marks a card that crossed the leech threshold while the
// deck's leech action is "tag".
const FlagLeech = 1 << 0

// Card is the unit of study. Content fields are opaque to the
// scheduler; only the scheduling fields below participate in the
// algorithms.
type Card struct {
	ID     string `json:"id"`
	DeckID string `json:"deckId"`

	Front string `json:"front"`
	Back  string `json:"back"`

	// CreatedAt is an RFC3339 timestamp carried over from legacy data.
	CreatedAt string `json:"createdAt,omitempty"`

	State State `json:"state"`

	// Queue mirrors State via QueueFor. The pair must always match.
	Queue int `json:"queue"`

	// Due semantics depend on State: for review cards it is a day
	// number (whole days since the epoch, shifted by the deck's
	// day-start hour); new cards carry 0; learning cards use Left
	// instead; suspended/buried cards keep their prior value in
	// OriginalDue.
	Due int `json:"due"`

	// Ivl is the current review interval in whole days.
	Ivl int `json:"ivl"`

	// Factor is the ease factor, per-mille fixed point (2500 = 250%).
	Factor int `json:"factor"`

	Reps   int `json:"reps"`
	Lapses int `json:"lapses"`

	// Left is the remaining minutes until due while in learning or
	// relearning, anchored at LastReviewedAt.
	Left int `json:"left"`

	// LearningStep indexes into the active step sequence.
	LearningStep int `json:"learningStep"`

	Flags int `json:"flags"`

	OriginalDue  int    `json:"originalDue"`
	OriginalDeck string `json:"originalDeck,omitempty"`

	// Running answer-time aggregates, in milliseconds.
	TotalStudyTime    int64 `json:"totalStudyTime"`
	AverageAnswerTime int64 `json:"averageAnswerTime"`

	// Per-card copies of the deck's graduation intervals, taken at
	// creation time. Zero means "use the deck setting".
	GraduationInterval int `json:"graduationInterval"`
	EasyInterval       int `json:"easyInterval"`

	// LastReviewedAt anchors Left. Zero means never studied.
	LastReviewedAt time.Time `json:"lastReviewedAt"`
}

// IsLeechFlagged reports whether the leech tag bit is set.
func (c Card) IsLeechFlagged() bool {
	return c.Flags&FlagLeech != 0
}

// LearningDueAt returns the instant a learning/relearning card becomes
// due. A zero anchor means due immediately.
func (c Card) LearningDueAt() time.Time {
	if c.LastReviewedAt.IsZero() {
		return time.Time{}
	}
	return c.LastReviewedAt.Add(time.Duration(c.Left) * time.Minute)
}

// LearningDue reports whether a learning/relearning card's remaining
// minutes have elapsed.
func (c Card) LearningDue(now time.Time) bool {
	return !c.LearningDueAt().After(now)
}

// DayNumber converts an instant to a scheduling day number: whole days
// since the Unix epoch, with the day boundary shifted to dayStartHour.
func DayNumber(now time.Time, dayStartHour int) int {
	return int((now.Unix() - int64(dayStartHour)*3600) / 86400)
}

// DayStart returns the instant at which the given day number begins.
func DayStart(day int, dayStartHour int) time.Time {
	return time.Unix(int64(day)*86400+int64(dayStartHour)*3600, 0).UTC()
}
