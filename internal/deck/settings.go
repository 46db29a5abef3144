package deck

// NewCardOrder selects how new cards are ordered in the study queue.
type NewCardOrder string

const (
	OrderDue    NewCardOrder = "due"
	OrderRandom NewCardOrder = "random"
)

// LeechAction selects what happens to a card once it crosses the leech
// threshold.
type LeechAction string

const (
	LeechSuspend LeechAction = "suspend"
	LeechTag     LeechAction = "tag"
)

// Ease factors are fixed-point per-mille integers: 2500 = 250%.
const (
	MinFactor           = 1300
	MaxFactor           = 5000
	DefaultStartingEase = 2500
)

// MatureInterval is the review interval (days) at which a card counts
// as mature rather than young.
const MatureInterval = 21

// Settings holds the full per-deck configuration. It is an immutable
// input to every scheduling operation; nothing in the engine mutates it.
type Settings struct {
	NewCards NewCardSettings  `json:"newCards"`
	Reviews  ReviewSettings   `json:"reviews"`
	Lapses   LapseSettings    `json:"lapses"`
	Advanced AdvancedSettings `json:"advanced"`
}

// NewCardSettings configures cards that have never graduated.
type NewCardSettings struct {
	// StepsMinutes is the learning step sequence. An empty list falls
	// back to a single 1-minute step.
	StepsMinutes []int `json:"stepsMinutes"`

	Order NewCardOrder `json:"orderNewCards"`

	// PerDay caps how many new cards enter the queue each day.
	PerDay int `json:"perDay"`

	// GraduatingInterval is the first review interval (days) after the
	// last learning step.
	GraduatingInterval int `json:"graduatingInterval"`

	// EasyInterval is the review interval (days) granted by an Easy
	// rating during learning.
	EasyInterval int `json:"easyInterval"`

	// StartingEase is the initial ease factor (per-mille).
	StartingEase int `json:"startingEase"`
}

// ReviewSettings configures graduated cards.
type ReviewSettings struct {
	PerDay int `json:"perDay"`

	// IntervalModifier scales every computed review interval.
	IntervalModifier float64 `json:"intervalModifier"`

	// EasyBonus is the extra multiplier applied on an Easy rating.
	EasyBonus float64 `json:"easyBonus"`

	// HardInterval is the multiplier applied on a Hard rating.
	HardInterval float64 `json:"hardInterval"`

	MinimumInterval int `json:"minimumInterval"`
	MaximumInterval int `json:"maximumInterval"`
}

// LapseSettings configures cards that fail a review.
type LapseSettings struct {
	// StepsMinutes is the relearning step sequence.
	StepsMinutes []int `json:"stepsMinutes"`

	// NewInterval is the fraction of the previous interval kept after
	// a lapse.
	NewInterval float64 `json:"newInterval"`

	MinimumInterval int `json:"minimumInterval"`

	// LeechThreshold is the lapse count at which a card becomes a
	// leech. Zero disables leech detection.
	LeechThreshold int         `json:"leechThreshold"`
	LeechAction    LeechAction `json:"leechAction"`
}

// AdvancedSettings holds general scheduling knobs.
type AdvancedSettings struct {
	// DayStartsAt is the hour (0-23) at which the scheduling day rolls
	// over.
	DayStartsAt int `json:"dayStartsAt"`

	// MaxAnswerSeconds caps the elapsed answer time credited to a
	// single review.
	MaxAnswerSeconds int `json:"maxAnswerSeconds"`
}

// Default returns the stock deck configuration.
func Default() Settings {
	return Settings{
		NewCards: NewCardSettings{
			StepsMinutes:       []int{1, 10},
			Order:              OrderDue,
			PerDay:             20,
			GraduatingInterval: 1,
			EasyInterval:       4,
			StartingEase:       DefaultStartingEase,
		},
		Reviews: ReviewSettings{
			PerDay:           200,
			IntervalModifier: 1.0,
			EasyBonus:        1.3,
			HardInterval:     1.2,
			MinimumInterval:  1,
			MaximumInterval:  36500,
		},
		Lapses: LapseSettings{
			StepsMinutes:    []int{10},
			NewInterval:     0.5,
			MinimumInterval: 1,
			LeechThreshold:  8,
			LeechAction:     LeechSuspend,
		},
		Advanced: AdvancedSettings{
			DayStartsAt:      4,
			MaxAnswerSeconds: 60,
		},
	}
}
