package deck

import (
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	s := Default()
	if got := s.NewCards.StepsMinutes; len(got) != 2 || got[0] != 1 || got[1] != 10 {
		t.Errorf("learning steps = %v, want [1 10]", got)
	}
	if s.NewCards.StartingEase != DefaultStartingEase {
		t.Errorf("starting ease = %d, want %d", s.NewCards.StartingEase, DefaultStartingEase)
	}
	if s.Reviews.IntervalModifier != 1.0 || s.Reviews.EasyBonus != 1.3 || s.Reviews.HardInterval != 1.2 {
		t.Errorf("review multipliers = %v/%v/%v, want 1.0/1.3/1.2",
			s.Reviews.IntervalModifier, s.Reviews.EasyBonus, s.Reviews.HardInterval)
	}
	if s.Lapses.LeechThreshold != 8 || s.Lapses.LeechAction != LeechSuspend {
		t.Errorf("leech = %d/%s, want 8/suspend", s.Lapses.LeechThreshold, s.Lapses.LeechAction)
	}
	if s.Advanced.DayStartsAt != 4 {
		t.Errorf("day starts at = %d, want 4", s.Advanced.DayStartsAt)
	}
}

func TestParse_PartialOverridesDefaults(t *testing.T) {
	raw := []byte(`{
		"newCards": {"perDay": 5, "stepsMinutes": [1, 10, 60]},
		"reviews": {"intervalModifier": 0.8}
	}`)

	s, err := Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	if s.NewCards.PerDay != 5 {
		t.Errorf("perDay = %d, want 5", s.NewCards.PerDay)
	}
	if len(s.NewCards.StepsMinutes) != 3 {
		t.Errorf("steps = %v, want three entries", s.NewCards.StepsMinutes)
	}
	if s.Reviews.IntervalModifier != 0.8 {
		t.Errorf("modifier = %v, want 0.8", s.Reviews.IntervalModifier)
	}
	// Untouched fields keep their defaults.
	if s.Reviews.PerDay != 200 {
		t.Errorf("reviews perDay = %d, want default 200", s.Reviews.PerDay)
	}
	if s.Lapses.LeechThreshold != 8 {
		t.Errorf("leech threshold = %d, want default 8", s.Lapses.LeechThreshold)
	}
}

func TestParse_EmptyDocumentYieldsDefaults(t *testing.T) {
	s, err := Parse([]byte(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	if s.NewCards.PerDay != 20 || s.Reviews.MaximumInterval != 36500 {
		t.Errorf("defaults not applied: %+v", s)
	}
}

func TestParse_RejectsInvalidJSON(t *testing.T) {
	if _, err := Parse([]byte(`{not json`)); err == nil {
		t.Fatal("expected error for malformed JSON")
	} else if !strings.Contains(err.Error(), "invalid JSON") {
		t.Errorf("err = %v, want invalid JSON", err)
	}
}

func TestParse_RejectsSchemaViolations(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"ease below floor", `{"newCards": {"startingEase": 500}}`},
		{"negative step", `{"newCards": {"stepsMinutes": [-1]}}`},
		{"bad order", `{"newCards": {"orderNewCards": "shuffled"}}`},
		{"lapse fraction above one", `{"lapses": {"newInterval": 1.5}}`},
		{"bad leech action", `{"lapses": {"leechAction": "delete"}}`},
		{"day start out of range", `{"advanced": {"dayStartsAt": 25}}`},
		{"zero modifier", `{"reviews": {"intervalModifier": 0}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.raw)); err == nil {
				t.Errorf("expected validation error for %s", tc.raw)
			}
		})
	}
}
