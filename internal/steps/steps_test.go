package steps

import (
	"errors"
	"testing"
	"time"

	"github.com/abhisek/recall/internal/card"
	"github.com/abhisek/recall/internal/deck"
)

var testNow = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

func newCard() card.Card {
	return card.Card{
		ID:     "card-1",
		DeckID: "deck-1",
		Front:  "front",
		Back:   "back",
		State:  card.StateNew,
		Queue:  card.QueueNew,
		Factor: 2500,
	}
}

func TestProcessLearningCard_RejectsReviewState(t *testing.T) {
	svc := NewService()
	c := newCard()
	c.State = card.StateReview
	c.Queue = card.QueueReview
	c.Reps = 1

	_, err := svc.ProcessLearningCard(c, card.Good, deck.Default(), 0, testNow)
	if !errors.Is(err, ErrNotLearningState) {
		t.Fatalf("err = %v, want ErrNotLearningState", err)
	}
}

// Full graduation scenario: default steps [1, 10], rated Good twice.
func TestProcessLearningCard_GoodGoodGraduates(t *testing.T) {
	svc := NewService()
	set := deck.Default()

	first, err := svc.ProcessLearningCard(newCard(), card.Good, set, 3000, testNow)
	if err != nil {
		t.Fatal(err)
	}
	got := first.Card
	if got.State != card.StateLearning || got.LearningStep != 1 || got.Left != 10 {
		t.Fatalf("after first good: state/step/left = %s/%d/%d, want learning/1/10",
			got.State, got.LearningStep, got.Left)
	}
	if !first.WasCorrect {
		t.Error("good must count as correct")
	}
	wantNext := testNow.Add(10 * time.Minute)
	if !first.NextReview.Equal(wantNext) {
		t.Errorf("next review = %v, want %v", first.NextReview, wantNext)
	}

	second, err := svc.ProcessLearningCard(got, card.Good, set, 3000, testNow)
	if err != nil {
		t.Fatal(err)
	}
	got = second.Card
	if got.State != card.StateReview || got.Queue != card.QueueReview {
		t.Fatalf("after second good: state/queue = %s/%d, want review/2", got.State, got.Queue)
	}
	if got.Ivl != 1 {
		t.Errorf("ivl = %d, want graduating interval 1", got.Ivl)
	}
	if got.Factor != 2500 {
		t.Errorf("factor = %d, want unchanged 2500", got.Factor)
	}
	if !second.NextReview.Equal(testNow.AddDate(0, 0, 1)) {
		t.Errorf("next review = %v, want one day out", second.NextReview)
	}
}

// Again increments lapses even before first graduation. This diverges
// from the conventional definition of a lapse and is intentional.
func TestProcessLearningCard_AgainIncrementsLapsesBeforeGraduation(t *testing.T) {
	svc := NewService()
	c := newCard()
	c.State = card.StateLearning
	c.Queue = card.QueueLearning
	c.LearningStep = 1
	c.Left = 10

	res, err := svc.ProcessLearningCard(c, card.Again, deck.Default(), 0, testNow)
	if err != nil {
		t.Fatal(err)
	}
	got := res.Card
	if got.Lapses != 1 {
		t.Errorf("lapses = %d, want 1", got.Lapses)
	}
	if got.LearningStep != 0 || got.Left != 1 {
		t.Errorf("step/left = %d/%d, want reset to 0/1", got.LearningStep, got.Left)
	}
	if got.State != card.StateLearning {
		t.Errorf("state = %s, want learning", got.State)
	}
	if res.WasCorrect {
		t.Error("again must not count as correct")
	}
}

func TestProcessLearningCard_AgainOnNewEntersLearning(t *testing.T) {
	svc := NewService()
	res, err := svc.ProcessLearningCard(newCard(), card.Again, deck.Default(), 0, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if res.Card.State != card.StateLearning || res.Card.Queue != card.QueueLearning {
		t.Errorf("state/queue = %s/%d, want learning/1", res.Card.State, res.Card.Queue)
	}
}

func TestProcessLearningCard_HardStepsBack(t *testing.T) {
	svc := NewService()
	c := newCard()
	c.State = card.StateLearning
	c.Queue = card.QueueLearning
	c.LearningStep = 1
	c.Left = 10

	res, err := svc.ProcessLearningCard(c, card.Hard, deck.Default(), 0, testNow)
	if err != nil {
		t.Fatal(err)
	}
	got := res.Card
	if got.LearningStep != 0 || got.Left != 1 {
		t.Errorf("step/left = %d/%d, want 0/1", got.LearningStep, got.Left)
	}
	if got.Lapses != 0 {
		t.Errorf("lapses = %d, hard must not lapse", got.Lapses)
	}
	if res.WasCorrect {
		t.Error("hard does not count as correct")
	}
}

func TestProcessLearningCard_HardAtFirstStepStays(t *testing.T) {
	svc := NewService()
	c := newCard()
	c.State = card.StateLearning
	c.Queue = card.QueueLearning
	c.LearningStep = 0

	res, err := svc.ProcessLearningCard(c, card.Hard, deck.Default(), 0, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if res.Card.LearningStep != 0 {
		t.Errorf("step = %d, want clamped at 0", res.Card.LearningStep)
	}
}

func TestProcessLearningCard_EasyGraduatesImmediately(t *testing.T) {
	svc := NewService()
	res, err := svc.ProcessLearningCard(newCard(), card.Easy, deck.Default(), 0, testNow)
	if err != nil {
		t.Fatal(err)
	}
	got := res.Card
	if got.State != card.StateReview {
		t.Fatalf("state = %s, want review", got.State)
	}
	if got.Ivl != 4 {
		t.Errorf("ivl = %d, want easy interval 4", got.Ivl)
	}
	if got.Factor != 2650 {
		t.Errorf("factor = %d, want starting ease + 150 = 2650", got.Factor)
	}
}

func TestProcessLearningCard_RelearningGraduationClampsInterval(t *testing.T) {
	svc := NewService()
	set := deck.Default() // single lapse step [10]
	c := newCard()
	c.State = card.StateRelearning
	c.Queue = card.QueueLearning
	c.Ivl = 4 // reduced at lapse time
	c.Reps = 6
	c.Lapses = 1

	res, err := svc.ProcessLearningCard(c, card.Good, set, 0, testNow)
	if err != nil {
		t.Fatal(err)
	}
	got := res.Card
	if got.State != card.StateReview {
		t.Fatalf("state = %s, want review (single lapse step exhausted)", got.State)
	}
	if got.Ivl != 4 {
		t.Errorf("ivl = %d, want 4 (kept from lapse, never increased)", got.Ivl)
	}
}

func TestProcessLearningCard_EmptyStepsFallBackToOneMinute(t *testing.T) {
	svc := NewService()
	set := deck.Default()
	set.NewCards.StepsMinutes = []int{}

	res, err := svc.ProcessLearningCard(newCard(), card.Again, set, 0, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if res.Card.Left != 1 {
		t.Errorf("left = %d, want fallback 1", res.Card.Left)
	}

	// Good on the single fallback step graduates.
	res, err = svc.ProcessLearningCard(res.Card, card.Good, set, 0, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if res.Card.State != card.StateReview {
		t.Errorf("state = %s, want review", res.Card.State)
	}
}

func TestProcessLearningCard_NegativeStepClamped(t *testing.T) {
	svc := NewService()
	c := newCard()
	c.State = card.StateLearning
	c.Queue = card.QueueLearning
	c.LearningStep = -3

	res, err := svc.ProcessLearningCard(c, card.Good, deck.Default(), 0, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if res.Card.LearningStep != 1 {
		t.Errorf("step = %d, want advance from clamped 0 to 1", res.Card.LearningStep)
	}
}

func TestProcessLearningCard_UpdatesAnswerAggregates(t *testing.T) {
	svc := NewService()
	set := deck.Default()

	res, err := svc.ProcessLearningCard(newCard(), card.Good, set, 4000, testNow)
	if err != nil {
		t.Fatal(err)
	}
	got := res.Card
	if got.Reps != 1 || got.TotalStudyTime != 4000 || got.AverageAnswerTime != 4000 {
		t.Errorf("reps/total/avg = %d/%d/%d, want 1/4000/4000",
			got.Reps, got.TotalStudyTime, got.AverageAnswerTime)
	}

	res, err = svc.ProcessLearningCard(got, card.Good, set, 2000, testNow)
	if err != nil {
		t.Fatal(err)
	}
	got = res.Card
	if got.Reps != 2 || got.TotalStudyTime != 6000 || got.AverageAnswerTime != 3000 {
		t.Errorf("reps/total/avg = %d/%d/%d, want 2/6000/3000",
			got.Reps, got.TotalStudyTime, got.AverageAnswerTime)
	}
}

func TestProcessLearningCard_ElapsedTimeCapped(t *testing.T) {
	svc := NewService()
	set := deck.Default() // 60s answer cutoff

	res, err := svc.ProcessLearningCard(newCard(), card.Good, set, 300_000, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if res.Card.TotalStudyTime != 60_000 {
		t.Errorf("total study time = %d, want capped 60000", res.Card.TotalStudyTime)
	}
}

func TestIsLeech(t *testing.T) {
	svc := NewService()
	set := deck.Default() // threshold 8

	c := newCard()
	c.Lapses = 7
	if svc.IsLeech(c, set) {
		t.Error("7 lapses must not be a leech at threshold 8")
	}
	c.Lapses = 8
	if !svc.IsLeech(c, set) {
		t.Error("8 lapses must be a leech at threshold 8")
	}

	set.Lapses.LeechThreshold = 0
	if svc.IsLeech(c, set) {
		t.Error("zero threshold disables leech detection")
	}
}

func TestHandleLeech_Suspend(t *testing.T) {
	svc := NewService()
	c := newCard()
	c.State = card.StateReview
	c.Queue = card.QueueReview
	c.Due = 42

	got := svc.HandleLeech(c, deck.Default())
	if got.State != card.StateSuspended || got.Queue != card.QueueSuspended {
		t.Errorf("state/queue = %s/%d, want suspended/-1", got.State, got.Queue)
	}
	if got.OriginalDue != 42 || got.Due != 0 {
		t.Errorf("originalDue/due = %d/%d, want 42/0", got.OriginalDue, got.Due)
	}
}

func TestHandleLeech_Tag(t *testing.T) {
	svc := NewService()
	set := deck.Default()
	set.Lapses.LeechAction = deck.LeechTag

	c := newCard()
	c.State = card.StateReview
	c.Queue = card.QueueReview

	got := svc.HandleLeech(c, set)
	if !got.IsLeechFlagged() {
		t.Error("expected leech flag bit set")
	}
	if got.State != card.StateReview || got.Queue != card.QueueReview {
		t.Errorf("tag action must not change state/queue, got %s/%d", got.State, got.Queue)
	}
}
