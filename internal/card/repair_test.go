package card

import (
	"reflect"
	"testing"

	"github.com/abhisek/recall/internal/deck"
)

func TestRepair_CleanCardUnchanged(t *testing.T) {
	c := validReviewCard()
	res := Repair(c, deck.Default())
	if len(res.Changes) != 0 {
		t.Errorf("unexpected changes: %v", res.Changes)
	}
	if !reflect.DeepEqual(res.Card, c) {
		t.Error("clean card must come back value-equal")
	}
}

func TestRepair_RealignsQueue(t *testing.T) {
	c := validReviewCard()
	c.Queue = QueueNew

	res := Repair(c, deck.Default())
	if res.Card.Queue != QueueReview {
		t.Errorf("queue = %d, want %d", res.Card.Queue, QueueReview)
	}
}

func TestRepair_ClampsFactor(t *testing.T) {
	low := validReviewCard()
	low.Factor = 900
	if got := Repair(low, deck.Default()).Card.Factor; got != deck.MinFactor {
		t.Errorf("factor = %d, want %d", got, deck.MinFactor)
	}

	high := validReviewCard()
	high.Factor = 7000
	if got := Repair(high, deck.Default()).Card.Factor; got != deck.MaxFactor {
		t.Errorf("factor = %d, want %d", got, deck.MaxFactor)
	}
}

func TestRepair_ZeroesNegativeCounters(t *testing.T) {
	c := validReviewCard()
	c.Ivl = -5
	c.Lapses = -1
	c.Left = -30

	got := Repair(c, deck.Default()).Card
	if got.Ivl != 0 || got.Lapses != 0 || got.Left != 0 {
		t.Errorf("ivl/lapses/left = %d/%d/%d, want all zero", got.Ivl, got.Lapses, got.Left)
	}
}

func TestRepair_PromotesNewWithReps(t *testing.T) {
	c := validReviewCard()
	c.State = StateNew
	c.Queue = QueueNew
	// Reps stays 5 from the fixture.

	got := Repair(c, deck.Default()).Card
	if got.State != StateReview || got.Queue != QueueReview {
		t.Errorf("state/queue = %s/%d, want review/2", got.State, got.Queue)
	}
}

func TestRepair_DemotesReviewWithoutReps(t *testing.T) {
	c := validReviewCard()
	c.Reps = 0

	got := Repair(c, deck.Default()).Card
	if got.State != StateNew || got.Queue != QueueNew {
		t.Errorf("state/queue = %s/%d, want new/0", got.State, got.Queue)
	}
}

func TestRepair_Idempotent(t *testing.T) {
	cards := []Card{
		validReviewCard(),
		{ID: "a", DeckID: "d", Front: "x", State: StateNew, Queue: QueueReview, Reps: 2, Factor: 100, Ivl: -3},
		{ID: "b", DeckID: "d", Front: "y", State: StateReview, Queue: QueueBuried, Reps: 0, Factor: 9999, Lapses: -1},
		{ID: "c", DeckID: "d", Front: "z", State: StateReview, Queue: QueueReview, Reps: -1, Factor: 2500},
	}
	for _, c := range cards {
		once := Repair(c, deck.Default()).Card
		twice := Repair(once, deck.Default()).Card
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("repair not idempotent for %s: %+v != %+v", c.ID, once, twice)
		}
	}
}

func TestRepair_NegativeRepsDemotesInOnePass(t *testing.T) {
	c := validReviewCard()
	c.Reps = -1

	got := Repair(c, deck.Default()).Card
	if got.Reps != 0 {
		t.Errorf("reps = %d, want 0", got.Reps)
	}
	if got.State != StateNew || got.Queue != QueueNew {
		t.Errorf("state/queue = %s/%d, want new/0 after a single repair", got.State, got.Queue)
	}
}
