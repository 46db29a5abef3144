package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/recall/internal/card"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("store: not found")

// CardRepo persists cards.
type CardRepo interface {
	// Put inserts or replaces a card.
	Put(ctx context.Context, c card.Card) error

	// Get returns the card with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (card.Card, error)

	// ListByDeck returns all cards in a deck.
	ListByDeck(ctx context.Context, deckID string) ([]card.Card, error)

	// Delete removes a card. Deleting a missing card is not an error.
	Delete(ctx context.Context, id string) error
}

type cardRepo struct {
	db *sql.DB
}

const cardColumns = `id, deck_id, front, back, created_at, state, queue, due, ivl,
	factor, reps, lapses, left_minutes, learning_step, flags, original_due,
	original_deck, total_study_time, average_answer_time, graduation_interval,
	easy_interval, last_reviewed_at`

func (r *cardRepo) Put(ctx context.Context, c card.Card) error {
	lastReviewed := ""
	if !c.LastReviewedAt.IsZero() {
		lastReviewed = c.LastReviewedAt.Format(time.RFC3339)
	}

	_, err := r.db.ExecContext(ctx, `INSERT OR REPLACE INTO cards (`+cardColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.DeckID, c.Front, c.Back, c.CreatedAt, string(c.State), c.Queue,
		c.Due, c.Ivl, c.Factor, c.Reps, c.Lapses, c.Left, c.LearningStep,
		c.Flags, c.OriginalDue, c.OriginalDeck, c.TotalStudyTime,
		c.AverageAnswerTime, c.GraduationInterval, c.EasyInterval, lastReviewed)
	if err != nil {
		return fmt.Errorf("put card %s: %w", c.ID, err)
	}
	return nil
}

func (r *cardRepo) Get(ctx context.Context, id string) (card.Card, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)
	c, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return card.Card{}, fmt.Errorf("card %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return card.Card{}, fmt.Errorf("get card %s: %w", id, err)
	}
	return c, nil
}

func (r *cardRepo) ListByDeck(ctx context.Context, deckID string) ([]card.Card, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE deck_id = ? ORDER BY id`, deckID)
	if err != nil {
		return nil, fmt.Errorf("list cards for deck %s: %w", deckID, err)
	}
	defer rows.Close()

	var cards []card.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}
	return cards, nil
}

func (r *cardRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete card %s: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (card.Card, error) {
	var c card.Card
	var state, lastReviewed string

	err := row.Scan(&c.ID, &c.DeckID, &c.Front, &c.Back, &c.CreatedAt, &state,
		&c.Queue, &c.Due, &c.Ivl, &c.Factor, &c.Reps, &c.Lapses, &c.Left,
		&c.LearningStep, &c.Flags, &c.OriginalDue, &c.OriginalDeck,
		&c.TotalStudyTime, &c.AverageAnswerTime, &c.GraduationInterval,
		&c.EasyInterval, &lastReviewed)
	if err != nil {
		return card.Card{}, err
	}

	c.State = card.State(state)
	if lastReviewed != "" {
		t, err := time.Parse(time.RFC3339, lastReviewed)
		if err != nil {
			return card.Card{}, fmt.Errorf("parse last_reviewed_at: %w", err)
		}
		c.LastReviewedAt = t
	}
	return c, nil
}
