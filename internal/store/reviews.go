package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/recall/internal/card"
)

// ReviewLogEntry records one answered card in the append-only log.
type ReviewLogEntry struct {
	Sequence       int64
	CardID         string
	DeckID         string
	Rating         card.Rating
	PreviousState  card.State
	NewState       card.State
	IntervalChange int
	ElapsedMs      int64
	ReviewedAt     time.Time
}

// ReviewLogRepo provides append and query access to the review log.
type ReviewLogRepo interface {
	// Append records an answered card. The entry's sequence is
	// assigned by the store.
	Append(ctx context.Context, e ReviewLogEntry) error

	// ListByCard returns a card's history, oldest first.
	ListByCard(ctx context.Context, cardID string) ([]ReviewLogEntry, error)
}

// sequenceCounter assigns a single increasing sequence number to every
// review-log entry. The mutex serializes within the process; the
// RETURNING clause makes the increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table
// exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the
// counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

type reviewLogRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *reviewLogRepo) Append(ctx context.Context, e ReviewLogEntry) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO review_log
		(sequence, card_id, deck_id, rating, previous_state, new_state,
		 interval_change, elapsed_ms, reviewed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, e.CardID, e.DeckID, int(e.Rating), string(e.PreviousState),
		string(e.NewState), e.IntervalChange, e.ElapsedMs,
		e.ReviewedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("append review log: %w", err)
	}
	return nil
}

func (r *reviewLogRepo) ListByCard(ctx context.Context, cardID string) ([]ReviewLogEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT sequence, card_id, deck_id,
		rating, previous_state, new_state, interval_change, elapsed_ms, reviewed_at
		FROM review_log WHERE card_id = ? ORDER BY sequence`, cardID)
	if err != nil {
		return nil, fmt.Errorf("query review log for card %s: %w", cardID, err)
	}
	defer rows.Close()

	var entries []ReviewLogEntry
	for rows.Next() {
		var e ReviewLogEntry
		var rating int
		var prev, next, reviewedAt string
		if err := rows.Scan(&e.Sequence, &e.CardID, &e.DeckID, &rating,
			&prev, &next, &e.IntervalChange, &e.ElapsedMs, &reviewedAt); err != nil {
			return nil, fmt.Errorf("scan review log entry: %w", err)
		}
		e.Rating = card.Rating(rating)
		e.PreviousState = card.State(prev)
		e.NewState = card.State(next)
		t, err := time.Parse(time.RFC3339, reviewedAt)
		if err != nil {
			return nil, fmt.Errorf("parse reviewed_at: %w", err)
		}
		e.ReviewedAt = t
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review log: %w", err)
	}
	return entries, nil
}
