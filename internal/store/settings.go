package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/recall/internal/deck"
)

// SettingsRepo persists per-deck settings as a JSON document.
type SettingsRepo interface {
	// Put inserts or replaces the deck's settings.
	Put(ctx context.Context, deckID string, s deck.Settings) error

	// Get returns the deck's settings, or the defaults when no row
	// exists.
	Get(ctx context.Context, deckID string) (deck.Settings, error)
}

type settingsRepo struct {
	db *sql.DB
}

func (r *settingsRepo) Put(ctx context.Context, deckID string, s deck.Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO deck_settings (deck_id, settings) VALUES (?, ?)`,
		deckID, string(raw))
	if err != nil {
		return fmt.Errorf("put settings for deck %s: %w", deckID, err)
	}
	return nil
}

func (r *settingsRepo) Get(ctx context.Context, deckID string) (deck.Settings, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT settings FROM deck_settings WHERE deck_id = ?`, deckID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return deck.Default(), nil
	}
	if err != nil {
		return deck.Settings{}, fmt.Errorf("get settings for deck %s: %w", deckID, err)
	}

	s := deck.Default()
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return deck.Settings{}, fmt.Errorf("decode settings for deck %s: %w", deckID, err)
	}
	return s, nil
}
