// Package store persists cards, per-deck settings, and the review log
// in a local SQLite database.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite connection and provides access to the
// repositories.
type Store struct {
	db  *sql.DB
	seq *sequenceCounter
}

// Open creates a Store connected to the SQLite database at dsn,
// applies recommended pragmas, and creates the schema.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sequence counter: %w", err)
	}

	return &Store{db: db, seq: seq}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Cards returns a CardRepo backed by this store.
func (s *Store) Cards() CardRepo {
	return &cardRepo{db: s.db}
}

// Settings returns a SettingsRepo backed by this store.
func (s *Store) Settings() SettingsRepo {
	return &settingsRepo{db: s.db}
}

// ReviewLog returns a ReviewLogRepo backed by this store.
func (s *Store) ReviewLog() ReviewLogRepo {
	return &reviewLogRepo{db: s.db, seq: s.seq}
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func createSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS cards (
			id TEXT PRIMARY KEY,
			deck_id TEXT NOT NULL,
			front TEXT NOT NULL,
			back TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT '',
			state TEXT NOT NULL,
			queue INTEGER NOT NULL,
			due INTEGER NOT NULL,
			ivl INTEGER NOT NULL,
			factor INTEGER NOT NULL,
			reps INTEGER NOT NULL,
			lapses INTEGER NOT NULL,
			left_minutes INTEGER NOT NULL,
			learning_step INTEGER NOT NULL,
			flags INTEGER NOT NULL,
			original_due INTEGER NOT NULL,
			original_deck TEXT NOT NULL DEFAULT '',
			total_study_time INTEGER NOT NULL,
			average_answer_time INTEGER NOT NULL,
			graduation_interval INTEGER NOT NULL,
			easy_interval INTEGER NOT NULL,
			last_reviewed_at TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cards_deck ON cards (deck_id)`,
		`CREATE TABLE IF NOT EXISTS deck_settings (
			deck_id TEXT PRIMARY KEY,
			settings TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS review_log (
			sequence INTEGER PRIMARY KEY,
			card_id TEXT NOT NULL,
			deck_id TEXT NOT NULL,
			rating INTEGER NOT NULL,
			previous_state TEXT NOT NULL,
			new_state TEXT NOT NULL,
			interval_change INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			reviewed_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_review_log_card ON review_log (card_id)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec schema statement: %w", err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. RECALL_DB environment variable
// 2. $XDG_DATA_HOME/recall/recall.db
// 3. ~/.local/share/recall/recall.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("RECALL_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "recall", "recall.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
