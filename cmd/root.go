package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/recall/internal/deck"
	"github.com/abhisek/recall/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "recall",
	Short: "Spaced-repetition flashcard scheduler",
	Long:  "Recall — an Anki-style SM-2+ scheduling engine with a local SQLite collection.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides RECALL_DB env var)")
	rootCmd.PersistentFlags().String("deck", "default", "Deck id to operate on")

	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(repairCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then RECALL_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the collection database for a command.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// deckSettings loads the settings for the deck named by --deck.
func deckSettings(ctx context.Context, cmd *cobra.Command, st *store.Store) (string, deck.Settings, error) {
	deckID, _ := cmd.Flags().GetString("deck")
	set, err := st.Settings().Get(ctx, deckID)
	if err != nil {
		return "", deck.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return deckID, set, nil
}
