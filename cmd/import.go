package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/abhisek/recall/internal/card"
	"github.com/abhisek/recall/internal/deck"
	"github.com/abhisek/recall/internal/ui/theme"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <cards.json>",
	Short: "Import cards from JSON, migrating legacy-format entries",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().String("settings", "", "Deck settings JSON file (schema-validated)")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	deckID, set, err := deckSettings(ctx, cmd, st)
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("settings"); path != "" {
		var err error
		set, err = loadSettingsFile(path)
		if err != nil {
			return err
		}
		if err := st.Settings().Put(ctx, deckID, set); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
		fmt.Println(theme.Correct.Render("deck settings imported"))
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read cards file: %w", err)
	}

	var legacies []card.LegacyCard
	if err := json.Unmarshal(raw, &legacies); err != nil {
		return fmt.Errorf("decode cards file: %w", err)
	}

	imported := 0
	for _, legacy := range legacies {
		if legacy.ID == "" {
			legacy.ID = uuid.NewString()
		}
		if legacy.DeckID == "" {
			legacy.DeckID = deckID
		}

		res := card.Migrate(legacy, set)
		if err := st.Cards().Put(ctx, res.Card); err != nil {
			return fmt.Errorf("save card %s: %w", res.Card.ID, err)
		}
		imported++
		for _, note := range res.Notes {
			fmt.Printf("  %s %s\n", theme.Label.Render(res.Card.ID+":"), note)
		}
	}

	fmt.Printf("%s %d cards imported into deck %s\n",
		theme.Title.Render("import:"), imported, deckID)
	return nil
}

// loadSettingsFile reads and schema-validates a deck settings document.
func loadSettingsFile(path string) (deck.Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return deck.Settings{}, fmt.Errorf("read settings file: %w", err)
	}
	set, err := deck.Parse(raw)
	if err != nil {
		return deck.Settings{}, fmt.Errorf("settings file %s: %w", path, err)
	}
	return set, nil
}
