package cmd

import (
	"fmt"

	"github.com/abhisek/recall/internal/card"
	"github.com/abhisek/recall/internal/scheduler"
	"github.com/abhisek/recall/internal/ui/theme"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show card state counts and retention for a deck",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	deckID, _ := cmd.Flags().GetString("deck")
	cards, err := st.Cards().ListByDeck(ctx, deckID)
	if err != nil {
		return err
	}

	counts := card.StateStatistics(cards)
	retention := scheduler.RetentionRate(cards)

	fmt.Println(theme.Title.Render("deck " + deckID))
	for _, s := range []card.State{
		card.StateNew, card.StateLearning, card.StateReview,
		card.StateRelearning, card.StateSuspended, card.StateBuried,
	} {
		fmt.Printf("  %s %s\n",
			theme.Label.Render(string(s)+":"),
			theme.Value.Render(fmt.Sprintf("%d", counts[s])))
	}
	fmt.Printf("  %s %s\n", theme.Label.Render("retention:"),
		theme.Value.Render(fmt.Sprintf("%.1f%%", retention)))
	return nil
}
