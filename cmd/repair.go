package cmd

import (
	"fmt"

	"github.com/abhisek/recall/internal/card"
	"github.com/abhisek/recall/internal/ui/theme"
	"github.com/spf13/cobra"
)

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Validate every card in a deck and normalize inconsistent ones",
	RunE:  runRepair,
}

func runRepair(cmd *cobra.Command, args []string) error {
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

	cards, err := st.Cards().ListByDeck(ctx, deckID)
	if err != nil {
		return err
	}

	vr := card.ValidateAll(cards, set)
	for _, w := range vr.Warnings {
		fmt.Println(theme.Warn.Render("warning: " + w))
	}
	for _, e := range vr.Errors {
		fmt.Println(theme.Incorrect.Render("error: " + e))
	}

	repaired := 0
	for _, c := range cards {
		res := card.Repair(c, set)
		if len(res.Changes) == 0 {
			continue
		}
		if err := st.Cards().Put(ctx, res.Card); err != nil {
			return fmt.Errorf("save repaired card %s: %w", c.ID, err)
		}
		repaired++
		for _, chg := range res.Changes {
			fmt.Printf("  %s %s\n", theme.Label.Render(c.ID+":"), chg)
		}
	}

	fmt.Printf("%s %d of %d cards repaired\n",
		theme.Title.Render("repair:"), repaired, len(cards))
	return nil
}
