package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/recall/internal/scheduler"
	"github.com/abhisek/recall/internal/ui/theme"
	"github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Tune deck settings toward a target retention rate",
	RunE:  runOptimize,
}

func init() {
	optimizeCmd.Flags().Float64("target", 90, "Target retention percentage")
	optimizeCmd.Flags().Bool("save", false, "Persist the tuned settings")
}

func runOptimize(cmd *cobra.Command, args []string) error {
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

	target, _ := cmd.Flags().GetFloat64("target")
	actual := scheduler.RetentionRate(cards)
	tuned := scheduler.OptimizeSettings(cards, set, target)

	fmt.Printf("%s %s (target %.1f%%)\n",
		theme.Label.Render("retention:"),
		theme.Value.Render(fmt.Sprintf("%.1f%%", actual)), target)
	fmt.Printf("%s %.3f -> %.3f\n", theme.Label.Render("interval modifier:"),
		set.Reviews.IntervalModifier, tuned.Reviews.IntervalModifier)
	fmt.Printf("%s %d -> %d\n", theme.Label.Render("starting ease:"),
		set.NewCards.StartingEase, tuned.NewCards.StartingEase)

	if save, _ := cmd.Flags().GetBool("save"); save {
		if err := st.Settings().Put(ctx, deckID, tuned); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
		fmt.Println(theme.Correct.Render("settings saved"))
		return nil
	}

	raw, err := json.MarshalIndent(tuned, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	fmt.Println(string(raw))
	fmt.Println(theme.Label.Render("(dry run; pass --save to persist)"))
	return nil
}
