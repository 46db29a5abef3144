package cmd

import (
	"fmt"
	"time"

	"github.com/abhisek/recall/internal/card"
	"github.com/abhisek/recall/internal/scheduler"
	"github.com/abhisek/recall/internal/ui/theme"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview <card-id>",
	Short: "Show the interval each rating would produce (no mutation)",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	_, set, err := deckSettings(ctx, cmd, st)
	if err != nil {
		return err
	}

	c, err := st.Cards().Get(ctx, args[0])
	if err != nil {
		return err
	}

	sched := scheduler.New(scheduler.Config{})
	previews, err := sched.Preview(c, set, scheduler.Context{Now: time.Now()})
	if err != nil {
		return err
	}

	fmt.Println(theme.Title.Render(c.ID))
	for _, r := range []card.Rating{card.Again, card.Hard, card.Good, card.Easy} {
		res := previews[r]
		var when string
		if res.Card.State == card.StateReview {
			when = fmt.Sprintf("%dd", res.Card.Ivl)
		} else {
			when = fmt.Sprintf("%dm", res.Card.Left)
		}
		fmt.Printf("  %s %s\n",
			theme.Label.Render(fmt.Sprintf("%d (%s):", int(r), r)),
			theme.Value.Render(when))
	}
	return nil
}
