package cmd

import (
	"fmt"
	"time"

	"github.com/abhisek/recall/internal/queue"
	"github.com/abhisek/recall/internal/ui/theme"
	"github.com/spf13/cobra"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "Build the study queue for a deck and show what is due",
	RunE:  runDue,
}

func runDue(cmd *cobra.Command, args []string) error {
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

	mgr := queue.NewManager(queue.NewLimitsStore())
	q := mgr.BuildStudyQueue(deckID, cards, set, time.Now())

	fmt.Println(theme.Title.Render("deck " + deckID))
	fmt.Printf("  %s %s\n", theme.Label.Render("new:"),
		theme.Value.Render(fmt.Sprintf("%d", q.Counts.New)))
	fmt.Printf("  %s %s\n", theme.Label.Render("learning:"),
		theme.Value.Render(fmt.Sprintf("%d (+%d relearning)", q.Counts.Learning, q.Counts.Relearning)))
	fmt.Printf("  %s %s\n", theme.Label.Render("review:"),
		theme.Value.Render(fmt.Sprintf("%d (%d young, %d mature)",
			q.Counts.Review, q.Counts.YoungReview, q.Counts.MatureReview)))
	fmt.Printf("  %s %s\n", theme.Label.Render("estimated:"),
		theme.Value.Render(fmt.Sprintf("%d min", q.EstimatedStudyTime)))

	if next := mgr.NextCard(q); next != nil {
		fmt.Printf("  %s %s\n", theme.Label.Render("next card:"), theme.Value.Render(next.ID))
	} else if q.NextCardDue != nil {
		fmt.Printf("  %s %s\n", theme.Label.Render("nothing due; next at:"),
			theme.Value.Render(q.NextCardDue.Format(time.RFC1123)))
	} else {
		fmt.Println(theme.Label.Render("  nothing due"))
	}
	return nil
}
