package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/abhisek/recall/internal/card"
	"github.com/abhisek/recall/internal/scheduler"
	"github.com/abhisek/recall/internal/store"
	"github.com/abhisek/recall/internal/ui/theme"
	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review <card-id> <rating>",
	Short: "Rate a card (1=again 2=hard 3=good 4=easy)",
	Args:  cobra.ExactArgs(2),
	RunE:  runReview,
}

func init() {
	reviewCmd.Flags().Int64("elapsed", 0, "Answer time in milliseconds")
}

func runReview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ratingVal, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid rating %q: must be 1-4", args[1])
	}
	rating := card.Rating(ratingVal)

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	deckID, set, err := deckSettings(ctx, cmd, st)
	if err != nil {
		return err
	}

	c, err := st.Cards().Get(ctx, args[0])
	if err != nil {
		return err
	}

	elapsed, _ := cmd.Flags().GetInt64("elapsed")
	sched := scheduler.New(scheduler.Config{})
	res, err := sched.ScheduleCard(c, rating, set, scheduler.Context{
		Now:       time.Now(),
		ElapsedMs: elapsed,
	})
	if err != nil {
		return err
	}

	if err := st.Cards().Put(ctx, res.Card); err != nil {
		return fmt.Errorf("save card: %w", err)
	}
	if err := st.ReviewLog().Append(ctx, store.ReviewLogEntry{
		CardID:         res.Card.ID,
		DeckID:         deckID,
		Rating:         rating,
		PreviousState:  res.PreviousState,
		NewState:       res.NewState,
		IntervalChange: res.IntervalChange,
		ElapsedMs:      elapsed,
		ReviewedAt:     time.Now(),
	}); err != nil {
		return fmt.Errorf("append review log: %w", err)
	}

	verdict := theme.Incorrect.Render("forgot")
	if res.WasCorrect {
		verdict = theme.Correct.Render("remembered")
	}
	fmt.Printf("%s %s  %s -> %s\n",
		theme.Title.Render(res.Card.ID), verdict,
		string(res.PreviousState), string(res.NewState))
	fmt.Printf("%s %s\n", theme.Label.Render("next review:"),
		theme.Value.Render(res.NextReview.Format(time.RFC1123)))
	fmt.Printf("%s %s\n", theme.Label.Render("interval:"),
		theme.Value.Render(fmt.Sprintf("%dd (%+dd)", res.Card.Ivl, res.IntervalChange)))
	return nil
}
