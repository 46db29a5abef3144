package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/recall/internal/ui/theme"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all cards and history for a deck",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	deckID, _ := cmd.Flags().GetString("deck")

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		fmt.Printf("Delete all cards and review history for deck %q? [y/N] ", deckID)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("aborted")
			return nil
		}
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	if _, err := st.DB().ExecContext(ctx,
		`DELETE FROM review_log WHERE deck_id = ?`, deckID); err != nil {
		return fmt.Errorf("delete review log: %w", err)
	}
	if _, err := st.DB().ExecContext(ctx,
		`DELETE FROM cards WHERE deck_id = ?`, deckID); err != nil {
		return fmt.Errorf("delete cards: %w", err)
	}

	fmt.Println(theme.Correct.Render("deck " + deckID + " reset"))
	return nil
}
