package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/deck"
	"github.com/abhisek/drill/internal/progress"
)

var resetDayCmd = &cobra.Command{
	Use:   "reset-day",
	Short: "Clear status and reveal state of every card in a day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()
		rt.warnDeck(cmd.ErrOrStderr())

		day, _ := cmd.Flags().GetInt("day")
		idx, err := rt.dayIndex(day)
		if err != nil {
			return err
		}

		b := rt.index.Bucket(idx)
		if err := rt.progress.ResetBucket(cmd.Context(), bucketIDs(b)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Day %d reset (%d cards)\n", b.Day, len(b.Cards))
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("this erases all progress; rerun with --yes to confirm")
		}

		rt, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.progress.Save(cmd.Context(), progress.NewState()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.New(color.FgYellow).Sprint("All progress erased."))
		return nil
	},
}

func init() {
	resetDayCmd.Flags().Int("day", 0, "Reset day slot N (1-based) instead of today")
	resetCmd.Flags().Bool("yes", false, "Confirm erasing all progress")
}

func bucketIDs(b deck.Bucket) []deck.CardID {
	ids := make([]deck.CardID, len(b.Cards))
	copy(ids, b.Cards)
	return ids
}
