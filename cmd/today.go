package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/deck"
	"github.com/abhisek/drill/internal/progress"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's cards and their progress",
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

		st := rt.progress.Load(cmd.Context())
		printBucket(cmd.OutOrStdout(), rt.index.Bucket(idx), rt.index.Cards(idx), st)
		return nil
	},
}

func init() {
	todayCmd.Flags().Int("day", 0, "Show day slot N (1-based) instead of today")
}

// printBucket writes the card list of one bucket with status markers,
// the day summary and the next pending cards.
func printBucket(w io.Writer, b deck.Bucket, cards []deck.Card, st progress.State) {
	sum := progress.Summarize(st, cards)

	fmt.Fprintf(w, "%s  %d/%d done  %d%%\n",
		color.New(color.Bold).Sprintf("Day %d", b.Day), sum.Done, sum.Total, sum.Percent)

	if len(cards) == 0 {
		fmt.Fprintln(w, color.New(color.Faint).Sprint("  No cards for this day."))
		return
	}

	for _, c := range cards {
		reveal := " "
		if st.Revealed(c.ID) {
			reveal = "👁"
		}
		fmt.Fprintf(w, "  %s %s %-6s %s\n", statusMark(st.StatusOf(c.ID)), reveal, c.ID, c.Title)
		if st.Revealed(c.ID) {
			for _, line := range c.Lines {
				fmt.Fprintf(w, "             %s\n", line)
			}
		}
	}

	fmt.Fprintln(w)
	if len(sum.NextPending) == 0 {
		fmt.Fprintln(w, color.New(color.FgGreen).Sprint("All done for this day."))
		return
	}
	fmt.Fprintln(w, "Next up:")
	for i, c := range sum.NextPending {
		fmt.Fprintf(w, "  %d. %s\n", i+1, c.Title)
	}
}

func statusMark(s progress.Status) string {
	switch s {
	case progress.StatusDone:
		return color.New(color.FgGreen).Sprint("✓")
	case progress.StatusAgain:
		return color.New(color.FgYellow).Sprint("↻")
	default:
		return color.New(color.Faint).Sprint("·")
	}
}
