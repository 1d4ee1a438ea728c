package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/progress"
	"github.com/abhisek/drill/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-day progress and recent practice sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()
		rt.warnDeck(cmd.ErrOrStderr())

		limit, _ := cmd.Flags().GetInt("sessions")
		out := cmd.OutOrStdout()

		st := rt.progress.Load(cmd.Context())
		fmt.Fprintf(out, "%-6s  %-9s  %s\n", "Day", "Done", "Progress")
		fmt.Fprintln(out, strings.Repeat("─", 40))
		for i := 0; i < rt.index.DayCount(); i++ {
			sum := progress.Summarize(st, rt.index.Cards(i))
			fmt.Fprintf(out, "%-6d  %-9s  %s\n",
				rt.index.Bucket(i).Day, fmt.Sprintf("%d/%d", sum.Done, sum.Total), percentBar(sum.Percent, 20))
		}

		if limit <= 0 {
			return nil
		}
		sessions, err := rt.store.EventRepo().RecentSessions(cmd.Context(), limit)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		printSessions(out, sessions)
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("sessions", 10, "Number of recent practice sessions to list (0 hides them)")
}

func percentBar(pct, width int) string {
	filled := width * pct / 100
	bar := color.New(color.FgGreen).Sprint(strings.Repeat("█", filled)) +
		color.New(color.Faint).Sprint(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

func printSessions(w io.Writer, sessions []store.SessionSummary) {
	fmt.Fprintln(w, color.New(color.Bold).Sprint("Recent practice"))
	if len(sessions) == 0 {
		fmt.Fprintln(w, color.New(color.Faint).Sprint("  No practice sessions yet."))
		return
	}
	for _, s := range sessions {
		dur := s.Duration()
		state := ""
		if !s.Stopped {
			state = color.New(color.FgYellow).Sprint("  interrupted")
		}
		fmt.Fprintf(w, "  %s  Day %-3d %2d:%02d  %s %d  %s %d%s\n",
			s.StartedAt.Local().Format("2006-01-02 15:04"), s.Day,
			int(dur.Minutes()), int(dur.Seconds())%60,
			statusMark(progress.StatusDone), s.Done,
			statusMark(progress.StatusAgain), s.Again, state)
	}
}
