package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/app"
	"github.com/abhisek/drill/internal/practice"
	"github.com/abhisek/drill/internal/progress"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Run a timed practice round over a day's cards",
	Long: `Cycles through the cards of a day, 20 seconds per card.

With --plain the round runs on stdin/stdout instead of the full-screen UI:
type d (done), a (again) or q (quit) followed by Enter.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")
		day, _ := cmd.Flags().GetInt("day")

		rt, err := openDeps(cmd, !plain)
		if err != nil {
			return err
		}
		defer rt.Close()

		idx, err := rt.dayIndex(day)
		if err != nil {
			return err
		}

		if !plain {
			return app.Run(app.Options{
				Env:           rt.env(),
				DeckError:     rt.deckErr,
				PracticeIndex: &idx,
			})
		}

		rt.warnDeck(cmd.ErrOrStderr())
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return runPlainPractice(ctx, rt, idx, cmd.InOrStdin(), cmd.OutOrStdout(), nil)
	},
}

func init() {
	practiceCmd.Flags().Bool("plain", false, "Line-based practice without the full-screen UI")
	practiceCmd.Flags().Int("day", 0, "Practice day slot N (1-based) instead of today")
}

// runPlainPractice drives a practice round from line commands on in.
// newTrigger is passed to the runner; nil ticks once per second.
func runPlainPractice(ctx context.Context, rt *deps, idx int, in io.Reader, out io.Writer, newTrigger func() practice.Trigger) error {
	b := rt.index.Bucket(idx)
	cards := rt.index.Cards(idx)
	if len(cards) == 0 {
		fmt.Fprintf(out, "Day %d has no cards to practise.\n", b.Day)
		return nil
	}

	p := &plainPrinter{w: out, last: -1}
	session := practice.NewSession(practice.DefaultConfig(), rt.progress, rt.store.EventRepo(), rt.logger)
	session.SetBucket(ctx, b.Day, cards)
	runner := practice.NewRunner(session, newTrigger, p.tick)

	fmt.Fprintf(out, "%s  %d cards  [d] done  [a] again  [q] quit\n",
		color.New(color.Bold).Sprintf("Practice day %d", b.Day), len(cards))
	if err := runner.Start(ctx); err != nil {
		return err
	}
	defer runner.Stop(context.WithoutCancel(ctx))
	p.tick(runner.Snapshot())

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			p.println("stopped")
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "d":
				p.mark(ctx, runner, progress.StatusDone)
			case "a":
				p.mark(ctx, runner, progress.StatusAgain)
			case "q":
				p.println("stopped")
				return nil
			case "":
			default:
				p.println("keys: d done, a again, q quit")
			}
		}
	}
}

// plainPrinter serializes output from the input loop and the tick
// goroutine.
type plainPrinter struct {
	mu   sync.Mutex
	w    io.Writer
	last int
}

func (p *plainPrinter) println(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, s)
}

// tick prints the card when the pointer moves and the countdown otherwise.
func (p *plainPrinter) tick(s practice.Snapshot) {
	if !s.HasCard {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if s.Pointer != p.last {
		p.last = s.Pointer
		fmt.Fprintf(p.w, "\n[%d/%d] %s\n", s.Pointer+1, s.Total, color.New(color.FgCyan, color.Bold).Sprint(s.Card.Title))
		for _, line := range s.Card.Lines {
			fmt.Fprintf(p.w, "      %s\n", line)
		}
	}
	fmt.Fprintf(p.w, "  %ds left\n", s.Seconds)
}

func (p *plainPrinter) mark(ctx context.Context, r *practice.Runner, status progress.Status) {
	card, err := r.Mark(ctx, status)
	switch {
	case errors.Is(err, practice.ErrNotRunning), errors.Is(err, practice.ErrNoCards):
		p.println(err.Error())
		return
	case err != nil:
		p.println(color.New(color.FgRed).Sprintf("could not save %s: %v", card.ID, err))
	default:
		p.println(fmt.Sprintf("%s %s %s", statusMark(status), card.Title, status))
	}
	p.tick(r.Snapshot())
}
