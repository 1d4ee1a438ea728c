package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/deck"
	"github.com/abhisek/drill/internal/progress"
)

var markCmd = &cobra.Command{
	Use:   "mark <card-id> done|again",
	Short: "Mark a card as done or to be practised again",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status := progress.Status(args[1])
		if !status.Valid() {
			return fmt.Errorf("%w: %q (want done or again)", progress.ErrInvalidStatus, args[1])
		}

		rt, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()
		rt.warnDeck(cmd.ErrOrStderr())

		id := resolveCardID(rt.index, args[0])
		if _, ok := rt.index.Card(id); !ok {
			fmt.Fprintln(cmd.ErrOrStderr(), color.New(color.FgYellow).Sprintf("warning: card %s is not in the deck", id))
		}
		if err := rt.progress.MarkStatus(cmd.Context(), id, status); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s card %s marked %s\n", statusMark(status), id, status)
		return nil
	},
}

var revealCmd = &cobra.Command{
	Use:   "reveal <card-id>",
	Short: "Toggle whether a card's lines are shown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()
		rt.warnDeck(cmd.ErrOrStderr())

		id := resolveCardID(rt.index, args[0])
		shown, err := rt.progress.ToggleReveal(cmd.Context(), id)
		if err != nil {
			return err
		}

		card, ok := rt.index.Card(id)
		if !shown {
			fmt.Fprintf(cmd.OutOrStdout(), "card %s hidden\n", id)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "card %s revealed\n", id)
		if ok {
			for _, line := range card.Lines {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", line)
			}
		}
		return nil
	},
}

// resolveCardID prefers an exact deck id and otherwise normalizes numeric
// input the way deck documents do.
func resolveCardID(ix *deck.Index, arg string) deck.CardID {
	if _, ok := ix.Card(deck.CardID(arg)); ok {
		return deck.CardID(arg)
	}
	return deck.ParseCardID(arg)
}
