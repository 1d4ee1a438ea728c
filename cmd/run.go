package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/app"
)

// runApp opens the store, loads the deck, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := openDeps(cmd, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	return app.Run(app.Options{
		Env:       rt.env(),
		DeckError: rt.deckErr,
	})
}
