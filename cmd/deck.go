package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/deck"
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Import and check deck documents",
}

var deckImportCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Convert a spreadsheet (day | id | title | lines...) into a deck document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := deck.DefaultImportConfig(args[0])
		if sheet, _ := cmd.Flags().GetString("sheet"); sheet != "" {
			cfg.SheetName = sheet
		}

		d, res, err := deck.ImportXLSX(cfg)
		if err != nil {
			return err
		}

		errOut := cmd.ErrOrStderr()
		for _, e := range res.Errors {
			fmt.Fprintln(errOut, color.New(color.FgYellow).Sprint("skipped: ")+e)
		}
		fmt.Fprintf(errOut, "%d rows processed, %d cards imported, %d skipped\n",
			res.TotalProcessed, res.Imported, res.Skipped)

		var w io.Writer = cmd.OutOrStdout()
		if path, _ := cmd.Flags().GetString("output"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			defer f.Close()
			w = f
		}
		return deck.WriteJSON(w, d)
	},
}

var deckValidateCmd = &cobra.Command{
	Use:   "validate [source]",
	Short: "Check that a deck file or URL loads cleanly",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := resolveDeckSource(cmd)
		if len(args) == 1 {
			source = args[0]
		}

		d, err := deck.Load(cmd.Context(), source)
		if err != nil {
			return err
		}

		ix := deck.NewIndex(d)
		missing := 0
		for _, b := range d.Days {
			for _, id := range b.Cards {
				if _, ok := ix.Card(id); !ok {
					missing++
					fmt.Fprintln(cmd.ErrOrStderr(),
						color.New(color.FgYellow).Sprintf("day %d: card %s is not defined", b.Day, id))
				}
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d days, %d cards\n",
			color.New(color.FgGreen).Sprint("✓"), source, len(d.Days), len(d.Cards))
		if missing > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%d bucket entries reference unknown cards and will be skipped\n", missing)
		}
		return nil
	},
}

func init() {
	deckImportCmd.Flags().String("sheet", "", "Worksheet to read (default Sheet1)")
	deckImportCmd.Flags().StringP("output", "o", "", "Write the deck to this file instead of stdout")

	deckCmd.AddCommand(deckImportCmd)
	deckCmd.AddCommand(deckValidateCmd)
}
