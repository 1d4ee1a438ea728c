package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/store"
)

// defaultDeckSource is used when neither --deck nor DRILL_DECK is set.
const defaultDeckSource = "deck.json"

var rootCmd = &cobra.Command{
	Use:   "drill",
	Short: "Daily card drills in the terminal",
	Long:  "drill shows one bucket of cards per weekday, tracks which ones are done, and runs timed practice rounds over them.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadDotEnv()
	},
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DRILL_DB env var)")
	rootCmd.PersistentFlags().String("deck", "", "Deck file path or http(s) URL (overrides DRILL_DECK env var)")
	rootCmd.PersistentFlags().String("log", "", "Write logs to this file (overrides DRILL_LOG env var)")

	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(revealCmd)
	rootCmd.AddCommand(resetDayCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(deckCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadDotEnv reads .env from the working directory. A missing file is fine.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then DRILL_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveDeckSource returns --deck, then DRILL_DECK, then deck.json.
func resolveDeckSource(cmd *cobra.Command) string {
	if s, _ := cmd.Flags().GetString("deck"); s != "" {
		return s
	}
	if s := os.Getenv("DRILL_DECK"); s != "" {
		return s
	}
	return defaultDeckSource
}

// resolveLogPath returns --log, then DRILL_LOG. Empty means no log file.
func resolveLogPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("log"); p != "" {
		return p
	}
	return os.Getenv("DRILL_LOG")
}
