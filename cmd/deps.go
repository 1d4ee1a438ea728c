package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/deck"
	"github.com/abhisek/drill/internal/practice"
	"github.com/abhisek/drill/internal/progress"
	"github.com/abhisek/drill/internal/screens"
	"github.com/abhisek/drill/internal/store"
)

// deps holds what every command that touches progress needs.
type deps struct {
	store    *store.Store
	index    *deck.Index
	progress *progress.Store
	logger   *slog.Logger
	deckErr  string
	logFile  io.Closer
}

// openDeps resolves configuration, opens the store and loads the deck.
// A deck that cannot be loaded is replaced by an empty one; the reason is
// kept in deckErr. interactive selects a discarding logger when no log
// file is configured, since the TUI owns the terminal.
func openDeps(cmd *cobra.Command, interactive bool) (*deps, error) {
	logger, logFile, err := newLogger(resolveLogPath(cmd), interactive)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		closeQuietly(logFile)
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		closeQuietly(logFile)
		return nil, fmt.Errorf("open store: %w", err)
	}

	source := resolveDeckSource(cmd)
	d, deckErr := deck.NewLoader(nil).LoadOrEmpty(cmd.Context(), source)
	if deckErr != "" {
		logger.Debug("deck unavailable, using empty deck", "source", source, "err", deckErr)
	}
	logger.Debug("dependencies ready", "db", dbPath, "deck", source)

	return &deps{
		store:    st,
		index:    deck.NewIndex(d),
		progress: progress.NewStore(st.KV(), logger),
		logger:   logger,
		deckErr:  deckErr,
		logFile:  logFile,
	}, nil
}

// Close releases the store and the log file.
func (r *deps) Close() {
	r.store.Close()
	closeQuietly(r.logFile)
}

// env builds the dependencies shared by the TUI screens.
func (r *deps) env() screens.Env {
	return screens.Env{
		Index:    r.index,
		Progress: r.progress,
		Events:   r.store.EventRepo(),
		Practice: practice.DefaultConfig(),
		Logger:   r.logger,
		Now:      time.Now,
	}
}

// warnDeck prints the deck load error once for plain-text commands.
func (r *deps) warnDeck(w io.Writer) {
	if r.deckErr != "" {
		fmt.Fprintln(w, color.New(color.FgYellow).Sprint("warning: ")+r.deckErr)
	}
}

// dayIndex returns the bucket index for a 1-based --day value, or today's
// bucket when day is 0.
func (r *deps) dayIndex(day int) (int, error) {
	if day == 0 {
		return r.index.TodayIndex(time.Now()), nil
	}
	if day < 1 || day > r.index.DayCount() {
		return 0, fmt.Errorf("day must be between 1 and %d", r.index.DayCount())
	}
	return day - 1, nil
}

func newLogger(path string, interactive bool) (*slog.Logger, io.Closer, error) {
	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})), f, nil
	case interactive:
		return slog.New(slog.DiscardHandler), nil, nil
	default:
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})), nil, nil
	}
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}
