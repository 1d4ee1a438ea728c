// Package practice runs the timed card rotation over one day's cards.
package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/abhisek/drill/internal/deck"
	"github.com/abhisek/drill/internal/progress"
	"github.com/abhisek/drill/internal/store"
)

// CardSeconds is how long each card is shown before auto-advancing.
const CardSeconds = 20

var (
	ErrNotRunning = errors.New("practice session is not running")
	ErrNoCards    = errors.New("no cards to practice")
)

// Config tunes a Session.
type Config struct {
	CardSeconds int
}

// DefaultConfig returns the standard 20-second rotation.
func DefaultConfig() Config {
	return Config{CardSeconds: CardSeconds}
}

// Marker records a card's mastery status.
type Marker interface {
	MarkStatus(ctx context.Context, id deck.CardID, status progress.Status) error
}

// Journal receives practice session events. It is write-only from here.
type Journal interface {
	AppendPracticeEvent(ctx context.Context, data store.PracticeEventData) error
}

// Session is the Idle/Running state machine. It is not safe for concurrent
// use; Runner adds locking for drivers that need it.
//
// Every Start and Stop bumps the generation. Timer ticks carry the
// generation they were scheduled under and are dropped when it no longer
// matches, so at most one tick source drives a session.
type Session struct {
	cfg     Config
	marker  Marker
	journal Journal
	logger  *slog.Logger

	day   int
	cards []deck.Card

	active  bool
	pointer int
	seconds int
	gen     uint64
	id      string
}

// NewSession creates an idle session. journal and logger may be nil.
func NewSession(cfg Config, marker Marker, journal Journal, logger *slog.Logger) *Session {
	if cfg.CardSeconds <= 0 {
		cfg.CardSeconds = CardSeconds
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		cfg:     cfg,
		marker:  marker,
		journal: journal,
		logger:  logger,
		seconds: cfg.CardSeconds,
	}
}

// SetBucket installs the cards of a bucket. Switching to a different
// bucket while running stops the session first. Day labels may repeat
// across buckets, so the installed card ids decide identity as well.
func (s *Session) SetBucket(ctx context.Context, day int, cards []deck.Card) {
	if s.active && (day != s.day || !sameCards(s.cards, cards)) {
		s.Stop(ctx)
	}
	s.day = day
	s.cards = cards
	if s.pointer >= len(s.cards) {
		s.pointer = 0
	}
}

// Start enters Running at the first card with a full countdown. Starting
// an already running session restarts it under a new generation.
func (s *Session) Start(ctx context.Context) {
	if s.active {
		s.record(ctx, store.ActionStop, "", "")
	}
	s.active = true
	s.pointer = 0
	s.seconds = s.cfg.CardSeconds
	s.gen++
	s.id = uuid.NewString()
	s.record(ctx, store.ActionStart, "", "")
}

// Stop returns to Idle and resets pointer and countdown.
func (s *Session) Stop(ctx context.Context) {
	if s.active {
		s.record(ctx, store.ActionStop, "", "")
	}
	s.active = false
	s.pointer = 0
	s.seconds = s.cfg.CardSeconds
	s.gen++
}

// Tick applies one second of countdown if gen is current. When the
// countdown runs out the pointer wraps to the next card and the countdown
// restarts. It reports whether state changed.
func (s *Session) Tick(gen uint64) bool {
	if !s.active || gen != s.gen || len(s.cards) == 0 {
		return false
	}
	s.seconds--
	if s.seconds <= 0 {
		s.advance()
	}
	return true
}

// Mark records status for the current card and advances to the next one.
// The pointer advances even when the write fails; the write error is
// returned.
func (s *Session) Mark(ctx context.Context, status progress.Status) (deck.Card, error) {
	if !s.active {
		return deck.Card{}, ErrNotRunning
	}
	if len(s.cards) == 0 {
		return deck.Card{}, ErrNoCards
	}
	if !status.Valid() {
		return deck.Card{}, fmt.Errorf("mark %q: %w", status, progress.ErrInvalidStatus)
	}

	card := s.cards[s.pointer]
	err := s.marker.MarkStatus(ctx, card.ID, status)
	s.advance()
	if err != nil {
		return card, err
	}
	s.record(ctx, store.ActionMark, string(card.ID), string(status))
	return card, nil
}

func sameCards(a, b []deck.Card) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

func (s *Session) advance() {
	s.pointer = (s.pointer + 1) % len(s.cards)
	s.seconds = s.cfg.CardSeconds
}

func (s *Session) record(ctx context.Context, action, cardID, status string) {
	if s.journal == nil || s.id == "" {
		return
	}
	err := s.journal.AppendPracticeEvent(ctx, store.PracticeEventData{
		SessionID: s.id,
		Action:    action,
		Day:       s.day,
		CardID:    cardID,
		Status:    status,
	})
	if err != nil {
		s.logger.Warn("practice event not recorded", "action", action, "err", err)
	}
}

// Active reports whether the session is Running.
func (s *Session) Active() bool { return s.active }

// Pointer is the index of the current card.
func (s *Session) Pointer() int { return s.pointer }

// Seconds is the remaining countdown for the current card.
func (s *Session) Seconds() int { return s.seconds }

// Generation identifies the current Start/Stop epoch.
func (s *Session) Generation() uint64 { return s.gen }

// ID is the id of the latest started session, or "" if none started.
func (s *Session) ID() string { return s.id }

// Day is the day number of the installed bucket.
func (s *Session) Day() int { return s.day }

// Cards returns the installed cards.
func (s *Session) Cards() []deck.Card { return s.cards }

// Current returns the card under the pointer while running.
func (s *Session) Current() (deck.Card, bool) {
	if !s.active || len(s.cards) == 0 {
		return deck.Card{}, false
	}
	return s.cards[s.pointer], true
}
