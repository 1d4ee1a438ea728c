package day

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/drill/internal/deck"
	"github.com/abhisek/drill/internal/practice"
	"github.com/abhisek/drill/internal/progress"
	"github.com/abhisek/drill/internal/screen"
	"github.com/abhisek/drill/internal/screens"
	"github.com/abhisek/drill/internal/ui/components"
	"github.com/abhisek/drill/internal/ui/layout"
)

// DayScreen lists one day's cards and hosts the practice rotation.
type DayScreen struct {
	env      screens.Env
	dayIndex int
	bucket   deck.Bucket
	cards    []deck.Card
	state    progress.State
	selected int

	session      *practice.Session
	autoStart    bool
	confirmReset bool
	jump         *components.NumberInput

	notice string
	errMsg string
}

var _ screen.Screen = (*DayScreen)(nil)
var _ screen.KeyHintProvider = (*DayScreen)(nil)
var _ screen.StatusProvider = (*DayScreen)(nil)
var _ screen.Disposer = (*DayScreen)(nil)
var _ screen.InputCapturer = (*DayScreen)(nil)

// New creates a DayScreen on the bucket at dayIndex.
func New(env screens.Env, dayIndex int) *DayScreen {
	if env.Logger == nil {
		env.Logger = slog.New(slog.DiscardHandler)
	}
	s := &DayScreen{
		env:     env,
		session: practice.NewSession(env.Practice, env.Progress, env.Events, env.Logger),
	}
	s.setDay(dayIndex)
	return s
}

// NewPractice creates a DayScreen that starts practicing as soon as it is shown.
func NewPractice(env screens.Env, dayIndex int) *DayScreen {
	s := New(env, dayIndex)
	s.autoStart = true
	return s
}

func (s *DayScreen) Init() tea.Cmd {
	if s.autoStart {
		s.autoStart = false
		return s.startPractice()
	}
	return nil
}

func (s *DayScreen) Title() string {
	if s.session.Active() {
		return fmt.Sprintf("Practice · Day %d", s.bucket.Day)
	}
	return fmt.Sprintf("Day %d", s.bucket.Day)
}

func (s *DayScreen) HeaderStatus() layout.HeaderStatus {
	sum := progress.Summarize(s.state, s.cards)
	return layout.HeaderStatus{
		Day:     s.bucket.Day,
		Done:    sum.Done,
		Total:   sum.Total,
		Percent: sum.Percent,
	}
}

func (s *DayScreen) CapturingInput() bool {
	return s.jump != nil || s.confirmReset
}

// Dispose stops the practice session so no further ticks apply.
func (s *DayScreen) Dispose() {
	s.session.Stop(context.Background())
}

func (s *DayScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.jump != nil:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Go"},
			{Key: "Esc", Description: "Cancel"},
		}
	case s.confirmReset:
		return []layout.KeyHint{
			{Key: "Y", Description: "Reset day"},
			{Key: "N", Description: "Keep"},
		}
	case s.session.Active():
		return []layout.KeyHint{
			{Key: "D", Description: "Done"},
			{Key: "A", Description: "Again"},
			{Key: "Space", Description: "Reveal"},
			{Key: "S", Description: "Stop"},
		}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Day"},
		{Key: "↑↓", Description: "Card"},
		{Key: "Space", Description: "Reveal"},
		{Key: "D/A", Description: "Done/Again"},
		{Key: "P", Description: "Practice"},
		{Key: "R", Description: "Reset"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case practiceTickMsg:
		if s.session.Tick(msg.gen) {
			return s, tickCmd(msg.gen)
		}
		return s, nil

	case screen.ResumedMsg:
		s.reload()
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.jump != nil {
		var cmd tea.Cmd
		*s.jump, cmd = s.jump.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *DayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	ctx := context.Background()

	if s.jump != nil {
		return s.handleJumpKey(msg)
	}

	if s.confirmReset {
		switch key {
		case "y", "Y":
			s.confirmReset = false
			s.resetDay(ctx)
		case "n", "N", "esc":
			s.confirmReset = false
		}
		return s, nil
	}

	s.notice = ""

	if s.session.Active() {
		switch key {
		case "d":
			s.practiceMark(ctx, progress.StatusDone)
		case "a":
			s.practiceMark(ctx, progress.StatusAgain)
		case "space", " ":
			if c, ok := s.session.Current(); ok {
				s.toggleReveal(ctx, c.ID)
			}
		case "s", "p":
			s.session.Stop(ctx)
		case "left", "h":
			s.setDay(s.dayIndex - 1)
		case "right", "l":
			s.setDay(s.dayIndex + 1)
		}
		return s, nil
	}

	switch key {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.cards)-1 {
			s.selected++
		}
	case "left", "h":
		s.setDay(s.dayIndex - 1)
	case "right", "l":
		s.setDay(s.dayIndex + 1)
	case "t":
		s.setDay(s.env.TodayIndex())
	case "space", " ", "enter":
		if c, ok := s.selectedCard(); ok {
			s.toggleReveal(ctx, c.ID)
		}
	case "d":
		s.markSelected(ctx, progress.StatusDone)
	case "a":
		s.markSelected(ctx, progress.StatusAgain)
	case "r":
		s.confirmReset = true
	case "p":
		return s, s.startPractice()
	case "g":
		in := components.NewNumberInput("Go to day:", fmt.Sprintf("1-%d", s.env.Index.DayCount()), 3)
		s.jump = &in
		return s, in.Init()
	}
	return s, nil
}

func (s *DayScreen) handleJumpKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.jump = nil
		return s, nil
	case "enter":
		n, err := s.jump.Int()
		if err != nil || n < 1 || n > s.env.Index.DayCount() {
			s.jump.SetError(fmt.Sprintf("enter a day between 1 and %d", s.env.Index.DayCount()))
			return s, nil
		}
		s.jump = nil
		s.setDay(n - 1)
		return s, nil
	}

	var cmd tea.Cmd
	*s.jump, cmd = s.jump.Update(msg)
	return s, cmd
}

// setDay switches to the bucket at index, wrapping around the day slots.
// A running session is stopped when the bucket changes.
func (s *DayScreen) setDay(index int) {
	n := s.env.Index.DayCount()
	index = ((index % n) + n) % n

	s.dayIndex = index
	s.bucket = s.env.Index.Bucket(index)
	s.cards = s.env.Index.Cards(index)
	s.session.SetBucket(context.Background(), s.bucket.Day, s.cards)
	if s.selected >= len(s.cards) {
		s.selected = 0
	}
	s.reload()
}

func (s *DayScreen) reload() {
	s.state = s.env.Progress.Load(context.Background())
}

func (s *DayScreen) selectedCard() (deck.Card, bool) {
	if s.selected < 0 || s.selected >= len(s.cards) {
		return deck.Card{}, false
	}
	return s.cards[s.selected], true
}

func (s *DayScreen) startPractice() tea.Cmd {
	s.session.Start(context.Background())
	if len(s.cards) == 0 {
		s.notice = "No cards for this day."
		return nil
	}
	return tickCmd(s.session.Generation())
}

func (s *DayScreen) practiceMark(ctx context.Context, status progress.Status) {
	_, err := s.session.Mark(ctx, status)
	s.report(err)
	s.reload()
}

func (s *DayScreen) markSelected(ctx context.Context, status progress.Status) {
	c, ok := s.selectedCard()
	if !ok {
		return
	}
	s.report(s.env.Progress.MarkStatus(ctx, c.ID, status))
	s.reload()
}

func (s *DayScreen) toggleReveal(ctx context.Context, id deck.CardID) {
	_, err := s.env.Progress.ToggleReveal(ctx, id)
	s.report(err)
	s.reload()
}

func (s *DayScreen) resetDay(ctx context.Context) {
	err := s.env.Progress.ResetBucket(ctx, s.bucket.Cards)
	s.report(err)
	if err == nil {
		s.notice = fmt.Sprintf("Day %d reset.", s.bucket.Day)
	}
	s.reload()
}

func (s *DayScreen) report(err error) {
	switch {
	case err == nil:
		s.errMsg = ""
	case errors.Is(err, practice.ErrNoCards):
		s.notice = "No cards for this day."
	default:
		s.errMsg = err.Error()
		s.env.Logger.Error("progress write failed", "day", s.bucket.Day, "err", err)
	}
}
