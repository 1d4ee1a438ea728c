package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/router"
	"github.com/abhisek/drill/internal/screen"
	"github.com/abhisek/drill/internal/store"
	"github.com/abhisek/drill/internal/ui/layout"
	"github.com/abhisek/drill/internal/ui/theme"
)

// SessionLimit caps how many past sessions are listed.
const SessionLimit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionSummary
	Err      error
}

type eventsLoadedMsg struct {
	SessionID string
	Events    []store.PracticeEvent
	Err       error
}

// HistoryScreen lists past practice sessions. Enter expands a session into
// its individual marks.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionSummary
	events    map[string][]store.PracticeEvent
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		events:    make(map[string][]store.PracticeEvent),
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		sessions, err := s.eventRepo.RecentSessions(context.Background(), SessionLimit)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) loadEvents(sessionID string) tea.Cmd {
	return func() tea.Msg {
		events, err := s.eventRepo.SessionEvents(context.Background(), sessionID)
		return eventsLoadedMsg{SessionID: sessionID, Events: events, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case eventsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.events[msg.SessionID] = msg.Events
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if len(s.sessions) == 0 {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			id := s.sessions[s.selected].SessionID
			if _, ok := s.events[id]; s.expanded[s.selected] && !ok {
				return s, s.loadEvents(id)
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No practice sessions yet. Press p on a day to start one.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			sessionStyle(sess, i == s.selected).Render(prefix+sessionLine(sess))))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderEvents(sess.SessionID, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderEvents(sessionID string, width int) string {
	events, ok := s.events[sessionID]
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)

	var lines []string
	switch {
	case !ok:
		lines = append(lines, dim.Render("    Loading..."))
	default:
		for _, e := range events {
			if e.Action != store.ActionMark {
				continue
			}
			line := fmt.Sprintf("    %s  card %s  %s", e.Timestamp.Local().Format("15:04:05"), e.CardID, e.Status)
			lines = append(lines, lipgloss.NewStyle().Foreground(statusColor(e.Status)).Render(line))
		}
		if len(lines) == 0 {
			lines = append(lines, dim.Render("    No cards marked this session"))
		}
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, l))
		b.WriteString("\n")
	}
	return b.String()
}

func sessionLine(sess store.SessionSummary) string {
	dur := sess.Duration()
	mins := int(dur.Minutes())
	secs := int(dur.Seconds()) % 60

	state := ""
	if !sess.Stopped {
		state = "  (interrupted)"
	}
	return fmt.Sprintf("%s  Day %d  %d:%02d  %d done  %d again%s",
		sess.StartedAt.Local().Format("Jan 02, 2006 15:04"), sess.Day, mins, secs,
		sess.Done, sess.Again, state)
}

func sessionStyle(sess store.SessionSummary, selected bool) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if !sess.Stopped {
		style = style.Foreground(theme.TextDim)
	}
	if selected {
		style = style.Foreground(theme.Primary).Bold(true)
	}
	return style
}

func statusColor(status string) color.Color {
	switch status {
	case "done":
		return theme.Success
	case "again":
		return theme.Accent
	default:
		return theme.Text
	}
}
