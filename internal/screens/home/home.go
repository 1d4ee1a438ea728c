package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/drill/internal/deck"
	"github.com/abhisek/drill/internal/progress"
	"github.com/abhisek/drill/internal/router"
	"github.com/abhisek/drill/internal/screen"
	"github.com/abhisek/drill/internal/screens"
	"github.com/abhisek/drill/internal/screens/day"
	"github.com/abhisek/drill/internal/screens/history"
	"github.com/abhisek/drill/internal/ui/components"
	"github.com/abhisek/drill/internal/ui/layout"
)

// HomeScreen is the dashboard: today's bucket, its progress and the next
// pending cards.
type HomeScreen struct {
	env      screens.Env
	deckErr  string
	menu     components.Menu
	todayIdx int
	bucket   deck.Bucket
	summary  progress.DaySummary
	weekday  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.StatusProvider = (*HomeScreen)(nil)

// New creates a HomeScreen. deckErr, when non-empty, is shown once as a
// banner explaining why the deck is empty.
func New(env screens.Env, deckErr string) *HomeScreen {
	h := &HomeScreen{env: env, deckErr: deckErr}

	items := []components.MenuItem{
		{Label: "TODAY'S CARDS", Key: "t", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: day.New(h.env, h.todayIdx)}
			}
		}},
		{Label: "PRACTICE", Key: "p", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: day.NewPractice(h.env, h.todayIdx)}
			}
		}},
		{Label: "HISTORY", Key: "h", Disabled: env.Events == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(h.env.Events)}
			}
		}},
		{Label: "QUIT", Key: "q", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	h.refresh()
	return h
}

func (h *HomeScreen) refresh() {
	now := time.Now()
	if h.env.Now != nil {
		now = h.env.Now()
	}
	h.todayIdx = h.env.Index.TodayIndex(now)
	h.bucket = h.env.Index.Bucket(h.todayIdx)
	h.weekday = now.Weekday().String()

	st := h.env.Progress.Load(context.Background())
	h.summary = progress.Summarize(st, h.env.Index.Cards(h.todayIdx))
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(screen.ResumedMsg); ok {
		// The deck error is shown once; later visits show the plain dashboard.
		h.deckErr = ""
		h.refresh()
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	compact := layout.IsCompactHeight(height+8) || layout.IsCompactWidth(width)
	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, h.weekday, h.bucket.Day))
	if h.deckErr != "" {
		sections = append(sections, renderDeckError(h.deckErr, cw))
	}
	if !compact {
		sections = append(sections, renderMascotBox(mascotFor(h.summary.Done, h.summary.Total), cw))
	}
	sections = append(sections, renderSummary(h.summary, cw))
	sections = append(sections, renderNextUp(h.summary.NextPending, h.summary.Total, cw))
	sections = append(sections, h.menu.View())

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Today"
}

func (h *HomeScreen) HeaderStatus() layout.HeaderStatus {
	return layout.HeaderStatus{
		Day:     h.bucket.Day,
		Done:    h.summary.Done,
		Total:   h.summary.Total,
		Percent: h.summary.Percent,
	}
}
