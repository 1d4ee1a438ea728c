package home

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/drill/internal/deck"
	"github.com/abhisek/drill/internal/practice"
	"github.com/abhisek/drill/internal/progress"
	"github.com/abhisek/drill/internal/router"
	"github.com/abhisek/drill/internal/screen"
	"github.com/abhisek/drill/internal/screens"
	"github.com/abhisek/drill/internal/screens/day"
	"github.com/abhisek/drill/internal/screens/history"
	"github.com/abhisek/drill/internal/store"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Monday, 2024-01-01 selects bucket index 0.
var monday = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

func newEnv(t *testing.T) screens.Env {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "home.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	d := deck.Deck{
		Days: []deck.Bucket{
			{Day: 1, Cards: []deck.CardID{"1", "2", "3", "4"}},
			{Day: 2, Cards: []deck.CardID{"5"}},
		},
		Cards: []deck.Card{
			{ID: "1", Title: "Push-ups"},
			{ID: "2", Title: "Squats"},
			{ID: "3", Title: "Lunges"},
			{ID: "4", Title: "Plank"},
			{ID: "5", Title: "Rest"},
		},
	}
	return screens.Env{
		Index:    deck.NewIndex(d),
		Progress: progress.NewStore(db.KV(), nil),
		Events:   db.EventRepo(),
		Practice: practice.DefaultConfig(),
		Now:      func() time.Time { return monday },
	}
}

func TestDashboardShowsToday(t *testing.T) {
	h := New(newEnv(t), "")

	view := h.View(80, 40)
	assert.Contains(t, view, "Monday")
	assert.Contains(t, view, "Day 1")
	assert.Contains(t, view, "0/4 done")
	assert.Contains(t, view, "1. Push-ups")
	assert.Contains(t, view, "3. Lunges")
	assert.NotContains(t, view, "Plank")

	st := h.HeaderStatus()
	assert.Equal(t, 1, st.Day)
	assert.Equal(t, 4, st.Total)
}

func TestDashboardRefreshesOnResume(t *testing.T) {
	env := newEnv(t)
	h := New(env, "")

	ctx := context.Background()
	for _, id := range []deck.CardID{"1", "2", "3", "4"} {
		require.NoError(t, env.Progress.MarkStatus(ctx, id, progress.StatusDone))
	}
	assert.Equal(t, 0, h.HeaderStatus().Done)

	h.Update(screen.ResumedMsg{})
	assert.Equal(t, 4, h.HeaderStatus().Done)
	assert.Equal(t, 100, h.HeaderStatus().Percent)
	assert.Contains(t, h.View(80, 40), "All of today's cards are done.")
	assert.Equal(t, MascotCelebrating, mascotFor(4, 4))
}

func TestDeckErrorShownOnce(t *testing.T) {
	h := New(newEnv(t), "could not load deck deck.json: missing")
	assert.Contains(t, h.View(80, 40), "could not load deck")

	h.Update(screen.ResumedMsg{})
	assert.NotContains(t, h.View(80, 40), "could not load deck")
}

func TestMenuPushesScreens(t *testing.T) {
	h := New(newEnv(t), "")

	_, cmd := h.Update(keyPress('t'))
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &day.DayScreen{}, push.Screen)

	_, cmd = h.Update(keyPress('h'))
	require.NotNil(t, cmd)
	push, ok = cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &history.HistoryScreen{}, push.Screen)
}

func TestEmptyDeckDashboard(t *testing.T) {
	env := newEnv(t)
	env.Index = deck.NewIndex(deck.Deck{})
	h := New(env, "")

	view := h.View(80, 40)
	assert.Contains(t, view, "No cards scheduled for today.")
	assert.Equal(t, MascotIdle, mascotFor(0, 0))
}

func TestMascotFor(t *testing.T) {
	assert.Equal(t, MascotAlert, mascotFor(0, 3))
	assert.Equal(t, MascotIdle, mascotFor(1, 3))
	assert.Equal(t, MascotCelebrating, mascotFor(3, 3))
}
