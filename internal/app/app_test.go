package app

import (
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
	"github.com/abhisek/drill/internal/screens"
	"github.com/abhisek/drill/internal/screens/day"
	"github.com/abhisek/drill/internal/store"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	d := deck.Deck{
		Days:  []deck.Bucket{{Day: 1, Cards: []deck.CardID{"1"}}},
		Cards: []deck.Card{{ID: "1", Title: "Only card"}},
	}
	return Options{Env: screens.Env{
		Index:    deck.NewIndex(d),
		Progress: progress.NewStore(db.KV(), nil),
		Events:   db.EventRepo(),
		Practice: practice.DefaultConfig(),
		Now:      func() time.Time { return time.Date(2024, time.January, 3, 9, 0, 0, 0, time.UTC) },
	}}
}

func update(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func TestViewBeforeWindowSize(t *testing.T) {
	m := newAppModel(testOptions(t))
	assert.Empty(t, m.render())
}

func TestViewTooSmall(t *testing.T) {
	m := newAppModel(testOptions(t))
	m, _ = update(m, tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, m.render(), "Window too small")
}

func TestViewShowsHeaderStatus(t *testing.T) {
	m := newAppModel(testOptions(t))
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	content := m.render()
	assert.Contains(t, content, "drill")
	assert.Contains(t, content, "Day 1")
	assert.Contains(t, content, "Only card")
}

func TestEscPopsToHome(t *testing.T) {
	opts := testOptions(t)
	m := newAppModel(opts)

	m, _ = update(m, router.PushScreenMsg{Screen: day.New(opts.Env, 0)})
	require.Equal(t, 2, m.router.Depth())

	m, cmd := update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	m, _ = update(m, cmd())
	assert.Equal(t, 1, m.router.Depth())

	// Esc on the root screen does nothing.
	_, cmd = update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
}

func TestEscIsLeftToCapturingScreen(t *testing.T) {
	opts := testOptions(t)
	m := newAppModel(opts)

	m, _ = update(m, router.PushScreenMsg{Screen: day.New(opts.Env, 0)})
	m, _ = update(m, tea.KeyPressMsg{Code: 'g', Text: "g"})

	m, _ = update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, 2, m.router.Depth(), "esc closes the prompt, not the screen")
}

func TestCtrlCQuits(t *testing.T) {
	m := newAppModel(testOptions(t))
	_, cmd := update(m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}
