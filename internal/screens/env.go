// Package screens holds the dependencies shared by the TUI screens.
package screens

import (
	"log/slog"
	"time"

	"github.com/abhisek/drill/internal/deck"
	"github.com/abhisek/drill/internal/practice"
	"github.com/abhisek/drill/internal/progress"
	"github.com/abhisek/drill/internal/store"
)

// Env is passed to every screen constructor.
type Env struct {
	Index    *deck.Index
	Progress *progress.Store
	Events   store.EventRepo
	Practice practice.Config
	Logger   *slog.Logger
	Now      func() time.Time
}

// TodayIndex is the bucket index for the current date.
func (e Env) TodayIndex() int {
	now := time.Now()
	if e.Now != nil {
		now = e.Now()
	}
	return e.Index.TodayIndex(now)
}

// DayNumbers lists the day label of every selectable day slot.
func (e Env) DayNumbers() []int {
	n := e.Index.DayCount()
	days := make([]int, n)
	for i := range days {
		days[i] = e.Index.Bucket(i).Day
	}
	return days
}
