package day

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// practiceTickMsg is one second of countdown for the session generation
// that scheduled it.
type practiceTickMsg struct {
	gen uint64
}

// tickCmd schedules the next countdown tick for gen.
func tickCmd(gen uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return practiceTickMsg{gen: gen}
	})
}
