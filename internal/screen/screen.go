package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/drill/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is implemented by screens that show a day summary in
// the header.
type StatusProvider interface {
	HeaderStatus() layout.HeaderStatus
}

// Disposer is implemented by screens that own timers or other resources.
// The router calls Dispose when the screen leaves the stack.
type Disposer interface {
	Dispose()
}

// ResumedMsg is delivered to a screen when it becomes active again after
// the screen above it was popped.
type ResumedMsg struct{}

// InputCapturer is implemented by screens that use Esc themselves while a
// prompt or dialog is open.
type InputCapturer interface {
	CapturingInput() bool
}
