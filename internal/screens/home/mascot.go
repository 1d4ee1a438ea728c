package home

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // some progress today
	MascotCelebrating                      // every card of today is done
	MascotAlert                            // nothing done yet today
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ ≡≡≡ │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ ✓✓✓ │
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ▽  │
│ ··· │
└─────┘`

// mascotFor picks the variant for today's progress.
func mascotFor(done, total int) MascotVariant {
	switch {
	case total > 0 && done == total:
		return MascotCelebrating
	case total > 0 && done == 0:
		return MascotAlert
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	var fg color.Color = theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Highlight
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
