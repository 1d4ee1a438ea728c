package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/deck"
	"github.com/abhisek/drill/internal/progress"
	"github.com/abhisek/drill/internal/ui/components"
	"github.com/abhisek/drill/internal/ui/theme"
)

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for frame border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderTitle(cw int, weekday string, day int) string {
	title := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true).Render("d r i l l")
	sub := theme.Hint.Render(fmt.Sprintf("%s · Day %d", weekday, day))
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(title + "\n" + sub)
}

// renderSummary shows today's done/total/percent in a bordered box.
func renderSummary(sum progress.DaySummary, cw int) string {
	bar := components.NewProgressBar(
		fmt.Sprintf("%d/%d done", sum.Done, sum.Total),
		sum.Percent, true, cw-4,
	).View()

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Info).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(bar)
}

// renderNextUp lists the next pending cards of today.
func renderNextUp(pending []deck.Card, total, cw int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("NEXT UP"))
	b.WriteString("\n")

	switch {
	case total == 0:
		b.WriteString(theme.Hint.Render("No cards scheduled for today."))
	case len(pending) == 0:
		b.WriteString(theme.Done.Render("All of today's cards are done."))
	default:
		for i, c := range pending {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(theme.Body.Render(fmt.Sprintf("%d. %s", i+1, c.Title)))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Left).
		Render(b.String())
}

func renderDeckError(msg string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Error).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ " + msg)
}

func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}

// renderFrame wraps content in a double-border frame, centered in the
// given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
