package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/ui/theme"
)

// CardBox wraps content in a rounded-border box of the given outer width.
func CardBox(content string, width int, focused bool) string {
	border := theme.Border
	if focused {
		border = theme.Primary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(max(width-2, 10)).
		Padding(0, 2).
		Render(content)
}

// CardFace renders a card's title and, when revealed, its lines.
// Hidden lines are shown as placeholders of the same count.
func CardFace(title string, lines []string, revealed bool) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(title))
	for _, line := range lines {
		b.WriteString("\n")
		if revealed {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		} else {
			b.WriteString(theme.Hint.Render("···"))
		}
	}
	return b.String()
}
