package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/ui/theme"
)

// DayPills renders one pill per day with the active one highlighted.
func DayPills(days []int, active, width int) string {
	pills := make([]string, 0, len(days))
	for i, d := range days {
		label := fmt.Sprintf("Day %d", d)
		if i == active {
			pills = append(pills, theme.PillActive.Render(label))
		} else {
			pills = append(pills, theme.PillInactive.Render(label))
		}
	}
	row := strings.Join(pills, " ")
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(row)
}
