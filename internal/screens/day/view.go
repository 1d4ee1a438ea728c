package day

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/progress"
	"github.com/abhisek/drill/internal/ui/components"
	"github.com/abhisek/drill/internal/ui/layout"
	"github.com/abhisek/drill/internal/ui/theme"
)

func (s *DayScreen) View(width, height int) string {
	cw := min(width-4, 76)
	var sections []string

	if !layout.IsCompactHeight(height + 8) {
		sections = append(sections, components.DayPills(s.env.DayNumbers(), s.dayIndex, cw))
	}

	sum := progress.Summarize(s.state, s.cards)
	sections = append(sections, components.NewProgressBar(
		fmt.Sprintf("Day %d  %d/%d", s.bucket.Day, sum.Done, sum.Total),
		sum.Percent, true, cw,
	).View())

	if line := s.renderStatusLine(); line != "" {
		sections = append(sections, line)
	}

	switch {
	case s.jump != nil:
		sections = append(sections, s.jump.View())
	case s.confirmReset:
		sections = append(sections, theme.Again.Render(
			fmt.Sprintf("Clear marks and reveals for all %d cards of Day %d? (y/n)", len(s.bucket.Cards), s.bucket.Day)))
	}

	if s.session.Active() {
		sections = append(sections, s.renderPractice(cw))
	} else {
		sections = append(sections, s.renderCardList(cw))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(content)
}

func (s *DayScreen) renderStatusLine() string {
	if s.errMsg != "" {
		return theme.ErrorText.Render("Could not save: " + s.errMsg)
	}
	if s.notice != "" {
		return theme.Hint.Render(s.notice)
	}
	return ""
}

func (s *DayScreen) renderCardList(cw int) string {
	if len(s.cards) == 0 {
		return theme.Hint.Render("No cards for this day.")
	}

	var b strings.Builder
	for i, c := range s.cards {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		b.WriteString(style.Render(prefix) + statusMark(s.state.StatusOf(c.ID)) + " " + style.Render(c.Title))
		b.WriteString("\n")
	}

	if c, ok := s.selectedCard(); ok {
		b.WriteString("\n")
		b.WriteString(components.CardBox(components.CardFace(c.Title, c.Lines, s.state.Revealed(c.ID)), cw, false))
	}
	return b.String()
}

func (s *DayScreen) renderPractice(cw int) string {
	c, ok := s.session.Current()
	if !ok {
		return theme.Hint.Render("Nothing to practice for this day. Press S to stop.")
	}

	counter := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Card %d of %d", s.session.Pointer()+1, len(s.cards)))
	timer := lipgloss.NewStyle().Foreground(timerColor(s.session.Seconds())).Bold(true).Render(
		fmt.Sprintf("%2ds", s.session.Seconds()))
	gap := max(cw-lipgloss.Width(counter)-lipgloss.Width(timer), 1)
	top := counter + strings.Repeat(" ", gap) + timer

	face := statusMark(s.state.StatusOf(c.ID)) + " " +
		components.CardFace(c.Title, c.Lines, s.state.Revealed(c.ID))

	return top + "\n" + components.CardBox(face, cw, true)
}

func statusMark(st progress.Status) string {
	switch st {
	case progress.StatusDone:
		return theme.Done.Render("✓")
	case progress.StatusAgain:
		return theme.Again.Render("↺")
	default:
		return theme.Hint.Render("·")
	}
}

func timerColor(seconds int) color.Color {
	if seconds <= 5 {
		return theme.Error
	}
	return theme.Info
}
