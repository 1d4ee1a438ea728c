package components

import (
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/ui/theme"
)

// NumberInput is a one-line prompt that only accepts digits.
type NumberInput struct {
	Model  textinput.Model
	Prompt string
	errMsg string
}

// NewNumberInput creates a focused numeric prompt.
func NewNumberInput(prompt, placeholder string, maxDigits int) NumberInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	if maxDigits > 0 {
		ti.CharLimit = maxDigits
	}
	return NumberInput{Model: ti, Prompt: prompt}
}

// Init returns the initial command.
func (n NumberInput) Init() tea.Cmd {
	return n.Model.Focus()
}

// Update forwards messages to the text input, dropping non-digit keys.
func (n NumberInput) Update(msg tea.Msg) (NumberInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if len(key) == 1 && (key[0] < '0' || key[0] > '9') {
			return n, nil
		}
	}

	var cmd tea.Cmd
	n.Model, cmd = n.Model.Update(msg)
	n.errMsg = ""
	return n, cmd
}

// Int parses the current value.
func (n NumberInput) Int() (int, error) {
	return strconv.Atoi(n.Model.Value())
}

// Value returns the raw input.
func (n NumberInput) Value() string {
	return n.Model.Value()
}

// SetError shows msg under the prompt until the next edit.
func (n *NumberInput) SetError(msg string) {
	n.errMsg = msg
}

// View renders the prompt.
func (n NumberInput) View() string {
	view := lipgloss.NewStyle().Foreground(theme.Text).Render(n.Prompt) + " " + n.Model.View()
	if n.errMsg != "" {
		view += "\n" + theme.ErrorText.Render(n.errMsg)
	}
	return view
}
