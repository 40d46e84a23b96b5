package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/beplus/beplus/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with Be+ styling. It starts blurred so
// screen shortcuts work until the user tabs into it.
type TextInput struct {
	Model textinput.Model
	Label string
}

// NewTextInput creates a blurred text input.
func NewTextInput(label, placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{Model: ti, Label: label}
}

// Update forwards messages to the wrapped input while it has focus.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if !t.Model.Focused() {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// Focus gives the input keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has keyboard focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Value returns the trimmed input value.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// Reset clears the input.
func (t *TextInput) Reset() {
	t.Model.Reset()
}

// View renders the label and the input.
func (t TextInput) View() string {
	labelStyle := theme.Hint
	if t.Model.Focused() {
		labelStyle = theme.Label
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, labelStyle.Render(t.Label+" "), t.Model.View())
}
