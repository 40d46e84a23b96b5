package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/beplus/beplus/internal/ui/theme"
)

// Button is an action bound to a single key. A disabled button renders
// greyed out and ignores its key.
type Button struct {
	Label   string
	Key     string
	Active  bool
	OnPress func() tea.Cmd
}

func NewButton(label, key string, active bool, onPress func() tea.Cmd) Button {
	return Button{Label: label, Key: key, Active: active, OnPress: onPress}
}

func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || !b.Active || b.OnPress == nil || key.String() != b.Key {
		return b, nil
	}
	return b, b.OnPress()
}

func (b Button) View() string {
	style := theme.ButtonInactive
	if b.Active {
		style = theme.ButtonActive
	}
	return style.Render("▸ " + b.Label + " [" + b.Key + "]")
}
