// Package screen defines what the router stacks and the optional behaviours
// a screen can opt into.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/beplus/beplus/internal/ui/layout"
)

// Screen is one page of the app. View draws only the body; the header and
// footer belong to the app frame.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Closer is called when the screen leaves the stack. Screens with requests
// in flight cancel them here and drop any result that still arrives.
type Closer interface {
	Close()
}

// InputCapturer reports whether a text field has focus, in which case esc
// goes to the field instead of navigating back.
type InputCapturer interface {
	CapturingInput() bool
}
