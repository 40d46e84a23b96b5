package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/beplus/beplus/internal/router"
	"github.com/beplus/beplus/internal/screen"
	"github.com/beplus/beplus/internal/screens/placeholder"
	"github.com/beplus/beplus/internal/ui/components"
	"github.com/beplus/beplus/internal/ui/layout"
)

// Factories build the screens reachable from the home menu. A nil factory
// opens a placeholder explaining the feature is unavailable.
type Factories struct {
	Activities func() screen.Screen
	Rockie     func() screen.Screen
	Calls      func() screen.Screen
}

// HomeScreen is the main menu.
type HomeScreen struct {
	menu     components.Menu
	signedIn bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen. signedIn selects the mascot mood.
func New(f Factories, signedIn bool) *HomeScreen {
	items := []components.MenuItem{
		{Label: "ACTIVITIES", Action: push(f.Activities, "Activities")},
		{Label: "ROCKIE PROFILE", Action: push(f.Rockie, "Rockie Profile")},
		{Label: "CALL LOG", Action: push(f.Calls, "Call Log")},
		{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	}
	return &HomeScreen{
		menu:     components.NewMenu(items),
		signedIn: signedIn,
	}
}

func push(factory func() screen.Screen, title string) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg {
			if factory == nil {
				return router.PushScreenMsg{Screen: placeholder.New(title)}
			}
			return router.PushScreenMsg{Screen: factory()}
		}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height+layout.HeaderHeight+layout.FooterHeight)
	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		mood := MascotSleepy
		if h.signedIn {
			mood = MascotHappy
		}
		sections = append(sections, renderMascotBox(mood, cw))
	}

	if !h.signedIn {
		sections = append(sections, renderSignInNote(cw))
	}

	sections = append(sections, renderMenu(h.menu.Labels(), h.menu.Selected, cw, compact))

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
