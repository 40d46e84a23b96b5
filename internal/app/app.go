package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/beplus/beplus/internal/router"
	"github.com/beplus/beplus/internal/screen"
	"github.com/beplus/beplus/internal/screens/welcome"
	"github.com/beplus/beplus/internal/ui/layout"
)

// Options configures the root model.
type Options struct {
	// Home builds the home screen.
	Home func() screen.Screen
	// Splash shows the welcome animation before Home.
	Splash bool
	// Identity is shown in the header; empty means signed out.
	Identity string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	identity string
	width    int
	height   int
}

func newAppModel(opts Options) AppModel {
	var initial screen.Screen
	if opts.Splash {
		initial = welcome.New(opts.Home)
	} else {
		initial = opts.Home()
	}
	return AppModel{
		router:   router.New(initial),
		identity: opts.Identity,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.CloseAll()
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturingInput() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full frame as a string.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	title := ""
	if active := m.router.Active(); active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.identity, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	bodyHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return layout.RenderFrame(header, m.router.View(m.width, bodyHeight), footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits. Every screen
// still on the stack is closed on the way out.
func Run(ctx context.Context, opts Options) error {
	if opts.Home == nil {
		return fmt.Errorf("app: no home screen")
	}
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	final, err := p.Run()
	if m, ok := final.(AppModel); ok {
		m.router.CloseAll()
	}
	if err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
