// Package welcome is the splash shown at startup. It stays until a key is
// pressed and then hands the stack over to the home screen.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/beplus/beplus/internal/router"
	"github.com/beplus/beplus/internal/screen"
	"github.com/beplus/beplus/internal/ui/theme"
)

const frameRate = 100 * time.Millisecond

// Frame counts at which each part of the splash appears. The counter stops
// advancing at lastFrame so an idle splash does not grow unbounded.
const (
	dustFrame   = 4
	bannerFrame = 12
	lastFrame   = 30
)

const rockieArt = `    ▄▄█████▄▄
  ▄█▀ ◕   ◕ ▀█▄
 ██     ▿     ██
  ▀█▄▄▄▄▄▄▄▄▄█▀`

type frameMsg struct{}

type WelcomeScreen struct {
	next  func() screen.Screen
	frame int
	done  bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New returns a splash that replaces itself with next() on the first key.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return nextFrame() }

func nextFrame() tea.Cmd {
	return tea.Tick(frameRate, func(time.Time) tea.Msg { return frameMsg{} })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if w.done {
		return w, nil
	}
	switch msg.(type) {
	case frameMsg:
		w.frame = min(w.frame+1, lastFrame)
		return w, nextFrame()
	case tea.KeyPressMsg:
		w.done = true
		home := w.next()
		return w, func() tea.Msg { return router.ReplaceScreenMsg{Screen: home} }
	}
	return w, nil
}

func (w *WelcomeScreen) View(width, height int) string {
	art := strings.Split(lipgloss.NewStyle().Foreground(theme.Accent).Render(rockieArt), "\n")
	if w.frame >= dustFrame {
		speck := "·"
		if w.frame%2 == 1 {
			speck = "•"
		}
		speck = lipgloss.NewStyle().Foreground(theme.TextDim).Render(speck)
		art[2] = speck + "  " + art[2] + "  " + speck
	}

	parts := []string{strings.Join(art, "\n")}
	if w.frame >= bannerFrame {
		parts = append(parts,
			"", RenderBanner(width),
			"", lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Move more, grow your Rockie!"),
			"", theme.Hint.Render("press any key to continue"),
		)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(parts, "\n"))
}
