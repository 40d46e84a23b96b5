package home

import (
	"charm.land/lipgloss/v2"

	"github.com/beplus/beplus/internal/ui/theme"
)

// MascotMood selects which Rockie art to display.
type MascotMood int

const (
	MascotHappy  MascotMood = iota // signed in
	MascotSleepy                   // no token stored
)

const mascotHappy = `   ▄▄███▄▄
 ▄█ ◕   ◕ █▄
 ██   ▿   ██
  ▀███████▀`

const mascotSleepy = `   ▄▄███▄▄   z
 ▄█ ‒   ‒ █▄ z
 ██   ◡   ██
  ▀███████▀`

// RenderMascot returns the Rockie art for the given mood.
func RenderMascot(mood MascotMood) string {
	art, fg := mascotHappy, theme.Accent
	if mood == MascotSleepy {
		art, fg = mascotSleepy, theme.TextDim
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
