package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/beplus/beplus/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ███████╗   ██╗
 ██╔══██╗██╔════╝   ██║
 ██████╔╝█████╗ ████████╗
 ██╔══██╗██╔══╝ ╚══██╔══╝
 ██████╔╝███████╗  ██║
 ╚═════╝ ╚══════╝  ╚═╝`

const bannerCompact = "B E +"

// RenderBanner returns the Be+ banner, compact below 30 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true)

	if width < 30 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
