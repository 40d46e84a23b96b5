// Package layout draws the frame shared by every screen: a header bar with
// the current title and signed-in identity, the screen body, and a footer of
// key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/beplus/beplus/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 18

	// Bars are one line of text inside a rounded border.
	HeaderHeight = 3
	FooterHeight = 3

	CompactWidthThreshold  = 90
	CompactHeightThreshold = 28
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompact reports whether the full terminal is too small for the roomy
// variant of a screen.
func IsCompact(width, height int) bool {
	return width < CompactWidthThreshold || height < CompactHeightThreshold
}

// IsTooSmall reports whether the terminal is below the minimum usable size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	body := fmt.Sprintf("Be+ needs at least %d×%d\n(now %d×%d)", MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(body))
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderHeader renders the top bar. identity is the signed-in student, or
// empty when no token is stored.
func RenderHeader(title, identity string, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(" Be+")
	heading := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	whoStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if identity == "" {
		identity = "signed out"
		whoStyle = whoStyle.Italic(true)
	}
	who := whoStyle.Render("● " + identity + " ")

	// Center the title in the inner width, keeping at least one space on
	// either side when the bar is tight.
	inner := max(width-4, 0)
	used := lipgloss.Width(brand) + lipgloss.Width(heading) + lipgloss.Width(who)
	before := max((inner-lipgloss.Width(heading))/2-lipgloss.Width(brand), 1)
	after := max(inner-used-before, 1)

	line := brand + strings.Repeat(" ", before) + heading + strings.Repeat(" ", after) + who
	return bar(width).Render(line)
}

// RenderFooter renders the bottom bar of key hints.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString(" ")
	for i, h := range hints {
		if i > 0 {
			b.WriteString(descStyle.Render("  ·  "))
		}
		b.WriteString(keyStyle.Render(h.Key))
		b.WriteString(" ")
		b.WriteString(descStyle.Render(h.Description))
	}
	return bar(width).Render(b.String())
}

// RenderFrame stacks header, body and footer, padding the body so the footer
// sits on the last lines.
func RenderFrame(header, content, footer string, width, height int) string {
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(bodyHeight).MaxHeight(bodyHeight).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
