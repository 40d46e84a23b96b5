package components

import (
	"charm.land/lipgloss/v2"

	"github.com/beplus/beplus/internal/ui/theme"
)

// RenderErrorBanner renders a dismissible error. It returns "" for an
// empty message so callers can render it unconditionally.
func RenderErrorBanner(message string, width int) string {
	if message == "" {
		return ""
	}
	w := width - 4
	if w < 10 {
		w = 10
	}
	body := message + "\n" + theme.Hint.Render("press x to dismiss")
	return theme.ErrorBanner.Width(w).Render(body)
}

// RenderNotice renders a one-line success notice.
func RenderNotice(message string) string {
	if message == "" {
		return ""
	}
	return theme.Notice.Render("✓ " + message)
}

// RenderLoading renders the loading line.
func RenderLoading(what string) string {
	return lipgloss.NewStyle().Inherit(theme.Loading).Render("⋯ Loading " + what + "...")
}
