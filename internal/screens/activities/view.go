package activities

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/beplus/beplus/internal/reconcile"
	"github.com/beplus/beplus/internal/ui/components"
	"github.com/beplus/beplus/internal/ui/theme"
)

func (s *ActivitiesScreen) View(width, height int) string {
	var sections []string

	if banner := components.RenderErrorBanner(s.state.Err, width); banner != "" {
		sections = append(sections, banner)
	}
	if s.notice != "" {
		sections = append(sections, components.RenderNotice(s.notice))
	}

	if s.state.IsLoading() {
		sections = append(sections, components.RenderLoading("activities"))
	} else {
		sections = append(sections, s.renderList(width))
	}

	sections = append(sections, "", s.input.View())
	if s.warning != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(s.warning))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(sections, "\n"))
}

func (s *ActivitiesScreen) renderList(width int) string {
	items := s.state.Data
	if len(items) == 0 {
		if s.state.Phase == reconcile.Loaded {
			return theme.Hint.Render("No activities yet. Press tab to add one.")
		}
		return ""
	}

	var b strings.Builder
	for i, a := range items {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		line := fmt.Sprintf("%s%-20s %s", prefix, a.ActivityType, a.DataString())
		b.WriteString(style.MaxWidth(width - 4).Render(line))
		b.WriteString("  ")
		b.WriteString(theme.Hint.Render(shortID(a.ActivityID)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
