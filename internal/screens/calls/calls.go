// Package calls shows the diagnostic log of recent API calls.
package calls

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/beplus/beplus/internal/screen"
	"github.com/beplus/beplus/internal/store"
	"github.com/beplus/beplus/internal/ui/layout"
	"github.com/beplus/beplus/internal/ui/theme"
)

const pageLimit = 50

type callsLoadedMsg struct {
	owner string
	calls []store.APICallRecord
	err   error
}

// CallsScreen lists recorded API calls, newest first.
type CallsScreen struct {
	log      store.CallLog
	life     *screen.Lifetime
	calls    []store.APICallRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*CallsScreen)(nil)
var _ screen.KeyHintProvider = (*CallsScreen)(nil)
var _ screen.Closer = (*CallsScreen)(nil)

// New creates a CallsScreen reading from log.
func New(parent context.Context, log store.CallLog) *CallsScreen {
	return &CallsScreen{
		log:      log,
		life:     screen.NewLifetime(parent),
		expanded: make(map[int]bool),
	}
}

func (s *CallsScreen) Init() tea.Cmd {
	ctx, owner, log := s.life.Context(), s.life.ID(), s.log
	return func() tea.Msg {
		calls, err := log.QueryAPICalls(ctx, store.QueryOpts{Limit: pageLimit})
		return callsLoadedMsg{owner: owner, calls: calls, err: err}
	}
}

func (s *CallsScreen) Title() string {
	return "Call Log"
}

func (s *CallsScreen) Close() {
	s.life.Close()
}

func (s *CallsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Payloads"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "r", Description: "Reload"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *CallsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case callsLoadedMsg:
		if !s.life.Owns(msg.owner) {
			return s, nil
		}
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.calls = msg.calls
		s.expanded = make(map[int]bool)
		if s.selected >= len(s.calls) {
			s.selected = 0
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.calls)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		case "r":
			s.loaded = false
			return s, s.Init()
		}
	}
	return s, nil
}

func (s *CallsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading call log...")
	}
	if len(s.calls) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No API calls recorded yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, c := range s.calls {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		status := "---"
		if c.Status != 0 {
			status = fmt.Sprintf("%d", c.Status)
		}
		line := fmt.Sprintf("%s%s  %-6s %s  %-10s %4dms  %s",
			prefix, c.Timestamp.Format("Jan 02 15:04:05"), c.Method, status, c.Resource, c.LatencyMs, c.Endpoint)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == s.selected:
			style = style.Foreground(theme.Accent).Bold(true)
		case !c.Success:
			style = style.Foreground(theme.Error)
		}
		b.WriteString(style.MaxWidth(width).Render(line))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(renderDetail("request", c.RequestPayload, width))
			b.WriteString(renderDetail("response", c.ResponsePayload, width))
			if c.ErrorMessage != "" {
				b.WriteString(renderDetail("error", c.ErrorMessage, width))
			}
		}
	}

	return b.String()
}

func renderDetail(label, value string, width int) string {
	if value == "" {
		value = "(none)"
	}
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		MaxWidth(width).
		Render(fmt.Sprintf("      %-8s %s", label+":", value)) + "\n"
}
