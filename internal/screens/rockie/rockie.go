// Package rockie is the Rockie profile screen.
package rockie

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/beplus/beplus/internal/reconcile"
	"github.com/beplus/beplus/internal/resource"
	"github.com/beplus/beplus/internal/screen"
	"github.com/beplus/beplus/internal/ui/components"
	"github.com/beplus/beplus/internal/ui/layout"
	"github.com/beplus/beplus/internal/ui/theme"
)

// Service is the subset of resource.Rockies the screen uses.
type Service interface {
	Get(ctx context.Context) reconcile.Outcome[*resource.Rockie]
	CreateDefault(ctx context.Context, name string) reconcile.Outcome[struct{}]
}

type loadedMsg struct {
	owner       string
	outcome     reconcile.Outcome[*resource.Rockie]
	refresh     bool
	mutationErr string
}

type createdMsg struct {
	owner   string
	outcome reconcile.Outcome[struct{}]
}

// RockieScreen shows the singleton profile or the empty state.
type RockieScreen struct {
	svc         Service
	life        *screen.Lifetime
	state       reconcile.State[*resource.Rockie]
	defaultName string
	create      components.Button
}

var _ screen.Screen = (*RockieScreen)(nil)
var _ screen.KeyHintProvider = (*RockieScreen)(nil)
var _ screen.Closer = (*RockieScreen)(nil)

// New creates the screen. defaultName names a rockie created from the empty state.
func New(parent context.Context, svc Service, defaultName string) *RockieScreen {
	s := &RockieScreen{
		svc:         svc,
		life:        screen.NewLifetime(parent),
		defaultName: defaultName,
	}
	s.create = components.NewButton("Create Rockie", "c", false, s.createDefault)
	return s
}

func (s *RockieScreen) Init() tea.Cmd {
	return s.fetch()
}

func (s *RockieScreen) Title() string {
	return "Rockie Profile"
}

// Close cancels the outstanding request and drops late results.
func (s *RockieScreen) Close() {
	s.life.Close()
}

// State exposes the view state for rendering tests.
func (s *RockieScreen) State() reconcile.State[*resource.Rockie] {
	return s.state
}

func (s *RockieScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "r", Description: "Refresh"},
		{Key: "x", Description: "Dismiss"},
		{Key: "Esc", Description: "Back"},
	}
	if s.create.Active {
		hints = append([]layout.KeyHint{{Key: "c", Description: "Create"}}, hints...)
	}
	return hints
}

func (s *RockieScreen) fetch() tea.Cmd {
	if !s.state.Begin() {
		return nil
	}
	s.syncButton()
	return s.getCmd(false, "")
}

func (s *RockieScreen) getCmd(refresh bool, mutationErr string) tea.Cmd {
	ctx, owner, svc := s.life.Context(), s.life.ID(), s.svc
	return func() tea.Msg {
		return loadedMsg{owner: owner, outcome: svc.Get(ctx), refresh: refresh, mutationErr: mutationErr}
	}
}

func (s *RockieScreen) createDefault() tea.Cmd {
	if !s.state.Begin() {
		return nil
	}
	s.syncButton()
	ctx, owner, svc, name := s.life.Context(), s.life.ID(), s.svc, s.defaultName
	return func() tea.Msg {
		return createdMsg{owner: owner, outcome: svc.CreateDefault(ctx, name)}
	}
}

// syncButton enables creation only in the settled empty state.
func (s *RockieScreen) syncButton() {
	s.create.Active = s.state.Phase == reconcile.Missing
}

func (s *RockieScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if !s.life.Owns(msg.owner) {
			return s, nil
		}
		if msg.refresh {
			s.state.Refresh(msg.outcome, msg.mutationErr)
		} else {
			s.state.Apply(msg.outcome)
		}
		s.syncButton()
		return s, nil

	case createdMsg:
		if !s.life.Owns(msg.owner) {
			return s, nil
		}
		mutationErr := ""
		if msg.outcome.Class == reconcile.Failed {
			mutationErr = msg.outcome.Message
		}
		return s, s.getCmd(true, mutationErr)

	case tea.KeyPressMsg:
		switch msg.String() {
		case "r":
			return s, s.fetch()
		case "x":
			s.state.DismissError()
			return s, nil
		}
		var cmd tea.Cmd
		s.create, cmd = s.create.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *RockieScreen) View(width, height int) string {
	var sections []string

	if banner := components.RenderErrorBanner(s.state.Err, width); banner != "" {
		sections = append(sections, banner)
	}

	switch {
	case s.state.IsLoading():
		sections = append(sections, components.RenderLoading("Rockie data"))
	case s.state.Data != nil:
		sections = append(sections, renderProfile(s.state.Data))
	case s.state.Phase == reconcile.Missing:
		sections = append(sections,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(resource.NoRockieMessage),
			"",
			s.create.View(),
		)
	}

	content := strings.Join(sections, "\n")
	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

func renderProfile(r *resource.Rockie) string {
	rows := []struct{ label, value string }{
		{"Name", r.Name()},
		{"Level", r.LevelLabel()},
		{"Experience", r.ExperienceLabel()},
		{"Evolution", r.EvolutionLabel()},
	}
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(theme.Label.Render(row.label + ":"))
		b.WriteString("\n")
		b.WriteString(theme.Value.Render("  " + row.value))
		b.WriteString("\n")
	}
	return theme.Card.Render(strings.TrimRight(b.String(), "\n"))
}
