// Package activities is the screen listing, adding and deleting activities.
package activities

import (
	"context"
	"encoding/json"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/beplus/beplus/internal/reconcile"
	"github.com/beplus/beplus/internal/resource"
	"github.com/beplus/beplus/internal/screen"
	"github.com/beplus/beplus/internal/ui/components"
	"github.com/beplus/beplus/internal/ui/layout"
)

const noticeDuration = 3 * time.Second

// Service is the subset of resource.Activities the screen uses.
type Service interface {
	List(ctx context.Context) reconcile.Outcome[[]resource.Activity]
	Create(ctx context.Context, activityType string, data json.RawMessage) reconcile.Outcome[struct{}]
	Delete(ctx context.Context, id string) reconcile.Outcome[struct{}]
}

// ActivitiesScreen shows the activity list bound to its view state.
type ActivitiesScreen struct {
	svc      Service
	life     *screen.Lifetime
	state    reconcile.State[[]resource.Activity]
	selected int
	input    components.TextInput
	warning  string
	notice   string
	noticeN  int
}

var _ screen.Screen = (*ActivitiesScreen)(nil)
var _ screen.KeyHintProvider = (*ActivitiesScreen)(nil)
var _ screen.Closer = (*ActivitiesScreen)(nil)
var _ screen.InputCapturer = (*ActivitiesScreen)(nil)

// New creates the screen. Requests are bound to a context derived from parent.
func New(parent context.Context, svc Service) *ActivitiesScreen {
	return &ActivitiesScreen{
		svc:   svc,
		life:  screen.NewLifetime(parent),
		input: components.NewTextInput("New activity:", "e.g. running", 64),
	}
}

func (s *ActivitiesScreen) Init() tea.Cmd {
	return s.fetch()
}

func (s *ActivitiesScreen) Title() string {
	return "Activities"
}

// Close cancels the outstanding request and drops late results.
func (s *ActivitiesScreen) Close() {
	s.life.Close()
}

// CapturingInput reports whether keys go to the text field.
func (s *ActivitiesScreen) CapturingInput() bool {
	return s.input.Focused()
}

// State exposes the view state for rendering tests.
func (s *ActivitiesScreen) State() reconcile.State[[]resource.Activity] {
	return s.state
}

func (s *ActivitiesScreen) KeyHints() []layout.KeyHint {
	if s.input.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Add"},
			{Key: "Tab/Esc", Description: "Leave field"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Tab", Description: "Type"},
		{Key: "d", Description: "Delete"},
		{Key: "r", Description: "Refresh"},
		{Key: "x", Description: "Dismiss"},
		{Key: "Esc", Description: "Back"},
	}
}

// fetch starts a plain list fetch unless a request is outstanding.
func (s *ActivitiesScreen) fetch() tea.Cmd {
	if !s.state.Begin() {
		return nil
	}
	return s.listCmd(false, "", "")
}

func (s *ActivitiesScreen) listCmd(refresh bool, mutationErr, notice string) tea.Cmd {
	ctx, owner, svc := s.life.Context(), s.life.ID(), s.svc
	return func() tea.Msg {
		return loadedMsg{
			owner:       owner,
			outcome:     svc.List(ctx),
			refresh:     refresh,
			mutationErr: mutationErr,
			notice:      notice,
		}
	}
}

func (s *ActivitiesScreen) submit() tea.Cmd {
	activityType := s.input.Value()
	if activityType == "" {
		s.warning = resource.EmptyActivityTypeMessage
		return nil
	}
	if !s.state.Begin() {
		return nil
	}
	s.warning = ""
	s.input.Reset()

	ctx, owner, svc := s.life.Context(), s.life.ID(), s.svc
	return func() tea.Msg {
		return mutatedMsg{
			owner:   owner,
			outcome: svc.Create(ctx, activityType, nil),
			notice:  resource.ActivityAddedMessage,
		}
	}
}

func (s *ActivitiesScreen) deleteSelected() tea.Cmd {
	items := s.state.Data
	if s.selected < 0 || s.selected >= len(items) {
		return nil
	}
	if !s.state.Begin() {
		return nil
	}
	id := items[s.selected].ActivityID

	ctx, owner, svc := s.life.Context(), s.life.ID(), s.svc
	return func() tea.Msg {
		return mutatedMsg{
			owner:   owner,
			outcome: svc.Delete(ctx, id),
			notice:  resource.ActivityDeletedMessage,
		}
	}
}

func (s *ActivitiesScreen) showNotice(text string) tea.Cmd {
	s.noticeN++
	s.notice = text
	owner, seq := s.life.ID(), s.noticeN
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{owner: owner, seq: seq}
	})
}

func (s *ActivitiesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
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
		s.clampSelection()
		if msg.notice != "" {
			return s, s.showNotice(msg.notice)
		}
		return s, nil

	case mutatedMsg:
		if !s.life.Owns(msg.owner) {
			return s, nil
		}
		// Success or failure, the list is re-fetched once; the state
		// stays Loading until that fetch resolves.
		mutationErr, notice := "", ""
		if msg.outcome.Class == reconcile.Failed {
			mutationErr = msg.outcome.Message
		} else {
			notice = msg.notice
		}
		return s, s.listCmd(true, mutationErr, notice)

	case noticeExpiredMsg:
		if s.life.Owns(msg.owner) && msg.seq == s.noticeN {
			s.notice = ""
		}
		return s, nil

	case tea.KeyPressMsg:
		if s.input.Focused() {
			return s, s.updateInput(msg)
		}
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *ActivitiesScreen) updateInput(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "esc":
		s.input.Blur()
		return nil
	case "enter":
		return s.submit()
	}
	s.warning = ""
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *ActivitiesScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.state.Data)-1 {
			s.selected++
		}
	case "tab":
		return s.input.Focus()
	case "x":
		s.state.DismissError()
	case "r":
		return s.fetch()
	case "d":
		return s.deleteSelected()
	}
	return nil
}

func (s *ActivitiesScreen) clampSelection() {
	if s.selected >= len(s.state.Data) {
		s.selected = len(s.state.Data) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}
