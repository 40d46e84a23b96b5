// Package router keeps the navigation stack of screens. Only the top screen
// receives messages and is drawn.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/beplus/beplus/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg returns to the previous screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the top screen for Screen without growing the stack.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

type Router struct {
	screens []screen.Screen
}

func New(initial screen.Screen) *Router {
	return &Router{screens: []screen.Screen{initial}}
}

func (r *Router) top() int { return len(r.screens) - 1 }

// Init starts the initial screen.
func (r *Router) Init() tea.Cmd {
	if s := r.Active(); s != nil {
		return s.Init()
	}
	return nil
}

// Active is the screen on top of the stack, or nil for an empty router.
func (r *Router) Active() screen.Screen {
	if len(r.screens) == 0 {
		return nil
	}
	return r.screens[r.top()]
}

func (r *Router) Depth() int { return len(r.screens) }

func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.screens = append(r.screens, s)
	return s.Init()
}

// Pop closes the top screen. The root screen is never popped.
func (r *Router) Pop() tea.Cmd {
	if len(r.screens) < 2 {
		return nil
	}
	closed := r.screens[r.top()]
	r.screens[r.top()] = nil
	r.screens = r.screens[:r.top()]
	release(closed)
	return nil
}

// Replace closes the top screen and installs s in its slot.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.screens) == 0 {
		return r.Push(s)
	}
	release(r.screens[r.top()])
	r.screens[r.top()] = s
	return s.Init()
}

// CloseAll releases every screen, top first. Used on quit.
func (r *Router) CloseAll() {
	for i := r.top(); i >= 0; i-- {
		release(r.screens[i])
	}
}

func release(s screen.Screen) {
	if c, ok := s.(screen.Closer); ok {
		c.Close()
	}
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch nav := msg.(type) {
	case PushScreenMsg:
		return r.Push(nav.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(nav.Screen)
	}

	if len(r.screens) == 0 {
		return nil
	}
	next, cmd := r.screens[r.top()].Update(msg)
	r.screens[r.top()] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if s := r.Active(); s != nil {
		return s.View(width, height)
	}
	return ""
}
