package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aistack/internal/screen"
)

// ReplaceScreenMsg moves the wizard forward to Screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// ResetScreenMsg abandons whatever is showing and starts over with Screen.
type ResetScreenMsg struct {
	Screen screen.Screen
}

// Router owns the one screen the kiosk is showing. The wizard is linear, so
// there is no back stack: every transition disposes the outgoing screen
// before the incoming one is initialized.
//
// The last forwarded window size is replayed to every incoming screen.
type Router struct {
	active      screen.Screen
	transitions int
	size        *tea.WindowSizeMsg
}

func New(initial screen.Screen) *Router {
	return &Router{active: initial}
}

// Replace disposes the active screen and initializes s in its place.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	var out tea.Cmd
	if r.active != nil {
		out = dispose(r.active)
	}
	r.active = s
	r.transitions++

	var sized tea.Cmd
	if r.size != nil {
		r.active, sized = r.active.Update(*r.size)
	}
	return tea.Batch(out, sized, r.active.Init())
}

// Reset returns to s, disposing the active screen first.
func (r *Router) Reset(s screen.Screen) tea.Cmd {
	return r.Replace(s)
}

func dispose(s screen.Screen) tea.Cmd {
	if d, ok := s.(screen.Disposer); ok {
		return d.Dispose()
	}
	return nil
}

func (r *Router) Active() screen.Screen {
	return r.active
}

// Transitions counts screen changes since New.
func (r *Router) Transitions() int {
	return r.transitions
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case ResetScreenMsg:
		return r.Reset(msg.Screen)
	case tea.WindowSizeMsg:
		r.size = &msg
	}
	if r.active == nil {
		return nil
	}
	updated, cmd := r.active.Update(msg)
	r.active = updated
	return cmd
}

func (r *Router) View(width, height int) string {
	if r.active == nil {
		return ""
	}
	return r.active.View(width, height)
}
