// Package ready is the short "stack ready" transition between the game and
// the results.
package ready

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aistack/internal/screen"
	"github.com/abhisek/aistack/internal/ui/components"
	"github.com/abhisek/aistack/internal/ui/layout"
	"github.com/abhisek/aistack/internal/ui/theme"
)

const tickInterval = 100 * time.Millisecond

type tickMsg struct{}

// Navigator advances the wizard.
type Navigator interface {
	Next() tea.Cmd
}

// ReadyScreen animates for a fixed duration, then advances on its own.
type ReadyScreen struct {
	nav      Navigator
	name     string
	duration time.Duration
	elapsed  time.Duration
	spinner  spinner.Model
	done     bool
}

var _ screen.Screen = (*ReadyScreen)(nil)
var _ screen.KeyHintProvider = (*ReadyScreen)(nil)

// New creates the transition for the stack called name.
func New(nav Navigator, name string, duration time.Duration) *ReadyScreen {
	return &ReadyScreen{
		nav:      nav,
		name:     name,
		duration: duration,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
		),
	}
}

func (r *ReadyScreen) Init() tea.Cmd {
	return tea.Batch(r.spinner.Tick, tick())
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (r *ReadyScreen) Title() string {
	return "Stack Ready"
}

func (r *ReadyScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: "Skip"}}
}

func (r *ReadyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		r.elapsed += tickInterval
		if r.elapsed >= r.duration {
			return r, r.finish()
		}
		return r, tick()

	case spinner.TickMsg:
		if r.done {
			return r, nil
		}
		var cmd tea.Cmd
		r.spinner, cmd = r.spinner.Update(msg)
		return r, cmd

	case tea.KeyPressMsg:
		if msg.String() == "enter" {
			return r, r.finish()
		}
	}
	return r, nil
}

func (r *ReadyScreen) finish() tea.Cmd {
	if r.done {
		return nil
	}
	r.done = true
	return r.nav.Next()
}

// Progress is the fraction of the transition that has played.
func (r *ReadyScreen) Progress() float64 {
	if r.duration <= 0 {
		return 1
	}
	p := float64(r.elapsed) / float64(r.duration)
	if p > 1 {
		p = 1
	}
	return p
}

func (r *ReadyScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("Your AI stack is ready")
	lines := []string{
		r.spinner.View() + " " + title,
		"",
		theme.Body.Render(r.name),
		"",
		components.NewProgressBar("", r.Progress(), true, cw/2).View(),
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(lines, "\n"))
}
