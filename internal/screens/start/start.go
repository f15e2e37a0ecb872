// Package start is the attract screen shown while the kiosk is idle.
package start

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aistack/internal/screen"
	"github.com/abhisek/aistack/internal/ui/layout"
	"github.com/abhisek/aistack/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

// stack layers light up one by one during the intro.
var layers = []string{
	"Edge / Deployment Tools",
	"Security & Governance",
	"AI Services",
	"Software & AI Platforms",
	"Hardware",
}

var pulseFrames = []string{"◆", "◇"}

type tickMsg time.Time

// Navigator advances the wizard.
type Navigator interface {
	Next() tea.Cmd
}

// StartScreen plays a short build-up animation and waits for the visitor.
type StartScreen struct {
	nav          Navigator
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*StartScreen)(nil)
var _ screen.KeyHintProvider = (*StartScreen)(nil)

// New creates a StartScreen that hands off to nav when the visitor begins.
func New(nav Navigator) *StartScreen {
	return &StartScreen{nav: nav}
}

func (s *StartScreen) Title() string {
	return ""
}

func (s *StartScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Get started"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *StartScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *StartScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if s.elapsed < totalDur {
			s.elapsed += tickInterval
		}
		s.tickCount++
		return s, tick()

	case tea.KeyPressMsg, tea.MouseClickMsg:
		// The first input during the intro only fast-forwards it.
		if s.elapsed < totalDur {
			s.elapsed = totalDur
			return s, nil
		}
		return s, s.begin()
	}

	return s, nil
}

func (s *StartScreen) begin() tea.Cmd {
	if s.transitioned {
		return nil
	}
	s.transitioned = true
	return s.nav.Next()
}

// litLayers is how many stack layers are drawn at the current time.
func (s *StartScreen) litLayers() int {
	if s.elapsed >= totalDur {
		return len(layers)
	}
	n := int(s.elapsed * time.Duration(len(layers)) / phase2End)
	if n > len(layers) {
		n = len(layers)
	}
	return n
}

func (s *StartScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, renderLayers(s.litLayers(), s.elapsed >= phase1End, s.tickCount))

	if s.elapsed >= phase2End {
		sections = append(sections, "")
		sections = append(sections, RenderBanner(width))
		sections = append(sections, "")

		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Build the AI stack for your business outcome")
		sections = append(sections, tagline)
	}

	if s.elapsed >= totalDur {
		sections = append(sections, "")
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key or click to start")
		sections = append(sections, hint)
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderLayers(lit int, pulse bool, frame int) string {
	const w = 28
	on := lipgloss.NewStyle().
		Width(w).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Background(theme.BgCard)
	off := lipgloss.NewStyle().
		Width(w).
		Align(lipgloss.Center).
		Foreground(theme.Border)
	mark := lipgloss.NewStyle().Foreground(theme.Accent)

	// Layers build bottom-up, so the last entry lights first.
	rows := make([]string, len(layers))
	for i, name := range layers {
		fromBottom := len(layers) - 1 - i
		if fromBottom < lit {
			row := on.Render(name)
			if pulse {
				p := mark.Render(pulseFrames[(frame+i)%len(pulseFrames)])
				row = p + " " + row + " " + p
			} else {
				row = "  " + row + "  "
			}
			rows[i] = row
			continue
		}
		rows[i] = "  " + off.Render(strings.Repeat("·", w/2)) + "  "
	}
	return strings.Join(rows, "\n")
}
