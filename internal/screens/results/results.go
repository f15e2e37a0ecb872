// Package results reveals the recommended products for the finished stack.
package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aistack/internal/screen"
	"github.com/abhisek/aistack/internal/ui/components"
	"github.com/abhisek/aistack/internal/ui/layout"
	"github.com/abhisek/aistack/internal/ui/theme"
	"github.com/abhisek/aistack/internal/wizard"
)

const (
	topPad      = 1
	buttonWidth = 24
)

// Navigator returns the kiosk to the start.
type Navigator interface {
	Home() tea.Cmd
}

// ResultsScreen lists one expandable entry per slot, then a Home button.
type ResultsScreen struct {
	nav       Navigator
	name      string
	visitor   string
	entries   []wizard.Entry
	accordion wizard.Accordion
	cursor    int // len(entries) selects the Home button

	width int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates the results page for the stack called name.
func New(nav Navigator, name string, profile wizard.Profile, entries []wizard.Entry) *ResultsScreen {
	return &ResultsScreen{
		nav:       nav,
		name:      name,
		visitor:   profile.Name,
		entries:   entries,
		accordion: wizard.NewAccordion(),
	}
}

func (r *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultsScreen) Title() string {
	return "Your AI Stack"
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Expand / Home"},
		{Key: "Esc", Description: "Home"},
	}
}

// Accordion exposes which entry is expanded.
func (r *ResultsScreen) Accordion() wizard.Accordion {
	return r.accordion
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if r.cursor > 0 {
				r.cursor--
			}
		case "down", "j", "tab":
			if r.cursor < len(r.entries) {
				r.cursor++
			}
		case "enter", "space":
			return r, r.activate(r.cursor)
		case "esc":
			return r, r.nav.Home()
		}

	case tea.MouseClickMsg:
		if msg.Button != tea.MouseLeft {
			return r, nil
		}
		_, rows := r.render(r.width)
		for i, row := range rows {
			if msg.Y >= row.top && msg.Y < row.top+row.height {
				r.cursor = i
				return r, r.activate(i)
			}
		}
	}
	return r, nil
}

func (r *ResultsScreen) activate(i int) tea.Cmd {
	if i >= len(r.entries) {
		return r.nav.Home()
	}
	r.accordion.Toggle(i)
	return nil
}

// span is the rows an item occupies; the last span is the Home button.
type span struct {
	top, height int
}

func (r *ResultsScreen) View(width, height int) string {
	out, _ := r.render(width)
	return out
}

func (r *ResultsScreen) render(width int) (string, []span) {
	cw := components.ContentWidth(width)
	left := (width - cw) / 2
	if left < 0 {
		left = 0
	}

	var lines []string
	add := func(block string) int {
		parts := strings.Split(block, "\n")
		lines = append(lines, parts...)
		return len(parts)
	}

	for i := 0; i < topPad; i++ {
		add("")
	}
	greeting := "Here is your recommended stack"
	if r.visitor != "" {
		greeting = fmt.Sprintf("%s, here is your recommended stack", r.visitor)
	}
	add(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(greeting))
	add(theme.Body.Render(r.name))
	add("")

	spans := make([]span, 0, len(r.entries)+1)
	for i, e := range r.entries {
		top := len(lines)
		arrow := "▸"
		if r.accordion.IsOpen(i) {
			arrow = "▾"
		}
		style := theme.Unselected
		if i == r.cursor {
			style = theme.Selected
		}
		n := add(style.Render(fmt.Sprintf("%s %s: %s", arrow, e.SlotName, e.Label)))
		if r.accordion.IsOpen(i) {
			n += add(theme.Hint.Width(cw - 4).MarginLeft(4).Render(e.Description))
		}
		spans = append(spans, span{top: top, height: n})
	}
	add("")

	top := len(lines)
	n := add(components.KioskButton("Home", r.cursor == len(r.entries), buttonWidth))
	spans = append(spans, span{top: top, height: n})

	pad := strings.Repeat(" ", left)
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n"), spans
}
