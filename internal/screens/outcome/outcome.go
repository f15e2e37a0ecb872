// Package outcome lets the visitor pick the business outcome whose stack
// they will build.
package outcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aistack/internal/catalog"
	"github.com/abhisek/aistack/internal/screen"
	"github.com/abhisek/aistack/internal/ui/components"
	"github.com/abhisek/aistack/internal/ui/layout"
	"github.com/abhisek/aistack/internal/ui/theme"
)

// Navigator receives the chosen category.
type Navigator interface {
	ChooseOutcome(categoryID string) tea.Cmd
	Home() tea.Cmd
}

// Lister provides the selectable categories.
type Lister interface {
	Categories() []catalog.Category
}

type confirmedMsg struct {
	category string
}

// OutcomeScreen shows one button per category.
type OutcomeScreen struct {
	nav        Navigator
	categories []catalog.Category
	menu       components.Menu
	delay      time.Duration

	chosen string
	width  int
	height int
}

var _ screen.Screen = (*OutcomeScreen)(nil)
var _ screen.KeyHintProvider = (*OutcomeScreen)(nil)

// New creates the outcome menu. Selection hands off to nav after delay.
func New(nav Navigator, cats Lister, delay time.Duration) *OutcomeScreen {
	s := &OutcomeScreen{
		nav:        nav,
		categories: cats.Categories(),
		delay:      delay,
	}
	items := make([]components.MenuItem, len(s.categories))
	for i, c := range s.categories {
		id := c.ID
		items[i] = components.MenuItem{
			Label:  c.Title,
			Action: func() tea.Cmd { return s.choose(id) },
		}
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *OutcomeScreen) Init() tea.Cmd {
	return nil
}

func (s *OutcomeScreen) Title() string {
	return "Choose an Outcome"
}

func (s *OutcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Home"},
	}
}

// Chosen returns the selected category id while the confirmation shows.
func (s *OutcomeScreen) Chosen() string {
	return s.chosen
}

func (s *OutcomeScreen) choose(id string) tea.Cmd {
	if s.chosen != "" {
		return nil
	}
	s.chosen = id
	return tea.Tick(s.delay, func(time.Time) tea.Msg {
		return confirmedMsg{category: id}
	})
}

func (s *OutcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		return s, nil

	case confirmedMsg:
		return s, s.nav.ChooseOutcome(msg.category)

	case tea.KeyPressMsg:
		if msg.String() == "esc" {
			return s, s.nav.Home()
		}
		if s.chosen != "" {
			return s, nil
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd

	case tea.MouseClickMsg:
		if s.chosen != "" || msg.Button != tea.MouseLeft {
			return s, nil
		}
		if i := s.itemAt(msg.Y); i >= 0 {
			return s, s.menu.Activate(i)
		}
	}
	return s, nil
}

// itemAt maps a content row to a menu item.
func (s *OutcomeScreen) itemAt(y int) int {
	head := lipgloss.Height(s.heading())
	body := lipgloss.Height(s.body(components.ContentWidth(s.width)))
	top := layout.CenterOffset(s.height, body) + head + 1
	if y < top {
		return -1
	}
	i := (y - top) / components.ItemHeight
	if i >= len(s.categories) {
		return -1
	}
	return i
}

func (s *OutcomeScreen) heading() string {
	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("Which business outcome matters most?")
	return title + "\n" + theme.Hint.Render("Pick one to build its AI stack")
}

func (s *OutcomeScreen) body(cw int) string {
	parts := []string{s.heading(), "", s.menu.View(cw)}
	if s.chosen != "" {
		for _, c := range s.categories {
			if c.ID == s.chosen {
				parts = append(parts, "", theme.Correct.Render("✓ "+c.Title))
			}
		}
	}
	return strings.Join(parts, "\n")
}

func (s *OutcomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s.body(cw))
}
