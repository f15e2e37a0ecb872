// Package profile collects optional visitor details before the game.
package profile

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aistack/internal/screen"
	"github.com/abhisek/aistack/internal/ui/components"
	"github.com/abhisek/aistack/internal/ui/layout"
	"github.com/abhisek/aistack/internal/ui/theme"
	"github.com/abhisek/aistack/internal/wizard"
)

// Navigator receives the submitted profile.
type Navigator interface {
	SubmitProfile(p wizard.Profile) tea.Cmd
	Home() tea.Cmd
}

const (
	fieldName = iota
	fieldCompany
	fieldRole
	fieldExperience
	fieldCount
)

// ProfileScreen is a four-field form. Blank fields fall back to defaults.
type ProfileScreen struct {
	nav       Navigator
	inputs    []components.TextInput
	focus     int
	submitted bool
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)

// New creates the form, prefilled with initial.
func New(nav Navigator, initial wizard.Profile) *ProfileScreen {
	d := wizard.DefaultProfile()
	inputs := make([]components.TextInput, fieldCount)
	inputs[fieldName] = components.NewTextInput("Name", d.Name, 40)
	inputs[fieldCompany] = components.NewTextInput("Company", d.Company, 60)
	inputs[fieldRole] = components.NewTextInput("Role", d.Role, 40)
	inputs[fieldExperience] = components.NewTextInput("Experience", d.Experience, 40)

	inputs[fieldName].SetValue(initial.Name)
	inputs[fieldCompany].SetValue(initial.Company)
	inputs[fieldRole].SetValue(initial.Role)
	inputs[fieldExperience].SetValue(initial.Experience)

	return &ProfileScreen{nav: nav, inputs: inputs}
}

func (p *ProfileScreen) Init() tea.Cmd {
	return p.inputs[p.focus].Focus()
}

func (p *ProfileScreen) Title() string {
	return "About You"
}

func (p *ProfileScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Field"},
		{Key: "Enter", Description: "Next / Submit"},
		{Key: "Esc", Description: "Home"},
	}
}

// Profile returns the form contents as entered.
func (p *ProfileScreen) Profile() wizard.Profile {
	return wizard.Profile{
		Name:       strings.TrimSpace(p.inputs[fieldName].Value()),
		Company:    strings.TrimSpace(p.inputs[fieldCompany].Value()),
		Role:       strings.TrimSpace(p.inputs[fieldRole].Value()),
		Experience: strings.TrimSpace(p.inputs[fieldExperience].Value()),
	}
}

func (p *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "esc":
			return p, p.nav.Home()
		case "tab", "down":
			return p, p.moveFocus(1)
		case "shift+tab", "up":
			return p, p.moveFocus(-1)
		case "enter":
			if p.focus < fieldCount-1 {
				return p, p.moveFocus(1)
			}
			return p, p.submit()
		}
	}

	var cmd tea.Cmd
	p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
	return p, cmd
}

func (p *ProfileScreen) moveFocus(delta int) tea.Cmd {
	p.inputs[p.focus].Blur()
	p.focus = (p.focus + delta + fieldCount) % fieldCount
	return p.inputs[p.focus].Focus()
}

func (p *ProfileScreen) submit() tea.Cmd {
	if p.submitted {
		return nil
	}
	p.submitted = true
	return p.nav.SubmitProfile(p.Profile())
}

func (p *ProfileScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("Tell us about yourself")
	sub := theme.Hint.Render("All fields are optional")

	fields := make([]string, 0, len(p.inputs))
	for _, in := range p.inputs {
		fields = append(fields, in.View())
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		title, sub, "", strings.Join(fields, "\n\n"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.KioskCard(content, cw))
}
