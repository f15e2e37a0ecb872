package profile

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aistack/internal/wizard"
)

type stubNav struct {
	submitted []wizard.Profile
	home      int
}

func (n *stubNav) SubmitProfile(p wizard.Profile) tea.Cmd {
	n.submitted = append(n.submitted, p)
	return nil
}

func (n *stubNav) Home() tea.Cmd {
	n.home++
	return nil
}

func typeText(p *ProfileScreen, s string) {
	for _, r := range s {
		p.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestSubmitAfterLastField(t *testing.T) {
	nav := &stubNav{}
	p := New(nav, wizard.Profile{})
	p.Init()

	typeText(p, "Ada")
	p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	typeText(p, "Acme")
	p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Empty(t, nav.submitted, "enter moves through fields before submitting")

	p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.Len(t, nav.submitted, 1)
	assert.Equal(t, wizard.Profile{Name: "Ada", Company: "Acme"}, nav.submitted[0])

	p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Len(t, nav.submitted, 1, "submits once")
}

func TestFocusWraps(t *testing.T) {
	p := New(&stubNav{}, wizard.Profile{})
	p.Init()

	p.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, fieldExperience, p.focus)
	p.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, fieldName, p.focus)
}

func TestPrefill(t *testing.T) {
	p := New(&stubNav{}, wizard.Profile{Name: "Grace", Role: "Admiral"})
	got := p.Profile()
	assert.Equal(t, "Grace", got.Name)
	assert.Equal(t, "Admiral", got.Role)
	assert.Empty(t, got.Company)
}

func TestEscGoesHome(t *testing.T) {
	nav := &stubNav{}
	p := New(nav, wizard.Profile{})
	p.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, 1, nav.home)
}

func TestView(t *testing.T) {
	p := New(&stubNav{}, wizard.Profile{})
	view := p.View(100, 30)
	assert.Contains(t, view, "Tell us about yourself")
	assert.Contains(t, view, "Experience")
}
