package app

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aistack/internal/catalog"
	"github.com/abhisek/aistack/internal/config"
	"github.com/abhisek/aistack/internal/router"
	"github.com/abhisek/aistack/internal/screen"
	"github.com/abhisek/aistack/internal/screens/builder"
	"github.com/abhisek/aistack/internal/screens/outcome"
	"github.com/abhisek/aistack/internal/screens/profile"
	"github.com/abhisek/aistack/internal/screens/ready"
	"github.com/abhisek/aistack/internal/screens/results"
	"github.com/abhisek/aistack/internal/screens/start"
	"github.com/abhisek/aistack/internal/stack"
	"github.com/abhisek/aistack/internal/wizard"
)

func testOptions(profileForm bool) Options {
	cfg := config.DefaultConfig()
	cfg.ProfileForm = profileForm
	cfg.ConfirmDelay = time.Millisecond
	return Options{
		Catalog: catalog.Default(),
		Config:  cfg,
		Rand:    rand.New(rand.NewPCG(3, 3)),
	}
}

// replaced runs cmd and returns the screen it swaps in.
func replaced(t *testing.T, cmd tea.Cmd) screen.Screen {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok, "expected a ReplaceScreenMsg")
	return msg.Screen
}

func TestFlow_SkipsProfileByDefault(t *testing.T) {
	f := NewFlow(testOptions(false))
	s := replaced(t, f.Next())

	assert.IsType(t, &outcome.OutcomeScreen{}, s)
	assert.Equal(t, wizard.PageOutcome, f.Wizard().Page())
	assert.Equal(t, wizard.DefaultProfile(), f.Wizard().Profile())
}

func TestFlow_ProfileForm(t *testing.T) {
	f := NewFlow(testOptions(true))
	assert.IsType(t, &profile.ProfileScreen{}, replaced(t, f.Next()))

	s := replaced(t, f.SubmitProfile(wizard.Profile{Name: "Ada"}))
	assert.IsType(t, &outcome.OutcomeScreen{}, s)
	got := f.Wizard().Profile()
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, wizard.DefaultProfile().Role, got.Role)

	assert.Nil(t, f.SubmitProfile(wizard.Profile{}), "profile only submits once")
}

func TestFlow_FullRun(t *testing.T) {
	f := NewFlow(testOptions(false))
	replaced(t, f.Next())

	assert.Nil(t, f.Complete(stack.Assignment{}), "nothing to complete before the builder")

	b, ok := replaced(t, f.ChooseOutcome("button-2")).(*builder.BuilderScreen)
	require.True(t, ok)
	assert.Equal(t, "button-2", f.Wizard().Category())
	assert.Equal(t, "button-2", b.Engine().Category())

	a := b.Engine().Assignment()
	assert.IsType(t, &ready.ReadyScreen{}, replaced(t, f.Complete(a)))
	assert.Equal(t, wizard.PageReady, f.Wizard().Page())

	res := replaced(t, f.Next())
	assert.IsType(t, &results.ResultsScreen{}, res)
	view := res.View(100, 40)
	for _, sl := range a.Slots {
		assert.Contains(t, view, sl.Accepted)
	}

	assert.Nil(t, f.Next(), "results is terminal")
}

func TestFlow_ChooseOutcomeOnlyFromOutcomePage(t *testing.T) {
	f := NewFlow(testOptions(false))
	assert.Nil(t, f.ChooseOutcome("button-1"))
	assert.Empty(t, f.Wizard().Category())
}

func TestFlow_Home(t *testing.T) {
	f := NewFlow(testOptions(false))
	replaced(t, f.Next())
	replaced(t, f.ChooseOutcome("button-1"))

	msg, ok := f.Home()().(router.ResetScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &start.StartScreen{}, msg.Screen)
	assert.Equal(t, wizard.PageStart, f.Wizard().Page())
	assert.Empty(t, f.Wizard().Category())
}

func TestFlow_JumpToBuilder(t *testing.T) {
	f := NewFlow(testOptions(true))
	b, ok := f.JumpToBuilder("button-3").(*builder.BuilderScreen)
	require.True(t, ok)
	assert.Equal(t, wizard.PageBuilder, f.Wizard().Page())
	assert.Equal(t, "button-3", b.Engine().Category())
	assert.Equal(t, wizard.DefaultProfile(), f.Wizard().Profile())
}

func TestAppModel_ViewShowsProgress(t *testing.T) {
	opts := testOptions(false)
	opts.Category = "button-2"
	m := newAppModel(opts)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := updated.View()

	out := updated.(AppModel).render()
	assert.Contains(t, out, "AI Stack")
	assert.Contains(t, out, "0/4")
	assert.Equal(t, tea.MouseModeCellMotion, view.MouseMode)
}

func TestAppModel_TooSmall(t *testing.T) {
	m := newAppModel(testOptions(false))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.True(t, strings.Contains(updated.(AppModel).render(), "kiosk needs at least"))
}

func TestToContent(t *testing.T) {
	got := toContent(tea.MouseClickMsg{X: 4, Y: 10, Button: tea.MouseLeft})
	assert.Equal(t, tea.MouseClickMsg{X: 4, Y: 7, Button: tea.MouseLeft}, got)

	got = toContent(tea.MouseMotionMsg{X: 1, Y: 3})
	assert.Equal(t, tea.MouseMotionMsg{X: 1, Y: 0}, got)
}

// locate returns the terminal cell where text first appears in the
// rendered frame.
func locate(t *testing.T, m AppModel, text string) (x, y int) {
	t.Helper()
	for i, line := range strings.Split(ansi.Strip(m.render()), "\n") {
		if idx := strings.Index(line, text); idx >= 0 {
			return ansi.StringWidth(line[:idx]), i
		}
	}
	t.Fatalf("%q not rendered", text)
	return 0, 0
}

func TestAppModel_MouseDragAfterNavigation(t *testing.T) {
	var model tea.Model = newAppModel(testOptions(false))
	model, _ = model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	m := model.(AppModel)
	model, _ = model.Update(m.flow.Next()())
	require.IsType(t, &outcome.OutcomeScreen{}, model.(AppModel).router.Active())
	model, _ = model.Update(m.flow.ChooseOutcome("button-2")())

	m = model.(AppModel)
	b, ok := m.router.Active().(*builder.BuilderScreen)
	require.True(t, ok, "expected the builder after choosing an outcome")

	cx, cy := locate(t, m, "PowerEdge XE-Series")
	model, _ = model.Update(tea.MouseClickMsg{X: cx, Y: cy, Button: tea.MouseLeft})

	sx, sy := locate(t, model.(AppModel), "[ ] Hardware")
	model, _ = model.Update(tea.MouseMotionMsg{X: sx + 4, Y: sy, Button: tea.MouseLeft})
	model.Update(tea.MouseReleaseMsg{X: sx + 4, Y: sy, Button: tea.MouseLeft})

	filled, total := b.Engine().Progress()
	assert.Equal(t, 1, filled, "drag from the rendered chip onto the Hardware row places it")
	assert.Equal(t, 4, total)
}
