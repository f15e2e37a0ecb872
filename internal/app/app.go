package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/aistack/internal/catalog"
	"github.com/abhisek/aistack/internal/config"
	"github.com/abhisek/aistack/internal/router"
	"github.com/abhisek/aistack/internal/screen"
	"github.com/abhisek/aistack/internal/stack"
	"github.com/abhisek/aistack/internal/store"
	"github.com/abhisek/aistack/internal/ui/layout"
)

// Options holds the dependencies shared by every screen.
type Options struct {
	Catalog  *catalog.Catalog
	Config   config.Config
	Recorder *store.Recorder
	Logger   *zap.Logger
	Rand     stack.Rand

	// Category opens the builder directly when set.
	Category string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	flow   *Flow
	width  int
	height int
}

// newAppModel creates the root model on the start screen, or on the
// builder when opts.Category is set.
func newAppModel(opts Options) AppModel {
	flow := NewFlow(opts)
	first := flow.StartScreen()
	if opts.Category != "" {
		first = flow.JumpToBuilder(opts.Category)
	}
	return AppModel{
		router: router.New(first),
		flow:   flow,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cmd := m.router.Update(tea.WindowSizeMsg{
			Width:  msg.Width,
			Height: layout.ContentHeight(msg.Height),
		})
		return m, cmd

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Sequence(m.router.Reset(m.flow.StartScreen()), tea.Quit)
		}

	case tea.MouseMsg:
		cmd := m.router.Update(toContent(msg))
		return m, cmd
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// toContent shifts a mouse event into the content area's coordinates.
func toContent(msg tea.MouseMsg) tea.Msg {
	mouse := msg.Mouse()
	mouse.Y -= layout.HeaderHeight
	switch msg.(type) {
	case tea.MouseClickMsg:
		return tea.MouseClickMsg(mouse)
	case tea.MouseReleaseMsg:
		return tea.MouseReleaseMsg(mouse)
	case tea.MouseWheelMsg:
		return tea.MouseWheelMsg(mouse)
	case tea.MouseMotionMsg:
		return tea.MouseMotionMsg(mouse)
	}
	return msg
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.WindowTitle = "AI Stack"
	return v
}

// render composes header, active screen and footer.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", ""
	footerHints := []layout.KeyHint{
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if active != nil {
		title = active.Title()
		if sp, ok := active.(layout.StatusProvider); ok {
			status = sp.HeaderStatus()
		}
		if kp, ok := active.(screen.KeyHintProvider); ok {
			footerHints = kp.KeyHints()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
