package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aistack/internal/ui/theme"
)

// Button is a single focusable action. Enter or space presses it while it
// is focused; the kiosk screens hand it an always-focused state when it is
// the only control on the page.
type Button struct {
	Label   string
	Focused bool
	OnPress func() tea.Cmd
}

func NewButton(label string, focused bool, onPress func() tea.Cmd) Button {
	return Button{Label: label, Focused: focused, OnPress: onPress}
}

// Update presses the button on enter or space.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Focused || b.OnPress == nil {
		return b, nil
	}
	if k, ok := msg.(tea.KeyPressMsg); ok {
		switch k.String() {
		case "enter", "space":
			return b, b.OnPress()
		}
	}
	return b, nil
}

func (b Button) View() string {
	if b.Focused {
		return theme.ButtonFocused.Render("▸ " + b.Label)
	}
	return theme.ButtonBlurred.Render(b.Label)
}
