package builder

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/aistack/internal/catalog"
	"github.com/abhisek/aistack/internal/gesture"
	"github.com/abhisek/aistack/internal/stack"
	"github.com/abhisek/aistack/internal/ui/components"
	"github.com/abhisek/aistack/internal/ui/theme"
)

const (
	topPad    = 1
	nameWidth = 26
)

// geometry locates the interactive parts of a rendered board, in content
// coordinates.
type geometry struct {
	left    int
	width   int
	slotTop int
	slots   []string
	chipTop int
	chips   []components.ChipBounds
	options []catalog.Option
}

func (s *BuilderScreen) View(width, height int) string {
	if s.empty() {
		return s.emptyView(width, height)
	}
	out, _ := s.render(width)
	return out
}

// render draws the board and reports where slots and chips landed.
func (s *BuilderScreen) render(width int) (string, geometry) {
	b := s.engine.Board()
	cw := components.ContentWidth(width)
	g := geometry{left: (width - cw) / 2, width: cw}
	if g.left < 0 {
		g.left = 0
	}

	var lines []string
	add := func(block string) {
		lines = append(lines, strings.Split(block, "\n")...)
	}

	for i := 0; i < topPad; i++ {
		add("")
	}
	add(theme.Title.Render(b.Name))
	if b.Description != "" {
		add(theme.Hint.Width(cw).Render(b.Description))
	}
	add("")

	g.slotTop = len(lines)
	for _, sl := range b.Slots {
		g.slots = append(g.slots, sl.ID)
		add(s.slotRow(sl, b.Feedback, cw))
	}
	add("")

	shown, ok := b.Displayed()
	switch {
	case b.Complete:
		add(theme.Correct.Render("Your stack is complete!"))
	case ok:
		add(theme.Body.Render(fmt.Sprintf("Options for %s:", shown.Name)))
	default:
		add(theme.Hint.Render("Pick a slot to see its options"))
	}

	g.chipTop = len(lines)
	if ok {
		g.options = shown.Options
		chips := make([]components.Chip, len(shown.Options))
		for i, o := range shown.Options {
			chips[i] = components.Chip{Label: o.Text, State: s.chipState(o, i, shown, b.Feedback)}
		}
		block, bounds := components.RenderChips(chips, cw)
		g.chips = bounds
		add(block)
	}

	add("")
	add(feedbackLine(b))

	pad := strings.Repeat(" ", g.left)
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n"), g
}

func (s *BuilderScreen) slotRow(sl stack.SlotView, fb *stack.Feedback, cw int) string {
	marker := "  "
	if sl.Displayed {
		marker = "▸ "
	}
	check := "[ ]"
	value := strings.Repeat("·", 12)
	if sl.Filled {
		check = "[✓]"
		value = sl.FilledWith
	}
	name := sl.Name
	if w := lipgloss.Width(name); w < nameWidth {
		name += strings.Repeat(" ", nameWidth-w)
	}
	row := fmt.Sprintf("%s%s %s %s", marker, check, name, value)

	style := theme.SlotEmpty
	switch {
	case fb != nil && fb.Kind == stack.FeedbackWrong && fb.SlotID == sl.ID:
		style = theme.SlotWrong
	case s.input.Hovered() == sl.ID:
		style = theme.SlotHover
	case sl.Filled:
		style = theme.SlotFilled
	case sl.Displayed:
		style = theme.Selected
	}
	return style.Width(cw).MaxHeight(1).Render(row)
}

func (s *BuilderScreen) chipState(o catalog.Option, i int, shown stack.SlotView, fb *stack.Feedback) components.ChipState {
	switch {
	case s.input.Grabbed() == o.ID:
		return components.ChipHeld
	case fb != nil && fb.Kind == stack.FeedbackWrong && fb.OptionID == o.ID:
		return components.ChipWrong
	case shown.Filled && shown.FilledWith == o.Text:
		return components.ChipPlaced
	case i == s.optCursor:
		return components.ChipHighlighted
	}
	return components.ChipIdle
}

func feedbackLine(b stack.Board) string {
	fb := b.Feedback
	if fb == nil {
		return ""
	}
	var label, slot string
	for _, sl := range b.Slots {
		if sl.ID == fb.SlotID {
			slot = sl.Name
		}
		for _, o := range sl.Options {
			if o.ID == fb.OptionID {
				label = o.Text
			}
		}
	}
	if fb.Kind == stack.FeedbackPlaced {
		return theme.Correct.Render(fmt.Sprintf("✓ %s added to %s", label, slot))
	}
	if slot == "" {
		return theme.Incorrect.Render(fmt.Sprintf("✗ %s doesn't go there", label))
	}
	return theme.Incorrect.Render(fmt.Sprintf("✗ %s doesn't belong in %s", label, slot))
}

func (s *BuilderScreen) emptyView(width, height int) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.Incorrect.Render("No stack is configured for this outcome."),
		"",
		s.home.View(),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// slotAt is the hit tester handed to the gesture adapter.
func (s *BuilderScreen) slotAt(p gesture.Point) string {
	_, g := s.render(s.width)
	if p.X < g.left || p.X >= g.left+g.width {
		return ""
	}
	i := p.Y - g.slotTop
	if i < 0 || i >= len(g.slots) {
		return ""
	}
	return g.slots[i]
}

func (s *BuilderScreen) optionAt(p gesture.Point) (catalog.Option, bool) {
	_, g := s.render(s.width)
	i := components.ChipAt(g.chips, p.X-g.left, p.Y-g.chipTop)
	if i < 0 || i >= len(g.options) {
		return catalog.Option{}, false
	}
	return g.options[i], true
}
