package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/aistack/internal/ui/theme"
)

// ChipState is how one option chip is drawn.
type ChipState int

const (
	ChipIdle ChipState = iota
	ChipHighlighted
	ChipHeld
	ChipWrong
	ChipPlaced
)

// Chip is one option offered for a slot.
type Chip struct {
	Label string
	State ChipState
}

// RenderChips lays chips out left to right, wrapping at width. It returns
// the rendered block and, per chip, the row it landed on (relative to the
// block) so callers can hit-test mouse positions.
func RenderChips(chips []Chip, width int) (string, []ChipBounds) {
	var (
		lines  []string
		line   string
		bounds = make([]ChipBounds, 0, len(chips))
		row    int
	)
	for _, c := range chips {
		r := chipStyle(c.State).Render(c.Label)
		w := lipgloss.Width(r)
		x := lipgloss.Width(line)
		if line != "" {
			x += 2
		}
		if line != "" && x+w > width {
			lines = append(lines, line)
			line, x = "", 0
			row++
		}
		if line != "" {
			line += "  "
		}
		bounds = append(bounds, ChipBounds{Row: row, X0: x, X1: x + w})
		line += r
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), bounds
}

// ChipBounds is the horizontal extent of a chip on a row.
type ChipBounds struct {
	Row    int
	X0, X1 int // X1 is exclusive
}

// ChipAt returns the index of the chip covering (x, row), or -1.
func ChipAt(bounds []ChipBounds, x, row int) int {
	for i, b := range bounds {
		if b.Row == row && x >= b.X0 && x < b.X1 {
			return i
		}
	}
	return -1
}

func chipStyle(s ChipState) lipgloss.Style {
	switch s {
	case ChipHighlighted:
		return theme.ChipActive
	case ChipHeld:
		return theme.ChipGrabbed
	case ChipWrong:
		return theme.Chip.Background(theme.Error)
	case ChipPlaced:
		return theme.Chip.Background(theme.Success).Foreground(theme.BgDark)
	default:
		return theme.Chip
	}
}
