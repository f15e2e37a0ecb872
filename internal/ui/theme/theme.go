package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: kiosk navy with a bright blue accent.
var (
	Primary   = lipgloss.Color("#0076CE") // Brand Blue
	Secondary = lipgloss.Color("#41B6E6") // Sky
	Accent    = lipgloss.Color("#F2A900") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0B1620") // Ink
	BgCard    = lipgloss.Color("#1D2C3B") // Navy
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Game board
var (
	// SlotEmpty is one row of the stack that still needs an option.
	SlotEmpty = lipgloss.NewStyle().
			Foreground(TextDim)

	SlotHover = lipgloss.NewStyle().
			Foreground(BgDark).
			Background(Secondary).
			Bold(true)

	SlotFilled = lipgloss.NewStyle().
			Foreground(Success)

	SlotWrong = lipgloss.NewStyle().
			Foreground(Text).
			Background(Error)

	// Chip is an option waiting to be placed.
	Chip = lipgloss.NewStyle().
		Foreground(Text).
		Background(BgCard).
		Padding(0, 1)

	ChipActive = Chip.
			Background(Primary).
			Bold(true)

	ChipGrabbed = Chip.
			Background(Accent).
			Foreground(BgDark).
			Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonFocused = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 3)

	ButtonBlurred = lipgloss.NewStyle().
			Foreground(TextDim).
			Padding(0, 3)
)
