package app

import (
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/aistack/internal/catalog"
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

// Flow drives the wizard and builds the screen for each page. Every
// screen navigates through it.
type Flow struct {
	wiz        *wizard.Wizard
	opts       Options
	assignment stack.Assignment
}

// NewFlow creates a flow on the start page.
func NewFlow(opts Options) *Flow {
	return &Flow{wiz: wizard.New(opts.Config.ProfileForm), opts: opts}
}

// Wizard exposes the flow state.
func (f *Flow) Wizard() *wizard.Wizard {
	return f.wiz
}

// StartScreen returns the first screen for a fresh visitor.
func (f *Flow) StartScreen() screen.Screen {
	return start.New(f)
}

// Next advances one page.
func (f *Flow) Next() tea.Cmd {
	from := f.wiz.Page()
	to := f.wiz.Next()
	if to == from {
		return nil
	}
	return f.show(to)
}

// SubmitProfile stores the visitor profile and moves to outcome selection.
func (f *Flow) SubmitProfile(p wizard.Profile) tea.Cmd {
	if f.wiz.Page() != wizard.PageProfile {
		return nil
	}
	f.wiz.SubmitProfile(p)
	return f.show(f.wiz.Page())
}

// ChooseOutcome starts the builder for category.
func (f *Flow) ChooseOutcome(category string) tea.Cmd {
	if !f.wiz.ChooseOutcome(category) {
		return nil
	}
	return f.Next()
}

// Complete keeps the finished assignment for the results page.
func (f *Flow) Complete(a stack.Assignment) tea.Cmd {
	if f.wiz.Page() != wizard.PageBuilder {
		return nil
	}
	f.assignment = a
	return f.Next()
}

// Home discards the visitor's session and returns to the start.
func (f *Flow) Home() tea.Cmd {
	f.wiz.Home()
	f.assignment = stack.Assignment{}
	f.logger().Debug("returned home")
	s := f.StartScreen()
	return func() tea.Msg { return router.ResetScreenMsg{Screen: s} }
}

// JumpToBuilder skips the start and outcome pages and opens the builder
// for category, using the default profile.
func (f *Flow) JumpToBuilder(category string) screen.Screen {
	f.wiz.Jump(wizard.PageOutcome)
	f.wiz.SubmitProfile(wizard.Profile{})
	f.wiz.ChooseOutcome(category)
	f.wiz.Jump(wizard.PageBuilder)
	return f.screenFor(wizard.PageBuilder)
}

func (f *Flow) show(p wizard.Page) tea.Cmd {
	f.logger().Debug("page", zap.Stringer("page", p), zap.String("category", f.wiz.Category()))
	s := f.screenFor(p)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: s} }
}

func (f *Flow) screenFor(p wizard.Page) screen.Screen {
	switch p {
	case wizard.PageProfile:
		return profile.New(f, f.wiz.Profile())
	case wizard.PageOutcome:
		return outcome.New(f, f.opts.Catalog, f.opts.Config.ConfirmDelay)
	case wizard.PageBuilder:
		return builder.New(f, f.wiz.Category(), builder.Options{
			Source: f.opts.Catalog,
			Rand:   f.opts.Rand,
			Config: stack.Config{
				FeedbackDelay: f.opts.Config.FeedbackDelay,
				SettleDelay:   f.opts.Config.SettleDelay,
			},
			Recorder: f.opts.Recorder,
			Logger:   f.logger(),
		})
	case wizard.PageReady:
		return ready.New(f, f.assignment.Name, f.opts.Config.ReadyDelay)
	case wizard.PageResults:
		return results.New(f, f.assignment.Name, f.wiz.Profile(),
			wizard.Results(f.opts.Catalog, slotTemplates(f.assignment)))
	default:
		return f.StartScreen()
	}
}

func (f *Flow) logger() *zap.Logger {
	if f.opts.Logger == nil {
		return zap.NewNop()
	}
	return f.opts.Logger
}

// slotTemplates lists the retained slots of a finished assignment.
func slotTemplates(a stack.Assignment) []catalog.SlotTemplate {
	out := make([]catalog.SlotTemplate, len(a.Slots))
	for i, s := range a.Slots {
		out[i] = catalog.SlotTemplate{ID: s.ID, Name: s.Name, Accepted: s.Accepted}
	}
	return out
}
