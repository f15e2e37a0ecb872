// Package wizard tracks where a visitor is in the linear kiosk flow and the
// choices made along the way.
package wizard

import (
	"strings"

	"github.com/abhisek/aistack/internal/catalog"
)

// Page identifies a step of the flow.
type Page int

const (
	PageStart Page = iota + 1
	PageProfile
	PageOutcome
	PageBuilder
	PageReady
	PageResults
)

func (p Page) String() string {
	switch p {
	case PageStart:
		return "start"
	case PageProfile:
		return "profile"
	case PageOutcome:
		return "outcome"
	case PageBuilder:
		return "builder"
	case PageReady:
		return "ready"
	case PageResults:
		return "results"
	default:
		return "unknown"
	}
}

// Profile describes the visitor.
type Profile struct {
	Name       string
	Company    string
	Role       string
	Experience string
}

// DefaultProfile is used when the profile form is skipped or left blank.
func DefaultProfile() Profile {
	return Profile{
		Name:       "Guest",
		Company:    "N/A",
		Role:       "Developer",
		Experience: "Intermediate (2-4 years)",
	}
}

// withDefaults fills blank fields from DefaultProfile.
func (p Profile) withDefaults() Profile {
	d := DefaultProfile()
	if strings.TrimSpace(p.Name) == "" {
		p.Name = d.Name
	}
	if strings.TrimSpace(p.Company) == "" {
		p.Company = d.Company
	}
	if strings.TrimSpace(p.Role) == "" {
		p.Role = d.Role
	}
	if strings.TrimSpace(p.Experience) == "" {
		p.Experience = d.Experience
	}
	return p
}

// Wizard is the per-visitor flow state.
type Wizard struct {
	page        Page
	profileForm bool
	profile     Profile
	category    string
}

// New creates a wizard on the start page. When profileForm is false the
// profile page is skipped and the default profile is used.
func New(profileForm bool) *Wizard {
	return &Wizard{page: PageStart, profileForm: profileForm}
}

// Page returns the current page.
func (w *Wizard) Page() Page { return w.page }

// Profile returns the visitor profile.
func (w *Wizard) Profile() Profile { return w.profile }

// Category returns the chosen outcome category, or "".
func (w *Wizard) Category() string { return w.category }

// ProfileFormEnabled reports whether the profile page is part of the flow.
func (w *Wizard) ProfileFormEnabled() bool { return w.profileForm }

// Next advances one page. From Start it jumps over Profile unless the form
// is enabled. Results is terminal.
func (w *Wizard) Next() Page {
	switch w.page {
	case PageStart:
		if w.profileForm {
			w.page = PageProfile
		} else {
			w.profile = DefaultProfile()
			w.page = PageOutcome
		}
	case PageResults:
	default:
		w.page++
	}
	return w.page
}

// SubmitProfile stores p and moves on to outcome selection.
func (w *Wizard) SubmitProfile(p Profile) {
	w.profile = p.withDefaults()
	if w.page == PageProfile {
		w.page = PageOutcome
	}
}

// ChooseOutcome records the chosen category. It only applies on the
// outcome page and reports whether the choice was taken.
func (w *Wizard) ChooseOutcome(category string) bool {
	if w.page != PageOutcome || category == "" {
		return false
	}
	w.category = category
	return true
}

// Jump moves straight to page, used by entry points that skip ahead.
func (w *Wizard) Jump(page Page) {
	if page < PageStart || page > PageResults {
		return
	}
	w.page = page
}

// Home returns to the start page and forgets the chosen outcome.
func (w *Wizard) Home() {
	w.page = PageStart
	w.category = ""
}

// Entry is one row of the results accordion.
type Entry struct {
	SlotName    string
	Label       string
	Description string
}

// Describer looks up the long description for a product label.
type Describer interface {
	Describe(label string) string
}

// Results builds the result entries for the slots of the finished stack,
// in slot order.
func Results(d Describer, slots []catalog.SlotTemplate) []Entry {
	out := make([]Entry, 0, len(slots))
	for _, s := range slots {
		out = append(out, Entry{
			SlotName:    s.Name,
			Label:       s.Accepted,
			Description: d.Describe(s.Accepted),
		})
	}
	return out
}

// Accordion tracks which result entry is expanded. At most one is open.
type Accordion struct {
	open int
}

// NewAccordion starts with every entry collapsed.
func NewAccordion() Accordion { return Accordion{open: -1} }

// Toggle opens entry i, closing any other, or closes it if already open.
func (a *Accordion) Toggle(i int) {
	if a.open == i {
		a.open = -1
		return
	}
	a.open = i
}

// Open returns the expanded entry index, or -1.
func (a Accordion) Open() int { return a.open }

// IsOpen reports whether entry i is expanded.
func (a Accordion) IsOpen(i int) bool { return a.open == i }
