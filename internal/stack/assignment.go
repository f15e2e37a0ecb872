package stack

import (
	"slices"

	"github.com/abhisek/aistack/internal/catalog"
)

// Source provides the static catalog data the engine builds assignments from.
type Source interface {
	Category(id string) (catalog.Category, bool)
	OptionsFor(category string) []catalog.Option
	SlotTemplatesFor(category string) []catalog.SlotTemplate
}

// Slot is a target in the matching game.
type Slot struct {
	ID       string
	Name     string
	Accepted string
	Filled   bool
	FilledBy string // id of the option that filled the slot
	Options  []catalog.Option
}

// Assignment is the full set of slots for the active category.
type Assignment struct {
	Category    string
	ComponentID string
	Name        string
	Description string
	Slots       []Slot
}

// buildAssignment materializes a fresh, shuffled assignment for category.
// Slots without eligible options are dropped. An unknown category yields an
// assignment with no slots.
func buildAssignment(src Source, category string, r Rand) Assignment {
	a := Assignment{Category: category}
	if cat, ok := src.Category(category); ok {
		a.ComponentID = cat.Component.ID
		a.Name = cat.Component.Name
		a.Description = cat.Component.Description
	}

	options := src.OptionsFor(category)
	for _, tmpl := range src.SlotTemplatesFor(category) {
		var eligible []catalog.Option
		for _, o := range options {
			if o.Target == tmpl.ID {
				eligible = append(eligible, o)
			}
		}
		if len(eligible) == 0 {
			continue
		}
		Shuffle(eligible, r)
		a.Slots = append(a.Slots, Slot{
			ID:       tmpl.ID,
			Name:     tmpl.Name,
			Accepted: tmpl.Accepted,
			Options:  eligible,
		})
	}
	return a
}

func (a *Assignment) slotIndex(id string) int {
	return slices.IndexFunc(a.Slots, func(s Slot) bool { return s.ID == id })
}

func (a *Assignment) findOption(id string) (catalog.Option, bool) {
	for _, s := range a.Slots {
		for _, o := range s.Options {
			if o.ID == id {
				return o, true
			}
		}
	}
	return catalog.Option{}, false
}

// nextUnfilled returns the index of the first unfilled slot after from,
// wrapping around, or -1 when every slot is filled.
func (a *Assignment) nextUnfilled(from int) int {
	n := len(a.Slots)
	for step := 1; step <= n; step++ {
		i := (from + step) % n
		if !a.Slots[i].Filled {
			return i
		}
	}
	return -1
}

func (a *Assignment) clone() Assignment {
	c := *a
	c.Slots = make([]Slot, len(a.Slots))
	for i, s := range a.Slots {
		s.Options = slices.Clone(s.Options)
		c.Slots[i] = s
	}
	return c
}
