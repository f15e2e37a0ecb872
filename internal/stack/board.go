package stack

import "github.com/abhisek/aistack/internal/catalog"

// SlotView is the observable state of one slot.
type SlotView struct {
	ID         string
	Name       string
	Accepted   string
	Filled     bool
	Displayed  bool
	FilledWith string // text of the option that filled it
	Options    []catalog.Option
}

// Board is a read-only snapshot of a session for rendering.
type Board struct {
	SessionID   string
	Category    string
	ComponentID string
	Name        string
	Description string
	Slots       []SlotView
	Filled      int
	Total       int
	Complete    bool
	Ready       bool
	Feedback    *Feedback
}

// Displayed returns the displayed slot, if any.
func (b Board) Displayed() (SlotView, bool) {
	for _, s := range b.Slots {
		if s.Displayed {
			return s, true
		}
	}
	return SlotView{}, false
}

// Board returns a snapshot of the active session. With no session the
// board is empty.
func (e *Engine) Board() Board {
	if e.sess == nil {
		return Board{}
	}
	a := e.sess.assignment.clone()
	b := Board{
		SessionID:   e.sess.id,
		Category:    a.Category,
		ComponentID: a.ComponentID,
		Name:        a.Name,
		Description: a.Description,
		Slots:       make([]SlotView, 0, len(a.Slots)),
		Ready:       e.sess.ready,
		Feedback:    e.Feedback(),
	}
	for i, s := range a.Slots {
		v := SlotView{
			ID:        s.ID,
			Name:      s.Name,
			Accepted:  s.Accepted,
			Filled:    s.Filled,
			Displayed: i == e.sess.displayed,
			Options:   s.Options,
		}
		if s.Filled {
			if o, ok := a.findOption(s.FilledBy); ok {
				v.FilledWith = o.Text
			}
		}
		b.Slots = append(b.Slots, v)
	}
	b.Filled, b.Total = e.Progress()
	b.Complete = e.IsComplete()
	return b
}
