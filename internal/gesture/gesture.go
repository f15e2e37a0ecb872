// Package gesture turns pointer drags, touch drags and taps into placement
// attempts. It keeps only transient gesture state; the placement rule lives
// in the engine.
package gesture

import "github.com/abhisek/aistack/internal/stack"

// Placer is the part of the engine the adapter drives.
type Placer interface {
	AttemptPlacement(optionID, slotID string) stack.Result
	DisplayedSlot() string
}

// Point is a position in the host's coordinate space.
type Point struct {
	X, Y int
}

// HitTester resolves the slot under a point. It returns "" when the point
// is not over a slot.
type HitTester interface {
	SlotAt(p Point) string
}

// ScrollLocker suppresses page scrolling while a touch drag is in progress.
type ScrollLocker interface {
	Lock()
	Unlock()
}

// HitTestFunc adapts a function to HitTester.
type HitTestFunc func(p Point) string

func (f HitTestFunc) SlotAt(p Point) string { return f(p) }

type nopLocker struct{}

func (nopLocker) Lock()   {}
func (nopLocker) Unlock() {}

// Adapter normalizes the three input paths onto Placer.AttemptPlacement.
type Adapter struct {
	placer Placer
	hits   HitTester
	scroll ScrollLocker

	grabbed string
	hovered string
	touch   *Point
	locked  bool
}

// New creates an adapter. A nil locker disables scroll locking.
func New(p Placer, hits HitTester, scroll ScrollLocker) *Adapter {
	if scroll == nil {
		scroll = nopLocker{}
	}
	return &Adapter{placer: p, hits: hits, scroll: scroll}
}

// Grabbed returns the option currently held, or "".
func (a *Adapter) Grabbed() string { return a.grabbed }

// Hovered returns the slot under the held option, or "".
func (a *Adapter) Hovered() string { return a.hovered }

// Active reports whether a drag or touch gesture is in progress.
func (a *Adapter) Active() bool { return a.grabbed != "" }

// TouchPoint returns the last touch position while a touch drag is active.
func (a *Adapter) TouchPoint() (Point, bool) {
	if a.touch == nil {
		return Point{}, false
	}
	return *a.touch, true
}

// DragStart picks up an option with a pointer.
func (a *Adapter) DragStart(optionID string) {
	a.grabbed = optionID
	a.hovered = ""
}

// DragOver marks slotID as the current drop target.
func (a *Adapter) DragOver(slotID string) {
	if a.grabbed == "" {
		return
	}
	a.hovered = slotID
}

// DragLeave clears the drop target highlight.
func (a *Adapter) DragLeave() {
	a.hovered = ""
}

// Drop attempts to place the held option on slotID. Dropping with nothing
// held is ignored by the engine.
func (a *Adapter) Drop(slotID string) stack.Result {
	res := a.placer.AttemptPlacement(a.grabbed, slotID)
	a.hovered = ""
	return res
}

// DragEnd finishes a pointer gesture whether or not it dropped anywhere.
func (a *Adapter) DragEnd() {
	a.grabbed = ""
	a.hovered = ""
}

// TouchStart picks up an option with a finger and locks scrolling.
func (a *Adapter) TouchStart(optionID string, p Point) {
	a.grabbed = optionID
	a.touch = &p
	a.hovered = a.hits.SlotAt(p)
	if !a.locked {
		a.scroll.Lock()
		a.locked = true
	}
}

// TouchMove tracks the finger and the slot beneath it.
func (a *Adapter) TouchMove(p Point) {
	if a.grabbed == "" {
		return
	}
	a.touch = &p
	a.hovered = a.hits.SlotAt(p)
}

// TouchEnd attempts a placement when the finger lifts over a slot. Gesture
// state is cleared and scrolling unlocked in every case.
func (a *Adapter) TouchEnd(p Point) stack.Result {
	var res stack.Result
	if a.grabbed != "" {
		if slot := a.hits.SlotAt(p); slot != "" {
			res = a.placer.AttemptPlacement(a.grabbed, slot)
		} else {
			res = stack.Result{OptionID: a.grabbed}
		}
	}
	a.clearTouch()
	return res
}

// TouchCancel abandons a touch drag without attempting a placement.
func (a *Adapter) TouchCancel() {
	a.clearTouch()
}

func (a *Adapter) clearTouch() {
	a.grabbed = ""
	a.hovered = ""
	a.touch = nil
	if a.locked {
		a.scroll.Unlock()
		a.locked = false
	}
}

// Tap places optionID on the displayed slot. With no slot displayed it does
// nothing.
func (a *Adapter) Tap(optionID string) stack.Result {
	slot := a.placer.DisplayedSlot()
	if slot == "" {
		return stack.Result{OptionID: optionID}
	}
	return a.placer.AttemptPlacement(optionID, slot)
}
