// Package stack implements the stack-building matching game: a set of slots
// for the chosen outcome, the options offered for each, and the placement
// rule that fills them.
package stack

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/aistack/internal/catalog"
	"github.com/abhisek/aistack/internal/timer"
)

const (
	// DefaultFeedbackDelay is how long a success or wrong marker stays visible.
	DefaultFeedbackDelay = time.Second

	// DefaultSettleDelay separates completion from the ready signal so the
	// final success feedback can be seen.
	DefaultSettleDelay = time.Second
)

// Config holds engine timings.
type Config struct {
	FeedbackDelay time.Duration
	SettleDelay   time.Duration
}

// DefaultConfig returns the reference timings.
func DefaultConfig() Config {
	return Config{
		FeedbackDelay: DefaultFeedbackDelay,
		SettleDelay:   DefaultSettleDelay,
	}
}

// Outcome classifies a placement attempt.
type Outcome int

const (
	// OutcomeIgnored means nothing was attempted (no option in hand or an
	// option that is not part of the assignment).
	OutcomeIgnored Outcome = iota
	// OutcomePlaced means the target slot is filled.
	OutcomePlaced
	// OutcomeRejected means the option does not belong in the target slot.
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlaced:
		return "placed"
	case OutcomeRejected:
		return "rejected"
	default:
		return "ignored"
	}
}

// Result reports what a placement attempt did.
type Result struct {
	Outcome  Outcome
	OptionID string
	SlotID   string
	Label    string // text of the attempted option
	// Completed is true when this attempt filled the last unfilled slot.
	Completed bool
}

// FeedbackKind is the flavor of the transient marker.
type FeedbackKind string

const (
	FeedbackPlaced FeedbackKind = "placed"
	FeedbackWrong  FeedbackKind = "wrong"
)

// Feedback is a transient presentation hint for the last attempt.
type Feedback struct {
	Kind     FeedbackKind
	SlotID   string
	OptionID string
}

type session struct {
	id         string
	assignment Assignment
	displayed  int // index into assignment.Slots, -1 for none

	feedback      *Feedback
	feedbackTimer timer.Timer
	settleTimer   timer.Timer
	ready         bool
}

// Engine holds the state of one matching-game session at a time.
//
// Engine is not safe for concurrent use. All calls, and every callback it
// schedules, must run on the same event loop.
type Engine struct {
	src     Source
	sched   timer.Scheduler
	rng     Rand
	cfg     Config
	newID   func() string
	onReady func(sessionID string)

	sess *session
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithIDGenerator overrides how session ids are produced.
func WithIDGenerator(f func() string) EngineOption {
	return func(e *Engine) { e.newID = f }
}

// New creates an engine with no active session.
func New(src Source, sched timer.Scheduler, rng Rand, cfg Config, opts ...EngineOption) *Engine {
	e := &Engine{
		src:   src,
		sched: sched,
		rng:   rng,
		cfg:   cfg,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OnReady registers the handler invoked once per session, a settle delay
// after the last slot is filled.
func (e *Engine) OnReady(f func(sessionID string)) {
	e.onReady = f
}

// Initialize starts a fresh session for category, discarding the previous
// one and its pending timers. Options are reshuffled on every call. An
// unknown category produces an empty assignment.
func (e *Engine) Initialize(category string) string {
	e.teardown()

	s := &session{
		id:         e.newID(),
		assignment: buildAssignment(e.src, category, e.rng),
		displayed:  -1,
	}
	if len(s.assignment.Slots) > 0 {
		s.displayed = 0
	}
	e.sess = s
	return s.id
}

// Reset destroys the current session.
func (e *Engine) Reset() {
	e.teardown()
	e.sess = nil
}

func (e *Engine) teardown() {
	if e.sess == nil {
		return
	}
	if e.sess.feedbackTimer != nil {
		e.sess.feedbackTimer.Stop()
	}
	if e.sess.settleTimer != nil {
		e.sess.settleTimer.Stop()
	}
}

// SessionID returns the id of the active session, or "".
func (e *Engine) SessionID() string {
	if e.sess == nil {
		return ""
	}
	return e.sess.id
}

// Category returns the category of the active session, or "".
func (e *Engine) Category() string {
	if e.sess == nil {
		return ""
	}
	return e.sess.assignment.Category
}

// SelectSlot displays the slot with the given id. Unknown ids are ignored.
// Filled slots may be selected again for inspection.
func (e *Engine) SelectSlot(slotID string) {
	if e.sess == nil {
		return
	}
	if i := e.sess.assignment.slotIndex(slotID); i >= 0 {
		e.sess.displayed = i
	}
}

// DisplayedSlot returns the id of the displayed slot, or "" when none is.
func (e *Engine) DisplayedSlot() string {
	if e.sess == nil || e.sess.displayed < 0 {
		return ""
	}
	return e.sess.assignment.Slots[e.sess.displayed].ID
}

// Offered returns the options of the displayed slot.
func (e *Engine) Offered() []catalog.Option {
	if e.sess == nil || e.sess.displayed < 0 {
		return nil
	}
	opts := e.sess.assignment.Slots[e.sess.displayed].Options
	out := make([]catalog.Option, len(opts))
	copy(out, opts)
	return out
}

// AttemptPlacement drops option optionID onto slot targetSlotID. The
// attempt succeeds iff the option targets that slot and is the correct
// option. Correctness is judged against the drop target, not the slot the
// option was offered under.
func (e *Engine) AttemptPlacement(optionID, targetSlotID string) Result {
	res := Result{OptionID: optionID, SlotID: targetSlotID}
	if e.sess == nil || optionID == "" {
		return res
	}
	a := &e.sess.assignment
	opt, ok := a.findOption(optionID)
	if !ok {
		return res
	}
	res.Label = opt.Text

	idx := a.slotIndex(targetSlotID)
	if idx < 0 || opt.Target != targetSlotID || !opt.Correct {
		res.Outcome = OutcomeRejected
		e.setFeedback(Feedback{Kind: FeedbackWrong, SlotID: targetSlotID, OptionID: optionID})
		return res
	}

	wasComplete := e.IsComplete()
	a.Slots[idx].Filled = true
	a.Slots[idx].FilledBy = opt.ID
	e.sess.displayed = a.nextUnfilled(idx)

	res.Outcome = OutcomePlaced
	e.setFeedback(Feedback{Kind: FeedbackPlaced, SlotID: targetSlotID, OptionID: optionID})

	if !wasComplete && e.IsComplete() {
		res.Completed = true
		e.scheduleReady()
	}
	return res
}

func (e *Engine) setFeedback(fb Feedback) {
	s := e.sess
	if s.feedbackTimer != nil {
		s.feedbackTimer.Stop()
	}
	s.feedback = &fb
	s.feedbackTimer = e.sched.AfterFunc(e.cfg.FeedbackDelay, func() {
		if e.sess != s {
			return
		}
		s.feedback = nil
		s.feedbackTimer = nil
	})
}

func (e *Engine) scheduleReady() {
	s := e.sess
	if s.settleTimer != nil || s.ready {
		return
	}
	s.settleTimer = e.sched.AfterFunc(e.cfg.SettleDelay, func() {
		if e.sess != s || s.ready {
			return
		}
		s.ready = true
		s.settleTimer = nil
		if e.onReady != nil {
			e.onReady(s.id)
		}
	})
}

// Progress returns the number of filled slots and the number of slots.
func (e *Engine) Progress() (filled, total int) {
	if e.sess == nil {
		return 0, 0
	}
	for _, s := range e.sess.assignment.Slots {
		if s.Filled {
			filled++
		}
	}
	return filled, len(e.sess.assignment.Slots)
}

// IsComplete reports whether every slot is filled. An empty assignment is
// never complete.
func (e *Engine) IsComplete() bool {
	filled, total := e.Progress()
	return total > 0 && filled == total
}

// Ready reports whether the ready signal has fired for the active session.
func (e *Engine) Ready() bool {
	return e.sess != nil && e.sess.ready
}

// Feedback returns the current transient marker, or nil.
func (e *Engine) Feedback() *Feedback {
	if e.sess == nil || e.sess.feedback == nil {
		return nil
	}
	fb := *e.sess.feedback
	return &fb
}

// Assignment returns a copy of the active assignment.
func (e *Engine) Assignment() Assignment {
	if e.sess == nil {
		return Assignment{}
	}
	return e.sess.assignment.clone()
}
