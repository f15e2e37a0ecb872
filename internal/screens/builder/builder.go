// Package builder is the stack-matching game screen.
package builder

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/aistack/internal/gesture"
	"github.com/abhisek/aistack/internal/screen"
	"github.com/abhisek/aistack/internal/stack"
	"github.com/abhisek/aistack/internal/store"
	"github.com/abhisek/aistack/internal/timer"
	"github.com/abhisek/aistack/internal/ui/components"
	"github.com/abhisek/aistack/internal/ui/layout"
)

// Input paths recorded with each attempt.
const (
	inputTap   = "tap"
	inputDrag  = "drag"
	inputTouch = "touch"
)

// Navigator receives the finished assignment.
type Navigator interface {
	Complete(a stack.Assignment) tea.Cmd
	Home() tea.Cmd
}

// Options wires a builder screen.
type Options struct {
	Source   stack.Source
	Rand     stack.Rand
	Config   stack.Config
	Recorder *store.Recorder
	Logger   *zap.Logger
}

// scrollLock counts nested locks; the wheel is ignored while held.
type scrollLock struct {
	depth int
}

func (l *scrollLock) Lock() { l.depth++ }

func (l *scrollLock) Unlock() {
	if l.depth > 0 {
		l.depth--
	}
}

func (l *scrollLock) Locked() bool { return l.depth > 0 }

// BuilderScreen hosts one engine session.
type BuilderScreen struct {
	nav    Navigator
	sched  *timer.Tea
	engine *stack.Engine
	input  *gesture.Adapter
	scroll *scrollLock
	rec    *store.Recorder
	logger *zap.Logger
	home   components.Button

	optCursor     int
	lastDisplayed string
	keyDrag       bool
	hoverIdx      int

	ready    bool
	advanced bool
	disposed bool

	width  int
	height int
}

var _ screen.Screen = (*BuilderScreen)(nil)
var _ screen.KeyHintProvider = (*BuilderScreen)(nil)
var _ screen.Disposer = (*BuilderScreen)(nil)
var _ layout.StatusProvider = (*BuilderScreen)(nil)

// New starts a fresh session for category.
func New(nav Navigator, category string, opts Options) *BuilderScreen {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &BuilderScreen{
		nav:    nav,
		sched:  timer.NewTea(),
		scroll: &scrollLock{},
		rec:    opts.Recorder,
		logger: logger,
		home:   components.NewButton("Back to start", true, nav.Home),
	}
	s.engine = stack.New(opts.Source, s.sched, opts.Rand, opts.Config)
	s.engine.OnReady(func(string) { s.ready = true })
	s.input = gesture.New(s.engine, gesture.HitTestFunc(s.slotAt), s.scroll)

	id := s.engine.Initialize(category)
	s.lastDisplayed = s.engine.DisplayedSlot()
	filled, total := s.engine.Progress()
	s.logger.Info("session started",
		zap.String("session_id", id),
		zap.String("category", category),
		zap.Int("slots", total),
		zap.Int("filled", filled))
	return s
}

// Engine exposes the session for inspection.
func (s *BuilderScreen) Engine() *stack.Engine {
	return s.engine
}

func (s *BuilderScreen) Init() tea.Cmd {
	return s.record(store.GameEventData{Kind: store.KindStart})
}

func (s *BuilderScreen) Title() string {
	if b := s.engine.Board(); b.Name != "" {
		return b.Name
	}
	return "Build Your Stack"
}

func (s *BuilderScreen) KeyHints() []layout.KeyHint {
	if s.empty() {
		return []layout.KeyHint{{Key: "Enter", Description: "Back to start"}}
	}
	if s.keyDrag {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Hover slot"},
			{Key: "Space/Enter", Description: "Drop"},
			{Key: "Esc", Description: "Release"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Slot"},
		{Key: "←→", Description: "Option"},
		{Key: "Enter", Description: "Place"},
		{Key: "Space", Description: "Grab"},
		{Key: "Esc", Description: "Home"},
	}
}

// HeaderStatus shows stack progress.
func (s *BuilderScreen) HeaderStatus() string {
	filled, total := s.engine.Progress()
	if total == 0 {
		return ""
	}
	bar := components.NewProgressBar("", float64(filled)/float64(total), false, 12)
	return fmt.Sprintf("%s %d/%d", bar.View(), filled, total)
}

// Dispose ends the session. An unfinished session is recorded as abandoned.
func (s *BuilderScreen) Dispose() tea.Cmd {
	if s.disposed {
		return nil
	}
	s.disposed = true
	s.input.TouchCancel()
	s.input.DragEnd()

	var cmd tea.Cmd
	if _, total := s.engine.Progress(); total > 0 && !s.engine.IsComplete() {
		cmd = s.record(store.GameEventData{Kind: store.KindAbandon})
	}
	s.engine.Reset()
	return cmd
}

func (s *BuilderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height

	case timer.FiredMsg:
		s.sched.Handle(msg)

	case tea.KeyPressMsg:
		cmds = append(cmds, s.handleKey(msg))

	case tea.MouseClickMsg:
		cmds = append(cmds, s.handleClick(msg.Mouse()))

	case tea.MouseMotionMsg:
		if _, ok := s.input.TouchPoint(); ok {
			m := msg.Mouse()
			s.input.TouchMove(gesture.Point{X: m.X, Y: m.Y})
		}

	case tea.MouseReleaseMsg:
		if _, ok := s.input.TouchPoint(); ok {
			m := msg.Mouse()
			res := s.input.TouchEnd(gesture.Point{X: m.X, Y: m.Y})
			cmds = append(cmds, s.afterAttempt(res, inputTouch))
		}

	case tea.MouseWheelMsg:
		if !s.scroll.Locked() && !s.keyDrag {
			switch msg.Mouse().Button {
			case tea.MouseWheelUp:
				s.moveSlot(-1)
			case tea.MouseWheelDown:
				s.moveSlot(1)
			}
		}
	}

	s.syncCursor()
	if s.ready && !s.advanced {
		s.advanced = true
		s.logger.Info("stack ready", zap.String("session_id", s.engine.SessionID()))
		cmds = append(cmds, s.nav.Complete(s.engine.Assignment()))
	}
	cmds = append(cmds, s.sched.Flush())
	return s, tea.Batch(cmds...)
}

func (s *BuilderScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if s.empty() {
		if msg.String() == "esc" {
			return s.nav.Home()
		}
		var cmd tea.Cmd
		s.home, cmd = s.home.Update(msg)
		return cmd
	}
	if s.keyDrag {
		return s.handleDragKey(msg)
	}
	if _, ok := s.input.TouchPoint(); ok {
		if msg.String() == "esc" {
			s.input.TouchCancel()
		}
		return nil
	}

	offered := s.engine.Offered()
	switch msg.String() {
	case "up", "k":
		s.moveSlot(-1)
	case "down", "j":
		s.moveSlot(1)
	case "left", "h":
		if s.optCursor > 0 {
			s.optCursor--
		}
	case "right", "l":
		if s.optCursor < len(offered)-1 {
			s.optCursor++
		}
	case "enter":
		if s.optCursor < len(offered) {
			res := s.input.Tap(offered[s.optCursor].ID)
			return s.afterAttempt(res, inputTap)
		}
	case "space":
		if s.optCursor < len(offered) {
			s.keyDrag = true
			s.hoverIdx = s.displayedIndex()
			s.input.DragStart(offered[s.optCursor].ID)
			s.input.DragOver(s.slotIDAt(s.hoverIdx))
		}
	case "esc":
		return s.nav.Home()
	}
	return nil
}

func (s *BuilderScreen) handleDragKey(msg tea.KeyPressMsg) tea.Cmd {
	n := len(s.engine.Board().Slots)
	switch msg.String() {
	case "up", "k":
		s.hoverIdx = (s.hoverIdx - 1 + n) % n
		s.input.DragOver(s.slotIDAt(s.hoverIdx))
	case "down", "j":
		s.hoverIdx = (s.hoverIdx + 1) % n
		s.input.DragOver(s.slotIDAt(s.hoverIdx))
	case "space", "enter":
		res := s.input.Drop(s.slotIDAt(s.hoverIdx))
		s.input.DragEnd()
		s.keyDrag = false
		return s.afterAttempt(res, inputDrag)
	case "esc":
		s.input.DragLeave()
		s.input.DragEnd()
		s.keyDrag = false
	}
	return nil
}

func (s *BuilderScreen) handleClick(m tea.Mouse) tea.Cmd {
	if m.Button != tea.MouseLeft || s.keyDrag {
		return nil
	}
	if s.empty() {
		return s.nav.Home()
	}
	p := gesture.Point{X: m.X, Y: m.Y}
	if opt, ok := s.optionAt(p); ok {
		s.input.TouchStart(opt.ID, p)
		return nil
	}
	if id := s.slotAt(p); id != "" {
		s.engine.SelectSlot(id)
	}
	return nil
}

func (s *BuilderScreen) afterAttempt(res stack.Result, input string) tea.Cmd {
	if res.Outcome == stack.OutcomeIgnored {
		return nil
	}
	filled, total := s.engine.Progress()
	s.logger.Debug("placement attempt",
		zap.String("session_id", s.engine.SessionID()),
		zap.String("option_id", res.OptionID),
		zap.String("slot_id", res.SlotID),
		zap.Stringer("outcome", res.Outcome),
		zap.String("input", input))

	events := []store.GameEventData{{
		Kind:     store.KindAttempt,
		SlotID:   res.SlotID,
		OptionID: res.OptionID,
		Outcome:  res.Outcome.String(),
		Input:    input,
		Filled:   filled,
		Total:    total,
	}}
	if res.Completed {
		s.logger.Info("stack complete", zap.String("session_id", s.engine.SessionID()))
		events = append(events, store.GameEventData{Kind: store.KindComplete})
	}
	return s.record(events...)
}

// record returns one command that appends events for the current session
// in the given order.
func (s *BuilderScreen) record(events ...store.GameEventData) tea.Cmd {
	if s.rec == nil || len(events) == 0 {
		return nil
	}
	for i := range events {
		events[i].SessionID = s.engine.SessionID()
		events[i].Category = s.engine.Category()
		if events[i].Total == 0 {
			events[i].Filled, events[i].Total = s.engine.Progress()
		}
	}
	rec := s.rec
	return func() tea.Msg {
		for _, data := range events {
			rec.Record(context.Background(), data)
		}
		return nil
	}
}

func (s *BuilderScreen) empty() bool {
	_, total := s.engine.Progress()
	return total == 0
}

func (s *BuilderScreen) displayedIndex() int {
	id := s.engine.DisplayedSlot()
	for i, sl := range s.engine.Board().Slots {
		if sl.ID == id {
			return i
		}
	}
	return 0
}

func (s *BuilderScreen) slotIDAt(i int) string {
	slots := s.engine.Board().Slots
	if i < 0 || i >= len(slots) {
		return ""
	}
	return slots[i].ID
}

// moveSlot displays the slot delta rows away, wrapping.
func (s *BuilderScreen) moveSlot(delta int) {
	n := len(s.engine.Board().Slots)
	if n == 0 {
		return
	}
	i := s.displayedIndex()
	if s.engine.DisplayedSlot() == "" && delta > 0 {
		i = -1
	}
	s.engine.SelectSlot(s.slotIDAt(((i+delta)%n + n) % n))
}

// syncCursor resets the option cursor whenever another slot is displayed.
func (s *BuilderScreen) syncCursor() {
	if id := s.engine.DisplayedSlot(); id != s.lastDisplayed {
		s.lastDisplayed = id
		s.optCursor = 0
	}
}
