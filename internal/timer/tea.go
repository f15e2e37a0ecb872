package timer

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// FiredMsg is delivered to the Bubble Tea loop when a Tea timer elapses.
type FiredMsg struct {
	src *Tea
	id  int
}

// Tea is a Scheduler for code running inside a Bubble Tea program.
// Callbacks never run on the tick goroutine: each elapsed timer comes back
// as a FiredMsg and runs when the owner passes it to Handle from Update.
type Tea struct {
	next    int
	pending map[int]func()
	queue   []tea.Cmd
}

// NewTea creates an idle Tea scheduler.
func NewTea() *Tea {
	return &Tea{pending: make(map[int]func())}
}

type teaTimer struct {
	t  *Tea
	id int
}

func (tt teaTimer) Stop() bool {
	if _, ok := tt.t.pending[tt.id]; !ok {
		return false
	}
	delete(tt.t.pending, tt.id)
	return true
}

// AfterFunc schedules f. The tick starts immediately but is only handed to
// the runtime by the next Flush.
func (t *Tea) AfterFunc(d time.Duration, f func()) Timer {
	t.next++
	id := t.next
	t.pending[id] = f
	t.queue = append(t.queue, tea.Tick(d, func(time.Time) tea.Msg {
		return FiredMsg{src: t, id: id}
	}))
	return teaTimer{t: t, id: id}
}

// Flush returns the ticks scheduled since the last call.
func (t *Tea) Flush() tea.Cmd {
	if len(t.queue) == 0 {
		return nil
	}
	cmds := t.queue
	t.queue = nil
	return tea.Batch(cmds...)
}

// Handle runs the callback for msg if it is one of this scheduler's
// timers. It reports whether msg belonged to t. Stopped timers are
// swallowed silently.
func (t *Tea) Handle(msg tea.Msg) bool {
	fm, ok := msg.(FiredMsg)
	if !ok || fm.src != t {
		return false
	}
	f, ok := t.pending[fm.id]
	if !ok {
		return true
	}
	delete(t.pending, fm.id)
	f()
	return true
}

// Pending returns the number of timers that have neither fired nor been
// stopped.
func (t *Tea) Pending() int {
	return len(t.pending)
}
