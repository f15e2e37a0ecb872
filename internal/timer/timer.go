// Package timer abstracts delayed callbacks so game state can schedule
// cancelable timeouts without owning a goroutine or a wall clock.
package timer

import (
	"sort"
	"time"
)

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop cancels the callback. It returns false if the callback already
	// ran or was stopped before.
	Stop() bool
}

// Scheduler runs f once after d has elapsed.
//
// Implementations must invoke f on the caller's event loop, never
// concurrently with other calls into the code that scheduled it.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Manual is a Scheduler driven by explicit calls to Advance. It is used by
// tests and by headless replays where time is simulated.
type Manual struct {
	now     time.Duration
	nextID  int
	pending []*manualTimer
}

type manualTimer struct {
	m   *Manual
	id  int
	at  time.Duration
	f   func()
	off bool
}

// NewManual creates a Manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc schedules f at now+d.
func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	m.nextID++
	t := &manualTimer{m: m, id: m.nextID, at: m.now + d, f: f}
	m.pending = append(m.pending, t)
	return t
}

// Now returns the simulated time elapsed since creation.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending returns the number of callbacks that have not run or been stopped.
func (m *Manual) Pending() int {
	return len(m.pending)
}

// Advance moves the clock forward by d and runs every callback that became
// due, in deadline order. Callbacks scheduled while advancing run in the
// same pass if they fall within the window.
func (m *Manual) Advance(d time.Duration) {
	end := m.now + d
	for {
		t := m.nextDue(end)
		if t == nil {
			break
		}
		m.remove(t)
		if t.at > m.now {
			m.now = t.at
		}
		t.off = true
		t.f()
	}
	m.now = end
}

func (m *Manual) nextDue(end time.Duration) *manualTimer {
	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].at == m.pending[j].at {
			return m.pending[i].id < m.pending[j].id
		}
		return m.pending[i].at < m.pending[j].at
	})
	if len(m.pending) == 0 || m.pending[0].at > end {
		return nil
	}
	return m.pending[0]
}

func (m *Manual) remove(t *manualTimer) {
	for i, p := range m.pending {
		if p == t {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}

func (t *manualTimer) Stop() bool {
	if t.off {
		return false
	}
	t.off = true
	t.m.remove(t)
	return true
}
