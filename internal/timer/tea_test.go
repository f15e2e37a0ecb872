package timer

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
)

func TestTea_FiresThroughHandle(t *testing.T) {
	s := NewTea()
	fired := 0
	s.AfterFunc(time.Millisecond, func() { fired++ })

	cmd := s.Flush()
	if cmd == nil {
		t.Fatal("expected a tick command")
	}
	if s.Flush() != nil {
		t.Error("second flush should be empty")
	}

	msg := cmd()
	if fired != 0 {
		t.Fatal("callback must not run on the tick goroutine")
	}
	if !s.Handle(msg) {
		t.Fatal("expected message to be handled")
	}
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
	if s.Pending() != 0 {
		t.Errorf("pending = %d, want 0", s.Pending())
	}

	// Redelivery is a no-op.
	s.Handle(msg)
	if fired != 1 {
		t.Errorf("fired = %d after redelivery, want 1", fired)
	}
}

func TestTea_StoppedTimerIsSwallowed(t *testing.T) {
	s := NewTea()
	fired := false
	tm := s.AfterFunc(time.Millisecond, func() { fired = true })
	if !tm.Stop() {
		t.Fatal("expected first Stop to report true")
	}
	if tm.Stop() {
		t.Error("expected second Stop to report false")
	}

	msg := s.Flush()()
	if !s.Handle(msg) {
		t.Error("stopped timer message should still be recognized")
	}
	if fired {
		t.Error("stopped timer fired")
	}
}

func TestTea_IgnoresForeignMessages(t *testing.T) {
	a, b := NewTea(), NewTea()
	b.AfterFunc(time.Millisecond, func() {})
	msg := b.Flush()()

	if a.Handle(msg) {
		t.Error("scheduler handled another scheduler's timer")
	}
	if a.Handle(tea.KeyPressMsg{}) {
		t.Error("scheduler handled a key press")
	}
}

func TestTea_BatchesQueuedTicks(t *testing.T) {
	s := NewTea()
	s.AfterFunc(time.Millisecond, func() {})
	s.AfterFunc(time.Millisecond, func() {})

	msg := s.Flush()()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected BatchMsg, got %T", msg)
	}
	if len(batch) != 2 {
		t.Errorf("batch = %d cmds, want 2", len(batch))
	}
	if s.Pending() != 2 {
		t.Errorf("pending = %d, want 2", s.Pending())
	}
}
