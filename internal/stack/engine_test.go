package stack

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aistack/internal/catalog"
	"github.com/abhisek/aistack/internal/timer"
)

type harness struct {
	eng   *Engine
	clock *timer.Manual
	ready []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{clock: timer.NewManual()}
	n := 0
	h.eng = New(catalog.Default(), h.clock, rand.New(rand.NewPCG(3, 4)), DefaultConfig(),
		WithIDGenerator(func() string {
			n++
			return "session-" + string(rune('0'+n))
		}))
	h.eng.OnReady(func(id string) { h.ready = append(h.ready, id) })
	return h
}

func TestInitialize_EveryCategory(t *testing.T) {
	h := newHarness(t)
	for _, cat := range catalog.Default().Categories() {
		h.eng.Initialize(cat.ID)
		a := h.eng.Assignment()
		require.NotEmpty(t, a.Slots, cat.ID)
		assert.Equal(t, cat.Component.Name, a.Name)
		for _, s := range a.Slots {
			require.NotEmpty(t, s.Options, "%s/%s", cat.ID, s.ID)
			var correct int
			for _, o := range s.Options {
				assert.Equal(t, s.ID, o.Target)
				if o.Correct {
					correct++
				}
			}
			assert.Equal(t, 1, correct, "%s/%s", cat.ID, s.ID)
		}
		assert.Equal(t, a.Slots[0].ID, h.eng.DisplayedSlot())
		filled, total := h.eng.Progress()
		assert.Equal(t, 0, filled)
		assert.Equal(t, len(a.Slots), total)
	}
}

func TestInitialize_ReshufflesEachTime(t *testing.T) {
	h := newHarness(t)
	seen := map[string]bool{}
	for range 20 {
		h.eng.Initialize("button-1")
		var ids []string
		for _, s := range h.eng.Assignment().Slots {
			for _, o := range s.Options {
				ids = append(ids, o.ID)
			}
		}
		seen[strings.Join(ids, ",")] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestInitialize_NewSessionID(t *testing.T) {
	h := newHarness(t)
	first := h.eng.Initialize("button-1")
	second := h.eng.Initialize("button-1")
	assert.NotEqual(t, first, second)
	assert.Equal(t, second, h.eng.SessionID())
}

func TestButton2_FullRun(t *testing.T) {
	h := newHarness(t)
	h.eng.Initialize("button-2")

	a := h.eng.Assignment()
	require.Len(t, a.Slots, 4)
	for _, s := range a.Slots {
		assert.NotEqual(t, "edge-deployment", s.ID)
	}

	res := h.eng.AttemptPlacement("opt-17", "hardware")
	assert.Equal(t, OutcomeRejected, res.Outcome)
	assert.Equal(t, "PowerEdge R-Series", res.Label)
	filled, _ := h.eng.Progress()
	assert.Equal(t, 0, filled)
	require.NotNil(t, h.eng.Feedback())
	assert.Equal(t, FeedbackWrong, h.eng.Feedback().Kind)

	res = h.eng.AttemptPlacement("opt-16", "hardware")
	assert.Equal(t, OutcomePlaced, res.Outcome)
	assert.False(t, res.Completed)
	assert.Equal(t, "software-ai", h.eng.DisplayedSlot())

	for _, step := range []struct{ opt, slot string }{
		{"opt-19", "software-ai"},
		{"opt-22", "ai-services"},
	} {
		res = h.eng.AttemptPlacement(step.opt, step.slot)
		require.Equal(t, OutcomePlaced, res.Outcome, step.opt)
		assert.False(t, res.Completed)
	}
	assert.False(t, h.eng.IsComplete())

	res = h.eng.AttemptPlacement("opt-25", "security")
	assert.Equal(t, OutcomePlaced, res.Outcome)
	assert.True(t, res.Completed)

	filled, total := h.eng.Progress()
	assert.Equal(t, 4, filled)
	assert.Equal(t, 4, total)
	assert.True(t, h.eng.IsComplete())
	assert.Empty(t, h.eng.DisplayedSlot())

	assert.Empty(t, h.ready)
	h.clock.Advance(DefaultSettleDelay)
	assert.Equal(t, []string{h.eng.SessionID()}, h.ready)
	assert.True(t, h.eng.Ready())

	h.clock.Advance(10 * time.Second)
	assert.Len(t, h.ready, 1)
}

func TestUnknownCategory(t *testing.T) {
	h := newHarness(t)
	h.eng.Initialize("button-99")

	filled, total := h.eng.Progress()
	assert.Equal(t, 0, filled)
	assert.Equal(t, 0, total)
	assert.False(t, h.eng.IsComplete())
	assert.Empty(t, h.eng.DisplayedSlot())
	assert.Equal(t, OutcomeIgnored, h.eng.AttemptPlacement("opt-1", "hardware").Outcome)

	h.clock.Advance(time.Minute)
	assert.Empty(t, h.ready)
}

func TestCrossWiringRejected(t *testing.T) {
	h := newHarness(t)
	h.eng.Initialize("button-1")
	for _, opt := range []string{"opt-1", "opt-2", "opt-3"} {
		res := h.eng.AttemptPlacement(opt, "security")
		assert.Equal(t, OutcomeRejected, res.Outcome, opt)
	}
	filled, _ := h.eng.Progress()
	assert.Equal(t, 0, filled)
}

func TestAttemptPlacement_Ignored(t *testing.T) {
	h := newHarness(t)
	h.eng.Initialize("button-2")

	tests := []struct {
		name   string
		option string
		slot   string
		want   Outcome
	}{
		{"nothing dragged", "", "hardware", OutcomeIgnored},
		{"option from another category", "opt-1", "hardware", OutcomeIgnored},
		{"unknown option", "opt-999", "hardware", OutcomeIgnored},
		{"unknown slot", "opt-16", "nowhere", OutcomeRejected},
		{"slot missing from category", "opt-16", "edge-deployment", OutcomeRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := h.eng.AttemptPlacement(tt.option, tt.slot)
			assert.Equal(t, tt.want, res.Outcome)
		})
	}
	filled, _ := h.eng.Progress()
	assert.Equal(t, 0, filled)
}

func TestAttemptPlacement_NoSession(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, OutcomeIgnored, h.eng.AttemptPlacement("opt-1", "hardware").Outcome)
	assert.Nil(t, h.eng.Feedback())
}

func TestAttemptPlacement_Idempotent(t *testing.T) {
	h := newHarness(t)
	h.eng.Initialize("button-1")

	for range 3 {
		res := h.eng.AttemptPlacement("opt-1", "hardware")
		assert.Equal(t, OutcomePlaced, res.Outcome)
		assert.False(t, res.Completed)
	}
	filled, total := h.eng.Progress()
	assert.Equal(t, 1, filled)
	assert.Equal(t, 5, total)
}

func TestAttemptPlacement_Monotonic(t *testing.T) {
	h := newHarness(t)
	h.eng.Initialize("button-1")
	h.eng.AttemptPlacement("opt-1", "hardware")

	// Wrong drops on a filled slot never clear it.
	h.eng.AttemptPlacement("opt-2", "hardware")
	h.eng.AttemptPlacement("opt-4", "hardware")
	h.clock.Advance(time.Minute)

	a := h.eng.Assignment()
	assert.True(t, a.Slots[0].Filled)
	assert.Equal(t, "opt-1", a.Slots[0].FilledBy)
}

func TestAttemptPlacement_DisplayedWraps(t *testing.T) {
	h := newHarness(t)
	h.eng.Initialize("button-2")

	h.eng.SelectSlot("security")
	h.eng.AttemptPlacement("opt-25", "security")
	assert.Equal(t, "hardware", h.eng.DisplayedSlot())

	h.eng.AttemptPlacement("opt-16", "hardware")
	assert.Equal(t, "software-ai", h.eng.DisplayedSlot())

	// Dropping on a slot that is not displayed still advances from the target.
	h.eng.AttemptPlacement("opt-22", "ai-services")
	assert.Equal(t, "software-ai", h.eng.DisplayedSlot())
}

func TestSelectSlot(t *testing.T) {
	h := newHarness(t)
	h.eng.Initialize("button-2")

	h.eng.SelectSlot("ai-services")
	assert.Equal(t, "ai-services", h.eng.DisplayedSlot())

	h.eng.SelectSlot("edge-deployment")
	assert.Equal(t, "ai-services", h.eng.DisplayedSlot())

	h.eng.AttemptPlacement("opt-16", "hardware")
	h.eng.SelectSlot("hardware")
	assert.Equal(t, "hardware", h.eng.DisplayedSlot())

	offered := h.eng.Offered()
	require.Len(t, offered, 3)
	ids := []string{offered[0].ID, offered[1].ID, offered[2].ID}
	slices.Sort(ids)
	assert.Equal(t, []string{"opt-16", "opt-17", "opt-18"}, ids)
}

func TestFeedback_ClearsAfterDelay(t *testing.T) {
	h := newHarness(t)
	h.eng.Initialize("button-1")

	h.eng.AttemptPlacement("opt-1", "hardware")
	fb := h.eng.Feedback()
	require.NotNil(t, fb)
	assert.Equal(t, Feedback{Kind: FeedbackPlaced, SlotID: "hardware", OptionID: "opt-1"}, *fb)

	h.clock.Advance(DefaultFeedbackDelay - time.Millisecond)
	assert.NotNil(t, h.eng.Feedback())
	h.clock.Advance(time.Millisecond)
	assert.Nil(t, h.eng.Feedback())
}

func TestFeedback_NewMarkerRestartsDelay(t *testing.T) {
	h := newHarness(t)
	h.eng.Initialize("button-1")

	h.eng.AttemptPlacement("opt-2", "hardware")
	h.clock.Advance(600 * time.Millisecond)
	h.eng.AttemptPlacement("opt-3", "hardware")
	assert.Equal(t, 1, h.clock.Pending())

	h.clock.Advance(600 * time.Millisecond)
	fb := h.eng.Feedback()
	require.NotNil(t, fb)
	assert.Equal(t, "opt-3", fb.OptionID)

	h.clock.Advance(400 * time.Millisecond)
	assert.Nil(t, h.eng.Feedback())
}

func TestReady_SupersededSessionNeverFires(t *testing.T) {
	h := newHarness(t)
	h.eng.Initialize("button-2")
	for _, step := range [][2]string{{"opt-16", "hardware"}, {"opt-19", "software-ai"}, {"opt-22", "ai-services"}, {"opt-25", "security"}} {
		h.eng.AttemptPlacement(step[0], step[1])
	}
	require.True(t, h.eng.IsComplete())

	h.eng.Initialize("button-2")
	assert.Equal(t, 0, h.clock.Pending())
	h.clock.Advance(time.Minute)
	assert.Empty(t, h.ready)
	assert.False(t, h.eng.IsComplete())
}

func TestReset(t *testing.T) {
	h := newHarness(t)
	h.eng.Initialize("button-2")
	h.eng.AttemptPlacement("opt-16", "hardware")
	require.Equal(t, 1, h.clock.Pending())

	h.eng.Reset()
	assert.Equal(t, 0, h.clock.Pending())
	assert.Empty(t, h.eng.SessionID())
	filled, total := h.eng.Progress()
	assert.Zero(t, filled)
	assert.Zero(t, total)
	assert.Equal(t, Board{}, h.eng.Board())
}

func TestBoard(t *testing.T) {
	h := newHarness(t)
	id := h.eng.Initialize("button-2")
	h.eng.AttemptPlacement("opt-16", "hardware")

	b := h.eng.Board()
	assert.Equal(t, id, b.SessionID)
	assert.Equal(t, "button-2", b.Category)
	assert.Equal(t, "ai-model-dev", b.ComponentID)
	assert.Equal(t, 1, b.Filled)
	assert.Equal(t, 4, b.Total)
	assert.False(t, b.Complete)
	require.NotNil(t, b.Feedback)

	require.Len(t, b.Slots, 4)
	assert.True(t, b.Slots[0].Filled)
	assert.Equal(t, "PowerEdge XE-Series", b.Slots[0].FilledWith)

	shown, ok := b.Displayed()
	require.True(t, ok)
	assert.Equal(t, "software-ai", shown.ID)

	// Snapshots are detached from engine state.
	b.Slots[1].Options[0].Text = "mutated"
	for _, o := range h.eng.Board().Slots[1].Options {
		assert.NotEqual(t, "mutated", o.Text)
	}
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "placed", OutcomePlaced.String())
	assert.Equal(t, "rejected", OutcomeRejected.String())
	assert.Equal(t, "ignored", OutcomeIgnored.String())
}

func TestInitialize_DropsSlotsWithoutOptions(t *testing.T) {
	src, err := catalog.Load([]byte(`
categories:
  - id: c1
    title: T
    component: {id: c, name: C}
    slots:
      - {id: hardware, name: Hardware, accepted: A}
      - {id: edge-deployment, name: Edge, accepted: E}
      - {id: security, name: Security, accepted: S}
    options:
      - {id: o1, text: A, correct: true, target: hardware}
      - {id: o2, text: B, correct: false, target: hardware}
      - {id: o3, text: S, correct: true, target: security}
      - {id: o4, text: T, correct: false, target: security}
`))
	require.NoError(t, err)
	require.Len(t, src.SlotTemplatesFor("c1"), 3)

	eng := New(src, timer.NewManual(), rand.New(rand.NewPCG(1, 2)), DefaultConfig())
	eng.Initialize("c1")

	var ids []string
	for _, s := range eng.Assignment().Slots {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"hardware", "security"}, ids)
	_, total := eng.Progress()
	assert.Equal(t, 2, total, "the option-less slot is not counted")

	eng.SelectSlot("edge-deployment")
	assert.Equal(t, "hardware", eng.DisplayedSlot(), "selecting a dropped slot is a no-op")

	assert.Equal(t, OutcomePlaced, eng.AttemptPlacement("o1", "hardware").Outcome)
	assert.Equal(t, "security", eng.DisplayedSlot(), "advancing skips the dropped slot")
	res := eng.AttemptPlacement("o3", "security")
	assert.True(t, res.Completed)
	assert.True(t, eng.IsComplete())
	eng.Reset()
}
