// Package replay runs scripted gestures against the engine without a
// terminal, on a simulated clock.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/aistack/internal/gesture"
	"github.com/abhisek/aistack/internal/stack"
	"github.com/abhisek/aistack/internal/timer"
)

// Script is a recorded visit to one category.
type Script struct {
	Category string `yaml:"category"`
	Steps    []Step `yaml:"steps"`
}

// Step is one action. Exactly one field is set.
type Step struct {
	Select string        `yaml:"select,omitempty"`
	Tap    string        `yaml:"tap,omitempty"`
	Drag   *Drag         `yaml:"drag,omitempty"`
	Touch  *Touch        `yaml:"touch,omitempty"`
	Wait   time.Duration `yaml:"wait,omitempty"`
}

// Drag is a pointer drag: pick up Option, pass over Over, release on Drop.
// An empty Drop ends the drag without dropping.
type Drag struct {
	Option string   `yaml:"option"`
	Over   []string `yaml:"over,omitempty"`
	Drop   string   `yaml:"drop,omitempty"`
}

// Touch is a finger drag across slot rows. An empty End lifts the finger
// off every slot; Cancel aborts the gesture instead of lifting.
type Touch struct {
	Option string   `yaml:"option"`
	Path   []string `yaml:"path,omitempty"`
	End    string   `yaml:"end,omitempty"`
	Cancel bool     `yaml:"cancel,omitempty"`
}

// Parse decodes a YAML script.
func Parse(r io.Reader) (Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return Script{}, fmt.Errorf("decode script: %w", err)
	}
	if s.Category == "" {
		return Script{}, errors.New("script: category is required")
	}
	for i, st := range s.Steps {
		if n := st.actions(); n != 1 {
			return Script{}, fmt.Errorf("script: step %d has %d actions, want 1", i+1, n)
		}
	}
	return s, nil
}

// ParseFile reads and decodes the script at path.
func ParseFile(path string) (Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return Script{}, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func (s Step) actions() int {
	n := 0
	for _, set := range []bool{s.Select != "", s.Tap != "", s.Drag != nil, s.Touch != nil, s.Wait > 0} {
		if set {
			n++
		}
	}
	return n
}

// Outcome is what one step did.
type Outcome struct {
	Step      int    `yaml:"step"`
	Action    string `yaml:"action"`
	Result    string `yaml:"result"`
	OptionID  string `yaml:"option,omitempty"`
	SlotID    string `yaml:"slot,omitempty"`
	Displayed string `yaml:"displayed,omitempty"`
	Filled    int    `yaml:"filled"`
	Total     int    `yaml:"total"`
}

// Report summarizes a run.
type Report struct {
	SessionID string        `yaml:"session"`
	Category  string        `yaml:"category"`
	Steps     []Outcome     `yaml:"steps"`
	Filled    int           `yaml:"filled"`
	Total     int           `yaml:"total"`
	Complete  bool          `yaml:"complete"`
	Ready     bool          `yaml:"ready"`
	Elapsed   time.Duration `yaml:"elapsed"`
}

// Runner replays scripts.
type Runner struct {
	Source stack.Source
	Rand   stack.Rand
	Config stack.Config
}

// Run replays s on a fresh engine. Time only moves on wait steps.
func (r Runner) Run(s Script) Report {
	clock := timer.NewManual()
	eng := stack.New(r.Source, clock, r.Rand, r.Config)
	rep := Report{Category: s.Category}
	eng.OnReady(func(string) { rep.Ready = true })
	rep.SessionID = eng.Initialize(s.Category)

	// Slots sit on consecutive rows in assignment order.
	rows := map[string]int{}
	var order []string
	for i, sl := range eng.Assignment().Slots {
		rows[sl.ID] = i
		order = append(order, sl.ID)
	}
	hits := gesture.HitTestFunc(func(p gesture.Point) string {
		if p.Y < 0 || p.Y >= len(order) {
			return ""
		}
		return order[p.Y]
	})
	point := func(slot string) gesture.Point {
		if y, ok := rows[slot]; ok {
			return gesture.Point{Y: y}
		}
		return gesture.Point{Y: -1}
	}
	in := gesture.New(eng, hits, nil)

	for i, st := range s.Steps {
		out := Outcome{Step: i + 1}
		switch {
		case st.Select != "":
			out.Action = "select"
			eng.SelectSlot(st.Select)
			out.SlotID = st.Select
			out.Result = "ok"
		case st.Tap != "":
			out.Action = "tap"
			out.fill(in.Tap(st.Tap))
		case st.Drag != nil:
			out.Action = "drag"
			in.DragStart(st.Drag.Option)
			for _, slot := range st.Drag.Over {
				in.DragOver(slot)
				in.DragLeave()
			}
			if st.Drag.Drop != "" {
				in.DragOver(st.Drag.Drop)
				out.fill(in.Drop(st.Drag.Drop))
			} else {
				out.fill(stack.Result{OptionID: st.Drag.Option})
			}
			in.DragEnd()
		case st.Touch != nil:
			out.Action = "touch"
			in.TouchStart(st.Touch.Option, gesture.Point{Y: -1})
			for _, slot := range st.Touch.Path {
				in.TouchMove(point(slot))
			}
			if st.Touch.Cancel {
				in.TouchCancel()
				out.fill(stack.Result{OptionID: st.Touch.Option})
			} else {
				out.fill(in.TouchEnd(point(st.Touch.End)))
			}
		case st.Wait > 0:
			out.Action = "wait"
			clock.Advance(st.Wait)
			out.Result = "ok"
		}
		out.Displayed = eng.DisplayedSlot()
		out.Filled, out.Total = eng.Progress()
		rep.Steps = append(rep.Steps, out)
	}

	rep.Filled, rep.Total = eng.Progress()
	rep.Complete = eng.IsComplete()
	rep.Elapsed = clock.Now()
	eng.Reset()
	return rep
}

func (o *Outcome) fill(res stack.Result) {
	o.Result = res.Outcome.String()
	o.OptionID = res.OptionID
	o.SlotID = res.SlotID
}

// Write renders rep as YAML.
func Write(w io.Writer, rep Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}
