package redraw

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Actor  string  `json:"actor,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Value  float64 `json:"value,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Color  *Color  `json:"color,omitempty"`
}

// scriptFile is the top-level JSON structure for a script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences actor changes, background fills and screenshots across
// frames for automated visual checks. Call Tick once per frame before
// RedrawFrame, or use Play to run a script headless.
//
// Actions:
//
//	{"action": "wait", "frames": n}            do nothing for n ticks
//	{"action": "skip", "frames": n}            SetFramerateSkip(n)
//	{"action": "background", "color": {...}}   SetBackground
//	{"action": "screenshot", "label": "..."}   Screenshot
//	{"action": "move", "actor": "...", "x": 1, "y": 2}
//	{"action": "opacity", "actor": "...", "value": 0.5}
//	{"action": "rotate", "actor": "...", "value": 3.14}
//	{"action": "hide", "actor": "..."}
//	{"action": "show", "actor": "..."}
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON script.
func LoadScript(jsonData []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("redraw: parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("redraw: parse script: no steps")
	}
	for i, st := range f.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("redraw: parse script: step %d: %w", i, err)
		}
	}
	return &Script{steps: f.Steps}, nil
}

func (st scriptStep) validate() error {
	switch st.Action {
	case "wait", "screenshot":
	case "skip":
		if st.Frames < 1 {
			return fmt.Errorf("skip needs frames >= 1")
		}
	case "background":
		if st.Color == nil {
			return fmt.Errorf("background needs a color")
		}
	case "move", "opacity", "rotate", "hide", "show":
		if st.Actor == "" {
			return fmt.Errorf("%s needs an actor", st.Action)
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// Done reports whether every step has been executed.
func (s *Script) Done() bool {
	return s.done
}

// Tick advances the script by one frame. Steps run until a wait or the end of
// the script. Actor steps fail if no actor in the engine's layers has the
// given name.
func (s *Script) Tick(e *Engine) error {
	if s.done {
		return nil
	}
	if s.waitCount > 0 {
		s.waitCount--
		if s.waitCount == 0 && s.cursor >= len(s.steps) {
			s.done = true
		}
		return nil
	}
	for s.cursor < len(s.steps) {
		st := s.steps[s.cursor]
		s.cursor++
		if err := s.exec(e, st); err != nil {
			s.done = true
			return fmt.Errorf("redraw: script step %d (%s): %w", s.cursor-1, st.Action, err)
		}
		if st.Action == "wait" && st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this tick counts as one
			break
		}
	}
	if s.cursor >= len(s.steps) && s.waitCount == 0 {
		s.done = true
	}
	return nil
}

func (s *Script) exec(e *Engine, st scriptStep) error {
	switch st.Action {
	case "wait":
	case "skip":
		return e.SetFramerateSkip(st.Frames)
	case "background":
		e.SetBackground(*st.Color)
	case "screenshot":
		e.Screenshot(st.Label)
	default:
		a := e.FindActor(st.Actor)
		if a == nil {
			return fmt.Errorf("actor %q not found", st.Actor)
		}
		switch st.Action {
		case "move":
			a.SetPosition(st.X, st.Y)
		case "opacity":
			a.Opacity = clamp01(st.Value)
		case "rotate":
			a.Rotation = st.Value
		case "hide":
			a.Hidden = true
		case "show":
			a.Hidden = false
		}
	}
	return nil
}

// Play runs the script headless: one Tick then one RedrawFrame per frame
// until the script is done. It returns the number of frames run.
func (s *Script) Play(e *Engine) (int, error) {
	frames := 0
	for !s.done {
		if err := s.Tick(e); err != nil {
			return frames, err
		}
		if _, err := e.RedrawFrame(); err != nil {
			return frames, err
		}
		frames++
	}
	return frames, nil
}

// FindActor returns the first actor named name in draw order, or nil.
func (e *Engine) FindActor(name string) *Actor {
	for _, group := range e.layers {
		for _, a := range group {
			if a != nil && a.Name == name {
				return a
			}
		}
	}
	return nil
}
