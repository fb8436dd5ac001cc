package mist

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a script.
type scriptStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	FromX   float64 `json:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	Density float64 `json:"density,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"press": true, "move": true, "release": true, "click": true,
	"drag": true, "wait": true, "screenshot": true, "density": true,
}

// ScriptHooks are the effects a script drives besides pointer injection.
// Nil hooks are skipped.
type ScriptHooks struct {
	Screenshot func(label string)
	Density    func(d float64)
}

// ScriptRunner sequences injected pointer events, waits, density overrides,
// and screenshots across frames for automated visual runs. Coordinates are
// screen pixels, the same space a screenshot shows.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range sc.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// Done reports whether every step has run and all injected input drained.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the script by one frame. Call it before the tracker's
// Update.
func (r *ScriptRunner) Step(ptr *PointerTracker, hooks ScriptHooks) {
	if r.done {
		return
	}
	// Pending injections drain before the script advances.
	if ptr.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		ptr.InjectPress(st.X, st.Y)
	case "move":
		ptr.InjectMove(st.X, st.Y)
	case "release":
		ptr.InjectRelease(st.X, st.Y)
	case "click":
		ptr.InjectClick(st.X, st.Y)
	case "drag":
		ptr.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		if hooks.Screenshot != nil {
			hooks.Screenshot(st.Label)
		}
	case "density":
		if hooks.Density != nil {
			hooks.Density(st.Density)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && ptr.Pending() == 0 {
		r.done = true
	}
}
