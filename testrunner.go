package ember

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string `yaml:"action"`
	Label  string `yaml:"label,omitempty"`
	Key    string `yaml:"key,omitempty"`
	Frames int    `yaml:"frames,omitempty"`
}

// testScript is the top-level structure for a test script.
type testScript struct {
	Steps []testStep `yaml:"steps"`
}

var keyNames = map[string]Key{
	"enter": KeyEnter, "shift": KeyShift, "ctrl": KeyCtrl, "esc": KeyEsc,
	"space": KeySpace, "left": KeyLeft, "up": KeyUp, "right": KeyRight, "down": KeyDown,
}

// ParseKey resolves a key name: one of enter, shift, ctrl, esc, space, left,
// up, right, down, or a single letter. Case-insensitive.
func ParseKey(name string) (Key, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if k, ok := keyNames[n]; ok {
		return k, nil
	}
	if len(n) == 1 && n[0] >= 'a' && n[0] <= 'z' {
		return KeyA + Key(n[0]-'a'), nil
	}
	return 0, fmt.Errorf("unknown key %q", name)
}

// TestRunner sequences injected key events, waits and screenshots across
// frames for automated visual testing. It is itself a GameObject: add it
// to the World after the Input it drives.
type TestRunner struct {
	GameObject

	input     *Input
	steps     []testStep
	keys      []Key // resolved key per step
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a test script (YAML, or JSON, which YAML accepts)
// and returns a TestRunner that injects into in.
//
// Actions: keydown, keyup, press (key, frames), wait (frames),
// screenshot (label).
func LoadTestScript(data []byte, in *Input) (*TestRunner, error) {
	var script testScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	r := &TestRunner{input: in, steps: script.Steps, keys: make([]Key, len(script.Steps))}
	for i, st := range script.Steps {
		switch st.Action {
		case "keydown", "keyup", "press":
			if in == nil {
				return nil, fmt.Errorf("parse test script: step %d: %s needs an Input", i, st.Action)
			}
			k, err := ParseKey(st.Key)
			if err != nil {
				return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
			}
			r.keys[i] = k
		case "wait", "screenshot":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	r.construct(r, Compose(DefaultObjectConfig(), WithName[ObjectConfig]("test-runner")))
	return r, nil
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Update advances the script by one frame.
func (r *TestRunner) Update(f *Frame) {
	r.step(f.World)
	r.fireUpdate(f)
}

// step advances the test runner by one frame.
func (r *TestRunner) step(w *World) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if r.input != nil && r.input.Pending() > 0 {
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

	i := r.cursor
	st := r.steps[i]
	r.cursor++

	switch st.Action {
	case "screenshot":
		if w != nil {
			w.Screenshot(st.Label)
		}
	case "keydown":
		r.input.InjectKeyDown(r.keys[i])
	case "keyup":
		r.input.InjectKeyUp(r.keys[i])
	case "press":
		r.input.InjectKeyPress(r.keys[i], st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	pending := r.input != nil && r.input.Pending() > 0
	if r.cursor >= len(r.steps) && r.waitCount == 0 && !pending {
		r.done = true
	}
}
