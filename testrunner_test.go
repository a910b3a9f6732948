package ember

import "testing"

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "press", "key": "space", "frames": 2},
			{"action": "wait", "frames": 3},
			{"action": "screenshot", "label": "after-press"}
		]
	}`)

	runner, err := LoadTestScript(data, newTestInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "press" || runner.keys[1] != KeySpace || runner.steps[1].Frames != 2 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
	if runner.Name != "test-runner" {
		t.Errorf("Name = %q", runner.Name)
	}
}

func TestLoadTestScriptYAML(t *testing.T) {
	data := []byte(`
steps:
  - action: keydown
    key: a
  - action: keyup
    key: a
`)
	runner, err := LoadTestScript(data, newTestInput())
	if err != nil {
		t.Fatal(err)
	}
	if runner.keys[0] != KeyA || runner.keys[1] != KeyA {
		t.Errorf("keys = %v", runner.keys)
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not a script", `not json`},
		{"empty", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "click"}]}`},
		{"unknown key", `{"steps": [{"action": "keydown", "key": "hyper"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadTestScript([]byte(tt.data), newTestInput()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadTestScript_KeyStepNeedsInput(t *testing.T) {
	if _, err := LoadTestScript([]byte(`{"steps": [{"action": "keydown", "key": "a"}]}`), nil); err == nil {
		t.Error("expected error without an Input")
	}
	if _, err := LoadTestScript([]byte(`{"steps": [{"action": "wait", "frames": 1}]}`), nil); err != nil {
		t.Errorf("wait-only script without Input: %v", err)
	}
}

func TestRunnerDrivesInputThroughWorld(t *testing.T) {
	w := NewWorld()
	in := newTestInput()
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "keydown", "key": "a"},
		{"action": "wait", "frames": 2},
		{"action": "keyup", "key": "a"}
	]}`), in)
	if err != nil {
		t.Fatal(err)
	}
	w.Add(in)
	w.Add(runner)

	w.Update(&Frame{}) // runner queues keydown
	if in.IsDown(KeyA) {
		t.Fatal("key applied before the Input updated")
	}
	w.Update(&Frame{}) // input applies keydown; runner starts waiting
	if !in.IsDown(KeyA) {
		t.Fatal("A should be down")
	}
	w.Update(&Frame{}) // second wait frame
	w.Update(&Frame{}) // runner queues keyup
	if !in.IsDown(KeyA) || runner.Done() {
		t.Fatal("released too early")
	}
	w.Update(&Frame{}) // input applies keyup; runner finishes
	if in.IsDown(KeyA) {
		t.Error("A should be up")
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerQueuesScreenshots(t *testing.T) {
	w := NewWorld()
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "screenshot", "label": "first"},
		{"action": "screenshot", "label": "second"}
	]}`), nil)
	if err != nil {
		t.Fatal(err)
	}
	w.Add(runner)
	w.Update(&Frame{})
	w.Update(&Frame{})

	if len(w.screenshotQueue) != 2 || w.screenshotQueue[0] != "first" || w.screenshotQueue[1] != "second" {
		t.Errorf("queue = %v, want [first second]", w.screenshotQueue)
	}
	if !runner.Done() {
		t.Error("runner should be done after its last step")
	}
}
