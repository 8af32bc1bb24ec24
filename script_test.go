package eggmatch

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"testing"
)

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantMsg string
	}{
		{"bad json", `{"steps": [`, "parse"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "fly"}]}`, `unknown action "fly"`},
		{"item without target", `{"steps": [{"action": "drag", "item": "egg-circle"}]}`, "together"},
		{"target without item", `{"steps": [{"action": "touch", "target": "outline-circle"}]}`, "together"},
		{"empty expect", `{"steps": [{"action": "expect"}]}`, "checks nothing"},
		{"bad tone", `{"steps": [{"action": "expect", "tone": "grumpy"}]}`, `unknown tone "grumpy"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.data))
			if !errors.Is(err, ErrInvalidScript) {
				t.Fatalf("LoadScript = %v, want ErrInvalidScript", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadScriptValid(t *testing.T) {
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "drag", "fromX": 1, "fromY": 2, "toX": 3, "toY": 4},
		{"action": "click", "x": 5, "y": 6},
		{"action": "reset"},
		{"action": "wait"},
		{"action": "expect", "complete": false}
	]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if r.Len() != 5 || r.Done() || r.Err() != nil {
		t.Errorf("runner = len %d done %v err %v", r.Len(), r.Done(), r.Err())
	}
}

func loadTestScript(t *testing.T, path string) *ScriptRunner {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	r, err := LoadScript(data)
	if err != nil {
		t.Fatalf("LoadScript(%s): %v", path, err)
	}
	return r
}

func TestScriptCompletesBoard(t *testing.T) {
	runner := loadTestScript(t, "testdata/complete.json")
	w, err := NewWorld(WorldOptions{Board: DefaultBoardSpec()})
	if err != nil {
		t.Fatal(err)
	}

	if err := w.RunScript(context.Background(), runner, 0); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	if !runner.Done() {
		t.Error("runner not done")
	}
	if w.Board.MatchedCount() != 0 {
		t.Errorf("MatchedCount = %d, the script ends with a reset", w.Board.MatchedCount())
	}
}

func TestScriptCompletesBoardWithoutAnimation(t *testing.T) {
	runner := loadTestScript(t, "testdata/complete.json")
	w := newTestWorld(t, nil)
	if err := w.RunScript(context.Background(), runner, 0); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
}

func TestScriptExpectationFails(t *testing.T) {
	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "drag", "item": "egg-circle", "target": "outline-square"},
		{"action": "expect", "label": "hopeful", "matched": 1},
		{"action": "reset"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	w := newTestWorld(t, nil)

	err = w.RunScript(context.Background(), runner, 0)
	if !errors.Is(err, ErrExpectation) {
		t.Fatalf("RunScript = %v, want ErrExpectation", err)
	}
	if !strings.Contains(err.Error(), "hopeful") || !strings.Contains(err.Error(), "matched = 0, want 1") {
		t.Errorf("error = %q", err)
	}
	if runner.Err() != err || !runner.Done() {
		t.Error("runner should record the failure and stop")
	}
}

func TestScriptExpectChecks(t *testing.T) {
	w := newTestWorld(t, nil)
	c := w.Controller
	c.HandleDrag(DragEvent{Kind: DragStart, Item: w.Board.Item("egg-circle")})

	matched0, no := 0, false
	tests := []struct {
		name    string
		step    scriptStep
		wantErr bool
	}{
		{"tone ok", scriptStep{Tone: "neutral"}, false},
		{"tone wrong", scriptStep{Tone: "positive"}, true},
		{"feedback ok", scriptStep{Feedback: DefaultMessages().PickUp}, false},
		{"feedback wrong", scriptStep{Feedback: "nope"}, true},
		{"matched ok", scriptStep{Matched: &matched0}, false},
		{"complete ok", scriptStep{Complete: &no}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.step.check(c)
			if (err != nil) != tt.wantErr {
				t.Errorf("check = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestScriptExplicitCoordinates(t *testing.T) {
	w := newTestWorld(t, nil)
	from, to := itemAt(w, "egg-diamond"), targetAt(w, "outline-diamond")
	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "touch", "fromX": ` + ftoa(from.X) + `, "fromY": ` + ftoa(from.Y) +
		`, "toX": ` + ftoa(to.X) + `, "toY": ` + ftoa(to.Y) + `, "frames": 3},
		{"action": "expect", "matched": 1}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	if err := w.RunScript(context.Background(), runner, 0); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	if !w.Board.Target("outline-diamond").Matched() {
		t.Error("diamond not matched")
	}
}

func TestScriptFrameLimit(t *testing.T) {
	runner, err := LoadScript([]byte(`{"steps": [{"action": "wait", "frames": 100}]}`))
	if err != nil {
		t.Fatal(err)
	}
	w := newTestWorld(t, nil)

	err = w.RunScript(context.Background(), runner, 10)
	if err == nil || !strings.Contains(err.Error(), "10 frames") {
		t.Errorf("RunScript = %v, want a frame limit error", err)
	}
}

func TestScriptContextCancelled(t *testing.T) {
	runner, err := LoadScript([]byte(`{"steps": [{"action": "wait", "frames": 3}]}`))
	if err != nil {
		t.Fatal(err)
	}
	w := newTestWorld(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := w.RunScript(ctx, runner, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("RunScript = %v, want context.Canceled", err)
	}
}

func TestScriptStepWaitsForInjectedInput(t *testing.T) {
	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "drag", "item": "egg-circle", "target": "outline-circle", "frames": 4},
		{"action": "reset"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	w := newTestWorld(t, nil)
	r := w.Router

	runner.Step(r)
	if r.Pending() != 4 {
		t.Fatalf("Pending = %d, want 4 after the drag step", r.Pending())
	}
	runner.Step(r)
	if r.Pending() != 4 {
		t.Error("Step advanced while injected input was pending")
	}

	drain(w)
	if w.Board.MatchedCount() != 1 {
		t.Fatal("drag did not match")
	}
	runner.Step(r)
	if w.Board.MatchedCount() != 0 {
		t.Error("reset step did not run once the queue drained")
	}
	if !runner.Done() {
		t.Error("runner should be done after its last step")
	}
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
