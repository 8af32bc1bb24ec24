package eggmatch

import (
	"context"
	"errors"
	"fmt"

	json "github.com/json-iterator/go"
)

var (
	// ErrInvalidScript is returned (wrapped) when a script cannot be loaded.
	ErrInvalidScript = errors.New("invalid script")
	// ErrExpectation is returned (wrapped) by Run when an expect step fails.
	ErrExpectation = errors.New("expectation failed")
)

const (
	// DefaultScriptFrames bounds how many frames Run may take.
	DefaultScriptFrames = 10000
	// DefaultGestureFrames is the length of a drag or touch step that does
	// not give one.
	DefaultGestureFrames = 8
)

// scriptStep is a single action in a script. Drag and touch steps either
// name an item and a target, in which case the gesture runs between their
// centres, or give explicit coordinates.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Item   string  `json:"item,omitempty"`
	Target string  `json:"target,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`

	// expect
	Tone     string `json:"tone,omitempty"`
	Matched  *int   `json:"matched,omitempty"`
	Complete *bool  `json:"complete,omitempty"`
	Feedback string `json:"feedback,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected input and expectations across frames.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	err       error
}

// LoadScript parses a JSON script and returns a runner ready to drive a
// PointerRouter.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("%w: parse: %v", ErrInvalidScript, err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", ErrInvalidScript)
	}
	for i, st := range sc.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("%w: step %d: %v", ErrInvalidScript, i+1, err)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

func (st scriptStep) validate() error {
	switch st.Action {
	case "drag", "touch":
		if (st.Item == "") != (st.Target == "") {
			return errors.New("item and target must be given together")
		}
	case "click", "reset", "wait":
	case "expect":
		if st.Tone == "" && st.Matched == nil && st.Complete == nil && st.Feedback == "" {
			return errors.New("expect step checks nothing")
		}
		if st.Tone != "" {
			if _, ok := ParseTone(st.Tone); !ok {
				return fmt.Errorf("unknown tone %q", st.Tone)
			}
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// Done reports whether every step has run or an expectation failed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Len returns the number of steps in the script.
func (r *ScriptRunner) Len() int {
	return len(r.steps)
}

// Err returns the first failed expectation, or nil.
func (r *ScriptRunner) Err() error {
	return r.err
}

// Step advances the runner by one frame. The host calls it before consuming
// injected input.
func (r *ScriptRunner) Step(router *PointerRouter) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if router.Pending() > 0 {
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

	frames := st.Frames
	if frames == 0 {
		frames = DefaultGestureFrames
	}
	switch st.Action {
	case "drag":
		fx, fy, tx, ty := st.path(router.scene, router.board)
		router.InjectDrag(fx, fy, tx, ty, frames)
	case "touch":
		fx, fy, tx, ty := st.path(router.scene, router.board)
		router.InjectTouchDrag(fx, fy, tx, ty, frames)
	case "click":
		x, y := st.X, st.Y
		if st.Target == "reset" {
			x, y = center(router.scene, router.board.ResetButton)
		}
		router.InjectClick(x, y)
	case "reset":
		router.ctrl.Reset()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "expect":
		if err := st.check(router.ctrl); err != nil {
			r.err = err
			r.done = true
			return
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && router.Pending() == 0 {
		r.done = true
	}
}

// Run drives a headless loop until the script finishes, ctx is cancelled,
// or maxFrames frames have passed (DefaultScriptFrames when <= 0). Each
// frame advances the script, consumes one injected sample, steps the scene
// by dt and flushes deferred writes as a paint would.
func (r *ScriptRunner) Run(ctx context.Context, router *PointerRouter, dt float64, maxFrames int) error {
	if maxFrames <= 0 {
		maxFrames = DefaultScriptFrames
	}
	scene := router.scene
	for frame := 0; !r.done; frame++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if frame >= maxFrames {
			return fmt.Errorf("script did not finish within %d frames", maxFrames)
		}
		r.Step(router)
		router.ProcessInjected()
		scene.Update(dt)
		scene.BeginPaint()
	}
	return r.err
}

// path returns the gesture's endpoints, resolving item and target IDs to
// the centres of their nodes.
func (st scriptStep) path(s *Scene, b *Board) (fx, fy, tx, ty float64) {
	if st.Item == "" {
		return st.FromX, st.FromY, st.ToX, st.ToY
	}
	it, t := b.Item(st.Item), b.Target(st.Target)
	if it == nil || t == nil {
		return st.FromX, st.FromY, st.ToX, st.ToY
	}
	fx, fy = center(s, it.Node)
	tx, ty = center(s, t.Node)
	return fx, fy, tx, ty
}

func center(s *Scene, n *Node) (float64, float64) {
	s.Refresh()
	r := n.Bounds()
	return r.X + r.Width/2, r.Y + r.Height/2
}

func (st scriptStep) check(c *Controller) error {
	label := st.Label
	if label == "" {
		label = "expect"
	}
	fb := c.Feedback()
	if st.Tone != "" {
		want, _ := ParseTone(st.Tone)
		if fb.Tone != want {
			return fmt.Errorf("%w: %s: tone = %s, want %s", ErrExpectation, label, fb.Tone, want)
		}
	}
	if st.Feedback != "" && fb.Text != st.Feedback {
		return fmt.Errorf("%w: %s: feedback = %q, want %q", ErrExpectation, label, fb.Text, st.Feedback)
	}
	if st.Matched != nil {
		if got := c.Board().MatchedCount(); got != *st.Matched {
			return fmt.Errorf("%w: %s: matched = %d, want %d", ErrExpectation, label, got, *st.Matched)
		}
	}
	if st.Complete != nil {
		if got := c.Complete(); got != *st.Complete {
			return fmt.Errorf("%w: %s: complete = %t, want %t", ErrExpectation, label, got, *st.Complete)
		}
	}
	return nil
}
