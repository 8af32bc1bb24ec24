package eggmatch

import (
	"time"

	"go.uber.org/zap"
)

// Scene owns the node tree, the frame queue the host drains on each paint,
// and the running tweens. It has no dependency on a graphics backend: the
// host calls Update once per tick and BeginPaint right before painting.
type Scene struct {
	root   *Node
	frames FrameQueue
	tweens []*TweenGroup
	log    *zap.Logger
	debug  bool

	paintBuf []*Node
	hitBuf   []*Node
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	return &Scene{
		root: NewContainer("root"),
		log:  zap.NewNop(),
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Frames returns the scene's next-paint queue.
func (s *Scene) Frames() *FrameQueue {
	return &s.frames
}

// SetLogger replaces the scene's logger. A nil logger disables logging.
func (s *Scene) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.log = l
}

// SetDebugMode enables or disables debug mode. When enabled, tree shape
// warnings and per-paint stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Refresh runs layouts and recomputes world transforms. Hit testing and
// bounds queries call it themselves, so callers rarely need to.
func (s *Scene) Refresh() {
	applyLayout(s.root)
	updateWorldTransform(s.root, identityTransform, 1.0, false)
}

// Update advances tweens by dt seconds and refreshes the tree.
func (s *Scene) Update(dt float64) {
	live := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(float32(dt))
		if !g.Done {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = live
	s.Refresh()
}

// BeginPaint is called by the host right before it paints: it runs every
// deferred style write queued since the previous paint, then refreshes.
func (s *Scene) BeginPaint() {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	ran := s.frames.Flush()
	s.Refresh()
	if s.debug {
		s.debugLog(debugStats{
			frameCallbacks: ran,
			tweens:         len(s.tweens),
			refreshTime:    time.Since(t0),
		})
	}
}

// Animate registers a tween group to be advanced by Update. A group already
// animating the same fields of the same node is replaced.
func (s *Scene) Animate(g *TweenGroup) {
	for i, old := range s.tweens {
		if old.target == g.target && old.fields[0] == g.fields[0] {
			s.tweens[i] = g
			return
		}
	}
	s.tweens = append(s.tweens, g)
}

// StopTweens drops every running tween without applying final values.
func (s *Scene) StopTweens() {
	for i := range s.tweens {
		s.tweens[i] = nil
	}
	s.tweens = s.tweens[:0]
}

// StopTweensOn drops the tweens running on n without applying final values
// or their OnDone callbacks.
func (s *Scene) StopTweensOn(n *Node) {
	live := s.tweens[:0]
	for _, g := range s.tweens {
		if g.target != n {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = live
}

// Tweening reports whether any tween is still running.
func (s *Scene) Tweening() bool {
	return len(s.tweens) > 0
}
