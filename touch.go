package eggmatch

import "go.uber.org/zap"

// TouchEventKind enumerates the touch protocol's events.
type TouchEventKind uint8

const (
	TouchStart TouchEventKind = iota // a finger went down on Item
	TouchMove                        // the finger moved anywhere on screen
	TouchEnd                         // the finger lifted
)

func (k TouchEventKind) String() string {
	switch k {
	case TouchStart:
		return "touchstart"
	case TouchMove:
		return "touchmove"
	case TouchEnd:
		return "touchend"
	default:
		return "unknown"
	}
}

// TouchEvent is one event of the touch protocol. Only raw coordinates are
// delivered; the controller works out everything else.
type TouchEvent struct {
	Kind TouchEventKind
	Item *Item // TouchStart only
	X, Y float64
}

// TouchResult tells the host what happened.
type TouchResult struct {
	Accepted bool
	// PreventDefault is set on moves that belong to a session; the host must
	// suppress scrolling for them.
	PreventDefault bool
	Matched        bool
	// Over is the target under the finger after a move.
	Over *Target
}

// HandleTouch runs the touch protocol's state transition for one event.
func (c *Controller) HandleTouch(ev TouchEvent) TouchResult {
	switch ev.Kind {
	case TouchStart:
		return c.touchStart(ev)
	case TouchMove:
		return c.touchMove(ev)
	case TouchEnd:
		return c.touchEnd(ev)
	}
	return TouchResult{}
}

func isMatchedTargetNode(n *Node) bool {
	t, ok := n.UserData.(*Target)
	return ok && t.matched
}

func (c *Controller) touchStart(ev TouchEvent) TouchResult {
	it := ev.Item
	if it == nil || !it.draggable {
		return TouchResult{}
	}
	if it.Node.Closest(isMatchedTargetNode) != nil {
		return TouchResult{}
	}
	if c.session != nil {
		c.log.Debug("touch start rejected: session active",
			zap.String("item", it.ID), zap.Stringer("session", c.session.ID))
		return TouchResult{}
	}

	s := c.begin(ModalityTouch, it, ev.X, ev.Y)
	x, y := ev.X-s.OffsetX, ev.Y-s.OffsetY
	c.frames.RequestFrame(func() {
		if !c.active(s) {
			return
		}
		n := s.Item.Node
		n.Dragging = true
		n.SetFixed(x, y)
		n.SetZIndex(DragZIndex)
		n.Interactable = false
	})
	return TouchResult{Accepted: true}
}

func (c *Controller) touchMove(ev TouchEvent) TouchResult {
	s := c.session
	if s == nil || s.Modality != ModalityTouch {
		return TouchResult{}
	}
	s.X, s.Y = ev.X, ev.Y

	x, y := ev.X-s.OffsetX, ev.Y-s.OffsetY
	c.frames.RequestFrame(func() {
		if c.active(s) && s.Item.Node.Fixed {
			s.Item.Node.SetFixed(x, y)
		}
	})

	t := c.ResolveTargetAt(ev.X, ev.Y)
	if s.Over != nil && s.Over != t {
		s.Over.setHighlight(false)
	}
	if t != nil && t != s.Over && !t.matched {
		t.setHighlight(true)
	}
	s.Over = t
	return TouchResult{Accepted: true, PreventDefault: true, Over: t}
}

func (c *Controller) touchEnd(ev TouchEvent) TouchResult {
	s := c.session
	if s == nil || s.Modality != ModalityTouch {
		return TouchResult{}
	}
	n := s.Item.Node
	n.Dragging = false
	n.Interactable = true
	floating, fromX, fromY := n.Fixed, n.FixedX, n.FixedY

	final := c.ResolveTargetAt(ev.X, ev.Y)
	if s.Over != nil {
		s.Over.setHighlight(false)
	}
	matched := c.attemptMatch(final)
	c.end(final != nil)
	if !matched && floating && c.animate {
		c.snapBack(s.Item, fromX, fromY)
	}
	return TouchResult{Accepted: true, Matched: matched}
}
