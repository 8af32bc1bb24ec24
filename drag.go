package eggmatch

import "go.uber.org/zap"

// DragEventKind enumerates the native drag protocol's events.
type DragEventKind uint8

const (
	DragStart DragEventKind = iota // a drag began on Item
	DragOver                       // the pointer moved over Target
	DragLeave                      // the pointer left Target for Related
	Drop                           // the item was released over Target
	DragEnd                        // the gesture finished, with or without a drop
)

func (k DragEventKind) String() string {
	switch k {
	case DragStart:
		return "dragstart"
	case DragOver:
		return "dragover"
	case DragLeave:
		return "dragleave"
	case Drop:
		return "drop"
	case DragEnd:
		return "dragend"
	default:
		return "unknown"
	}
}

// DropEffect is the drag protocol's "allowed effect" hint.
type DropEffect uint8

const (
	DropEffectNone DropEffect = iota
	DropEffectMove
)

// DragEvent is one event of the native drag protocol.
type DragEvent struct {
	Kind   DragEventKind
	Item   *Item   // DragStart, DragEnd
	Target *Target // DragOver, DragLeave, Drop
	// Related is the node the pointer moved into on DragLeave; nil when the
	// pointer left the window.
	Related *Node
	X, Y    float64
}

// DragResult tells the host what to do with the platform side of the event.
type DragResult struct {
	// Accepted is false when the event was ignored (rejected start, stale event).
	Accepted bool
	// PreventDefault must be honoured on DragOver and Drop or the platform
	// never delivers the drop.
	PreventDefault bool
	EffectAllowed  DropEffect
	DropEffect     DropEffect
	// Payload identifies the dragged item for the gesture's data slot.
	Payload string
	Matched bool
}

// HandleDrag runs the drag protocol's state transition for one event.
// While a touch session is open every drag event is ignored.
func (c *Controller) HandleDrag(ev DragEvent) DragResult {
	if s := c.session; s != nil && s.Modality != ModalityDrag {
		c.log.Debug("drag event ignored: touch session active",
			zap.Stringer("kind", ev.Kind), zap.Stringer("session", s.ID))
		return DragResult{}
	}
	switch ev.Kind {
	case DragStart:
		return c.dragStart(ev)
	case DragOver:
		return c.dragOver(ev)
	case DragLeave:
		return c.dragLeave(ev)
	case Drop:
		return c.drop(ev)
	case DragEnd:
		return c.dragEnd(ev)
	}
	return DragResult{}
}

func (c *Controller) dragStart(ev DragEvent) DragResult {
	it := ev.Item
	if it == nil || !it.draggable || it.placement == PlacementMatched {
		return DragResult{}
	}
	if c.session != nil {
		c.log.Debug("drag start rejected: session active",
			zap.String("item", it.ID), zap.Stringer("session", c.session.ID))
		return DragResult{}
	}
	s := c.begin(ModalityDrag, it, ev.X, ev.Y)
	c.frames.RequestFrame(func() {
		if c.active(s) {
			s.Item.Node.Dragging = true
		}
	})
	return DragResult{
		Accepted:      true,
		EffectAllowed: DropEffectMove,
		Payload:       it.ID,
	}
}

func (c *Controller) dragOver(ev DragEvent) DragResult {
	res := DragResult{PreventDefault: true, DropEffect: DropEffectNone}
	t := ev.Target
	s := c.session
	if t == nil || s == nil {
		return res
	}
	s.X, s.Y = ev.X, ev.Y
	s.Over = t
	if !t.matched && !t.Node.Contains(s.Item.Node) {
		t.setHighlight(true)
		res.DropEffect = DropEffectMove
	}
	res.Accepted = true
	return res
}

func (c *Controller) dragLeave(ev DragEvent) DragResult {
	t := ev.Target
	if t == nil {
		return DragResult{}
	}
	if ev.Related != nil && t.Node.Contains(ev.Related) {
		// Moved onto one of the target's own children.
		return DragResult{}
	}
	t.setHighlight(false)
	if s := c.session; s != nil && s.Over == t {
		s.Over = nil
	}
	return DragResult{Accepted: true}
}

func (c *Controller) drop(ev DragEvent) DragResult {
	res := DragResult{PreventDefault: true}
	if ev.Target != nil {
		ev.Target.setHighlight(false)
	}
	if c.session == nil {
		return res
	}
	res.Accepted = true
	res.Matched = c.attemptMatch(ev.Target)
	c.end(true)
	return res
}

func (c *Controller) dragEnd(ev DragEvent) DragResult {
	it := ev.Item
	if it == nil {
		it = c.Held()
	}
	if it != nil {
		it.Node.Dragging = false
	}
	if s := c.session; s != nil && s.Over != nil {
		s.Over.setHighlight(false)
		s.Over = nil
	}
	accepted := c.session != nil
	c.end(false)
	return DragResult{Accepted: accepted}
}
