package eggmatch

import (
	"math"

	"go.uber.org/zap"
)

// --- Constants ---

const (
	MaxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	DefaultDragDeadZone = 4.0 // pixels
)

// --- Per-pointer state ---

type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	hitNode  *Node
	item     *Item // item under the press, cleared once a start is rejected
	dragging bool  // mouse: a drag session was started by this pointer
	touching bool  // touch: this finger owns the touch session
	session  *Session
	over     *Target
	effect   DropEffect
}

// forgetEnded drops the pointer's gesture once the session it started is no
// longer the controller's, as after a reset. The rest of the press does
// nothing.
func (r *PointerRouter) forgetEnded(ps *pointerState) {
	if !ps.dragging && !ps.touching {
		return
	}
	if s := r.ctrl.Session(); s != nil && s == ps.session {
		return
	}
	r.log.Debug("pointer gesture ended elsewhere")
	ps.dragging, ps.touching = false, false
	ps.session, ps.item = nil, nil
	ps.over, ps.effect = nil, DropEffectNone
}

// PointerRouter turns raw per-frame pointer samples into the controller's
// two protocols. Pointer 0 (the mouse) speaks the drag protocol; pointers
// 1-9 (fingers) speak the touch protocol. A press and release on the reset
// button without a drag in between is a click that resets the board.
type PointerRouter struct {
	ctrl     *Controller
	board    *Board
	scene    *Scene
	log      *zap.Logger
	deadZone float64
	pointers [MaxPointers]pointerState
	cursor   Cursor

	injectQueue []syntheticPointerEvent
}

// NewPointerRouter creates a router feeding c. A nil logger disables logging.
func NewPointerRouter(c *Controller, log *zap.Logger) *PointerRouter {
	if log == nil {
		log = zap.NewNop()
	}
	return &PointerRouter{
		ctrl:     c,
		board:    c.Board(),
		scene:    c.Board().Scene(),
		log:      log,
		deadZone: DefaultDragDeadZone,
	}
}

// SetDragDeadZone sets the minimum movement in pixels before a mouse drag
// starts.
func (r *PointerRouter) SetDragDeadZone(pixels float64) {
	r.deadZone = pixels
}

// Cursor returns the cursor the host should show for the mouse.
func (r *PointerRouter) Cursor() Cursor {
	return r.cursor
}

// DragGhost returns the item a mouse drag is carrying and the top-left corner
// at which its ghost image should be drawn. ok is false when no mouse drag is
// in progress.
func (r *PointerRouter) DragGhost() (it *Item, x, y float64, ok bool) {
	ps := &r.pointers[0]
	s := r.ctrl.Session()
	if !ps.dragging || s == nil || s != ps.session {
		return nil, 0, 0, false
	}
	return s.Item, ps.lastX - s.OffsetX, ps.lastY - s.OffsetY, true
}

// ProcessPointer runs the pointer state machine for a single pointer. The
// host calls it once per frame for the mouse and once per active finger,
// plus once with pressed=false for each finger that lifted.
func (r *PointerRouter) ProcessPointer(pointerID int, x, y float64, pressed bool) {
	if pointerID < 0 || pointerID >= MaxPointers {
		return
	}
	ps := &r.pointers[pointerID]
	r.forgetEnded(ps)

	var exclude *Node
	if it := r.ctrl.Held(); it != nil {
		exclude = it.Node
	}
	target := r.scene.HitTest(x, y, exclude)

	switch {
	case pressed && !ps.down:
		*ps = pointerState{
			down:    true,
			startX:  x,
			startY:  y,
			lastX:   x,
			lastY:   y,
			hitNode: target,
			item:    r.board.ItemFor(target),
		}
		if pointerID > 0 {
			r.touchDown(ps, x, y)
		}

	case !pressed && ps.down:
		if pointerID == 0 {
			if ps.dragging && (x != ps.lastX || y != ps.lastY) {
				r.mouseMove(ps, x, y, target)
			}
			r.mouseUp(ps, x, y, target)
		} else {
			r.touchUp(ps, x, y, target)
		}
		*ps = pointerState{lastX: x, lastY: y}

	case pressed && ps.down:
		if x != ps.lastX || y != ps.lastY {
			if pointerID == 0 {
				r.mouseMove(ps, x, y, target)
			} else if ps.touching {
				r.ctrl.HandleTouch(TouchEvent{Kind: TouchMove, X: x, Y: y})
			}
		}
		ps.lastX = x
		ps.lastY = y

	default:
		ps.lastX = x
		ps.lastY = y
	}

	if pointerID == 0 {
		r.updateCursor(ps, target)
	}
}

// --- Mouse: drag protocol ---

func (r *PointerRouter) mouseMove(ps *pointerState, x, y float64, related *Node) {
	if !ps.dragging {
		if ps.item == nil || math.Hypot(x-ps.startX, y-ps.startY) <= r.deadZone {
			return
		}
		res := r.ctrl.HandleDrag(DragEvent{Kind: DragStart, Item: ps.item, X: ps.startX, Y: ps.startY})
		if !res.Accepted {
			ps.item = nil
			return
		}
		ps.dragging = true
		ps.session = r.ctrl.Session()
	}

	t := r.ctrl.ResolveTargetAt(x, y)
	if ps.over != nil && ps.over != t {
		r.ctrl.HandleDrag(DragEvent{Kind: DragLeave, Target: ps.over, Related: related, X: x, Y: y})
	}
	ps.over = t
	ps.effect = DropEffectNone
	if t != nil {
		res := r.ctrl.HandleDrag(DragEvent{Kind: DragOver, Target: t, X: x, Y: y})
		ps.effect = res.DropEffect
	}
}

func (r *PointerRouter) mouseUp(ps *pointerState, x, y float64, target *Node) {
	if ps.dragging {
		if ps.over != nil && ps.effect == DropEffectMove {
			r.ctrl.HandleDrag(DragEvent{Kind: Drop, Target: ps.over, X: x, Y: y})
		}
		r.ctrl.HandleDrag(DragEvent{Kind: DragEnd, Item: ps.item, X: x, Y: y})
		return
	}
	r.click(ps, target)
}

// --- Touch: touch protocol ---

func (r *PointerRouter) touchDown(ps *pointerState, x, y float64) {
	if ps.item == nil {
		return
	}
	res := r.ctrl.HandleTouch(TouchEvent{Kind: TouchStart, Item: ps.item, X: x, Y: y})
	if res.Accepted {
		ps.touching = true
		ps.session = r.ctrl.Session()
	}
}

func (r *PointerRouter) touchUp(ps *pointerState, x, y float64, target *Node) {
	if ps.touching {
		r.ctrl.HandleTouch(TouchEvent{Kind: TouchEnd, X: x, Y: y})
		return
	}
	if math.Hypot(x-ps.startX, y-ps.startY) <= r.deadZone {
		r.click(ps, target)
	}
}

// click fires when a press and release land on the same node.
func (r *PointerRouter) click(ps *pointerState, target *Node) {
	if ps.hitNode == nil || ps.hitNode != target {
		return
	}
	if r.board.IsResetButton(target) {
		r.log.Debug("reset clicked")
		r.ctrl.Reset()
	}
}

// --- Cursor hint ---

func (r *PointerRouter) updateCursor(ps *pointerState, target *Node) {
	switch {
	case ps.dragging && ps.effect == DropEffectMove:
		r.cursor = CursorMove
	case ps.dragging:
		r.cursor = CursorNotAllowed
	case target != nil:
		r.cursor = target.Cursor
	default:
		r.cursor = CursorDefault
	}
}
