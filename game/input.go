package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/eggmatch"
)

// touchSlots maps Ebitengine touch IDs onto router pointer slots 1-9. The
// last slot is left for injected touches.
type touchSlots struct {
	ids   []ebiten.TouchID
	used  [eggmatch.MaxPointers]bool
	tid   [eggmatch.MaxPointers]ebiten.TouchID
	lastX [eggmatch.MaxPointers]float64
	lastY [eggmatch.MaxPointers]float64
}

// slot returns the existing slot for tid or allocates a new one. Returns -1
// if every slot is taken.
func (t *touchSlots) slot(tid ebiten.TouchID) int {
	for i := 1; i < eggmatch.InjectedTouchID; i++ {
		if t.used[i] && t.tid[i] == tid {
			return i
		}
	}
	for i := 1; i < eggmatch.InjectedTouchID; i++ {
		if !t.used[i] {
			t.used[i] = true
			t.tid[i] = tid
			return i
		}
	}
	return -1
}

// pollInput feeds one frame of real input to the router.
func (g *Game) pollInput() {
	r := g.world.Router

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.log.Debug("reset key")
		g.world.Controller.Reset()
	}

	mx, my := ebiten.CursorPosition()
	r.ProcessPointer(0, float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))

	t := &g.touches
	t.ids = ebiten.AppendTouchIDs(t.ids[:0])
	var active [eggmatch.MaxPointers]bool
	for _, tid := range t.ids {
		i := t.slot(tid)
		if i < 0 {
			continue
		}
		active[i] = true
		tx, ty := ebiten.TouchPosition(tid)
		t.lastX[i], t.lastY[i] = float64(tx), float64(ty)
		r.ProcessPointer(i, t.lastX[i], t.lastY[i], true)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < eggmatch.InjectedTouchID; i++ {
		if t.used[i] && !active[i] {
			r.ProcessPointer(i, t.lastX[i], t.lastY[i], false)
			t.used[i] = false
			t.tid[i] = 0
		}
	}
}

// Ebitengine has no grab hand; hovering an egg shows the pointer so it stays
// distinct from a drag in progress.
var cursorShapes = map[eggmatch.Cursor]ebiten.CursorShapeType{
	eggmatch.CursorDefault:    ebiten.CursorShapeDefault,
	eggmatch.CursorPointer:    ebiten.CursorShapePointer,
	eggmatch.CursorGrab:       ebiten.CursorShapePointer,
	eggmatch.CursorMove:       ebiten.CursorShapeMove,
	eggmatch.CursorNotAllowed: ebiten.CursorShapeNotAllowed,
}

// applyCursor sets the OS cursor only when the router's hint changes.
func (g *Game) applyCursor() {
	shape, ok := cursorShapes[g.world.Router.Cursor()]
	if !ok {
		shape = ebiten.CursorShapeDefault
	}
	if shape != g.cursor {
		g.cursor = shape
		ebiten.SetCursorShape(shape)
	}
}
