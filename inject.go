package eggmatch

// InjectedTouchID is the pointer slot used by injected touch input.
const InjectedTouchID = MaxPointers - 1

// syntheticPointerEvent represents a single injected pointer sample. Screen
// coordinates are used, identical to real input.
type syntheticPointerEvent struct {
	pointer int
	x, y    float64
	pressed bool
}

func (r *PointerRouter) inject(pointer int, x, y float64, pressed bool) {
	r.injectQueue = append(r.injectQueue, syntheticPointerEvent{
		pointer: pointer, x: x, y: y, pressed: pressed,
	})
}

// InjectPress queues a mouse press at the given screen coordinates. The event
// is consumed on the next frame's ProcessInjected call.
func (r *PointerRouter) InjectPress(x, y float64) { r.inject(0, x, y, true) }

// InjectMove queues a mouse move with the button held down. Use this between
// InjectPress and InjectRelease to simulate a drag.
func (r *PointerRouter) InjectMove(x, y float64) { r.inject(0, x, y, true) }

// InjectRelease queues a mouse release at the given screen coordinates.
func (r *PointerRouter) InjectRelease(x, y float64) { r.inject(0, x, y, false) }

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two frames.
func (r *PointerRouter) InjectClick(x, y float64) {
	r.InjectPress(x, y)
	r.InjectRelease(x, y)
}

// InjectDrag queues a full mouse drag: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). Minimum frames is 2 (press + release).
func (r *PointerRouter) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	r.injectPath(0, fromX, fromY, toX, toY, frames)
}

// InjectTouchPress queues a finger touching down.
func (r *PointerRouter) InjectTouchPress(x, y float64) { r.inject(InjectedTouchID, x, y, true) }

// InjectTouchMove queues a finger moving while down.
func (r *PointerRouter) InjectTouchMove(x, y float64) { r.inject(InjectedTouchID, x, y, true) }

// InjectTouchRelease queues a finger lifting.
func (r *PointerRouter) InjectTouchRelease(x, y float64) { r.inject(InjectedTouchID, x, y, false) }

// InjectTouchDrag is InjectDrag for a finger.
func (r *PointerRouter) InjectTouchDrag(fromX, fromY, toX, toY float64, frames int) {
	r.injectPath(InjectedTouchID, fromX, fromY, toX, toY, frames)
}

func (r *PointerRouter) injectPath(pointer int, fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	r.inject(pointer, fromX, fromY, true)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		r.inject(pointer, x, y, true)
	}
	r.inject(pointer, toX, toY, false)
}

// Pending returns the number of injected samples not yet consumed.
func (r *PointerRouter) Pending() int {
	return len(r.injectQueue)
}

// ProcessInjected pops one sample from the inject queue and feeds it through
// ProcessPointer. It returns true if a sample was consumed, in which case the
// host skips real input for the frame.
func (r *PointerRouter) ProcessInjected() bool {
	if len(r.injectQueue) == 0 {
		return false
	}
	evt := r.injectQueue[0]
	copy(r.injectQueue, r.injectQueue[1:])
	r.injectQueue = r.injectQueue[:len(r.injectQueue)-1]

	r.ProcessPointer(evt.pointer, evt.x, evt.y, evt.pressed)
	return true
}
