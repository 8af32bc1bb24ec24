package eggmatch

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// Palette colors used by the default board and feedback tones.
var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorGreen = Color{0.18, 0.62, 0.27, 1}
	ColorRed   = Color{0.85, 0.22, 0.2, 1}
	ColorBlue  = Color{0.2, 0.4, 0.9, 1}
	ColorInk   = Color{0.2, 0.2, 0.24, 1}
)

// Vec2 is a 2D vector used for positions, offsets, and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Shape is the opaque tag that decides which items fit which targets.
// Two shapes match only when they are equal.
type Shape string

// Shapes the renderer knows how to draw. Any other tag is drawn as a
// rounded box with its name printed inside.
const (
	ShapeCircle   Shape = "circle"
	ShapeSquare   Shape = "square"
	ShapeTriangle Shape = "triangle"
	ShapeDiamond  Shape = "diamond"
	ShapeStar     Shape = "star"
	ShapeHeart    Shape = "heart"
)

// Placement is where an item currently lives.
type Placement uint8

const (
	PlacementFree    Placement = iota // resting in the container, draggable
	PlacementHeld                     // owned by the active session
	PlacementMatched                  // accepted by a target; terminal until reset
)

func (p Placement) String() string {
	switch p {
	case PlacementFree:
		return "free"
	case PlacementHeld:
		return "held"
	case PlacementMatched:
		return "matched"
	default:
		return "unknown"
	}
}

// Modality is the input protocol driving a session.
type Modality uint8

const (
	ModalityNone  Modality = iota
	ModalityDrag           // native pointer/drag protocol (mouse)
	ModalityTouch          // synthetic touch-drag protocol (finger)
)

func (m Modality) String() string {
	switch m {
	case ModalityDrag:
		return "drag"
	case ModalityTouch:
		return "touch"
	default:
		return "none"
	}
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeShape                     // draws Glyph filled (items, buttons) or outlined (targets)
	NodeTypeText                      // draws Text
)

// Cursor is the pointer affordance a node asks the host to show.
type Cursor uint8

const (
	CursorDefault Cursor = iota
	CursorPointer
	CursorGrab
	CursorMove
	CursorNotAllowed
)

// DragZIndex is the stacking order given to an item floating under a finger.
const DragZIndex = 1000
