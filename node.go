package eggmatch

import "sort"

// HitShape is used for custom hit testing regions in local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// nodeIDCounter is a plain counter (eggmatch is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the element of the board's display tree. It plays the part the
// document plays for a web page: the controller re-parents nodes, toggles
// their state flags and writes their floating position, and the host paints
// them. A single flat struct is used for all node types.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y   float64
	ScaleX float64
	ScaleY float64

	// Box size in local units. Used for layout, bounds and default hit testing.
	Width, Height float64

	// Computed, refreshed by Scene.Refresh.
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Visibility & interaction. Interactable=false makes the node transparent
	// to pointer hit testing.
	Alpha        float64
	Visible      bool
	Interactable bool

	// Ordering
	ZIndex int

	// Appearance
	Glyph    Shape
	Filled   bool
	Color    Color
	Text     string
	TextSize float64

	// State flags the controller toggles.
	Dragging    bool
	Highlighted bool
	Cursor      Cursor

	// Fixed positioning: when set, the node ignores its parent's transform and
	// flow layout, and is placed at (FixedX, FixedY) in screen space.
	Fixed          bool
	FixedX, FixedY float64

	// Metadata
	UserData any

	// Hit testing
	HitShape HitShape

	// Layout arranges this node's children on every refresh.
	Layout Layout

	// Internal
	childrenSorted bool
	sortedChildren []*Node
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.Interactable = true
	n.transformDirty = true
	n.childrenSorted = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewShape creates a node that draws glyph inside a w×h box.
func NewShape(name string, glyph Shape, w, h float64) *Node {
	n := &Node{Name: name, Type: NodeTypeShape, Glyph: glyph, Width: w, Height: h}
	nodeDefaults(n)
	return n
}

// NewLabel creates a text node.
func NewLabel(name, text string, size float64) *Node {
	n := &Node{Name: name, Type: NodeTypeText, Text: text, TextSize: size}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("eggmatch: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("eggmatch: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
		child.Parent.childrenSorted = false
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("eggmatch: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("eggmatch: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
		child.Parent.childrenSorted = false
	}
	if index < 0 || index > len(n.children) {
		panic("eggmatch: child index out of range")
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// SetFixed pins the node at screen position (x, y), taking it out of its
// parent's transform and flow layout.
func (n *Node) SetFixed(x, y float64) {
	n.Fixed = true
	n.FixedX = x
	n.FixedY = y
	markSubtreeDirty(n)
}

// ClearFixed returns the node to normal flow.
func (n *Node) ClearFixed() {
	if !n.Fixed && n.FixedX == 0 && n.FixedY == 0 {
		return
	}
	n.Fixed = false
	n.FixedX = 0
	n.FixedY = 0
	markSubtreeDirty(n)
}

// --- Queries ---

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	if other == nil {
		return false
	}
	return isAncestor(n, other)
}

// Closest returns the nearest node, starting with n itself and walking up
// through its ancestors, for which match returns true.
func (n *Node) Closest(match func(*Node) bool) *Node {
	for p := n; p != nil; p = p.Parent {
		if match(p) {
			return p
		}
	}
	return nil
}

// Bounds returns the node's box in world (screen) coordinates as of the last
// refresh.
func (n *Node) Bounds() Rect {
	m := n.worldTransform
	x0, y0 := transformPoint(m, 0, 0)
	x1, y1 := transformPoint(m, n.Width, 0)
	x2, y2 := transformPoint(m, 0, n.Height)
	x3, y3 := transformPoint(m, n.Width, n.Height)
	minX, maxX := min(x0, x1, x2, x3), max(x0, x1, x2, x3)
	minY, maxY := min(y0, y1, y2, y3), max(y0, y1, y2, y3)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// WorldAlpha returns the node's alpha multiplied through its ancestors.
func (n *Node) WorldAlpha() float64 {
	return n.worldAlpha
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node (inclusive).
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}

// paintChildren returns the children in ZIndex order, stable on insertion order.
func (n *Node) paintChildren() []*Node {
	if n.childrenSorted {
		if n.sortedChildren != nil {
			return n.sortedChildren
		}
		return n.children
	}
	n.sortedChildren = append(n.sortedChildren[:0], n.children...)
	sort.SliceStable(n.sortedChildren, func(i, j int) bool {
		return n.sortedChildren[i].ZIndex < n.sortedChildren[j].ZIndex
	})
	n.childrenSorted = true
	return n.sortedChildren
}
