package eggmatch

import "sort"

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	var positive, negative bool
	for i := 0; i < n; i++ {
		x1, y1 := p.Points[i].X, p.Points[i].Y
		j := (i + 1) % n
		x2, y2 := p.Points[j].X, p.Points[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the node's Width×Height box.
// Containers with no HitShape are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	if n.Type == NodeTypeContainer || (n.Width == 0 && n.Height == 0) {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// --- Ordering ---

// appendOrdered walks the subtree at n in painter order (DFS, ZIndex-sorted),
// appending every node accepted by keep to buf. Subtrees for which descend
// returns false are skipped. Fixed descendants are not walked in place; they
// are collected into fixed and painted later in their own top layer.
func appendOrdered(n *Node, layerRoot bool, descend, keep func(*Node) bool, buf, fixed []*Node) ([]*Node, []*Node) {
	if !descend(n) {
		return buf, fixed
	}
	if n.Fixed && !layerRoot {
		return buf, append(fixed, n)
	}
	if keep(n) {
		buf = append(buf, n)
	}
	for _, child := range n.paintChildren() {
		buf, fixed = appendOrdered(child, false, descend, keep, buf, fixed)
	}
	return buf, fixed
}

// orderedNodes returns the accepted nodes of the whole tree in painter order:
// the normal flow first, then each fixed layer in ascending ZIndex.
func orderedNodes(root *Node, descend, keep func(*Node) bool, buf []*Node) []*Node {
	var fixed []*Node
	buf, fixed = appendOrdered(root, true, descend, keep, buf, fixed)
	for len(fixed) > 0 {
		layers := fixed
		fixed = nil
		sort.SliceStable(layers, func(i, j int) bool { return layers[i].ZIndex < layers[j].ZIndex })
		for _, l := range layers {
			buf, fixed = appendOrdered(l, true, descend, keep, buf, fixed)
		}
	}
	return buf
}

// PaintOrder returns every visible node in the order the host should paint
// them. The returned slice is reused by the next call.
func (s *Scene) PaintOrder() []*Node {
	s.paintBuf = orderedNodes(s.root,
		func(n *Node) bool { return n.Visible },
		func(n *Node) bool { return n.Type != NodeTypeContainer },
		s.paintBuf[:0])
	return s.paintBuf
}

// --- Hit testing ---

// HitTest finds the topmost visible, interactable node at (x, y), ignoring
// the subtree rooted at exclude (which may be nil). It reads the tree only;
// no node state changes, not even transiently.
func (s *Scene) HitTest(x, y float64, exclude *Node) *Node {
	s.Refresh()
	s.hitBuf = orderedNodes(s.root,
		func(n *Node) bool { return n.Visible && n.Interactable && n != exclude },
		func(n *Node) bool { return n.HitShape != nil || n.Type != NodeTypeContainer },
		s.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(x, y)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}
