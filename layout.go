package eggmatch

// Layout positions a node's children. It runs on every scene refresh, so
// implementations must be cheap and write positions only when they change.
type Layout interface {
	Arrange(parent *Node)
}

// RowLayout places children left to right in the parent's box, skipping
// fixed children. With Center set the row is centred
// horizontally; children are always centred vertically.
type RowLayout struct {
	Gap     float64
	Padding float64
	Center  bool
}

// Arrange implements Layout.
func (l RowLayout) Arrange(parent *Node) {
	var total float64
	count := 0
	for _, c := range parent.children {
		if inFlow(c) {
			total += c.Width
			count++
		}
	}
	if count > 1 {
		total += l.Gap * float64(count-1)
	}

	x := l.Padding
	if l.Center && parent.Width > 0 {
		x = (parent.Width - total) / 2
	}
	for _, c := range parent.children {
		if !inFlow(c) {
			continue
		}
		y := l.Padding
		if parent.Height > 0 {
			y = (parent.Height - c.Height) / 2
		}
		place(c, x, y)
		x += c.Width + l.Gap
	}
}

// CenterLayout centres every child inside the parent's box.
type CenterLayout struct{}

// Arrange implements Layout.
func (CenterLayout) Arrange(parent *Node) {
	for _, c := range parent.children {
		if !inFlow(c) {
			continue
		}
		place(c, (parent.Width-c.Width)/2, (parent.Height-c.Height)/2)
	}
}

func inFlow(n *Node) bool {
	return !n.Fixed
}

func place(n *Node, x, y float64) {
	if n.X == x && n.Y == y {
		return
	}
	n.SetPosition(x, y)
}

// applyLayout runs layouts depth-first from n.
func applyLayout(n *Node) {
	if n.Layout != nil {
		n.Layout.Arrange(n)
	}
	for _, c := range n.children {
		applyLayout(c)
	}
}
