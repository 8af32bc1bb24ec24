package eggmatch

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrInvalidBoard is returned (wrapped) when a BoardSpec cannot produce a
// playable board.
var ErrInvalidBoard = errors.New("invalid board")

// ItemSpec describes one egg.
type ItemSpec struct {
	ID    string
	Shape Shape
	Color Color
}

// TargetSpec describes one outline.
type TargetSpec struct {
	ID    string
	Shape Shape
}

// BoardSpec describes the board the game is played on. Zero sizes are
// replaced by the defaults.
type BoardSpec struct {
	Title      string
	ResetLabel string
	Width      float64
	Height     float64
	EggSize    float64
	TargetSize float64
	Gap        float64
	Items      []ItemSpec
	Targets    []TargetSpec

	// Shuffle randomizes the order eggs appear in. A non-zero Seed makes the
	// order reproducible.
	Shuffle bool
	Seed    uint64
}

// DefaultBoardSpec returns a four-shape board.
func DefaultBoardSpec() BoardSpec {
	return BoardSpec{
		Title:      "Put each egg in the outline of the same shape",
		ResetLabel: "Reset",
		Width:      800,
		Height:     600,
		EggSize:    90,
		TargetSize: 110,
		Gap:        36,
		Items: []ItemSpec{
			{ID: "egg-square", Shape: ShapeSquare, Color: Color{0.36, 0.55, 0.93, 1}},
			{ID: "egg-triangle", Shape: ShapeTriangle, Color: Color{0.96, 0.75, 0.2, 1}},
			{ID: "egg-circle", Shape: ShapeCircle, Color: Color{0.93, 0.42, 0.42, 1}},
			{ID: "egg-diamond", Shape: ShapeDiamond, Color: Color{0.4, 0.78, 0.5, 1}},
		},
		Targets: []TargetSpec{
			{ID: "outline-circle", Shape: ShapeCircle},
			{ID: "outline-square", Shape: ShapeSquare},
			{ID: "outline-triangle", Shape: ShapeTriangle},
			{ID: "outline-diamond", Shape: ShapeDiamond},
		},
	}
}

// withDefaults fills zero geometry and missing IDs.
func (spec BoardSpec) withDefaults() BoardSpec {
	d := DefaultBoardSpec()
	if spec.Width <= 0 {
		spec.Width = d.Width
	}
	if spec.Height <= 0 {
		spec.Height = d.Height
	}
	if spec.EggSize <= 0 {
		spec.EggSize = d.EggSize
	}
	if spec.TargetSize <= 0 {
		spec.TargetSize = d.TargetSize
	}
	if spec.Gap <= 0 {
		spec.Gap = d.Gap
	}
	if spec.ResetLabel == "" {
		spec.ResetLabel = d.ResetLabel
	}
	items := make([]ItemSpec, len(spec.Items))
	for i, it := range spec.Items {
		if it.ID == "" {
			it.ID = fmt.Sprintf("egg-%d", i+1)
		}
		if it.Color == (Color{}) {
			it.Color = ColorWhite
		}
		items[i] = it
	}
	spec.Items = items
	targets := make([]TargetSpec, len(spec.Targets))
	for i, t := range spec.Targets {
		if t.ID == "" {
			t.ID = fmt.Sprintf("outline-%d", i+1)
		}
		targets[i] = t
	}
	spec.Targets = targets
	return spec
}

// Validate reports whether the spec describes a board that can be completed.
func (spec BoardSpec) Validate() error {
	spec = spec.withDefaults()
	if len(spec.Targets) == 0 {
		return fmt.Errorf("%w: no targets", ErrInvalidBoard)
	}
	if len(spec.Items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidBoard)
	}

	seen := make(map[string]bool, len(spec.Items)+len(spec.Targets))
	supply := make(map[Shape]int)
	for _, it := range spec.Items {
		if it.Shape == "" {
			return fmt.Errorf("%w: item %q has no shape", ErrInvalidBoard, it.ID)
		}
		if seen[it.ID] {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidBoard, it.ID)
		}
		seen[it.ID] = true
		supply[it.Shape]++
	}
	for _, t := range spec.Targets {
		if t.Shape == "" {
			return fmt.Errorf("%w: target %q has no shape", ErrInvalidBoard, t.ID)
		}
		if seen[t.ID] {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidBoard, t.ID)
		}
		seen[t.ID] = true
		supply[t.Shape]--
		if supply[t.Shape] < 0 {
			return fmt.Errorf("%w: not enough %q items for target %q", ErrInvalidBoard, t.Shape, t.ID)
		}
	}
	return nil
}

// Item is a draggable egg.
type Item struct {
	ID    string
	Shape Shape
	Node  *Node

	placement Placement
	draggable bool
}

// Placement returns where the item currently lives.
func (i *Item) Placement() Placement { return i.placement }

// Draggable reports whether a new gesture may pick the item up.
func (i *Item) Draggable() bool { return i.draggable }

// Target is an outline that accepts exactly one egg of its shape.
type Target struct {
	ID    string
	Shape Shape
	Node  *Node

	matched bool
}

// Matched reports whether the target has accepted an item.
func (t *Target) Matched() bool { return t.matched }

// Highlighted reports whether the target shows the drag-over highlight.
func (t *Target) Highlighted() bool { return t.Node.Highlighted }

func (t *Target) setHighlight(on bool) { t.Node.Highlighted = on }

// Board is the collaborator the controller works against: the eggs, the
// outlines, the container eggs rest in, and the feedback label.
type Board struct {
	scene *Scene
	spec  BoardSpec

	Title         *Node
	TargetRow     *Node
	Container     *Node
	FeedbackLabel *Node
	ResetButton   *Node

	items    []*Item
	targets  []*Target
	feedback Feedback
}

// NewBoard validates spec and builds the board's nodes under the scene root.
func NewBoard(scene *Scene, spec BoardSpec) (*Board, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	spec = spec.withDefaults()
	if spec.Shuffle {
		shuffleItems(spec.Items, spec.Seed)
	}

	b := &Board{scene: scene, spec: spec}
	w := spec.Width

	b.Title = NewLabel("title", spec.Title, 22)
	b.Title.Width, b.Title.Height = w, 32
	b.Title.Color = ColorInk
	b.Title.SetPosition(0, spec.Height*0.04)

	b.TargetRow = NewContainer("targets")
	b.TargetRow.Width, b.TargetRow.Height = w, spec.TargetSize+24
	b.TargetRow.Layout = RowLayout{Gap: spec.Gap, Center: true}
	b.TargetRow.SetPosition(0, spec.Height*0.14)

	b.Container = NewContainer("eggs")
	b.Container.Width, b.Container.Height = w, spec.EggSize+40
	b.Container.Layout = RowLayout{Gap: spec.Gap, Center: true}
	b.Container.SetPosition(0, spec.Height*0.5)

	b.FeedbackLabel = NewLabel("feedback", "", 20)
	b.FeedbackLabel.Width, b.FeedbackLabel.Height = w, 30
	b.FeedbackLabel.SetPosition(0, spec.Height*0.72)

	b.ResetButton = NewShape("reset", "", 140, 44)
	b.ResetButton.Filled = true
	b.ResetButton.Color = ColorInk
	b.ResetButton.Text = spec.ResetLabel
	b.ResetButton.TextSize = 18
	b.ResetButton.Cursor = CursorPointer
	b.ResetButton.SetPosition((w-140)/2, spec.Height*0.82)

	for _, ts := range spec.Targets {
		t := &Target{ID: ts.ID, Shape: ts.Shape}
		t.Node = NewShape(ts.ID, ts.Shape, spec.TargetSize, spec.TargetSize)
		t.Node.Color = ColorInk
		t.Node.Layout = CenterLayout{}
		t.Node.HitShape = GlyphHitShape(ts.Shape, spec.TargetSize, spec.TargetSize)
		t.Node.UserData = t
		b.TargetRow.AddChild(t.Node)
		b.targets = append(b.targets, t)
	}
	for _, is := range spec.Items {
		it := &Item{ID: is.ID, Shape: is.Shape, placement: PlacementFree, draggable: true}
		it.Node = NewShape(is.ID, is.Shape, spec.EggSize, spec.EggSize)
		it.Node.Filled = true
		it.Node.Color = is.Color
		it.Node.Cursor = CursorGrab
		it.Node.HitShape = GlyphHitShape(is.Shape, spec.EggSize, spec.EggSize)
		it.Node.UserData = it
		b.Container.AddChild(it.Node)
		b.items = append(b.items, it)
	}

	root := scene.Root()
	root.AddChild(b.Title)
	root.AddChild(b.TargetRow)
	root.AddChild(b.Container)
	root.AddChild(b.FeedbackLabel)
	root.AddChild(b.ResetButton)
	scene.Refresh()
	return b, nil
}

func shuffleItems(items []ItemSpec, seed uint64) {
	swap := func(i, j int) { items[i], items[j] = items[j], items[i] }
	if seed == 0 {
		rand.Shuffle(len(items), swap)
		return
	}
	rand.New(rand.NewPCG(seed, seed>>1|1)).Shuffle(len(items), swap)
}

// Scene returns the scene the board lives in.
func (b *Board) Scene() *Scene { return b.scene }

// Spec returns the spec the board was built from, with defaults applied.
func (b *Board) Spec() BoardSpec { return b.spec }

// Items returns the eggs in board order. The slice MUST NOT be mutated.
func (b *Board) Items() []*Item { return b.items }

// Targets returns the outlines in board order. The slice MUST NOT be mutated.
func (b *Board) Targets() []*Target { return b.targets }

// Item returns the item with the given ID, or nil.
func (b *Board) Item(id string) *Item {
	for _, it := range b.items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// Target returns the target with the given ID, or nil.
func (b *Board) Target(id string) *Target {
	for _, t := range b.targets {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func isItemNode(n *Node) bool {
	_, ok := n.UserData.(*Item)
	return ok
}

func isTargetNode(n *Node) bool {
	_, ok := n.UserData.(*Target)
	return ok
}

// ItemFor returns the item whose node is n or encloses n.
func (b *Board) ItemFor(n *Node) *Item {
	if n == nil {
		return nil
	}
	if c := n.Closest(isItemNode); c != nil {
		return c.UserData.(*Item)
	}
	return nil
}

// TargetFor returns the target whose node is n or encloses n.
func (b *Board) TargetFor(n *Node) *Target {
	if n == nil {
		return nil
	}
	if c := n.Closest(isTargetNode); c != nil {
		return c.UserData.(*Target)
	}
	return nil
}

// IsResetButton reports whether n is the reset button or inside it.
func (b *Board) IsResetButton(n *Node) bool {
	return n != nil && b.ResetButton.Contains(n)
}

// MatchedCount returns how many targets are matched.
func (b *Board) MatchedCount() int {
	count := 0
	for _, t := range b.targets {
		if t.matched {
			count++
		}
	}
	return count
}

// SetFeedback implements FeedbackSink by writing to the feedback label.
func (b *Board) SetFeedback(f Feedback) {
	b.feedback = f
	b.FeedbackLabel.Text = f.Text
	b.FeedbackLabel.Color = f.Color
	if f.Color == (Color{}) {
		b.FeedbackLabel.Color = ColorInk
	}
}

// Feedback returns the last feedback written to the board.
func (b *Board) Feedback() Feedback { return b.feedback }
