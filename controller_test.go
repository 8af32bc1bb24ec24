package eggmatch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

// --- Helpers ---

// twoShapeSpec is the smallest board with a real choice: a circle and a
// square egg, and a circle and a square outline.
func twoShapeSpec() BoardSpec {
	return BoardSpec{
		Items: []ItemSpec{
			{ID: "egg-circle", Shape: ShapeCircle},
			{ID: "egg-square", Shape: ShapeSquare},
		},
		Targets: []TargetSpec{
			{ID: "outline-circle", Shape: ShapeCircle},
			{ID: "outline-square", Shape: ShapeSquare},
		},
	}
}

// newTestController builds a board and controller with animations off.
// Deferred writes go to the scene's queue; call paint to flush them.
func newTestController(t *testing.T, spec BoardSpec, opts Options) (*Board, *Controller) {
	t.Helper()
	b, err := NewBoard(NewScene(), spec)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	opts.NoAnimation = true
	return b, NewController(b, opts)
}

func paint(b *Board) { b.Scene().BeginPaint() }

func centerOf(b *Board, n *Node) (float64, float64) {
	return center(b.Scene(), n)
}

// dragTo runs a full mouse gesture from it onto tgt and returns the drop
// result.
func dragTo(t *testing.T, c *Controller, it *Item, tgt *Target) DragResult {
	t.Helper()
	b := c.Board()
	x, y := centerOf(b, it.Node)
	if res := c.HandleDrag(DragEvent{Kind: DragStart, Item: it, X: x, Y: y}); !res.Accepted {
		t.Fatalf("DragStart(%s) rejected", it.ID)
	}
	paint(b)
	tx, ty := centerOf(b, tgt.Node)
	c.HandleDrag(DragEvent{Kind: DragOver, Target: tgt, X: tx, Y: ty})
	res := c.HandleDrag(DragEvent{Kind: Drop, Target: tgt, X: tx, Y: ty})
	c.HandleDrag(DragEvent{Kind: DragEnd, Item: it, X: tx, Y: ty})
	paint(b)
	return res
}

// touchTo runs a full finger gesture from it onto tgt and returns the end
// result.
func touchTo(t *testing.T, c *Controller, it *Item, tgt *Target) TouchResult {
	t.Helper()
	b := c.Board()
	x, y := centerOf(b, it.Node)
	if res := c.HandleTouch(TouchEvent{Kind: TouchStart, Item: it, X: x, Y: y}); !res.Accepted {
		t.Fatalf("TouchStart(%s) rejected", it.ID)
	}
	paint(b)
	tx, ty := centerOf(b, tgt.Node)
	c.HandleTouch(TouchEvent{Kind: TouchMove, X: tx, Y: ty})
	paint(b)
	res := c.HandleTouch(TouchEvent{Kind: TouchEnd, X: tx, Y: ty})
	paint(b)
	return res
}

type itemState struct {
	Parent       string
	Placement    Placement
	Draggable    bool
	Fixed        bool
	ZIndex       int
	Interactable bool
	Dragging     bool
	Cursor       Cursor
	Bounds       Rect
}

type boardState struct {
	Items    map[string]itemState
	Matched  map[string]bool
	Lit      map[string]bool
	Feedback Feedback
	Session  bool
}

func snapshot(c *Controller) boardState {
	b := c.Board()
	b.Scene().Refresh()
	st := boardState{
		Items:    make(map[string]itemState),
		Matched:  make(map[string]bool),
		Lit:      make(map[string]bool),
		Feedback: c.Feedback(),
		Session:  c.Session() != nil,
	}
	for _, it := range b.Items() {
		n := it.Node
		st.Items[it.ID] = itemState{
			Parent:       n.Parent.Name,
			Placement:    it.Placement(),
			Draggable:    it.Draggable(),
			Fixed:        n.Fixed,
			ZIndex:       n.ZIndex,
			Interactable: n.Interactable,
			Dragging:     n.Dragging,
			Cursor:       n.Cursor,
			Bounds:       n.Bounds(),
		}
	}
	for _, tg := range b.Targets() {
		st.Matched[tg.ID] = tg.Matched()
		st.Lit[tg.ID] = tg.Highlighted()
	}
	return st
}

// --- Match rule ---

func TestAttemptMatchRule(t *testing.T) {
	tests := []struct {
		name        string
		item        string
		target      string
		preMatched  bool
		wantMatched bool
		wantTone    Tone
	}{
		{"same shape", "egg-circle", "outline-circle", false, true, TonePositive},
		{"different shape", "egg-circle", "outline-square", false, false, ToneNegative},
		{"same shape but matched", "egg-circle", "outline-circle", true, false, ToneNeutral},
		{"different shape and matched", "egg-circle", "outline-square", true, false, ToneNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, c := newTestController(t, twoShapeSpec(), Options{})
			it, tg := b.Item(tt.item), b.Target(tt.target)
			if tt.preMatched {
				tg.matched = true
			}
			c.HandleDrag(DragEvent{Kind: DragStart, Item: it})

			if got := c.attemptMatch(tg); got != tt.wantMatched {
				t.Errorf("attemptMatch = %v, want %v", got, tt.wantMatched)
			}
			if c.Feedback().Tone != tt.wantTone {
				t.Errorf("tone = %s, want %s", c.Feedback().Tone, tt.wantTone)
			}
			if tt.wantMatched {
				if it.Node.Parent != tg.Node || it.Placement() != PlacementMatched || it.Draggable() {
					t.Errorf("accepted item: parent %q placement %s draggable %v",
						it.Node.Parent.Name, it.Placement(), it.Draggable())
				}
			} else if it.Node.Parent != b.Container {
				t.Errorf("rejected item moved to %q", it.Node.Parent.Name)
			}
		})
	}
}

func TestAttemptMatchNoHeldItem(t *testing.T) {
	b, c := newTestController(t, twoShapeSpec(), Options{})
	if c.attemptMatch(b.Target("outline-circle")) {
		t.Error("attemptMatch without a session should not match")
	}
	if c.Feedback() != (Feedback{}) {
		t.Errorf("feedback = %+v, want empty", c.Feedback())
	}
}

// --- End-to-end ---

func TestControllerCircleSquareScenario(t *testing.T) {
	rec := &EventRecorder{}
	b, c := newTestController(t, twoShapeSpec(), Options{Events: rec})
	circle, square := b.Item("egg-circle"), b.Item("egg-square")
	outCircle, outSquare := b.Target("outline-circle"), b.Target("outline-square")
	msgs := DefaultMessages()

	// Wrong outline.
	res := dragTo(t, c, circle, outSquare)
	if res.Matched {
		t.Fatal("circle matched the square outline")
	}
	if c.Feedback().Text != msgs.Mismatch {
		t.Errorf("feedback = %q, want mismatch message", c.Feedback().Text)
	}
	if outSquare.Matched() {
		t.Error("square outline should stay unmatched")
	}
	if circle.Node.Parent != b.Container || !circle.Draggable() || circle.Placement() != PlacementFree {
		t.Error("circle should be back in the container and draggable")
	}

	// Right outline.
	if res := dragTo(t, c, circle, outCircle); !res.Matched {
		t.Fatal("circle did not match the circle outline")
	}
	if c.Feedback().Text != msgs.Match {
		t.Errorf("feedback = %q, want match message", c.Feedback().Text)
	}
	if !outCircle.Matched() || circle.Draggable() || circle.Node.Parent != outCircle.Node {
		t.Error("circle should be inside the circle outline and locked")
	}
	if c.Complete() {
		t.Error("Complete after N-1 matches")
	}

	// Second item completes the board.
	if res := touchTo(t, c, square, outSquare); !res.Matched {
		t.Fatal("square did not match the square outline")
	}
	if c.Feedback().Text != msgs.Complete || c.Feedback().Tone != ToneCelebrate {
		t.Errorf("feedback = %+v, want celebration", c.Feedback())
	}

	c.Reset()
	for _, it := range b.Items() {
		if it.Node.Parent != b.Container || !it.Draggable() {
			t.Errorf("%s not restored to the container", it.ID)
		}
	}
	for _, tg := range b.Targets() {
		if tg.Matched() {
			t.Errorf("%s still matched after reset", tg.ID)
		}
	}

	want := []EventType{
		EventPickUp, EventMismatch,
		EventPickUp, EventMatch,
		EventPickUp, EventMatch, EventComplete,
		EventReset,
	}
	if diff := cmp.Diff(want, rec.Types()); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

// --- Completion ---

func TestCompletionOnlyOnLastMatch(t *testing.T) {
	rec := &EventRecorder{}
	b, c := newTestController(t, DefaultBoardSpec(), Options{Events: rec})
	targets := b.Targets()

	for i, tg := range targets {
		it := b.Item("egg-" + string(tg.Shape))
		dragTo(t, c, it, tg)

		last := i == len(targets)-1
		if c.Complete() != last {
			t.Errorf("after %d matches Complete = %v, want %v", i+1, c.Complete(), last)
		}
		celebrating := c.Feedback().Tone == ToneCelebrate
		if celebrating != last {
			t.Errorf("after %d matches celebrating = %v, want %v", i+1, celebrating, last)
		}
	}

	completes := 0
	for _, e := range rec.Events {
		if e.Type == EventComplete {
			completes++
		}
	}
	if completes != 1 {
		t.Errorf("complete events = %d, want 1", completes)
	}

	// Running the check again changes nothing.
	before := snapshot(c)
	if !c.CheckCompletion() {
		t.Error("CheckCompletion = false on a complete board")
	}
	if diff := cmp.Diff(before, snapshot(c)); diff != "" {
		t.Errorf("CheckCompletion changed state (-before +after):\n%s", diff)
	}
}

func TestCheckCompletionIncomplete(t *testing.T) {
	_, c := newTestController(t, twoShapeSpec(), Options{})
	if c.CheckCompletion() {
		t.Error("CheckCompletion = true on a fresh board")
	}
	if c.Feedback().Tone != ToneNone {
		t.Errorf("tone = %s, want none", c.Feedback().Tone)
	}
}

// --- Reset ---

func TestResetIdempotent(t *testing.T) {
	b, c := newTestController(t, DefaultBoardSpec(), Options{})
	fresh := snapshot(c)

	dragTo(t, c, b.Item("egg-circle"), b.Target("outline-circle"))
	dragTo(t, c, b.Item("egg-square"), b.Target("outline-circle"))
	c.HandleTouch(TouchEvent{Kind: TouchStart, Item: b.Item("egg-diamond"), X: 589, Y: 365})
	paint(b)

	c.Reset()
	once := snapshot(c)
	c.Reset()
	twice := snapshot(c)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second reset changed state (-once +twice):\n%s", diff)
	}
	if diff := cmp.Diff(fresh, once); diff != "" {
		t.Errorf("reset did not restore a fresh board (-fresh +reset):\n%s", diff)
	}
}

func TestResetDuringTouchBeforePaint(t *testing.T) {
	rec := &EventRecorder{}
	b, c := newTestController(t, DefaultBoardSpec(), Options{Events: rec})
	egg := b.Item("egg-circle")

	c.HandleTouch(TouchEvent{Kind: TouchStart, Item: egg, X: 463, Y: 365})
	sid := c.Session().ID
	c.Reset()
	paint(b)

	if egg.Node.Fixed || egg.Node.Dragging || !egg.Node.Interactable {
		t.Error("a deferred write from the ended gesture was applied")
	}
	if c.Session() != nil {
		t.Error("Reset should end the session")
	}
	last := rec.Events[len(rec.Events)-1]
	if last.Type != EventReset || last.SessionID != sid {
		t.Errorf("last event = %s %s, want reset for session %s", last.Type, last.SessionID, sid)
	}

	// Late events from the interrupted gesture are ignored.
	if res := c.HandleTouch(TouchEvent{Kind: TouchMove, X: 181, Y: 151}); res.Accepted {
		t.Error("TouchMove after reset was accepted")
	}
	if res := c.HandleTouch(TouchEvent{Kind: TouchEnd, X: 181, Y: 151}); res.Accepted {
		t.Error("TouchEnd after reset was accepted")
	}
	if b.Target("outline-circle").Matched() {
		t.Error("a stale touch end matched")
	}
}

func TestResetStopsTweens(t *testing.T) {
	b, err := NewBoard(NewScene(), twoShapeSpec())
	if err != nil {
		t.Fatal(err)
	}
	c := NewController(b, Options{})
	dragTo(t, c, b.Item("egg-circle"), b.Target("outline-circle"))
	if !b.Scene().Tweening() {
		t.Fatal("a match should start the settle and fade tweens")
	}

	c.Reset()
	if b.Scene().Tweening() {
		t.Error("Reset should stop running tweens")
	}
	if b.Item("egg-circle").Node.Alpha != 1 || b.FeedbackLabel.Alpha != 1 {
		t.Error("Reset should restore full opacity")
	}
}

// --- Single session ---

func TestAtMostOneSession(t *testing.T) {
	b, c := newTestController(t, DefaultBoardSpec(), Options{})
	first, second := b.Item("egg-circle"), b.Item("egg-square")
	lit := b.Target("outline-triangle")

	c.HandleDrag(DragEvent{Kind: DragStart, Item: first, X: 463, Y: 365})
	c.HandleDrag(DragEvent{Kind: DragOver, Target: lit, X: 473, Y: 151})
	s := c.Session()

	tests := []struct {
		name string
		try  func() bool
	}{
		{"drag start", func() bool {
			return c.HandleDrag(DragEvent{Kind: DragStart, Item: second, X: 211, Y: 365}).Accepted
		}},
		{"touch start", func() bool {
			return c.HandleTouch(TouchEvent{Kind: TouchStart, Item: second, X: 211, Y: 365}).Accepted
		}},
		{"touch start same item", func() bool {
			return c.HandleTouch(TouchEvent{Kind: TouchStart, Item: first, X: 463, Y: 365}).Accepted
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.try() {
				t.Error("second start accepted")
			}
			paint(b)
			if c.Session() != s || c.Held() != first {
				t.Error("the original session was replaced")
			}
			if !lit.Highlighted() {
				t.Error("the first gesture's highlight was cleared")
			}
			if second.Placement() != PlacementFree || second.Node.Fixed || second.Node.Dragging {
				t.Error("the rejected item was picked up")
			}
		})
	}
}

// --- Hit exclusion ---

func TestResolveTargetAtExcludesHeldItem(t *testing.T) {
	b, c := newTestController(t, twoShapeSpec(), Options{})
	egg, outline := b.Item("egg-circle"), b.Target("outline-circle")

	c.HandleDrag(DragEvent{Kind: DragStart, Item: egg, X: 1, Y: 1})
	b.Scene().Refresh()
	r := outline.Node.Bounds()
	egg.Node.SetFixed(r.X+10, r.Y+10)
	x, y := centerOf(b, outline.Node)

	if got := b.Scene().HitTest(x, y, nil); got != egg.Node {
		t.Fatalf("plain HitTest = %v, want the floating egg on top", nodeName(got))
	}
	if got := c.ResolveTargetAt(x, y); got != outline {
		t.Errorf("ResolveTargetAt = %v, want the outline beneath", got)
	}
	if !egg.Node.Interactable || !egg.Node.Visible {
		t.Error("resolution must not touch the held item's state")
	}
}

func TestResolveTargetAtThroughMatchedItem(t *testing.T) {
	b, c := newTestController(t, twoShapeSpec(), Options{})
	outline := b.Target("outline-circle")
	dragTo(t, c, b.Item("egg-circle"), outline)

	x, y := centerOf(b, outline.Node)
	if got := c.ResolveTargetAt(x, y); got != outline {
		t.Errorf("ResolveTargetAt = %v, want the matched outline", got)
	}
	if got := c.ResolveTargetAt(1, 1); got != nil {
		t.Errorf("ResolveTargetAt(empty) = %v, want nil", got)
	}
}

// --- Options ---

type feedbackLog []Feedback

func (l *feedbackLog) SetFeedback(f Feedback) { *l = append(*l, f) }

func TestCustomMessagesAndSink(t *testing.T) {
	var sink feedbackLog
	b, c := newTestController(t, twoShapeSpec(), Options{
		Messages: Messages{Match: "Yes!"},
		Feedback: &sink,
	})
	dragTo(t, c, b.Item("egg-circle"), b.Target("outline-circle"))

	var texts []string
	for _, f := range sink {
		texts = append(texts, f.Text)
	}
	want := []string{DefaultMessages().PickUp, "Yes!"}
	if diff := cmp.Diff(want, texts); diff != "" {
		t.Errorf("feedback writes (-want +got):\n%s", diff)
	}
	if b.FeedbackLabel.Text != "" {
		t.Errorf("board label = %q, a custom sink should replace it", b.FeedbackLabel.Text)
	}
}

func TestEventsShareSessionID(t *testing.T) {
	rec := &EventRecorder{}
	b, c := newTestController(t, twoShapeSpec(), Options{Events: rec})
	dragTo(t, c, b.Item("egg-circle"), b.Target("outline-square"))
	touchTo(t, c, b.Item("egg-circle"), b.Target("outline-circle"))

	if len(rec.Events) != 4 {
		t.Fatalf("events = %v, want 4", rec.Types())
	}
	first, second := rec.Events[0].SessionID, rec.Events[2].SessionID
	if first == uuid.Nil || first != rec.Events[1].SessionID {
		t.Error("pick-up and mismatch should share a session id")
	}
	if second == first || second != rec.Events[3].SessionID {
		t.Error("each gesture should get its own session id")
	}
	if rec.Events[0].Modality != ModalityDrag || rec.Events[2].Modality != ModalityTouch {
		t.Errorf("modalities = %s, %s", rec.Events[0].Modality, rec.Events[2].Modality)
	}
	m := rec.Events[3]
	if m.ItemID != "egg-circle" || m.TargetID != "outline-circle" || m.ItemShape != ShapeCircle {
		t.Errorf("match event = %+v", m)
	}
}

func TestResetRestoresBoardOrder(t *testing.T) {
	b, c := newTestController(t, DefaultBoardSpec(), Options{})
	dragTo(t, c, b.Item("egg-triangle"), b.Target("outline-triangle"))
	dragTo(t, c, b.Item("egg-square"), b.Target("outline-square"))

	c.Reset()

	var got, want []string
	for _, n := range b.Container.Children() {
		got = append(got, n.Name)
	}
	for _, it := range b.Items() {
		want = append(want, it.ID)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("container order (-want +got):\n%s", diff)
	}
}

func TestFeedbackColourBlends(t *testing.T) {
	b, c := newAnimatedController(t)
	label := b.FeedbackLabel
	touchTo(t, c, b.Item("egg-circle"), b.Target("outline-circle"))

	if label.Color == ColorGreen {
		t.Fatal("label jumped straight to the match colour")
	}
	b.Scene().Update(feedbackDuration)
	if d := label.Color.G - ColorGreen.G; d > 0.01 || d < -0.01 {
		t.Errorf("label colour = %v, want ~%v", label.Color, ColorGreen)
	}
	if c.Feedback().Color != ColorGreen {
		t.Errorf("Feedback().Color = %v, the reported colour never blends", c.Feedback().Color)
	}
}
