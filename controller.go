package eggmatch

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session is the record of the one gesture currently holding an item.
type Session struct {
	ID       uuid.UUID
	Modality Modality
	Item     *Item

	// Offset from the pointer to the item's top-left corner at pick-up, so
	// the item stays glued to the pointer without jumping.
	OffsetX, OffsetY float64

	// Over is the target last seen under the pointer, for highlight bookkeeping.
	Over *Target

	// Last pointer position reported to the session.
	X, Y float64
}

// Options configures a Controller. Every field is optional.
type Options struct {
	// Frames receives deferred style writes. Defaults to the scene's queue.
	Frames   FrameScheduler
	Messages Messages
	Logger   *zap.Logger
	Events   EventSink
	// Feedback receives every feedback write. Defaults to the board.
	Feedback FeedbackSink
	// NoAnimation disables the settle and fade-in tweens.
	NoAnimation bool
}

// Controller owns the interaction session and applies the match, completion
// and reset rules for both input protocols. It is not safe for concurrent
// use; the host calls it from a single event loop.
type Controller struct {
	board    *Board
	scene    *Scene
	frames   FrameScheduler
	msgs     Messages
	log      *zap.Logger
	events   EventSink
	sink     FeedbackSink
	animate  bool
	session  *Session
	feedback Feedback
}

// NewController attaches a controller to a board.
func NewController(b *Board, opts Options) *Controller {
	c := &Controller{
		board:   b,
		scene:   b.Scene(),
		frames:  opts.Frames,
		msgs:    opts.Messages.withDefaults(),
		log:     opts.Logger,
		events:  opts.Events,
		sink:    opts.Feedback,
		animate: !opts.NoAnimation,
	}
	if c.frames == nil {
		c.frames = c.scene.Frames()
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.sink == nil {
		c.sink = b
	}
	return c
}

// Board returns the board the controller drives.
func (c *Controller) Board() *Board { return c.board }

// Session returns the active session, or nil when idle.
func (c *Controller) Session() *Session { return c.session }

// Feedback returns the last feedback written.
func (c *Controller) Feedback() Feedback { return c.feedback }

// Held returns the item held by the active session, or nil.
func (c *Controller) Held() *Item {
	if c.session == nil {
		return nil
	}
	return c.session.Item
}

// ResolveTargetAt returns the target under screen point (x, y), or nil.
// The held item is left out of hit testing so a floating item never hides
// the target beneath it.
func (c *Controller) ResolveTargetAt(x, y float64) *Target {
	var exclude *Node
	if it := c.Held(); it != nil {
		exclude = it.Node
	}
	return c.board.TargetFor(c.scene.HitTest(x, y, exclude))
}

// Complete reports whether every target is matched.
func (c *Controller) Complete() bool {
	for _, t := range c.board.targets {
		if !t.matched {
			return false
		}
	}
	return true
}

// CheckCompletion shows the celebratory feedback when every target is
// matched and reports whether it did. Running it again after completion
// shows the same feedback again and changes nothing else.
func (c *Controller) CheckCompletion() bool {
	if !c.Complete() {
		return false
	}
	c.setFeedback(ToneCelebrate)
	c.emit(EventComplete, nil, nil)
	c.log.Info("board complete", zap.Int("targets", len(c.board.targets)))
	return true
}

// Reset returns every item to the container, clears every target and the
// feedback, and ends any gesture in progress. It is idempotent.
func (c *Controller) Reset() {
	var ended uuid.UUID
	if c.session != nil {
		ended = c.session.ID
	}
	c.session = nil
	c.scene.StopTweens()

	for i, it := range c.board.items {
		c.board.Container.AddChildAt(it.Node, i)
		it.draggable = true
		it.placement = PlacementFree
		n := it.Node
		n.Cursor = CursorGrab
		n.Visible = true
		n.Interactable = true
		n.Dragging = false
		n.SetZIndex(0)
		n.ClearFixed()
		n.SetScale(1, 1)
		n.SetAlpha(1)
	}
	for _, t := range c.board.targets {
		t.matched = false
		t.setHighlight(false)
	}
	c.board.FeedbackLabel.SetAlpha(1)
	c.feedback = Feedback{}
	c.sink.SetFeedback(c.feedback)

	c.send(Event{Type: EventReset, SessionID: ended})
	c.log.Debug("board reset", zap.Stringer("ended_session", ended))
}

// --- Session bookkeeping ---

// begin starts a session for it. The caller has checked that none is active.
func (c *Controller) begin(mode Modality, it *Item, x, y float64) *Session {
	if it.Node.Fixed {
		// Still snapping back from the previous gesture.
		c.scene.StopTweensOn(it.Node)
		clearFloating(it.Node)
	}
	c.scene.Refresh()
	r := it.Node.Bounds()
	s := &Session{
		ID:       uuid.New(),
		Modality: mode,
		Item:     it,
		OffsetX:  x - r.X,
		OffsetY:  y - r.Y,
		X:        x,
		Y:        y,
	}
	c.session = s
	it.placement = PlacementHeld
	c.setFeedback(ToneNeutral)
	c.emit(EventPickUp, it, nil)
	c.log.Debug("session started",
		zap.Stringer("session", s.ID),
		zap.Stringer("modality", mode),
		zap.String("item", it.ID),
	)
	return s
}

// end clears the session. An item still held goes back to free; if the
// gesture never reached a target the session is reported as cancelled.
func (c *Controller) end(dropped bool) {
	s := c.session
	if s == nil {
		return
	}
	c.session = nil
	if s.Item.placement == PlacementHeld {
		s.Item.placement = PlacementFree
	}
	if !dropped {
		c.send(Event{
			Type: EventCancel, SessionID: s.ID, Modality: s.Modality,
			ItemID: s.Item.ID, ItemShape: s.Item.Shape,
		})
	}
	c.log.Debug("session ended", zap.Stringer("session", s.ID), zap.Bool("dropped", dropped))
}

// active reports whether s is still the session in progress. Deferred
// style writes check it so a finished gesture never gets restyled.
func (c *Controller) active(s *Session) bool {
	return s != nil && c.session == s
}

// --- Shared match rule ---

// attemptMatch applies the match rule between the held item and t.
func (c *Controller) attemptMatch(t *Target) bool {
	it := c.Held()
	if it != nil && t != nil && !t.matched {
		if it.Shape == t.Shape {
			c.accept(it, t)
			return true
		}
		c.setFeedback(ToneNegative)
		c.emit(EventMismatch, it, t)
		c.log.Debug("mismatch", zap.String("item", it.ID), zap.String("target", t.ID))
	}
	if it != nil {
		clearFloating(it.Node)
	}
	return false
}

func (c *Controller) accept(it *Item, t *Target) {
	t.Node.AddChild(it.Node)
	it.placement = PlacementMatched
	it.draggable = false
	it.Node.Cursor = CursorDefault
	clearFloating(it.Node)
	t.matched = true
	t.setHighlight(false)
	c.setFeedback(TonePositive)
	if c.animate {
		c.scene.Animate(settleTween(it.Node))
	}
	c.emit(EventMatch, it, t)
	c.log.Debug("match", zap.String("item", it.ID), zap.String("target", t.ID))
	c.CheckCompletion()
}

// clearFloating removes the positioning a touch drag applies.
// snapBack animates an item that was just returned to the container from
// the screen position (fromX, fromY) to its resting place. The item stays
// floating and out of reach of the pointer until it lands.
func (c *Controller) snapBack(it *Item, fromX, fromY float64) {
	n := it.Node
	c.scene.Refresh()
	to := n.Bounds()
	if to.X == fromX && to.Y == fromY {
		return
	}
	n.SetFixed(fromX, fromY)
	n.SetZIndex(DragZIndex)
	n.Interactable = false
	g := snapBackTween(n, to.X, to.Y)
	g.OnDone = func() { clearFloating(n) }
	c.scene.Animate(g)
}

func clearFloating(n *Node) {
	n.ClearFixed()
	n.SetZIndex(0)
	n.Interactable = true
}

// --- Output helpers ---

func (c *Controller) setFeedback(t Tone) {
	label := c.board.FeedbackLabel
	from := label.Color
	c.feedback = c.msgs.feedback(t)
	c.sink.SetFeedback(c.feedback)
	if c.animate && t != ToneNone {
		c.scene.Animate(fadeInTween(label))
		if label.Color != from {
			c.scene.Animate(feedbackColorTween(label, from))
		}
	}
}

func (c *Controller) emit(typ EventType, it *Item, t *Target) {
	e := Event{Type: typ}
	if c.session != nil {
		e.SessionID = c.session.ID
		e.Modality = c.session.Modality
	}
	if it != nil {
		e.ItemID, e.ItemShape = it.ID, it.Shape
	}
	if t != nil {
		e.TargetID, e.TargetShape = t.ID, t.Shape
	}
	c.send(e)
}

func (c *Controller) send(e Event) {
	if c.events != nil {
		c.events.EmitEvent(e)
	}
}
