package eggmatch

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via the convenience constructors and either hand it to
// Scene.Animate or call Update(dt) yourself. The group writes values and
// marks the node dirty on every update.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool
	// OnDone runs once, on the update that finishes the group.
	OnDone func()
}

// Update advances all tweens by dt seconds and writes values to the target fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	if g.target != nil {
		g.target.MarkDirty()
	}
	if g.Done && g.OnDone != nil {
		g.OnDone()
	}
}

// Target returns the node the group writes to.
func (g *TweenGroup) Target() *Node {
	return g.target
}

// TweenPosition animates the node's position to (toX, toY). A fixed node
// moves in screen space (FixedX, FixedY); any other node moves its local X
// and Y.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	x, y := &node.X, &node.Y
	if node.Fixed {
		x, y = &node.FixedX, &node.FixedY
	}
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(*x), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(*y), float32(toY), duration, fn)
	g.fields[0] = x
	g.fields[1] = y
	return g
}

// TweenAlpha animates node.Alpha from `from` to `to`.
func TweenAlpha(node *Node, from, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	node.Alpha = from
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(from), float32(to), duration, fn)
	g.fields[0] = &node.Alpha
	return g
}

// TweenColor animates all four components of node.Color to the target color.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4, target: node}
	g.tweens[0] = gween.New(float32(node.Color.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(node.Color.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(node.Color.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(node.Color.A), float32(to.A), duration, fn)
	g.fields[0] = &node.Color.R
	g.fields[1] = &node.Color.G
	g.fields[2] = &node.Color.B
	g.fields[3] = &node.Color.A
	return g
}

// Durations of the built-in effects, in seconds.
const (
	settleDuration   = 0.35
	feedbackDuration = 0.25
	snapBackDuration = 0.2
)

// settleTween flashes an item that was just accepted by a target.
func settleTween(node *Node) *TweenGroup {
	return TweenAlpha(node, 0.35, 1, settleDuration, ease.OutQuad)
}

// fadeInTween fades a label in after its text changes.
func fadeInTween(node *Node) *TweenGroup {
	return TweenAlpha(node, 0, 1, feedbackDuration, ease.OutCubic)
}

// feedbackColorTween blends a label from its previous colour to the new one.
func feedbackColorTween(node *Node, from Color) *TweenGroup {
	to := node.Color
	node.Color = from
	return TweenColor(node, to, feedbackDuration, ease.OutCubic)
}

// snapBackTween carries a floating node back to the screen position of its
// resting place.
func snapBackTween(node *Node, toX, toY float64) *TweenGroup {
	return TweenPosition(node, toX, toY, snapBackDuration, ease.OutCubic)
}
