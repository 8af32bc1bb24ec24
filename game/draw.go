package game

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/eggmatch"
)

const (
	outlineWidth   = 4
	draggingAlpha  = 0.5  // an item being dragged natively stays in place, dimmed
	ghostAlpha     = 0.75 // the image that follows the mouse
	highlightAlpha = 0.18
	lineSpacing    = 1.25
)

var (
	defaultClearColor = eggmatch.Color{R: 0.98, G: 0.97, B: 0.94, A: 1}
	highlightColor    = eggmatch.ColorBlue
	buttonTextColor   = eggmatch.ColorWhite
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

func loadFontSource() (*text.GoTextFaceSource, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("game: failed to parse font: %w", err)
	}
	return src, nil
}

func (g *Game) face(size float64) *text.GoTextFace {
	if f, ok := g.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: g.source, Size: size}
	g.faces[size] = f
	return f
}

func toRGBA(c eggmatch.Color) color.NRGBA {
	return color.NRGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}
}

// drawScene paints every visible node in paint order.
func (g *Game) drawScene(screen *ebiten.Image) {
	for _, n := range g.world.Scene.PaintOrder() {
		alpha := n.WorldAlpha()
		if alpha <= 0 {
			continue
		}
		switch n.Type {
		case eggmatch.NodeTypeShape:
			g.drawShape(screen, n, alpha)
		case eggmatch.NodeTypeText:
			g.drawText(screen, n.Text, n.TextSize, n, n.Color, alpha)
		}
	}
}

func (g *Game) drawShape(screen *ebiten.Image, n *eggmatch.Node, alpha float64) {
	if n.Dragging && !n.Fixed {
		alpha *= draggingAlpha
	}
	pts := eggmatch.Outline(n.Glyph, n.Width, n.Height)
	for i, p := range pts {
		pts[i].X, pts[i].Y = n.LocalToWorld(p.X, p.Y)
	}

	switch {
	case n.Filled:
		fillPolygon(screen, pts, n.Color, alpha)
	case n.Highlighted:
		fillPolygon(screen, pts, highlightColor, alpha*highlightAlpha)
		strokePolygon(screen, pts, highlightColor, alpha)
	default:
		strokePolygon(screen, pts, n.Color, alpha)
	}

	if n.Text != "" {
		g.drawText(screen, n.Text, n.TextSize, n, buttonTextColor, alpha)
	}
}

// drawGhost draws the item a mouse drag carries under the cursor.
func (g *Game) drawGhost(screen *ebiten.Image) {
	it, x, y, ok := g.world.Router.DragGhost()
	if !ok {
		return
	}
	n := it.Node
	pts := eggmatch.Outline(n.Glyph, n.Width, n.Height)
	for i := range pts {
		pts[i].X += x
		pts[i].Y += y
	}
	fillPolygon(screen, pts, n.Color, ghostAlpha)
}

func (g *Game) drawText(screen *ebiten.Image, s string, size float64, n *eggmatch.Node, c eggmatch.Color, alpha float64) {
	if s == "" {
		return
	}
	if size <= 0 {
		size = 16
	}
	r := n.Bounds()
	op := &text.DrawOptions{}
	op.LineSpacing = size * lineSpacing
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(r.X+r.Width/2, r.Y+r.Height/2)
	op.ColorScale.ScaleWithColor(toRGBA(c))
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, s, g.face(size), op)
}

func polygonPath(pts []eggmatch.Vec2) *vector.Path {
	var p vector.Path
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(float32(pt.X), float32(pt.Y))
			continue
		}
		p.LineTo(float32(pt.X), float32(pt.Y))
	}
	p.Close()
	return &p
}

func fillPolygon(dst *ebiten.Image, pts []eggmatch.Vec2, c eggmatch.Color, alpha float64) {
	if len(pts) < 3 {
		return
	}
	vs, is := polygonPath(pts).AppendVerticesAndIndicesForFilling(nil, nil)
	paintVertices(vs, c, alpha)
	dst.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
		FillRule:  ebiten.FillRuleNonZero,
	})
}

func strokePolygon(dst *ebiten.Image, pts []eggmatch.Vec2, c eggmatch.Color, alpha float64) {
	if len(pts) < 2 {
		return
	}
	vs, is := polygonPath(pts).AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{
		Width:    outlineWidth,
		LineJoin: vector.LineJoinRound,
	})
	paintVertices(vs, c, alpha)
	dst.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func paintVertices(vs []ebiten.Vertex, c eggmatch.Color, alpha float64) {
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(c.R)
		vs[i].ColorG = float32(c.G)
		vs[i].ColorB = float32(c.B)
		vs[i].ColorA = float32(c.A * alpha)
	}
}
