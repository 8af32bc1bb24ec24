package eggmatch

import "math"

const (
	glyphInset       = 0.08 // fraction of the box left empty around a glyph
	glyphArcSegments = 48
	starPoints       = 5
	starInnerRatio   = 0.45
)

// Outline returns the closed polygon for shape s drawn in a w×h box, in the
// box's local coordinates. Curved shapes are approximated with line
// segments. Tags the renderer does not know are drawn as rectangles.
func Outline(s Shape, w, h float64) []Vec2 {
	ix, iy := w*glyphInset, h*glyphInset
	x0, y0, x1, y1 := ix, iy, w-ix, h-iy
	cx, cy := w/2, h/2
	rx, ry := (x1-x0)/2, (y1-y0)/2

	switch s {
	case ShapeCircle:
		pts := make([]Vec2, glyphArcSegments)
		for i := range pts {
			a := 2 * math.Pi * float64(i) / glyphArcSegments
			pts[i] = Vec2{cx + rx*math.Cos(a), cy + ry*math.Sin(a)}
		}
		return pts
	case ShapeTriangle:
		return []Vec2{{cx, y0}, {x1, y1}, {x0, y1}}
	case ShapeDiamond:
		return []Vec2{{cx, y0}, {x1, cy}, {cx, y1}, {x0, cy}}
	case ShapeStar:
		pts := make([]Vec2, starPoints*2)
		for i := range pts {
			a := -math.Pi/2 + math.Pi*float64(i)/starPoints
			r := 1.0
			if i%2 == 1 {
				r = starInnerRatio
			}
			pts[i] = Vec2{cx + rx*r*math.Cos(a), cy + ry*r*math.Sin(a)}
		}
		return pts
	case ShapeHeart:
		// Classic parametric heart, x in [-16, 16] and y in [-17, 12].
		pts := make([]Vec2, glyphArcSegments)
		for i := range pts {
			t := 2 * math.Pi * float64(i) / glyphArcSegments
			hx := 16 * math.Pow(math.Sin(t), 3)
			hy := 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
			pts[i] = Vec2{cx + rx*hx/16, y0 + (y1-y0)*(12-hy)/29}
		}
		return pts
	default:
		return []Vec2{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
	}
}

// GlyphHitShape returns the hit area matching the glyph Outline draws for s
// in a w×h box. Convex glyphs use their outline; the star and heart use the
// circle through their outer points.
func GlyphHitShape(s Shape, w, h float64) HitShape {
	ix, iy := w*glyphInset, h*glyphInset
	switch s {
	case ShapeCircle, ShapeStar, ShapeHeart:
		return HitCircle{CenterX: w / 2, CenterY: h / 2, Radius: math.Min(w/2-ix, h/2-iy)}
	case ShapeTriangle, ShapeDiamond:
		return HitPolygon{Points: Outline(s, w, h)}
	default:
		return HitRect{X: ix, Y: iy, Width: w - 2*ix, Height: h - 2*iy}
	}
}
