// pkg/render/shape.go
package render

import (
	"image/color"

	"github.com/opd-ai/go-spaceman/pkg/physics"
)

// ShapeKind selects how a Shape is drawn.
type ShapeKind uint8

const (
	ShapeFilledRect ShapeKind = iota
	ShapeOutlineRect
	ShapePoints
	ShapeLine
)

// Shape is a backend-neutral primitive. Rect is used by the rect kinds,
// Points by ShapePoints and ShapeLine (first two points), and Size is the
// point size or line width.
type Shape struct {
	Kind   ShapeKind
	Rect   physics.Rectangle
	Points []physics.Vector2D
	Size   float64
	Color  color.Color
}

// FilledRect builds a filled rectangle.
func FilledRect(r physics.Rectangle, c color.Color) Shape {
	return Shape{Kind: ShapeFilledRect, Rect: r, Color: c}
}

// OutlineRect builds a rectangle border of the given width.
func OutlineRect(r physics.Rectangle, width float64, c color.Color) Shape {
	return Shape{Kind: ShapeOutlineRect, Rect: r, Size: width, Color: c}
}

// Points builds a batch of square points.
func Points(pts []physics.Vector2D, size float64, c color.Color) Shape {
	return Shape{Kind: ShapePoints, Points: pts, Size: size, Color: c}
}

// Line builds a segment from a to b.
func Line(a, b physics.Vector2D, width float64, c color.Color) Shape {
	return Shape{Kind: ShapeLine, Points: []physics.Vector2D{a, b}, Size: width, Color: c}
}

// Bounds returns the rectangle covering the shape.
func (s Shape) Bounds() physics.Rectangle {
	switch s.Kind {
	case ShapeFilledRect, ShapeOutlineRect:
		return s.Rect
	}
	if len(s.Points) == 0 {
		return physics.Rectangle{}
	}
	r := physics.RectAround(s.Points[0], s.Size, s.Size)
	for _, p := range s.Points[1:] {
		r = r.United(physics.RectAround(p, s.Size, s.Size))
	}
	return r
}
