// pkg/physics/rect.go
package physics

import "math"

// Rectangle is an axis-aligned box anchored at its lower-left corner (X, Y)
type Rectangle struct {
	X float64
	Y float64
	W float64
	H float64
}

// Rect is shorthand for building a Rectangle
func Rect(x, y, w, h float64) Rectangle {
	return Rectangle{X: x, Y: y, W: w, H: h}
}

// RectAround builds a rectangle of the given size centered on c
func RectAround(c Vector2D, w, h float64) Rectangle {
	return Rectangle{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

// Right returns X+W
func (r Rectangle) Right() float64 { return r.X + r.W }

// Bottom returns Y+H
func (r Rectangle) Bottom() float64 { return r.Y + r.H }

// Center returns the midpoint of the rectangle
func (r Rectangle) Center() Vector2D {
	return Vector2D{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Origin returns the anchor corner
func (r Rectangle) Origin() Vector2D {
	return Vector2D{X: r.X, Y: r.Y}
}

// Empty reports whether the rectangle has no area
func (r Rectangle) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// United returns the smallest rectangle containing both r and other
func (r Rectangle) United(other Rectangle) Rectangle {
	x := math.Min(r.X, other.X)
	y := math.Min(r.Y, other.Y)
	right := math.Max(r.Right(), other.Right())
	bottom := math.Max(r.Bottom(), other.Bottom())
	return Rectangle{X: x, Y: y, W: right - x, H: bottom - y}
}

// Moved returns r translated by offset
func (r Rectangle) Moved(offset Vector2D) Rectangle {
	return Rectangle{X: r.X + offset.X, Y: r.Y + offset.Y, W: r.W, H: r.H}
}

// Contains reports whether point lies inside r. The right and bottom edges
// are exclusive.
func (r Rectangle) Contains(point Vector2D) bool {
	return point.X >= r.X &&
		point.X < r.Right() &&
		point.Y >= r.Y &&
		point.Y < r.Bottom()
}

// Intersects reports whether the two rectangles overlap or touch
func (r Rectangle) Intersects(other Rectangle) bool {
	return !(other.X > r.Right() ||
		other.Right() < r.X ||
		other.Y > r.Bottom() ||
		other.Bottom() < r.Y)
}
