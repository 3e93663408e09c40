// pkg/physics/vector.go
package physics

import "math"

// Vector2D represents a 2D vector with x and y components
type Vector2D struct {
	X float64
	Y float64
}

// Vec is shorthand for building a Vector2D
func Vec(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

// Add returns the sum of two vectors
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X + other.X,
		Y: v.Y + other.Y,
	}
}

// Sub returns the difference between two vectors
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X - other.X,
		Y: v.Y - other.Y,
	}
}

// Scale multiplies the vector by a scalar value
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{
		X: v.X * factor,
		Y: v.Y * factor,
	}
}

// Mul multiplies the vectors component-wise
func (v Vector2D) Mul(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X * other.X,
		Y: v.Y * other.Y,
	}
}

// Drag moves each component toward zero by the matching magnitude of d,
// stopping at zero rather than crossing it.
func (v Vector2D) Drag(d Vector2D) Vector2D {
	return Vector2D{
		X: dragAxis(v.X, math.Abs(d.X)),
		Y: dragAxis(v.Y, math.Abs(d.Y)),
	}
}

func dragAxis(v, d float64) float64 {
	switch {
	case v > 0:
		return math.Max(v-d, 0)
	case v < 0:
		return math.Min(v+d, 0)
	}
	return 0
}

// Clamp bounds both components to [lo, hi]
func (v Vector2D) Clamp(lo, hi float64) Vector2D {
	return Vector2D{
		X: clamp(v.X, lo, hi),
		Y: clamp(v.Y, lo, hi),
	}
}

// ClampVec bounds each component to the matching components of lo and hi
func (v Vector2D) ClampVec(lo, hi Vector2D) Vector2D {
	return Vector2D{
		X: clamp(v.X, lo.X, hi.X),
		Y: clamp(v.Y, lo.Y, hi.Y),
	}
}

func clamp(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Min(math.Max(v, lo), hi)
}

// Length returns the magnitude of the vector
func (v Vector2D) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns a unit vector in the same direction
func (v Vector2D) Normalize() Vector2D {
	length := v.Length()
	if length == 0 {
		return Vector2D{}
	}
	return Vector2D{
		X: v.X / length,
		Y: v.Y / length,
	}
}

// Distance returns the distance between two vectors
func (v Vector2D) Distance(other Vector2D) float64 {
	return v.Sub(other).Length()
}

// Angle returns the angle of the vector in radians
func (v Vector2D) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// FromAngle creates a vector from an angle and magnitude
func FromAngle(angle float64, magnitude float64) Vector2D {
	return Vector2D{
		X: magnitude * math.Cos(angle),
		Y: magnitude * math.Sin(angle),
	}
}

// Heading returns the unit "forward" vector for a heading in degrees.
// A heading of zero points along +Y.
func Heading(degrees float64) Vector2D {
	r := Radians(degrees)
	return Vector2D{X: -math.Sin(r), Y: math.Cos(r)}
}

// Dot returns the dot product of two vectors
func (v Vector2D) Dot(other Vector2D) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Rotate rotates the vector by angle (in radians)
func (v Vector2D) Rotate(angle float64) Vector2D {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Vector2D{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// RotateDegrees rotates the vector by angle (in degrees)
func (v Vector2D) RotateDegrees(angle float64) Vector2D {
	return v.Rotate(Radians(angle))
}

// LengthSquared returns magnitude squared (optimization for comparisons)
func (v Vector2D) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Radians converts degrees to radians
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
