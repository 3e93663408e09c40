// pkg/physics/collision.go
package physics

// Circle represents a circular collision shape
type Circle struct {
	Center Vector2D
	Radius float64
}

// Collides checks if two circles are colliding
func (c Circle) Collides(other Circle) bool {
	return c.Center.Distance(other.Center) < c.Radius+other.Radius
}

// Bounds returns the square enclosing the circle
func (c Circle) Bounds() Rectangle {
	return RectAround(c.Center, c.Radius*2, c.Radius*2)
}

// CollisionResult contains information about a collision
type CollisionResult struct {
	Collided     bool
	Normal       Vector2D
	Penetration  float64
	ContactPoint Vector2D
}

// CheckCollision performs detailed collision detection between two circles
func CheckCollision(a, b Circle) CollisionResult {
	// Vector from A to B
	normal := b.Center.Sub(a.Center)
	distance := normal.Length()

	if distance > a.Radius+b.Radius {
		return CollisionResult{Collided: false}
	}

	penetration := a.Radius + b.Radius - distance

	normal = normal.Normalize()
	contactPoint := a.Center.Add(normal.Scale(a.Radius))

	return CollisionResult{
		Collided:     true,
		Normal:       normal,
		Penetration:  penetration,
		ContactPoint: contactPoint,
	}
}

// MinQuadSize bounds subdivision. A leaf whose side is at most MinQuadSize
// keeps every point it receives.
const MinQuadSize = 1.0

// QuadTree partitions points in a rectangular area so that range queries
// only visit nearby quadrants.
type QuadTree[T any] struct {
	Boundary  Rectangle
	Capacity  int
	Points    []Vector2D
	Objects   []T
	Divided   bool
	NorthWest *QuadTree[T]
	NorthEast *QuadTree[T]
	SouthWest *QuadTree[T]
	SouthEast *QuadTree[T]
}

// NewQuadTree creates a new quad tree with the given boundary and capacity
func NewQuadTree[T any](boundary Rectangle, capacity int) *QuadTree[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &QuadTree[T]{
		Boundary: boundary,
		Capacity: capacity,
		Points:   make([]Vector2D, 0, capacity),
		Objects:  make([]T, 0, capacity),
	}
}

// Insert stores object at point. Points outside the boundary are rejected.
func (qt *QuadTree[T]) Insert(point Vector2D, object T) bool {
	if !qt.Boundary.Contains(point) {
		return false
	}

	if !qt.Divided && (len(qt.Points) < qt.Capacity || qt.Boundary.W <= MinQuadSize || qt.Boundary.H <= MinQuadSize) {
		qt.Points = append(qt.Points, point)
		qt.Objects = append(qt.Objects, object)
		return true
	}

	if !qt.Divided {
		qt.Subdivide()
	}

	return qt.NorthWest.Insert(point, object) ||
		qt.NorthEast.Insert(point, object) ||
		qt.SouthWest.Insert(point, object) ||
		qt.SouthEast.Insert(point, object)
}

// Subdivide splits the quadtree into four quadrants
func (qt *QuadTree[T]) Subdivide() {
	b := qt.Boundary
	w := b.W / 2
	h := b.H / 2

	qt.SouthWest = NewQuadTree[T](Rect(b.X, b.Y, w, h), qt.Capacity)
	qt.SouthEast = NewQuadTree[T](Rect(b.X+w, b.Y, w, h), qt.Capacity)
	qt.NorthWest = NewQuadTree[T](Rect(b.X, b.Y+h, w, h), qt.Capacity)
	qt.NorthEast = NewQuadTree[T](Rect(b.X+w, b.Y+h, w, h), qt.Capacity)
	qt.Divided = true
}

// Query returns all objects whose points fall inside area
func (qt *QuadTree[T]) Query(area Rectangle) []T {
	var found []T
	return qt.query(area, found)
}

func (qt *QuadTree[T]) query(area Rectangle, found []T) []T {
	if !qt.Boundary.Intersects(area) {
		return found
	}

	for i, point := range qt.Points {
		if area.Contains(point) {
			found = append(found, qt.Objects[i])
		}
	}

	if !qt.Divided {
		return found
	}

	found = qt.NorthWest.query(area, found)
	found = qt.NorthEast.query(area, found)
	found = qt.SouthWest.query(area, found)
	return qt.SouthEast.query(area, found)
}
