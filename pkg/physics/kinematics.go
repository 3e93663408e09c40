// pkg/physics/kinematics.go
package physics

// Kinematics is the per-tick motion state of a thrust-driven body. Velocity
// is expressed in the body frame: Y is forward and X is lateral.
type Kinematics struct {
	Velocity   Vector2D
	Drag       Vector2D
	Thrust     Vector2D
	Angle      float64 // degrees
	AngleDelta float64 // degrees per tick
}

// Step advances the state by one tick and returns the world-space
// displacement for that tick. maxSpeed bounds each velocity component.
func (k *Kinematics) Step(maxSpeed float64) Vector2D {
	k.Velocity = k.Velocity.Drag(k.Drag)
	k.Velocity = k.Velocity.Add(k.Thrust)
	k.Velocity = k.Velocity.Clamp(-maxSpeed, maxSpeed)

	k.Angle += k.AngleDelta
	return k.WorldVelocity()
}

// WorldVelocity returns the body-frame velocity rotated by the heading.
func (k *Kinematics) WorldVelocity() Vector2D {
	forward := Heading(k.Angle).Scale(k.Velocity.Y)
	lateral := Heading(k.Angle + 90).Scale(k.Velocity.X)
	return forward.Add(lateral)
}
