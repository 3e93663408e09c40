// pkg/entity/projectile.go
package entity

import (
	"image/color"

	"github.com/google/uuid"

	"github.com/opd-ai/go-spaceman/pkg/physics"
	"github.com/opd-ai/go-spaceman/pkg/render"
)

// ProjectileSize is the side of a projectile's square, before scaling.
const ProjectileSize = 3

var projectileColors = map[DamageKind]color.RGBA{
	Pierce:    {R: 255, G: 220, B: 120, A: 255},
	Explosive: {R: 255, G: 110, B: 60, A: 255},
	Energy:    {R: 120, G: 220, B: 255, A: 255},
	Null:      {R: 200, G: 200, B: 200, A: 255},
}

// Projectile is a shot in flight. It moves Speed units per tick along its
// heading and expires once it has traveled Range.
type Projectile struct {
	render.Base
	ID        string
	Owner     *Ship
	Hardpoint string
	Damage    Damage
	Origin    physics.Vector2D
	Heading   float64
	Speed     float64
	Range     float64
	Traveled  float64
	size      float64
}

// NewProjectile creates a projectile at origin.
func NewProjectile(owner *Ship, hardpoint string, origin physics.Vector2D, heading, speed, rng float64, dmg Damage, scale float64) *Projectile {
	p := &Projectile{
		ID:        uuid.NewString(),
		Owner:     owner,
		Hardpoint: hardpoint,
		Damage:    dmg,
		Origin:    origin,
		Heading:   heading,
		Speed:     speed,
		Range:     rng,
		size:      ProjectileSize * scale,
	}
	p.SetPosition(origin)
	if owner != nil {
		_ = p.SetDepth(owner.Depth())
	}
	return p
}

// Advance moves the projectile one tick and reports whether it expired.
func (p *Projectile) Advance() bool {
	p.SetPosition(p.Position().Add(physics.Heading(p.Heading).Scale(p.Speed)))
	p.Traveled += p.Speed
	return p.Expired()
}

// Expired reports whether the projectile has reached its range.
func (p *Projectile) Expired() bool {
	return p.Traveled >= p.Range
}

// Update advances the projectile. Expiry is handled by the owning hardpoint.
func (p *Projectile) Update(dt float64) { p.Advance() }

// Shapes draws the projectile as a small filled square.
func (p *Projectile) Shapes(fc *render.FrameContext) []render.Shape {
	r := physics.RectAround(p.Position(), p.size, p.size)
	return []render.Shape{render.FilledRect(r, projectileColors[p.Damage.Kind])}
}

// Collider returns the collision circle.
func (p *Projectile) Collider() physics.Circle {
	return physics.Circle{Center: p.Position(), Radius: p.size / 2}
}
