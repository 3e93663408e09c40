// pkg/entity/hardpoint.go
package entity

import (
	"math"
	"slices"

	"github.com/opd-ai/go-spaceman/pkg/event"
	"github.com/opd-ai/go-spaceman/pkg/physics"
	"github.com/opd-ai/go-spaceman/pkg/prototype"
)

// FireState is the firing mode of a hardpoint.
type FireState uint8

const (
	Idle FireState = iota
	FiringOnce
	Automatic
)

func (s FireState) String() string {
	switch s {
	case FiringOnce:
		return "firing-once"
	case Automatic:
		return "automatic"
	default:
		return "idle"
	}
}

// Hardpoint is an installed weapon or utility. It owns the projectiles it
// has fired until they expire or are evicted.
type Hardpoint struct {
	proto    *prototype.Hardpoint
	ship     *Ship
	env      *Env
	position physics.Vector2D
	angle    float64

	state    FireState
	on       bool
	ticks    int
	children []*Projectile

	// Fired is emitted with every projectile discharged.
	Fired *event.Signal[*Projectile]
}

func newHardpoint(env *Env, proto *prototype.Hardpoint, ship *Ship) *Hardpoint {
	return &Hardpoint{
		proto: proto,
		ship:  ship,
		env:   env,
		Fired: event.NewSignal[*Projectile](nil),
	}
}

// Prototype returns the hardpoint template.
func (h *Hardpoint) Prototype() *prototype.Hardpoint { return h.proto }

// State returns the current firing mode.
func (h *Hardpoint) State() FireState { return h.state }

// On reports whether automatic fire is engaged.
func (h *Hardpoint) On() bool { return h.on }

// Position returns the world position.
func (h *Hardpoint) Position() physics.Vector2D { return h.position }

// Angle returns the firing heading in degrees.
func (h *Hardpoint) Angle() float64 { return h.angle }

// Place moves the hardpoint to a world position and firing heading.
func (h *Hardpoint) Place(pos physics.Vector2D, angle float64) {
	h.position = pos
	h.angle = angle
}

// Children returns the live projectiles. Callers must not modify it.
func (h *Hardpoint) Children() []*Projectile { return h.children }

// Fire discharges once, or turns automatic fire on for automatic
// hardpoints.
func (h *Hardpoint) Fire() {
	if h.proto.Automatic {
		h.on = true
		h.ticks = 0
		h.state = Automatic
		return
	}
	h.state = FiringOnce
	h.discharge()
	h.state = Idle
}

// Release turns automatic fire off.
func (h *Hardpoint) Release() {
	h.on = false
	if h.state == Automatic {
		h.state = Idle
	}
}

// interval is the number of ticks between automatic discharges.
func (h *Hardpoint) interval() int {
	return max(1, int(math.Round(h.proto.Rate)))
}

// Update advances every live projectile, drops the expired ones, then
// discharges if automatic fire is due.
func (h *Hardpoint) Update(dt float64) {
	var expired []*Projectile
	for _, p := range h.children {
		if p.Advance() {
			expired = append(expired, p)
		}
	}
	for _, p := range expired {
		h.env.remove(p)
		h.children = slices.DeleteFunc(h.children, func(c *Projectile) bool { return c == p })
		h.env.publish(event.NewProjectileEvent(event.ProjectileExpired, h, h.ownerID(), h.proto.Name, p.Position()))
	}

	if h.on {
		if h.ticks%h.interval() == 0 {
			h.discharge()
		}
		h.ticks++
	}
}

// Evict removes a live projectile, typically after it hit something. It
// reports false when p is not tracked by h.
func (h *Hardpoint) Evict(p *Projectile) bool {
	i := slices.Index(h.children, p)
	if i < 0 {
		return false
	}
	h.children = slices.Delete(h.children, i, i+1)
	h.env.remove(p)
	return true
}

// Clear evicts every live projectile.
func (h *Hardpoint) Clear() {
	for _, p := range h.children {
		h.env.remove(p)
	}
	h.children = nil
}

func (h *Hardpoint) discharge() *Projectile {
	dmg := Damage{Kind: KindFor(h.proto.Type), Amount: h.proto.Damage}
	p := NewProjectile(h.ship, h.proto.Name, h.position, h.angle, h.proto.Speed, h.proto.Range, dmg, h.env.scale())
	h.children = append(h.children, p)
	h.env.add(p)
	h.Fired.Emit(p)
	h.env.publish(event.NewProjectileEvent(event.ProjectileFired, h, h.ownerID(), h.proto.Name, p.Position()))
	return p
}

func (h *Hardpoint) ownerID() string {
	if h.ship == nil {
		return ""
	}
	return h.ship.ID
}
