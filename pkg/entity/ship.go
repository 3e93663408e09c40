// pkg/entity/ship.go
package entity

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/opd-ai/go-spaceman/pkg/event"
	"github.com/opd-ai/go-spaceman/pkg/physics"
	"github.com/opd-ai/go-spaceman/pkg/prototype"
	"github.com/opd-ai/go-spaceman/pkg/render"
)

// DefaultDrag is the per-tick velocity decay of every ship.
var DefaultDrag = physics.Vec(0.05, 0.05)

// Ship is a ship in play, built from a prototype. It owns its mounts; the
// installed components hold a back-reference to it.
type Ship struct {
	render.Base
	ID     string
	proto  *prototype.Ship
	env    *Env
	sprite render.LazySprite
	motion physics.Kinematics

	hardpoints []*HardpointMount
	engines    []*EngineMount

	Hull   float64
	Shield float64
	Fuel   float64

	destroyed bool

	// TookDamage applies damage to the shield then the hull. Listeners see
	// the damage before (pre) or after (post) it is applied.
	TookDamage *event.Signal[Damage]
}

// NewShip builds a ship from proto at pos, installing the default component
// of every mount.
func NewShip(env *Env, proto *prototype.Ship, pos physics.Vector2D) (*Ship, error) {
	s := &Ship{
		ID:     uuid.NewString(),
		proto:  proto,
		env:    env,
		Hull:   proto.Hull,
		Shield: proto.Shield,
		Fuel:   proto.Fuel,
		motion: physics.Kinematics{Drag: DefaultDrag},
	}
	s.TookDamage = event.NewSignal(s.absorb)
	s.SetPosition(pos)
	s.sprite = render.NewLazySprite(func() *render.Sprite {
		if env.Sprites == nil {
			return nil
		}
		sp := env.Sprites.MustSprite(func() (*render.Sprite, error) {
			return env.Sprites.Sprite(proto.SpriteDir)
		}, proto.Name)
		sp.Center = s.Position()
		sp.Angle = s.motion.Angle
		return sp
	})

	for _, desc := range proto.Hardpoints {
		hp, err := env.Registry.Hardpoint(desc.Default)
		if err != nil {
			return nil, fmt.Errorf("ship %s: %w", proto.Name, err)
		}
		s.hardpoints = append(s.hardpoints, &HardpointMount{desc: desc, hardpoint: newHardpoint(env, hp, s)})
	}
	for _, desc := range proto.Engines {
		eng, err := env.Registry.Engine(desc.Default)
		if err != nil {
			return nil, fmt.Errorf("ship %s: %w", proto.Name, err)
		}
		s.engines = append(s.engines, &EngineMount{desc: desc, engine: newEngine(env, eng, s)})
	}
	return s, nil
}

// Spawn builds the named ship from the registry at pos.
func Spawn(env *Env, name string, pos physics.Vector2D) (*Ship, error) {
	proto, err := env.Registry.Ship(name)
	if err != nil {
		return nil, err
	}
	return NewShip(env, proto, pos)
}

// Prototype returns the ship template.
func (s *Ship) Prototype() *prototype.Ship { return s.proto }

// Name returns the display name.
func (s *Ship) Name() string { return s.proto.DisplayName }

// Sprite returns the hull sprite.
func (s *Ship) Sprite() *render.Sprite { return s.sprite.Get() }

func (s *Ship) spriteSize() (w, h float64) {
	if sp := s.sprite.Get(); sp != nil {
		return sp.Size()
	}
	return 0, 0
}

// Hardpoints returns the weapon mounts in declaration order.
func (s *Ship) Hardpoints() []*HardpointMount { return s.hardpoints }

// Engines returns the engine mounts in declaration order.
func (s *Ship) Engines() []*EngineMount { return s.engines }

// MaxSpeed is the total engine power divided by the class load factor, or
// zero without engines.
func (s *Ship) MaxSpeed() float64 {
	if len(s.engines) == 0 {
		return 0
	}
	var power float64
	for _, m := range s.engines {
		power += m.engine.Power()
	}
	return power / s.proto.Class.LoadFactor()
}

// Velocity returns the body-frame velocity: Y forward, X lateral.
func (s *Ship) Velocity() physics.Vector2D { return s.motion.Velocity }

// SetVelocity replaces the body-frame velocity.
func (s *Ship) SetVelocity(v physics.Vector2D) { s.motion.Velocity = v }

// WorldVelocity returns the per-tick displacement in world space.
func (s *Ship) WorldVelocity() physics.Vector2D { return s.motion.WorldVelocity() }

// Drag returns the per-tick velocity decay.
func (s *Ship) Drag() physics.Vector2D { return s.motion.Drag }

// SetDrag replaces the per-tick velocity decay.
func (s *Ship) SetDrag(d physics.Vector2D) { s.motion.Drag = d }

// Thrust returns the thrust added each tick.
func (s *Ship) Thrust() physics.Vector2D { return s.motion.Thrust }

// SetThrust sets the thrust added each tick.
func (s *Ship) SetThrust(t physics.Vector2D) { s.motion.Thrust = t }

// Angle returns the heading in degrees. Zero faces +Y.
func (s *Ship) Angle() float64 { return s.motion.Angle }

// SetAngle sets the heading in degrees.
func (s *Ship) SetAngle(a float64) { s.motion.Angle = a }

// AngleDelta returns the turn rate in degrees per tick.
func (s *Ship) AngleDelta() float64 { return s.motion.AngleDelta }

// SetAngleDelta sets the turn rate in degrees per tick.
func (s *Ship) SetAngleDelta(d float64) { s.motion.AngleDelta = d }

// Update advances the ship one tick: motion first, then every hardpoint and
// engine in mount order, then the hull animation.
func (s *Ship) Update(dt float64) {
	step := s.motion.Step(s.MaxSpeed())
	s.SetPosition(s.Position().Add(step))

	sp := s.sprite.Get()
	if sp != nil {
		sp.Center = s.Position()
		sp.Angle = s.motion.Angle
	}

	for _, m := range s.hardpoints {
		m.update(s, dt)
	}
	for _, m := range s.engines {
		m.update(s, dt)
	}
	if sp != nil {
		sp.Update()
	}
}

// Engage turns every engine on.
func (s *Ship) Engage() {
	for _, m := range s.engines {
		m.engine.Engage()
	}
}

// Disengage turns every engine off.
func (s *Ship) Disengage() {
	for _, m := range s.engines {
		m.engine.Disengage()
	}
}

// Fire triggers every hardpoint bound to command and returns how many
// there were.
func (s *Ship) Fire(command string) int {
	n := 0
	for _, m := range s.hardpoints {
		if m.desc.Command == command {
			m.hardpoint.Fire()
			n++
		}
	}
	return n
}

// Release stops every hardpoint bound to command.
func (s *Ship) Release(command string) int {
	n := 0
	for _, m := range s.hardpoints {
		if m.desc.Command == command {
			m.hardpoint.Release()
			n++
		}
	}
	return n
}

// Commands returns the distinct fire commands of the ship's hardpoints.
func (s *Ship) Commands() []string {
	var cmds []string
	seen := make(map[string]bool)
	for _, m := range s.hardpoints {
		if !seen[m.desc.Command] {
			seen[m.desc.Command] = true
			cmds = append(cmds, m.desc.Command)
		}
	}
	return cmds
}

// TakeDamage emits TookDamage with d.
func (s *Ship) TakeDamage(d Damage) {
	s.TookDamage.Emit(d)
}

func (s *Ship) absorb(d Damage) {
	amount := d.Amount
	if amount <= 0 {
		return
	}
	if s.Shield > 0 {
		taken := min(s.Shield, amount)
		s.Shield -= taken
		amount -= taken
	}
	s.Hull -= amount
	if s.Hull <= 0 {
		s.Hull = 0
		s.destroyed = true
	}
}

// Destroyed reports whether the hull has been depleted.
func (s *Ship) Destroyed() bool { return s.destroyed }

// Collider returns the collision circle around the hull.
func (s *Ship) Collider() physics.Circle {
	w, h := s.spriteSize()
	return physics.Circle{Center: s.Position(), Radius: min(w, h) / 2}
}

// AddToScene adds the ship to the scene.
func (s *Ship) AddToScene() {
	s.env.add(s)
}

// RemoveFromScene takes the ship, its exhaust and its live projectiles out
// of the scene.
func (s *Ship) RemoveFromScene() {
	s.Disengage()
	for _, m := range s.hardpoints {
		m.hardpoint.Release()
		m.hardpoint.Clear()
	}
	s.env.remove(s)
}
