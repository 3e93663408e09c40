// pkg/game/controls.go
package game

import (
	"fmt"

	"github.com/opd-ai/go-spaceman/pkg/entity"
	"github.com/opd-ai/go-spaceman/pkg/physics"
	"github.com/opd-ai/go-spaceman/pkg/ui"
)

// Key is a backend-neutral key code.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyF
	KeyI
	KeySpace
	KeyEscape
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
)

// Fire commands bound to keys.
const (
	CommandPrimary   = "fire_primary"
	CommandSecondary = "fire_secondary"
)

// Control steps applied per held key.
const (
	ThrustStep = 0.15
	StrafeStep = 0.1
	TurnStep   = 3.0
)

// DebugDamage is the hull damage KeyI deals in dev mode.
const DebugDamage = 100

// PressTarget receives mouse presses, typically a widget tree root.
type PressTarget interface {
	OnMousePress(ev ui.MouseEvent) bool
}

// Controls turns input events into ship commands for the player.
type Controls struct {
	player  *Player
	targets []PressTarget
	pressed map[Key]bool
	mouse   physics.Vector2D

	// Dev enables debugging keys.
	Dev bool
}

// NewControls creates controls for player.
func NewControls(player *Player) *Controls {
	return &Controls{player: player, pressed: make(map[Key]bool)}
}

// AddTarget registers t for mouse presses. Targets are tried in order.
func (c *Controls) AddTarget(t PressTarget) {
	c.targets = append(c.targets, t)
}

// Mouse returns the last pointer position.
func (c *Controls) Mouse() physics.Vector2D { return c.mouse }

// MouseMove records the pointer position.
func (c *Controls) MouseMove(x, y float64) {
	c.mouse = physics.Vec(x, y)
}

// MousePress hands ev to each target until one consumes it.
func (c *Controls) MousePress(ev ui.MouseEvent) bool {
	c.mouse = ev.Point()
	for _, t := range c.targets {
		if t.OnMousePress(ev) {
			return true
		}
	}
	return false
}

// Held reports whether k is down.
func (c *Controls) Held(k Key) bool { return c.pressed[k] }

func (c *Controls) ship() *entity.Ship {
	s := c.player.Ship()
	if s == nil || s.Destroyed() {
		return nil
	}
	return s
}

// KeyPress applies k to the player's ship. It reports whether the key is
// bound. Repeats of a held key are consumed without effect.
func (c *Controls) KeyPress(k Key) bool {
	s := c.ship()
	if s == nil {
		return false
	}
	if c.pressed[k] {
		return true
	}

	switch {
	case k == KeyW:
		s.SetThrust(s.Thrust().Add(physics.Vec(0, ThrustStep)))
	case k == KeyS:
		s.SetThrust(s.Thrust().Add(physics.Vec(0, -ThrustStep)))
	case k == KeyQ:
		s.SetThrust(s.Thrust().Add(physics.Vec(StrafeStep, 0)))
	case k == KeyE:
		s.SetThrust(s.Thrust().Add(physics.Vec(-StrafeStep, 0)))
	case k == KeyA:
		s.SetAngleDelta(s.AngleDelta() + TurnStep)
	case k == KeyD:
		s.SetAngleDelta(s.AngleDelta() - TurnStep)
	case k == KeySpace:
		s.Fire(CommandPrimary)
	case k == KeyF:
		s.Fire(CommandSecondary)
	case k >= Key1 && k <= Key9:
		s.Fire(utilCommand(k))
	case k == KeyI && c.Dev:
		s.TakeDamage(entity.Damage{Kind: entity.Pierce, Amount: DebugDamage})
	default:
		return false
	}

	c.pressed[k] = true
	c.syncEngines(s)
	return true
}

// KeyRelease undoes what KeyPress did for k. Releasing a key that was
// never pressed does nothing. Once no key is held the ship stops turning
// and thrusting.
func (c *Controls) KeyRelease(k Key) bool {
	if !c.pressed[k] {
		return false
	}
	delete(c.pressed, k)
	s := c.ship()
	if s == nil {
		return true
	}

	switch {
	case k == KeyW:
		s.SetThrust(s.Thrust().Sub(physics.Vec(0, ThrustStep)))
	case k == KeyS:
		s.SetThrust(s.Thrust().Sub(physics.Vec(0, -ThrustStep)))
	case k == KeyQ:
		s.SetThrust(s.Thrust().Sub(physics.Vec(StrafeStep, 0)))
	case k == KeyE:
		s.SetThrust(s.Thrust().Sub(physics.Vec(-StrafeStep, 0)))
	case k == KeyA:
		s.SetAngleDelta(s.AngleDelta() - TurnStep)
	case k == KeyD:
		s.SetAngleDelta(s.AngleDelta() + TurnStep)
	case k == KeySpace:
		s.Release(CommandPrimary)
	case k == KeyF:
		s.Release(CommandSecondary)
	case k >= Key1 && k <= Key9:
		s.Release(utilCommand(k))
	}

	if len(c.pressed) == 0 {
		s.SetThrust(physics.Vector2D{})
		s.SetAngleDelta(0)
	}
	c.syncEngines(s)
	return true
}

// syncEngines shows the exhaust only while the ship is under thrust.
func (c *Controls) syncEngines(s *entity.Ship) {
	if s.Thrust() == (physics.Vector2D{}) {
		s.Disengage()
	} else {
		s.Engage()
	}
}

func utilCommand(k Key) string {
	return fmt.Sprintf("util%d", int(k-Key1)+1)
}
