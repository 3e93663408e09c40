// pkg/entity/engine.go
package entity

import (
	"github.com/opd-ai/go-spaceman/pkg/physics"
	"github.com/opd-ai/go-spaceman/pkg/prototype"
	"github.com/opd-ai/go-spaceman/pkg/render"
)

// Engine is an installed engine. Only its exhaust is drawn, and only while
// it is engaged.
type Engine struct {
	render.Base
	proto  *prototype.Engine
	ship   *Ship
	env    *Env
	sprite render.LazySprite
	angle  float64
}

func newEngine(env *Env, proto *prototype.Engine, ship *Ship) *Engine {
	e := &Engine{proto: proto, ship: ship, env: env}
	e.sprite = render.NewLazySprite(func() *render.Sprite {
		if env.Sprites == nil {
			return nil
		}
		return env.Sprites.MustSprite(func() (*render.Sprite, error) {
			return env.Sprites.Basic(prototype.EnginesDir, proto.Sprite)
		}, proto.Name)
	})
	return e
}

// Prototype returns the engine template.
func (e *Engine) Prototype() *prototype.Engine { return e.proto }

// Power returns the engine's power rating.
func (e *Engine) Power() float64 { return e.proto.Power }

// Sprite returns the exhaust sprite.
func (e *Engine) Sprite() *render.Sprite { return e.sprite.Get() }

// Engaged reports whether the exhaust is in the scene.
func (e *Engine) Engaged() bool { return e.InScene() }

// Engage adds the exhaust to the scene one depth below the ship.
func (e *Engine) Engage() {
	if e.InScene() {
		return
	}
	_ = e.SetDepth(e.ship.Depth() - 1)
	e.env.add(e)
}

// Disengage removes the exhaust from the scene.
func (e *Engine) Disengage() {
	e.env.remove(e)
}

// Place moves the engine to a world position and heading.
func (e *Engine) Place(pos physics.Vector2D, angle float64) {
	e.SetPosition(pos)
	e.angle = angle
	if s := e.sprite.Get(); s != nil {
		s.Center = pos
		s.Angle = angle
	}
}

// Angle returns the heading in degrees.
func (e *Engine) Angle() float64 { return e.angle }

// Update advances the exhaust animation while engaged.
func (e *Engine) Update(dt float64) {
	if e.Engaged() {
		if s := e.sprite.Get(); s != nil {
			s.Update()
		}
	}
}
