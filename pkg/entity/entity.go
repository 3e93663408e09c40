// pkg/entity/entity.go
package entity

import (
	"github.com/opd-ai/go-spaceman/pkg/event"
	"github.com/opd-ai/go-spaceman/pkg/physics"
	"github.com/opd-ai/go-spaceman/pkg/prototype"
	"github.com/opd-ai/go-spaceman/pkg/render"
)

// Entity is anything the world advances once per tick.
type Entity interface {
	Update(dt float64)
}

// Collidable exposes a collision shape.
type Collidable interface {
	Collider() physics.Circle
}

// Scene is the part of the render engine entities add themselves to.
type Scene interface {
	AddObject(d render.Drawable)
	RemoveObject(d render.Drawable) bool
}

// SpriteLoader builds sprites from the data directory.
type SpriteLoader interface {
	Sprite(dir string) (*render.Sprite, error)
	Basic(dir, name string) (*render.Sprite, error)
	MustSprite(load func() (*render.Sprite, error), name string) *render.Sprite
}

// Env is the session context entities are created with. Bus is optional.
type Env struct {
	Scene    Scene
	Registry *prototype.Registry
	Sprites  SpriteLoader
	Scale    float64
	Bus      *event.Bus
}

func (e *Env) scale() float64 {
	if e.Scale <= 0 {
		return 1
	}
	return e.Scale
}

func (e *Env) publish(ev event.Event) {
	if e.Bus != nil {
		e.Bus.Publish(ev)
	}
}

func (e *Env) add(d render.Drawable) {
	if e.Scene != nil && !d.InScene() {
		e.Scene.AddObject(d)
	}
}

func (e *Env) remove(d render.Drawable) bool {
	if e.Scene == nil || !d.InScene() {
		return false
	}
	return e.Scene.RemoveObject(d)
}
