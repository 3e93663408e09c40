// pkg/game/world.go
package game

import (
	"context"
	"fmt"
	"slices"

	"github.com/opd-ai/go-spaceman/pkg/entity"
	"github.com/opd-ai/go-spaceman/pkg/event"
	"github.com/opd-ai/go-spaceman/pkg/logging"
	"github.com/opd-ai/go-spaceman/pkg/physics"
)

// quadCapacity is the number of ships per quad before subdivision.
const quadCapacity = 8

// World owns the ships in play. Each tick it advances them, resolves
// projectile hits and clears out destroyed hulls.
type World struct {
	env    *entity.Env
	ships  []*entity.Ship
	logger *logging.Logger

	// Tick counts completed updates.
	Tick uint64
}

// NewWorld creates an empty world whose ships are built from env.
func NewWorld(env *entity.Env, logger *logging.Logger) *World {
	if logger == nil {
		logger = logging.Discard()
	}
	return &World{env: env, logger: logger.Component("world")}
}

// Ships returns the ships in play.
func (w *World) Ships() []*entity.Ship { return w.ships }

// Spawn builds the named ship at pos and puts it in play.
func (w *World) Spawn(name string, pos physics.Vector2D) (*entity.Ship, error) {
	s, err := entity.Spawn(w.env, name, pos)
	if err != nil {
		return nil, fmt.Errorf("game: spawn %s: %w", name, err)
	}
	w.Add(s)
	return s, nil
}

// Add puts s in play and in the scene.
func (w *World) Add(s *entity.Ship) {
	w.ships = append(w.ships, s)
	s.AddToScene()
	w.publish(event.NewShipEvent(event.ShipSpawned, w, s.ID, s.Name(), s.Position()))
	w.logger.Debug(context.Background(), "ship spawned", "ship", s.Name(), "id", s.ID)
}

// Remove takes s out of play and out of the scene. It reports false when s
// was not in play.
func (w *World) Remove(s *entity.Ship) bool {
	i := slices.Index(w.ships, s)
	if i < 0 {
		return false
	}
	w.ships = slices.Delete(w.ships, i, i+1)
	s.RemoveFromScene()
	return true
}

// Update advances the world by one tick.
func (w *World) Update(dt float64) {
	for _, s := range w.ships {
		s.Update(dt)
	}
	w.processCollisions()
	w.cleanupDestroyed()
	w.Tick++
}

// processCollisions checks every live projectile against the ships near it.
func (w *World) processCollisions() {
	if len(w.ships) == 0 {
		return
	}
	index, reach := w.spatialIndex()
	for _, owner := range w.ships {
		for _, m := range owner.Hardpoints() {
			hp := m.Hardpoint()
			for _, p := range slices.Clone(hp.Children()) {
				w.checkProjectile(index, reach, hp, p)
			}
		}
	}
}

// spatialIndex builds a quadtree of the live ships and returns it with the
// largest ship radius.
func (w *World) spatialIndex() (*physics.QuadTree[*entity.Ship], float64) {
	var bounds physics.Rectangle
	reach := 0.0
	for i, s := range w.ships {
		c := s.Collider()
		if i == 0 {
			bounds = c.Bounds()
		} else {
			bounds = bounds.United(c.Bounds())
		}
		reach = max(reach, c.Radius)
	}
	bounds = physics.Rect(bounds.X-1, bounds.Y-1, bounds.W+2, bounds.H+2)

	index := physics.NewQuadTree[*entity.Ship](bounds, quadCapacity)
	for _, s := range w.ships {
		if !s.Destroyed() {
			index.Insert(s.Position(), s)
		}
	}
	return index, reach
}

func (w *World) checkProjectile(index *physics.QuadTree[*entity.Ship], reach float64, hp *entity.Hardpoint, p *entity.Projectile) {
	pc := p.Collider()
	side := 2 * (reach + pc.Radius)
	for _, target := range index.Query(physics.RectAround(p.Position(), side, side)) {
		if target == p.Owner || target.Destroyed() {
			continue
		}
		if !target.Collider().Collides(pc) {
			continue
		}
		hp.Evict(p)
		target.TakeDamage(p.Damage)

		ev := event.NewProjectileEvent(event.ProjectileHit, w, ownerID(p), p.Hardpoint, p.Position())
		ev.TargetID = target.ID
		w.publish(ev)
		return
	}
}

// cleanupDestroyed removes every ship whose hull is gone.
func (w *World) cleanupDestroyed() {
	for _, s := range slices.Clone(w.ships) {
		if !s.Destroyed() {
			continue
		}
		w.Remove(s)
		w.publish(event.NewShipEvent(event.ShipDestroyed, w, s.ID, s.Name(), s.Position()))
		w.logger.Info(context.Background(), "ship destroyed", "ship", s.Name(), "id", s.ID)
	}
}

func (w *World) publish(ev event.Event) {
	if w.env.Bus != nil {
		w.env.Bus.Publish(ev)
	}
}

func ownerID(p *entity.Projectile) string {
	if p.Owner == nil {
		return ""
	}
	return p.Owner.ID
}
