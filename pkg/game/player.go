// pkg/game/player.go
package game

import (
	"github.com/opd-ai/go-spaceman/pkg/entity"
	"github.com/opd-ai/go-spaceman/pkg/event"
	"github.com/opd-ai/go-spaceman/pkg/physics"
)

// Player is the person at the controls. Its ShipTookDamage signal forwards
// damage from whichever ship it is flying, so listeners survive a change
// of ship.
type Player struct {
	ship       *entity.Ship
	token      event.Token
	tookDamage *event.Signal[entity.Damage]
}

// NewPlayer creates a player without a ship.
func NewPlayer() *Player {
	return &Player{tookDamage: event.NewSignal[entity.Damage](nil)}
}

// Ship returns the ship being flown, or nil.
func (p *Player) Ship() *entity.Ship { return p.ship }

// ShipTookDamage fires after the flown ship absorbs damage.
func (p *Player) ShipTookDamage() *event.Signal[entity.Damage] { return p.tookDamage }

// Board makes s the flown ship and emits a null damage so listeners
// refresh from it. A nil s leaves the player on foot.
func (p *Player) Board(s *entity.Ship) {
	if p.ship != nil {
		p.ship.TookDamage.StopListening(p.token)
	}
	p.ship = s
	if s == nil {
		return
	}
	p.token = s.TookDamage.ListenPost(p.tookDamage.Emit)
	p.tookDamage.Emit(entity.Damage{Kind: entity.Null})
}

// WorldVelocity returns the flown ship's velocity, or zero on foot.
func (p *Player) WorldVelocity() physics.Vector2D {
	if p.ship == nil {
		return physics.Vector2D{}
	}
	return p.ship.WorldVelocity()
}
