// pkg/event/event.go
package event

import (
	"slices"
	"sync"

	"github.com/opd-ai/go-spaceman/pkg/physics"
)

// Type represents the type of event
type Type string

// Game-wide event types
const (
	ShipSpawned        Type = "ship_spawned"
	ShipDestroyed      Type = "ship_destroyed"
	ShipDamaged        Type = "ship_damaged"
	ProjectileFired    Type = "projectile_fired"
	ProjectileExpired  Type = "projectile_expired"
	ProjectileHit      Type = "projectile_hit"
	PrototypesReloaded Type = "prototypes_reloaded"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() any
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    any
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() any {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

type subscription struct {
	token   Token
	handler Handler
}

// Bus fans game-wide events out to subscribers that do not hold a direct
// reference to the emitting entity.
type Bus struct {
	handlers map[Type][]subscription
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscription),
	}
}

// Subscribe registers a handler for a specific event type and returns the
// token that removes it.
func (b *Bus) Subscribe(eventType Type, handler Handler) Token {
	b.mu.Lock()
	defer b.mu.Unlock()

	tok := newToken()
	b.handlers[eventType] = append(b.handlers[eventType], subscription{token: tok, handler: handler})
	return tok
}

// Unsubscribe removes the handler registered under tok. It reports whether
// a handler was removed.
func (b *Bus) Unsubscribe(eventType Type, tok Token) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	n := len(subs)
	b.handlers[eventType] = slices.DeleteFunc(subs, func(s subscription) bool {
		return s.token == tok
	})
	return len(b.handlers[eventType]) != n
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := slices.Clone(b.handlers[event.GetType()])
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// ShipEvent describes a ship entering or leaving play, or taking damage.
type ShipEvent struct {
	BaseEvent
	ShipID   string
	Name     string
	Position physics.Vector2D
	Amount   float64
}

// NewShipEvent creates a new ship event
func NewShipEvent(eventType Type, source any, shipID, name string, pos physics.Vector2D) *ShipEvent {
	return &ShipEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ShipID:   shipID,
		Name:     name,
		Position: pos,
	}
}

// ProjectileEvent describes a projectile being fired, expiring or hitting.
type ProjectileEvent struct {
	BaseEvent
	OwnerID   string
	Hardpoint string
	Position  physics.Vector2D
	TargetID  string
}

// NewProjectileEvent creates a new projectile event
func NewProjectileEvent(eventType Type, source any, ownerID, hardpoint string, pos physics.Vector2D) *ProjectileEvent {
	return &ProjectileEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		OwnerID:   ownerID,
		Hardpoint: hardpoint,
		Position:  pos,
	}
}
