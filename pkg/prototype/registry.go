// pkg/prototype/registry.go
package prototype

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrUnknownPrototype is returned when a name has no registered prototype.
var ErrUnknownPrototype = errors.New("prototype: unknown prototype")

// Registry holds validated prototypes by name. It is safe for concurrent
// reads; Replace swaps its contents atomically after a reload.
type Registry struct {
	mu         sync.RWMutex
	ships      map[string]*Ship
	engines    map[string]*Engine
	hardpoints map[string]*Hardpoint
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		ships:      make(map[string]*Ship),
		engines:    make(map[string]*Engine),
		hardpoints: make(map[string]*Hardpoint),
	}
}

// AddEngine registers an engine. Names must be unique.
func (r *Registry) AddEngine(e *Engine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.engines[e.Name]; ok {
		return fmt.Errorf("engine %q already registered", e.Name)
	}
	r.engines[e.Name] = e
	return nil
}

// AddHardpoint registers a hardpoint. Names must be unique.
func (r *Registry) AddHardpoint(h *Hardpoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.hardpoints[h.Name]; ok {
		return fmt.Errorf("hardpoint %q already registered", h.Name)
	}
	r.hardpoints[h.Name] = h
	return nil
}

// AddShip registers a ship. Names must be unique.
func (r *Registry) AddShip(s *Ship) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ships[s.Name]; ok {
		return fmt.Errorf("ship %q already registered", s.Name)
	}
	r.ships[s.Name] = s
	return nil
}

// Ship returns the named ship prototype.
func (r *Registry) Ship(name string) (*Ship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.ships[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("ship %q: %w", name, ErrUnknownPrototype)
}

// Engine returns the named engine prototype.
func (r *Registry) Engine(name string) (*Engine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.engines[name]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("engine %q: %w", name, ErrUnknownPrototype)
}

// Hardpoint returns the named hardpoint prototype.
func (r *Registry) Hardpoint(name string) (*Hardpoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if h, ok := r.hardpoints[name]; ok {
		return h, nil
	}
	return nil, fmt.Errorf("hardpoint %q: %w", name, ErrUnknownPrototype)
}

func (r *Registry) hasEngine(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.engines[name]
	return ok
}

// Ships returns the registered ship names in sorted order.
func (r *Registry) Ships() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.ships)
}

// Engines returns the registered engine names in sorted order.
func (r *Registry) Engines() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.engines)
}

// Hardpoints returns the registered hardpoint names in sorted order.
func (r *Registry) Hardpoints() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.hardpoints)
}

// Replace swaps in the contents of other. Entities already built keep
// pointers to the old prototypes.
func (r *Registry) Replace(other *Registry) {
	other.mu.RLock()
	ships, engines, hardpoints := other.ships, other.engines, other.hardpoints
	other.mu.RUnlock()

	r.mu.Lock()
	r.ships, r.engines, r.hardpoints = ships, engines, hardpoints
	r.mu.Unlock()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
