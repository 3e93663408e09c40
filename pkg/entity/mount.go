// pkg/entity/mount.go
package entity

import (
	"github.com/opd-ai/go-spaceman/pkg/physics"
	"github.com/opd-ai/go-spaceman/pkg/prototype"
)

// MountOffset converts a mount location in unscaled sprite pixels into an
// offset from the ship center in the unrotated world frame. spriteW and
// spriteH are the already scaled sprite size. Image Y grows downward, world
// Y upward. Wide mounts sit one unit further toward dir.
func MountOffset(loc [2]int, scale, spriteW, spriteH float64, wide bool, dir prototype.Direction) physics.Vector2D {
	x := float64(loc[0])*scale - spriteW/2
	y := float64(loc[1])*scale - spriteH/2
	offset := physics.Vec(x, -y)
	if wide {
		ux, uy := dir.Unit()
		offset = offset.Add(physics.Vec(ux, uy))
	}
	return offset
}

// PlaceMount rotates offset by heading about the ship position and returns
// the mount's world position.
func PlaceMount(ship physics.Vector2D, heading float64, offset physics.Vector2D) physics.Vector2D {
	return ship.Add(offset.RotateDegrees(heading))
}

// EngineMount binds an engine slot to the installed engine.
type EngineMount struct {
	desc   prototype.EngineMount
	engine *Engine
}

// Descriptor returns the slot as declared by the ship prototype.
func (m *EngineMount) Descriptor() prototype.EngineMount { return m.desc }

// Engine returns the installed engine.
func (m *EngineMount) Engine() *Engine { return m.engine }

func (m *EngineMount) update(s *Ship, dt float64) {
	w, h := s.spriteSize()
	offset := MountOffset(m.desc.Location, s.env.scale(), w, h, m.desc.Size == prototype.Wide, m.desc.Direction)
	m.engine.Place(PlaceMount(s.Position(), s.Angle(), offset), s.Angle())
	m.engine.Update(dt)
}

// HardpointMount binds a weapon slot to the installed hardpoint.
type HardpointMount struct {
	desc      prototype.HardpointMount
	hardpoint *Hardpoint
}

// Descriptor returns the slot as declared by the ship prototype.
func (m *HardpointMount) Descriptor() prototype.HardpointMount { return m.desc }

// Hardpoint returns the installed hardpoint.
func (m *HardpointMount) Hardpoint() *Hardpoint { return m.hardpoint }

func (m *HardpointMount) update(s *Ship, dt float64) {
	w, h := s.spriteSize()
	offset := MountOffset(m.desc.Location, s.env.scale(), w, h, false, "")
	m.hardpoint.Place(PlaceMount(s.Position(), s.Angle(), offset), s.Angle())
	m.hardpoint.Update(dt)
}
