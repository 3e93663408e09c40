// Package prototype holds the immutable ship, engine and hardpoint templates
// that runtime entities are built from, and loads them from YAML
// descriptors.
package prototype

import (
	"fmt"
	"strings"
)

// Class is a ship weight category.
type Class string

const (
	ClassA Class = "A"
	ClassB Class = "B"
	ClassC Class = "C"
	ClassD Class = "D"
)

var loadFactors = map[Class]float64{
	ClassA: 1,
	ClassB: 1.5,
	ClassC: 2,
	ClassD: 3,
}

// LoadFactor divides a ship's engine power to give its max speed.
func (c Class) LoadFactor() float64 {
	if f, ok := loadFactors[c]; ok {
		return f
	}
	return 1
}

// Valid reports whether c is a known class.
func (c Class) Valid() bool {
	_, ok := loadFactors[c]
	return ok
}

// HardpointType is what a hardpoint discharges.
type HardpointType string

const (
	Bullet  HardpointType = "bullet"
	Laser   HardpointType = "laser"
	Bomb    HardpointType = "bomb"
	Missile HardpointType = "missile"
	Miner   HardpointType = "miner"
	Utility HardpointType = "utility"
)

// HardpointTypes lists every valid type.
var HardpointTypes = []HardpointType{Bullet, Laser, Bomb, Missile, Miner, Utility}

// ParseHardpointType parses a type name. "lazer" is accepted for laser.
func ParseHardpointType(s string) (HardpointType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "lazer" {
		return Laser, nil
	}
	for _, t := range HardpointTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown hardpoint type %q", s)
}

// EngineSize is the width class of an engine mount.
type EngineSize string

const (
	Thin EngineSize = "t"
	Wide EngineSize = "w"
)

// Direction is the cardinal side an engine mount faces.
type Direction string

const (
	North Direction = "n"
	East  Direction = "e"
	South Direction = "s"
	West  Direction = "w"
)

// Unit returns the image-space unit vector of d, with south pointing down
// the image (negative world Y once flipped).
func (d Direction) Unit() (x, y float64) {
	switch d {
	case North:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	default:
		return 0, -1
	}
}

// Engine is an engine component template.
type Engine struct {
	Name   string
	Power  float64
	Sprite string
}

// Hardpoint is a weapon or utility component template.
type Hardpoint struct {
	Name        string
	Description string
	Type        HardpointType
	Ammo        string
	Damage      float64
	Rate        float64
	Speed       float64
	Range       float64
	Automatic   bool
}

// Default projectile values when a descriptor leaves them out.
const (
	DefaultSpeed = 8
	DefaultRange = 400
)

// EngineMount is an engine slot declared by a ship prototype. Location is
// in unscaled sprite pixels from the top left corner.
type EngineMount struct {
	Location  [2]int
	Size      EngineSize
	Direction Direction
	Default   string
}

// HardpointMount is a weapon slot declared by a ship prototype.
type HardpointMount struct {
	Name      string
	Types     []HardpointType
	Location  [2]int
	Direction float64 // turret arc in degrees; projectiles follow the ship heading
	Locked    bool
	Command   string
	Default   string
}

// Accepts reports whether t may be installed in the mount.
func (m HardpointMount) Accepts(t HardpointType) bool {
	for _, allowed := range m.Types {
		if allowed == t {
			return true
		}
	}
	return false
}

// Ship is a ship template.
type Ship struct {
	Name        string
	DisplayName string
	Class       Class
	Description string
	Mobile      bool
	Hull        float64
	Shield      float64
	Fuel        float64
	Hardpoints  []HardpointMount
	Engines     []EngineMount
	SpriteDir   string
}
