// pkg/entity/damage.go
package entity

import (
	"fmt"

	"github.com/opd-ai/go-spaceman/pkg/prototype"
)

// DamageKind classifies damage for resistances.
type DamageKind string

const (
	Pierce    DamageKind = "pierce"
	Explosive DamageKind = "explosive"
	Energy    DamageKind = "energy"
	Null      DamageKind = "null"
)

// Damage is an amount of damage of one kind.
type Damage struct {
	Kind   DamageKind
	Amount float64
}

func (d Damage) String() string {
	return fmt.Sprintf("%s:%g", d.Kind, d.Amount)
}

// KindFor returns the damage a hardpoint type deals.
func KindFor(t prototype.HardpointType) DamageKind {
	switch t {
	case prototype.Bullet:
		return Pierce
	case prototype.Bomb, prototype.Missile:
		return Explosive
	case prototype.Laser:
		return Energy
	default:
		return Null
	}
}
