// pkg/prototype/descriptor.go
package prototype

import (
	"github.com/opd-ai/go-spaceman/pkg/validation"
)

// Descriptor structs mirror the YAML files. Pointer fields distinguish a
// missing key from a zero value.

type engineSpec struct {
	Name   *string  `yaml:"name"`
	Power  *float64 `yaml:"power"`
	Sprite *string  `yaml:"sprite"`
}

type hardpointSpec struct {
	Name        *string  `yaml:"name"`
	Description *string  `yaml:"description"`
	Type        *string  `yaml:"type"`
	Ammo        *string  `yaml:"ammo"`
	Damage      *float64 `yaml:"damage"`
	Rate        *float64 `yaml:"rate"`
	Speed       *float64 `yaml:"speed"`
	Range       *float64 `yaml:"range"`
	Automatic   bool     `yaml:"automatic"`
}

type engineMountSpec struct {
	Location  []int   `yaml:"location"`
	Size      *string `yaml:"size"`
	Direction string  `yaml:"direction"`
	Default   *string `yaml:"default"`
}

type hardpointMountSpec struct {
	Name      *string  `yaml:"name"`
	Types     []string `yaml:"types"`
	Location  []int    `yaml:"location"`
	Direction *float64 `yaml:"direction"`
	Locked    bool     `yaml:"locked"`
	Command   *string  `yaml:"command"`
	Default   *string  `yaml:"default"`
}

type shipSpec struct {
	DisplayName *string              `yaml:"display_name"`
	Class       *string              `yaml:"class"`
	Description *string              `yaml:"description"`
	Mobile      *bool                `yaml:"mobile"`
	Hull        *float64             `yaml:"hull"`
	Shield      *float64             `yaml:"shield"`
	Fuel        *float64             `yaml:"fuel"`
	Hardpoints  []hardpointMountSpec `yaml:"hardpoints"`
	Engines     []engineMountSpec    `yaml:"engines"`
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func num(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func location(c *validation.Collector, loc []int) [2]int {
	if !c.Require("location", loc != nil) {
		return [2]int{}
	}
	if len(loc) != 2 {
		c.Addf("location must have 2 coordinates, got %d", len(loc))
		return [2]int{}
	}
	return [2]int{loc[0], loc[1]}
}

func (s engineSpec) build(c *validation.Collector) *Engine {
	c.Require("name", s.Name != nil)
	c.Require("power", s.Power != nil)
	c.Require("sprite", s.Sprite != nil)
	if s.Name != nil {
		c.Name("name", *s.Name)
	}
	if s.Power != nil {
		c.NonNegative("power", *s.Power)
	}
	return &Engine{Name: str(s.Name), Power: num(s.Power, 0), Sprite: str(s.Sprite)}
}

func (s hardpointSpec) build(c *validation.Collector) *Hardpoint {
	c.Require("name", s.Name != nil)
	c.Require("description", s.Description != nil)
	c.Require("type", s.Type != nil)
	c.Require("damage", s.Damage != nil)
	c.Require("rate", s.Rate != nil)
	if s.Name != nil {
		c.Name("name", *s.Name)
	}

	h := &Hardpoint{
		Name:        str(s.Name),
		Description: str(s.Description),
		Ammo:        str(s.Ammo),
		Damage:      num(s.Damage, 0),
		Rate:        num(s.Rate, 0),
		Speed:       num(s.Speed, DefaultSpeed),
		Range:       num(s.Range, DefaultRange),
		Automatic:   s.Automatic,
	}
	if s.Type != nil {
		t, err := ParseHardpointType(*s.Type)
		if err != nil {
			c.Add(err)
		}
		h.Type = t
	}
	c.NonNegative("damage", h.Damage)
	c.NonNegative("rate", h.Rate)
	c.Positive("speed", h.Speed)
	c.Positive("range", h.Range)
	return h
}

func (s engineMountSpec) build(c *validation.Collector, reg *Registry) EngineMount {
	m := EngineMount{
		Location:  location(c, s.Location),
		Direction: South,
		Default:   str(s.Default),
	}
	if c.Require("size", s.Size != nil) && c.OneOf("size", *s.Size, string(Wide), string(Thin)) {
		m.Size = EngineSize(*s.Size)
	}
	if s.Direction != "" && c.OneOf("direction", s.Direction, string(North), string(East), string(South), string(West)) {
		m.Direction = Direction(s.Direction)
	}
	if c.Require("default", s.Default != nil) && !reg.hasEngine(m.Default) {
		c.Addf("unknown engine prototype %q", m.Default)
	}
	return m
}

func (s hardpointMountSpec) build(c *validation.Collector, reg *Registry) HardpointMount {
	c.Require("name", s.Name != nil)
	c.Require("types", s.Types != nil)
	c.Require("direction", s.Direction != nil)
	c.Require("command", s.Command != nil)
	m := HardpointMount{
		Name:      str(s.Name),
		Location:  location(c, s.Location),
		Direction: num(s.Direction, 0),
		Locked:    s.Locked,
		Command:   str(s.Command),
		Default:   str(s.Default),
	}
	for _, name := range s.Types {
		t, err := ParseHardpointType(name)
		if err != nil {
			c.Add(err)
			continue
		}
		m.Types = append(m.Types, t)
	}
	if !c.Require("default", s.Default != nil) {
		return m
	}
	h, err := reg.Hardpoint(m.Default)
	if err != nil {
		c.Addf("unknown hardpoint prototype %q", m.Default)
		return m
	}
	if !m.Accepts(h.Type) {
		c.Addf("default %q has type %s, not one of %v", h.Name, h.Type, m.Types)
	}
	return m
}

func (s shipSpec) build(c *validation.Collector, name, dir string, reg *Registry) *Ship {
	c.Require("display_name", s.DisplayName != nil)
	c.Require("class", s.Class != nil)
	c.Require("description", s.Description != nil)
	c.Require("mobile", s.Mobile != nil)
	c.Require("hull", s.Hull != nil)
	c.Require("shield", s.Shield != nil)
	c.Require("fuel", s.Fuel != nil)

	ship := &Ship{
		Name:        name,
		DisplayName: str(s.DisplayName),
		Class:       Class(str(s.Class)),
		Description: str(s.Description),
		Mobile:      s.Mobile != nil && *s.Mobile,
		Hull:        num(s.Hull, 0),
		Shield:      num(s.Shield, 0),
		Fuel:        num(s.Fuel, 0),
		SpriteDir:   dir,
	}
	if s.Class != nil && !ship.Class.Valid() {
		c.Addf("class must be one of A, B, C, D, got %q", ship.Class)
	}
	c.Positive("hull", ship.Hull)
	c.NonNegative("shield", ship.Shield)
	c.NonNegative("fuel", ship.Fuel)

	for i, hs := range s.Hardpoints {
		sub := c.Sub("hardpoint %d", i)
		ship.Hardpoints = append(ship.Hardpoints, hs.build(sub, reg))
		c.Merge(sub)
	}
	for i, es := range s.Engines {
		sub := c.Sub("engine %d", i)
		ship.Engines = append(ship.Engines, es.build(sub, reg))
		c.Merge(sub)
	}
	return ship
}
