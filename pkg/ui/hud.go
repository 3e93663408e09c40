// pkg/ui/hud.go
package ui

import (
	"image/color"

	"github.com/opd-ai/go-spaceman/pkg/entity"
	"github.com/opd-ai/go-spaceman/pkg/event"
	"github.com/opd-ai/go-spaceman/pkg/physics"
	"github.com/opd-ai/go-spaceman/pkg/render"
)

// ActiveItems is the number of boxes in the active item row.
const ActiveItems = 10

// itemSpacing is the distance between box origins in the item row.
const itemSpacing = 40 * ItemBoxScale

// Bar colors.
var (
	HealthColor = color.RGBA{R: 34, G: 139, B: 34, A: 255}
	ShieldColor = color.RGBA{R: 30, G: 144, B: 255, A: 255}
	EnergyColor = color.RGBA{R: 255, G: 215, B: 0, A: 255}
)

// Pilot is whoever flies the ship the HUD reports on.
type Pilot interface {
	Ship() *entity.Ship
	ShipTookDamage() *event.Signal[entity.Damage]
}

// HUD shows the pilot's hull, shield and energy bars and a row of active
// item boxes.
type HUD struct {
	*Widget
	pilot Pilot
	token event.Token

	Health *Bar
	Shield *Bar
	Energy *Bar

	Items *Widget
	Boxes []*ItemBox
}

// NewHUD builds the HUD for a resX by resY view. It stays hidden until
// Show is called.
func NewHUD(index *render.WidgetIndex, sprites SpriteLoader, pilot Pilot, resX, resY int) *HUD {
	root := NewWidget(index, nil, physics.Vector2D{})
	width := float64(resX / 5)
	top := float64(resY)

	h := &HUD{
		Widget: root,
		pilot:  pilot,
		Health: NewBar(physics.Rect(10, top-30, width, 20), HealthColor),
		Shield: NewBar(physics.Rect(10, top-42, width, 10), ShieldColor),
		Energy: NewBar(physics.Rect(10, top-54, width, 10), EnergyColor),
	}
	root.Add(h.Health)
	root.Add(h.Shield)
	root.Add(h.Energy)

	h.Items = NewWidget(index, root, physics.Vector2D{})
	for i := 0; i < ActiveItems; i++ {
		box := NewItemBox(sprites, physics.Vec(float64(i)*itemSpacing, 0))
		h.Items.Add(box)
		h.Boxes = append(h.Boxes, box)
	}
	w, _ := h.Items.Size()
	h.Items.SetPosition(physics.Vec(float64(int((float64(resX)-w)/2)), 10))

	if pilot != nil {
		h.token = pilot.ShipTookDamage().ListenPost(func(entity.Damage) { h.Refresh() })
	}
	return h
}

// Refresh sets every bar from the pilot's ship.
func (h *HUD) Refresh() {
	if h.pilot == nil {
		return
	}
	s := h.pilot.Ship()
	if s == nil {
		return
	}
	p := s.Prototype()
	h.Health.SetPercent(ratio(s.Hull, p.Hull))
	h.Shield.SetPercent(ratio(s.Shield, p.Shield))
	h.Energy.SetPercent(ratio(s.Fuel, p.Fuel))
}

// Close stops listening to the pilot.
func (h *HUD) Close() {
	if h.pilot != nil {
		h.pilot.ShipTookDamage().StopListening(h.token)
	}
}

func ratio(cur, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return cur / total
}
