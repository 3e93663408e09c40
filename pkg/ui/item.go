// pkg/ui/item.go
package ui

import (
	"image/color"

	"github.com/opd-ai/go-spaceman/pkg/physics"
	"github.com/opd-ai/go-spaceman/pkg/render"
)

// Background is the default fill behind items.
var Background = color.RGBA{R: 169, G: 169, B: 169, A: 255}

// Item is a leaf owned by a widget. It is drawn by whichever of
// render.SpriteSource, render.ShapeSource and render.Painter it implements.
type Item interface {
	WorldGeometry() physics.Rectangle
	attach(w *Widget)
}

// ItemBase holds the geometry of an item relative to its widget. Embed it
// to implement Item.
type ItemBase struct {
	geometry   physics.Rectangle
	background color.Color
	owner      *Widget
}

func (b *ItemBase) attach(w *Widget) { b.owner = w }

// Owner returns the widget the item is attached to.
func (b *ItemBase) Owner() *Widget { return b.owner }

// Geometry returns the rectangle relative to the owning widget.
func (b *ItemBase) Geometry() physics.Rectangle { return b.geometry }

// SetGeometry sets the rectangle relative to the owning widget.
func (b *ItemBase) SetGeometry(r physics.Rectangle) {
	b.geometry = r
	b.SetDirty(true)
}

// WorldGeometry returns the rectangle in world units.
func (b *ItemBase) WorldGeometry() physics.Rectangle {
	if b.owner == nil {
		return b.geometry
	}
	return b.geometry.Moved(b.owner.WorldPosition())
}

// BackgroundColor returns the fill drawn behind the item.
func (b *ItemBase) BackgroundColor() color.Color {
	if b.background == nil {
		return Background
	}
	return b.background
}

// SetBackgroundColor changes the fill drawn behind the item.
func (b *ItemBase) SetBackgroundColor(c color.Color) {
	b.background = c
	b.SetDirty(true)
}

// SetDirty marks the owning widget.
func (b *ItemBase) SetDirty(d bool) {
	if b.owner != nil {
		b.owner.SetDirty(d)
	}
}

func (b *ItemBase) backgroundShape() render.Shape {
	return render.FilledRect(b.WorldGeometry(), b.BackgroundColor())
}
