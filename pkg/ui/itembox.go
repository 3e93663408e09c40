// pkg/ui/itembox.go
package ui

import (
	"github.com/opd-ai/go-spaceman/pkg/physics"
	"github.com/opd-ai/go-spaceman/pkg/render"
)

// Item box sprite location and size.
const (
	ItemBoxDir   = "objects/interface"
	ItemBoxName  = "item_box"
	ItemBoxSize  = 32
	ItemBoxScale = 1.5
)

// SpriteLoader builds interface sprites.
type SpriteLoader interface {
	Basic(dir, name string) (*render.Sprite, error)
	MustSprite(load func() (*render.Sprite, error), name string) *render.Sprite
}

// ItemBox is a slot in the active item row.
type ItemBox struct {
	ItemBase
	sprite render.LazySprite
}

// NewItemBox creates an empty box at pos.
func NewItemBox(sprites SpriteLoader, pos physics.Vector2D) *ItemBox {
	side := ItemBoxSize * ItemBoxScale
	b := &ItemBox{ItemBase: ItemBase{geometry: physics.Rect(pos.X, pos.Y, side, side)}}
	b.sprite = render.NewLazySprite(func() *render.Sprite {
		if sprites == nil {
			return nil
		}
		s := sprites.MustSprite(func() (*render.Sprite, error) {
			return sprites.Basic(ItemBoxDir, ItemBoxName)
		}, ItemBoxName)
		s.Scale = ItemBoxScale
		return s
	})
	return b
}

// Sprite returns the box sprite centered on the box.
func (b *ItemBox) Sprite() *render.Sprite {
	s := b.sprite.Get()
	if s != nil {
		s.Center = b.WorldGeometry().Center()
	}
	return s
}
