// pkg/render/engo/canvas.go
package engo

import (
	"context"
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-spaceman/pkg/logging"
	"github.com/opd-ai/go-spaceman/pkg/physics"
	"github.com/opd-ai/go-spaceman/pkg/render"
)

// Sink receives the entities a Canvas creates. *common.RenderSystem is
// the usual sink.
type Sink interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

type entry struct {
	basic  ecs.BasicEntity
	render common.RenderComponent
	space  common.SpaceComponent
}

// Canvas implements render.Canvas on top of engo's retained render system.
// Every draw call claims a pooled entity for the current frame; entities
// not claimed by End are hidden.
type Canvas struct {
	sink   Sink
	assets *AssetManager
	logger *logging.Logger

	width, height int
	pool          []*entry
	used          int
}

// NewCanvas creates a canvas feeding sink.
func NewCanvas(sink Sink, width, height int, assets *AssetManager, logger *logging.Logger) *Canvas {
	if assets == nil {
		assets = NewAssetManager(nil, nil)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Canvas{
		sink:   sink,
		assets: assets,
		logger: logger.Component("engo_canvas"),
		width:  width,
		height: height,
	}
}

// Begin starts a frame.
func (c *Canvas) Begin() { c.used = 0 }

// End hides every entity the frame did not use.
func (c *Canvas) End() {
	for _, e := range c.pool[c.used:] {
		e.render.Hidden = true
	}
}

// Resize changes the view size.
func (c *Canvas) Resize(width, height int) {
	c.width, c.height = width, height
}

// Size implements render.Canvas.
func (c *Canvas) Size() (int, int) { return c.width, c.height }

// Used returns how many entities the current frame claimed.
func (c *Canvas) Used() int { return c.used }

// Pooled returns how many entities have been handed to the sink.
func (c *Canvas) Pooled() int { return len(c.pool) }

// Close removes every pooled entity from the sink.
func (c *Canvas) Close() {
	for _, e := range c.pool {
		c.sink.Remove(e.basic)
	}
	c.pool = nil
	c.used = 0
}

// DrawSprites implements render.Canvas.
func (c *Canvas) DrawSprites(sprites []*render.Sprite) {
	for _, s := range sprites {
		tex := s.Texture()
		d := c.assets.Drawable(tex)
		if d == nil {
			continue
		}
		w, h := s.Size()
		e := c.claim(d, tint(s.Tint))
		scale := float32(s.Scale * tex.Scale)
		e.render.Scale = engo.Point{X: scale, Y: scale}
		c.place(e, s.Center, w, h, s.Angle)
	}
}

// DrawShapes implements render.Canvas.
func (c *Canvas) DrawShapes(shapes []render.Shape) {
	for _, sh := range shapes {
		switch sh.Kind {
		case render.ShapeFilledRect:
			e := c.claim(common.Rectangle{}, sh.Color)
			c.place(e, sh.Rect.Center(), sh.Rect.W, sh.Rect.H, 0)
		case render.ShapeOutlineRect:
			e := c.claim(common.Rectangle{BorderWidth: float32(sh.Size), BorderColor: sh.Color}, color.Transparent)
			c.place(e, sh.Rect.Center(), sh.Rect.W, sh.Rect.H, 0)
		case render.ShapePoints:
			for _, p := range sh.Points {
				e := c.claim(common.Rectangle{}, sh.Color)
				c.place(e, p, sh.Size, sh.Size, 0)
			}
		case render.ShapeLine:
			if len(sh.Points) < 2 {
				continue
			}
			a, b := sh.Points[0], sh.Points[1]
			d := b.Sub(a)
			angle := math.Atan2(d.Y, d.X) * 180 / math.Pi
			e := c.claim(common.Rectangle{}, sh.Color)
			c.place(e, a.Add(d.Scale(0.5)), d.Length(), sh.Size, angle)
		}
	}
}

// DrawText implements render.Canvas. at is the baseline-left corner.
func (c *Canvas) DrawText(text string, at physics.Vector2D, size float64, col color.Color) {
	font, err := c.assets.Font(size, col)
	if err != nil {
		c.logger.Warn(context.Background(), "font unavailable", "size", size, "error", err)
		return
	}
	if font == nil {
		return
	}
	e := c.claim(common.Text{Font: font, Text: text}, color.White)
	e.space.Width = float32(size) * float32(len(text)) / 2
	e.space.Height = float32(size)
	e.space.Rotation = 0
	e.space.Position = engo.Point{X: float32(at.X), Y: float32(c.height) - float32(at.Y+size)}
}

// claim hands out the next pooled entity, growing the pool as needed.
func (c *Canvas) claim(d common.Drawable, col color.Color) *entry {
	if col == nil {
		col = color.White
	}
	if c.used == len(c.pool) {
		e := &entry{basic: ecs.NewBasic()}
		e.render.Drawable = d
		e.render.Color = col
		e.render.Scale = engo.Point{X: 1, Y: 1}
		c.pool = append(c.pool, e)
		c.sink.Add(&e.basic, &e.render, &e.space)
	}
	e := c.pool[c.used]
	c.used++

	e.render.Drawable = d
	e.render.Color = col
	e.render.Scale = engo.Point{X: 1, Y: 1}
	e.render.Hidden = false
	e.render.SetZIndex(float32(c.used))
	return e
}

// place centres e on a Y-up world point. angle is counter-clockwise in
// degrees; engo rotates clockwise on a Y-down screen.
func (c *Canvas) place(e *entry, center physics.Vector2D, w, h, angle float64) {
	e.space.Width = float32(w)
	e.space.Height = float32(h)
	e.space.Rotation = float32(-angle)
	e.space.SetCenter(engo.Point{X: float32(center.X), Y: float32(c.height) - float32(center.Y)})
}

func tint(c color.Color) color.Color {
	if c == nil {
		return color.White
	}
	return c
}

var _ render.Canvas = (*Canvas)(nil)
