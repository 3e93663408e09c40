// pkg/render/ebiten/canvas.go
package ebiten

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/opd-ai/go-spaceman/pkg/physics"
	"github.com/opd-ai/go-spaceman/pkg/render"
)

// Canvas implements render.Canvas by drawing straight onto an
// *ebiten.Image each frame.
type Canvas struct {
	dst           *ebiten.Image
	width, height int
	images        map[*render.Texture]*ebiten.Image
	font          *text.GoTextFaceSource
	faces         map[float64]*text.GoTextFace
}

// NewCanvas creates a canvas for a view of the given size.
func NewCanvas(width, height int) (*Canvas, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("ebiten: load font: %w", err)
	}
	return &Canvas{
		width:  width,
		height: height,
		images: make(map[*render.Texture]*ebiten.Image),
		font:   src,
		faces:  make(map[float64]*text.GoTextFace),
	}, nil
}

// Target sets the image the next frame draws onto.
func (c *Canvas) Target(dst *ebiten.Image) { c.dst = dst }

// Size implements render.Canvas.
func (c *Canvas) Size() (int, int) { return c.width, c.height }

// DrawSprites implements render.Canvas.
func (c *Canvas) DrawSprites(sprites []*render.Sprite) {
	for _, s := range sprites {
		img := c.image(s.Texture())
		if img == nil {
			continue
		}
		b := img.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM = SpriteGeoM(float64(b.Dx()), float64(b.Dy()), s.Scale*s.Texture().Scale, s.Angle, s.Center, c.height)
		if s.Tint != nil {
			op.ColorScale.ScaleWithColor(s.Tint)
		}
		op.Filter = ebiten.FilterLinear
		c.dst.DrawImage(img, op)
	}
}

// DrawShapes implements render.Canvas.
func (c *Canvas) DrawShapes(shapes []render.Shape) {
	for _, sh := range shapes {
		switch sh.Kind {
		case render.ShapeFilledRect:
			x, y, w, h := ScreenRect(sh.Rect, c.height)
			vector.DrawFilledRect(c.dst, x, y, w, h, sh.Color, false)
		case render.ShapeOutlineRect:
			x, y, w, h := ScreenRect(sh.Rect, c.height)
			vector.StrokeRect(c.dst, x, y, w, h, float32(sh.Size), sh.Color, false)
		case render.ShapePoints:
			for _, p := range sh.Points {
				x, y, w, h := ScreenRect(physics.RectAround(p, sh.Size, sh.Size), c.height)
				vector.DrawFilledRect(c.dst, x, y, w, h, sh.Color, false)
			}
		case render.ShapeLine:
			if len(sh.Points) < 2 {
				continue
			}
			a, b := sh.Points[0], sh.Points[1]
			vector.StrokeLine(c.dst,
				float32(a.X), float32(c.height)-float32(a.Y),
				float32(b.X), float32(c.height)-float32(b.Y),
				float32(sh.Size), sh.Color, true)
		}
	}
}

// DrawText implements render.Canvas. at is the baseline-left corner.
func (c *Canvas) DrawText(s string, at physics.Vector2D, size float64, col color.Color) {
	face := c.face(size)
	op := &text.DrawOptions{}
	op.GeoM.Translate(at.X, float64(c.height)-at.Y-face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(c.dst, s, face, op)
}

func (c *Canvas) face(size float64) *text.GoTextFace {
	if f, ok := c.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: c.font, Size: size}
	c.faces[size] = f
	return f
}

func (c *Canvas) image(t *render.Texture) *ebiten.Image {
	if t == nil || t.Image == nil {
		return nil
	}
	if img, ok := c.images[t]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(t.Image)
	c.images[t] = img
	return img
}

// Forget drops every cached image.
func (c *Canvas) Forget() {
	for _, img := range c.images {
		img.Deallocate()
	}
	clear(c.images)
}

// SpriteGeoM places a w x h image centred on a Y-up world point, scaled
// and rotated counter-clockwise by angle degrees.
func SpriteGeoM(w, h, scale, angle float64, center physics.Vector2D, viewHeight int) ebiten.GeoM {
	var m ebiten.GeoM
	m.Translate(-w/2, -h/2)
	m.Scale(scale, scale)
	m.Rotate(-angle * math.Pi / 180)
	m.Translate(center.X, float64(viewHeight)-center.Y)
	return m
}

// ScreenRect converts a Y-up world rectangle to Y-down screen space.
func ScreenRect(r physics.Rectangle, viewHeight int) (x, y, w, h float32) {
	return float32(r.X), float32(viewHeight) - float32(r.Y+r.H), float32(r.W), float32(r.H)
}

var _ render.Canvas = (*Canvas)(nil)
