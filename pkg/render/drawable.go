// Package render composes the game scene. Drawables are grouped into depth
// layers and drawn back to front through a Canvas; UI widgets are drawn on
// top from a separate depth index whose batches are cached until a member
// widget is marked dirty.
package render

import (
	"errors"
	"strings"

	"github.com/opd-ai/go-spaceman/pkg/physics"
)

// ErrDepthLocked is returned when a drawable's depth changes while it is in
// a scene.
var ErrDepthLocked = errors.New("render: depth cannot change while in scene")

// Method is the set of ways a drawable can be drawn.
type Method uint8

const (
	MethodSprite Method = 1 << iota
	MethodPaint
	MethodShape
)

// Has reports whether every flag in f is set in m.
func (m Method) Has(f Method) bool {
	return f != 0 && m&f == f
}

func (m Method) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	if m.Has(MethodSprite) {
		parts = append(parts, "sprite")
	}
	if m.Has(MethodPaint) {
		parts = append(parts, "paint")
	}
	if m.Has(MethodShape) {
		parts = append(parts, "shape")
	}
	return strings.Join(parts, "|")
}

// Drawable is anything the Engine can place in a depth layer. How it is
// drawn is decided by which of SpriteSource, Painter and ShapeSource it
// implements. Implementations must be pointer types.
type Drawable interface {
	Depth() int
	InScene() bool
	SetInScene(bool)
}

// SpriteSource is drawn as part of its layer's sprite batch.
type SpriteSource interface {
	Sprite() *Sprite
}

// Painter draws itself immediately each frame.
type Painter interface {
	Paint(fc *FrameContext)
}

// ShapeSource contributes shapes to its layer's shape batch.
type ShapeSource interface {
	Shapes(fc *FrameContext) []Shape
}

// Capabilities returns the draw methods v supports.
func Capabilities(v any) Method {
	var m Method
	if _, ok := v.(SpriteSource); ok {
		m |= MethodSprite
	}
	if _, ok := v.(Painter); ok {
		m |= MethodPaint
	}
	if _, ok := v.(ShapeSource); ok {
		m |= MethodShape
	}
	return m
}

// Base holds the state shared by every drawable. Embed it by value.
type Base struct {
	position physics.Vector2D
	depth    int
	inScene  bool
}

// Position returns the world position.
func (b *Base) Position() physics.Vector2D { return b.position }

// SetPosition moves the drawable.
func (b *Base) SetPosition(p physics.Vector2D) { b.position = p }

// Depth returns the draw order key.
func (b *Base) Depth() int { return b.depth }

// SetDepth changes the draw order key. It fails with ErrDepthLocked while
// the drawable is in a scene.
func (b *Base) SetDepth(z int) error {
	if b.inScene {
		return ErrDepthLocked
	}
	b.depth = z
	return nil
}

// InScene reports whether the drawable is currently in a scene.
func (b *Base) InScene() bool { return b.inScene }

// SetInScene is called by the Engine on add and remove.
func (b *Base) SetInScene(in bool) { b.inScene = in }

// LazySprite builds a sprite the first time it is asked for.
type LazySprite struct {
	load   func() *Sprite
	sprite *Sprite
}

// NewLazySprite returns a LazySprite that calls load on first use.
func NewLazySprite(load func() *Sprite) LazySprite {
	return LazySprite{load: load}
}

// Get returns the sprite, loading it if needed. It may return nil when the
// loader does.
func (l *LazySprite) Get() *Sprite {
	if l.sprite == nil && l.load != nil {
		l.sprite = l.load()
	}
	return l.sprite
}

// Loaded reports whether the sprite has been built.
func (l *LazySprite) Loaded() bool { return l.sprite != nil }
