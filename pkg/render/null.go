// pkg/render/null.go
package render

import (
	"context"
	"image/color"

	"github.com/opd-ai/go-spaceman/pkg/logging"
	"github.com/opd-ai/go-spaceman/pkg/physics"
)

// DrawOp names a canvas call.
type DrawOp string

const (
	OpSprites DrawOp = "sprites"
	OpShapes  DrawOp = "shapes"
	OpText    DrawOp = "text"
)

// DrawCall records one canvas call.
type DrawCall struct {
	Op      DrawOp
	Sprites []*Sprite
	Shapes  []Shape
	Text    string
	At      physics.Vector2D
}

// NullCanvas records draw calls without drawing anything. It backs the
// headless renderer and tests.
type NullCanvas struct {
	Calls  []DrawCall
	width  int
	height int
	logger *logging.Logger
}

// NewNullCanvas creates a canvas reporting the given view size.
func NewNullCanvas(width, height int, logger *logging.Logger) *NullCanvas {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullCanvas{width: width, height: height, logger: logger.Component("null_canvas")}
}

// DrawSprites implements Canvas.
func (c *NullCanvas) DrawSprites(sprites []*Sprite) {
	c.logger.Debug(context.Background(), "DrawSprites called", "count", len(sprites))
	c.Calls = append(c.Calls, DrawCall{Op: OpSprites, Sprites: append([]*Sprite(nil), sprites...)})
}

// DrawShapes implements Canvas.
func (c *NullCanvas) DrawShapes(shapes []Shape) {
	c.logger.Debug(context.Background(), "DrawShapes called", "count", len(shapes))
	c.Calls = append(c.Calls, DrawCall{Op: OpShapes, Shapes: append([]Shape(nil), shapes...)})
}

// DrawText implements Canvas.
func (c *NullCanvas) DrawText(text string, at physics.Vector2D, size float64, col color.Color) {
	c.logger.Debug(context.Background(), "DrawText called", "text", text)
	c.Calls = append(c.Calls, DrawCall{Op: OpText, Text: text, At: at})
}

// Size implements Canvas.
func (c *NullCanvas) Size() (int, int) { return c.width, c.height }

// Reset forgets recorded calls.
func (c *NullCanvas) Reset() { c.Calls = c.Calls[:0] }

// Count returns how many calls of op were recorded.
func (c *NullCanvas) Count(op DrawOp) int {
	n := 0
	for _, call := range c.Calls {
		if call.Op == op {
			n++
		}
	}
	return n
}

type discardCanvas struct{}

func (discardCanvas) DrawSprites([]*Sprite)                                  {}
func (discardCanvas) DrawShapes([]Shape)                                     {}
func (discardCanvas) DrawText(string, physics.Vector2D, float64, color.Color) {}
func (discardCanvas) Size() (int, int)                                       { return 0, 0 }
