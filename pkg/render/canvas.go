// pkg/render/canvas.go
package render

import (
	"image/color"

	"github.com/opd-ai/go-spaceman/pkg/physics"
)

// Canvas is the drawing capability a backend provides. Coordinates are
// world units with Y pointing up and the origin at the bottom-left of the
// view.
type Canvas interface {
	// DrawSprites draws a whole batch in one call.
	DrawSprites(sprites []*Sprite)
	// DrawShapes draws a whole batch in one call.
	DrawShapes(shapes []Shape)
	// DrawText draws a single line with its baseline-left corner at at.
	DrawText(text string, at physics.Vector2D, size float64, c color.Color)
	// Size returns the view size in world units.
	Size() (w, h int)
}

// FrameContext is handed to every paint and shape producer during Render.
type FrameContext struct {
	Mouse  physics.Vector2D
	Canvas Canvas
	Frame  uint64
}
