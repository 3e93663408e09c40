// pkg/ui/bar.go
package ui

import (
	"image/color"

	"github.com/opd-ai/go-spaceman/pkg/physics"
	"github.com/opd-ai/go-spaceman/pkg/render"
)

// Bar is a horizontal progress bar.
type Bar struct {
	ItemBase
	color   color.Color
	percent float64
}

// NewBar creates a full bar.
func NewBar(geometry physics.Rectangle, c color.Color) *Bar {
	return &Bar{ItemBase: ItemBase{geometry: geometry}, color: c, percent: 1}
}

// Percent returns the filled fraction in [0, 1].
func (b *Bar) Percent() float64 { return b.percent }

// SetPercent sets the filled fraction, clamped to [0, 1].
func (b *Bar) SetPercent(p float64) {
	b.percent = min(max(p, 0), 1)
	b.SetDirty(true)
}

// Shapes draws the background and the filled part.
func (b *Bar) Shapes(fc *render.FrameContext) []render.Shape {
	r := b.WorldGeometry()
	fill := physics.Rect(r.X, r.Y, r.W*b.percent, r.H)
	return []render.Shape{b.backgroundShape(), render.FilledRect(fill, b.color)}
}
