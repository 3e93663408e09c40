// pkg/ui/button.go
package ui

import (
	"image/color"

	"github.com/opd-ai/go-spaceman/pkg/event"
	"github.com/opd-ai/go-spaceman/pkg/physics"
	"github.com/opd-ai/go-spaceman/pkg/render"
)

// TextSize is the label size of buttons.
const TextSize = 14

// Button is a labeled rectangle that emits Clicked when pressed.
type Button struct {
	ItemBase
	text  string
	color color.Color

	Clicked *event.Signal[MouseEvent]
}

// NewButton creates a button with a white label.
func NewButton(text string, geometry physics.Rectangle) *Button {
	return &Button{
		ItemBase: ItemBase{geometry: geometry},
		text:     text,
		color:    color.White,
		Clicked:  event.NewSignal[MouseEvent](nil),
	}
}

// Text returns the label.
func (b *Button) Text() string { return b.text }

// SetText changes the label.
func (b *Button) SetText(s string) {
	b.text = s
	b.SetDirty(true)
}

// SetColor changes the label color.
func (b *Button) SetColor(c color.Color) {
	b.color = c
	b.SetDirty(true)
}

// Shapes draws the background.
func (b *Button) Shapes(fc *render.FrameContext) []render.Shape {
	return []render.Shape{b.backgroundShape()}
}

// Paint draws the label centered on the button.
func (b *Button) Paint(fc *render.FrameContext) {
	c := b.WorldGeometry().Center()
	width := float64(len(b.text)) * TextSize * 0.6
	at := physics.Vec(c.X-width/2, c.Y-TextSize*0.35)
	fc.Canvas.DrawText(b.text, at, TextSize, b.color)
}

// OnMousePress emits Clicked and consumes the press.
func (b *Button) OnMousePress(ev MouseEvent) bool {
	b.Clicked.Emit(ev)
	return true
}
