// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-spaceman/pkg/game"
	"github.com/opd-ai/go-spaceman/pkg/ui"
)

// Binding maps a named engo button to a game key.
type Binding struct {
	Name string
	Key  game.Key
	Keys []engo.Key
}

// Bindings lists every button the scene registers.
var Bindings = []Binding{
	{Name: "thrust", Key: game.KeyW, Keys: []engo.Key{engo.KeyW, engo.KeyArrowUp}},
	{Name: "reverse", Key: game.KeyS, Keys: []engo.Key{engo.KeyS, engo.KeyArrowDown}},
	{Name: "turnLeft", Key: game.KeyA, Keys: []engo.Key{engo.KeyA, engo.KeyArrowLeft}},
	{Name: "turnRight", Key: game.KeyD, Keys: []engo.Key{engo.KeyD, engo.KeyArrowRight}},
	{Name: "strafePort", Key: game.KeyQ, Keys: []engo.Key{engo.KeyQ}},
	{Name: "strafeStarboard", Key: game.KeyE, Keys: []engo.Key{engo.KeyE}},
	{Name: "firePrimary", Key: game.KeySpace, Keys: []engo.Key{engo.KeySpace}},
	{Name: "fireSecondary", Key: game.KeyF, Keys: []engo.Key{engo.KeyF}},
	{Name: "debugDamage", Key: game.KeyI, Keys: []engo.Key{engo.KeyI}},
	{Name: "escape", Key: game.KeyEscape, Keys: []engo.Key{engo.KeyEscape}},
	{Name: "util1", Key: game.Key1, Keys: []engo.Key{engo.KeyOne}},
	{Name: "util2", Key: game.Key2, Keys: []engo.Key{engo.KeyTwo}},
	{Name: "util3", Key: game.Key3, Keys: []engo.Key{engo.KeyThree}},
	{Name: "util4", Key: game.Key4, Keys: []engo.Key{engo.KeyFour}},
	{Name: "util5", Key: game.Key5, Keys: []engo.Key{engo.KeyFive}},
	{Name: "util6", Key: game.Key6, Keys: []engo.Key{engo.KeySix}},
	{Name: "util7", Key: game.Key7, Keys: []engo.Key{engo.KeySeven}},
	{Name: "util8", Key: game.Key8, Keys: []engo.Key{engo.KeyEight}},
	{Name: "util9", Key: game.Key9, Keys: []engo.Key{engo.KeyNine}},
}

const modifierButton = "modifier"

// SetupInputBindings registers Bindings with engo.Input.
func SetupInputBindings() {
	for _, b := range Bindings {
		engo.Input.RegisterButton(b.Name, b.Keys...)
	}
	engo.Input.RegisterButton(modifierButton, engo.KeyLeftShift, engo.KeyRightShift)
}

// InputSystem forwards engo input to the game controls each frame.
type InputSystem struct {
	controls *game.Controls
	height   int
	quit     func()
}

// NewInputSystem creates an input system for a view of the given height.
// quit runs when escape is pressed.
func NewInputSystem(controls *game.Controls, height int, quit func()) *InputSystem {
	return &InputSystem{controls: controls, height: height, quit: quit}
}

// Poll reads buttons and the mouse.
func (is *InputSystem) Poll() {
	for _, b := range Bindings {
		btn := engo.Input.Button(b.Name)
		switch {
		case btn.JustPressed():
			if b.Key == game.KeyEscape && is.quit != nil {
				is.quit()
				continue
			}
			is.controls.KeyPress(b.Key)
		case btn.JustReleased():
			is.controls.KeyRelease(b.Key)
		}
	}

	m := engo.Input.Mouse
	shift := engo.Input.Button(modifierButton).Down()
	ev := MouseEvent(m.X, m.Y, is.height, m.Button, shift)
	is.controls.MouseMove(ev.X, ev.Y)
	if m.Action == engo.Press {
		is.controls.MousePress(ev)
	}
}

// MouseEvent converts a Y-down engo mouse position to a Y-up event.
func MouseEvent(x, y float32, height int, button engo.MouseButton, shift bool) ui.MouseEvent {
	ev := ui.MouseEvent{
		X:      float64(x),
		Y:      float64(height) - float64(y),
		Button: mouseButton(button),
	}
	if shift {
		ev.Mods |= ui.ModShift
	}
	return ev
}

func mouseButton(b engo.MouseButton) ui.MouseButton {
	switch b {
	case engo.MouseButtonRight:
		return ui.MouseRight
	case engo.MouseButtonMiddle:
		return ui.MouseMiddle
	}
	return ui.MouseLeft
}
