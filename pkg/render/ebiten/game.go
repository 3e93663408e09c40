// pkg/render/ebiten/game.go
package ebiten

import (
	"context"
	"errors"

	"go.uber.org/multierr"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/opd-ai/go-spaceman/pkg/game"
	"github.com/opd-ai/go-spaceman/pkg/ui"
)

// KeyMap lists the ebiten keys feeding each game key.
var KeyMap = map[ebiten.Key]game.Key{
	ebiten.KeyW:          game.KeyW,
	ebiten.KeyArrowUp:    game.KeyW,
	ebiten.KeyS:          game.KeyS,
	ebiten.KeyArrowDown:  game.KeyS,
	ebiten.KeyA:          game.KeyA,
	ebiten.KeyArrowLeft:  game.KeyA,
	ebiten.KeyD:          game.KeyD,
	ebiten.KeyArrowRight: game.KeyD,
	ebiten.KeyQ:          game.KeyQ,
	ebiten.KeyE:          game.KeyE,
	ebiten.KeyF:          game.KeyF,
	ebiten.KeyI:          game.KeyI,
	ebiten.KeySpace:      game.KeySpace,
	ebiten.KeyDigit1:     game.Key1,
	ebiten.KeyDigit2:     game.Key2,
	ebiten.KeyDigit3:     game.Key3,
	ebiten.KeyDigit4:     game.Key4,
	ebiten.KeyDigit5:     game.Key5,
	ebiten.KeyDigit6:     game.Key6,
	ebiten.KeyDigit7:     game.Key7,
	ebiten.KeyDigit8:     game.Key8,
	ebiten.KeyDigit9:     game.Key9,
}

var mouseButtons = map[ebiten.MouseButton]ui.MouseButton{
	ebiten.MouseButtonLeft:   ui.MouseLeft,
	ebiten.MouseButtonRight:  ui.MouseRight,
	ebiten.MouseButtonMiddle: ui.MouseMiddle,
}

// Game implements ebiten.Game for a session. Ebiten runs Update at the
// session's tick rate, so each call is one fixed step.
type Game struct {
	session *game.Session
	canvas  *Canvas
}

// NewGame creates the ebiten host.
func NewGame(session *game.Session) (*Game, error) {
	canvas, err := NewCanvas(session.Settings.Width(), session.Settings.Height())
	if err != nil {
		return nil, err
	}
	return &Game{session: session, canvas: canvas}, nil
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.pollKeys()
	g.pollMouse()
	g.session.Update()
	return nil
}

func (g *Game) pollKeys() {
	controls := g.session.Controls
	for k, key := range KeyMap {
		if inpututil.IsKeyJustPressed(k) {
			controls.KeyPress(key)
		}
		if inpututil.IsKeyJustReleased(k) {
			controls.KeyRelease(key)
		}
	}
}

func (g *Game) pollMouse() {
	controls := g.session.Controls
	x, y := ebiten.CursorPosition()
	controls.MouseMove(float64(x), float64(g.canvas.height-y))
	for b, mb := range mouseButtons {
		if !inpututil.IsMouseButtonJustPressed(b) {
			continue
		}
		ev := ui.MouseEvent{X: float64(x), Y: float64(g.canvas.height - y), Button: mb, Mods: modifiers()}
		controls.MousePress(ev)
	}
}

func modifiers() ui.Modifier {
	var m ui.Modifier
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		m |= ui.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		m |= ui.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		m |= ui.ModAlt
	}
	return m
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.Target(screen)
	g.session.Draw(g.canvas)
}

// Layout implements ebiten.Game. The logical view never changes size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.canvas.Size()
}

// Run opens a window, blocks until it closes and then closes the session.
func Run(session *game.Session) error {
	g, err := NewGame(session)
	if err != nil {
		return err
	}
	settings := session.Settings
	ebiten.SetWindowTitle(settings.Title)
	ebiten.SetWindowSize(settings.Width(), settings.Height())
	ebiten.SetFullscreen(settings.Fullscreen)
	ebiten.SetTPS(settings.TicksPerSecond)

	runErr := ebiten.RunGame(g)
	if errors.Is(runErr, ebiten.Termination) {
		runErr = nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), settings.Resources.ShutdownTimeout)
	defer cancel()
	return multierr.Append(runErr, session.Close(ctx))
}
