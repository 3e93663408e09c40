// pkg/render/tui/presenter.go
package tui

import (
	"context"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-spaceman/pkg/game"
	"github.com/opd-ai/go-spaceman/pkg/physics"
	"github.com/opd-ai/go-spaceman/pkg/render"
	"github.com/opd-ai/go-spaceman/pkg/ui"
)

// HoldTicks is how long a key counts as held after its last press.
// Terminals report presses and repeats but never releases.
const HoldTicks = 8

var runeKeys = map[rune]game.Key{
	'w': game.KeyW, 'a': game.KeyA, 's': game.KeyS, 'd': game.KeyD,
	'q': game.KeyQ, 'e': game.KeyE, 'f': game.KeyF, 'i': game.KeyI,
	' ': game.KeySpace,
	'1': game.Key1, '2': game.Key2, '3': game.Key3,
	'4': game.Key4, '5': game.Key5, '6': game.Key6,
	'7': game.Key7, '8': game.Key8, '9': game.Key9,
}

// TranslateKey maps a terminal key event to a game key.
func TranslateKey(ev *tcell.EventKey) game.Key {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.KeyEscape
	case tcell.KeyUp:
		return game.KeyW
	case tcell.KeyDown:
		return game.KeyS
	case tcell.KeyLeft:
		return game.KeyA
	case tcell.KeyRight:
		return game.KeyD
	case tcell.KeyRune:
		r := ev.Rune()
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		return runeKeys[r]
	}
	return game.KeyUnknown
}

// Press is what a key hold needs from the controls.
type Press interface {
	KeyPress(k game.Key) bool
	KeyRelease(k game.Key) bool
}

// KeyHold synthesizes releases for terminal key presses.
type KeyHold struct {
	left map[game.Key]int
}

// NewKeyHold creates an empty hold tracker.
func NewKeyHold() *KeyHold {
	return &KeyHold{left: make(map[game.Key]int)}
}

// Press presses k, or keeps it held if it already is.
func (h *KeyHold) Press(c Press, k game.Key) {
	if _, held := h.left[k]; !held {
		if !c.KeyPress(k) {
			return
		}
	}
	h.left[k] = HoldTicks
}

// Tick counts down every held key and releases the expired ones.
func (h *KeyHold) Tick(c Press) {
	for k, n := range h.left {
		if n <= 1 {
			delete(h.left, k)
			c.KeyRelease(k)
			continue
		}
		h.left[k] = n - 1
	}
}

// Held reports how many keys are held.
func (h *KeyHold) Held() int { return len(h.left) }

// Presenter copies a terminal canvas onto a tcell screen.
type Presenter struct {
	screen tcell.Screen
	canvas *render.TerminalCanvas
}

// NewPresenter creates a presenter showing a worldW by worldH view on
// screen.
func NewPresenter(screen tcell.Screen, worldW, worldH int) *Presenter {
	cols, rows := screen.Size()
	return &Presenter{screen: screen, canvas: render.NewTerminalCanvas(cols, rows, worldW, worldH)}
}

// Canvas returns the canvas frames are drawn to.
func (p *Presenter) Canvas() *render.TerminalCanvas { return p.canvas }

// Resize follows the screen size.
func (p *Presenter) Resize() {
	cols, rows := p.screen.Size()
	p.canvas.Resize(cols, rows)
}

// Present copies every cell to the screen and shows it.
func (p *Presenter) Present() {
	p.canvas.Each(func(x, y int, cell render.Cell) {
		p.screen.SetContent(x, y, cell.Rune, nil, Style(cell.Color))
	})
	p.screen.Show()
}

// CellToWorld converts a cell position to the Y-up world point at its
// centre.
func (p *Presenter) CellToWorld(x, y int) physics.Vector2D {
	cols, rows := p.canvas.Cells()
	w, h := p.canvas.Size()
	sx := float64(w) / float64(cols)
	sy := float64(h) / float64(rows)
	return physics.Vec((float64(x)+0.5)*sx, float64(h)-(float64(y)+0.5)*sy)
}

// Style converts a colour to a foreground style.
func Style(c color.Color) tcell.Style {
	if c == nil {
		return tcell.StyleDefault
	}
	r, g, b, _ := c.RGBA()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8)))
}

// Run drives session on screen until ctx is done or escape is pressed.
func Run(ctx context.Context, session *game.Session, screen tcell.Screen) error {
	p := NewPresenter(screen, session.Settings.Width(), session.Settings.Height())
	hold := NewKeyHold()
	controls := session.Controls

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(session.TickDuration())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				k := TranslateKey(ev)
				if k == game.KeyEscape {
					return nil
				}
				hold.Press(controls, k)
			case *tcell.EventMouse:
				x, y := ev.Position()
				pt := p.CellToWorld(x, y)
				controls.MouseMove(pt.X, pt.Y)
				if ev.Buttons()&tcell.Button1 != 0 {
					controls.MousePress(ui.MouseEvent{X: pt.X, Y: pt.Y, Button: ui.MouseLeft})
				}
			case *tcell.EventResize:
				p.Resize()
				screen.Sync()
			}
		case <-ticker.C:
			hold.Tick(controls)
			session.Update()
			p.canvas.Clear()
			session.Draw(p.canvas)
			p.Present()
		}
	}
}
