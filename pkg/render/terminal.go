// pkg/render/terminal.go
package render

import (
	"image/color"
	"math"
	"strings"

	"github.com/opd-ai/go-spaceman/pkg/physics"
)

// Cell is one character of the terminal view.
type Cell struct {
	Rune  rune
	Color color.Color
}

// TerminalCanvas rasterizes the scene into a grid of runes. The world view
// of worldW by worldH units is mapped onto cols by rows cells.
type TerminalCanvas struct {
	cols   int
	rows   int
	worldW int
	worldH int
	cells  [][]Cell
}

// NewTerminalCanvas creates a canvas of cols by rows cells showing a world
// view of worldW by worldH units.
func NewTerminalCanvas(cols, rows, worldW, worldH int) *TerminalCanvas {
	c := &TerminalCanvas{cols: cols, rows: rows, worldW: worldW, worldH: worldH}
	c.cells = make([][]Cell, rows)
	for y := range c.cells {
		c.cells[y] = make([]Cell, cols)
	}
	c.Clear()
	return c
}

// Resize changes the cell grid, keeping the world view.
func (c *TerminalCanvas) Resize(cols, rows int) {
	if cols == c.cols && rows == c.rows {
		return
	}
	*c = *NewTerminalCanvas(cols, rows, c.worldW, c.worldH)
}

// Clear blanks every cell.
func (c *TerminalCanvas) Clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = Cell{Rune: ' ', Color: color.White}
		}
	}
}

// worldToCell converts world coordinates to cell coordinates. Row 0 is the
// top of the view.
func (c *TerminalCanvas) worldToCell(pos physics.Vector2D) (int, int) {
	sx := float64(c.worldW) / float64(c.cols)
	sy := float64(c.worldH) / float64(c.rows)
	x := int(math.Floor(pos.X / sx))
	y := c.rows - 1 - int(math.Floor(pos.Y/sy))
	return x, y
}

func (c *TerminalCanvas) set(x, y int, r rune, col color.Color) {
	if x < 0 || x >= c.cols || y < 0 || y >= c.rows {
		return
	}
	if col == nil {
		col = color.White
	}
	c.cells[y][x] = Cell{Rune: r, Color: col}
}

// headingGlyph picks an arrow for a heading in degrees, zero pointing up.
func headingGlyph(angle float64) rune {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	switch {
	case a < 45 || a >= 315:
		return '^'
	case a < 135:
		return '<'
	case a < 225:
		return 'v'
	default:
		return '>'
	}
}

// DrawSprites implements Canvas. Each sprite becomes one arrow at its center.
func (c *TerminalCanvas) DrawSprites(sprites []*Sprite) {
	for _, s := range sprites {
		x, y := c.worldToCell(s.Center)
		c.set(x, y, headingGlyph(s.Angle), s.Tint)
	}
}

// DrawShapes implements Canvas.
func (c *TerminalCanvas) DrawShapes(shapes []Shape) {
	for _, s := range shapes {
		switch s.Kind {
		case ShapeFilledRect:
			c.fillRect(s.Rect, '#', s.Color)
		case ShapeOutlineRect:
			c.outlineRect(s.Rect, s.Color)
		case ShapePoints:
			r := '.'
			if s.Size >= 4 {
				r = '*'
			}
			for _, p := range s.Points {
				x, y := c.worldToCell(p)
				c.set(x, y, r, s.Color)
			}
		case ShapeLine:
			if len(s.Points) >= 2 {
				c.line(s.Points[0], s.Points[1], s.Color)
			}
		}
	}
}

func (c *TerminalCanvas) fillRect(r physics.Rectangle, ch rune, col color.Color) {
	x0, y1 := c.worldToCell(r.Origin())
	x1, y0 := c.worldToCell(farCorner(r))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.set(x, y, ch, col)
		}
	}
}

// farCorner returns the last point inside r, since its far edges are
// exclusive.
func farCorner(r physics.Rectangle) physics.Vector2D {
	const edge = 1e-9
	return physics.Vec(r.Right()-edge, r.Bottom()-edge)
}

func (c *TerminalCanvas) outlineRect(r physics.Rectangle, col color.Color) {
	x0, y1 := c.worldToCell(r.Origin())
	x1, y0 := c.worldToCell(farCorner(r))
	for x := x0; x <= x1; x++ {
		c.set(x, y0, '-', col)
		c.set(x, y1, '-', col)
	}
	for y := y0; y <= y1; y++ {
		c.set(x0, y, '|', col)
		c.set(x1, y, '|', col)
	}
}

func (c *TerminalCanvas) line(a, b physics.Vector2D, col color.Color) {
	ax, ay := c.worldToCell(a)
	bx, by := c.worldToCell(b)
	steps := max(abs(bx-ax), abs(by-ay), 1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := ax + int(math.Round(float64(bx-ax)*t))
		y := ay + int(math.Round(float64(by-ay)*t))
		c.set(x, y, '+', col)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// DrawText implements Canvas.
func (c *TerminalCanvas) DrawText(text string, at physics.Vector2D, size float64, col color.Color) {
	x, y := c.worldToCell(at)
	for i, r := range []rune(text) {
		c.set(x+i, y, r, col)
	}
}

// Size implements Canvas.
func (c *TerminalCanvas) Size() (int, int) { return c.worldW, c.worldH }

// Cells returns the grid dimensions.
func (c *TerminalCanvas) Cells() (cols, rows int) { return c.cols, c.rows }

// Each calls fn for every cell, row by row from the top.
func (c *TerminalCanvas) Each(fn func(x, y int, cell Cell)) {
	for y, row := range c.cells {
		for x, cell := range row {
			fn(x, y, cell)
		}
	}
}

// String renders the grid as plain text, one line per row.
func (c *TerminalCanvas) String() string {
	var sb strings.Builder
	for _, row := range c.cells {
		for _, cell := range row {
			sb.WriteRune(cell.Rune)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
