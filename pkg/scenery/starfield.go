// Package scenery holds background paint objects.
package scenery

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-spaceman/pkg/physics"
	"github.com/opd-ai/go-spaceman/pkg/render"
)

// Depth is where the starfield sits, behind every ship.
const Depth = -100

// StarsPerDensity is the star count at density 1.
const StarsPerDensity = 100

// Star sizes and the fraction of drift each layer follows.
const (
	BigStarSize   = 4
	SmallStarSize = 2
	BigParallax   = 0.5
	SmallParallax = 0.2
)

var (
	// Azure colors the near layer.
	Azure = color.RGBA{R: 240, G: 255, B: 255, A: 255}
	// DimGrey colors the far layer.
	DimGrey = color.RGBA{R: 105, G: 105, B: 105, A: 255}
)

// Mover reports the world-space motion the stars drift against.
type Mover interface {
	WorldVelocity() physics.Vector2D
}

// Starfield paints two parallax layers of stars that wrap at the view edges.
type Starfield struct {
	render.Base
	width, height float64
	big, small    []physics.Vector2D
	follow        Mover
}

// NewStarfield scatters StarsPerDensity*density stars over a width by
// height view. The first third of them are big. follow may be nil.
func NewStarfield(width, height int, density float64, rng *rand.Rand, follow Mover) *Starfield {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	n := int(math.Round(StarsPerDensity * max(density, 0)))

	f := &Starfield{width: float64(width), height: float64(height), follow: follow}
	f.SetDepth(Depth)
	for i := 0; i < n; i++ {
		p := physics.Vec(rng.Float64()*f.width, rng.Float64()*f.height)
		if i < n/3 {
			f.big = append(f.big, p)
		} else {
			f.small = append(f.small, p)
		}
	}
	return f
}

// Len returns the number of stars.
func (f *Starfield) Len() int { return len(f.big) + len(f.small) }

// Big returns the near layer positions.
func (f *Starfield) Big() []physics.Vector2D { return f.big }

// Small returns the far layer positions.
func (f *Starfield) Small() []physics.Vector2D { return f.small }

// Follow changes what the stars drift against.
func (f *Starfield) Follow(m Mover) { f.follow = m }

// Update drifts both layers opposite to the followed velocity.
func (f *Starfield) Update(dt float64) {
	if f.follow == nil {
		return
	}
	v := f.follow.WorldVelocity()
	if v == (physics.Vector2D{}) {
		return
	}
	f.drift(f.big, v.Scale(-BigParallax))
	f.drift(f.small, v.Scale(-SmallParallax))
}

func (f *Starfield) drift(stars []physics.Vector2D, d physics.Vector2D) {
	for i, p := range stars {
		p = p.Add(d)
		stars[i] = physics.Vec(wrap(p.X, f.width), wrap(p.Y, f.height))
	}
}

func wrap(v, size float64) float64 {
	if size <= 0 {
		return v
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	return v
}

// Paint draws the far layer then the near one.
func (f *Starfield) Paint(fc *render.FrameContext) {
	if f.Len() == 0 {
		return
	}
	var shapes []render.Shape
	if len(f.small) > 0 {
		shapes = append(shapes, render.Points(f.small, SmallStarSize, DimGrey))
	}
	if len(f.big) > 0 {
		shapes = append(shapes, render.Points(f.big, BigStarSize, Azure))
	}
	fc.Canvas.DrawShapes(shapes)
}
