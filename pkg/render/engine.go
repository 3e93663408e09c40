// pkg/render/engine.go
package render

import (
	"context"
	"slices"

	"github.com/cespare/xxhash/v2"

	"github.com/opd-ai/go-spaceman/pkg/logging"
)

// Layer holds the drawables at one depth.
type Layer struct {
	depth    int
	sprites  SpriteBatch
	painters []Painter
	shapes   []ShapeSource
}

// Depth returns the layer key.
func (l *Layer) Depth() int { return l.depth }

// Sprites returns the layer's sprite batch contents.
func (l *Layer) Sprites() []*Sprite { return l.sprites.Sprites() }

// Painters returns the layer's paint objects in insertion order.
func (l *Layer) Painters() []Painter { return l.painters }

// ShapeSources returns the layer's shape producers in insertion order.
func (l *Layer) ShapeSources() []ShapeSource { return l.shapes }

// Len returns the number of entries across all categories.
func (l *Layer) Len() int {
	return l.sprites.Len() + len(l.painters) + len(l.shapes)
}

type widgetCache struct {
	key     uint64
	sprites []*Sprite
	shapes  []Shape
}

// Engine is a scene: game depth layers drawn in ascending order, then the
// widget layers of its WidgetIndex on top.
type Engine struct {
	layers   map[int]*Layer
	depths   []int
	widgets  *WidgetIndex
	caches   map[int]*widgetCache
	rebuilds map[int]int
	logger   *logging.Logger
}

// NewEngine creates an empty scene drawing the widgets of index.
func NewEngine(index *WidgetIndex, logger *logging.Logger) *Engine {
	if index == nil {
		index = NewWidgetIndex()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Engine{
		layers:   make(map[int]*Layer),
		widgets:  index,
		caches:   make(map[int]*widgetCache),
		rebuilds: make(map[int]int),
		logger:   logger.Component("render"),
	}
}

// Widgets returns the widget index drawn by this engine.
func (e *Engine) Widgets() *WidgetIndex { return e.widgets }

func (e *Engine) layer(z int) *Layer {
	l, ok := e.layers[z]
	if !ok {
		l = &Layer{depth: z}
		e.layers[z] = l
		i, _ := slices.BinarySearch(e.depths, z)
		e.depths = slices.Insert(e.depths, i, z)
	}
	return l
}

// AddObject places d in the layer for its depth, under every draw method it
// supports, and marks it in scene. Callers check InScene to avoid adding an
// object twice.
func (e *Engine) AddObject(d Drawable) {
	l := e.layer(d.Depth())
	m := Capabilities(d)

	if s, ok := d.(SpriteSource); ok {
		if sprite := s.Sprite(); sprite != nil {
			l.sprites.Add(sprite)
		}
	}
	if p, ok := d.(Painter); ok {
		l.painters = append(l.painters, p)
	}
	if s, ok := d.(ShapeSource); ok {
		l.shapes = append(l.shapes, s)
	}
	if m == 0 {
		e.logger.Warn(context.Background(), "drawable has no draw method", "depth", d.Depth())
	}

	d.SetInScene(true)
}

// RemoveObject takes d out of its depth layer and marks it out of scene. It
// reports whether anything was removed; an unknown depth is not an error.
func (e *Engine) RemoveObject(d Drawable) bool {
	d.SetInScene(false)

	l, ok := e.layers[d.Depth()]
	if !ok {
		return false
	}

	removed := false
	if s, ok := d.(SpriteSource); ok {
		if sprite := s.Sprite(); sprite != nil {
			removed = l.sprites.Remove(sprite) || removed
		}
	}
	if p, ok := d.(Painter); ok {
		if i := slices.IndexFunc(l.painters, func(x Painter) bool { return x == p }); i >= 0 {
			l.painters = slices.Delete(l.painters, i, i+1)
			removed = true
		}
	}
	if s, ok := d.(ShapeSource); ok {
		if i := slices.IndexFunc(l.shapes, func(x ShapeSource) bool { return x == s }); i >= 0 {
			l.shapes = slices.Delete(l.shapes, i, i+1)
			removed = true
		}
	}
	return removed
}

// Layer returns the layer at depth z, if one was ever created.
func (e *Engine) Layer(z int) (*Layer, bool) {
	l, ok := e.layers[z]
	return l, ok
}

// Depths returns every game layer depth in ascending order.
func (e *Engine) Depths() []int {
	return slices.Clone(e.depths)
}

// Rebuilds returns how many times the widget batch at depth z was rebuilt.
func (e *Engine) Rebuilds(z int) int {
	return e.rebuilds[z]
}

// Render draws one frame.
func (e *Engine) Render(fc *FrameContext) {
	if fc.Canvas == nil {
		fc.Canvas = discardCanvas{}
	}
	for _, z := range e.depths {
		e.renderLayer(e.layers[z], fc)
	}
	e.renderWidgets(fc)
}

func (e *Engine) renderLayer(l *Layer, fc *FrameContext) {
	if l.sprites.Len() > 0 {
		fc.Canvas.DrawSprites(l.sprites.Sprites())
	}
	for _, p := range l.painters {
		p.Paint(fc)
	}
	if len(l.shapes) == 0 {
		return
	}
	var shapes []Shape
	for _, s := range l.shapes {
		shapes = append(shapes, s.Shapes(fc)...)
	}
	if len(shapes) > 0 {
		fc.Canvas.DrawShapes(shapes)
	}
}

func (e *Engine) renderWidgets(fc *FrameContext) {
	depths := e.widgets.Depths()
	for z := range e.caches {
		if _, ok := slices.BinarySearch(depths, z); !ok {
			delete(e.caches, z)
		}
	}

	for _, z := range depths {
		group := e.widgets.At(z)
		key := groupKey(group)

		c := e.caches[z]
		if c == nil || c.key != key || anyDirty(group) {
			c = e.rebuild(z, key, group, fc)
		}

		if len(c.sprites) > 0 {
			fc.Canvas.DrawSprites(c.sprites)
		}
		if len(c.shapes) > 0 {
			fc.Canvas.DrawShapes(c.shapes)
		}
		for _, w := range group {
			w.Paint(fc)
		}
	}
}

func (e *Engine) rebuild(z int, key uint64, group []Widget, fc *FrameContext) *widgetCache {
	c := &widgetCache{key: key}
	for _, w := range group {
		c.sprites = append(c.sprites, w.WidgetSprites()...)
		c.shapes = append(c.shapes, w.WidgetShapes(fc)...)
	}
	for _, w := range group {
		w.SetDirty(false)
	}
	e.caches[z] = c
	e.rebuilds[z]++
	return c
}

// groupKey identifies the exact ordered membership of a widget group.
func groupKey(group []Widget) uint64 {
	d := xxhash.New()
	for _, w := range group {
		id := w.WidgetID()
		d.Write(id[:])
	}
	return d.Sum64()
}

func anyDirty(group []Widget) bool {
	return slices.ContainsFunc(group, Widget.Dirty)
}
