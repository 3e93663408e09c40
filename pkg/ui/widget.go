// Package ui builds the on-screen interface as a tree of widgets. Each
// widget owns leaf items drawn relative to its world position, registers
// itself with the session's widget index while visible, and is redrawn from
// the render engine's cache until something marks it dirty.
package ui

import (
	"slices"

	"github.com/google/uuid"

	"github.com/opd-ai/go-spaceman/pkg/physics"
	"github.com/opd-ai/go-spaceman/pkg/render"
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// Modifier is a bit set of held modifier keys.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
)

// MouseEvent is a mouse press in world units.
type MouseEvent struct {
	X, Y   float64
	Button MouseButton
	Mods   Modifier
}

// Point returns the event position.
func (e MouseEvent) Point() physics.Vector2D { return physics.Vec(e.X, e.Y) }

// Pressable items can consume mouse presses.
type Pressable interface {
	OnMousePress(ev MouseEvent) bool
}

// Widget is a node of the interface tree.
type Widget struct {
	id       uuid.UUID
	index    *render.WidgetIndex
	parent   *Widget
	children []*Widget

	position physics.Vector2D
	depth    int
	visible  bool
	dirty    bool

	sprites []Item
	shapes  []Item
	paints  []Item
}

// NewWidget creates a hidden widget at the local position pos. A non-nil
// parent adopts it and lends it its depth.
func NewWidget(index *render.WidgetIndex, parent *Widget, pos physics.Vector2D) *Widget {
	w := &Widget{id: uuid.New(), index: index, position: pos}
	if parent != nil {
		w.depth = parent.depth
		parent.AddChild(w)
	}
	return w
}

// WidgetID returns the widget's identity.
func (w *Widget) WidgetID() uuid.UUID { return w.id }

// Parent returns the owning widget, or nil for a root.
func (w *Widget) Parent() *Widget { return w.parent }

// Children returns the child widgets in insertion order.
func (w *Widget) Children() []*Widget { return w.children }

// AddChild adopts c. A visible parent shows c.
func (w *Widget) AddChild(c *Widget) {
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	c.parent = w
	w.children = append(w.children, c)
	if w.visible {
		c.Show()
	}
	w.SetDirty(true)
}

// RemoveChild releases c and reports whether it was a child.
func (w *Widget) RemoveChild(c *Widget) bool {
	i := slices.Index(w.children, c)
	if i < 0 {
		return false
	}
	w.children = slices.Delete(w.children, i, i+1)
	c.parent = nil
	w.SetDirty(true)
	return true
}

// Add attaches item under every draw method it supports.
func (w *Widget) Add(item Item) {
	item.attach(w)
	m := render.Capabilities(item)
	if m.Has(render.MethodSprite) {
		w.sprites = append(w.sprites, item)
	}
	if m.Has(render.MethodShape) {
		w.shapes = append(w.shapes, item)
	}
	if m.Has(render.MethodPaint) {
		w.paints = append(w.paints, item)
	}
	w.SetDirty(true)
}

// Remove detaches item and reports whether it was attached.
func (w *Widget) Remove(item Item) bool {
	removed := false
	for _, bucket := range []*[]Item{&w.sprites, &w.shapes, &w.paints} {
		if i := slices.Index(*bucket, item); i >= 0 {
			*bucket = slices.Delete(*bucket, i, i+1)
			removed = true
		}
	}
	if removed {
		item.attach(nil)
		w.SetDirty(true)
	}
	return removed
}

// Items returns every attached item once, in sprite, shape and paint
// order.
func (w *Widget) Items() []Item {
	var items []Item
	for _, bucket := range [][]Item{w.sprites, w.shapes, w.paints} {
		for _, it := range bucket {
			if !slices.Contains(items, it) {
				items = append(items, it)
			}
		}
	}
	return items
}

// Show makes w and its descendants visible.
func (w *Widget) Show() {
	w.visible = true
	if w.index != nil {
		w.index.Register(w)
	}
	w.SetDirty(true)
	for _, c := range w.children {
		c.Show()
	}
}

// Hide makes w and its descendants invisible.
func (w *Widget) Hide() {
	w.visible = false
	if w.index != nil {
		w.index.Unregister(w)
	}
	w.SetDirty(true)
	for _, c := range w.children {
		c.Hide()
	}
}

// Visible reports whether w is shown.
func (w *Widget) Visible() bool { return w.visible }

// Position returns the offset from the parent.
func (w *Widget) Position() physics.Vector2D { return w.position }

// SetPosition moves w relative to its parent.
func (w *Widget) SetPosition(p physics.Vector2D) {
	w.position = p
	w.SetDirty(true)
	w.markSubtreeDirty()
}

// markSubtreeDirty marks every descendant dirty. Their world geometry
// follows w, and they may be cached under other depths.
func (w *Widget) markSubtreeDirty() {
	for _, c := range w.children {
		c.dirty = true
		c.markSubtreeDirty()
	}
}

// WorldPosition is the sum of the positions of w and its ancestors.
func (w *Widget) WorldPosition() physics.Vector2D {
	if w.parent == nil {
		return w.position
	}
	return w.position.Add(w.parent.WorldPosition())
}

// Depth returns the draw order key.
func (w *Widget) Depth() int { return w.depth }

// SetDepth changes the draw order key, moving w in the index while shown.
func (w *Widget) SetDepth(z int) {
	old := w.depth
	if old == z {
		return
	}
	w.depth = z
	if w.visible && w.index != nil {
		w.index.Move(w, old)
	}
	w.SetDirty(true)
}

// Dirty reports whether w needs its cached batches rebuilt.
func (w *Widget) Dirty() bool { return w.dirty }

// SetDirty sets the dirty flag. Marking dirty also marks every ancestor;
// clearing affects only w.
func (w *Widget) SetDirty(d bool) {
	w.dirty = d
	if d && w.parent != nil {
		w.parent.SetDirty(true)
	}
}

// WidgetSprites returns the sprites of the sprite items.
func (w *Widget) WidgetSprites() []*render.Sprite {
	if !w.visible {
		return nil
	}
	var out []*render.Sprite
	for _, it := range w.sprites {
		if s := it.(render.SpriteSource).Sprite(); s != nil {
			out = append(out, s)
		}
	}
	return out
}

// WidgetShapes returns the shapes of the shape items.
func (w *Widget) WidgetShapes(fc *render.FrameContext) []render.Shape {
	if !w.visible {
		return nil
	}
	var out []render.Shape
	for _, it := range w.shapes {
		out = append(out, it.(render.ShapeSource).Shapes(fc)...)
	}
	return out
}

// Paint runs the paint items.
func (w *Widget) Paint(fc *render.FrameContext) {
	if !w.visible {
		return
	}
	for _, it := range w.paints {
		it.(render.Painter).Paint(fc)
	}
}

// OnMousePress offers ev to the items of w, then to its children in order,
// and reports whether anything consumed it.
func (w *Widget) OnMousePress(ev MouseEvent) bool {
	if !w.visible {
		return false
	}
	pt := ev.Point()
	for _, it := range w.Items() {
		p, ok := it.(Pressable)
		if !ok || !it.WorldGeometry().Contains(pt) {
			continue
		}
		if p.OnMousePress(ev) {
			return true
		}
	}
	for _, c := range w.children {
		if c.OnMousePress(ev) {
			return true
		}
	}
	return false
}

// Size returns the extent of every item and descendant, measured from the
// world position of w.
func (w *Widget) Size() (width, height float64) {
	b, ok := w.extent()
	if !ok {
		return 0, 0
	}
	origin := w.WorldPosition()
	return b.Right() - origin.X, b.Bottom() - origin.Y
}

func (w *Widget) extent() (physics.Rectangle, bool) {
	var b physics.Rectangle
	found := false
	grow := func(r physics.Rectangle) {
		if !found {
			b, found = r, true
			return
		}
		b = b.United(r)
	}
	for _, it := range w.Items() {
		grow(it.WorldGeometry())
	}
	for _, c := range w.children {
		if r, ok := c.extent(); ok {
			grow(r)
		}
	}
	return b, found
}
