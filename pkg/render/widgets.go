// pkg/render/widgets.go
package render

import (
	"slices"

	"github.com/google/uuid"
)

// Widget is a UI node as the Engine sees it: an identity, a depth, a dirty
// flag and the batches it contributes.
type Widget interface {
	WidgetID() uuid.UUID
	Depth() int
	Dirty() bool
	SetDirty(bool)
	WidgetSprites() []*Sprite
	WidgetShapes(fc *FrameContext) []Shape
	Paint(fc *FrameContext)
}

// WidgetIndex holds the visible widgets of a session grouped by depth, in
// registration order within each depth.
type WidgetIndex struct {
	layers map[int][]Widget
}

// NewWidgetIndex creates an empty index.
func NewWidgetIndex() *WidgetIndex {
	return &WidgetIndex{layers: make(map[int][]Widget)}
}

// Register adds w at its current depth. Registering twice is a no-op.
func (x *WidgetIndex) Register(w Widget) {
	z := w.Depth()
	if slices.Contains(x.layers[z], w) {
		return
	}
	x.layers[z] = append(x.layers[z], w)
}

// Unregister removes w from the depth it was registered at. It reports
// whether w was present.
func (x *WidgetIndex) Unregister(w Widget) bool {
	if x.removeAt(w.Depth(), w) {
		return true
	}
	for z := range x.layers {
		if x.removeAt(z, w) {
			return true
		}
	}
	return false
}

// Move re-registers w after its depth changed from old.
func (x *WidgetIndex) Move(w Widget, old int) {
	if !x.removeAt(old, w) {
		x.Unregister(w)
	}
	x.Register(w)
}

func (x *WidgetIndex) removeAt(z int, w Widget) bool {
	group := x.layers[z]
	i := slices.Index(group, w)
	if i < 0 {
		return false
	}
	group = slices.Delete(group, i, i+1)
	if len(group) == 0 {
		delete(x.layers, z)
	} else {
		x.layers[z] = group
	}
	return true
}

// Contains reports whether w is registered.
func (x *WidgetIndex) Contains(w Widget) bool {
	return slices.Contains(x.layers[w.Depth()], w)
}

// Depths returns the occupied depths in ascending order.
func (x *WidgetIndex) Depths() []int {
	depths := make([]int, 0, len(x.layers))
	for z := range x.layers {
		depths = append(depths, z)
	}
	slices.Sort(depths)
	return depths
}

// At returns the widgets registered at depth z. Callers must not modify it.
func (x *WidgetIndex) At(z int) []Widget {
	return x.layers[z]
}

// Len returns the number of registered widgets.
func (x *WidgetIndex) Len() int {
	n := 0
	for _, group := range x.layers {
		n += len(group)
	}
	return n
}
