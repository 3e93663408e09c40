package ui

import (
	"image/color"
	"testing"

	"github.com/opd-ai/go-spaceman/pkg/physics"
	"github.com/opd-ai/go-spaceman/pkg/render"
)

// tapItem records presses and consumes them when consume is set.
type tapItem struct {
	ItemBase
	name    string
	consume bool
	log     *[]string
}

func newTap(name string, r physics.Rectangle, consume bool, log *[]string) *tapItem {
	return &tapItem{ItemBase: ItemBase{geometry: r}, name: name, consume: consume, log: log}
}

func (t *tapItem) Shapes(*render.FrameContext) []render.Shape {
	return []render.Shape{render.FilledRect(t.WorldGeometry(), color.White)}
}

func (t *tapItem) OnMousePress(MouseEvent) bool {
	*t.log = append(*t.log, t.name)
	return t.consume
}

func TestWidget_WorldPosition(t *testing.T) {
	root := NewWidget(nil, nil, physics.Vec(10, 20))
	mid := NewWidget(nil, root, physics.Vec(1, 2))
	leaf := NewWidget(nil, mid, physics.Vec(100, 200))

	if got := leaf.WorldPosition(); got != physics.Vec(111, 222) {
		t.Errorf("WorldPosition() = %v, want (111, 222)", got)
	}
	root.SetPosition(physics.Vec(0, 0))
	if got := leaf.WorldPosition(); got != physics.Vec(101, 202) {
		t.Errorf("WorldPosition() after move = %v, want (101, 202)", got)
	}
}

func TestWidget_MovingParentRebuildsChildDepth(t *testing.T) {
	index := render.NewWidgetIndex()
	eng := render.NewEngine(index, nil)
	root := NewWidget(index, nil, physics.Vector2D{})
	child := NewWidget(index, root, physics.Vector2D{})
	child.SetDepth(1)
	child.Add(NewBar(physics.Rect(0, 0, 10, 10), color.White))
	root.Show()

	canvas := render.NewNullCanvas(200, 200, nil)
	fc := &render.FrameContext{Canvas: canvas}
	eng.Render(fc)

	root.SetPosition(physics.Vec(100, 100))
	canvas.Reset()
	eng.Render(fc)

	if got := eng.Rebuilds(1); got != 2 {
		t.Errorf("Rebuilds(1) = %d, want 2", got)
	}
	var frame *render.Shape
	for _, call := range canvas.Calls {
		if call.Op == render.OpShapes && len(call.Shapes) > 0 {
			frame = &call.Shapes[0]
		}
	}
	if frame == nil {
		t.Fatal("no shapes drawn")
	}
	if want := physics.Rect(100, 100, 10, 10); frame.Rect != want {
		t.Errorf("bar rect = %+v, want %+v", frame.Rect, want)
	}
}

func TestWidget_ShowHideRecursive(t *testing.T) {
	index := render.NewWidgetIndex()
	root := NewWidget(index, nil, physics.Vector2D{})
	child := NewWidget(index, root, physics.Vector2D{})
	grandchild := NewWidget(index, child, physics.Vector2D{})

	root.Show()
	for i, w := range []*Widget{root, child, grandchild} {
		if !w.Visible() || !index.Contains(w) {
			t.Errorf("widget %d not shown and registered", i)
		}
	}
	if index.Len() != 3 {
		t.Errorf("index.Len() = %d, want 3", index.Len())
	}

	root.Hide()
	for i, w := range []*Widget{root, child, grandchild} {
		if w.Visible() || index.Contains(w) {
			t.Errorf("widget %d still shown or registered", i)
		}
	}
	if !root.Dirty() {
		t.Error("Hide() did not mark dirty")
	}
}

func TestWidget_AddChildToVisibleParent(t *testing.T) {
	index := render.NewWidgetIndex()
	root := NewWidget(index, nil, physics.Vector2D{})
	root.Show()
	late := NewWidget(index, root, physics.Vector2D{})
	if !late.Visible() || !index.Contains(late) {
		t.Error("child added to visible parent is hidden")
	}
	if !root.RemoveChild(late) || late.Parent() != nil {
		t.Error("RemoveChild() did not release child")
	}
	if root.RemoveChild(late) {
		t.Error("RemoveChild() of non-child = true")
	}
}

func TestWidget_SetDepthReregisters(t *testing.T) {
	index := render.NewWidgetIndex()
	w := NewWidget(index, nil, physics.Vector2D{})
	w.SetDepth(2)
	if index.Contains(w) {
		t.Fatal("hidden widget registered by SetDepth")
	}
	w.Show()
	w.SetDepth(5)
	if got := index.At(5); len(got) != 1 || got[0] != render.Widget(w) {
		t.Errorf("index.At(5) = %v, want [w]", got)
	}
	if len(index.At(2)) != 0 {
		t.Error("widget left at old depth")
	}
}

func TestWidget_DirtyPropagation(t *testing.T) {
	root := NewWidget(nil, nil, physics.Vector2D{})
	child := NewWidget(nil, root, physics.Vector2D{})
	root.SetDirty(false)
	child.SetDirty(false)

	bar := NewBar(physics.Rect(0, 0, 10, 2), color.White)
	child.Add(bar)
	root.SetDirty(false)
	child.SetDirty(false)

	bar.SetPercent(0.5)
	if !child.Dirty() || !root.Dirty() {
		t.Errorf("dirty = child %v, root %v, want both", child.Dirty(), root.Dirty())
	}

	child.SetDirty(false)
	if !root.Dirty() {
		t.Error("clearing child cleared root")
	}
}

func TestWidget_OnMousePress(t *testing.T) {
	var log []string
	root := NewWidget(nil, nil, physics.Vec(100, 100))
	root.Add(newTap("root-miss", physics.Rect(50, 50, 5, 5), true, &log))
	root.Add(newTap("root-pass", physics.Rect(0, 0, 20, 20), false, &log))
	first := NewWidget(nil, root, physics.Vec(0, 0))
	first.Add(newTap("first", physics.Rect(0, 0, 20, 20), true, &log))
	second := NewWidget(nil, root, physics.Vec(0, 0))
	second.Add(newTap("second", physics.Rect(0, 0, 20, 20), true, &log))

	hit := MouseEvent{X: 105, Y: 105}
	if root.OnMousePress(hit) {
		t.Error("hidden widget consumed press")
	}

	root.Show()
	if !root.OnMousePress(hit) {
		t.Fatal("OnMousePress() = false, want true")
	}
	want := []string{"root-pass", "first"}
	if len(log) != len(want) || log[0] != want[0] || log[1] != want[1] {
		t.Errorf("press order = %v, want %v", log, want)
	}

	log = nil
	if root.OnMousePress(MouseEvent{X: 0, Y: 0}) || len(log) != 0 {
		t.Errorf("press outside = %v, want nothing", log)
	}
}

func TestWidget_Batches(t *testing.T) {
	w := NewWidget(nil, nil, physics.Vec(5, 5))
	b := NewButton("go", physics.Rect(0, 0, 40, 20))
	w.Add(b)

	fc := &render.FrameContext{Canvas: render.NewNullCanvas(100, 100, nil)}
	if got := w.WidgetShapes(fc); got != nil {
		t.Errorf("hidden WidgetShapes() = %v, want nil", got)
	}

	w.Show()
	shapes := w.WidgetShapes(fc)
	if len(shapes) != 1 || shapes[0].Rect != physics.Rect(5, 5, 40, 20) {
		t.Errorf("WidgetShapes() = %v, want background at (5, 5)", shapes)
	}
	w.Paint(fc)
	if got := fc.Canvas.(*render.NullCanvas).Count(render.OpText); got != 1 {
		t.Errorf("text draws = %d, want 1", got)
	}
	if items := w.Items(); len(items) != 1 {
		t.Errorf("Items() = %d, want 1 for a shape and paint item", len(items))
	}

	if !w.Remove(b) || w.Remove(b) {
		t.Error("Remove() did not report membership")
	}
	if len(w.WidgetShapes(fc)) != 0 {
		t.Error("removed item still drawn")
	}
}

func TestWidget_Size(t *testing.T) {
	w := NewWidget(nil, nil, physics.Vec(100, 100))
	w.Add(NewBar(physics.Rect(0, 0, 10, 5), color.White))
	c := NewWidget(nil, w, physics.Vec(20, 0))
	c.Add(NewBar(physics.Rect(0, 0, 10, 30), color.White))

	if gw, gh := w.Size(); gw != 30 || gh != 30 {
		t.Errorf("Size() = %v, %v, want 30, 30", gw, gh)
	}
	if gw, gh := NewWidget(nil, nil, physics.Vector2D{}).Size(); gw != 0 || gh != 0 {
		t.Errorf("empty Size() = %v, %v", gw, gh)
	}
}
