// pkg/render/engo/canvas_test.go
package engo

import (
	"image"
	"image/color"
	"os"
	"testing"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-spaceman/pkg/physics"
	"github.com/opd-ai/go-spaceman/pkg/render"
)

func TestMain(m *testing.M) {
	// SetZIndex notifies the render system through the mailbox.
	engo.Mailbox = &engo.MessageManager{}
	os.Exit(m.Run())
}

type sinkEntry struct {
	render *common.RenderComponent
	space  *common.SpaceComponent
}

type fakeSink struct {
	entries map[uint64]sinkEntry
	order   []uint64
	removed int
}

func newFakeSink() *fakeSink {
	return &fakeSink{entries: make(map[uint64]sinkEntry)}
}

func (s *fakeSink) Add(basic *ecs.BasicEntity, r *common.RenderComponent, sp *common.SpaceComponent) {
	s.entries[basic.ID()] = sinkEntry{render: r, space: sp}
	s.order = append(s.order, basic.ID())
}

func (s *fakeSink) Remove(basic ecs.BasicEntity) {
	delete(s.entries, basic.ID())
	s.removed++
}

func (s *fakeSink) at(i int) sinkEntry { return s.entries[s.order[i]] }

func (s *fakeSink) visible() int {
	n := 0
	for _, e := range s.entries {
		if !e.render.Hidden {
			n++
		}
	}
	return n
}

func fakeUpload(count *int) UploadFunc {
	return func(image.Image) common.Drawable {
		*count++
		return common.Rectangle{}
	}
}

func TestCanvas_PoolsAndHides(t *testing.T) {
	sink := newFakeSink()
	c := NewCanvas(sink, 100, 100, nil, nil)
	rect := render.FilledRect(physics.Rect(0, 0, 10, 10), color.White)

	c.Begin()
	c.DrawShapes([]render.Shape{rect, rect, rect})
	c.End()
	if got := c.Pooled(); got != 3 {
		t.Errorf("Pooled() = %d, want 3", got)
	}
	if got := sink.visible(); got != 3 {
		t.Errorf("visible = %d, want 3", got)
	}

	c.Begin()
	c.DrawShapes([]render.Shape{rect})
	c.End()
	if got := c.Pooled(); got != 3 {
		t.Errorf("Pooled() after second frame = %d, want 3", got)
	}
	if got := c.Used(); got != 1 {
		t.Errorf("Used() = %d, want 1", got)
	}
	if got := sink.visible(); got != 1 {
		t.Errorf("visible after second frame = %d, want 1", got)
	}
	if len(sink.order) != 3 {
		t.Errorf("sink received %d entities, want 3", len(sink.order))
	}
}

func TestCanvas_FlipsY(t *testing.T) {
	sink := newFakeSink()
	c := NewCanvas(sink, 100, 100, nil, nil)

	c.Begin()
	c.DrawShapes([]render.Shape{render.FilledRect(physics.Rect(10, 20, 30, 40), color.White)})
	c.End()

	sp := sink.at(0).space
	want := engo.Point{X: 10, Y: 40}
	if sp.Position != want {
		t.Errorf("Position = %v, want %v", sp.Position, want)
	}
	if sp.Width != 30 || sp.Height != 40 {
		t.Errorf("size = %vx%v, want 30x40", sp.Width, sp.Height)
	}
}

func TestCanvas_DrawSprites(t *testing.T) {
	uploads := 0
	sink := newFakeSink()
	assets := NewAssetManager(fakeUpload(&uploads), nil)
	c := NewCanvas(sink, 100, 100, assets, nil)

	tex := render.NewTexture("hull", image.NewNRGBA(image.Rect(0, 0, 8, 4)), 1)
	s := render.SingleFrame(tex)
	s.Center = physics.Vec(50, 50)
	s.Scale = 2

	for i := 0; i < 2; i++ {
		c.Begin()
		c.DrawSprites([]*render.Sprite{s})
		c.End()
	}

	if uploads != 1 {
		t.Errorf("uploads = %d, want 1", uploads)
	}
	e := sink.at(0)
	if e.space.Width != 16 || e.space.Height != 8 {
		t.Errorf("size = %vx%v, want 16x8", e.space.Width, e.space.Height)
	}
	if want := (engo.Point{X: 42, Y: 46}); e.space.Position != want {
		t.Errorf("Position = %v, want %v", e.space.Position, want)
	}
	if want := (engo.Point{X: 2, Y: 2}); e.render.Scale != want {
		t.Errorf("Scale = %v, want %v", e.render.Scale, want)
	}
	if e.render.Color != color.White {
		t.Errorf("Color = %v, want white", e.render.Color)
	}
}

func TestCanvas_SkipsSpritesWithoutImage(t *testing.T) {
	sink := newFakeSink()
	c := NewCanvas(sink, 100, 100, nil, nil)
	s := render.SingleFrame(&render.Texture{Name: "empty", Scale: 1})

	c.Begin()
	c.DrawSprites([]*render.Sprite{s})
	c.End()

	if got := c.Pooled(); got != 0 {
		t.Errorf("Pooled() = %d, want 0", got)
	}
}

func TestCanvas_DrawShapes(t *testing.T) {
	tests := []struct {
		name     string
		shape    render.Shape
		entities int
		rotation float32
		width    float32
	}{
		{
			name:     "points",
			shape:    render.Points([]physics.Vector2D{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}, 2, color.White),
			entities: 3,
			width:    2,
		},
		{
			name:     "horizontal_line",
			shape:    render.Line(physics.Vec(0, 0), physics.Vec(10, 0), 2, color.White),
			entities: 1,
			width:    10,
		},
		{
			name:     "vertical_line",
			shape:    render.Line(physics.Vec(0, 0), physics.Vec(0, 10), 2, color.White),
			entities: 1,
			rotation: -90,
			width:    10,
		},
		{
			name:     "outline",
			shape:    render.OutlineRect(physics.Rect(0, 0, 20, 5), 1, color.White),
			entities: 1,
			width:    20,
		},
		{
			name:     "degenerate_line",
			shape:    render.Shape{Kind: render.ShapeLine, Points: []physics.Vector2D{{X: 1, Y: 1}}},
			entities: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := newFakeSink()
			c := NewCanvas(sink, 100, 100, nil, nil)
			c.Begin()
			c.DrawShapes([]render.Shape{tt.shape})
			c.End()

			if got := c.Pooled(); got != tt.entities {
				t.Fatalf("Pooled() = %d, want %d", got, tt.entities)
			}
			if tt.entities == 0 {
				return
			}
			sp := sink.at(0).space
			if sp.Rotation != tt.rotation {
				t.Errorf("Rotation = %v, want %v", sp.Rotation, tt.rotation)
			}
			if sp.Width != tt.width {
				t.Errorf("Width = %v, want %v", sp.Width, tt.width)
			}
		})
	}
}

func TestCanvas_OutlineIsTransparent(t *testing.T) {
	sink := newFakeSink()
	c := NewCanvas(sink, 100, 100, nil, nil)
	red := color.RGBA{255, 0, 0, 255}

	c.Begin()
	c.DrawShapes([]render.Shape{render.OutlineRect(physics.Rect(0, 0, 20, 5), 3, red)})
	c.End()

	e := sink.at(0)
	rect, ok := e.render.Drawable.(common.Rectangle)
	if !ok {
		t.Fatalf("Drawable = %T, want common.Rectangle", e.render.Drawable)
	}
	if rect.BorderWidth != 3 || rect.BorderColor != red {
		t.Errorf("border = %v %v, want 3 %v", rect.BorderWidth, rect.BorderColor, red)
	}
	if e.render.Color != color.Transparent {
		t.Errorf("Color = %v, want transparent", e.render.Color)
	}
}

func TestCanvas_DrawText(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		sink := newFakeSink()
		c := NewCanvas(sink, 100, 100, nil, nil)
		c.Begin()
		c.DrawText("hello", physics.Vec(10, 10), 12, color.White)
		c.End()
		if got := c.Pooled(); got != 0 {
			t.Errorf("Pooled() = %d, want 0", got)
		}
	})

	t.Run("enabled", func(t *testing.T) {
		fonts := 0
		newFont := func(size float64, col color.Color) (*common.Font, error) {
			fonts++
			return &common.Font{Size: size, FG: col}, nil
		}
		sink := newFakeSink()
		c := NewCanvas(sink, 100, 100, NewAssetManager(nil, newFont), nil)
		c.Begin()
		c.DrawText("hello", physics.Vec(10, 10), 12, color.White)
		c.DrawText("again", physics.Vec(10, 30), 12, color.White)
		c.End()

		if fonts != 1 {
			t.Errorf("fonts created = %d, want 1", fonts)
		}
		sp := sink.at(0).space
		if want := (engo.Point{X: 10, Y: 78}); sp.Position != want {
			t.Errorf("Position = %v, want %v", sp.Position, want)
		}
		text, ok := sink.at(1).render.Drawable.(common.Text)
		if !ok || text.Text != "again" {
			t.Errorf("Drawable = %#v, want text %q", sink.at(1).render.Drawable, "again")
		}
	})
}

func TestCanvas_Close(t *testing.T) {
	sink := newFakeSink()
	c := NewCanvas(sink, 100, 100, nil, nil)
	c.Begin()
	c.DrawShapes([]render.Shape{render.FilledRect(physics.Rect(0, 0, 1, 1), color.White)})
	c.End()

	c.Close()
	if sink.removed != 1 {
		t.Errorf("removed = %d, want 1", sink.removed)
	}
	if got := c.Pooled(); got != 0 {
		t.Errorf("Pooled() = %d, want 0", got)
	}
}

func TestAssetManager_Forget(t *testing.T) {
	uploads := 0
	am := NewAssetManager(fakeUpload(&uploads), nil)
	tex := render.NewTexture("t", image.NewNRGBA(image.Rect(0, 0, 1, 1)), 1)

	am.Drawable(tex)
	am.Forget()
	am.Drawable(tex)

	if uploads != 2 {
		t.Errorf("uploads = %d, want 2", uploads)
	}
	if got := am.Textures(); got != 1 {
		t.Errorf("Textures() = %d, want 1", got)
	}
}

func TestToNRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(2, 2, 6, 5))
	src.Set(2, 2, color.RGBA{255, 0, 0, 255})

	got := toNRGBA(src)
	if b := got.Bounds(); b.Dx() != 4 || b.Dy() != 3 || b.Min != (image.Point{}) {
		t.Errorf("Bounds() = %v, want 4x3 at origin", b)
	}
	if r, _, _, a := got.At(0, 0).RGBA(); r>>8 != 255 || a>>8 != 255 {
		t.Errorf("At(0, 0) = %v, want opaque red", got.At(0, 0))
	}
}
