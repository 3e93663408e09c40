// pkg/entity/entity_test.go
package entity

import (
	"image"
	"math"
	"testing"

	"github.com/opd-ai/go-spaceman/pkg/event"
	"github.com/opd-ai/go-spaceman/pkg/physics"
	"github.com/opd-ai/go-spaceman/pkg/prototype"
	"github.com/opd-ai/go-spaceman/pkg/render"
)

// fakeSprites hands out blank 32x32 sprites.
type fakeSprites struct{}

func (fakeSprites) Sprite(dir string) (*render.Sprite, error) {
	return render.SingleFrame(render.NewTexture(dir, image.NewNRGBA(image.Rect(0, 0, 32, 32)), 1)), nil
}

func (f fakeSprites) Basic(dir, name string) (*render.Sprite, error) {
	return f.Sprite(dir + "/" + name)
}

func (fakeSprites) MustSprite(load func() (*render.Sprite, error), name string) *render.Sprite {
	s, _ := load()
	return s
}

func testRegistry(t *testing.T) *prototype.Registry {
	t.Helper()
	reg := prototype.NewRegistry()
	must := func(err error) {
		if err != nil {
			t.Fatal(err)
		}
	}
	must(reg.AddEngine(&prototype.Engine{Name: "thruster", Power: 10, Sprite: "thruster"}))
	must(reg.AddEngine(&prototype.Engine{Name: "booster", Power: 5, Sprite: "booster"}))
	must(reg.AddHardpoint(&prototype.Hardpoint{Name: "gun", Type: prototype.Bullet, Damage: 5, Rate: 3, Speed: 8, Range: 400}))
	must(reg.AddHardpoint(&prototype.Hardpoint{Name: "beam", Type: prototype.Laser, Damage: 1, Rate: 3, Speed: 10, Range: 100, Automatic: true}))
	return reg
}

func testEnv(t *testing.T) (*Env, *render.Engine) {
	t.Helper()
	eng := render.NewEngine(render.NewWidgetIndex(), nil)
	return &Env{
		Scene:    eng,
		Registry: testRegistry(t),
		Sprites:  fakeSprites{},
		Scale:    1,
		Bus:      event.NewEventBus(),
	}, eng
}

func shipProto(class prototype.Class, engines ...string) *prototype.Ship {
	p := &prototype.Ship{
		Name:        "skalk",
		DisplayName: "Skalk",
		Class:       class,
		Hull:        100,
		Shield:      50,
		SpriteDir:   "ships/skalk",
		Hardpoints: []prototype.HardpointMount{
			{Name: "nose", Types: []prototype.HardpointType{prototype.Bullet}, Location: [2]int{16, 0}, Command: "fire_primary", Default: "gun"},
			{Name: "tail", Types: []prototype.HardpointType{prototype.Laser}, Location: [2]int{16, 32}, Command: "fire_secondary", Default: "beam"},
		},
	}
	for _, e := range engines {
		p.Engines = append(p.Engines, prototype.EngineMount{Location: [2]int{16, 30}, Size: prototype.Wide, Direction: prototype.South, Default: e})
	}
	return p
}

func newTestShip(t *testing.T, env *Env, class prototype.Class, engines ...string) *Ship {
	t.Helper()
	s, err := NewShip(env, shipProto(class, engines...), physics.Vec(0, 0))
	if err != nil {
		t.Fatalf("NewShip() error = %v", err)
	}
	return s
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func approxVec(a, b physics.Vector2D) bool { return approx(a.X, b.X) && approx(a.Y, b.Y) }
