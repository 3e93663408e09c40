// pkg/game/game_test.go
package game

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/opd-ai/go-spaceman/pkg/config"
	"github.com/opd-ai/go-spaceman/pkg/entity"
	"github.com/opd-ai/go-spaceman/pkg/event"
	"github.com/opd-ai/go-spaceman/pkg/logging"
	"github.com/opd-ai/go-spaceman/pkg/physics"
	"github.com/opd-ai/go-spaceman/pkg/render"
	"github.com/opd-ai/go-spaceman/pkg/scenery"
)

const enginesYAML = `
- name: Basic Thruster
  power: 10
  sprite: thruster
`

const hardpointsYAML = `
- name: Pea Shooter
  description: Fires small slugs
  type: bullet
  damage: 5
  rate: 10
- name: Beam
  description: A steady beam
  type: laser
  damage: 1
  rate: 2
  speed: 10
  range: 100
  automatic: true
`

const skalkYAML = `
display_name: Skalk
class: A
description: A nimble scout
mobile: true
hull: 100
shield: 50
fuel: 200
hardpoints:
  - name: nose
    types: [bullet]
    location: [16, 2]
    direction: 0
    command: fire_primary
    default: Pea Shooter
  - name: tail
    types: [laser]
    location: [16, 30]
    direction: 180
    command: fire_secondary
    default: Beam
engines:
  - location: [16, 30]
    size: w
    default: Basic Thruster
`

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func dataFS(t *testing.T) fstest.MapFS {
	t.Helper()
	return fstest.MapFS{
		"components/engines/basic.yaml":    {Data: []byte(enginesYAML)},
		"components/engines/thruster.png":  {Data: pngBytes(t, 8, 8)},
		"components/hardpoints/basic.yaml": {Data: []byte(hardpointsYAML)},
		"ships/Skalk/info.yaml":            {Data: []byte(skalkYAML)},
		"ships/Skalk/life/static.png":      {Data: pngBytes(t, 32, 32)},
		"objects/interface/item_box.png":   {Data: pngBytes(t, 32, 32)},
	}
}

func testSettings() *config.Settings {
	s := config.DefaultConfig()
	s.Resolution = [2]int{1024, 768}
	return s
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := InitializeSession(context.Background(), testSettings(), logging.Discard(), dataFS(t))
	if err != nil {
		t.Fatalf("InitializeSession() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

// recorder collects bus events by type.
type recorder struct {
	events map[event.Type][]event.Event
}

func record(bus *event.Bus, types ...event.Type) *recorder {
	r := &recorder{events: make(map[event.Type][]event.Event)}
	for _, typ := range types {
		bus.Subscribe(typ, func(ev event.Event) {
			r.events[ev.GetType()] = append(r.events[ev.GetType()], ev)
		})
	}
	return r
}

func TestInitializeSession(t *testing.T) {
	s := newTestSession(t)
	if got := s.Registry.Ships(); len(got) != 1 || got[0] != "Skalk" {
		t.Errorf("Ships() = %v, want [Skalk]", got)
	}
	if s.Env.Scene != s.Engine || s.Env.Registry != s.Registry {
		t.Error("entity env not bound to the session engine and registry")
	}
	if s.TickDuration().Milliseconds() != 16 {
		t.Errorf("TickDuration() = %v, want 1/60s", s.TickDuration())
	}
}

func TestInitializeSession_LoadError(t *testing.T) {
	fsys := dataFS(t)
	fsys["ships/Skalk/info.yaml"] = &fstest.MapFile{Data: []byte("display_name: Skalk\n")}

	_, err := InitializeSession(context.Background(), testSettings(), logging.Discard(), fsys)
	if err == nil {
		t.Fatal("InitializeSession() error = nil, want load error")
	}
	if !strings.Contains(err.Error(), `missing required field "class"`) {
		t.Errorf("error = %v, want missing class", err)
	}
}

func TestCampaign_BasicStart(t *testing.T) {
	s := newTestSession(t)
	rec := record(s.Bus, event.ShipSpawned)

	if err := DevCampaign().BasicStart(s); err != nil {
		t.Fatalf("BasicStart() error = %v", err)
	}

	ship := s.Player.Ship()
	if ship == nil || ship.Name() != "Skalk" {
		t.Fatalf("player ship = %v, want Skalk", ship)
	}
	if ship.Position() != physics.Vec(250, 230) {
		t.Errorf("ship at %v, want (250, 230)", ship.Position())
	}
	if !ship.InScene() {
		t.Error("ship not in scene")
	}
	if len(rec.events[event.ShipSpawned]) != 1 {
		t.Errorf("ship_spawned events = %d, want 1", len(rec.events[event.ShipSpawned]))
	}
	if l, ok := s.Engine.Layer(scenery.Depth); !ok || len(l.Painters()) != 1 {
		t.Error("starfield not painted behind the ships")
	}
	if s.Starfield.Len() != scenery.StarsPerDensity {
		t.Errorf("stars = %d, want %d", s.Starfield.Len(), scenery.StarsPerDensity)
	}
	if !s.HUD.Visible() || s.Widgets.Len() != 2 {
		t.Errorf("HUD visible = %v with %d widgets", s.HUD.Visible(), s.Widgets.Len())
	}
}

func TestCampaign_UnknownShip(t *testing.T) {
	s := newTestSession(t)
	c := &Campaign{Name: "lost", Ship: "Nope"}
	if err := c.BasicStart(s); err == nil {
		t.Error("BasicStart() error = nil, want unknown ship")
	}
}

func TestSession_Draw(t *testing.T) {
	s := newTestSession(t)
	if err := DevCampaign().BasicStart(s); err != nil {
		t.Fatal(err)
	}
	canvas := render.NewNullCanvas(1024, 768, nil)
	s.Draw(canvas)

	if s.Frame() != 1 {
		t.Errorf("Frame() = %d, want 1", s.Frame())
	}
	if canvas.Count(render.OpSprites) == 0 {
		t.Error("no sprite batches drawn")
	}
	// starfield, then the HUD bars
	if canvas.Count(render.OpShapes) < 2 {
		t.Errorf("shape batches = %d, want at least 2", canvas.Count(render.OpShapes))
	}
	if canvas.Calls[0].Op != render.OpShapes || len(canvas.Calls[0].Shapes) != 2 {
		t.Errorf("first call = %+v, want the starfield", canvas.Calls[0].Op)
	}
}

func TestSession_UpdateMovesShip(t *testing.T) {
	s := newTestSession(t)
	if err := DevCampaign().BasicStart(s); err != nil {
		t.Fatal(err)
	}
	start := s.Player.Ship().Position()
	s.Controls.KeyPress(KeyW)
	for i := 0; i < 10; i++ {
		s.Update()
	}
	got := s.Player.Ship().Position()
	if got.Y <= start.Y || got.X != start.X {
		t.Errorf("position after thrust = %v, want above %v", got, start)
	}
	if s.World.Tick != 10 {
		t.Errorf("Tick = %d, want 10", s.World.Tick)
	}
}

func TestSession_Close(t *testing.T) {
	s, err := InitializeSession(context.Background(), testSettings(), logging.Discard(), dataFS(t))
	if err != nil {
		t.Fatal(err)
	}
	closed := 0
	s.OnClose(func() { closed++ })
	if err := s.Close(context.Background()); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if closed != 1 {
		t.Errorf("close hooks run %d times, want 1", closed)
	}
	if err := s.Resources.Go("late", func(context.Context) {}); err == nil {
		t.Error("Go() after Close succeeded")
	}
}

func TestPlayer_Board(t *testing.T) {
	s := newTestSession(t)
	first, err := s.World.Spawn("Skalk", physics.Vec(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.World.Spawn("Skalk", physics.Vec(100, 0))
	if err != nil {
		t.Fatal(err)
	}

	p := NewPlayer()
	var got []entity.Damage
	p.ShipTookDamage().ListenPost(func(d entity.Damage) { got = append(got, d) })

	p.Board(first)
	first.TakeDamage(entity.Damage{Kind: entity.Pierce, Amount: 10})
	p.Board(second)
	first.TakeDamage(entity.Damage{Kind: entity.Pierce, Amount: 10})
	second.TakeDamage(entity.Damage{Kind: entity.Energy, Amount: 3})

	want := []entity.Damage{
		{Kind: entity.Null},
		{Kind: entity.Pierce, Amount: 10},
		{Kind: entity.Null},
		{Kind: entity.Energy, Amount: 3},
	}
	if len(got) != len(want) {
		t.Fatalf("forwarded %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("forwarded[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if pre, post := first.TookDamage.Listeners(); pre != 0 || post != 0 {
		t.Errorf("old ship listeners = %d, %d, want 0, 0", pre, post)
	}
}

func TestPlayer_HUDFollowsShip(t *testing.T) {
	s := newTestSession(t)
	if err := DevCampaign().BasicStart(s); err != nil {
		t.Fatal(err)
	}
	s.Player.Ship().TakeDamage(entity.Damage{Kind: entity.Pierce, Amount: 75})

	if got := s.HUD.Shield.Percent(); got != 0 {
		t.Errorf("shield bar = %v, want 0", got)
	}
	if got := s.HUD.Health.Percent(); got != 0.75 {
		t.Errorf("health bar = %v, want 0.75", got)
	}
}

func TestSession_HotReload(t *testing.T) {
	dir := t.TempDir()
	for name, f := range dataFS(t) {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, f.Data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	s, err := InitializeSession(context.Background(), testSettings(), logging.Discard(), os.DirFS(dir))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	rec := record(s.Bus, event.PrototypesReloaded)

	if err := s.Watch(dir); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	if err := s.Watch(dir); err == nil {
		t.Error("second Watch() error = nil")
	}

	booster := enginesYAML + "- name: Booster\n  power: 5\n  sprite: thruster\n"
	if err := os.WriteFile(filepath.Join(dir, "components", "engines", "basic.yaml"), []byte(booster), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) && len(rec.events[event.PrototypesReloaded]) == 0 {
		s.Update()
		time.Sleep(20 * time.Millisecond)
	}
	if len(rec.events[event.PrototypesReloaded]) == 0 {
		t.Fatal("prototypes not reloaded")
	}
	if _, err := s.Registry.Engine("Booster"); err != nil {
		t.Errorf("Engine(Booster) error = %v after reload", err)
	}
}
