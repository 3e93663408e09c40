// pkg/game/controls_test.go
package game

import (
	"testing"

	"github.com/opd-ai/go-spaceman/pkg/physics"
	"github.com/opd-ai/go-spaceman/pkg/ui"
)

func flying(t *testing.T) *Session {
	t.Helper()
	s := newTestSession(t)
	if err := DevCampaign().BasicStart(s); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestControls_KeyPress(t *testing.T) {
	tests := []struct {
		name       string
		key        Key
		wantThrust physics.Vector2D
		wantTurn   float64
	}{
		{"forward", KeyW, physics.Vec(0, ThrustStep), 0},
		{"reverse", KeyS, physics.Vec(0, -ThrustStep), 0},
		{"strafe_left", KeyQ, physics.Vec(StrafeStep, 0), 0},
		{"strafe_right", KeyE, physics.Vec(-StrafeStep, 0), 0},
		{"turn_left", KeyA, physics.Vector2D{}, TurnStep},
		{"turn_right", KeyD, physics.Vector2D{}, -TurnStep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := flying(t)
			ship := s.Player.Ship()
			if !s.Controls.KeyPress(tt.key) {
				t.Fatal("KeyPress() = false, want consumed")
			}
			if ship.Thrust() != tt.wantThrust || ship.AngleDelta() != tt.wantTurn {
				t.Errorf("thrust, turn = %v, %v, want %v, %v", ship.Thrust(), ship.AngleDelta(), tt.wantThrust, tt.wantTurn)
			}

			if !s.Controls.KeyRelease(tt.key) {
				t.Fatal("KeyRelease() = false, want consumed")
			}
			if ship.Thrust() != (physics.Vector2D{}) || ship.AngleDelta() != 0 {
				t.Errorf("after release thrust, turn = %v, %v, want zero", ship.Thrust(), ship.AngleDelta())
			}
		})
	}
}

func TestControls_ReleaseWithoutPress(t *testing.T) {
	s := flying(t)
	ship := s.Player.Ship()
	s.Controls.KeyPress(KeyW)

	if s.Controls.KeyRelease(KeyS) {
		t.Error("KeyRelease(S) = true for a key never pressed")
	}
	if ship.Thrust() != physics.Vec(0, ThrustStep) {
		t.Errorf("thrust = %v, want unchanged", ship.Thrust())
	}
}

func TestControls_RepeatIgnored(t *testing.T) {
	s := flying(t)
	ship := s.Player.Ship()
	s.Controls.KeyPress(KeyW)
	s.Controls.KeyPress(KeyW)
	if ship.Thrust() != physics.Vec(0, ThrustStep) {
		t.Errorf("thrust = %v after repeat, want one step", ship.Thrust())
	}
	if !s.Controls.Held(KeyW) {
		t.Error("Held(W) = false")
	}
}

func TestControls_ThrustEngagesEngines(t *testing.T) {
	s := flying(t)
	engine := s.Player.Ship().Engines()[0].Engine()

	s.Controls.KeyPress(KeyW)
	if !engine.Engaged() {
		t.Error("engine not engaged under thrust")
	}
	s.Controls.KeyPress(KeyA)
	s.Controls.KeyRelease(KeyW)
	if engine.Engaged() {
		t.Error("engine engaged while only turning")
	}
}

func TestControls_Fire(t *testing.T) {
	s := flying(t)
	ship := s.Player.Ship()
	s.Update()
	gun := ship.Hardpoints()[0].Hardpoint()
	beam := ship.Hardpoints()[1].Hardpoint()

	s.Controls.KeyPress(KeySpace)
	if len(gun.Children()) != 1 {
		t.Errorf("gun projectiles = %d, want 1", len(gun.Children()))
	}

	s.Controls.KeyPress(KeyF)
	if !beam.On() {
		t.Fatal("beam not firing after F")
	}
	s.Controls.KeyRelease(KeyF)
	if beam.On() {
		t.Error("beam still firing after release")
	}
}

func TestControls_DebugDamage(t *testing.T) {
	tests := []struct {
		name     string
		dev      bool
		consumed bool
		wantHull float64
	}{
		{"dev_mode", true, true, 50},
		{"release_build", false, false, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := flying(t)
			s.Controls.Dev = tt.dev
			if got := s.Controls.KeyPress(KeyI); got != tt.consumed {
				t.Errorf("KeyPress(I) = %v, want %v", got, tt.consumed)
			}
			if got := s.Player.Ship().Hull; got != tt.wantHull {
				t.Errorf("hull = %v, want %v", got, tt.wantHull)
			}
		})
	}
}

func TestControls_NoShip(t *testing.T) {
	c := NewControls(NewPlayer())
	if c.KeyPress(KeyW) {
		t.Error("KeyPress() consumed without a ship")
	}
	if c.KeyRelease(KeyW) {
		t.Error("KeyRelease() consumed without a ship")
	}
}

type pressTarget struct {
	consume bool
	got     []ui.MouseEvent
}

func (p *pressTarget) OnMousePress(ev ui.MouseEvent) bool {
	p.got = append(p.got, ev)
	return p.consume
}

func TestControls_MousePress(t *testing.T) {
	c := NewControls(NewPlayer())
	first := &pressTarget{}
	second := &pressTarget{consume: true}
	third := &pressTarget{}
	c.AddTarget(first)
	c.AddTarget(second)
	c.AddTarget(third)

	ev := ui.MouseEvent{X: 10, Y: 20, Button: ui.MouseLeft}
	if !c.MousePress(ev) {
		t.Error("MousePress() = false, want consumed")
	}
	if len(first.got) != 1 || len(second.got) != 1 || len(third.got) != 0 {
		t.Errorf("deliveries = %d, %d, %d, want 1, 1, 0", len(first.got), len(second.got), len(third.got))
	}
	if c.Mouse() != physics.Vec(10, 20) {
		t.Errorf("Mouse() = %v, want (10, 20)", c.Mouse())
	}

	c.MouseMove(5, 6)
	if c.Mouse() != physics.Vec(5, 6) {
		t.Errorf("Mouse() = %v after move, want (5, 6)", c.Mouse())
	}
}

func TestUtilCommand(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{Key1, "util1"},
		{Key5, "util5"},
		{Key9, "util9"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := utilCommand(tt.key); got != tt.want {
				t.Errorf("utilCommand(%d) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
