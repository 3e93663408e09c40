// pkg/physics/kinematics_test.go
package physics

import (
	"math"
	"testing"
)

func TestKinematics_Step_ClampsToMaxSpeed(t *testing.T) {
	k := Kinematics{Drag: Vec(0.05, 0.05), Thrust: Vec(3, -3)}
	for i := 0; i < 20; i++ {
		k.Step(2)
		if math.Abs(k.Velocity.X) > 2 || math.Abs(k.Velocity.Y) > 2 {
			t.Fatalf("tick %d: velocity %v exceeds max speed", i, k.Velocity)
		}
	}
}

// TestKinematics_Step_ThrustConverges mirrors a class A hull with a single
// power 10 engine pushed forward from rest.
func TestKinematics_Step_ThrustConverges(t *testing.T) {
	k := Kinematics{Drag: Vec(0.05, 0.05), Thrust: Vec(0, 0.15)}
	prev := 0.0
	for i := 0; i < 10; i++ {
		k.Step(10)
		if k.Velocity.Y > 10 {
			t.Fatalf("tick %d: velocity.y %v exceeds 10", i, k.Velocity.Y)
		}
		if k.Velocity.Y <= prev {
			t.Fatalf("tick %d: velocity.y %v did not increase from %v", i, k.Velocity.Y, prev)
		}
		prev = k.Velocity.Y
	}
	if !approx(k.Velocity.Y, 1.05) {
		t.Errorf("velocity.y after 10 ticks = %v, expected 1.05", k.Velocity.Y)
	}
}

func TestKinematics_Step_Displacement(t *testing.T) {
	tests := []struct {
		name     string
		angle    float64
		velocity Vector2D
		expected Vector2D
	}{
		{"forward_unrotated", 0, Vec(0, 2), Vec(0, 2)},
		{"forward_quarter_turn", 90, Vec(0, 2), Vec(-2, 0)},
		{"lateral_unrotated", 0, Vec(2, 0), Vec(-2, 0)},
		{"lateral_quarter_turn", 90, Vec(2, 0), Vec(0, -2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := Kinematics{Velocity: tt.velocity, Angle: tt.angle}
			got := k.Step(10)
			if !vecApprox(got, tt.expected) {
				t.Errorf("Step() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestKinematics_Step_AccumulatesAngle(t *testing.T) {
	k := Kinematics{AngleDelta: 200}
	k.Step(0)
	k.Step(0)
	if k.Angle != 400 {
		t.Errorf("Angle = %v, expected 400", k.Angle)
	}
}

func TestKinematics_Step_ZeroMaxSpeedHolds(t *testing.T) {
	k := Kinematics{Thrust: Vec(1, 1)}
	if got := k.Step(0); got != (Vector2D{}) {
		t.Errorf("Step(0) = %v, expected zero displacement", got)
	}
}
