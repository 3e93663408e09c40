// pkg/game/loop_test.go
package game

import (
	"testing"
	"time"
)

func TestStepper_Advance(t *testing.T) {
	step := 10 * time.Millisecond
	tests := []struct {
		name    string
		elapsed []time.Duration
		want    []int
		pending time.Duration
	}{
		{name: "exact", elapsed: []time.Duration{10 * time.Millisecond}, want: []int{1}},
		{name: "carry", elapsed: []time.Duration{15 * time.Millisecond, 5 * time.Millisecond}, want: []int{1, 1}},
		{name: "short", elapsed: []time.Duration{4 * time.Millisecond}, want: []int{0}, pending: 4 * time.Millisecond},
		{name: "capped", elapsed: []time.Duration{time.Second}, want: []int{10}},
		{name: "negative", elapsed: []time.Duration{-time.Second}, want: []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStepper(step)
			for i, e := range tt.elapsed {
				if got := s.Advance(e); got != tt.want[i] {
					t.Errorf("Advance(%v) = %d, want %d", e, got, tt.want[i])
				}
			}
			if got := s.Pending(); got != tt.pending {
				t.Errorf("Pending() = %v, want %v", got, tt.pending)
			}
		})
	}
}

func TestNewStepper_DefaultStep(t *testing.T) {
	s := NewStepper(0)
	if got := s.Advance(time.Second / 60); got != 1 {
		t.Errorf("Advance() = %d, want 1", got)
	}
}
