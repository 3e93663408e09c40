// pkg/game/loop.go
package game

import "time"

// MaxFrameTime caps how much elapsed time one Advance call may account for.
const MaxFrameTime = 100 * time.Millisecond

// Stepper converts variable frame times into a whole number of fixed steps.
type Stepper struct {
	step time.Duration
	acc  time.Duration
}

// NewStepper creates a stepper for the given step length.
func NewStepper(step time.Duration) *Stepper {
	if step <= 0 {
		step = time.Second / 60
	}
	return &Stepper{step: step}
}

// Advance adds elapsed to the accumulator and returns how many fixed
// steps are due. Elapsed time above MaxFrameTime is dropped.
func (s *Stepper) Advance(elapsed time.Duration) int {
	if elapsed > MaxFrameTime {
		elapsed = MaxFrameTime
	}
	if elapsed > 0 {
		s.acc += elapsed
	}
	n := int(s.acc / s.step)
	s.acc -= time.Duration(n) * s.step
	return n
}

// Pending returns the time carried over to the next call.
func (s *Stepper) Pending() time.Duration { return s.acc }

// RunSteps calls session.Update once per step due after elapsed.
func RunSteps(session *Session, stepper *Stepper, elapsed time.Duration) int {
	n := stepper.Advance(elapsed)
	for i := 0; i < n; i++ {
		session.Update()
	}
	return n
}
