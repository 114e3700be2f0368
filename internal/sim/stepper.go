package sim

import "math"

const (
	defaultStepHz      = 60.0
	defaultMaxSubsteps = 4
)

// MaxSafeStepMillis is the largest single increment the world is ever
// stepped by. Larger steps let a falling orb sink far enough into the floor
// to be pushed out the far side.
const MaxSafeStepMillis = 1000.0 / 30

// Integrator is anything that can be integrated forward by dt seconds.
// *World satisfies it.
type Integrator interface {
	Step(dt float64)
}

// Stepper drives an Integrator on a fixed nominal step fed by measured frame
// time. Measured time is accumulated and spent in StepMillis increments, at
// most MaxSubsteps per frame; anything beyond that is discarded so a long
// pause (a backgrounded window, a debugger stop) cannot snowball.
type Stepper struct {
	StepMillis    float64
	MaxStepMillis float64
	MaxSubsteps   int

	accumulator float64
	dropped     float64
}

// NewStepper returns a stepper running at stepHz with the given single-step
// ceiling. Zero values fall back to 60 Hz, MaxSafeStepMillis and 4
// substeps; a ceiling above MaxSafeStepMillis is lowered to it.
func NewStepper(stepHz, maxStepMillis float64, maxSubsteps int) *Stepper {
	if stepHz <= 0 || math.IsNaN(stepHz) {
		stepHz = defaultStepHz
	}
	if !(maxStepMillis > 0) || maxStepMillis > MaxSafeStepMillis {
		maxStepMillis = MaxSafeStepMillis
	}
	if maxSubsteps <= 0 {
		maxSubsteps = defaultMaxSubsteps
	}
	step := 1000 / stepHz
	if step > maxStepMillis {
		step = maxStepMillis
	}
	return &Stepper{
		StepMillis:    step,
		MaxStepMillis: maxStepMillis,
		MaxSubsteps:   maxSubsteps,
	}
}

// Advance integrates w by deltaMillis, clamped to (0, MaxStepMillis]. It
// returns the increment actually applied; zero means nothing was stepped.
func (s *Stepper) Advance(w Integrator, deltaMillis float64) float64 {
	if !(deltaMillis > 0) {
		return 0
	}
	if deltaMillis > s.MaxStepMillis {
		deltaMillis = s.MaxStepMillis
	}
	w.Step(deltaMillis / 1000)
	return deltaMillis
}

// Accumulate banks deltaSeconds of measured time and reports how many fixed
// steps are now due. Negative or NaN deltas count as zero.
func (s *Stepper) Accumulate(deltaSeconds float64) int {
	ms := deltaSeconds * 1000
	if !(ms > 0) {
		ms = 0
	}
	s.accumulator += ms
	n := int(s.accumulator / s.StepMillis)
	if n > s.MaxSubsteps {
		n = s.MaxSubsteps
		s.dropped += s.accumulator - float64(n)*s.StepMillis
		s.accumulator = 0
		return n
	}
	s.accumulator -= float64(n) * s.StepMillis
	return n
}

// Run accumulates the measured frame time and advances w by every step due.
func (s *Stepper) Run(w Integrator, deltaSeconds float64) int {
	n := s.Accumulate(deltaSeconds)
	for i := 0; i < n; i++ {
		s.Advance(w, s.StepMillis)
	}
	return n
}

// Alpha is the fraction of a step left in the accumulator, in [0, 1).
func (s *Stepper) Alpha() float64 { return s.accumulator / s.StepMillis }

// DroppedMillis is the total measured time discarded by the substep cap.
func (s *Stepper) DroppedMillis() float64 { return s.dropped }

// Reset empties the accumulator.
func (s *Stepper) Reset() { s.accumulator = 0 }
