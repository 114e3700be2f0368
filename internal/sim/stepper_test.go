package sim

import (
	"math"
	"testing"
)

type recordingIntegrator struct {
	steps []float64
}

func (r *recordingIntegrator) Step(dt float64) { r.steps = append(r.steps, dt) }

func TestStepperAdvanceClamps(t *testing.T) {
	s := NewStepper(60, 25, 4)
	tests := []struct {
		name    string
		delta   float64
		applied float64
	}{
		{"nominal", 16, 16},
		{"ceiling", 25, 25},
		{"clamped", 5000, 25},
		{"zero", 0, 0},
		{"negative", -20, 0},
		{"nan", math.NaN(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec recordingIntegrator
			got := s.Advance(&rec, tt.delta)
			if got != tt.applied {
				t.Fatalf("Advance(%v) = %v, want %v", tt.delta, got, tt.applied)
			}
			if tt.applied == 0 {
				if len(rec.steps) != 0 {
					t.Fatalf("integrator stepped %v, want no step", rec.steps)
				}
				return
			}
			if len(rec.steps) != 1 || math.Abs(rec.steps[0]-tt.applied/1000) > 1e-12 {
				t.Fatalf("integrator steps = %v, want [%v]", rec.steps, tt.applied/1000)
			}
		})
	}
}

func TestNewStepperDefaults(t *testing.T) {
	s := NewStepper(0, 0, 0)
	if math.Abs(s.StepMillis-1000.0/60) > 1e-9 {
		t.Errorf("StepMillis = %v, want %v", s.StepMillis, 1000.0/60)
	}
	if s.MaxSubsteps != defaultMaxSubsteps {
		t.Errorf("MaxSubsteps = %d, want %d", s.MaxSubsteps, defaultMaxSubsteps)
	}

	slow := NewStepper(10, 20, 2)
	if slow.StepMillis != 20 {
		t.Errorf("step above ceiling = %v, want clamped to 20", slow.StepMillis)
	}
}

func TestNewStepperCapsCeiling(t *testing.T) {
	for _, ceiling := range []float64{66, 100, 1000, math.Inf(1), math.NaN(), -5} {
		s := NewStepper(60, ceiling, 4)
		if s.MaxStepMillis != MaxSafeStepMillis {
			t.Errorf("NewStepper(60, %v, 4).MaxStepMillis = %v, want %v", ceiling, s.MaxStepMillis, MaxSafeStepMillis)
		}
		var rec recordingIntegrator
		if got := s.Advance(&rec, 100); got != MaxSafeStepMillis {
			t.Errorf("ceiling %v: Advance(100) = %v, want %v", ceiling, got, MaxSafeStepMillis)
		}
	}
	if s := NewStepper(60, 20, 4); s.MaxStepMillis != 20 {
		t.Errorf("ceiling below the cap changed to %v", s.MaxStepMillis)
	}
}

func TestStepperAccumulate(t *testing.T) {
	s := NewStepper(50, 100, 4) // 20ms steps

	if n := s.Accumulate(0.010); n != 0 {
		t.Fatalf("10ms banked: %d steps, want 0", n)
	}
	if n := s.Accumulate(0.015); n != 1 {
		t.Fatalf("25ms banked: %d steps, want 1", n)
	}
	if a := s.Alpha(); math.Abs(a-0.25) > 1e-9 {
		t.Fatalf("alpha = %v, want 0.25", a)
	}
	if n := s.Accumulate(-1); n != 0 {
		t.Fatalf("negative delta: %d steps, want 0", n)
	}
	if n := s.Accumulate(math.NaN()); n != 0 {
		t.Fatalf("NaN delta: %d steps, want 0", n)
	}
}

func TestStepperCapsSubsteps(t *testing.T) {
	s := NewStepper(60, 1000.0/30, 4)
	var rec recordingIntegrator
	n := s.Run(&rec, 30) // a backgrounded tab coming back
	if n != 4 || len(rec.steps) != 4 {
		t.Fatalf("Run after 30s pause stepped %d (%d calls), want 4", n, len(rec.steps))
	}
	if s.Alpha() != 0 {
		t.Fatalf("alpha = %v after overflow, want 0", s.Alpha())
	}
	if s.DroppedMillis() < 29000 {
		t.Fatalf("dropped = %vms, want most of the pause", s.DroppedMillis())
	}
	for _, dt := range rec.steps {
		if math.Abs(dt-1.0/60) > 1e-12 {
			t.Fatalf("step dt = %v, want fixed %v", dt, 1.0/60)
		}
	}
}
