package sim

import "time"

// LoopConfig configures NewLoop.
type LoopConfig struct {
	World         WorldConfig
	StepHz        float64
	MaxStepMillis float64
	MaxSubsteps   int

	// ResumeGap is the longest wait between ticks that still counts as
	// running. A longer gap means the host stopped ticking (minimized window,
	// debugger) and the next tick restarts the clock. Zero disables it.
	ResumeGap time.Duration
}

// TickStats describes one Tick.
type TickStats struct {
	Rate     float64
	Delta    float64
	Steps    int
	Entities int

	// Resumed is set when the tick followed a gap longer than ResumeGap.
	Resumed bool
}

// Loop owns everything the per-tick work touches. It is built once at startup
// and driven from a single goroutine.
type Loop struct {
	World    *World
	Registry *Registry
	Clock    Clock
	Stepper  *Stepper

	resumeGap time.Duration
	last      TickStats
}

// NewLoop creates the world, its registry and the stepper from cfg.
func NewLoop(cfg LoopConfig) *Loop {
	w := NewWorld(cfg.World)
	return &Loop{
		World:     w,
		Registry:  NewRegistry(w),
		Stepper:   NewStepper(cfg.StepHz, cfg.MaxStepMillis, cfg.MaxSubsteps),
		resumeGap: cfg.ResumeGap,
	}
}

// Tick measures the frame, steps the world by whatever fixed steps are due,
// and syncs every proxy.
func (l *Loop) Tick(now time.Time) TickStats {
	resumed := false
	if last := l.Clock.Last(); l.resumeGap > 0 && !last.IsZero() && now.Sub(last) > l.resumeGap {
		l.Pause()
		resumed = true
	}
	rate, delta, _ := l.Clock.Tick(now)
	steps := l.Stepper.Run(l.World, delta)
	Sync(l.Registry)
	l.last = TickStats{
		Rate:     rate,
		Delta:    delta,
		Steps:    steps,
		Entities: l.Registry.Len(),
		Resumed:  resumed,
	}
	return l.last
}

// Pause forgets the clock baseline and any banked time, so the tick after a
// pause neither jumps nor replays the gap.
func (l *Loop) Pause() {
	l.Clock.Reset()
	l.Stepper.Reset()
}

// Stats returns the result of the most recent Tick.
func (l *Loop) Stats() TickStats { return l.last }

// Close removes every entity and releases the world.
func (l *Loop) Close() {
	_ = l.Registry.Clear()
	l.World.Close()
}
