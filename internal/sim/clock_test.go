package sim

import (
	"math"
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestClockFirstTickIsColdStart(t *testing.T) {
	for _, now := range []time.Time{epoch, epoch.Add(17 * time.Hour), time.Unix(1, 0)} {
		var c Clock
		rate, delta, last := c.Tick(now)
		if rate != 0 || delta != 0 {
			t.Errorf("first tick at %v: rate=%v delta=%v, want 0, 0", now, rate, delta)
		}
		if !last.Equal(now) {
			t.Errorf("first tick baseline = %v, want %v", last, now)
		}
	}
}

func TestClockRate(t *testing.T) {
	tests := []struct {
		name string
		gap  time.Duration
		want float64
	}{
		{"16ms", 16 * time.Millisecond, 62.5},
		{"33ms", 33 * time.Millisecond, 30.303},
		{"1s", time.Second, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Clock
			c.Tick(epoch)
			rate, delta, last := c.Tick(epoch.Add(tt.gap))
			if math.Abs(rate-tt.want) > 0.01 {
				t.Errorf("rate = %v, want ≈ %v", rate, tt.want)
			}
			if math.Abs(delta-tt.gap.Seconds()) > 1e-9 {
				t.Errorf("delta = %v, want %v", delta, tt.gap.Seconds())
			}
			if !last.Equal(epoch.Add(tt.gap)) {
				t.Errorf("last = %v, want %v", last, epoch.Add(tt.gap))
			}
		})
	}
}

func TestClockIncreasingSequence(t *testing.T) {
	var c Clock
	gaps := []time.Duration{5, 16, 16, 17, 33, 250, 1}
	now := epoch
	c.Tick(now)
	for _, g := range gaps {
		now = now.Add(g * time.Millisecond)
		rate, delta, _ := c.Tick(now)
		want := (g * time.Millisecond).Seconds()
		if math.Abs(delta-want) > 1e-9 {
			t.Fatalf("delta = %v, want %v", delta, want)
		}
		if math.Abs(rate-1/want) > 1e-6 {
			t.Fatalf("rate = %v, want %v", rate, 1/want)
		}
	}
}

func TestClockZeroDeltaSentinel(t *testing.T) {
	var c Clock
	c.Tick(epoch)
	rate, delta, _ := c.Tick(epoch)
	if delta != 0 {
		t.Fatalf("delta = %v, want 0", delta)
	}
	if rate != 0 || math.IsInf(rate, 0) || math.IsNaN(rate) {
		t.Fatalf("rate = %v, want sentinel 0", rate)
	}

	rate, delta, _ = c.Tick(epoch.Add(-time.Second))
	if rate != 0 {
		t.Errorf("backwards tick rate = %v, want 0", rate)
	}
	if delta >= 0 {
		t.Errorf("backwards tick delta = %v, want negative", delta)
	}
}

func TestClockReset(t *testing.T) {
	var c Clock
	c.Tick(epoch)
	c.Tick(epoch.Add(20 * time.Millisecond))
	c.Reset()
	if !c.Last().IsZero() {
		t.Fatalf("Last() = %v after Reset, want zero", c.Last())
	}
	rate, delta, _ := c.Tick(epoch.Add(time.Hour))
	if rate != 0 || delta != 0 {
		t.Fatalf("tick after Reset: rate=%v delta=%v, want cold start", rate, delta)
	}
}
