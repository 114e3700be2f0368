package sim

import "time"

// Clock measures the wall-clock time between successive display ticks.
type Clock struct {
	last time.Time
}

// Tick records now and returns the instantaneous rate (ticks per second), the
// elapsed seconds since the previous call, and the new baseline timestamp.
// The first call only records the baseline and reports zero rate and delta.
func (c *Clock) Tick(now time.Time) (rate, delta float64, last time.Time) {
	if c.last.IsZero() {
		c.last = now
		return 0, 0, c.last
	}
	delta = now.Sub(c.last).Seconds()
	c.last = now
	if delta > 0 {
		rate = 1 / delta
	}
	return rate, delta, c.last
}

// Reset drops the baseline so the next Tick behaves like a cold start.
func (c *Clock) Reset() { c.last = time.Time{} }

// Last returns the baseline timestamp, zero before the first Tick.
func (c *Clock) Last() time.Time { return c.last }
