package sound

import "time"

const (
	// MinVolume is the quietest audible bounce.
	MinVolume = 0.15

	minAudibleSpeed = 40.0
	fullVolumeSpeed = 900.0
)

// VolumeForSpeed maps an impact speed in px/s to a playback volume. Contacts
// slower than a gentle settle are silent (0); anything audible lies in
// [MinVolume, 1] and grows with speed.
func VolumeForSpeed(speed float64) float64 {
	if !(speed >= minAudibleSpeed) {
		return 0
	}
	f := (speed - minAudibleSpeed) / (fullVolumeSpeed - minAudibleSpeed)
	if f > 1 {
		f = 1
	}
	return MinVolume + (1-MinVolume)*f
}

// Limiter caps how often and how many bounce sounds play at once, so a pile
// of orbs landing together doesn't turn into a wall of noise.
type Limiter struct {
	MinInterval time.Duration
	MaxVoices   int
	// Voice is how long one play counts against MaxVoices.
	Voice time.Duration

	last time.Time
	ends []time.Time
}

// NewLimiter allows one sound per minInterval and at most maxVoices sounds
// of length voice playing at once.
func NewLimiter(minInterval time.Duration, maxVoices int, voice time.Duration) *Limiter {
	return &Limiter{MinInterval: minInterval, MaxVoices: maxVoices, Voice: voice}
}

// Allow reports whether a sound may start at now, and records it if so.
func (l *Limiter) Allow(now time.Time) bool {
	live := l.ends[:0]
	for _, end := range l.ends {
		if end.After(now) {
			live = append(live, end)
		}
	}
	l.ends = live

	if l.MaxVoices > 0 && len(l.ends) >= l.MaxVoices {
		return false
	}
	if !l.last.IsZero() && now.Sub(l.last) < l.MinInterval {
		return false
	}
	l.last = now
	l.ends = append(l.ends, now.Add(l.Voice))
	return true
}

// Active returns the number of voices still playing at the last Allow.
func (l *Limiter) Active() int { return len(l.ends) }
