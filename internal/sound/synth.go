package sound

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gopxl/beep"
)

// FrameBytes is the size of one 16-bit stereo frame.
const FrameBytes = 4

// bounceTone is a sine whose pitch glides from freq to endFreq while its
// amplitude decays exponentially with the given time constant.
type bounceTone struct {
	sr      beep.SampleRate
	freq    float64
	endFreq float64
	decay   float64
	amp     float64
	pos     int
	phase   float64
}

func newBounceTone(sr beep.SampleRate, freq, endFreq, decay, amp float64) *bounceTone {
	return &bounceTone{sr: sr, freq: freq, endFreq: endFreq, decay: decay, amp: amp}
}

func (g *bounceTone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		env := math.Exp(-t / g.decay)
		f := g.endFreq + (g.freq-g.endFreq)*env
		g.phase += 2 * math.Pi * f / float64(g.sr)
		// Short attack to avoid a click on the first sample.
		attack := math.Min(t/0.002, 1)
		v := g.amp * env * attack * math.Sin(g.phase)
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *bounceTone) Err() error { return nil }

// Synth renders a short rubbery bounce as 16-bit little-endian stereo PCM at
// sampleRate. It is the fallback when no bounce sample is configured.
func Synth(sampleRate int, d time.Duration) []byte {
	sr := beep.SampleRate(sampleRate)
	n := sr.N(d)
	body := newBounceTone(sr, 190, 70, 0.08, 0.7)
	click := newBounceTone(sr, 900, 420, 0.012, 0.25)
	return Render(beep.Take(n, beep.Mix(body, click)), n)
}

// Render drains s into 16-bit little-endian stereo PCM. sizeHint is the
// expected number of frames.
func Render(s beep.Streamer, sizeHint int) []byte {
	out := make([]byte, 0, sizeHint*FrameBytes)
	buf := make([][2]float64, 512)
	var frame [FrameBytes]byte
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			binary.LittleEndian.PutUint16(frame[0:], uint16(toPCM16(smp[0])))
			binary.LittleEndian.PutUint16(frame[2:], uint16(toPCM16(smp[1])))
			out = append(out, frame[:]...)
		}
		if !ok || n == 0 {
			return out
		}
	}
}

func toPCM16(v float64) int16 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int16(v * math.MaxInt16)
}

// Peak returns the largest absolute sample, in [0, 1], among frames
// [from, to) of a 16-bit stereo PCM buffer.
func Peak(pcm []byte, from, to int) float64 {
	frames := len(pcm) / FrameBytes
	if to > frames {
		to = frames
	}
	var peak float64
	for i := max(from, 0); i < to; i++ {
		for ch := 0; ch < 2; ch++ {
			off := i*FrameBytes + ch*2
			v := math.Abs(float64(int16(binary.LittleEndian.Uint16(pcm[off:])))) / math.MaxInt16
			peak = math.Max(peak, v)
		}
	}
	return peak
}
