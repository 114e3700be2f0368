package main

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"orbdrop/internal/sound"
)

// loadBouncePCM decodes the WAV at path into 16-bit stereo PCM at sampleRate.
// An empty path synthesizes the bounce instead.
func loadBouncePCM(sampleRate int, path string) ([]byte, error) {
	if path == "" {
		return sound.Synth(sampleRate, bounceDuration), nil
	}
	return sound.LoadWAV(sampleRate, path)
}

// bouncePlayer plays the bounce sample through a small ring of players so
// overlapping collisions don't cut each other off.
type bouncePlayer struct {
	players []*audio.Player
	next    int
	limiter *sound.Limiter
}

func newBouncePlayer(ctx *audio.Context, pcm []byte) *bouncePlayer {
	b := &bouncePlayer{
		limiter: sound.NewLimiter(bounceMinInterval, bounceVoices, bounceDuration),
	}
	for i := 0; i < bounceVoices; i++ {
		b.players = append(b.players, ctx.NewPlayerFromBytes(pcm))
	}
	return b
}

// play starts the next voice at volume unless the limiter refuses it.
func (b *bouncePlayer) play(now time.Time, volume float64) bool {
	if volume <= 0 || len(b.players) == 0 || !b.limiter.Allow(now) {
		return false
	}
	p := b.players[b.next]
	b.next = (b.next + 1) % len(b.players)
	if err := p.SetPosition(0); err != nil {
		log.Printf("Rewinding bounce player failed: %v", err)
		return false
	}
	p.SetVolume(volume)
	p.Play()
	return true
}

func (b *bouncePlayer) Close() {
	for _, p := range b.players {
		if err := p.Close(); err != nil {
			log.Printf("Closing bounce player: %v", err)
		}
	}
	b.players = nil
}
