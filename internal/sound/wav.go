package sound

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

var errNoAudio = errors.New("no audio data")

// DecodeWAV reads a WAV stream and returns it as 16-bit stereo PCM at
// sampleRate, trimmed to whole frames.
func DecodeWAV(sampleRate int, r io.Reader) ([]byte, error) {
	stream, err := wav.DecodeWithSampleRate(sampleRate, r)
	if err != nil {
		return nil, err
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, err
	}
	pcm = pcm[:len(pcm)-len(pcm)%FrameBytes]
	if len(pcm) == 0 {
		return nil, errNoAudio
	}
	return pcm, nil
}

// LoadWAV decodes the WAV file at path with DecodeWAV.
func LoadWAV(sampleRate int, path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	pcm, err := DecodeWAV(sampleRate, f)
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}
	return pcm, nil
}
