// Package assets loads the orb texture without touching the display, so it can
// run off the update goroutine.
package assets

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"sync"
)

// ProceduralSize is the edge length of the generated orb image.
const ProceduralSize = 256

// Loader decodes the orb image once and hands the same image to every spawn.
// Failed loads are not cached, so the next spawn retries.
type Loader struct {
	texturePath string

	mu  sync.Mutex
	orb image.Image
}

// NewLoader returns a loader for texturePath; empty means a procedural orb.
func NewLoader(texturePath string) *Loader {
	return &Loader{texturePath: texturePath}
}

// Orb returns the decoded orb image, loading it on first use. It is safe to
// call from several goroutines.
func (l *Loader) Orb(ctx context.Context) (image.Image, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.orb != nil {
		return l.orb, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		img image.Image
		err error
	)
	if l.texturePath == "" {
		img = Procedural(ProceduralSize)
	} else if img, err = decodeFile(l.texturePath); err != nil {
		return nil, err
	}
	l.orb = img
	return img, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening orb texture: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding orb texture %q: %w", path, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("orb texture %q is empty", path)
	}
	return img, nil
}

// Procedural draws a soft glowing sphere: a bright core fading to a
// translucent rim, with a small highlight up and to the left.
func Procedural(size int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float64(x) + 0.5 - r) / r
			dy := (float64(y) + 0.5 - r) / r
			d := math.Hypot(dx, dy)
			if d > 1 {
				continue
			}
			edge := math.Min((1-d)*r/1.5, 1)
			core := 1 - d*d
			hx, hy := dx+0.35, dy+0.35
			shine := math.Max(0, 1-math.Hypot(hx, hy)/0.35)
			rc := 120 + 100*core + 35*shine
			gc := 170 + 70*core + 15*shine
			bc := 255.0
			a := (0.55 + 0.45*core) * edge
			img.SetNRGBA(x, y, color.NRGBA{
				R: ClampByte(rc),
				G: ClampByte(gc),
				B: ClampByte(bc),
				A: ClampByte(a * 255),
			})
		}
	}
	return img
}

// ClampByte converts v to a channel value, saturating at 0 and 255.
func ClampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
