package main

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// blurShaderSrc is a one-dimensional gaussian; it runs once horizontally and
// once vertically. The kernel reach is fixed at blurKernelReach pixels.
const blurShaderSrc = `//kage:unit pixels

package main

var Sigma float
var Direction vec2

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	sum := vec4(0)
	total := 0.0
	for i := -32; i <= 32; i++ {
		o := float(i)
		w := exp(-(o * o) / (2 * Sigma * Sigma))
		sum += imageSrc0At(srcPos+Direction*o) * w
		total += w
	}
	return sum / total
}
`

type blurrer struct {
	shader *ebiten.Shader
}

func newBlurrer() (*blurrer, error) {
	s, err := ebiten.NewShader([]byte(blurShaderSrc))
	if err != nil {
		return nil, fmt.Errorf("compiling blur shader: %w", err)
	}
	return &blurrer{shader: s}, nil
}

// blur returns a copy of src padded by blurKernelReach on each side and
// blurred with the given strength. The padding leaves room for the glow to
// spread past the source edges.
func (b *blurrer) blur(src *ebiten.Image, strength float64) *ebiten.Image {
	sigma := math.Min(strength, blurKernelReach/2)
	bounds := src.Bounds()
	w := bounds.Dx() + 2*blurKernelReach
	h := bounds.Dy() + 2*blurKernelReach

	padded := ebiten.NewImage(w, h)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(blurKernelReach, blurKernelReach)
	padded.DrawImage(src, op)

	pass := func(dst, in *ebiten.Image, dx, dy float32) {
		dst.DrawRectShader(w, h, b.shader, &ebiten.DrawRectShaderOptions{
			Images: [4]*ebiten.Image{in},
			Uniforms: map[string]any{
				"Sigma":     float32(sigma),
				"Direction": []float32{dx, dy},
			},
		})
	}
	horizontal := ebiten.NewImage(w, h)
	pass(horizontal, padded, 1, 0)
	out := ebiten.NewImage(w, h)
	pass(out, horizontal, 0, 1)

	padded.Deallocate()
	horizontal.Deallocate()
	return out
}
