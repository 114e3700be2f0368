package main

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// orbTextures holds the GPU images shared by every orb of one size: the sharp
// sprite scaled to the orb's diameter and its blurred glow.
type orbTextures struct {
	sharp *ebiten.Image
	glow  *ebiten.Image
}

// newOrbTextures scales src to a diameter-sized image and, when blur is
// positive, renders the glow copy.
func newOrbTextures(src image.Image, diameter, blur float64, b *blurrer) *orbTextures {
	size := int(math.Ceil(diameter))
	raw := ebiten.NewImageFromImage(src)
	defer raw.Deallocate()

	sharp := ebiten.NewImage(size, size)
	bounds := raw.Bounds()
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(float64(size)/float64(bounds.Dx()), float64(size)/float64(bounds.Dy()))
	sharp.DrawImage(raw, op)

	t := &orbTextures{sharp: sharp}
	if blur > 0 && b != nil {
		t.glow = b.blur(sharp, blur)
	}
	return t
}

// orbSprite is the on-screen proxy for one orb body. Its transform is written
// by the sync pass and read by Draw.
type orbSprite struct {
	tex      *orbTextures
	x, y     float64
	rotation float64
	detached bool
}

func newOrbSprite(tex *orbTextures) *orbSprite {
	return &orbSprite{tex: tex}
}

func (s *orbSprite) SetTransform(x, y, rotation float64) {
	s.x, s.y, s.rotation = x, y, rotation
}

func (s *orbSprite) Detach() { s.detached = true }

// draw renders the sharp sprite with its glow layered on top, both centered
// on the orb and rotated with it.
func (s *orbSprite) draw(dst *ebiten.Image) {
	if s.detached {
		return
	}
	s.drawCentered(dst, s.tex.sharp)
	if s.tex.glow != nil {
		s.drawCentered(dst, s.tex.glow)
	}
}

func (s *orbSprite) drawCentered(dst, img *ebiten.Image) {
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Rotate(s.rotation)
	op.GeoM.Translate(s.x, s.y)
	dst.DrawImage(img, op)
}
