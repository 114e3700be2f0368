package main

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"orbdrop/internal/assets"
	"orbdrop/internal/sim"
)

var (
	white       = color.White
	buttonFill  = color.RGBA{40, 60, 110, 255}
	buttonHover = color.RGBA{60, 90, 160, 255}
	buttonEdge  = color.RGBA{150, 190, 255, 255}
)

// scene holds the static layers: the hatch the orbs fall through, the mask
// clipping orbs above the hatch, and the light shaft under it.
type scene struct {
	width, height int

	ellipse  *ebiten.Image
	mask     *ebiten.Image
	orbs     *ebiten.Image
	gradient *ebiten.Image
}

func newScene(width, height int) *scene {
	s := &scene{
		width:    width,
		height:   height,
		ellipse:  newDiscImage(hatchRadiusX),
		mask:     ebiten.NewImage(width, height),
		orbs:     ebiten.NewImage(width, height),
		gradient: newGradientImage(gradientQuality),
	}
	// Orbs are visible below the hatch line and inside the hatch opening.
	vector.DrawFilledRect(s.mask, 0, hatchY, float32(width), float32(height), white, false)
	drawEllipse(s.mask, s.ellipse, float64(width)/2, hatchY, maskHoleRadiusX, maskHoleRadiusY)
	return s
}

// newDiscImage returns a white anti-aliased disc of radius r, used to stamp
// ellipses by non-uniform scaling.
func newDiscImage(r int) *ebiten.Image {
	img := ebiten.NewImage(2*r, 2*r)
	vector.DrawFilledCircle(img, float32(r), float32(r), float32(r), white, true)
	return img
}

func drawEllipse(dst, disc *ebiten.Image, cx, cy, rx, ry float64) {
	r := float64(disc.Bounds().Dx()) / 2
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Translate(-r, -r)
	op.GeoM.Scale(rx/r, ry/r)
	op.GeoM.Translate(cx, cy)
	dst.DrawImage(disc, op)
}

// newGradientImage builds a 1px tall strip fading from half-opaque white to
// transparent along x.
func newGradientImage(quality int) *ebiten.Image {
	src := image.NewNRGBA(image.Rect(0, 0, quality, 1))
	for x := 0; x < quality; x++ {
		t := float64(x) / float64(quality-1)
		a := gradientAlpha * (1 - t)
		src.SetNRGBA(x, 0, color.NRGBA{R: 255, G: 255, B: 255, A: assets.ClampByte(a * 255)})
	}
	return ebiten.NewImageFromImage(src)
}

// Draw renders the hatch, the masked orb layer, the light shaft and the UI.
func (g *Game) Draw(screen *ebiten.Image) {
	s := g.scene
	w, h := float64(s.width), float64(s.height)

	drawEllipse(screen, s.ellipse, w/2, hatchY, hatchRadiusX, hatchRadiusY)

	s.orbs.Clear()
	g.loop.Registry.ForEach(func(_ *sim.Body, p sim.Proxy) {
		if sprite, ok := p.(*orbSprite); ok {
			sprite.draw(s.orbs)
		}
	})
	clip := &ebiten.DrawImageOptions{Blend: ebiten.BlendDestinationIn}
	s.orbs.DrawImage(s.mask, clip)
	screen.DrawImage(s.orbs, nil)

	g.drawGradient(screen, w, h)
	g.drawButton(screen)

	if g.debug {
		g.drawDebug(screen)
	}
}

// drawGradient stretches the gradient strip into a vertical shaft that starts
// at the hatch and fades toward the floor.
func (g *Game) drawGradient(screen *ebiten.Image, w, h float64) {
	gw := float64(g.scene.gradient.Bounds().Dx())
	length := h - hatchY
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Translate(-gw/2, -0.5)
	op.GeoM.Scale(length/gw, gradientWidth)
	op.GeoM.Rotate(math.Pi / 2)
	op.GeoM.Translate(w/2, h/2+hatchY/2.0)
	screen.DrawImage(g.scene.gradient, op)
}

func (g *Game) drawButton(screen *ebiten.Image) {
	r := g.button
	fill := buttonFill
	if image.Pt(ebiten.CursorPosition()).In(r) {
		fill = buttonHover
	}
	x, y := float32(r.Min.X), float32(r.Min.Y)
	bw, bh := float32(r.Dx()), float32(r.Dy())
	vector.DrawFilledRect(screen, x, y, bw, bh, fill, false)
	vector.StrokeRect(screen, x, y, bw, bh, 1, buttonEdge, false)
	label := "Add Orb"
	if g.spawner.Pending() > 0 {
		label = "Loading..."
	}
	// Debug font glyphs are 6x16.
	ebitenutil.DebugPrintAt(screen, label, r.Min.X+(r.Dx()-6*len(label))/2, r.Min.Y+(r.Dy()-16)/2)
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	fps := ebiten.ActualFPS()
	tps := ebiten.ActualTPS()
	if tps < 0 {
		tps = 0
	}
	st := g.lastStats
	simMS := g.lastSimDuration.Seconds() * 1000
	debugMsg := fmt.Sprintf("FPS: %.1f  TPS: %.1f\nTick rate: %.1f/s (dt %.1f ms)  resumes %d\nSim steps: %d @ %.2f ms (alpha %.2f)\nSim: %.2f ms\nOrbs: %d  pending %d  failed %d\nBounces: %d  dropped events %d",
		fps, tps,
		st.Rate, st.Delta*1000, g.resumes,
		st.Steps, g.loop.Stepper.StepMillis, g.loop.Stepper.Alpha(),
		simMS,
		st.Entities, g.spawner.Pending(), g.spawner.Failed(),
		g.played, g.loop.World.Dropped())
	ebitenutil.DebugPrint(screen, debugMsg)
}

// Layout reports the logical screen size; the window scales it.
func (g *Game) Layout(_, _ int) (int, int) { return g.scene.width, g.scene.height }
