package main

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"orbdrop/internal/sim"
)

// handleInput processes mouse, touch and keyboard controls. It returns
// ebiten.Termination when the user asks to quit.
func (g *Game) handleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.requestSpawn()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.clearOrbs()
	}

	mx, my := ebiten.CursorPosition()
	cursor := sim.Vec{X: float64(mx), Y: float64(my)}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if image.Pt(mx, my).In(g.button) {
			g.requestSpawn()
		} else {
			g.loop.World.Grab(cursor)
		}
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.loop.World.MoveGrab(cursor, g.updateRate())
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.loop.World.Release()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.removeOrbAt(cursor)
	}

	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		if image.Pt(ebiten.TouchPosition(id)).In(g.button) {
			g.requestSpawn()
		}
	}
	return nil
}

// updateRate is the measured Update frequency, falling back to the nominal
// TPS before ebiten has a measurement.
func (g *Game) updateRate() float64 {
	if tps := ebiten.ActualTPS(); tps >= 1 {
		return tps
	}
	return defaultTPS
}
