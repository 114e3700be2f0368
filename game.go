package main

import (
	"context"
	"image"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"orbdrop/internal/assets"
	"orbdrop/internal/sim"
	"orbdrop/internal/sound"
)

// Game wires the simulation loop to ebiten: it owns the loop, the scene
// images and the audio pipeline.
type Game struct {
	cfg  gameConfig
	loop *sim.Loop

	ctx    context.Context
	cancel context.CancelFunc

	spawner *sim.Spawner[image.Image]

	blur     *blurrer
	textures map[image.Image]*orbTextures
	scene    *scene
	button   image.Rectangle

	audioCtx *audio.Context
	bounce   *bouncePlayer
	played   int

	debug           bool
	resumes         int
	lastStats       sim.TickStats
	lastSimDuration time.Duration
	touchIDs        []ebiten.TouchID
}

// newGame builds the loop, the static boundaries and the audio player. pcm may
// be nil to run silently.
func newGame(ctx context.Context, cfg gameConfig, loader *assets.Loader, pcm []byte) *Game {
	ctx, cancel := context.WithCancel(ctx)
	worldCfg := sim.DefaultWorldConfig()
	worldCfg.Gravity = sim.Vec{X: 0, Y: cfg.gravity}

	g := &Game{
		cfg: cfg,
		loop: sim.NewLoop(sim.LoopConfig{
			World:         worldCfg,
			StepHz:        cfg.stepHz,
			MaxStepMillis: cfg.maxStepMillis,
			MaxSubsteps:   maxSubsteps,
			ResumeGap:     resumeGap,
		}),
		ctx:      ctx,
		cancel:   cancel,
		textures: make(map[image.Image]*orbTextures),
		scene:    newScene(cfg.width, cfg.height),
		button: image.Rect(
			buttonMargin, cfg.height-buttonMargin-buttonHeight,
			buttonMargin+buttonWidth, cfg.height-buttonMargin,
		),
		debug: cfg.debug,
	}
	g.spawner = sim.NewSpawner(g.loop.Registry, spawnQueueSize, loader.Orb, g.newOrbProxy)
	sim.CreateViewportBoundaries(g.loop.World, float64(cfg.width), float64(cfg.height))

	if cfg.blur > 0 {
		if b, err := newBlurrer(); err != nil {
			log.Printf("Orb glow disabled: %v", err)
		} else {
			g.blur = b
		}
	}

	if len(pcm) > 0 {
		g.audioCtx = audio.NewContext(audioSampleRate)
		g.bounce = newBouncePlayer(g.audioCtx, pcm)
	}
	return g
}

// Update handles input, finishes pending spawns, advances the simulation and
// plays collision sounds. The loop keeps running while the window is visible
// but unfocused; a long gap between updates restarts its clock instead.
func (g *Game) Update() error {
	if err := g.handleInput(); err != nil {
		return err
	}
	g.finishSpawns()

	simStart := time.Now()
	g.lastStats = g.loop.Tick(simStart)
	g.lastSimDuration = time.Since(simStart)
	if g.lastStats.Resumed {
		g.resumes++
	}

	g.playCollisions(simStart)
	return nil
}

// requestSpawn loads the orb assets off the update goroutine. The body and
// sprite are created together in finishSpawns once the load completes.
func (g *Game) requestSpawn() {
	g.spawner.Request(g.ctx, sim.SpawnRequest{
		Pos:    sim.Vec{X: float64(g.cfg.width) / 2, Y: 0},
		Radius: g.cfg.orbRadius,
		Props:  sim.DefaultOrbProps(),
	})
}

// finishSpawns inserts every orb whose assets are ready. It runs before the
// tick so new entities are synced in the same frame.
func (g *Game) finishSpawns() {
	if _, err := g.spawner.Finish(); err != nil {
		log.Printf("Spawning orb failed: %v", err)
	}
}

// newOrbProxy builds the sprite for a loaded orb image, blurring each
// distinct image once.
func (g *Game) newOrbProxy(img image.Image) sim.Proxy {
	tex, ok := g.textures[img]
	if !ok {
		tex = newOrbTextures(img, 2*g.cfg.orbRadius, g.cfg.blur, g.blur)
		g.textures[img] = tex
	}
	return newOrbSprite(tex)
}

func (g *Game) removeOrbAt(pos sim.Vec) {
	b := g.loop.World.BodyAt(pos)
	if b == nil {
		return
	}
	e, ok := g.loop.Registry.Lookup(b.ID())
	if !ok {
		return
	}
	if err := g.loop.Registry.Remove(e.ID); err != nil {
		log.Printf("Removing orb %d: %v", e.ID, err)
	}
}

func (g *Game) clearOrbs() {
	if err := g.loop.Registry.Clear(); err != nil {
		log.Printf("Clearing orbs: %v", err)
	}
}

// playCollisions drains the world's collision events, playing one bounce per
// audible impact.
func (g *Game) playCollisions(now time.Time) {
	for {
		ev, ok := g.loop.World.PollEvent()
		if !ok {
			return
		}
		if g.bounce == nil {
			continue
		}
		if g.bounce.play(now, sound.VolumeForSpeed(ev.Speed)) {
			g.played++
		}
	}
}

// Close stops pending loads and releases audio players and the world.
func (g *Game) Close() {
	g.cancel()
	if g.bounce != nil {
		g.bounce.Close()
	}
	g.loop.Close()
}
