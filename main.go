package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"orbdrop/internal/assets"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	flag.Parse()
	if err := loadEnvFile(*envFileFlag); err != nil {
		log.Fatalf("Reading env file: %v", err)
	}
	if err := applyEnvDefaults(flag.CommandLine); err != nil {
		log.Fatalf("Applying env defaults: %v", err)
	}
	cfg := configFromFlags()

	if *cpuProfileFlag != "" {
		stop, err := startCPUProfile(*cpuProfileFlag, *cpuProfileForFlag)
		if err != nil {
			log.Fatalf("CPU profiling failed: %v", err)
		}
		defer stop()
		log.Printf("Recording CPU profile to %s for %s", *cpuProfileFlag, *cpuProfileForFlag)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loader := assets.NewLoader(cfg.texturePath)
	pcm, err := preloadAssets(ctx, loader, cfg.soundPath, cfg.mute)
	if err != nil {
		log.Fatalf("Loading assets failed: %v", err)
	}

	g := newGame(ctx, cfg, loader, pcm)
	defer g.Close()

	ebiten.SetWindowSize(cfg.width, cfg.height)
	ebiten.SetWindowTitle("Orb Drop")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetRunnableOnUnfocused(true)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Printf("Game exited: %v", err)
	}
}
