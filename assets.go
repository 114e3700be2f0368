package main

import (
	"context"

	"golang.org/x/sync/errgroup"

	"orbdrop/internal/assets"
)

// preloadAssets decodes the orb image and the bounce sound in parallel before
// the window opens. The returned PCM is nil when muted.
func preloadAssets(ctx context.Context, loader *assets.Loader, soundPath string, mute bool) ([]byte, error) {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		_, err := loader.Orb(ctx)
		return err
	})
	var pcm []byte
	if !mute {
		eg.Go(func() error {
			var err error
			pcm, err = loadBouncePCM(audioSampleRate, soundPath)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return pcm, nil
}
