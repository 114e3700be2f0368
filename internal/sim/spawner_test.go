package sim

import (
	"context"
	"errors"
	"image"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"orbdrop/internal/assets"
)

// finishAll drains the spawner until no load is in flight.
func finishAll[A any](t *testing.T, s *Spawner[A]) (int, error) {
	t.Helper()
	var (
		total int
		errs  []error
	)
	deadline := time.Now().Add(5 * time.Second)
	for {
		n, err := s.Finish()
		total += n
		if err != nil {
			errs = append(errs, err)
		}
		if s.Pending() == 0 {
			return total, errors.Join(errs...)
		}
		if time.Now().After(deadline) {
			t.Fatalf("%d spawns still pending", s.Pending())
		}
		time.Sleep(time.Millisecond)
	}
}

var orbRequest = SpawnRequest{Pos: Vec{X: viewW / 2, Y: 0}, Radius: 125, Props: DefaultOrbProps()}

func TestSpawnerMissingTextureLeavesRegistryUntouched(t *testing.T) {
	w, r := newTestRegistry()
	CreateViewportBoundaries(w, viewW, viewH)
	if _, err := r.Spawn(Vec{X: 100, Y: 100}, 50, DefaultOrbProps(), &fakeProxy{}); err != nil {
		t.Fatal(err)
	}
	bodies := w.Len()

	loader := assets.NewLoader(filepath.Join(t.TempDir(), "missing.png"))
	built := 0
	s := NewSpawner(r, 4, loader.Orb, func(image.Image) Proxy {
		built++
		return &fakeProxy{}
	})
	if !s.Request(context.Background(), orbRequest) {
		t.Fatal("request rejected")
	}
	if s.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", s.Pending())
	}

	n, err := finishAll(t, s)
	if n != 0 {
		t.Fatalf("spawned %d from a failed load", n)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Finish error = %v, want fs.ErrNotExist", err)
	}
	if s.Pending() != 0 || s.Failed() != 1 {
		t.Fatalf("pending=%d failed=%d, want 0, 1", s.Pending(), s.Failed())
	}
	if r.Len() != 1 || w.Len() != bodies {
		t.Fatalf("registry=%d world=%d, want 1, %d", r.Len(), w.Len(), bodies)
	}
	if built != 0 {
		t.Fatalf("built %d proxies for a failed load", built)
	}
}

func TestSpawnerInsertsLoadedEntity(t *testing.T) {
	_, r := newTestRegistry()
	loader := assets.NewLoader("")
	var proxies []*fakeProxy
	s := NewSpawner(r, 4, loader.Orb, func(image.Image) Proxy {
		p := &fakeProxy{}
		proxies = append(proxies, p)
		return p
	})
	for i := 0; i < 3; i++ {
		if !s.Request(context.Background(), orbRequest) {
			t.Fatalf("request %d rejected", i)
		}
	}
	n, err := finishAll(t, s)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 || r.Len() != 3 || s.Failed() != 0 {
		t.Fatalf("spawned=%d len=%d failed=%d, want 3, 3, 0", n, r.Len(), s.Failed())
	}
	for i, p := range proxies {
		if p.writes == 0 || p.x != orbRequest.Pos.X {
			t.Fatalf("proxy %d never placed: %+v", i, p)
		}
	}
}

func TestSpawnerLimitsInFlightLoads(t *testing.T) {
	_, r := newTestRegistry()
	release := make(chan struct{})
	s := NewSpawner(r, 2, func(ctx context.Context) (int, error) {
		<-release
		return 1, nil
	}, func(int) Proxy { return &fakeProxy{} })

	if !s.Request(context.Background(), orbRequest) || !s.Request(context.Background(), orbRequest) {
		t.Fatal("requests under the limit rejected")
	}
	if s.Request(context.Background(), orbRequest) {
		t.Fatal("third request accepted over a limit of 2")
	}
	if n, _ := s.Finish(); n != 0 || r.Len() != 0 {
		t.Fatalf("finished %d before loads completed", n)
	}
	close(release)
	if n, err := finishAll(t, s); n != 2 || err != nil {
		t.Fatalf("finishAll = %d, %v; want 2, nil", n, err)
	}
}

func TestSpawnerRejectedSpawnDetachesProxy(t *testing.T) {
	_, r := newTestRegistry()
	proxy := &fakeProxy{}
	s := NewSpawner(r, 1, func(context.Context) (struct{}, error) {
		return struct{}{}, nil
	}, func(struct{}) Proxy { return proxy })

	bad := orbRequest
	bad.Radius = 0
	s.Request(context.Background(), bad)
	_, err := finishAll(t, s)
	if !errors.Is(err, ErrInvalidRadius) {
		t.Fatalf("error = %v, want ErrInvalidRadius", err)
	}
	if r.Len() != 0 || s.Failed() != 1 || !proxy.detached {
		t.Fatalf("len=%d failed=%d detached=%v, want 0, 1, true", r.Len(), s.Failed(), proxy.detached)
	}
}
