package sim

import (
	"context"
	"errors"
	"fmt"
)

// SpawnRequest describes the body an asynchronous spawn will create.
type SpawnRequest struct {
	Pos    Vec
	Radius float64
	Props  BodyProps
}

type spawnDone[A any] struct {
	req   SpawnRequest
	asset A
	err   error
}

// Spawner loads an entity's asset off the tick goroutine and inserts the
// entity once the asset is ready. Body and proxy are created together in
// Finish, so a failed load never leaves a partial entity in the registry.
// Request and Finish must be called from the goroutine that owns the registry.
type Spawner[A any] struct {
	reg   *Registry
	load  func(context.Context) (A, error)
	build func(A) Proxy

	done    chan spawnDone[A]
	limit   int
	pending int
	failed  int
}

// NewSpawner returns a spawner inserting into r. At most limit loads are in
// flight at once; load runs on its own goroutine, build on the caller's.
func NewSpawner[A any](r *Registry, limit int, load func(context.Context) (A, error), build func(A) Proxy) *Spawner[A] {
	if limit <= 0 {
		limit = 1
	}
	return &Spawner[A]{
		reg:   r,
		load:  load,
		build: build,
		done:  make(chan spawnDone[A], limit),
		limit: limit,
	}
}

// Request starts loading the asset for req. It reports false when the
// in-flight limit is reached.
func (s *Spawner[A]) Request(ctx context.Context, req SpawnRequest) bool {
	if s.pending >= s.limit {
		return false
	}
	s.pending++
	go func() {
		asset, err := s.load(ctx)
		// The channel holds limit results, so this never blocks.
		s.done <- spawnDone[A]{req: req, asset: asset, err: err}
	}()
	return true
}

// Finish inserts every entity whose asset has finished loading and returns
// how many were spawned. Failed loads and rejected spawns are counted and
// returned joined; they leave the registry untouched.
func (s *Spawner[A]) Finish() (int, error) {
	var (
		spawned int
		errs    []error
	)
	for {
		select {
		case d := <-s.done:
			s.pending--
			if err := s.insert(d); err != nil {
				s.failed++
				errs = append(errs, err)
				continue
			}
			spawned++
		default:
			return spawned, errors.Join(errs...)
		}
	}
}

func (s *Spawner[A]) insert(d spawnDone[A]) error {
	if d.err != nil {
		return fmt.Errorf("loading assets: %w", d.err)
	}
	proxy := s.build(d.asset)
	if _, err := s.reg.Spawn(d.req.Pos, d.req.Radius, d.req.Props, proxy); err != nil {
		if det, ok := proxy.(Detacher); ok {
			det.Detach()
		}
		return err
	}
	return nil
}

// Pending is the number of loads not yet finished.
func (s *Spawner[A]) Pending() int { return s.pending }

// Failed is the number of spawns abandoned so far.
func (s *Spawner[A]) Failed() int { return s.failed }
