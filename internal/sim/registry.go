package sim

import "math"

// EntityID identifies a spawned entity. It equals the ID of the entity's body.
type EntityID uint64

// Proxy is the visual stand-in for a body. The sync pass only ever writes its
// transform.
type Proxy interface {
	SetTransform(x, y, rotation float64)
}

// Detacher is implemented by proxies that must be unhooked from a scene when
// their entity is removed.
type Detacher interface {
	Detach()
}

// Entity pairs one body with one proxy.
type Entity struct {
	ID    EntityID
	Body  *Body
	Proxy Proxy
}

// Registry is the ordered set of live entities. It is not safe for concurrent
// use, and it rejects Spawn, Remove and Clear while ForEach is running.
type Registry struct {
	world     *World
	entities  []*Entity
	index     map[EntityID]int
	iterating int
}

// NewRegistry returns an empty registry whose entities live in w.
func NewRegistry(w *World) *Registry {
	return &Registry{
		world: w,
		index: make(map[EntityID]int),
	}
}

// Spawn creates a dynamic circle at pos, pairs it with proxy and returns the
// new entity's ID. The proxy receives the initial transform before Spawn
// returns, so it is never drawn at a stale origin.
func (r *Registry) Spawn(pos Vec, radius float64, props BodyProps, proxy Proxy) (EntityID, error) {
	if r.iterating > 0 {
		return 0, ErrMutationDuringIteration
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		return 0, ErrInvalidRadius
	}
	if proxy == nil {
		return 0, ErrNilProxy
	}
	body := r.world.AddCircle(pos, radius, props)
	x, y := body.Position()
	proxy.SetTransform(x, y, body.Angle())

	e := &Entity{ID: EntityID(body.ID()), Body: body, Proxy: proxy}
	r.index[e.ID] = len(r.entities)
	r.entities = append(r.entities, e)
	return e.ID, nil
}

// Remove deletes the entity's body from the world and the entity from the
// registry. A proxy implementing Detacher is detached as part of the same call.
func (r *Registry) Remove(id EntityID) error {
	if r.iterating > 0 {
		return ErrMutationDuringIteration
	}
	i, ok := r.index[id]
	if !ok {
		return ErrUnknownEntity
	}
	e := r.entities[i]
	r.world.Remove(e.Body)
	if d, ok := e.Proxy.(Detacher); ok {
		d.Detach()
	}

	copy(r.entities[i:], r.entities[i+1:])
	r.entities[len(r.entities)-1] = nil
	r.entities = r.entities[:len(r.entities)-1]
	delete(r.index, id)
	for j := i; j < len(r.entities); j++ {
		r.index[r.entities[j].ID] = j
	}
	return nil
}

// Clear removes every entity.
func (r *Registry) Clear() error {
	if r.iterating > 0 {
		return ErrMutationDuringIteration
	}
	for _, e := range r.entities {
		r.world.Remove(e.Body)
		if d, ok := e.Proxy.(Detacher); ok {
			d.Detach()
		}
	}
	clear(r.entities)
	r.entities = r.entities[:0]
	clear(r.index)
	return nil
}

// ForEach calls fn for every entity in spawn order.
func (r *Registry) ForEach(fn func(body *Body, proxy Proxy)) {
	r.iterating++
	defer func() { r.iterating-- }()
	for _, e := range r.entities {
		fn(e.Body, e.Proxy)
	}
}

// Get returns the entity with the given id.
func (r *Registry) Get(id EntityID) (*Entity, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return r.entities[i], true
}

// Lookup maps a body back to its entity, for bodies reported by collision
// events or point queries. Boundaries have no entity.
func (r *Registry) Lookup(id BodyID) (*Entity, bool) {
	return r.Get(EntityID(id))
}

// Len returns the number of live entities.
func (r *Registry) Len() int { return len(r.entities) }
