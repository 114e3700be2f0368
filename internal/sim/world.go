package sim

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	collisionOrb cp.CollisionType = iota + 1
	collisionBoundary
)

const (
	solverIterations = 20
	grabMaxForce     = 5e6
	grabErrorBias    = 0.15
)

// WorldConfig configures a new World.
type WorldConfig struct {
	Gravity Vec
	// EventBuffer is the capacity of the collision event channel.
	EventBuffer int
}

// DefaultWorldConfig returns screen-space gravity of 1000 px/s² downward.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		Gravity:     Vec{X: 0, Y: 1000},
		EventBuffer: 64,
	}
}

// CollisionEvent reports two bodies that started touching during a step.
type CollisionEvent struct {
	A, B BodyID
	// Speed is the relative speed of the bodies at first contact, px/s.
	Speed float64
}

// World owns the physics space and every body in it.
type World struct {
	space  *cp.Space
	bodies map[BodyID]*Body
	nextID BodyID

	events  chan CollisionEvent
	dropped uint64

	mouse   *cp.Body
	grab    *cp.Constraint
	grabbed *Body
}

// NewWorld creates an empty space with the configured gravity and collision
// reporting between orbs and everything else.
func NewWorld(cfg WorldConfig) *World {
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = DefaultWorldConfig().EventBuffer
	}
	space := cp.NewSpace()
	space.Iterations = solverIterations
	space.SetGravity(cp.Vector{X: cfg.Gravity.X, Y: cfg.Gravity.Y})

	w := &World{
		space:  space,
		bodies: make(map[BodyID]*Body),
		events: make(chan CollisionEvent, cfg.EventBuffer),
		mouse:  cp.NewKinematicBody(),
	}
	for _, pair := range [][2]cp.CollisionType{
		{collisionOrb, collisionOrb},
		{collisionOrb, collisionBoundary},
	} {
		handler := space.NewCollisionHandler(pair[0], pair[1])
		handler.BeginFunc = w.beginContact
	}
	return w
}

func (w *World) beginContact(arb *cp.Arbiter, _ *cp.Space, _ any) bool {
	a, b := arb.Bodies()
	ev := CollisionEvent{
		A:     bodyIDOf(a),
		B:     bodyIDOf(b),
		Speed: a.Velocity().Sub(b.Velocity()).Length(),
	}
	select {
	case w.events <- ev:
	default:
		w.dropped++
	}
	return true
}

// Step integrates the space by dt seconds.
func (w *World) Step(dt float64) {
	w.space.Step(dt)
}

// PollEvent returns the next pending collision event, if any. The world never
// blocks on a full buffer; overflowing events are counted by Dropped.
func (w *World) PollEvent() (CollisionEvent, bool) {
	select {
	case ev := <-w.events:
		return ev, true
	default:
		return CollisionEvent{}, false
	}
}

// Dropped returns the number of collision events discarded on overflow.
func (w *World) Dropped() uint64 { return w.dropped }

// Gravity returns the space gravity.
func (w *World) Gravity() Vec {
	g := w.space.Gravity()
	return Vec{X: g.X, Y: g.Y}
}

// Len returns the number of bodies, static ones included.
func (w *World) Len() int { return len(w.bodies) }

// Body looks up a live body by id.
func (w *World) Body(id BodyID) (*Body, bool) {
	b, ok := w.bodies[id]
	return b, ok
}

// AddCircle creates a dynamic circle centered at pos.
func (w *World) AddCircle(pos Vec, radius float64, props BodyProps) *Body {
	mass := circleMass(radius, props.Density)
	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	body.SetAngle(props.Angle)
	w.space.AddBody(body)

	shape := w.space.AddShape(cp.NewCircle(body, radius, cp.Vector{}))
	shape.SetFriction(props.Friction)
	shape.SetElasticity(props.Restitution)
	shape.SetCollisionType(collisionOrb)

	return w.register(&Body{body: body, shape: shape, radius: radius})
}

// AddStaticBox creates an immovable rectangle centered at pos.
func (w *World) AddStaticBox(pos Vec, width, height float64, props BodyProps) *Body {
	body := cp.NewStaticBody()
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	body.SetAngle(props.Angle)
	w.space.AddBody(body)

	shape := w.space.AddShape(cp.NewBox(body, width, height, 0))
	shape.SetFriction(props.Friction)
	shape.SetElasticity(props.Restitution)
	shape.SetCollisionType(collisionBoundary)

	return w.register(&Body{body: body, shape: shape, width: width, height: height})
}

func (w *World) register(b *Body) *Body {
	w.nextID++
	b.id = w.nextID
	b.body.UserData = b.id
	w.bodies[b.id] = b
	return b
}

// Remove deletes the body and its shape from the space. Removing a body that
// is being dragged releases the drag first.
func (w *World) Remove(b *Body) {
	if b == nil {
		return
	}
	if _, ok := w.bodies[b.id]; !ok {
		return
	}
	if w.grabbed == b {
		w.Release()
	}
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
	delete(w.bodies, b.id)
}

// BodyAt returns the body whose shape contains the point, or nil.
func (w *World) BodyAt(pos Vec) *Body {
	info := w.space.PointQueryNearest(cp.Vector{X: pos.X, Y: pos.Y}, 0, cp.SHAPE_FILTER_ALL)
	if info == nil || info.Shape == nil {
		return nil
	}
	return w.bodies[bodyIDOf(info.Shape.Body())]
}

// Grab attaches the dynamic body under pos to the pointer with a pivot joint.
func (w *World) Grab(pos Vec) bool {
	w.Release()
	b := w.BodyAt(pos)
	if b == nil || b.IsStatic() {
		return false
	}
	p := cp.Vector{X: pos.X, Y: pos.Y}
	w.mouse.SetPosition(p)
	w.mouse.SetVelocityVector(cp.Vector{})

	joint := cp.NewPivotJoint2(w.mouse, b.body, cp.Vector{}, b.body.WorldToLocal(p))
	joint.SetMaxForce(grabMaxForce)
	joint.SetErrorBias(math.Pow(1-grabErrorBias, 60))
	w.grab = w.space.AddConstraint(joint)
	w.grabbed = b
	return true
}

// MoveGrab eases the pointer body toward pos. hz is the caller's update rate,
// used to derive the pointer velocity the joint sees.
func (w *World) MoveGrab(pos Vec, hz float64) {
	if w.grab == nil {
		return
	}
	cur := w.mouse.Position()
	next := cur.Lerp(cp.Vector{X: pos.X, Y: pos.Y}, 0.25)
	w.mouse.SetVelocityVector(next.Sub(cur).Mult(hz))
	w.mouse.SetPosition(next)
}

// Grabbed returns the body being dragged, or nil.
func (w *World) Grabbed() *Body { return w.grabbed }

// Release ends the current drag, if any. The body keeps its velocity.
func (w *World) Release() {
	if w.grab == nil {
		return
	}
	w.space.RemoveConstraint(w.grab)
	w.grab = nil
	w.grabbed = nil
}

// Close removes every body from the space.
func (w *World) Close() {
	w.Release()
	for _, b := range w.bodies {
		w.space.RemoveShape(b.shape)
		w.space.RemoveBody(b.body)
	}
	clear(w.bodies)
}
