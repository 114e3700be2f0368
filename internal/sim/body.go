package sim

import (
	"math"

	"github.com/jakecoffman/cp"
)

// BodyID identifies a body for the lifetime of its world. IDs are never reused.
type BodyID uint64

// Vec is a point in world space. World units are screen pixels with +Y down.
type Vec struct {
	X, Y float64
}

// BodyProps are the material properties applied to a new body's shape.
type BodyProps struct {
	Friction    float64
	Restitution float64
	// Density in mass per square pixel. Only used for dynamic bodies.
	Density float64
	// Angle is the initial rotation in radians.
	Angle float64
}

// DefaultOrbProps gives orbs a little grip and a soft bounce.
func DefaultOrbProps() BodyProps {
	return BodyProps{Friction: 0.1, Restitution: 0.5, Density: 0.001}
}

// DefaultBoundaryProps are used for floors and walls.
func DefaultBoundaryProps() BodyProps {
	return BodyProps{Friction: 0, Restitution: 0.6}
}

// Body is a read-only handle on a physics body and its single collision shape.
// Only the world mutates it.
type Body struct {
	id     BodyID
	body   *cp.Body
	shape  *cp.Shape
	radius float64
	width  float64
	height float64
}

func (b *Body) ID() BodyID { return b.id }

// Position returns the body's center in world space.
func (b *Body) Position() (x, y float64) {
	p := b.body.Position()
	return p.X, p.Y
}

// Angle returns the body's rotation in radians.
func (b *Body) Angle() float64 { return b.body.Angle() }

// Velocity returns the body's linear velocity in pixels per second.
func (b *Body) Velocity() (vx, vy float64) {
	v := b.body.Velocity()
	return v.X, v.Y
}

// IsStatic reports whether the body is a boundary.
func (b *Body) IsStatic() bool { return b.body.GetType() == cp.BODY_STATIC }

// Radius is zero for rectangular bodies.
func (b *Body) Radius() float64 { return b.radius }

// Size returns the bounding dimensions of the body's shape in local space.
func (b *Body) Size() (w, h float64) {
	if b.radius > 0 {
		return 2 * b.radius, 2 * b.radius
	}
	return b.width, b.height
}

// Friction and Restitution report the shape's material.
func (b *Body) Friction() float64    { return b.shape.Friction() }
func (b *Body) Restitution() float64 { return b.shape.Elasticity() }

func circleMass(radius, density float64) float64 {
	m := density * math.Pi * radius * radius
	if m <= 0 {
		return 1
	}
	return m
}

func bodyIDOf(b *cp.Body) BodyID {
	if b == nil {
		return 0
	}
	id, _ := b.UserData.(BodyID)
	return id
}
