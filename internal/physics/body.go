// Package physics implements the small arcade physics model used by the game:
// center-anchored axis-aligned boxes with velocity, optional gravity and
// overlap separation. It is not a general physics engine.
package physics

import "math"

// DefaultGravity is the downward acceleration in world units per second squared.
const DefaultGravity = 1200.0

// Body is a moving rectangle. X and Y are the center of the box.
type Body struct {
	X, Y   float64
	W, H   float64
	VX, VY float64

	// Gravity enables gravitational acceleration on VY.
	Gravity bool
	// Immovable bodies are never moved by collision response.
	Immovable bool
}

// NewBody creates a body centered at (x, y) with the given size.
func NewBody(x, y, w, h float64) Body {
	return Body{X: x, Y: y, W: w, H: h}
}

// Left returns the x-coordinate of the left edge.
func (b *Body) Left() float64 { return b.X - b.W/2 }

// Right returns the x-coordinate of the right edge.
func (b *Body) Right() float64 { return b.X + b.W/2 }

// Top returns the y-coordinate of the top edge.
func (b *Body) Top() float64 { return b.Y - b.H/2 }

// Bottom returns the y-coordinate of the bottom edge.
func (b *Body) Bottom() float64 { return b.Y + b.H/2 }

// Step integrates one tick of dt seconds. Gravity is applied to the velocity
// before the velocity is applied to the position.
func (b *Body) Step(dt, gravity float64) {
	if b.Gravity {
		b.VY += gravity * dt
	}
	b.X += b.VX * dt
	b.Y += b.VY * dt
}

// Overlaps reports whether two bodies intersect. Touching edges do not count.
func (b *Body) Overlaps(other *Body) bool {
	if b.Left() >= other.Right() || other.Left() >= b.Right() {
		return false
	}
	if b.Top() >= other.Bottom() || other.Top() >= b.Bottom() {
		return false
	}
	return true
}

// Collidable is anything made of bodies that can be tested against the flyer.
type Collidable interface {
	Bodies() []*Body
}

// CollideWith tests a against b. Without overlap nothing happens and false is
// returned. On overlap onCollide is invoked first (if non-nil), then the bodies
// are pushed apart along the axis of least penetration. Only movable bodies are
// displaced, and their velocity along that axis is zeroed.
func CollideWith(a, b *Body, onCollide func(a, b *Body)) bool {
	if !a.Overlaps(b) {
		return false
	}
	if onCollide != nil {
		onCollide(a, b)
	}
	separate(a, b)
	return true
}

// CollideAny runs CollideWith against every body of c and reports whether any overlapped.
func CollideAny(a *Body, c Collidable, onCollide func(a, b *Body)) bool {
	hit := false
	for _, b := range c.Bodies() {
		if CollideWith(a, b, onCollide) {
			hit = true
		}
	}
	return hit
}

func separate(a, b *Body) {
	if a.Immovable && b.Immovable {
		return
	}

	overlapX := math.Min(a.Right(), b.Right()) - math.Max(a.Left(), b.Left())
	overlapY := math.Min(a.Bottom(), b.Bottom()) - math.Max(a.Top(), b.Top())

	// Share of the correction each body takes
	shareA, shareB := 0.5, 0.5
	switch {
	case a.Immovable:
		shareA, shareB = 0, 1
	case b.Immovable:
		shareA, shareB = 1, 0
	}

	if overlapY <= overlapX {
		dir := 1.0 // push a down
		if a.Y < b.Y {
			dir = -1
		}
		a.Y += dir * overlapY * shareA
		b.Y -= dir * overlapY * shareB
		if shareA > 0 {
			a.VY = 0
		}
		if shareB > 0 {
			b.VY = 0
		}
		return
	}

	dir := 1.0
	if a.X < b.X {
		dir = -1
	}
	a.X += dir * overlapX * shareA
	b.X -= dir * overlapX * shareB
	if shareA > 0 {
		a.VX = 0
	}
	if shareB > 0 {
		b.VX = 0
	}
}
