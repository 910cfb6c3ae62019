package flappy

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/physics"
)

// ErrInvalidGeometry is returned when a gate is configured with a non-positive size or gap.
var ErrInvalidGeometry = errors.New("flappy: invalid gate geometry")

// PipeSize is the size of each half of a gate.
type PipeSize struct {
	W, H float64
}

// Gate is a pair of pipes with a passable gap between them. Both pipes always
// share the same X; only setX writes it.
type Gate struct {
	top       physics.Body
	bottom    physics.Body
	gap       float64
	exists    bool
	hasScored bool
}

// Configure sets the pipe size and gap height.
func (g *Gate) Configure(pipe PipeSize, gap float64) error {
	if pipe.W <= 0 || pipe.H <= 0 {
		return fmt.Errorf("%w: pipe %gx%g", ErrInvalidGeometry, pipe.W, pipe.H)
	}
	if gap <= 0 {
		return fmt.Errorf("%w: gap %g", ErrInvalidGeometry, gap)
	}
	g.gap = gap
	for _, b := range g.Bodies() {
		b.W, b.H = pipe.W, pipe.H
		b.Immovable = true
		b.Gravity = false
	}
	return nil
}

// Reset places the gate with its gap centered at (x, y), moving left at speed.
func (g *Gate) Reset(x, y, speed float64) {
	g.top.Y = y - g.gap/2 - g.top.H/2
	g.bottom.Y = y + g.gap/2 + g.bottom.H/2
	g.setX(x)
	g.top.VX, g.bottom.VX = -speed, -speed
	g.top.VY, g.bottom.VY = 0, 0
	g.hasScored = false
	g.exists = true
}

// Tick moves the gate and retires it once it has fully left the world on the left.
func (g *Gate) Tick(dt float64) {
	if !g.exists {
		return
	}
	for _, b := range g.Bodies() {
		b.Step(dt, 0)
	}
	g.setX(g.top.X)
	if g.top.Right() < 0 {
		g.exists = false
	}
}

// Freeze stops horizontal motion.
func (g *Gate) Freeze() {
	g.top.VX, g.bottom.VX = 0, 0
}

func (g *Gate) setX(x float64) {
	g.top.X = x
	g.bottom.X = x
}

// Top returns the upper pipe.
func (g *Gate) Top() *physics.Body { return &g.top }

// Bottom returns the lower pipe.
func (g *Gate) Bottom() *physics.Body { return &g.bottom }

// Bodies implements physics.Collidable.
func (g *Gate) Bodies() []*physics.Body {
	return []*physics.Body{&g.top, &g.bottom}
}

// X returns the shared horizontal center of both pipes.
func (g *Gate) X() float64 { return g.top.X }

// GapCenter returns the vertical center of the passable gap.
func (g *Gate) GapCenter() float64 { return g.top.Bottom() + g.gap/2 }

// Gap returns the gap height.
func (g *Gate) Gap() float64 { return g.gap }

// Exists reports whether the gate is live in the world.
func (g *Gate) Exists() bool { return g.exists }

// HasScored reports whether the gate has already awarded its point.
func (g *Gate) HasScored() bool { return g.hasScored }
