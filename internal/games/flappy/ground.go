package flappy

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/physics"
)

// Ground is the immovable strip at the bottom of the world. It lives for the
// whole session; only its texture scroll is started and stopped.
type Ground struct {
	body      physics.Body
	speed     float64
	scrolling bool
	offset    float64
}

// NewGround creates a ground strip spanning the world width, already scrolling.
func NewGround(cfg config.FlappyConfig) *Ground {
	w := cfg.World.Width
	h := cfg.World.GroundHeight
	g := &Ground{
		body:      physics.NewBody(w/2, cfg.World.GroundY+h/2, w, h),
		speed:     cfg.Physics.ScrollSpeed,
		scrolling: true,
	}
	g.body.Immovable = true
	return g
}

// Body returns the ground body.
func (g *Ground) Body() *physics.Body {
	return &g.body
}

// Bodies implements physics.Collidable.
func (g *Ground) Bodies() []*physics.Body {
	return []*physics.Body{&g.body}
}

// Start resumes the texture scroll.
func (g *Ground) Start() { g.scrolling = true }

// Stop halts the texture scroll.
func (g *Ground) Stop() { g.scrolling = false }

// Scrolling reports whether the texture is moving.
func (g *Ground) Scrolling() bool { return g.scrolling }

// Offset returns how far the texture has scrolled left, wrapped to the ground width.
func (g *Ground) Offset() float64 { return g.offset }

// Tick advances the texture scroll.
func (g *Ground) Tick(dt float64) {
	if !g.scrolling {
		return
	}
	g.offset = math.Mod(g.offset+g.speed*dt, g.body.W)
}
