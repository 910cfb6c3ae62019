package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/physics"
)

// collide runs the per-tick collision and scoring pass in a fixed order:
// flyer against ground, then each gate in pool order, scoring before hit
// testing. Scoring does not depend on whether the flyer already died this tick.
func (s *Session) collide() {
	fb := s.flyer.Body()
	onHit := func(_, _ *physics.Body) { s.die() }

	physics.CollideAny(fb, s.ground, onHit)

	for _, g := range s.pool.Gates() {
		if !g.exists {
			continue
		}
		if !g.hasScored && g.top.X <= fb.X {
			g.hasScored = true
			s.score++
			s.emit(core.EventScore)
			s.sound.Play(SoundScore)
		}
		physics.CollideAny(fb, g, onHit)
	}
}
