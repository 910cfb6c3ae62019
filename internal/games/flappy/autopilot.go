package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Autopilot decides flaps for a session. It aims for the gap center of the
// nearest gate ahead, or the field center when no gate is ahead. It is
// deterministic, so a seed plus an autopilot always replays the same run.
type Autopilot struct {
	// Slack is how far below the target the flyer may sink before flapping.
	Slack float64
}

// NewAutopilot returns an autopilot with a slack of half the flyer height.
func NewAutopilot(cfg config.FlappyConfig) *Autopilot {
	return &Autopilot{Slack: cfg.Flyer.Height / 2}
}

// Next returns the input frame for the session's next tick.
func (a *Autopilot) Next(s *Session) core.InputFrame {
	in := core.NewInputFrame()
	switch s.State() {
	case StateReady:
		in.Set(core.ActionJump)
		return in
	case StateDead:
		return in
	}

	fb := s.Flyer().Body()
	target := s.Config().FieldCenter()
	nearest := -1.0
	for _, g := range s.Pool().Gates() {
		if !g.Exists() || g.Top().Right() < fb.Left() {
			continue
		}
		if nearest < 0 || g.X() < nearest {
			nearest = g.X()
			target = g.GapCenter()
		}
	}

	if fb.Y > target+a.Slack && fb.VY >= 0 {
		in.Set(core.ActionJump)
	}
	return in
}
