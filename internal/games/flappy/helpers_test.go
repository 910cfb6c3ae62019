package flappy

import (
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

const testDt = 1.0 / 60

type recordingSound struct {
	ids []string
}

func (r *recordingSound) Play(id string) {
	r.ids = append(r.ids, id)
}

func (r *recordingSound) count(id string) int {
	n := 0
	for _, s := range r.ids {
		if s == id {
			n++
		}
	}
	return n
}

type recordingBoard struct {
	scores []int
}

func (r *recordingBoard) Present(score int) {
	r.scores = append(r.scores, score)
}

func newTestSession(t *testing.T, mutate func(*config.FlappyConfig), opts ...Option) *Session {
	t.Helper()
	cfg := config.DefaultFlappyConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := NewSession(cfg, 60, 42, opts...)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s
}

func jump() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	return in
}

func restart() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionRestart)
	return in
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

// pinFlyer holds the flyer at the field center so it survives centered gates.
func pinFlyer(s *Session) {
	fb := s.Flyer().Body()
	fb.Y = s.Config().FieldCenter()
	fb.VY = 0
}

// runUntilDead steps idle frames until the session dies or limit ticks pass.
func runUntilDead(t *testing.T, s *Session, limit int) []core.Event {
	t.Helper()
	var events []core.Event
	for i := 0; i < limit && s.State() != StateDead; i++ {
		res, err := s.Step(idle())
		if err != nil {
			t.Fatalf("Step() failed: %v", err)
		}
		events = append(events, res.Events...)
	}
	if s.State() != StateDead {
		t.Fatalf("Session should be dead after %d ticks, state is %s", limit, s.State())
	}
	return events
}
