package flappy

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

func TestSessionStartsReady(t *testing.T) {
	s := newTestSession(t, nil)
	x, y := s.Flyer().Body().X, s.Flyer().Body().Y

	for i := 0; i < 10; i++ {
		res, err := s.Step(idle())
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Events) != 0 {
			t.Errorf("Ready tick %d raised events %v", i, res.Events)
		}
	}

	if s.State() != StateReady {
		t.Errorf("State = %s, expected ready", s.State())
	}
	if s.Flyer().Alive() {
		t.Error("Flyer should be dormant in Ready")
	}
	if s.Flyer().Body().X != x || s.Flyer().Body().Y != y {
		t.Error("Flyer should not move in Ready")
	}
	if s.Pool().Len() != 0 {
		t.Errorf("No gates should spawn in Ready, pool has %d", s.Pool().Len())
	}
	if s.Ground().Offset() == 0 {
		t.Error("Ground should scroll in Ready")
	}
	if s.Clock().Now() != 0 {
		t.Errorf("Clock should not advance in Ready, now = %d", s.Clock().Now())
	}
}

func TestFlapStartsRun(t *testing.T) {
	sound := &recordingSound{}
	s := newTestSession(t, nil, WithSound(sound))

	res, err := s.Step(jump())
	if err != nil {
		t.Fatal(err)
	}

	if s.State() != StateRunning {
		t.Fatalf("State = %s, expected running", s.State())
	}
	if len(res.Events) < 2 || res.Events[0].Kind != core.EventStart || res.Events[1].Kind != core.EventFlap {
		t.Errorf("Expected start then flap events, got %v", res.Events)
	}
	if !s.Flyer().Alive() {
		t.Error("Flyer should be alive once running")
	}
	// Flap sets -400, then one tick of gravity
	if vy := s.Flyer().Body().VY; math.Abs(vy-(-380)) > 1e-9 {
		t.Errorf("VY after first tick = %f, expected -380", vy)
	}
	if sound.count(SoundFlap) != 1 {
		t.Errorf("Expected one flap sound, got %v", sound.ids)
	}
	if res.State.Phase != "running" {
		t.Errorf("Phase = %q, expected running", res.State.Phase)
	}
}

func TestScoreWhenGateReachesFlyer(t *testing.T) {
	sound := &recordingSound{}
	s := newTestSession(t, nil, WithSound(sound))
	s.Step(jump())

	g, err := s.pool.acquire()
	if err != nil {
		t.Fatal(err)
	}
	g.Reset(100, s.cfg.FieldCenter(), s.cfg.Physics.ScrollSpeed)

	res, err := s.Step(idle())
	if err != nil {
		t.Fatal(err)
	}

	if s.Score() != 1 {
		t.Errorf("Score = %d, expected 1", s.Score())
	}
	if !g.HasScored() {
		t.Error("Gate should be marked as scored")
	}
	if !res.Has(core.EventScore) {
		t.Error("Expected a score event")
	}
	if sound.count(SoundScore) != 1 {
		t.Errorf("Expected one score sound, got %v", sound.ids)
	}
	if s.State() != StateRunning {
		t.Fatalf("Flyer in the gap should survive, state is %s", s.State())
	}

	// A gate scores once per reset
	for i := 0; i < 5; i++ {
		pinFlyer(s)
		s.Step(idle())
	}
	if s.Score() != 1 {
		t.Errorf("Gate scored again, score = %d", s.Score())
	}

	g.Reset(100, s.cfg.FieldCenter(), s.cfg.Physics.ScrollSpeed)
	if g.HasScored() {
		t.Error("Reset should clear hasScored")
	}
	pinFlyer(s)
	s.Step(idle())
	if s.Score() != 2 {
		t.Errorf("Reset gate should score again, score = %d", s.Score())
	}
}

func TestScoreAndDeathSameTick(t *testing.T) {
	board := &recordingBoard{}
	s := newTestSession(t, nil, WithScoreboard(board))
	s.Step(jump())

	// Gap well above the flyer: it crosses the gate and lands in the bottom pipe.
	g, err := s.pool.acquire()
	if err != nil {
		t.Fatal(err)
	}
	g.Reset(100, s.cfg.FieldCenter()-150, s.cfg.Physics.ScrollSpeed)
	pinFlyer(s)

	res, err := s.Step(idle())
	if err != nil {
		t.Fatal(err)
	}

	if s.State() != StateDead {
		t.Fatalf("State = %s, expected dead", s.State())
	}
	if s.Score() != 1 || !g.HasScored() {
		t.Errorf("Score = %d, hasScored = %v, expected the crossing to count", s.Score(), g.HasScored())
	}

	scoreAt, deathAt := -1, -1
	for i, e := range res.Events {
		switch e.Kind {
		case core.EventScore:
			scoreAt = i
		case core.EventDeath:
			deathAt = i
		}
	}
	if scoreAt < 0 || deathAt < 0 || scoreAt > deathAt {
		t.Errorf("Expected score before death, got %v", res.Events)
	}
	if len(board.scores) != 1 || board.scores[0] != 1 {
		t.Errorf("Scoreboard presented %v, expected [1]", board.scores)
	}
}

func TestRetiredGateDoesNotScore(t *testing.T) {
	s := newTestSession(t, nil)
	s.Step(jump())

	g, _ := s.pool.acquire()
	g.Reset(100, s.cfg.FieldCenter(), s.cfg.Physics.ScrollSpeed)
	g.exists = false

	pinFlyer(s)
	s.Step(idle())
	if s.Score() != 0 || g.HasScored() {
		t.Errorf("Retired gate scored, score = %d", s.Score())
	}
}

func TestSpawnCadence(t *testing.T) {
	s := newTestSession(t, func(c *config.FlappyConfig) { c.Gates.OffsetRange = 0 })

	var spawns []uint64
	for i := 0; i < 750; i++ {
		in := idle()
		if i == 0 {
			in = jump()
		}
		pinFlyer(s)
		res, err := s.Step(in)
		if err != nil {
			t.Fatalf("Tick %d: %v", i, err)
		}
		for _, e := range res.Events {
			if e.Kind == core.EventSpawn {
				spawns = append(spawns, e.Tick)
			}
		}
	}

	if s.State() != StateRunning {
		t.Fatalf("Pinned flyer should survive, state is %s", s.State())
	}
	if len(spawns) != 10 {
		t.Fatalf("Expected 10 spawns in 750 ticks, got %d: %v", len(spawns), spawns)
	}
	for i, tick := range spawns {
		if want := uint64(75 * (i + 1)); tick != want {
			t.Errorf("Spawn %d at tick %d, expected %d", i, tick, want)
		}
	}
	if s.Pool().Len() > 2 {
		t.Errorf("Pool should stay at steady state, holds %d gates", s.Pool().Len())
	}
}

func TestDeathOnGround(t *testing.T) {
	sound := &recordingSound{}
	board := &recordingBoard{}
	s := newTestSession(t, nil, WithSound(sound), WithScoreboard(board))
	s.Step(jump())

	events := runUntilDead(t, s, 300)

	deaths := 0
	for _, e := range events {
		if e.Kind == core.EventDeath {
			deaths++
		}
	}
	if deaths != 1 {
		t.Errorf("Expected one death event, got %d", deaths)
	}
	if sound.count(SoundHit) != 1 {
		t.Errorf("Expected one hit sound, got %v", sound.ids)
	}
	if len(board.scores) != 1 || board.scores[0] != 0 {
		t.Errorf("Scoreboard presented %v, expected [0]", board.scores)
	}
	if s.Flyer().Alive() || s.Flyer().Body().Gravity {
		t.Error("Dead flyer should be inactive with gravity off")
	}
	if s.Ground().Scrolling() {
		t.Error("Ground should stop scrolling on death")
	}
	if s.Clock().Pending(s.spawnTimer) {
		t.Error("Spawn timer should be cancelled on death")
	}
	if s.Flyer().Body().Bottom() > s.Ground().Body().Top()+1e-6 {
		t.Errorf("Flyer should rest on the ground, bottom %f > ground %f",
			s.Flyer().Body().Bottom(), s.Ground().Body().Top())
	}
}

func TestDeadTicksAreFrozen(t *testing.T) {
	sound := &recordingSound{}
	s := newTestSession(t, func(c *config.FlappyConfig) { c.Gates.SpawnInterval = 0.2 }, WithSound(sound))
	s.Step(jump())
	runUntilDead(t, s, 300)

	fb := *s.Flyer().Body()
	now := s.Clock().Now()
	var gateX []float64
	for _, g := range s.Pool().Gates() {
		gateX = append(gateX, g.X())
	}
	played := len(sound.ids)

	for i := 0; i < 20; i++ {
		in := idle()
		if i%3 == 0 {
			in = jump()
		}
		res, err := s.Step(in)
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Events) != 0 {
			t.Fatalf("Dead tick raised events %v", res.Events)
		}
	}

	if *s.Flyer().Body() != fb {
		t.Error("Flyer moved while dead")
	}
	if s.Clock().Now() != now {
		t.Error("Clock advanced while dead")
	}
	for i, g := range s.Pool().Gates() {
		if g.X() != gateX[i] {
			t.Errorf("Gate %d moved while dead", i)
		}
	}
	if len(sound.ids) != played {
		t.Errorf("Sounds played while dead: %v", sound.ids[played:])
	}
}

func TestDeathIsIdempotent(t *testing.T) {
	sound := &recordingSound{}
	board := &recordingBoard{}
	s := newTestSession(t, nil, WithSound(sound), WithScoreboard(board))
	s.Step(jump())
	s.score = 3
	s.events = nil

	s.die()
	state, score := s.State(), s.Score()
	s.die()

	if s.State() != state || s.Score() != score {
		t.Errorf("Second die() changed state to %s/%d", s.State(), s.Score())
	}
	if len(s.events) != 1 || s.events[0].Kind != core.EventDeath {
		t.Errorf("Expected exactly one death event, got %v", s.events)
	}
	if sound.count(SoundHit) != 1 {
		t.Errorf("Expected one hit sound, got %d", sound.count(SoundHit))
	}
	if len(board.scores) != 1 || board.scores[0] != 3 {
		t.Errorf("Scoreboard presented %v, expected [3]", board.scores)
	}
}

func TestDieOutsideRunningIsIgnored(t *testing.T) {
	board := &recordingBoard{}
	s := newTestSession(t, nil, WithScoreboard(board))

	s.die()
	if s.State() != StateReady {
		t.Errorf("die() in Ready changed state to %s", s.State())
	}
	if len(board.scores) != 0 {
		t.Error("Scoreboard should not be presented outside a run")
	}
}

func TestRestart(t *testing.T) {
	s := newTestSession(t, func(c *config.FlappyConfig) {
		c.Gates.SpawnInterval = 0.2
		c.Gates.OffsetRange = 0
	})
	s.Step(jump())
	runUntilDead(t, s, 300)
	allocated := s.Pool().Len()
	if allocated == 0 {
		t.Fatal("Expected some gates before death")
	}
	first := s.Pool().Gates()[0]

	res, err := s.Step(restart())
	if err != nil {
		t.Fatal(err)
	}

	if s.State() != StateReady {
		t.Fatalf("State = %s, expected ready", s.State())
	}
	if !res.Has(core.EventRestart) {
		t.Error("Expected a restart event")
	}
	if s.Score() != 0 || res.State.GameOver {
		t.Errorf("Restart should clear score and game over, got %+v", res.State)
	}
	if s.Pool().Live() != 0 || s.Pool().Len() != allocated {
		t.Errorf("Pool should be recycled, Live=%d Len=%d", s.Pool().Live(), s.Pool().Len())
	}
	if s.Flyer().Alive() || s.Flyer().Body().Y != s.cfg.FieldCenter() {
		t.Error("Restart should build a fresh dormant flyer")
	}
	if !s.Ground().Scrolling() {
		t.Error("Ground should scroll again after restart")
	}
	if s.Clock().Now() != 0 {
		t.Errorf("Restart should reset the clock, now = %d", s.Clock().Now())
	}

	// The first spawn of the next run reuses the first recycled gate
	for i := 0; i < 12; i++ {
		in := idle()
		if i == 0 {
			in = jump()
		}
		pinFlyer(s)
		if _, err := s.Step(in); err != nil {
			t.Fatal(err)
		}
	}
	if s.Pool().Len() != allocated {
		t.Errorf("Second run allocated new gates, Len=%d want %d", s.Pool().Len(), allocated)
	}
	if !first.Exists() || s.Pool().Live() != 1 {
		t.Errorf("Expected the first gate to be reused, Live=%d", s.Pool().Live())
	}
}

func TestRestartOnlyWhenDead(t *testing.T) {
	s := newTestSession(t, nil)

	s.Step(restart())
	if s.State() != StateReady {
		t.Errorf("Restart in Ready changed state to %s", s.State())
	}

	s.Step(jump())
	res, _ := s.Step(restart())
	if s.State() != StateRunning || res.Has(core.EventRestart) {
		t.Errorf("Restart while running should be ignored, state %s", s.State())
	}
}

func TestTransitions(t *testing.T) {
	tests := []struct {
		from, to State
		ok       bool
	}{
		{StateReady, StateRunning, true},
		{StateRunning, StateDead, true},
		{StateDead, StateReady, true},
		{StateReady, StateDead, false},
		{StateRunning, StateReady, false},
		{StateDead, StateRunning, false},
		{StateDead, StateDead, false},
	}

	for _, tc := range tests {
		t.Run(tc.from.String()+"->"+tc.to.String(), func(t *testing.T) {
			s := &Session{state: tc.from}
			err := s.transition(tc.to)
			if tc.ok && err != nil {
				t.Errorf("transition failed: %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("Expected ErrInvalidTransition, got %v", err)
			}
		})
	}
}

func TestPoolExhaustionSurfaces(t *testing.T) {
	s := newTestSession(t, func(c *config.FlappyConfig) {
		c.Gates.MaxGates = 1
		c.Gates.SpawnInterval = 0.1
		c.Gates.OffsetRange = 0
	})

	var err error
	for i := 0; i < 30 && err == nil; i++ {
		in := idle()
		if i == 0 {
			in = jump()
		}
		pinFlyer(s)
		_, err = s.Step(in)
	}

	if !errors.Is(err, ErrPoolExhausted) {
		t.Fatalf("Expected ErrPoolExhausted, got %v", err)
	}
	if s.Clock().Now() != 12 {
		t.Errorf("Exhaustion should surface on the second spawn at tick 12, got %d", s.Clock().Now())
	}
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Physics.ScrollSpeed = 0

	if _, err := NewSession(cfg, 60, 1); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestReconfigure(t *testing.T) {
	s := newTestSession(t, nil)
	cfg := config.DefaultFlappyConfig()
	cfg.Flyer.X = 150

	if err := s.Reconfigure(cfg); err != nil {
		t.Fatalf("Reconfigure in Ready failed: %v", err)
	}
	if s.Flyer().Body().X != 150 {
		t.Errorf("Flyer x = %f, expected 150", s.Flyer().Body().X)
	}

	s.Step(jump())
	if err := s.Reconfigure(config.DefaultFlappyConfig()); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Reconfigure while running should fail, got %v", err)
	}
}

func TestSessionDeterminism(t *testing.T) {
	run := func() (int, uint64, float64) {
		s := newTestSession(t, nil)
		pilot := NewAutopilot(s.Config())
		for i := 0; i < 3000 && s.State() != StateDead; i++ {
			if _, err := s.Step(pilot.Next(s)); err != nil {
				t.Fatal(err)
			}
		}
		return s.Score(), s.Clock().Now(), s.Flyer().Body().Y
	}

	score1, ticks1, y1 := run()
	score2, ticks2, y2 := run()

	if score1 != score2 || ticks1 != ticks2 || y1 != y2 {
		t.Errorf("Runs diverged: (%d, %d, %f) vs (%d, %d, %f)", score1, ticks1, y1, score2, ticks2, y2)
	}
	if ticks1 < 75 {
		t.Errorf("Autopilot should survive past the first spawn, died at tick %d", ticks1)
	}
}
