package flappy

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// ErrInvalidTransition is returned for a state change the session does not allow.
var ErrInvalidTransition = errors.New("flappy: invalid state transition")

// State is the phase of a play-through.
type State int

const (
	StateReady State = iota
	StateRunning
	StateDead
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// transitions lists every allowed state change.
var transitions = map[State]State{
	StateReady:   StateRunning,
	StateRunning: StateDead,
	StateDead:    StateReady,
}

// Sound ids passed to SoundPlayer.
const (
	SoundFlap  = "flap"
	SoundScore = "score"
	SoundHit   = "hit"
)

// SoundPlayer plays a short sound effect by id.
type SoundPlayer interface {
	Play(id string)
}

// Scoreboard is shown once when a session ends.
type Scoreboard interface {
	Present(score int)
}

type nopSound struct{}

func (nopSound) Play(string) {}

type nopScoreboard struct{}

func (nopScoreboard) Present(int) {}

// Option configures a Session.
type Option func(*Session)

// WithSound sets the sound player.
func WithSound(p SoundPlayer) Option {
	return func(s *Session) {
		if p != nil {
			s.sound = p
		}
	}
}

// WithScoreboard sets the scoreboard presented on death.
func WithScoreboard(b Scoreboard) Option {
	return func(s *Session) {
		if b != nil {
			s.board = b
		}
	}
}

// Session is one play-through: the flyer, ground, gates, clock and score,
// driven one tick at a time by Step. It is not safe for concurrent use.
type Session struct {
	cfg      config.FlappyConfig
	tickRate int
	rng      *rand.Rand

	state      State
	score      int
	flyer      *Flyer
	ground     *Ground
	pool       *GatePool
	clock      *core.Clock
	spawnTimer core.TimerID

	sound  SoundPlayer
	board  Scoreboard
	events []core.Event
}

// NewSession validates cfg and builds a session in the Ready state.
func NewSession(cfg config.FlappyConfig, tickRate int, seed int64, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pool, err := NewGatePool(cfg)
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:      cfg,
		tickRate: tickRate,
		rng:      rand.New(rand.NewSource(seed)),
		pool:     pool,
		sound:    nopSound{},
		board:    nopScoreboard{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.reset()
	return s, nil
}

// reset builds fresh entities for a new play-through. Gates are kept and recycled.
func (s *Session) reset() {
	s.state = StateReady
	s.score = 0
	s.flyer = NewFlyer(s.cfg, s.tickRate)
	s.ground = NewGround(s.cfg)
	s.clock = core.NewClock(s.tickRate)
	s.spawnTimer = 0
	s.pool.Recycle()
}

// Reconfigure replaces the configuration. It is refused while a run is in
// progress. In Ready the world is rebuilt immediately; in Dead the new
// config takes effect on restart.
func (s *Session) Reconfigure(cfg config.FlappyConfig) error {
	if s.state == StateRunning {
		return fmt.Errorf("%w: cannot reconfigure while running", ErrInvalidTransition)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	pool, err := NewGatePool(cfg)
	if err != nil {
		return err
	}
	s.cfg = cfg
	s.pool = pool
	if s.state == StateReady {
		s.reset()
	}
	return nil
}

func (s *Session) transition(to State) error {
	if next, ok := transitions[s.state]; !ok || next != to {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.state, to)
	}
	s.state = to
	return nil
}

// Step runs one tick: inputs in order, then the clock, then motion, then
// collisions and scoring. Only pool exhaustion produces an error.
func (s *Session) Step(in core.InputFrame) (core.StepResult, error) {
	s.events = nil

	for _, a := range in.Actions {
		switch a {
		case core.ActionJump:
			s.flap()
		case core.ActionRestart:
			s.restart()
		}
	}

	switch s.state {
	case StateReady:
		s.ground.Tick(s.clock.Dt())
	case StateRunning:
		if err := s.clock.Advance(); err != nil {
			return s.result(), fmt.Errorf("flappy: tick %d: %w", s.clock.Now(), err)
		}
		dt := s.clock.Dt()
		s.flyer.Move(dt, s.cfg.Physics.Gravity)
		s.pool.Tick(dt)
		s.ground.Tick(dt)
		s.flyer.Tick()
		s.collide()
	}

	return s.result(), nil
}

func (s *Session) flap() {
	if s.state == StateReady {
		s.start()
	}
	if s.state != StateRunning {
		return
	}
	if s.flyer.Flap() {
		s.emit(core.EventFlap)
		s.sound.Play(SoundFlap)
	}
}

func (s *Session) start() {
	if err := s.transition(StateRunning); err != nil {
		return
	}
	s.flyer.Activate()
	s.ground.Start()
	s.spawnTimer = s.clock.Every(s.cfg.Gates.SpawnInterval, s.spawn)
	s.emit(core.EventStart)
}

// spawn is the spawn timer callback.
func (s *Session) spawn() error {
	if s.state != StateRunning {
		return nil
	}
	if _, err := s.pool.Spawn(s.rng); err != nil {
		return fmt.Errorf("spawn gate: %w", err)
	}
	s.emit(core.EventSpawn)
	return nil
}

// die ends the run. Only the first call after a start has any effect.
func (s *Session) die() {
	if err := s.transition(StateDead); err != nil {
		return
	}
	s.flyer.Deactivate()
	s.ground.Stop()
	s.clock.Cancel(s.spawnTimer)
	s.pool.Freeze()
	s.emit(core.EventDeath)
	s.sound.Play(SoundHit)
	s.board.Present(s.score)
}

func (s *Session) restart() {
	if err := s.transition(StateReady); err != nil {
		return
	}
	s.reset()
	s.emit(core.EventRestart)
}

func (s *Session) emit(kind core.EventKind) {
	s.events = append(s.events, core.Event{Kind: kind, Tick: s.clock.Now(), Score: s.score})
}

func (s *Session) result() core.StepResult {
	return core.StepResult{State: s.GameState(), Events: s.events}
}

// GameState returns the externally visible status.
func (s *Session) GameState() core.GameState {
	return core.GameState{
		Score:    s.score,
		GameOver: s.state == StateDead,
		Phase:    s.state.String(),
	}
}

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Score returns the number of gates passed this run.
func (s *Session) Score() int { return s.score }

// Flyer returns the player entity.
func (s *Session) Flyer() *Flyer { return s.flyer }

// Ground returns the ground strip.
func (s *Session) Ground() *Ground { return s.ground }

// Pool returns the gate pool.
func (s *Session) Pool() *GatePool { return s.pool }

// Clock returns the session clock.
func (s *Session) Clock() *core.Clock { return s.clock }

// Config returns the active configuration.
func (s *Session) Config() config.FlappyConfig { return s.cfg }
