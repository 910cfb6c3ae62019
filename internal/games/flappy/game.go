// Package flappy implements a flap-to-survive side scroller: a flyer falls
// under gravity, flaps upward on input and must pass through the gaps of
// procedurally spawned gates without touching them or the ground.
//
// Session holds one play-through and is driven tick by tick. Game adapts a
// Session to the platform contract (Reset/Step/Render/State) and adds pause,
// best score tracking and rendering.
package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Medal thresholds shown on the game-over board.
const (
	SilverScore = 10
	GoldScore   = 20
)

// Medal returns the medal earned for a score, or an empty string.
func Medal(score int) string {
	switch {
	case score >= GoldScore:
		return "gold"
	case score >= SilverScore:
		return "silver"
	default:
		return ""
	}
}

// Game adapts a Session to the platform's game contract.
type Game struct {
	cfg     config.FlappyConfig
	pending *config.FlappyConfig
	runtime core.RuntimeConfig
	session *Session
	paused  bool
	best    int

	sound SoundPlayer
	board Scoreboard
}

// New creates a game for a validated configuration.
func New(cfg config.FlappyConfig) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Game{
		cfg:     cfg,
		runtime: core.DefaultConfig(),
		sound:   nopSound{},
		board:   nopScoreboard{},
	}, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy"
}

// SetSound sets the sound player for this and future sessions.
func (g *Game) SetSound(p SoundPlayer) {
	if p == nil {
		p = nopSound{}
	}
	g.sound = p
	if g.session != nil {
		g.session.sound = p
	}
}

// SetScoreboard sets the scoreboard for this and future sessions.
func (g *Game) SetScoreboard(b Scoreboard) {
	if b == nil {
		b = nopScoreboard{}
	}
	g.board = b
	if g.session != nil {
		g.session.board = b
	}
}

// SetBest seeds the best score, usually from storage.
func (g *Game) SetBest(score int) {
	g.best = score
}

// Best returns the best score seen so far.
func (g *Game) Best() int {
	return g.best
}

// SetConfig queues a new configuration. It is applied when the session is
// next in Ready, or on restart after a death; never mid-run.
func (g *Game) SetConfig(cfg config.FlappyConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.pending = &cfg
	return nil
}

// Session returns the current play-through.
func (g *Game) Session() *Session {
	return g.session
}

// Reset starts a fresh session.
func (g *Game) Reset(rc core.RuntimeConfig) error {
	if g.pending != nil {
		g.cfg = *g.pending
		g.pending = nil
	}
	s, err := NewSession(g.cfg, rc.TickRate, rc.Seed, WithSound(g.sound), WithScoreboard(g.board))
	if err != nil {
		return err
	}
	g.runtime = rc
	g.session = s
	g.paused = false
	return nil
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) (core.StepResult, error) {
	if g.session == nil {
		if err := g.Reset(g.runtime); err != nil {
			return core.StepResult{}, err
		}
	}

	if in.Has(core.ActionPause) && g.session.State() == StateRunning {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}, nil
	}

	if err := g.applyPending(in); err != nil {
		return core.StepResult{State: g.State()}, err
	}

	res, err := g.session.Step(in)
	if res.Has(core.EventDeath) && res.State.Score > g.best {
		g.best = res.State.Score
	}
	res.State.Paused = g.paused
	return res, err
}

func (g *Game) applyPending(in core.InputFrame) error {
	if g.pending == nil {
		return nil
	}
	switch g.session.State() {
	case StateReady:
	case StateDead:
		if !in.Has(core.ActionRestart) {
			return nil
		}
	default:
		return nil
	}
	if err := g.session.Reconfigure(*g.pending); err != nil {
		return err
	}
	g.cfg = *g.pending
	g.pending = nil
	return nil
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{Phase: StateReady.String()}
	}
	st := g.session.GameState()
	st.Paused = g.paused
	return st
}
