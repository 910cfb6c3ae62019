package tui

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Game is the contract between the platform and a game.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier used for storage and screenshots.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a fresh play-through. The RuntimeConfig provides the tick
	// rate and RNG seed.
	Reset(cfg core.RuntimeConfig) error

	// Step advances the simulation by one fixed tick. An error is fatal for
	// the play-through.
	Step(in core.InputFrame) (core.StepResult, error)

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// BestKeeper is a game that shows the best score on its game-over board.
type BestKeeper interface {
	SetBest(score int)
}

// Reconfigurable is a game that accepts config reloads between runs.
type Reconfigurable interface {
	SetConfig(cfg config.FlappyConfig) error
}
