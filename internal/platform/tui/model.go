package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Options tunes a play Model.
type Options struct {
	Logger *log.Logger

	// Watcher reports config edits. Reloaded configs apply on the next restart.
	Watcher *config.Watcher
	Preset  config.DifficultyPreset

	// ScreenshotDir defaults to ~/.arcade/screenshots.
	ScreenshotDir string

	// AllowBack lets b return to the caller when the run is over or paused.
	AllowBack bool

	// Mute is toggled by the m key when set.
	Mute Muter
}

// Muter is a sound output that can be silenced.
type Muter interface {
	SetMuted(muted bool)
	Muted() bool
}

// configChangedMsg carries the path of an edited config file.
type configChangedMsg string

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       Game
	screen     *core.Screen
	inbox      *core.Inbox
	keys       *KeyMapper
	config     core.RuntimeConfig
	opts       Options
	logger     *log.Logger
	gameState  core.GameState
	gen        uint64
	done       chan struct{}
	stop       func()
	quitting   bool
	backToMenu bool
	err        error
}

// NewModel resets the game and wraps it in a Bubble Tea model.
func NewModel(game Game, cfg core.RuntimeConfig, opts Options) (Model, error) {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	if err := game.Reset(cfg); err != nil {
		return Model{}, fmt.Errorf("tui: reset %s: %w", game.ID(), err)
	}

	done := make(chan struct{})
	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		inbox:     core.NewInbox(),
		keys:      NewKeyMapper(),
		config:    cfg,
		opts:      opts,
		logger:    logger,
		gameState: game.State(),
		gen:       nextLoopGen(),
		done:      done,
		stop:      sync.OnceFunc(func() { close(done) }),
	}, nil
}

// Init starts the tick loop and the config watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.config.TickRate, m.gen), waitForConfig(m.opts.Watcher, m.done))
}

// Stop releases the model's pending watcher receive once its program exits.
// A shared watcher must not deliver edits to a finished program.
func (m Model) Stop() {
	if m.stop != nil {
		m.stop()
	}
}

// waitForConfig blocks until a config file changes, the watcher closes or
// done is closed.
func waitForConfig(w *config.Watcher, done <-chan struct{}) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			return configChangedMsg(path)
		case <-done:
			return nil
		}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.inbox.Push(m.keys.MapMouse(msg))
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()

	case configChangedMsg:
		m.reloadConfig(string(msg))
		return m, waitForConfig(m.opts.Watcher, m.done)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "m":
		if m.opts.Mute != nil {
			m.opts.Mute.SetMuted(!m.opts.Mute.Muted())
			m.logger.Debug("sound toggled", "muted", m.opts.Mute.Muted())
		}
		return m, nil
	case "b":
		if m.opts.AllowBack && (m.gameState.GameOver || m.gameState.Paused) {
			m.backToMenu = true
			return m, tea.Quit
		}
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	m.inbox.Push(action)
	return m, nil
}

// handleTick drains queued input and runs one simulation tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	result, err := m.game.Step(m.inbox.Drain())
	m.gameState = result.State
	if err != nil {
		m.logger.Error("game stopped", "game", m.game.ID(), "error", err)
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}

	for _, e := range result.Events {
		switch e.Kind {
		case core.EventStart, core.EventRestart:
			m.logger.Debug("session "+e.Kind.String(), "tick", e.Tick)
		case core.EventDeath:
			m.logger.Info("run over", "score", e.Score, "tick", e.Tick)
		}
	}

	return m, tickCmd(m.config.TickRate, m.gen)
}

// reloadConfig loads an edited config and queues it on the game.
func (m *Model) reloadConfig(path string) {
	rc, ok := m.game.(Reconfigurable)
	if !ok {
		return
	}
	cfg, err := config.LoadFlappy(path)
	if err != nil {
		m.logger.Warn("ignoring config change", "path", path, "error", err)
		return
	}
	config.ApplyPreset(&cfg, m.opts.Preset)
	if err := rc.SetConfig(cfg); err != nil {
		m.logger.Warn("ignoring config change", "path", path, "error", err)
		return
	}
	m.logger.Info("config reloaded, applies on restart", "path", path)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.logger.Warn("screenshot skipped", "error", err)
			return
		}
		dir = filepath.Join(home, ".arcade", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Err returns the error that stopped the game, if any.
func (m Model) Err() error {
	return m.err
}

// IsQuitting returns true if the user asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to go back.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for the given game and blocks until it exits.
// It reports whether the user asked to go back to the menu.
func Run(game Game, cfg core.RuntimeConfig, opts Options) (backToMenu bool, err error) {
	model, err := NewModel(game, cfg, opts)
	if err != nil {
		return false, err
	}
	defer model.Stop()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Click to flap
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(Model); ok {
		return m.BackToMenu(), m.Err()
	}
	return false, nil
}
