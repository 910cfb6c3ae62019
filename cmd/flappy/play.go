package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagMute  bool
	flagWatch bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run",
	Long: `Start playing right away.

Controls:
  Space/Up/Click - Flap
  P/Esc          - Pause
  R              - Restart (after game over)
  M              - Toggle sound
  Ctrl+S         - Save a screenshot
  Q/Ctrl+C       - Quit

Difficulty options:
  easy   - Wider gaps, slower scrolling, more time between gates
  normal - The configured values
  hard   - Narrower gaps, faster scrolling, gates come sooner

Examples:
  flappy play
  flappy play --difficulty hard
  flappy play --config ./my-flappy.yaml --watch
  flappy play --mute`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
		c.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes (applies on restart)")
	}
}

// terminalConfig builds the runtime config from the terminal size and global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// localPlayer names the person at the keyboard for stored runs.
func localPlayer() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}

// newSound opens the speaker, falling back to silence.
func newSound(logger *log.Logger) (flappy.SoundPlayer, func()) {
	if flagMute {
		return audio.Nop{}, func() {}
	}
	p := audio.NewPlayer(logger)
	if err := p.Preload(); err != nil {
		logger.Warn("sound disabled", "error", err)
		return audio.Nop{}, func() {}
	}
	return p, p.Close
}

// newWatcher watches the loaded config file when --watch is set.
func newWatcher(logger *log.Logger, source string) *config.Watcher {
	if !flagWatch {
		return nil
	}
	path := configPath(source)
	if path == "" {
		logger.Warn("nothing to watch, config comes from the built-in defaults")
		return nil
	}
	w, err := config.NewWatcher(path)
	if err != nil {
		logger.Warn("config watch disabled", "path", path, "error", err)
		return nil
	}
	logger.Info("watching config", "path", path)
	return w
}

// playRun is everything one interactive play-through needs.
type playRun struct {
	cfg     config.FlappyConfig
	preset  config.DifficultyPreset
	runtime core.RuntimeConfig
	store   *storage.Store
	sound   flappy.SoundPlayer
	watcher *config.Watcher
	logger  *log.Logger
	back    bool
}

// play runs the game until the user quits or goes back.
func (r playRun) play() (backToMenu bool, err error) {
	game, err := flappy.New(r.cfg)
	if err != nil {
		return false, err
	}

	if r.runtime.Seed == 0 {
		r.runtime.Seed = time.Now().UnixNano()
	}

	board := &tui.StoreScoreboard{
		Store:      r.store,
		Player:     localPlayer(),
		Difficulty: string(r.preset),
		Seed:       r.runtime.Seed,
		Logger:     r.logger,
		Ticks:      func() uint64 { return game.Session().Clock().Now() },
	}
	game.SetBest(board.LoadBest())
	game.SetScoreboard(board)
	game.SetSound(r.sound)

	r.logger.Info("starting run", "difficulty", r.preset, "seed", r.runtime.Seed, "best", board.Best())

	opts := tui.Options{
		Logger:    r.logger,
		Watcher:   r.watcher,
		Preset:    r.preset,
		AllowBack: r.back,
	}
	if m, ok := r.sound.(tui.Muter); ok {
		opts.Mute = m
	}
	return tui.Run(game, r.runtime, opts)
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger(io.Discard)
	defer closeLog()

	cfg, preset, source, err := loadGameConfig(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	sound, closeSound := newSound(logger)
	watcher := newWatcher(logger, source)

	run := playRun{
		cfg:     cfg,
		preset:  preset,
		runtime: terminalConfig(),
		store:   store,
		sound:   sound,
		watcher: watcher,
		logger:  logger,
	}
	_, runErr := run.play()

	// Release resources before potential exit
	if watcher != nil {
		watcher.Close()
	}
	closeSound()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
