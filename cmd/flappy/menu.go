package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the title menu",
	Long: `Start in interactive menu mode.

Pick a difficulty with Left/Right on the Play entry and press Enter.
Press B after a game over (or while paused) to return to the menu.

Controls:
  Up/Down/j/k    - Navigate menu
  Left/Right     - Change difficulty
  Enter/Space    - Select
  Tab            - High scores
  Q              - Quit

Examples:
  flappy menu
  flappy menu --fps 30
  flappy menu --db ./flappy.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger(io.Discard)
	defer closeLog()

	base, source, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load config (%s): %v\n", source, err)
		os.Exit(1)
	}
	preset := config.ParsePreset(flagDifficulty)

	store := openStore(logger)
	sound, closeSound := newSound(logger)
	watcher := newWatcher(logger, source)

	best := 0
	if store != nil {
		if b, err := store.Best(localPlayer()); err == nil {
			best = b
		}
	}

	cfg := terminalConfig()

	for {
		menuResult, err := tui.RunMenu(cfg, preset, best)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config
		preset = menuResult.Preset

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if watcher != nil {
			base = reloadBase(base, configPath(source), logger)
		}
		gameCfg := base
		config.ApplyPreset(&gameCfg, preset)

		rc := cfg
		if rc.Seed == 0 {
			rc.Seed = time.Now().UnixNano()
		}

		back, err := playRun{
			cfg:     gameCfg,
			preset:  preset,
			runtime: rc,
			store:   store,
			sound:   sound,
			watcher: watcher,
			logger:  logger,
			back:    true,
		}.play()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !back {
			break
		}

		if store != nil {
			if b, err := store.Best(localPlayer()); err == nil {
				best = b
			}
		}
	}

	if watcher != nil {
		watcher.Close()
	}
	closeSound()
	if store != nil {
		store.Close()
	}
}

// reloadBase re-reads the watched config so edits made during an earlier run
// or in the menu carry into the next one. A bad file keeps the previous config.
func reloadBase(base config.FlappyConfig, path string, logger *log.Logger) config.FlappyConfig {
	if path == "" {
		return base
	}
	cfg, err := config.LoadFlappy(path)
	if err != nil {
		logger.Warn("keeping previous config", "path", path, "error", err)
		return base
	}
	return cfg
}
