// flappy is a flap-to-survive side scroller for the terminal.
//
// Usage:
//
//	flappy play              - Play a run right away
//	flappy menu              - Title menu with difficulty picker and high scores
//	flappy serve             - Start SSH server for remote play
//	flappy scores            - Show high scores
//	flappy sim               - Run headless autopilot games
//	flappy config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/flappy.db)
//	--config <path>       - Use a custom config YAML
//	--difficulty <preset> - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - flap through the gates in your terminal",
	Long: `Flappy is a terminal side scroller: flap to stay in the air and
thread the gaps between the pipes. Every gate passed scores a point.

Available commands:
  play     - Play a run right away
  menu     - Title menu with difficulty picker and high scores
  serve    - Start SSH server for remote play
  scores   - View high scores
  sim      - Run headless autopilot games
  config   - Print the effective configuration

Examples:
  flappy play
  flappy play --difficulty hard
  flappy menu
  flappy serve --ssh :2222
  flappy sim --runs 5 --seed 42`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "normal", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the command logger. Logs go to --log-file when set,
// otherwise to fallback. Interactive commands pass io.Discard so log lines
// never land on the alt screen.
func newLogger(fallback io.Writer) (*log.Logger, func()) {
	out := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		} else {
			out = f
			closeFn = func() { f.Close() }
		}
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy",
		Level:           level,
	})
	return logger, closeFn
}

// loadGameConfig loads the config named by --config (or the search path) and
// applies --difficulty.
func loadGameConfig(logger *log.Logger) (config.FlappyConfig, config.DifficultyPreset, string, error) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return cfg, "", source, fmt.Errorf("load config (%s): %w", source, err)
	}

	preset := config.ParsePreset(flagDifficulty)
	if preset == "" {
		logger.Warn("unknown difficulty, using normal", "difficulty", flagDifficulty)
		preset = config.DifficultyNormal
	}
	config.ApplyPreset(&cfg, preset)

	logger.Debug("config loaded", "source", source, "difficulty", preset)
	return cfg, preset, source, nil
}

// configPath returns the file a config source was read from, if any.
func configPath(source string) string {
	switch source {
	case config.SourceCustom:
		return flagConfig
	case config.SourceUser:
		return config.UserConfigPath()
	case config.SourceLocal:
		return config.LocalConfigPath
	default:
		return ""
	}
}

// openStore opens the scores database, degrading to no persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}
