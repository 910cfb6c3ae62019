package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagSimRuns  int
	flagSimTicks int
	flagSimSave  bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless games with the autopilot",
	Long: `Run games without a terminal UI, driven by a deterministic autopilot.

Run i uses seed --seed + i, so the same flags always replay the same runs.
Each run stops at the first death or after --ticks ticks.

Examples:
  flappy sim
  flappy sim --runs 10 --seed 42
  flappy sim --difficulty hard --ticks 36000 --save`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of runs")
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 60*60*5, "Tick limit per run")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Store finished runs in the scores database")
}

// simResult summarizes one headless run.
type simResult struct {
	Seed      int64
	Score     int
	Ticks     uint64
	Seconds   float64
	Flaps     int
	Spawns    int
	PeakGates int
	Died      bool
}

// simulate plays one run with the autopilot.
func simulate(s *flappy.Session, maxTicks int) (simResult, error) {
	pilot := flappy.NewAutopilot(s.Config())
	var res simResult

	for i := 0; i < maxTicks; i++ {
		in := pilot.Next(s)
		res.Flaps += in.Count(core.ActionJump)
		step, err := s.Step(in)
		if err != nil {
			return res, err
		}
		res.PeakGates = max(res.PeakGates, s.Pool().Live())
		for _, e := range step.Events {
			switch e.Kind {
			case core.EventSpawn:
				res.Spawns++
			case core.EventDeath:
				res.Died = true
			}
		}
		if res.Died {
			break
		}
	}

	res.Score = s.Score()
	res.Ticks = s.Clock().Now()
	res.Seconds = s.Clock().Seconds()
	return res, nil
}

func runSim(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger(os.Stderr)
	defer closeLog()

	cfg, preset, _, err := loadGameConfig(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var store *storage.Store
	if flagSimSave {
		store = openStore(logger)
		if store != nil {
			defer store.Close()
		}
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	best, total := 0, 0
	for i := range flagSimRuns {
		runSeed := seed + int64(i)
		s, err := flappy.NewSession(cfg, flagFPS, runSeed)
		if err != nil {
			logger.Error("cannot build session", "error", err)
			os.Exit(1)
		}

		res, err := simulate(s, flagSimTicks)
		res.Seed = runSeed
		if err != nil {
			logger.Error("run failed", "run", i+1, "seed", runSeed, "tick", s.Clock().Now(), "error", err)
			os.Exit(1)
		}

		logger.Info("run finished",
			"run", i+1,
			"seed", res.Seed,
			"score", res.Score,
			"ticks", res.Ticks,
			"seconds", res.Seconds,
			"flaps", res.Flaps,
			"spawns", res.Spawns,
			"gates", fmt.Sprintf("%d/%d", res.PeakGates, s.Pool().Cap()),
			"died", res.Died,
			"medal", flappy.Medal(res.Score),
		)

		if store != nil {
			_, err := store.SaveRun(storage.Run{
				Player:     "autopilot",
				Score:      res.Score,
				Ticks:      res.Ticks,
				Seed:       res.Seed,
				Difficulty: string(preset),
			})
			if err != nil {
				logger.Warn("could not save run", "error", err)
			}
		}

		total += res.Score
		best = max(best, res.Score)
	}

	if flagSimRuns > 0 {
		logger.Info("simulation done",
			"runs", flagSimRuns,
			"best", best,
			"average", float64(total)/float64(flagSimRuns),
		)
	}
}
