package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// StoreScoreboard persists every finished run. It is handed to the game as
// its scoreboard and is called once per death.
type StoreScoreboard struct {
	Store      *storage.Store
	Player     string
	Difficulty string
	Seed       int64
	Logger     *log.Logger

	// Ticks reports the length of the run being presented, if known.
	Ticks func() uint64

	best int
}

// Present saves the run and updates the cached best score.
func (b *StoreScoreboard) Present(score int) {
	if score > b.best {
		b.best = score
	}
	if b.Store == nil {
		return
	}

	run := storage.Run{
		Player:     b.Player,
		Score:      score,
		Seed:       b.Seed,
		Difficulty: b.Difficulty,
	}
	if b.Ticks != nil {
		run.Ticks = b.Ticks()
	}
	if _, err := b.Store.SaveRun(run); err != nil && b.Logger != nil {
		b.Logger.Warn("could not save run", "score", score, "error", err)
	}
}

// LoadBest reads the best score for this board's player from the store.
func (b *StoreScoreboard) LoadBest() int {
	if b.Store == nil {
		return b.best
	}
	best, err := b.Store.Best(b.Player)
	if err != nil {
		if b.Logger != nil {
			b.Logger.Warn("could not read best score", "error", err)
		}
		return b.best
	}
	if best > b.best {
		b.best = best
	}
	return b.best
}

// Best returns the best score seen by this board.
func (b *StoreScoreboard) Best() int {
	return b.best
}
