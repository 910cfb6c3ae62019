package tui

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "flappy.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreScoreboardSavesRuns(t *testing.T) {
	store := openTestStore(t)
	board := &StoreScoreboard{
		Store:      store,
		Player:     "alice",
		Difficulty: "hard",
		Seed:       99,
		Ticks:      func() uint64 { return 600 },
	}

	board.Present(4)
	board.Present(9)

	runs, err := store.TopRuns(10)
	if err != nil {
		t.Fatalf("TopRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	top := runs[0]
	if top.Score != 9 || top.Player != "alice" || top.Difficulty != "hard" || top.Seed != 99 || top.Ticks != 600 {
		t.Errorf("top run = %+v", top)
	}
	if board.Best() != 9 {
		t.Errorf("Best() = %d, want 9", board.Best())
	}
}

func TestStoreScoreboardLoadBest(t *testing.T) {
	store := openTestStore(t)
	for _, r := range []storage.Run{
		{Player: "alice", Score: 12},
		{Player: "bob", Score: 30},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	alice := &StoreScoreboard{Store: store, Player: "alice"}
	if got := alice.LoadBest(); got != 12 {
		t.Errorf("alice best = %d, want 12", got)
	}

	everyone := &StoreScoreboard{Store: store}
	if got := everyone.LoadBest(); got != 30 {
		t.Errorf("overall best = %d, want 30", got)
	}
}

func TestStoreScoreboardWithoutStore(t *testing.T) {
	board := &StoreScoreboard{}
	board.Present(5)
	board.Present(3)

	if board.Best() != 5 {
		t.Errorf("Best() = %d, want 5", board.Best())
	}
	if board.LoadBest() != 5 {
		t.Errorf("LoadBest() = %d, want cached 5", board.LoadBest())
	}
}
