package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

func newTestModel(t *testing.T, opts Options) (Model, *flappy.Game) {
	t.Helper()
	game, err := flappy.New(config.DefaultFlappyConfig())
	if err != nil {
		t.Fatalf("flappy.New: %v", err)
	}
	m, err := NewModel(game, core.RuntimeConfig{ScreenW: 60, ScreenH: 30, TickRate: 60, Seed: 7}, opts)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m, game
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(t, m, TickMsg{Gen: m.gen})
	return m
}

func TestModelFlapStartsRun(t *testing.T) {
	m, game := newTestModel(t, Options{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if game.Session().State() != flappy.StateReady {
		t.Fatal("input must wait for the next tick")
	}

	m = tick(t, m)
	if game.Session().State() != flappy.StateRunning {
		t.Errorf("state = %v, want running", game.Session().State())
	}
	if m.gameState.Phase != "running" {
		t.Errorf("model phase = %q, want running", m.gameState.Phase)
	}
}

func TestModelMouseClickFlaps(t *testing.T) {
	m, game := newTestModel(t, Options{})

	m, _ = update(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	tick(t, m)

	if game.Session().State() != flappy.StateRunning {
		t.Errorf("state = %v, want running after click", game.Session().State())
	}
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	m, game := newTestModel(t, Options{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, cmd := update(t, m, TickMsg{Gen: m.gen + 1})

	if cmd != nil {
		t.Error("stale tick should not schedule another tick")
	}
	if game.Session().State() != flappy.StateReady {
		t.Error("stale tick should not step the game")
	}

	tick(t, m)
	if game.Session().State() != flappy.StateRunning {
		t.Error("queued input should survive a stale tick")
	}
}

func TestModelLoopGenerationsDiffer(t *testing.T) {
	a, _ := newTestModel(t, Options{})
	b, _ := newTestModel(t, Options{})
	if a.gen == b.gen {
		t.Error("each model should own its tick loop")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	if cmd == nil {
		t.Error("quit should return a command")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelBackToMenu(t *testing.T) {
	m, _ := newTestModel(t, Options{AllowBack: true})

	m, _ = update(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("b should not leave a live run")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = tick(t, m)
	m, _ = update(t, m, runeKey('p'))
	m = tick(t, m)
	if !m.gameState.Paused {
		t.Fatal("game should be paused")
	}

	m, _ = update(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("b should leave a paused run")
	}
}

func TestModelBackDisabled(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = tick(t, m)
	m, _ = update(t, m, runeKey('p'))
	m = tick(t, m)
	m, _ = update(t, m, runeKey('b'))

	if m.BackToMenu() {
		t.Error("b should do nothing without AllowBack")
	}
}

func TestModelResize(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})
	if m.screen.Width() != 40 || m.screen.Height() != 20 {
		t.Errorf("screen = %dx%d, want 40x20", m.screen.Width(), m.screen.Height())
	}
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	if !strings.Contains(m.View(), "GET READY") {
		t.Error("ready view should show the get ready panel")
	}
}

func TestModelConfigReload(t *testing.T) {
	m, game := newTestModel(t, Options{})

	path := filepath.Join(t.TempDir(), "flappy.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  scroll_speed: 150\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	m, _ = update(t, m, configChangedMsg(path))
	tick(t, m)

	if got := game.Session().Config().Physics.ScrollSpeed; got != 150 {
		t.Errorf("scroll speed = %v, want 150 after reload", got)
	}
}

func TestModelConfigReloadRejectsInvalid(t *testing.T) {
	m, game := newTestModel(t, Options{})

	path := filepath.Join(t.TempDir(), "flappy.yaml")
	if err := os.WriteFile(path, []byte("gates:\n  max_gates: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	m, _ = update(t, m, configChangedMsg(path))
	tick(t, m)

	if got := game.Session().Config().Gates.MaxGates; got != 16 {
		t.Errorf("max gates = %d, invalid reload should be ignored", got)
	}
}

func TestStoppedModelReleasesConfigEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flappy.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  scroll_speed: 150\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	w, err := config.NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	receive := func(cmd tea.Cmd) <-chan tea.Msg {
		ch := make(chan tea.Msg, 1)
		go func() { ch <- cmd() }()
		return ch
	}

	// A program that exited back to the menu.
	first, _ := newTestModel(t, Options{Watcher: w})
	firstMsgs := receive(waitForConfig(w, first.done))
	first.Stop()
	select {
	case msg := <-firstMsgs:
		if msg != nil {
			t.Fatalf("stopped model received %v", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("stopped model still waiting on the watcher")
	}

	second, _ := newTestModel(t, Options{Watcher: w})
	secondMsgs := receive(waitForConfig(w, second.done))
	if err := os.WriteFile(path, []byte("physics:\n  scroll_speed: 160\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	select {
	case msg := <-secondMsgs:
		if got, ok := msg.(configChangedMsg); !ok || filepath.Base(string(got)) != "flappy.yaml" {
			t.Errorf("second model got %v, want flappy.yaml edit", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("edit not delivered to the running model")
	}
	second.Stop()
}

func TestModelStopIsIdempotent(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.Stop()
	m.Stop()
}

func TestModelScreenshot(t *testing.T) {
	dir := t.TempDir()
	m, _ := newTestModel(t, Options{ScreenshotDir: dir})

	update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	matches, err := filepath.Glob(filepath.Join(dir, "flappy_*.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("screenshots = %v, want one file", matches)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "GET READY") {
		t.Error("screenshot should contain the rendered screen")
	}
}

type fakeMuter struct{ muted bool }

func (f *fakeMuter) SetMuted(m bool) { f.muted = m }
func (f *fakeMuter) Muted() bool     { return f.muted }

func TestModelToggleMute(t *testing.T) {
	mute := &fakeMuter{}
	m, _ := newTestModel(t, Options{Mute: mute})

	m, _ = update(t, m, runeKey('m'))
	if !mute.muted {
		t.Error("m should mute")
	}
	update(t, m, runeKey('m'))
	if mute.muted {
		t.Error("second m should unmute")
	}
}
