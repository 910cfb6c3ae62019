// Package audio synthesizes and plays the game's sound effects through the
// system speaker.
package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player plays synthesized effects by id. Play is a no-op until Preload has
// succeeded, so a Player can be used safely on machines without audio.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	cache       *soundCache
	initialized bool
	muted       bool
	logger      *log.Logger
}

// NewPlayer creates a player. A nil logger discards log output.
func NewPlayer(logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		mixer:  &beep.Mixer{},
		cache:  newSoundCache(),
		logger: logger,
	}
}

// Preload renders all effects and opens the speaker. It must be called
// before gameplay starts.
func (p *Player) Preload() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	p.cache.preload()

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	p.logger.Debug("audio ready", "sample_rate", int(sampleRate), "effects", len(effects))
	return nil
}

// Play starts an effect. Unknown ids are ignored.
func (p *Player) Play(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return
	}
	buf := p.cache.get(id)
	if buf == nil {
		p.logger.Debug("unknown sound", "id", id)
		return
	}

	speaker.Lock()
	p.mixer.Add(&bufferStreamer{buf: buf})
	speaker.Unlock()
}

// SetMuted silences or re-enables playback.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

// Muted reports whether playback is silenced.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Close stops all sounds.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Nop is a player that never makes a sound.
type Nop struct{}

// Play does nothing.
func (Nop) Play(string) {}
