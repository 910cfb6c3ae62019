package audio

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
)

const sampleRate = beep.SampleRate(44100)

// Waveform types
const (
	waveSine = iota
	waveSquare
	waveNoise
)

// effect describes a synthesized one-shot sound.
type effect struct {
	wave     int
	freqFrom float64 // Hz at the start of the sound
	freqTo   float64 // Hz at the end, linear sweep
	duration time.Duration
	attack   time.Duration
	release  time.Duration
	gain     float64
}

// effects maps sound ids to their recipes.
var effects = map[string]effect{
	"flap": {
		wave: waveSquare, freqFrom: 420, freqTo: 780,
		duration: 80 * time.Millisecond, attack: 5 * time.Millisecond, release: 40 * time.Millisecond,
		gain: 0.18,
	},
	"score": {
		wave: waveSine, freqFrom: 880, freqTo: 1320,
		duration: 160 * time.Millisecond, attack: 5 * time.Millisecond, release: 80 * time.Millisecond,
		gain: 0.35,
	},
	"hit": {
		wave: waveNoise, freqFrom: 0, freqTo: 0,
		duration: 250 * time.Millisecond, attack: 2 * time.Millisecond, release: 180 * time.Millisecond,
		gain: 0.4,
	},
}

// floatBuffer is mono float64 samples
type floatBuffer []float64

// synthesize renders an effect into a buffer.
func synthesize(e effect) floatBuffer {
	total := sampleRate.N(e.duration)
	buf := make(floatBuffer, total)
	rng := rand.New(rand.NewSource(1)) // noise is the same every time
	phase := 0.0

	for i := range buf {
		progress := float64(i) / float64(total)
		freq := e.freqFrom + (e.freqTo-e.freqFrom)*progress

		switch e.wave {
		case waveSine:
			buf[i] = math.Sin(2 * math.Pi * phase)
		case waveSquare:
			if phase < 0.5 {
				buf[i] = 1
			} else {
				buf[i] = -1
			}
		case waveNoise:
			buf[i] = rng.Float64()*2 - 1
		}

		phase += freq / float64(sampleRate)
		if phase >= 1 {
			phase -= 1
		}
	}

	applyEnvelope(buf, sampleRate.N(e.attack), sampleRate.N(e.release))
	for i := range buf {
		buf[i] *= e.gain
	}
	return buf
}

// applyEnvelope applies a linear attack/release envelope in place.
func applyEnvelope(buf floatBuffer, attack, release int) {
	total := len(buf)
	releaseStart := total - release
	if releaseStart < attack {
		releaseStart = attack
	}
	for i := range buf {
		vol := 1.0
		if i < attack && attack > 0 {
			vol = float64(i) / float64(attack)
		} else if i >= releaseStart && release > 0 {
			vol = float64(total-i) / float64(release)
		}
		buf[i] *= vol
	}
}

// soundCache stores rendered effects
type soundCache struct {
	mu    sync.RWMutex
	store map[string]floatBuffer
}

func newSoundCache() *soundCache {
	return &soundCache{store: make(map[string]floatBuffer)}
}

// get returns the cached buffer, rendering it on first use. Unknown ids return nil.
func (c *soundCache) get(id string) floatBuffer {
	c.mu.RLock()
	buf, ok := c.store[id]
	c.mu.RUnlock()
	if ok {
		return buf
	}

	e, known := effects[id]
	if !known {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if buf, ok := c.store[id]; ok {
		return buf
	}
	buf = synthesize(e)
	c.store[id] = buf
	return buf
}

// preload renders every known effect.
func (c *soundCache) preload() {
	for id := range effects {
		c.get(id)
	}
}

// bufferStreamer plays a mono buffer once on both channels.
type bufferStreamer struct {
	buf floatBuffer
	pos int
}

func (s *bufferStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	for i := range samples {
		if s.pos >= len(s.buf) {
			break
		}
		v := s.buf[s.pos]
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
		n++
	}
	return n, true
}

func (s *bufferStreamer) Err() error {
	return nil
}
