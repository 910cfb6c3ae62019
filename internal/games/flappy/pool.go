package flappy

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// ErrPoolExhausted is returned when a spawn needs a new gate but the pool is at capacity.
var ErrPoolExhausted = errors.New("flappy: gate pool exhausted")

// GatePool hands out gates, reusing retired ones before allocating.
// Gates are kept in allocation order and the pool never shrinks.
type GatePool struct {
	gates    []*Gate
	capacity int

	pipe        PipeSize
	gap         float64
	spawnX      float64
	center      float64
	offsetRange float64
	speed       float64
}

// NewGatePool creates an empty pool for the given configuration.
func NewGatePool(cfg config.FlappyConfig) (*GatePool, error) {
	p := &GatePool{
		gates:       make([]*Gate, 0, 4),
		capacity:    cfg.Gates.MaxGates,
		pipe:        PipeSize{W: cfg.Gates.PipeWidth, H: cfg.Gates.PipeHeight},
		gap:         cfg.Gap(),
		spawnX:      cfg.World.Width + cfg.Gates.PipeWidth/2,
		center:      cfg.FieldCenter(),
		offsetRange: cfg.Gates.OffsetRange,
		speed:       cfg.Physics.ScrollSpeed,
	}
	// Probe the geometry once so every later Configure succeeds
	var probe Gate
	if err := probe.Configure(p.pipe, p.gap); err != nil {
		return nil, err
	}
	if p.capacity <= 0 {
		return nil, fmt.Errorf("flappy: pool capacity must be positive, got %d", p.capacity)
	}
	return p, nil
}

// Spawn places a gate just beyond the right edge of the world with its gap
// randomly offset from the field center.
func (p *GatePool) Spawn(rng *rand.Rand) (*Gate, error) {
	g, err := p.acquire()
	if err != nil {
		return nil, err
	}
	offset := (rng.Float64()*2 - 1) * p.offsetRange
	g.Reset(p.spawnX, p.center+offset, p.speed)
	return g, nil
}

// acquire returns the first retired gate, or allocates a new one.
func (p *GatePool) acquire() (*Gate, error) {
	for _, g := range p.gates {
		if !g.exists {
			return g, nil
		}
	}
	if len(p.gates) >= p.capacity {
		return nil, fmt.Errorf("%w: %d gates live", ErrPoolExhausted, len(p.gates))
	}
	g := &Gate{}
	if err := g.Configure(p.pipe, p.gap); err != nil {
		return nil, err
	}
	p.gates = append(p.gates, g)
	return g, nil
}

// Tick moves every live gate.
func (p *GatePool) Tick(dt float64) {
	for _, g := range p.gates {
		g.Tick(dt)
	}
}

// Freeze stops every gate in place.
func (p *GatePool) Freeze() {
	for _, g := range p.gates {
		g.Freeze()
	}
}

// Recycle retires every gate without releasing it.
func (p *GatePool) Recycle() {
	for _, g := range p.gates {
		g.exists = false
	}
}

// Gates returns all allocated gates in allocation order, live or not.
func (p *GatePool) Gates() []*Gate {
	return p.gates
}

// Len returns the number of allocated gates.
func (p *GatePool) Len() int {
	return len(p.gates)
}

// Live returns the number of gates currently in the world.
func (p *GatePool) Live() int {
	n := 0
	for _, g := range p.gates {
		if g.exists {
			n++
		}
	}
	return n
}

// Cap returns the pool capacity.
func (p *GatePool) Cap() int {
	return p.capacity
}
