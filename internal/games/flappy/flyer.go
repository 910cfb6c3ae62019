package flappy

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/physics"
)

// Flyer is the player-controlled entity. It is created dormant: no gravity,
// no rotation, no reaction to flaps until Activate is called.
type Flyer struct {
	body     physics.Body
	alive    bool
	rotation float64 // Pitch in degrees, positive = nose down

	flapVelocity float64
	diveRate     float64
	maxPitch     float64
	flapPitch    float64

	// Flap rotation tween, counted in ticks
	tweenTicks int
	tweenLeft  int
	tweenFrom  float64
}

// NewFlyer creates a dormant flyer at its configured x, vertically centered in the field.
func NewFlyer(cfg config.FlappyConfig, tickRate int) *Flyer {
	if tickRate <= 0 {
		tickRate = 60
	}
	f := &Flyer{
		body:         physics.NewBody(cfg.Flyer.X, cfg.FieldCenter(), cfg.Flyer.Width, cfg.Flyer.Height),
		flapVelocity: cfg.Physics.FlapVelocity,
		diveRate:     cfg.Flyer.DiveRate,
		maxPitch:     cfg.Flyer.MaxPitch,
		flapPitch:    cfg.Flyer.FlapPitch,
		tweenTicks:   int(math.Round(cfg.Flyer.FlapTweenS * float64(tickRate))),
	}
	return f
}

// Body returns the flyer's physics body.
func (f *Flyer) Body() *physics.Body {
	return &f.body
}

// Bodies implements physics.Collidable.
func (f *Flyer) Bodies() []*physics.Body {
	return []*physics.Body{&f.body}
}

// Alive reports whether the flyer reacts to gravity and flaps.
func (f *Flyer) Alive() bool {
	return f.alive
}

// Rotation returns the current pitch in degrees.
func (f *Flyer) Rotation() float64 {
	return f.rotation
}

// Activate brings the flyer to life and enables gravity.
func (f *Flyer) Activate() {
	f.alive = true
	f.body.Gravity = true
}

// Deactivate kills the flyer and freezes it in place.
func (f *Flyer) Deactivate() {
	f.alive = false
	f.body.Gravity = false
	f.body.VX, f.body.VY = 0, 0
	f.tweenLeft = 0
}

// Flap sets the vertical velocity to the flap velocity, replacing whatever it
// was, and starts the nose-up rotation. Returns false if the flyer is not alive.
func (f *Flyer) Flap() bool {
	if !f.alive {
		return false
	}
	f.body.VY = f.flapVelocity

	if f.tweenTicks <= 0 {
		f.rotation = f.flapPitch
		return true
	}
	f.tweenFrom = f.rotation
	f.tweenLeft = f.tweenTicks
	return true
}

// Move integrates the body for one tick.
func (f *Flyer) Move(dt, gravity float64) {
	f.body.Step(dt, gravity)
}

// Tick advances the rotation by one tick. While a flap tween runs the pitch
// moves linearly toward the flap pitch; otherwise the nose dives toward maxPitch.
func (f *Flyer) Tick() {
	if !f.alive {
		return
	}
	if f.tweenLeft > 0 {
		f.tweenLeft--
		t := 1 - float64(f.tweenLeft)/float64(f.tweenTicks)
		f.rotation = core.Lerp(f.tweenFrom, f.flapPitch, t)
		return
	}
	if f.rotation < f.maxPitch {
		f.rotation = math.Min(f.rotation+f.diveRate, f.maxPitch)
	}
}
