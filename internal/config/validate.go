package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid flappy config")

// Validate checks that the config describes a playable, well-formed game.
// All problems are reported together.
func (c FlappyConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.World.Width > 0, "world.width must be positive, got %g", c.World.Width)
	check(c.World.Height > 0, "world.height must be positive, got %g", c.World.Height)
	check(c.World.GroundY > 0 && c.World.GroundY < c.World.Height,
		"world.ground_y must be inside the world, got %g", c.World.GroundY)
	check(c.World.GroundHeight > 0, "world.ground_height must be positive, got %g", c.World.GroundHeight)

	check(c.Physics.Gravity > 0, "physics.gravity must be positive, got %g", c.Physics.Gravity)
	check(c.Physics.FlapVelocity < 0, "physics.flap_velocity must be negative (upward), got %g", c.Physics.FlapVelocity)
	check(c.Physics.ScrollSpeed > 0, "physics.scroll_speed must be positive, got %g", c.Physics.ScrollSpeed)

	check(c.Flyer.Width > 0 && c.Flyer.Height > 0,
		"flyer size must be positive, got %gx%g", c.Flyer.Width, c.Flyer.Height)
	check(c.Flyer.X > 0 && c.Flyer.X < c.World.Width, "flyer.x must be inside the world, got %g", c.Flyer.X)
	check(c.Flyer.DiveRate >= 0, "flyer.dive_rate must not be negative, got %g", c.Flyer.DiveRate)
	check(c.Flyer.MaxPitch > c.Flyer.FlapPitch,
		"flyer.max_pitch must be above flyer.flap_pitch, got %g <= %g", c.Flyer.MaxPitch, c.Flyer.FlapPitch)
	check(c.Flyer.FlapTweenS >= 0, "flyer.flap_tween must not be negative, got %g", c.Flyer.FlapTweenS)

	check(c.Gates.PipeWidth > 0 && c.Gates.PipeHeight > 0,
		"gate pipe size must be positive, got %gx%g", c.Gates.PipeWidth, c.Gates.PipeHeight)
	check(c.Gates.GapFactor > 0, "gates.gap_factor must be positive, got %g", c.Gates.GapFactor)
	check(c.Gates.SpawnInterval > 0, "gates.spawn_interval must be positive, got %g", c.Gates.SpawnInterval)
	check(c.Gates.OffsetRange >= 0, "gates.offset_range must not be negative, got %g", c.Gates.OffsetRange)
	check(c.Gates.MaxGates > 0, "gates.max_gates must be positive, got %d", c.Gates.MaxGates)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
