package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration. It matches
// defaults/flappy.yaml and is used when the embedded file cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: WorldConfig{
			Width:        288,
			Height:       505,
			GroundY:      400,
			GroundHeight: 112,
		},
		Physics: PhysicsConfig{
			Gravity:      1200,
			FlapVelocity: -400,
			ScrollSpeed:  200,
		},
		Flyer: FlyerConfig{
			X:          100,
			Width:      34,
			Height:     24,
			DiveRate:   2.5,
			MaxPitch:   90,
			FlapPitch:  -40,
			FlapTweenS: 0.1,
		},
		Gates: GatesConfig{
			PipeWidth:     52,
			PipeHeight:    320,
			GapFactor:     5,
			SpawnInterval: 1.25,
			OffsetRange:   100,
			MaxGates:      16,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
