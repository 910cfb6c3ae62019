// Package config provides YAML-based game configuration loading, validation,
// difficulty presets and hot-reload watching.
package config

// FlappyConfig contains all tunables of the flappy simulation.
type FlappyConfig struct {
	World   WorldConfig   `yaml:"world"`
	Physics PhysicsConfig `yaml:"physics"`
	Flyer   FlyerConfig   `yaml:"flyer"`
	Gates   GatesConfig   `yaml:"gates"`
}

// WorldConfig defines the fixed play area in world units.
type WorldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundY      float64 `yaml:"ground_y"`      // Top edge of the ground strip
	GroundHeight float64 `yaml:"ground_height"` // Height of the ground strip
}

// PhysicsConfig defines global motion parameters.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`       // Units per second squared, downward
	FlapVelocity float64 `yaml:"flap_velocity"` // VY set by a flap (negative = up)
	ScrollSpeed  float64 `yaml:"scroll_speed"`  // Leftward speed shared by ground and gates
}

// FlyerConfig defines the controllable entity.
type FlyerConfig struct {
	X          float64 `yaml:"x"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	DiveRate   float64 `yaml:"dive_rate"`  // Degrees added per tick while falling
	MaxPitch   float64 `yaml:"max_pitch"`  // Nose-down clamp in degrees
	FlapPitch  float64 `yaml:"flap_pitch"` // Pitch a flap rotates toward
	FlapTweenS float64 `yaml:"flap_tween"` // Seconds the flap rotation takes
}

// GatesConfig defines the paired obstacles and their spawn cadence.
type GatesConfig struct {
	PipeWidth     float64 `yaml:"pipe_width"`
	PipeHeight    float64 `yaml:"pipe_height"`
	GapFactor     float64 `yaml:"gap_factor"`     // Gap height as a multiple of flyer height
	SpawnInterval float64 `yaml:"spawn_interval"` // Seconds between spawns
	OffsetRange   float64 `yaml:"offset_range"`   // Max vertical offset from the field center
	MaxGates      int     `yaml:"max_gates"`      // Pool capacity
}

// Gap returns the gap height in world units.
func (c FlappyConfig) Gap() float64 {
	return c.Gates.GapFactor * c.Flyer.Height
}

// FieldCenter returns the vertical center of the open play field above the ground.
func (c FlappyConfig) FieldCenter() float64 {
	return c.World.GroundY / 2
}

// DifficultyPreset is a named set of overrides applied at load time.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a CLI string to a preset. Unknown or empty strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// ApplyPreset adjusts gap, cadence and speed for a preset. Normal and unknown
// presets leave the config untouched.
func ApplyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gates.GapFactor *= 1.2
		cfg.Gates.SpawnInterval *= 1.2
		cfg.Physics.ScrollSpeed *= 0.85
	case DifficultyHard:
		cfg.Gates.GapFactor *= 0.85
		cfg.Gates.SpawnInterval *= 0.85
		cfg.Physics.ScrollSpeed *= 1.2
	}
}
