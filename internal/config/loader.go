package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config sources reported by Load.
const (
	SourceCustom   = "custom"
	SourceUser     = "user"
	SourceLocal    = "local"
	SourceEmbedded = "embedded"
	SourceBuiltin  = "builtin"
)

// LocalConfigPath is the project-relative config location.
const LocalConfigPath = "configs/flappy.yaml"

// LoadFlappy loads and validates the flappy configuration.
// Search order: customPath -> ~/.arcade/configs/flappy.yaml -> ./configs/flappy.yaml -> embedded default
func LoadFlappy(customPath string) (FlappyConfig, error) {
	cfg, _, err := Load(customPath)
	return cfg, err
}

// Load is LoadFlappy that also reports which source the config came from.
// Files only need to set the keys they override; everything else keeps its default.
func Load(customPath string) (FlappyConfig, string, error) {
	if customPath != "" {
		cfg, err := parseFile(customPath)
		if err != nil {
			return cfg, SourceCustom, err
		}
		return cfg, SourceCustom, cfg.Validate()
	}

	if userCfgPath := UserConfigPath(); userCfgPath != "" {
		if cfg, err := parseFile(userCfgPath); err == nil {
			return cfg, SourceUser, cfg.Validate()
		}
	}

	if cfg, err := parseFile(LocalConfigPath); err == nil {
		return cfg, SourceLocal, cfg.Validate()
	}

	cfg, err := Parse(defaultFlappyYAML)
	if err != nil {
		return DefaultFlappyConfig(), SourceBuiltin, nil
	}
	return cfg, SourceEmbedded, cfg.Validate()
}

// Parse decodes YAML on top of the built-in defaults. It does not validate.
func Parse(data []byte) (FlappyConfig, error) {
	cfg := DefaultFlappyConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal encodes a config as YAML.
func Marshal(cfg FlappyConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

func parseFile(path string) (FlappyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultFlappyConfig(), fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// UserConfigPath returns ~/.arcade/configs/flappy.yaml, or empty if home is unavailable.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", "flappy.yaml")
}
