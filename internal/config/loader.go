package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "ecomatch.yaml"

// LoadEcoMatch loads EcoMatch configuration.
// Search order: customPath -> ~/.ecomatch/configs/ecomatch.yaml ->
// ./configs/ecomatch.yaml -> embedded default -> hardcoded default.
// Files are decoded over the defaults, so they only need the keys they change.
func LoadEcoMatch(customPath string) (EcoMatchConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return EcoMatchConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return EcoMatchConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultEcoMatchYAML)
	if err != nil {
		return DefaultEcoMatchConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the default configuration and validates the result.
func Parse(data []byte) (EcoMatchConfig, error) {
	cfg := DefaultEcoMatchConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return EcoMatchConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return EcoMatchConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ecomatch", "configs", filename)
}

// ApplyEcoMatchPreset modifies the config based on a difficulty preset.
func ApplyEcoMatchPreset(cfg *EcoMatchConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust budgets based on difficulty
	switch preset {
	case DifficultyEasy:
		for i := range cfg.Levels {
			cfg.Levels[i].MovesLimit += 5
			cfg.Levels[i].TargetScore = cfg.Levels[i].TargetScore * 3 / 4
		}
		cfg.Endless.MovesLimit += 10
		cfg.Timing.HintDelayTicks = 300
	case DifficultyHard:
		for i := range cfg.Levels {
			cfg.Levels[i].MovesLimit = max(cfg.Levels[i].MovesLimit-5, 5)
			cfg.Levels[i].TargetScore = cfg.Levels[i].TargetScore * 5 / 4
		}
		cfg.Endless.MovesLimit = max(cfg.Endless.MovesLimit-10, 10)
		cfg.Timing.HintDelayTicks = 0
	}
}
