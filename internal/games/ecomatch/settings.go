package ecomatch

import (
	"sync"

	"github.com/vovakirdan/ecomatch/internal/config"
	"github.com/vovakirdan/ecomatch/internal/match3"
)

// ProgressStore persists campaign progress and unlocked power-ups.
// storage.Store implements it; a nil store disables persistence.
type ProgressStore interface {
	UnlockedPowerUps() ([]string, error)
	UnlockPowerUp(name string) error
	MarkLevelCleared(level int, name string, score int) error
}

// Package-level settings applied on the next Reset. SSH sessions create
// games concurrently, so access goes through settingsMu.
var (
	settingsMu         sync.Mutex
	selectedStartLevel int
	configPath         string
	difficultyPreset   config.DifficultyPreset
	progressStore      ProgressStore
)

// SetStartLevel sets the 1-based campaign level to start from on the next
// Reset. 0 means start from the beginning.
func SetStartLevel(level int) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	selectedStartLevel = level
}

// takeStartLevel returns the selected start level and clears it.
func takeStartLevel() int {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	level := selectedStartLevel
	selectedStartLevel = 0
	return level
}

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	difficultyPreset, _ = config.ParsePreset(preset)
}

// SetProgressStore sets the store used to load unlocks and record progress.
func SetProgressStore(s ProgressStore) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	progressStore = s
}

// LoadConfig loads the configuration the way Reset does: the configured
// path, then the preset on top. Errors fall back to the defaults.
func LoadConfig() config.EcoMatchConfig {
	settingsMu.Lock()
	preset := difficultyPreset
	settingsMu.Unlock()
	return ConfigWithPreset(preset)
}

// ConfigWithPreset loads the configuration from the configured path and
// applies preset instead of the package-level one. An empty preset applies
// nothing.
func ConfigWithPreset(preset config.DifficultyPreset) config.EcoMatchConfig {
	settingsMu.Lock()
	path := configPath
	settingsMu.Unlock()

	cfg, err := config.LoadEcoMatch(path)
	if err != nil {
		cfg = config.DefaultEcoMatchConfig()
	}
	if preset != "" {
		config.ApplyEcoMatchPreset(&cfg, preset)
	}
	return cfg
}

// ModeForID returns the mode for a registered game id.
func ModeForID(id string) Mode {
	if id == "ecomatch_endless" {
		return ModeEndless
	}
	return ModeCampaign
}

func currentStore() ProgressStore {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	return progressStore
}

// loadUnlocked reads unlocked power-ups from the store, skipping names
// that are not power-ups.
func loadUnlocked(s ProgressStore) []match3.TileType {
	if s == nil {
		return nil
	}
	names, err := s.UnlockedPowerUps()
	if err != nil {
		return nil
	}
	var out []match3.TileType
	for _, name := range names {
		typ, err := match3.ParseTileType(name)
		if err != nil || !typ.IsPowerUp() {
			continue
		}
		out = append(out, typ)
	}
	return out
}
