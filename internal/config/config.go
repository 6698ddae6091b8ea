// Package config provides YAML-based configuration loading, campaign level
// definitions and difficulty management for EcoMatch.
package config

// EcoMatchConfig contains all configuration for the EcoMatch game.
type EcoMatchConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Timing     TimingConfig     `yaml:"timing"`
	Endless    EndlessConfig    `yaml:"endless"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Levels     []LevelConfig    `yaml:"levels"`
}

// BoardConfig defines board generation parameters.
type BoardConfig struct {
	Size                int  `yaml:"size"`            // Default grid size for levels that omit one
	EnsurePlayable      bool `yaml:"ensure_playable"` // Regenerate/reshuffle until a move exists
	MaxGenerateAttempts int  `yaml:"max_generate_attempts"`
	MaxShuffleAttempts  int  `yaml:"max_shuffle_attempts"`
}

// ScoringConfig defines how cleared tiles turn into points.
type ScoringConfig struct {
	PointsPerTile int `yaml:"points_per_tile"` // Multiplied by the cascade chain
	PowerUpBonus  int `yaml:"power_up_bonus"`  // Added per power-up tile cleared
}

// TimingConfig defines phase durations in simulation ticks.
type TimingConfig struct {
	SwapTicks       int `yaml:"swap_ticks"`
	ClearTicks      int `yaml:"clear_ticks"`
	DropTicks       int `yaml:"drop_ticks"`
	FillTicks       int `yaml:"fill_ticks"`
	ShuffleTicks    int `yaml:"shuffle_ticks"`
	LevelClearTicks int `yaml:"level_clear_ticks"`
	HintDelayTicks  int `yaml:"hint_delay_ticks"` // Idle ticks before a hint appears, 0 disables
}

// EndlessConfig defines the endless score attack mode.
type EndlessConfig struct {
	GridSize   int      `yaml:"grid_size"`
	MovesLimit int      `yaml:"moves_limit"`
	TileTypes  []string `yaml:"tile_types"` // Starting palette, grown by difficulty scaling
}

// LevelConfig defines one campaign level.
type LevelConfig struct {
	Name        string   `yaml:"name"`
	Biome       string   `yaml:"biome"`
	GridSize    int      `yaml:"grid_size"`
	TileTypes   []string `yaml:"tile_types"`
	TargetScore int      `yaml:"target_score"`
	MovesLimit  int      `yaml:"moves_limit"`
	Unlocks     string   `yaml:"unlocks"` // Power-up unlocked when the level is cleared
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "moves", or "none"
	MaxAt int    `yaml:"max_at"` // Score/moves at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	ExtraTileTypes int `yaml:"extra_tile_types"` // Tile types added to the endless palette at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset returns the preset for a name, false if unknown.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	}
	return "", false
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// LevelSize returns the level's grid size, falling back to the board default.
func (c EcoMatchConfig) LevelSize(l LevelConfig) int {
	if l.GridSize > 0 {
		return l.GridSize
	}
	return c.Board.Size
}

// EndlessSize returns the endless grid size, falling back to the board default.
func (c EcoMatchConfig) EndlessSize() int {
	if c.Endless.GridSize > 0 {
		return c.Endless.GridSize
	}
	return c.Board.Size
}
