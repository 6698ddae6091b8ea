package config

import (
	_ "embed"
)

//go:embed defaults/ecomatch.yaml
var defaultEcoMatchYAML []byte

// DefaultEcoMatchConfig returns the default EcoMatch configuration.
// It mirrors defaults/ecomatch.yaml and is used if the embed cannot be parsed.
func DefaultEcoMatchConfig() EcoMatchConfig {
	return EcoMatchConfig{
		Board: BoardConfig{
			Size:                8,
			EnsurePlayable:      true,
			MaxGenerateAttempts: 100,
			MaxShuffleAttempts:  50,
		},
		Scoring: ScoringConfig{
			PointsPerTile: 10,
			PowerUpBonus:  50,
		},
		Timing: TimingConfig{
			SwapTicks:       8,
			ClearTicks:      12,
			DropTicks:       8,
			FillTicks:       8,
			ShuffleTicks:    45,
			LevelClearTicks: 120, // 2 seconds at 60fps
			HintDelayTicks:  600, // 10 seconds at 60fps
		},
		Endless: EndlessConfig{
			GridSize:   8,
			MovesLimit: 40,
			TileTypes:  []string{"tree", "solar", "wind", "recycle", "water"},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				ExtraTileTypes: 3,
			},
		},
		Levels: []LevelConfig{
			{Name: "Seedling Grove", Biome: "forest", GridSize: 6, TileTypes: []string{"tree", "water", "solar", "wind"}, TargetScore: 500, MovesLimit: 20, Unlocks: "supernova"},
			{Name: "Sunny Meadow", Biome: "meadow", GridSize: 7, TileTypes: []string{"tree", "solar", "wind", "water", "recycle"}, TargetScore: 1000, MovesLimit: 22},
			{Name: "Coral Reef", Biome: "ocean", GridSize: 7, TileTypes: []string{"coral", "water", "wind", "solar", "recycle"}, TargetScore: 1500, MovesLimit: 24, Unlocks: "tsunami"},
			{Name: "Desert Bloom", Biome: "desert", GridSize: 8, TileTypes: []string{"cactus", "solar", "wind", "recycle", "energy"}, TargetScore: 2000, MovesLimit: 25},
			{Name: "Glacier Rim", Biome: "arctic", GridSize: 8, TileTypes: []string{"glacier", "water", "wind", "energy", "solar", "recycle"}, TargetScore: 2500, MovesLimit: 26, Unlocks: "earthquake"},
			{Name: "Bamboo Valley", Biome: "forest", GridSize: 8, TileTypes: []string{"bamboo", "tree", "water", "solar", "wind", "recycle"}, TargetScore: 3000, MovesLimit: 28, Unlocks: "meteor"},
			{Name: "Windward Coast", Biome: "ocean", GridSize: 9, TileTypes: []string{"coral", "wind", "water", "solar", "energy", "recycle"}, TargetScore: 3500, MovesLimit: 30},
			{Name: "Green City", Biome: "urban", GridSize: 9, TileTypes: []string{"recycle", "solar", "wind", "energy", "tree", "water"}, TargetScore: 4500, MovesLimit: 32, Unlocks: "phoenix"},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultEcoMatchYAML
}
