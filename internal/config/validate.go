package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/ecomatch/internal/match3"
)

// Grid size bounds. The move search is O(size^4), so boards stay small.
const (
	MinGridSize = 3
	MaxGridSize = 10
)

// minPalette is the smallest palette that lets a cascade settle.
const minPalette = 3

// Validate reports the first problem found in the configuration.
func (c EcoMatchConfig) Validate() error {
	if err := checkSize("board.size", c.Board.Size); err != nil {
		return err
	}
	if c.Board.MaxGenerateAttempts < 1 {
		return fmt.Errorf("config: board.max_generate_attempts must be positive, got %d", c.Board.MaxGenerateAttempts)
	}
	if c.Board.MaxShuffleAttempts < 1 {
		return fmt.Errorf("config: board.max_shuffle_attempts must be positive, got %d", c.Board.MaxShuffleAttempts)
	}

	if c.Scoring.PointsPerTile <= 0 {
		return fmt.Errorf("config: scoring.points_per_tile must be positive, got %d", c.Scoring.PointsPerTile)
	}
	if c.Scoring.PowerUpBonus < 0 {
		return fmt.Errorf("config: scoring.power_up_bonus must not be negative, got %d", c.Scoring.PowerUpBonus)
	}

	t := c.Timing
	for name, v := range map[string]int{
		"swap_ticks":        t.SwapTicks,
		"clear_ticks":       t.ClearTicks,
		"drop_ticks":        t.DropTicks,
		"fill_ticks":        t.FillTicks,
		"shuffle_ticks":     t.ShuffleTicks,
		"level_clear_ticks": t.LevelClearTicks,
		"hint_delay_ticks":  t.HintDelayTicks,
	} {
		if v < 0 {
			return fmt.Errorf("config: timing.%s must not be negative, got %d", name, v)
		}
	}

	if err := checkSize("endless.grid_size", c.EndlessSize()); err != nil {
		return err
	}
	if c.Endless.MovesLimit <= 0 {
		return fmt.Errorf("config: endless.moves_limit must be positive, got %d", c.Endless.MovesLimit)
	}
	if _, err := ParsePalette(c.Endless.TileTypes); err != nil {
		return fmt.Errorf("config: endless.tile_types: %w", err)
	}

	if err := c.Difficulty.validate(); err != nil {
		return err
	}

	if len(c.Levels) == 0 {
		return errors.New("config: no levels defined")
	}
	for i, l := range c.Levels {
		if err := c.validateLevel(l); err != nil {
			return fmt.Errorf("config: level %d (%s): %w", i+1, l.Name, err)
		}
	}
	return nil
}

func (c EcoMatchConfig) validateLevel(l LevelConfig) error {
	if l.Name == "" {
		return errors.New("name is required")
	}
	if err := checkSize("grid_size", c.LevelSize(l)); err != nil {
		return err
	}
	if _, err := ParsePalette(l.TileTypes); err != nil {
		return fmt.Errorf("tile_types: %w", err)
	}
	if l.TargetScore <= 0 {
		return fmt.Errorf("target_score must be positive, got %d", l.TargetScore)
	}
	if l.MovesLimit <= 0 {
		return fmt.Errorf("moves_limit must be positive, got %d", l.MovesLimit)
	}
	if l.Unlocks != "" {
		typ, err := match3.ParseTileType(l.Unlocks)
		if err != nil {
			return fmt.Errorf("unlocks: %w", err)
		}
		if !typ.IsPowerUp() {
			return fmt.Errorf("unlocks: %s is not a power-up", typ)
		}
	}
	return nil
}

func (d DifficultyConfig) validate() error {
	switch d.Progression.Type {
	case "score", "moves", "none":
	default:
		return fmt.Errorf("config: difficulty.progression.type %q is not one of score, moves, none", d.Progression.Type)
	}
	if d.Progression.MaxAt < 0 {
		return fmt.Errorf("config: difficulty.progression.max_at must not be negative, got %d", d.Progression.MaxAt)
	}
	if d.InitialLevel < 0 || d.InitialLevel > 1 {
		return fmt.Errorf("config: difficulty.initial_level must be within [0, 1], got %g", d.InitialLevel)
	}
	if d.Scaling.ExtraTileTypes < 0 {
		return fmt.Errorf("config: difficulty.scaling.extra_tile_types must not be negative, got %d", d.Scaling.ExtraTileTypes)
	}
	return nil
}

func checkSize(field string, size int) error {
	if size < MinGridSize || size > MaxGridSize {
		return fmt.Errorf("config: %s must be within [%d, %d], got %d", field, MinGridSize, MaxGridSize, size)
	}
	return nil
}

// ParsePalette converts tile type names to normal tile types. It rejects
// unknown names, power-ups, duplicates and palettes too small to settle.
func ParsePalette(names []string) ([]match3.TileType, error) {
	if len(names) < minPalette {
		return nil, fmt.Errorf("need at least %d tile types, got %d", minPalette, len(names))
	}
	out := make([]match3.TileType, 0, len(names))
	seen := make(map[match3.TileType]bool, len(names))
	for _, name := range names {
		typ, err := match3.ParseTileType(name)
		if err != nil {
			return nil, err
		}
		if typ.IsPowerUp() {
			return nil, fmt.Errorf("%s is a power-up, not a tile type", typ)
		}
		if seen[typ] {
			return nil, fmt.Errorf("duplicate tile type %s", typ)
		}
		seen[typ] = true
		out = append(out, typ)
	}
	return out, nil
}

// Level converts a level definition to the engine's level. The config is
// expected to have passed Validate.
func (c EcoMatchConfig) Level(l LevelConfig) (match3.Level, error) {
	palette, err := ParsePalette(l.TileTypes)
	if err != nil {
		return match3.Level{}, fmt.Errorf("config: level %s: %w", l.Name, err)
	}
	return match3.Level{
		GridSize:    c.LevelSize(l),
		TileTypes:   palette,
		TargetScore: l.TargetScore,
		MovesLimit:  l.MovesLimit,
	}, nil
}
