package match3

import (
	"math/rand"

	"github.com/google/uuid"
)

// Power-up spawn probabilities.
const (
	GeneratePowerUpChance = 0.03
	FillPowerUpChance     = 0.02
)

// GenerateGrid creates a size x size grid with types drawn uniformly from
// the level palette. When unlocked is non-empty each tile independently
// becomes a random unlocked power-up with probability GeneratePowerUpChance.
// The result may contain matches and may have no valid move.
func GenerateGrid(rng *rand.Rand, size int, level *Level, unlocked []TileType) Grid {
	if size <= 0 {
		return Grid{}
	}
	palette := Palette(level)
	grid := make(Grid, 0, size*size)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			grid = append(grid, newTile(rng, r, c, palette, unlocked, GeneratePowerUpChance))
		}
	}
	return grid
}

// FillEmpty adds new tiles at the top of every column that is short after
// DropTiles. New tiles use FillPowerUpChance for power-ups.
func FillEmpty(rng *rand.Rand, g Grid, size int, level *Level, unlocked []TileType) Grid {
	if size <= 0 {
		return g.Clone()
	}
	palette := Palette(level)
	counts := make([]int, size)
	for _, t := range g {
		if t.Col >= 0 && t.Col < size {
			counts[t.Col]++
		}
	}
	out := g.Clone()
	for c := 0; c < size; c++ {
		missing := size - counts[c]
		for r := 0; r < missing; r++ {
			out = append(out, newTile(rng, r, c, palette, unlocked, FillPowerUpChance))
		}
	}
	return out
}

func newTile(rng *rand.Rand, row, col int, palette, unlocked []TileType, chance float64) Tile {
	typ := palette[rng.Intn(len(palette))]
	if len(unlocked) > 0 && rng.Float64() < chance {
		typ = unlocked[rng.Intn(len(unlocked))]
	}
	return Tile{
		ID:        TileID(row, col),
		Entity:    newEntity(rng),
		Type:      typ,
		Row:       row,
		Col:       col,
		IsPowerUp: typ.IsPowerUp(),
	}
}

// newEntity draws a UUID from rng so seeded runs produce the same ids.
func newEntity(rng *rand.Rand) string {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// GeneratePlayableGrid calls GenerateGrid until the board has no
// pre-existing match and at least one valid move. It returns the grid and
// the number of attempts used. After maxAttempts the last grid is returned
// as is.
func GeneratePlayableGrid(rng *rand.Rand, size int, level *Level, unlocked []TileType, maxAttempts int) (Grid, int) {
	maxAttempts = max(maxAttempts, 1)
	var grid Grid
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		grid = GenerateGrid(rng, size, level, unlocked)
		if IsPlayable(grid, size) {
			return grid, attempt
		}
	}
	return grid, maxAttempts
}
