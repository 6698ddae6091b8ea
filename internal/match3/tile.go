// Package match3 implements the match-3 board engine: grid generation,
// match detection, swap resolution, gravity drop, refill, and the
// valid-move search used for hints and deadlock detection.
//
// Every operation takes a grid snapshot and returns a new one. Nothing in
// this package keeps state between calls, so callers own the grid and
// thread it through successive operations.
package match3

import (
	"fmt"
	"strings"
)

// TileType identifies the element shown on a tile.
type TileType string

// Normal tile types.
const (
	Tree    TileType = "tree"
	Solar   TileType = "solar"
	Wind    TileType = "wind"
	Recycle TileType = "recycle"
	Water   TileType = "water"
	Energy  TileType = "energy"

	// Biome types, used by levels that restrict the palette.
	Coral   TileType = "coral"
	Cactus  TileType = "cactus"
	Glacier TileType = "glacier"
	Bamboo  TileType = "bamboo"
)

// Power-up tile types.
const (
	Supernova  TileType = "supernova"
	Tsunami    TileType = "tsunami"
	Earthquake TileType = "earthquake"
	Meteor     TileType = "meteor"
	Phoenix    TileType = "phoenix"
)

// DefaultPalette is the palette used when no level restricts it.
var DefaultPalette = []TileType{Tree, Solar, Wind, Recycle, Water, Energy}

// NormalTypes lists every normal tile type.
var NormalTypes = []TileType{
	Tree, Solar, Wind, Recycle, Water, Energy,
	Coral, Cactus, Glacier, Bamboo,
}

// PowerUpTypes lists every power-up tile type.
var PowerUpTypes = []TileType{Supernova, Tsunami, Earthquake, Meteor, Phoenix}

type typeInfo struct {
	glyph   rune
	emoji   string
	powerUp bool
}

var typeTable = map[TileType]typeInfo{
	Tree:       {'T', "🌳", false},
	Solar:      {'S', "☀️", false},
	Wind:       {'W', "🌬️", false},
	Recycle:    {'R', "♻️", false},
	Water:      {'~', "💧", false},
	Energy:     {'E', "⚡", false},
	Coral:      {'C', "🪸", false},
	Cactus:     {'K', "🌵", false},
	Glacier:    {'G', "🧊", false},
	Bamboo:     {'B', "🎋", false},
	Supernova:  {'*', "🌟", true},
	Tsunami:    {'@', "🌊", true},
	Earthquake: {'#', "🌋", true},
	Meteor:     {'%', "☄️", true},
	Phoenix:    {'&', "🔥", true},
}

// ParseTileType converts a name to a TileType, ignoring case and
// surrounding whitespace.
func ParseTileType(name string) (TileType, error) {
	t := TileType(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := typeTable[t]; !ok {
		return "", fmt.Errorf("match3: unknown tile type %q", name)
	}
	return t, nil
}

// Valid reports whether t is a known tile type.
func (t TileType) Valid() bool {
	_, ok := typeTable[t]
	return ok
}

// IsPowerUp reports whether t is a power-up type.
func (t TileType) IsPowerUp() bool {
	return typeTable[t].powerUp
}

// Glyph returns a single ASCII rune for the type, '?' when unknown.
func (t TileType) Glyph() rune {
	if info, ok := typeTable[t]; ok {
		return info.glyph
	}
	return '?'
}

// Emoji returns the emoji used for text output, "?" when unknown.
func (t TileType) Emoji() string {
	if info, ok := typeTable[t]; ok {
		return info.emoji
	}
	return "?"
}

func (t TileType) String() string {
	return string(t)
}

// Tile is a single cell's content.
type Tile struct {
	// ID is the position key "{row}-{col}". It is only meaningful within a
	// single transformation step; tiles that move get a new ID.
	ID string
	// Entity is assigned once when the tile is created and follows the
	// tile through swaps, drops and shuffles.
	Entity    string
	Type      TileType
	Row       int
	Col       int
	IsPowerUp bool
}

// TileID returns the position key for (row, col).
func TileID(row, col int) string {
	return fmt.Sprintf("%d-%d", row, col)
}

// Level is the part of a level definition the engine reads. TargetScore
// and MovesLimit are carried for callers and ignored here.
type Level struct {
	GridSize    int
	TileTypes   []TileType
	TargetScore int
	MovesLimit  int
}

// Palette returns the types new tiles are drawn from.
func Palette(level *Level) []TileType {
	if level == nil || len(level.TileTypes) == 0 {
		return DefaultPalette
	}
	return level.TileTypes
}

// ValidMove is a swap of two adjacent tiles that produces at least one match.
type ValidMove struct {
	Tile1      Tile
	Tile2      Tile
	MatchCount int
}

// TypeForGlyph returns the tile type drawn with glyph r.
func TypeForGlyph(r rune) (TileType, bool) {
	for t, info := range typeTable {
		if info.glyph == r {
			return t, true
		}
	}
	return "", false
}
