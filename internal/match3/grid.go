package match3

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Grid is an unordered list of tiles over a size x size board. After every
// operation except RemoveMatches and DropTiles it covers each (row, col)
// exactly once.
type Grid []Tile

// Clone returns a copy of the grid.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	copy(out, g)
	return out
}

// At returns the tile at (row, col).
func (g Grid) At(row, col int) (Tile, bool) {
	for _, t := range g {
		if t.Row == row && t.Col == col {
			return t, true
		}
	}
	return Tile{}, false
}

// Find returns the tile with the given position id.
func (g Grid) Find(id string) (Tile, bool) {
	if i := g.indexOf(id); i >= 0 {
		return g[i], true
	}
	return Tile{}, false
}

func (g Grid) indexOf(id string) int {
	for i := range g {
		if g[i].ID == id {
			return i
		}
	}
	return -1
}

// Types returns the count of each tile type on the grid.
func (g Grid) Types() map[TileType]int {
	counts := make(map[TileType]int)
	for _, t := range g {
		counts[t.Type]++
	}
	return counts
}

// layout indexes grid positions into a size x size table of slice indices,
// -1 where no tile sits. Tiles outside the board are ignored.
func layout(g Grid, size int) [][]int {
	if size <= 0 {
		return nil
	}
	cells := make([][]int, size)
	for r := range cells {
		cells[r] = make([]int, size)
		for c := range cells[r] {
			cells[r][c] = -1
		}
	}
	for i, t := range g {
		if t.Row < 0 || t.Row >= size || t.Col < 0 || t.Col >= size {
			continue
		}
		cells[t.Row][t.Col] = i
	}
	return cells
}

// Validate checks that the grid covers every (row, col) of a size x size
// board exactly once with consistent ids.
func Validate(g Grid, size int) error {
	if size <= 0 {
		return fmt.Errorf("match3: invalid size %d", size)
	}
	if len(g) != size*size {
		return fmt.Errorf("match3: grid has %d tiles, want %d", len(g), size*size)
	}
	seen := make([][]bool, size)
	for r := range seen {
		seen[r] = make([]bool, size)
	}
	for _, t := range g {
		if t.Row < 0 || t.Row >= size || t.Col < 0 || t.Col >= size {
			return fmt.Errorf("match3: tile %q at (%d, %d) is off the board", t.ID, t.Row, t.Col)
		}
		if seen[t.Row][t.Col] {
			return fmt.Errorf("match3: duplicate tile at (%d, %d)", t.Row, t.Col)
		}
		seen[t.Row][t.Col] = true
		if t.ID != TileID(t.Row, t.Col) {
			return fmt.Errorf("match3: tile at (%d, %d) has id %q", t.Row, t.Col, t.ID)
		}
	}
	return nil
}

// FormatGrid renders the grid as rows of ASCII glyphs, '.' for holes.
func FormatGrid(g Grid, size int) string {
	cells := layout(g, size)
	var sb strings.Builder
	for r := 0; r < size; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < size; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			if i := cells[r][c]; i >= 0 {
				sb.WriteRune(g[i].Type.Glyph())
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// FormatGridEmoji renders the grid with emoji glyphs padded to a fixed
// column width so rows line up in a terminal.
func FormatGridEmoji(g Grid, size int) string {
	cells := layout(g, size)
	width := 1
	for _, t := range g {
		width = max(width, runewidth.StringWidth(t.Type.Emoji()))
	}
	var sb strings.Builder
	for r := 0; r < size; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < size; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			cell := "."
			if i := cells[r][c]; i >= 0 {
				cell = g[i].Type.Emoji()
			}
			sb.WriteString(runewidth.FillRight(cell, width))
		}
	}
	return sb.String()
}

// ParseGrid reads the FormatGrid layout back into a grid. Rows are
// separated by newlines and cells by spaces; '.' is a hole. Entities are
// set to the position id so parsed boards are reproducible.
func ParseGrid(text string) (Grid, int, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	size := len(lines)
	var g Grid
	for r, line := range lines {
		cells := strings.Fields(line)
		if len(cells) != size {
			return nil, 0, fmt.Errorf("match3: row %d has %d cells, want %d", r, len(cells), size)
		}
		for c, cell := range cells {
			if cell == "." {
				continue
			}
			glyph := []rune(cell)
			if len(glyph) != 1 {
				return nil, 0, fmt.Errorf("match3: bad cell %q at (%d, %d)", cell, r, c)
			}
			typ, ok := TypeForGlyph(glyph[0])
			if !ok {
				return nil, 0, fmt.Errorf("match3: unknown glyph %q at (%d, %d)", cell, r, c)
			}
			g = append(g, Tile{
				ID:        TileID(r, c),
				Entity:    TileID(r, c),
				Type:      typ,
				Row:       r,
				Col:       c,
				IsPowerUp: typ.IsPowerUp(),
			})
		}
	}
	return g, size, nil
}
