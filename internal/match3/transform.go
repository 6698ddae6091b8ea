package match3

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// SwapTiles exchanges the contents of two tiles located by id. Positions
// and ids stay where they are; Type, IsPowerUp and Entity move. If either
// id is missing, or both name the same tile, the input grid is returned
// unchanged. Adjacency is not checked.
func SwapTiles(g Grid, t1, t2 Tile) Grid {
	if t1.ID == t2.ID {
		return g
	}
	i, j := g.indexOf(t1.ID), g.indexOf(t2.ID)
	if i < 0 || j < 0 {
		return g
	}
	out := g.Clone()
	out[i].Type, out[j].Type = g[j].Type, g[i].Type
	out[i].IsPowerUp, out[j].IsPowerUp = g[j].IsPowerUp, g[i].IsPowerUp
	out[i].Entity, out[j].Entity = g[j].Entity, g[i].Entity
	return out
}

// AreAdjacent reports whether two tiles are orthogonal neighbours.
func AreAdjacent(t1, t2 Tile) bool {
	dr := abs(t1.Row - t2.Row)
	dc := abs(t1.Col - t2.Col)
	return dr+dc == 1
}

// RemoveMatches drops every tile whose id appears in matches. The result
// has holes.
func RemoveMatches(g Grid, matches []Tile) Grid {
	ids := mapset.New[string]()
	for _, m := range matches {
		ids.Put(m.ID)
	}
	out := make(Grid, 0, len(g))
	for _, t := range g {
		if !ids.Has(t.ID) {
			out = append(out, t)
		}
	}
	return out
}

// DropTiles lets the tiles of each column fall to the bottom rows, keeping
// their top-to-bottom order. Moved tiles get a new Row and ID; Entity is
// kept. A non-positive size yields an empty grid.
func DropTiles(g Grid, size int) Grid {
	if size <= 0 {
		return Grid{}
	}
	columns := make([][]Tile, size)
	for _, t := range g {
		if t.Col < 0 || t.Col >= size {
			continue
		}
		columns[t.Col] = append(columns[t.Col], t)
	}
	out := make(Grid, 0, len(g))
	for c, col := range columns {
		sort.SliceStable(col, func(a, b int) bool { return col[a].Row < col[b].Row })
		top := size - len(col)
		for k, t := range col {
			t.Row = top + k
			t.Col = c
			t.ID = TileID(t.Row, c)
			out = append(out, t)
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
