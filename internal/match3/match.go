package match3

import (
	"github.com/zyedidia/generic/mapset"
)

// MinRun is the shortest run of equal types that counts as a match.
const MinRun = 3

// FindMatches returns every tile that belongs to a horizontal or vertical
// run of at least MinRun equal types, in grid order. A power-up inside a
// qualifying run also pulls in its eight surrounding tiles whatever their
// type. Those blast neighbours are not checked for runs of their own.
// Missing cells break runs.
func FindMatches(g Grid, size int) []Tile {
	matched := matchSet(g, size)
	if matched.Size() == 0 {
		return nil
	}
	out := make([]Tile, 0, matched.Size())
	for _, t := range g {
		if matched.Has(t.ID) {
			out = append(out, t)
		}
	}
	return out
}

func matchSet(g Grid, size int) mapset.Set[string] {
	cells := layout(g, size)
	matched := mapset.New[string]()

	at := func(r, c int) (Tile, bool) {
		if r < 0 || r >= size || c < 0 || c >= size || cells[r][c] < 0 {
			return Tile{}, false
		}
		return g[cells[r][c]], true
	}

	mark := func(run []Tile) {
		for _, t := range run {
			matched.Put(t.ID)
		}
		for _, t := range run {
			if !t.IsPowerUp {
				continue
			}
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if n, ok := at(t.Row+dr, t.Col+dc); ok {
						matched.Put(n.ID)
					}
				}
			}
		}
	}

	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			start, ok := at(r, c)
			if !ok {
				continue
			}

			run := []Tile{start}
			for cc := c + 1; ; cc++ {
				t, ok := at(r, cc)
				if !ok || t.Type != start.Type {
					break
				}
				run = append(run, t)
			}
			if len(run) >= MinRun {
				mark(run)
			}

			run = []Tile{start}
			for rr := r + 1; ; rr++ {
				t, ok := at(rr, c)
				if !ok || t.Type != start.Type {
					break
				}
				run = append(run, t)
			}
			if len(run) >= MinRun {
				mark(run)
			}
		}
	}
	return matched
}
