package match3

import "math/rand"

// FindValidMoves tries every tile against its right and lower neighbour, in
// row-major order, and returns each swap that leaves at least one match.
// The search is brute force and costs O(size^4).
func FindValidMoves(g Grid, size int) []ValidMove {
	var moves []ValidMove
	scanMoves(g, size, func(m ValidMove) bool {
		moves = append(moves, m)
		return true
	})
	return moves
}

// HasValidMoves reports whether any single swap produces a match. It stops
// at the first one found.
func HasValidMoves(g Grid, size int) bool {
	found := false
	scanMoves(g, size, func(ValidMove) bool {
		found = true
		return false
	})
	return found
}

// FindBestMove returns the valid move that clears the most tiles, the
// earliest one in scan order on ties, or nil when the board is deadlocked.
func FindBestMove(g Grid, size int) *ValidMove {
	var best *ValidMove
	scanMoves(g, size, func(m ValidMove) bool {
		if best == nil || m.MatchCount > best.MatchCount {
			best = &m
		}
		return true
	})
	return best
}

// scanMoves calls yield for each valid move until yield returns false.
func scanMoves(g Grid, size int, yield func(ValidMove) bool) {
	cells := layout(g, size)
	try := func(i, j int) bool {
		swapped := SwapTiles(g, g[i], g[j])
		n := matchSet(swapped, size).Size()
		if n == 0 {
			return true
		}
		return yield(ValidMove{Tile1: g[i], Tile2: g[j], MatchCount: n})
	}
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			i := cells[r][c]
			if i < 0 {
				continue
			}
			if c+1 < size && cells[r][c+1] >= 0 {
				if !try(i, cells[r][c+1]) {
					return
				}
			}
			if r+1 < size && cells[r+1][c] >= 0 {
				if !try(i, cells[r+1][c]) {
					return
				}
			}
		}
	}
}

// ShuffleGrid randomly permutes tile contents across the fixed positions
// with a Fisher-Yates shuffle. The result may still be deadlocked or hold
// ready-made matches.
func ShuffleGrid(rng *rand.Rand, g Grid, size int) Grid {
	out := g.Clone()
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i].Type, out[j].Type = out[j].Type, out[i].Type
		out[i].IsPowerUp, out[j].IsPowerUp = out[j].IsPowerUp, out[i].IsPowerUp
		out[i].Entity, out[j].Entity = out[j].Entity, out[i].Entity
	}
	return out
}

// ShuffleUntilPlayable shuffles until the board is playable. It returns the
// grid and the number of shuffles made; after maxAttempts the last shuffle
// is returned as is.
func ShuffleUntilPlayable(rng *rand.Rand, g Grid, size int, maxAttempts int) (Grid, int) {
	maxAttempts = max(maxAttempts, 1)
	out := g
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		out = ShuffleGrid(rng, g, size)
		if IsPlayable(out, size) {
			return out, attempt
		}
	}
	return out, maxAttempts
}

// IsSettled reports whether the grid holds no match.
func IsSettled(g Grid, size int) bool {
	return matchSet(g, size).Size() == 0
}

// IsPlayable reports whether the grid is settled and has a valid move.
func IsPlayable(g Grid, size int) bool {
	return IsSettled(g, size) && HasValidMoves(g, size)
}
