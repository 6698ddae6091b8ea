package match3

import (
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseGrid builds a grid from rows of glyphs, one glyph per cell.
// A '.' leaves a hole.
func parseGrid(t *testing.T, rows ...string) Grid {
	t.Helper()
	byGlyph := make(map[rune]TileType)
	for typ, info := range typeTable {
		byGlyph[info.glyph] = typ
	}
	var g Grid
	for r, row := range rows {
		for c, ch := range []rune(row) {
			if ch == '.' {
				continue
			}
			typ, ok := byGlyph[ch]
			require.Truef(t, ok, "unknown glyph %q", ch)
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
	return g
}

func ids(tiles []Tile) []string {
	out := make([]string, 0, len(tiles))
	for _, t := range tiles {
		out = append(out, t.ID)
	}
	sort.Strings(out)
	return out
}

func mustFind(t *testing.T, g Grid, id string) Tile {
	t.Helper()
	tile, ok := g.Find(id)
	require.Truef(t, ok, "tile %s not found", id)
	return tile
}

func TestGenerateGridCoverage(t *testing.T) {
	for size := 3; size <= 10; size++ {
		rng := rand.New(rand.NewSource(int64(size)))
		g := GenerateGrid(rng, size, nil, []TileType{Supernova, Phoenix})
		require.NoError(t, Validate(g, size), "size %d", size)
	}
}

func TestGenerateGridDeterministic(t *testing.T) {
	a := GenerateGrid(rand.New(rand.NewSource(42)), 6, nil, nil)
	b := GenerateGrid(rand.New(rand.NewSource(42)), 6, nil, nil)
	assert.Equal(t, a, b)
}

func TestGenerateGridUsesLevelPalette(t *testing.T) {
	level := &Level{GridSize: 5, TileTypes: []TileType{Coral, Water, Glacier}}
	g := GenerateGrid(rand.New(rand.NewSource(7)), 5, level, nil)
	for _, tile := range g {
		assert.Contains(t, level.TileTypes, tile.Type)
		assert.False(t, tile.IsPowerUp)
	}
}

func TestGenerateGridPowerUps(t *testing.T) {
	unlocked := []TileType{Supernova}
	powerUps := 0
	for seed := int64(1); seed <= 10; seed++ {
		g := GenerateGrid(rand.New(rand.NewSource(seed)), 10, nil, unlocked)
		for _, tile := range g {
			if tile.IsPowerUp {
				powerUps++
				assert.Equal(t, Supernova, tile.Type)
			} else {
				assert.Contains(t, DefaultPalette, tile.Type)
			}
		}
	}
	assert.Positive(t, powerUps, "expected some power-ups over 1000 tiles")

	g := GenerateGrid(rand.New(rand.NewSource(1)), 10, nil, nil)
	for _, tile := range g {
		assert.False(t, tile.IsPowerUp, "no power-ups without unlocks")
	}
}

func TestGenerateGridEntitiesUnique(t *testing.T) {
	g := GenerateGrid(rand.New(rand.NewSource(3)), 8, nil, nil)
	seen := make(map[string]bool)
	for _, tile := range g {
		require.NotEmpty(t, tile.Entity)
		require.False(t, seen[tile.Entity], "duplicate entity %s", tile.Entity)
		seen[tile.Entity] = true
	}
}

func TestFindMatches(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want []string
	}{
		{
			name: "exact horizontal run of three",
			rows: []string{"TTTS", "SWRE", "WRSW", "RSWR"},
			want: []string{"0-0", "0-1", "0-2"},
		},
		{
			name: "run of two is not a match",
			rows: []string{"TTS", "SWR", "WRS"},
			want: nil,
		},
		{
			name: "run of four is one match",
			rows: []string{"TTTT", "SWRE", "WRSW", "RSWR"},
			want: []string{"0-0", "0-1", "0-2", "0-3"},
		},
		{
			name: "vertical run",
			rows: []string{"TSW", "TWR", "TRS"},
			want: []string{"0-0", "1-0", "2-0"},
		},
		{
			name: "crossing runs share a tile",
			rows: []string{"TSW", "TTT", "TRS"},
			want: []string{"0-0", "1-0", "1-1", "1-2", "2-0"},
		},
		{
			name: "power-up run blasts its neighbours",
			rows: []string{"TSWR", "***E", "WRSW", "RSWR"},
			want: []string{
				"0-0", "0-1", "0-2", "0-3",
				"1-0", "1-1", "1-2", "1-3",
				"2-0", "2-1", "2-2", "2-3",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := parseGrid(t, tc.rows...)
			got := FindMatches(g, len(tc.rows))
			if tc.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestFindMatchesKeepsGridOrder(t *testing.T) {
	g := parseGrid(t, "TTTS", "SWRE", "WRSW", "RSWR")
	// Reverse the backing slice; the result must follow it.
	for i, j := 0, len(g)-1; i < j; i, j = i+1, j-1 {
		g[i], g[j] = g[j], g[i]
	}
	got := FindMatches(g, 4)
	require.Len(t, got, 3)
	assert.Equal(t, "0-2", got[0].ID)
	assert.Equal(t, "0-0", got[2].ID)
}

func TestFindMatchesHolesBreakRuns(t *testing.T) {
	g := parseGrid(t, "T.TT", "SWRE", "WRSW", "RSWR")
	assert.Empty(t, FindMatches(g, 4))
}

func TestAreAdjacent(t *testing.T) {
	at := func(r, c int) Tile { return Tile{ID: TileID(r, c), Row: r, Col: c} }
	tests := []struct {
		name string
		a, b Tile
		want bool
	}{
		{"right", at(1, 1), at(1, 2), true},
		{"left", at(1, 1), at(1, 0), true},
		{"above", at(1, 1), at(0, 1), true},
		{"below", at(1, 1), at(2, 1), true},
		{"diagonal", at(1, 1), at(2, 2), false},
		{"anti-diagonal", at(1, 1), at(0, 2), false},
		{"same cell", at(1, 1), at(1, 1), false},
		{"two apart", at(1, 1), at(1, 3), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AreAdjacent(tc.a, tc.b))
			assert.Equal(t, tc.want, AreAdjacent(tc.b, tc.a))
		})
	}
}

func TestAreAdjacentSymmetricOverGrid(t *testing.T) {
	g := GenerateGrid(rand.New(rand.NewSource(5)), 4, nil, nil)
	for _, a := range g {
		for _, b := range g {
			require.Equal(t, AreAdjacent(a, b), AreAdjacent(b, a))
			if a.Row != b.Row && a.Col != b.Col {
				require.False(t, AreAdjacent(a, b), "diagonal %s %s", a.ID, b.ID)
			}
		}
	}
}

func TestSwapTiles(t *testing.T) {
	g := parseGrid(t, "TTS", "WRE", "~CK")
	a, b := mustFind(t, g, "0-2"), mustFind(t, g, "1-2")

	out := SwapTiles(g, a, b)
	require.NoError(t, Validate(out, 3))

	na, nb := mustFind(t, out, "0-2"), mustFind(t, out, "1-2")
	assert.Equal(t, Energy, na.Type)
	assert.Equal(t, Solar, nb.Type)
	assert.Equal(t, b.Entity, na.Entity, "entity travels with the content")
	assert.Equal(t, a.Entity, nb.Entity)
	assert.Equal(t, Solar, mustFind(t, g, "0-2").Type, "input grid is not modified")
}

func TestSwapTilesNoOps(t *testing.T) {
	g := parseGrid(t, "TTS", "WRE", "~CK")
	a := mustFind(t, g, "0-0")

	assert.Equal(t, g, SwapTiles(g, a, a), "self swap leaves the grid unchanged")

	ghost := Tile{ID: "9-9", Row: 9, Col: 9, Type: Tree}
	assert.Equal(t, g, SwapTiles(g, a, ghost))
	assert.Equal(t, g, SwapTiles(g, ghost, a))
}

func TestSwapTilesPowerUpFlagMoves(t *testing.T) {
	g := parseGrid(t, "T*S", "WRE", "~CK")
	out := SwapTiles(g, mustFind(t, g, "0-0"), mustFind(t, g, "0-1"))
	assert.True(t, mustFind(t, out, "0-0").IsPowerUp)
	assert.False(t, mustFind(t, out, "0-1").IsPowerUp)
}

func TestRemoveMatches(t *testing.T) {
	g := parseGrid(t, "TTTS", "SWRE", "WRSW", "RSWR")
	matches := FindMatches(g, 4)
	out := RemoveMatches(g, matches)
	assert.Len(t, out, 13)
	for _, m := range matches {
		_, ok := out.Find(m.ID)
		assert.False(t, ok, "%s should be removed", m.ID)
	}
}

func TestDropTilesStable(t *testing.T) {
	g := parseGrid(t,
		"TSWK",
		"WREC",
		"SCKT",
		"RE~S",
	)
	// Remove rows 1 and 3 from column 0, leaving T (row 0) and S (row 2).
	g = RemoveMatches(g, []Tile{{ID: "1-0"}, {ID: "3-0"}})
	top, mid := mustFind(t, g, "0-0"), mustFind(t, g, "2-0")

	out := DropTiles(g, 4)

	var col []Tile
	for _, tile := range out {
		if tile.Col == 0 {
			col = append(col, tile)
		}
	}
	sort.Slice(col, func(i, j int) bool { return col[i].Row < col[j].Row })
	require.Len(t, col, 2)
	assert.Equal(t, 2, col[0].Row)
	assert.Equal(t, "2-0", col[0].ID)
	assert.Equal(t, top.Entity, col[0].Entity)
	assert.Equal(t, 3, col[1].Row)
	assert.Equal(t, "3-0", col[1].ID)
	assert.Equal(t, mid.Entity, col[1].Entity)

	// Untouched columns keep their tiles in place.
	assert.Equal(t, Solar, mustFind(t, out, "0-1").Type)
	assert.Equal(t, Water, mustFind(t, out, "3-2").Type)
}

func TestFillEmptyCompletes(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	g := parseGrid(t, "TTTS", "SWRE", "WRSW", "RSWR")
	g = RemoveMatches(g, FindMatches(g, 4))
	g = DropTiles(g, 4)
	g = FillEmpty(rng, g, 4, nil, nil)

	require.NoError(t, Validate(g, 4))
	perCol := make(map[int]int)
	for _, tile := range g {
		perCol[tile.Col]++
	}
	for c := 0; c < 4; c++ {
		assert.Equal(t, 4, perCol[c], "column %d", c)
	}
	// Row 0 of the three cleared columns holds new tiles.
	for c := 0; c < 3; c++ {
		tile := mustFind(t, g, TileID(0, c))
		assert.Len(t, tile.Entity, 36, "column %d should hold a fresh tile", c)
	}
}

func TestNonPositiveSizeIsNoOp(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	g := parseGrid(t, "TS", "WR")

	for _, size := range []int{0, -1, -5} {
		assert.NotPanics(t, func() {
			assert.Empty(t, DropTiles(g, size), "size %d", size)
			assert.Equal(t, g, FillEmpty(rng, g, size, nil, nil), "size %d", size)
			assert.Empty(t, FindMatches(g, size), "size %d", size)
			assert.Empty(t, FindValidMoves(g, size), "size %d", size)
			assert.Empty(t, FormatGrid(g, size), "size %d", size)
			assert.Empty(t, GenerateGrid(rng, size, nil, nil), "size %d", size)
		})
	}
}

func TestGridAt(t *testing.T) {
	g := parseGrid(t, "TS", "W.")

	tile, ok := g.At(1, 0)
	require.True(t, ok)
	assert.Equal(t, Wind, tile.Type)
	assert.Equal(t, "1-0", tile.ID)

	_, ok = g.At(1, 1)
	assert.False(t, ok, "hole")
	_, ok = g.At(-1, 0)
	assert.False(t, ok, "off the board")
}

func TestCascadeCycleKeepsCoverage(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	unlocked := []TileType{Meteor}
	const size = 7
	g := GenerateGrid(rng, size, nil, unlocked)
	for step := 0; step < 20; step++ {
		matches := FindMatches(g, size)
		if len(matches) == 0 {
			g = ShuffleGrid(rng, g, size)
			require.NoError(t, Validate(g, size))
			continue
		}
		g = RemoveMatches(g, matches)
		g = DropTiles(g, size)
		g = FillEmpty(rng, g, size, nil, unlocked)
		require.NoError(t, Validate(g, size), "step %d", step)
	}
}

func TestDeadlock(t *testing.T) {
	// Each type only sits on one parity class, so no single swap can line
	// up three of a kind.
	g := parseGrid(t, "TSTS", "WRWR", "TSTS", "WRWR")
	assert.Empty(t, FindMatches(g, 4))
	assert.False(t, HasValidMoves(g, 4))
	assert.Nil(t, FindBestMove(g, 4))
	assert.Empty(t, FindValidMoves(g, 4))
	assert.False(t, IsPlayable(g, 4))
}

func TestEndToEndSmallBoard(t *testing.T) {
	// A A B / C D E / F G H: swapping B and E leaves row 0 as A A E.
	g := parseGrid(t, "TTS", "WR~", "ECK")
	out := SwapTiles(g, mustFind(t, g, "0-2"), mustFind(t, g, "1-2"))
	assert.Equal(t, "T T ~", strings.Split(FormatGrid(out, 3), "\n")[0])
	assert.Empty(t, FindMatches(out, 3))

	// With an A below B, the same swap completes row 0.
	g = parseGrid(t, "TTS", "WRT", "ECK")
	out = SwapTiles(g, mustFind(t, g, "0-2"), mustFind(t, g, "1-2"))
	assert.Equal(t, []string{"0-0", "0-1", "0-2"}, ids(FindMatches(out, 3)))

	best := FindBestMove(g, 3)
	require.NotNil(t, best)
	assert.Equal(t, "0-2", best.Tile1.ID)
	assert.Equal(t, "1-2", best.Tile2.ID)
	assert.Equal(t, 3, best.MatchCount)
}

func TestFindValidMovesOrderAndBest(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g := GenerateGrid(rng, 6, nil, nil)

		moves := FindValidMoves(g, 6)
		assert.Equal(t, len(moves) > 0, HasValidMoves(g, 6), "seed %d", seed)

		for i := 1; i < len(moves); i++ {
			prev, cur := moves[i-1].Tile1, moves[i].Tile1
			require.True(t, prev.Row < cur.Row || (prev.Row == cur.Row && prev.Col <= cur.Col),
				"seed %d: moves out of scan order", seed)
		}
		for _, m := range moves {
			require.True(t, AreAdjacent(m.Tile1, m.Tile2))
			require.Positive(t, m.MatchCount)
		}

		best := FindBestMove(g, 6)
		if len(moves) == 0 {
			assert.Nil(t, best)
			continue
		}
		require.NotNil(t, best)
		top := 0
		for _, m := range moves {
			top = max(top, m.MatchCount)
		}
		assert.Equal(t, top, best.MatchCount)
		for _, m := range moves {
			if m.MatchCount == top {
				assert.Equal(t, m, *best, "ties go to the first move found")
				break
			}
		}
	}
}

func TestShuffleGridPreservesMultiset(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	g := GenerateGrid(rng, 8, nil, []TileType{Tsunami})
	out := ShuffleGrid(rng, g, 8)

	require.NoError(t, Validate(out, 8))
	assert.Equal(t, g.Types(), out.Types())

	entities := func(g Grid) []string {
		var out []string
		for _, tile := range g {
			out = append(out, tile.Entity)
		}
		sort.Strings(out)
		return out
	}
	assert.Equal(t, entities(g), entities(out))
	for _, tile := range out {
		assert.Equal(t, tile.Type.IsPowerUp(), tile.IsPowerUp)
	}
}

func TestGeneratePlayableGrid(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g, attempts := GeneratePlayableGrid(rng, 6, nil, nil, 200)
		require.NoError(t, Validate(g, 6))
		assert.True(t, IsPlayable(g, 6), "seed %d", seed)
		assert.GreaterOrEqual(t, attempts, 1)
	}
}

func TestShuffleUntilPlayable(t *testing.T) {
	g := parseGrid(t, "TSTS", "WRWR", "TSTS", "WRWR")
	rng := rand.New(rand.NewSource(8))
	out, attempts := ShuffleUntilPlayable(rng, g, 4, 500)
	require.NoError(t, Validate(out, 4))
	assert.True(t, IsPlayable(out, 4))
	assert.LessOrEqual(t, attempts, 500)
	assert.Equal(t, g.Types(), out.Types())
}

func TestValidate(t *testing.T) {
	g := parseGrid(t, "TSW", "WRE", "SCK")
	require.NoError(t, Validate(g, 3))

	missing := RemoveMatches(g, []Tile{{ID: "1-1"}})
	assert.Error(t, Validate(missing, 3))

	dup := g.Clone()
	dup[0].Row, dup[0].Col = 1, 1
	assert.Error(t, Validate(dup, 3))

	badID := g.Clone()
	badID[0].ID = "x"
	assert.Error(t, Validate(badID, 3))

	assert.Error(t, Validate(g, 0))
}

func TestFormatGrid(t *testing.T) {
	g := parseGrid(t, "TS", "~.")
	assert.Equal(t, "T S\n~ .", FormatGrid(g, 2))

	emoji := FormatGridEmoji(g, 2)
	lines := strings.Split(emoji, "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], Tree.Emoji()))
	assert.Contains(t, lines[1], ".")
}

func TestParseGrid(t *testing.T) {
	g, size, err := ParseGrid("T S W\n~ . E\n* R S\n")
	require.NoError(t, err)
	assert.Equal(t, 3, size)
	assert.Len(t, g, 8)
	assert.Equal(t, "T S W\n~ . E\n* R S", FormatGrid(g, size))

	star := mustFind(t, g, "2-0")
	assert.Equal(t, Supernova, star.Type)
	assert.True(t, star.IsPowerUp)

	_, _, err = ParseGrid("T S\nW")
	assert.Error(t, err)
	_, _, err = ParseGrid("T X\nW S")
	assert.Error(t, err)
}

func TestParseTileType(t *testing.T) {
	got, err := ParseTileType("  Solar ")
	require.NoError(t, err)
	assert.Equal(t, Solar, got)

	got, err = ParseTileType("SUPERNOVA")
	require.NoError(t, err)
	assert.True(t, got.IsPowerUp())

	_, err = ParseTileType("plastic")
	assert.Error(t, err)

	for _, typ := range NormalTypes {
		assert.False(t, typ.IsPowerUp(), typ)
	}
	for _, typ := range PowerUpTypes {
		assert.True(t, typ.IsPowerUp(), typ)
	}
}

func TestPalette(t *testing.T) {
	assert.Equal(t, DefaultPalette, Palette(nil))
	assert.Equal(t, DefaultPalette, Palette(&Level{GridSize: 5}))
	custom := []TileType{Coral, Bamboo}
	assert.Equal(t, custom, Palette(&Level{TileTypes: custom}))
}
