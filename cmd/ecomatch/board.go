package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ecomatch/internal/config"
	"github.com/vovakirdan/ecomatch/internal/match3"
)

var (
	flagBoardSize  int
	flagBoardTypes []string
	flagBoardEmoji bool
	flagBoardHint  bool
	flagBoardLoad  string
	flagBoardRaw   bool
	flagBoardSteps bool
)

// maxCascadeSteps bounds --cascade on boards that keep refilling into matches.
const maxCascadeSteps = 50

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Print a generated board and its valid moves",
	Long: `Generate a board (or load one) and print it with its valid moves.

Boards print one glyph per tile, '.' for holes. The same layout is
accepted by --load, so boards can be saved, edited and checked again.

Glyphs:
  T tree   S solar   W wind    R recycle  ~ water   E energy
  C coral  K cactus  G glacier B bamboo
  * supernova  @ tsunami  # earthquake  % meteor  & phoenix

Examples:
  ecomatch board
  ecomatch board --size 6 --types tree,water,solar,wind --hint
  ecomatch board --seed 42 --emoji
  ecomatch board --load ./deadlock.txt --hint
  ecomatch board --load - --cascade < board.txt`,
	Args: cobra.NoArgs,
	Run:  runBoard,
}

func init() {
	boardCmd.Flags().IntVar(&flagBoardSize, "size", 8, "Board size (3-10)")
	boardCmd.Flags().StringSliceVar(&flagBoardTypes, "types", nil, "Tile types to draw from (default palette if empty)")
	boardCmd.Flags().BoolVar(&flagBoardEmoji, "emoji", false, "Print tiles as emoji")
	boardCmd.Flags().BoolVar(&flagBoardHint, "hint", false, "List every valid move")
	boardCmd.Flags().StringVar(&flagBoardLoad, "load", "", "Read a board from a file ('-' for stdin) instead of generating one")
	boardCmd.Flags().BoolVar(&flagBoardRaw, "raw", false, "Skip the playable check when generating")
	boardCmd.Flags().BoolVar(&flagBoardSteps, "cascade", false, "Resolve matches on the board step by step")
}

func runBoard(_ *cobra.Command, _ []string) {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	level := &match3.Level{}
	if len(flagBoardTypes) > 0 {
		palette, err := config.ParsePalette(flagBoardTypes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		level.TileTypes = palette
	}

	var (
		grid match3.Grid
		size int
	)
	if flagBoardLoad != "" {
		var err error
		grid, size, err = loadBoard(flagBoardLoad)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Board %dx%d from %s\n", size, size, flagBoardLoad)
	} else {
		if flagBoardSize < 3 || flagBoardSize > 10 {
			fmt.Fprintf(os.Stderr, "Error: size must be between 3 and 10, got %d\n", flagBoardSize)
			os.Exit(1)
		}
		size = flagBoardSize
		if flagBoardRaw {
			grid = match3.GenerateGrid(rng, size, level, nil)
			fmt.Printf("Board %dx%d (seed %d, raw)\n", size, size, seed)
		} else {
			var attempts int
			grid, attempts = match3.GeneratePlayableGrid(rng, size, level, nil, 100)
			fmt.Printf("Board %dx%d (seed %d, %d attempts)\n", size, size, seed, attempts)
		}
	}

	if err := match3.Validate(grid, size); err != nil {
		logger.Warn("board is not well formed", "error", err)
	}

	fmt.Println()
	printGrid(grid, size)
	fmt.Println()

	if flagBoardSteps {
		grid = cascade(rng, grid, size, level)
	}

	printMoves(grid, size)
}

func loadBoard(path string) (match3.Grid, int, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("cannot read board: %w", err)
	}
	return match3.ParseGrid(string(data))
}

func printGrid(grid match3.Grid, size int) {
	if flagBoardEmoji {
		fmt.Println(match3.FormatGridEmoji(grid, size))
		return
	}
	fmt.Println(match3.FormatGrid(grid, size))
}

// cascade clears matches, drops and refills until the board settles,
// printing the board after every step.
func cascade(rng *rand.Rand, grid match3.Grid, size int, level *match3.Level) match3.Grid {
	for step := 1; step <= maxCascadeSteps; step++ {
		matches := match3.FindMatches(grid, size)
		if len(matches) == 0 {
			fmt.Printf("Settled after %d step(s)\n\n", step-1)
			return grid
		}

		grid = match3.RemoveMatches(grid, matches)
		grid = match3.DropTiles(grid, size)
		fmt.Printf("Step %d: cleared %d tile(s)\n", step, len(matches))
		printGrid(grid, size)
		fmt.Println()

		grid = match3.FillEmpty(rng, grid, size, level, nil)
		printGrid(grid, size)
		fmt.Println()
	}
	logger.Warn("board did not settle", "steps", maxCascadeSteps)
	return grid
}

func printMoves(grid match3.Grid, size int) {
	moves := match3.FindValidMoves(grid, size)
	if len(moves) == 0 {
		fmt.Println("No valid moves: the board is deadlocked.")
		return
	}

	fmt.Printf("Valid moves: %d\n", len(moves))
	if best := match3.FindBestMove(grid, size); best != nil {
		fmt.Printf("Best: %s\n", formatMove(*best))
	}

	if !flagBoardHint {
		return
	}
	fmt.Println()
	for _, m := range moves {
		fmt.Printf("  %s\n", formatMove(m))
	}
}

func formatMove(m match3.ValidMove) string {
	return fmt.Sprintf("(%d,%d) %s <-> (%d,%d) %s  matches %d",
		m.Tile1.Row, m.Tile1.Col, m.Tile1.Type,
		m.Tile2.Row, m.Tile2.Col, m.Tile2.Type,
		m.MatchCount)
}
