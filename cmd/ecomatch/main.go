// ecomatch is an eco-themed match-3 puzzle for the terminal.
//
// Usage:
//
//	ecomatch play            - Play the campaign (or --endless)
//	ecomatch menu            - Start menu with level select and scores
//	ecomatch levels          - List campaign levels and progress
//	ecomatch board           - Print a generated board and its moves
//	ecomatch scores [mode]   - Show high scores
//	ecomatch serve           - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible boards
//	--db <path>     - Set database path (default: ~/.ecomatch/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ecomatch/internal/core"
	"github.com/vovakirdan/ecomatch/internal/storage"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string

	// Shared by play and menu
	flagConfig string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "ecomatch"})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ecomatch",
	Short: "EcoMatch - Restore the planet one match at a time",
	Long: `EcoMatch is a match-3 puzzle played in your terminal. Swap adjacent
tiles to line up three or more of a kind, chain cascades for bigger
scores and clear every biome of the campaign.

Available commands:
  play     - Play the campaign or endless mode directly
  menu     - Interactive menu with level select and scores
  levels   - Show campaign levels and your progress
  board    - Print a generated board with its valid moves
  scores   - View high scores
  serve    - Start SSH server for remote play

Examples:
  ecomatch play
  ecomatch play --endless --difficulty hard
  ecomatch menu
  ecomatch board --size 6 --hint
  ecomatch serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.ecomatch/scores.db", "Path to scores database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// runtimeConfig builds the runtime config from the terminal size and
// global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. Play continues without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, progress will not be saved", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
