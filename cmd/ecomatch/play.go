package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ecomatch/internal/config"
	"github.com/vovakirdan/ecomatch/internal/games/ecomatch"
	"github.com/vovakirdan/ecomatch/internal/platform/tui"
	"github.com/vovakirdan/ecomatch/internal/registry"
)

var (
	flagDifficulty string
	flagLevel      int
	flagEndless    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play EcoMatch",
	Long: `Start playing the campaign, or endless mode with --endless.

Controls:
  Arrows/WASD  - Move cursor
  Enter/Space  - Select tile, then an adjacent tile to swap
  B/Esc        - Clear selection (back to menu after game over)
  H/?          - Show a hint
  P            - Pause
  R            - Retry (after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - More moves, lower targets, quick hints
  normal - Levels as configured
  hard   - Fewer moves, higher targets, no automatic hints
  fixed  - No endless palette growth

Examples:
  ecomatch play
  ecomatch play --level 3
  ecomatch play --endless --difficulty hard
  ecomatch play --config ./my-levels.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Campaign level to start from (1-based)")
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Play endless mode")
}

func runPlay(_ *cobra.Command, _ []string) {
	if flagDifficulty != "" {
		if _, ok := config.ParsePreset(flagDifficulty); !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q (easy, normal, hard, fixed)\n", flagDifficulty)
			os.Exit(1)
		}
	}
	if flagEndless && flagLevel > 0 {
		fmt.Fprintln(os.Stderr, "Error: --level applies to the campaign only")
		os.Exit(1)
	}

	if _, err := config.LoadEcoMatch(flagConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gameID := "ecomatch"
	if flagEndless {
		gameID = "ecomatch_endless"
	}

	store := openStore()
	if store != nil {
		ecomatch.SetProgressStore(store)
	}
	ecomatch.SetConfigPath(flagConfig)
	ecomatch.SetDifficultyPreset(flagDifficulty)
	ecomatch.SetStartLevel(flagLevel)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	_, runErr := tui.Run(game, store, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
