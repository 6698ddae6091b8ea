package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ecomatch/internal/config"
	"github.com/vovakirdan/ecomatch/internal/games/ecomatch"
	"github.com/vovakirdan/ecomatch/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start EcoMatch with the interactive menu",
	Long: `Start EcoMatch in interactive menu mode.

Pick the campaign, endless mode or a cleared level, choose a difficulty
and browse high scores. After a game ends, press Esc to return here.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Change difficulty
  Enter/Space  - Select
  Q            - Quit

Examples:
  ecomatch menu
  ecomatch menu --fps 30
  ecomatch menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
}

func runMenu(_ *cobra.Command, _ []string) {
	if _, err := config.LoadEcoMatch(flagConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	ecomatch.SetConfigPath(flagConfig)

	store := openStore()
	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			logger.Error("menu failed", "error", err)
			break
		}

		// Pick up size changes made while in the menu
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				logger.Error("scoreboard failed", "error", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		if menuResult.GameID == "" {
			break
		}

		game := tui.NewGame(menuResult.GameID, menuResult.Difficulty, menuResult.Level, store)

		// Fresh board for each game unless a seed was given
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		backToMenu, runErr := tui.Run(game, store, cfg)
		if runErr != nil {
			logger.Error("game failed", "game", menuResult.GameID, "error", runErr)
			continue
		}
		if !backToMenu {
			break
		}
	}

	if store != nil {
		store.Close()
	}
}
