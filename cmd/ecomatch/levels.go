package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ecomatch/internal/config"
	"github.com/vovakirdan/ecomatch/internal/match3"
	"github.com/vovakirdan/ecomatch/internal/storage"
)

var (
	flagLevelsConfig string
	flagLevelsReset  bool
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show campaign levels and progress",
	Long: `List the campaign levels from the active configuration together
with your best score per cleared level and the unlocked power-ups.

Examples:
  ecomatch levels
  ecomatch levels --config ./my-levels.yaml
  ecomatch levels --reset`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagLevelsConfig, "config", "", "Path to custom config YAML")
	levelsCmd.Flags().BoolVar(&flagLevelsReset, "reset", false, "Forget cleared levels and unlocked power-ups")
}

func runLevels(_ *cobra.Command, _ []string) {
	cfg, err := config.LoadEcoMatch(flagLevelsConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if flagLevelsReset {
		if store == nil {
			fmt.Fprintln(os.Stderr, "Error: no database to reset")
			os.Exit(1)
		}
		if err := store.ResetProgress(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Campaign progress reset.")
		return
	}

	best := map[int]int{}
	highest := 0
	var unlocked []string
	if store != nil {
		best, highest, unlocked = loadProgress(store)
	}

	nameWidth := len("Name")
	for _, l := range cfg.Levels {
		nameWidth = max(nameWidth, runewidth.StringWidth(l.Name))
	}

	fmt.Println("Campaign levels:")
	fmt.Println()
	fmt.Printf("  %-3s  %s  %-7s  %-4s  %-6s  %-5s  %s\n",
		"#", runewidth.FillRight("Name", nameWidth), "Biome", "Size", "Target", "Moves", "Status")

	for i, l := range cfg.Levels {
		n := i + 1
		status := "locked"
		switch score, ok := best[n]; {
		case ok:
			status = fmt.Sprintf("cleared (best %d)", score)
		case store == nil || n <= highest+1:
			status = "open"
		}
		if l.Unlocks != "" {
			status += "  unlocks " + unlockLabel(l.Unlocks)
		}
		fmt.Printf("  %-3d  %s  %-7s  %-4d  %-6d  %-5d  %s\n",
			n, runewidth.FillRight(l.Name, nameWidth), l.Biome, l.GridSize, l.TargetScore, l.MovesLimit, status)
	}

	fmt.Println()
	if len(unlocked) == 0 {
		fmt.Println("Power-ups: none unlocked yet")
		return
	}
	labels := make([]string, len(unlocked))
	for i, name := range unlocked {
		labels[i] = unlockLabel(name)
	}
	fmt.Printf("Power-ups: %s\n", strings.Join(labels, ", "))
}

// loadProgress reads best scores per level, the highest cleared level and
// unlocked power-ups. Read errors are logged and treated as no progress.
func loadProgress(store *storage.Store) (map[int]int, int, []string) {
	best := map[int]int{}
	records, err := store.LevelProgress()
	if err != nil {
		logger.Warn("could not read level progress", "error", err)
	}
	for _, r := range records {
		best[r.Level] = r.BestScore
	}

	highest, err := store.HighestClearedLevel()
	if err != nil {
		logger.Warn("could not read highest level", "error", err)
	}

	unlocked, err := store.UnlockedPowerUps()
	if err != nil {
		logger.Warn("could not read power-ups", "error", err)
	}
	return best, highest, unlocked
}

func unlockLabel(name string) string {
	typ, err := match3.ParseTileType(name)
	if err != nil {
		return name
	}
	return typ.Emoji() + " " + string(typ)
}
