package ecomatch

import (
	"slices"

	"github.com/vovakirdan/ecomatch/internal/core"
	"github.com/vovakirdan/ecomatch/internal/match3"
)

// Phase is a step of the swap and cascade loop.
type Phase int

const (
	PhaseIdle      Phase = iota // Waiting for input
	PhaseSwapping               // Swapped tiles are shown before matches are checked
	PhaseSwapBack               // A rejected swap is shown before returning to idle
	PhaseClearing               // Matched tiles are highlighted
	PhaseFalling                // Matches removed, survivors dropped
	PhaseFilling                // Holes refilled
	PhaseShuffling              // Deadlocked board shuffled
)

// String returns the phase name used in snapshots.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSwapping:
		return "swapping"
	case PhaseSwapBack:
		return "swap_back"
	case PhaseClearing:
		return "clearing"
	case PhaseFalling:
		return "falling"
	case PhaseFilling:
		return "filling"
	case PhaseShuffling:
		return "shuffling"
	default:
		return "unknown"
	}
}

func (g *Game) enterPhase(p Phase, ticks int) {
	g.phase = p
	g.phaseTicks = max(ticks, 0)
}

// stepPhase counts down the current phase and finishes it when due.
func (g *Game) stepPhase() {
	if g.phaseTicks > 0 {
		g.phaseTicks--
	}
	g.runDue()
}

// runDue finishes phases until one still has ticks left or the board is
// idle. Phases configured with zero ticks resolve within the same step.
func (g *Game) runDue() {
	for g.phase != PhaseIdle && g.phaseTicks == 0 && !g.halted() {
		g.finishPhase()
	}
}

// settleInstantly runs the cascade loop to completion without delays.
func (g *Game) settleInstantly() {
	for g.phase != PhaseIdle && !g.halted() {
		g.finishPhase()
	}
}

func (g *Game) halted() bool {
	return g.gameOver || g.won || g.levelCleared
}

// finishPhase applies the board change that ends the current phase.
func (g *Game) finishPhase() {
	switch g.phase {
	case PhaseSwapping:
		matches := match3.FindMatches(g.grid, g.size)
		if len(matches) == 0 {
			g.grid = match3.SwapTiles(g.grid, g.swapPair[0], g.swapPair[1])
			g.emit(core.Event{Kind: core.EventSwapRejected})
			g.enterPhase(PhaseSwapBack, g.cfg.Timing.SwapTicks)
			return
		}
		g.movesLeft--
		g.movesMade++
		g.chain = 0
		g.scoring = true
		g.beginClear(matches)

	case PhaseSwapBack:
		g.phase = PhaseIdle

	case PhaseClearing:
		g.grid = match3.RemoveMatches(g.grid, g.matched)
		g.grid = match3.DropTiles(g.grid, g.size)
		g.matched = nil
		g.enterPhase(PhaseFalling, g.cfg.Timing.DropTicks)

	case PhaseFalling:
		g.grid = match3.FillEmpty(g.rng, g.grid, g.size, &g.level, g.unlocked)
		g.enterPhase(PhaseFilling, g.cfg.Timing.FillTicks)

	case PhaseFilling, PhaseShuffling:
		g.resolveBoard()

	default:
		g.phase = PhaseIdle
	}
}

// beginSwap exchanges two adjacent tiles and starts the swap phase.
func (g *Game) beginSwap(a, b match3.Tile) {
	g.swapPair = [2]match3.Tile{a, b}
	g.grid = match3.SwapTiles(g.grid, a, b)
	g.hint = nil
	g.enterPhase(PhaseSwapping, g.cfg.Timing.SwapTicks)
}

// resolveBoard clears any matches on the board, or settles it.
func (g *Game) resolveBoard() {
	if matches := match3.FindMatches(g.grid, g.size); len(matches) > 0 {
		g.beginClear(matches)
		return
	}
	g.settle()
}

// beginClear scores one cascade step and starts the clearing phase.
// Matches that exist without a player swap (a fresh or shuffled board)
// are cleared without scoring.
func (g *Game) beginClear(matches []match3.Tile) {
	g.chain++
	g.matched = matches

	if g.scoring {
		gain := len(matches) * g.cfg.Scoring.PointsPerTile * g.chain
		for _, t := range matches {
			if t.IsPowerUp {
				gain += g.cfg.Scoring.PowerUpBonus
			}
		}
		g.score += gain
		g.levelScore += gain
		g.lastGain = gain
	}

	g.emit(core.Event{Kind: core.EventTilesCleared, Count: len(matches), Chain: g.chain})
	g.enterPhase(PhaseClearing, g.cfg.Timing.ClearTicks)
}

// settle ends a cascade: checks the level target and the move budget,
// and shuffles a deadlocked board.
func (g *Game) settle() {
	g.phase = PhaseIdle
	g.chain = 0
	g.scoring = false

	if g.mode == ModeEndless {
		g.level.TileTypes = g.endlessPalette()
	}

	if g.mode == ModeCampaign && g.level.TargetScore > 0 && g.levelScore >= g.level.TargetScore {
		g.clearLevel()
		return
	}

	if g.movesLeft <= 0 {
		g.endGame()
		return
	}

	if match3.HasValidMoves(g.grid, g.size) {
		g.shuffles = 0
		return
	}
	g.beginShuffle()
}

// beginShuffle rearranges a deadlocked board. A board that stays
// deadlocked through every allowed shuffle ends the game.
func (g *Game) beginShuffle() {
	g.shuffles++
	if g.shuffles > max(g.cfg.Board.MaxShuffleAttempts, 1) {
		g.endGame()
		return
	}

	if g.cfg.Board.EnsurePlayable {
		g.grid, _ = match3.ShuffleUntilPlayable(g.rng, g.grid, g.size, g.cfg.Board.MaxShuffleAttempts)
	} else {
		g.grid = match3.ShuffleGrid(g.rng, g.grid, g.size)
	}
	g.hint = nil
	g.emit(core.Event{Kind: core.EventShuffled, Count: g.shuffles})
	g.enterPhase(PhaseShuffling, g.cfg.Timing.ShuffleTicks)
}

// clearLevel marks the campaign level as cleared, unlocks its power-up and
// records progress. The next level loads after the level clear delay.
func (g *Game) clearLevel() {
	lc := g.levelConfig()
	g.levelCleared = true
	g.levelClearTicks = 0
	g.selected = false
	g.hint = nil
	g.emit(core.Event{Kind: core.EventLevelCleared, Count: g.levelIndex + 1, Name: lc.Name})

	if typ, err := match3.ParseTileType(lc.Unlocks); err == nil && typ.IsPowerUp() {
		if !slices.Contains(g.unlocked, typ) {
			g.unlocked = append(g.unlocked, typ)
			g.unlockedNow = typ
			g.emit(core.Event{Kind: core.EventPowerUpUnlocked, Name: string(typ)})
		}
		if g.store != nil {
			//nolint:errcheck // Best-effort save, game continues regardless
			g.store.UnlockPowerUp(string(typ))
		}
	}

	if g.store != nil {
		//nolint:errcheck // Best-effort save, game continues regardless
		g.store.MarkLevelCleared(g.levelIndex+1, lc.Name, g.levelScore)
	}
}

func (g *Game) endGame() {
	g.gameOver = true
	g.selected = false
	g.hint = nil
	g.emit(core.Event{Kind: core.EventGameOver, Count: g.score})
}

func (g *Game) emit(e core.Event) {
	g.events = append(g.events, e)
}
