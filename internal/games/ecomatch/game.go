// Package ecomatch implements EcoMatch, an eco-themed match-3 puzzle with a
// level campaign and an endless score attack mode. The board rules live in
// the match3 engine; this package drives the cascade loop on a fixed tick,
// keeps score and moves, and renders to a core.Screen.
package ecomatch

import (
	"math/rand"

	"github.com/vovakirdan/ecomatch/internal/config"
	"github.com/vovakirdan/ecomatch/internal/core"
	"github.com/vovakirdan/ecomatch/internal/match3"
	"github.com/vovakirdan/ecomatch/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// Game implements the EcoMatch puzzle.
type Game struct {
	mode Mode
	rng  *rand.Rand
	tick uint64

	// Configuration
	cfg        config.EcoMatchConfig
	cfgFixed   bool // cfg was injected and is not reloaded on Reset
	store      ProgressStore
	storeFixed bool
	startLevel int // Per-instance start level, overrides the package setting
	difficulty *config.DifficultyManager

	// Board
	grid     match3.Grid
	size     int
	level    match3.Level
	basePal  []match3.TileType // Endless palette before difficulty scaling
	unlocked []match3.TileType

	// Progress
	levelIndex int
	levelScore int // Score within the current level
	score      int // Total score across levels
	movesLeft  int
	movesMade  int

	// Cursor and selection
	cursorRow, cursorCol int
	selected             bool
	selRow, selCol       int

	// Cascade state
	phase      Phase
	phaseTicks int
	swapPair   [2]match3.Tile
	matched    []match3.Tile
	chain      int
	scoring    bool // The running cascade was started by a player swap
	shuffles   int  // Consecutive shuffles without a valid move
	lastGain   int

	// Hints
	hint      *match3.ValidMove
	idleTicks int

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	gameOver        bool
	levelCleared    bool
	won             bool
	paused          bool
	tooSmall        bool
	levelClearTicks int
	unlockedNow     match3.TileType // Power-up unlocked by the last cleared level

	events []core.Event
}

// New creates a new campaign mode game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new endless mode game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// NewWithConfig creates a game that uses cfg instead of loading one on
// Reset, and store instead of the package-level store.
func NewWithConfig(mode Mode, cfg config.EcoMatchConfig, store ProgressStore) *Game {
	return &Game{
		mode:       mode,
		cfg:        cfg,
		cfgFixed:   true,
		store:      store,
		storeFixed: true,
	}
}

func init() {
	registry.Register("ecomatch", func() registry.Game {
		return New()
	})
	registry.Register("ecomatch_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "ecomatch_endless"
	}
	return "ecomatch"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "EcoMatch (Endless)"
	}
	return "EcoMatch"
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	if g.mode == ModeEndless {
		return "Score attack with a move budget and a growing palette"
	}
	return "Restore each biome before your moves run out"
}

// SetStartLevel sets the 1-based level the next Reset of this game starts
// from. Unlike the package-level SetStartLevel it does not affect other games.
func (g *Game) SetStartLevel(level int) {
	g.startLevel = level
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.cfgFixed {
		g.cfg = LoadConfig()
	}
	if !g.storeFixed {
		g.store = currentStore()
	}
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.score = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.gameOver = false
	g.levelCleared = false
	g.won = false
	g.paused = false
	g.levelClearTicks = 0
	g.unlockedNow = ""
	g.events = nil
	g.unlocked = loadUnlocked(g.store)

	// Apply selected start level (campaign only)
	start := takeStartLevel()
	if g.startLevel > 0 {
		start = g.startLevel
		g.startLevel = 0
	}
	if g.mode == ModeCampaign && start > 0 && start <= len(g.cfg.Levels) {
		g.levelIndex = start - 1
	} else {
		g.levelIndex = 0
	}

	g.loadLevel()
}

// loadLevel sets up the board for the current level or endless run.
func (g *Game) loadLevel() {
	if g.mode == ModeEndless {
		g.size = g.cfg.EndlessSize()
		palette, err := config.ParsePalette(g.cfg.Endless.TileTypes)
		if err != nil {
			palette = match3.DefaultPalette
		}
		g.basePal = palette
		g.level = match3.Level{
			GridSize:   g.size,
			TileTypes:  g.endlessPalette(),
			MovesLimit: g.cfg.Endless.MovesLimit,
		}
	} else {
		lc := g.levelConfig()
		level, err := g.cfg.Level(lc)
		if err != nil {
			level = match3.Level{GridSize: g.cfg.LevelSize(lc), TargetScore: lc.TargetScore, MovesLimit: lc.MovesLimit}
		}
		g.level = level
		g.size = level.GridSize
	}

	g.levelScore = 0
	g.movesLeft = g.level.MovesLimit
	g.movesMade = 0
	g.cursorRow, g.cursorCol = g.size/2, g.size/2
	g.selected = false
	g.hint = nil
	g.idleTicks = 0
	g.chain = 0
	g.scoring = false
	g.shuffles = 0
	g.lastGain = 0
	g.matched = nil

	if g.cfg.Board.EnsurePlayable {
		g.grid, _ = match3.GeneratePlayableGrid(g.rng, g.size, &g.level, g.unlocked, g.cfg.Board.MaxGenerateAttempts)
	} else {
		g.grid = match3.GenerateGrid(g.rng, g.size, &g.level, g.unlocked)
	}

	g.checkScreenSize()

	// A raw board may start with matches or without moves.
	g.phase = PhaseIdle
	g.resolveBoard()
	g.settleInstantly()
}

// levelConfig returns the current campaign level definition.
func (g *Game) levelConfig() config.LevelConfig {
	if len(g.cfg.Levels) == 0 {
		return config.LevelConfig{}
	}
	idx := core.Clamp(g.levelIndex, 0, len(g.cfg.Levels)-1)
	return g.cfg.Levels[idx]
}

// endlessPalette returns the base palette plus the extra types the
// difficulty manager currently allows.
func (g *Game) endlessPalette() []match3.TileType {
	palette := append([]match3.TileType(nil), g.basePal...)
	extra := g.difficulty.ExtraTileTypes(g.score, g.movesMade)
	if extra <= 0 {
		return palette
	}
	inBase := make(map[match3.TileType]bool, len(palette))
	for _, t := range palette {
		inBase[t] = true
	}
	for _, t := range match3.NormalTypes {
		if extra == 0 {
			break
		}
		if !inBase[t] {
			palette = append(palette, t)
			extra--
		}
	}
	return palette
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	minW := max(boardWidth(g.size), 44)
	minH := boardHeight(g.size) + hudHeight + footerHeight
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Resize updates the screen dimensions without restarting the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.events = nil

	if g.tooSmall {
		return g.result()
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	// Restart is handled by the platform
	if in.Has(core.ActionRestart) && (g.gameOver || g.won) {
		return g.result()
	}

	if g.levelCleared {
		g.levelClearTicks++
		if g.levelClearTicks >= g.cfg.Timing.LevelClearTicks {
			g.advanceLevel()
		}
		return g.result()
	}

	if g.gameOver || g.won {
		return g.result()
	}

	if g.phase != PhaseIdle {
		g.stepPhase()
		return g.result()
	}

	if in.Empty() {
		g.idle()
	} else {
		g.handleInput(in)
		g.runDue()
	}
	return g.result()
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.events}
}

// handleInput processes cursor movement, selection and hints.
func (g *Game) handleInput(in core.InputFrame) {
	g.idleTicks = 0

	last := g.size - 1
	if in.Has(core.ActionUp) {
		g.cursorRow = core.Clamp(g.cursorRow-1, 0, last)
	}
	if in.Has(core.ActionDown) {
		g.cursorRow = core.Clamp(g.cursorRow+1, 0, last)
	}
	if in.Has(core.ActionLeft) {
		g.cursorCol = core.Clamp(g.cursorCol-1, 0, last)
	}
	if in.Has(core.ActionRight) {
		g.cursorCol = core.Clamp(g.cursorCol+1, 0, last)
	}

	if in.Has(core.ActionHint) {
		g.hint = match3.FindBestMove(g.grid, g.size)
	}

	if in.Has(core.ActionBack) {
		g.selected = false
	}

	if in.Has(core.ActionConfirm) {
		g.confirm()
	}
}

// confirm selects the tile under the cursor, or swaps it with the
// selection when the two are neighbours.
func (g *Game) confirm() {
	if !g.selected {
		g.selected = true
		g.selRow, g.selCol = g.cursorRow, g.cursorCol
		return
	}

	if g.selRow == g.cursorRow && g.selCol == g.cursorCol {
		g.selected = false
		return
	}

	a, okA := g.grid.At(g.selRow, g.selCol)
	b, okB := g.grid.At(g.cursorRow, g.cursorCol)
	if !okA || !okB || !match3.AreAdjacent(a, b) {
		g.selRow, g.selCol = g.cursorRow, g.cursorCol
		return
	}

	g.selected = false
	g.beginSwap(a, b)
}

// idle counts ticks without input and shows a hint after the configured delay.
func (g *Game) idle() {
	g.idleTicks++
	delay := g.cfg.Timing.HintDelayTicks
	if delay > 0 && g.idleTicks >= delay && g.hint == nil {
		g.hint = match3.FindBestMove(g.grid, g.size)
	}
}

// advanceLevel moves to the next campaign level.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.levelClearTicks = 0
	g.unlockedNow = ""

	if g.levelIndex >= len(g.cfg.Levels)-1 {
		g.won = true
		return
	}

	g.levelIndex++
	g.loadLevel()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	level := 0
	if g.mode == ModeCampaign {
		level = g.levelIndex + 1
	}
	return core.GameState{
		Score:    g.score,
		Level:    level,
		Moves:    g.movesLeft,
		GameOver: g.gameOver || g.won,
		Won:      g.won,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
	}
}
