package ecomatch

import "github.com/vovakirdan/ecomatch/internal/match3"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick       uint64
	Mode       string // "campaign" or "endless"
	Level      int    // Current level (1-indexed), 0 for endless
	Score      int
	LevelScore int
	Target     int
	MovesLeft  int
	MovesMade  int
	Size       int
	Board      string // match3.FormatGrid output
	Phase      string
	Chain      int
	CursorRow  int
	CursorCol  int
	Selected   bool
	Unlocked   []string
	State      GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	}

	level := 0
	if g.mode == ModeCampaign {
		level = g.levelIndex + 1
	}

	unlocked := make([]string, len(g.unlocked))
	for i, t := range g.unlocked {
		unlocked[i] = string(t)
	}

	return Snapshot{
		Tick:       g.tick,
		Mode:       string(g.mode),
		Level:      level,
		Score:      g.score,
		LevelScore: g.levelScore,
		Target:     g.level.TargetScore,
		MovesLeft:  g.movesLeft,
		MovesMade:  g.movesMade,
		Size:       g.size,
		Board:      match3.FormatGrid(g.grid, g.size),
		Phase:      g.phase.String(),
		Chain:      g.chain,
		CursorRow:  g.cursorRow,
		CursorCol:  g.cursorCol,
		Selected:   g.selected,
		Unlocked:   unlocked,
		State:      state,
	}
}
