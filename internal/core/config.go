package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Level    int  // 1-based level number, 0 when the mode has no levels
	Moves    int  // Moves left, -1 when unlimited
	GameOver bool // Whether the game has ended
	Won      bool // Whether the game ended by clearing every level
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// EventKind classifies something that happened during a tick.
type EventKind int

const (
	EventNone EventKind = iota
	EventSwapRejected
	EventTilesCleared
	EventShuffled
	EventLevelCleared
	EventPowerUpUnlocked
	EventGameOver
)

// Event reports one thing that happened during a tick. Count and Name are
// interpreted per kind: tiles cleared, chain depth, level or power-up name.
type Event struct {
	Kind  EventKind
	Count int
	Chain int
	Name  string
}
