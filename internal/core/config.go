package core

// RuntimeConfig contains configuration passed to games at initialization.
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
	Lines    int  // Lines cleared so far
	Level    int  // Current level, starting at 1
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// EventType identifies something notable that happened during a step.
type EventType int

const (
	EventLinesCleared EventType = iota + 1 // Value: lines removed at once
	EventAreaCleared                       // Value: cells destroyed
	EventClusterPromoted                   // Value: always 1
	EventGameOver                          // Value: final score
)

// String returns a human-readable name for the event type.
func (t EventType) String() string {
	switch t {
	case EventLinesCleared:
		return "lines_cleared"
	case EventAreaCleared:
		return "area_cleared"
	case EventClusterPromoted:
		return "cluster_promoted"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is emitted by a game during Step. A game that restarts on its own
// still reports the GameOver that preceded the restart, with Final holding
// the finished run's state.
type Event struct {
	Type  EventType
	Value int
	Final GameState // set for EventGameOver
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
