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

// TickSeconds returns the duration of one tick in seconds.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState summarises a game for the platform.
type GameState struct {
	Score     int    // Current score
	Best      int    // Best score known to the session
	Tier      string // Active difficulty tier
	GameOver  bool   // Waiting for the automatic restart
	Paused    bool   // Paused or counting down
	Countdown int    // Remaining countdown steps, 0 when not counting down
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// EventKind identifies something that happened during a tick.
type EventKind uint8

const (
	EventFlap EventKind = iota + 1
	EventScored
	EventTierChanged
	EventCollision
	EventOutOfBounds
	EventGameOver
	EventNewBest
	EventRestarted
	EventPaused
	EventCountdown
	EventResumed
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventFlap:
		return "flap"
	case EventScored:
		return "scored"
	case EventTierChanged:
		return "tier_changed"
	case EventCollision:
		return "collision"
	case EventOutOfBounds:
		return "out_of_bounds"
	case EventGameOver:
		return "game_over"
	case EventNewBest:
		return "new_best"
	case EventRestarted:
		return "restarted"
	case EventPaused:
		return "paused"
	case EventCountdown:
		return "countdown"
	case EventResumed:
		return "resumed"
	default:
		return "unknown"
	}
}

// Event is a single occurrence reported by a game.
// Value carries kind-specific data: the recycled pair index for EventScored,
// the new tier for EventTierChanged, the remaining steps for EventCountdown.
type Event struct {
	Kind  EventKind
	Score int
	Value int
}
