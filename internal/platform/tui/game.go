package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
	"github.com/vovakirdan/flapper/internal/games/flappy"
	"github.com/vovakirdan/flapper/internal/spectate"
	"github.com/vovakirdan/flapper/internal/storage"
)

// Game is what the play loop drives.
// Games contain pure logic with no Bubble Tea dependency; the platform
// handles input mapping, timing and rendering.
type Game interface {
	// ID returns a unique identifier, used in file names.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a new session with the runtime config's seed and tick rate.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState

	// Snapshot returns a copy of the state for spectators.
	Snapshot() flappy.Snapshot
}

var _ Game = (*flappy.Game)(nil)

// Deps are the collaborators shared by every screen of a session.
type Deps struct {
	Flappy config.FlappyConfig
	Store  *storage.Store // nil runs with an in-memory best score
	Player string
	Logger *log.Logger
	Hub    *spectate.Hub // nil disables spectating
}

func (d Deps) logger() *log.Logger {
	if d.Logger == nil {
		return log.New(io.Discard)
	}
	return d.Logger
}

// NewGame builds a flappy game wired to the player's best score.
func NewGame(d Deps) (*flappy.Game, error) {
	var best flappy.BestScoreStore
	if d.Store != nil {
		best = storage.PlayerBest{Store: d.Store, Player: d.Player}
	}
	return flappy.New(d.Flappy, best, d.logger().With("player", d.Player))
}

// resolveSeed replaces a zero seed with a time-based one.
func resolveSeed(cfg core.RuntimeConfig) core.RuntimeConfig {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg
}
