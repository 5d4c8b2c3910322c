package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flapper/internal/core"
	"github.com/vovakirdan/flapper/internal/replay"
	"github.com/vovakirdan/flapper/internal/storage"
)

// spectatorHz is how often snapshots are pushed to the spectator hub.
const spectatorHz = 20

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for playing.
type Model struct {
	game       Game
	deps       Deps
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       GameKeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	recorder   *replay.Recorder
	ticks      uint64
	gen        uint64
	quitting   bool
	backToMenu bool
	standalone bool // Back quits instead of returning to a menu
}

// NewModel creates a play model. The game is reset in Init.
func NewModel(game Game, deps Deps, cfg core.RuntimeConfig) Model {
	cfg = resolveSeed(cfg)
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		deps:       deps,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		config:     cfg,
		keys:       DefaultGameKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		gen:        nextTickGen(),
	}
}

// WithRecorder records every tick's input into r.
func (m Model) WithRecorder(r *replay.Recorder) Model {
	m.recorder = r
	return m
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if m.standalone {
				return m, tea.Quit
			}
		}
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize keeps the scene and only resizes the screen buffer; the
// simulation runs in scene units, so a resize never restarts it.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	in := m.inputFrame
	if m.recorder != nil {
		m.recorder.Record(in)
	}
	result := m.game.Step(in)
	m.gameState = result.State
	m.ticks++

	for _, ev := range result.Events {
		if ev.Kind == core.EventGameOver {
			m.saveRun(ev.Score)
		}
	}
	m.publish()

	m.inputFrame = core.NewInputFrame()
	return m, tickCmd(m.config.TickRate, m.gen)
}

// saveRun records a finished run. Best-effort: the game continues regardless.
func (m Model) saveRun(score int) {
	snap := m.game.Snapshot()
	logger := m.deps.logger()
	logger.Info("run finished", "player", m.deps.Player, "score", score, "tier", m.gameState.Tier)

	if m.deps.Store == nil {
		return
	}
	run, err := m.deps.Store.SaveRun(storage.Run{
		Player:   m.deps.Player,
		Score:    score,
		Tier:     m.gameState.Tier,
		Duration: time.Duration(snap.Elapsed * float64(time.Second)),
	})
	if err != nil {
		logger.Warn("could not save run", "error", err)
		return
	}
	logger.Debug("run saved", "run_id", run.ID)
}

// publish pushes a snapshot to spectators at spectatorHz.
func (m Model) publish() {
	if m.deps.Hub == nil {
		return
	}
	every := uint64(max(m.config.TickRate/spectatorHz, 1))
	if m.ticks%every != 0 {
		return
	}
	if err := m.deps.Hub.Broadcast(m.game.Snapshot()); err != nil {
		m.deps.logger().Warn("could not publish snapshot", "error", err)
	}
}

// saveScreenshot saves the current screen to ~/.flapper/screenshots.
func (m Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".flapper", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.deps.logger().Warn("could not save screenshot", "path", path, "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// State returns the game state after the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game until the player quits. If recordPath is set the
// session's input is saved there as a replay.
func Run(deps Deps, cfg core.RuntimeConfig, recordPath string) error {
	cfg = resolveSeed(cfg)
	game, err := NewGame(deps)
	if err != nil {
		return err
	}

	model := NewModel(game, deps, cfg)
	model.standalone = true

	var rec *replay.Recorder
	if recordPath != "" {
		rec = replay.NewRecorder(storage.NewRunID(), deps.Player, cfg, deps.Flappy)
		model = model.WithRecorder(rec)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()

	if rec != nil {
		if saveErr := rec.Save(recordPath); saveErr != nil {
			err = errors.Join(err, saveErr)
		} else {
			deps.logger().Info("replay saved", "path", recordPath, "ticks", rec.Ticks())
		}
	}
	return err
}
