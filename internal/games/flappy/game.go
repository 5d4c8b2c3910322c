// Package flappy implements a Flappy Bird-style simulation.
// The player keeps a bird airborne against gravity while pairs of pipes
// scroll past; each pipe pair cleared scores a point and the gaps tighten
// as the score climbs.
package flappy

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar    = '▶'
	PlayerBody    = '●'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
)

// Game adapts a Session to the terminal platform: actions in, fixed ticks,
// and a character-grid rendering of the scene.
type Game struct {
	cfg     config.FlappyConfig
	store   BestScoreStore
	logger  *log.Logger
	runtime core.RuntimeConfig
	session *Session
}

// New creates a game. cfg is validated here so Reset cannot fail later.
func New(cfg config.FlappyConfig, store BestScoreStore, logger *log.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("flappy: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		cfg:     cfg,
		store:   store,
		logger:  logger,
		runtime: core.DefaultConfig(),
	}, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Reset starts a new session seeded from rt.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.runtime = rt
	s, err := NewSession(g.cfg,
		WithStore(g.store),
		WithLogger(g.logger),
		WithSeed(rt.Seed),
	)
	if err != nil {
		// Unreachable: the config was validated in New.
		g.logger.Error("could not start session", "error", err)
		return
	}
	g.session = s
}

// Step applies the frame's actions and advances timers, then physics, by
// one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		g.Reset(g.runtime)
	}
	s := g.session

	if in.Has(core.ActionPause) {
		if s.Phase() == PhasePaused {
			s.RequestResume()
		} else {
			s.RequestPause()
		}
	}
	if in.Has(core.ActionResume) {
		s.RequestResume()
	}
	if in.Has(core.ActionFlap) {
		s.Flap()
	}

	dt := g.runtime.TickSeconds()
	s.AdvanceTimer(dt)
	s.Tick(dt)

	return core.StepResult{State: g.State(), Events: s.Events()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	s := g.session
	phase := s.Phase()
	return core.GameState{
		Score:     s.Score(),
		Best:      s.BestScore(),
		Tier:      s.Tier().String(),
		GameOver:  phase == PhaseGameOverPending,
		Paused:    phase == PhasePaused || phase == PhaseCountingDown,
		Countdown: s.Countdown(),
	}
}

// Session exposes the underlying session, nil before the first Reset.
func (g *Game) Session() *Session {
	return g.session
}

// Snapshot returns the session snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.session == nil {
		return Snapshot{}
	}
	return g.session.Snapshot()
}

// Runtime returns the runtime config of the last Reset.
func (g *Game) Runtime() core.RuntimeConfig {
	return g.runtime
}

// Config returns the game configuration.
func (g *Game) Config() config.FlappyConfig {
	return g.cfg
}

// viewport maps scene units onto screen cells. The bottom row is the ground.
type viewport struct {
	sx, sy float64
	playH  int
}

func newViewport(dst *core.Screen, cfg config.SceneConfig) viewport {
	playH := max(dst.Height()-1, 1)
	return viewport{
		sx:    float64(dst.Width()) / float64(cfg.Width),
		sy:    float64(playH) / float64(cfg.Height),
		playH: playH,
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x * v.sx))
}

func (v viewport) row(y float64) int {
	return int(math.Floor(y * v.sy))
}

// Render draws the scene scaled to the screen, then the HUD and overlays.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil || dst.Width() == 0 || dst.Height() == 0 {
		return
	}
	s := g.session
	v := newViewport(dst, g.cfg.Scene)

	dst.DrawHLine(0, dst.Height()-1, dst.Width(), GroundChar, core.ColorYellow)

	for _, p := range s.Pairs() {
		g.drawPair(dst, v, p)
	}
	g.drawActor(dst, v)
	g.drawHUD(dst)

	switch s.Phase() {
	case PhasePaused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case PhaseCountingDown:
		drawCenteredMessage(dst, "GET READY", fmt.Sprintf("%d", s.Countdown()))
	case PhaseGameOverPending:
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  Best: %d", s.Score(), s.BestScore()))
	}
}

// drawPair renders a single pipe pair.
func (g *Game) drawPair(dst *core.Screen, v viewport, p Pair) {
	x0 := v.col(p.X)
	x1 := max(v.col(p.X+g.cfg.Obstacles.Width), x0+1)
	if x1 <= 0 || x0 >= dst.Width() {
		return
	}
	w := x1 - x0

	gapTop := v.row(float64(p.GapTop))
	gapBottom := max(v.row(float64(p.GapBottom())), gapTop+1)

	dst.Fill(x0, 0, w, gapTop, PipeChar, core.ColorGreen)
	if gapTop > 0 {
		dst.DrawHLine(x0, gapTop-1, w, PipeCapTop, core.ColorBrightGreen)
	}

	dst.Fill(x0, gapBottom, w, v.playH-gapBottom, PipeChar, core.ColorGreen)
	if gapBottom < v.playH {
		dst.DrawHLine(x0, gapBottom, w, PipeCapBottom, core.ColorBrightGreen)
	}
}

func (g *Game) drawActor(dst *core.Screen, v viewport) {
	a := g.session.Actor()
	x := v.col(a.X)
	y := core.Clamp(v.row(a.Y), 0, v.playH-1)

	c := core.ColorBrightYellow
	if !a.Alive {
		c = core.ColorBrightRed
	}
	dst.SetColor(x-1, y, PlayerBody, c)
	dst.SetColor(x, y, PlayerChar, c)
}

func (g *Game) drawHUD(dst *core.Screen) {
	s := g.session
	hud := fmt.Sprintf(" Score: %d  Best: %d  %s ", s.Score(), s.BestScore(), s.Tier())
	dst.DrawTextColor(1, 0, hud, core.ColorWhite)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.Fill(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH)

	dst.DrawTextColor(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorBrightCyan)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
