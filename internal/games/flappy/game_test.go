package flappy

import (
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g, err := New(config.DefaultFlappyConfig(), nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	return g
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 400)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		if i%15 == 0 {
			inputs[i].Set(core.ActionFlap)
		}
	}

	run := func() (core.GameState, Snapshot) {
		g := newTestGame(t, 12345)
		var state core.GameState
		for _, in := range inputs {
			state = g.Step(in).State
		}
		return state, g.Snapshot()
	}

	state1, snap1 := run()
	state2, snap2 := run()

	if state1 != state2 {
		t.Errorf("states differ: %+v vs %+v", state1, state2)
	}
	if snap1.Actor != snap2.Actor || !slices.Equal(snap1.Pairs, snap2.Pairs) {
		t.Error("snapshots differ for identical input")
	}
}

func TestGameStepReportsEvents(t *testing.T) {
	g := newTestGame(t, 1)

	res := g.Step(core.FrameOf(core.ActionFlap))
	if got := eventKinds(res.Events); !slices.Equal(got, []core.EventKind{core.EventFlap}) {
		t.Errorf("events = %v, expected [flap]", got)
	}

	res = g.Step(core.NewInputFrame())
	if len(res.Events) != 0 {
		t.Errorf("events = %v, expected none", res.Events)
	}
}

func TestGamePauseToggles(t *testing.T) {
	g := newTestGame(t, 1)

	res := g.Step(core.FrameOf(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("pause action did not pause")
	}

	res = g.Step(core.FrameOf(core.ActionPause))
	if !res.State.Paused || res.State.Countdown != 3 {
		t.Fatalf("second pause should start the countdown, got %+v", res.State)
	}

	// Three seconds of ticks at 60 Hz finish the countdown.
	for range 3*60 + 1 {
		res = g.Step(core.NewInputFrame())
	}
	if res.State.Paused {
		t.Errorf("still paused after the countdown: %+v", res.State)
	}
}

func TestGameFallsAndRestarts(t *testing.T) {
	g := newTestGame(t, 1)

	var kinds []core.EventKind
	for range 300 {
		res := g.Step(core.NewInputFrame())
		kinds = append(kinds, eventKinds(res.Events)...)
		if slices.Contains(kinds, core.EventRestarted) {
			break
		}
	}

	over := slices.Index(kinds, core.EventGameOver)
	restarted := slices.Index(kinds, core.EventRestarted)
	if over < 0 || restarted < over {
		t.Fatalf("expected game over followed by a restart, got %v", kinds)
	}
	if !slices.Contains(kinds, core.EventOutOfBounds) {
		t.Errorf("expected the fall to end out of bounds, got %v", kinds)
	}
	if st := g.State(); st.GameOver || st.Score != 0 {
		t.Errorf("state after restart = %+v", st)
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, 1)
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD missing from first row: %q", screen.Row(0))
	}
	if got := screen.Get(0, 23); got != GroundChar {
		t.Errorf("ground cell = %q, expected %q", got, GroundChar)
	}
	// Actor at (80, 300) in an 800x600 scene over 80x23 cells.
	if got := screen.Get(8, 11); got != PlayerChar {
		t.Errorf("actor cell = %q, expected %q\n%s", got, PlayerChar, screen.String())
	}
}

func TestGameRenderPipes(t *testing.T) {
	g := newTestGame(t, 1)
	g.session.pool.pairs[0] = Pair{X: 400, GapTop: 200, GapSize: 200}
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	if got := screen.Get(41, 2); got != PipeChar {
		t.Errorf("upper pipe cell = %q, expected %q", got, PipeChar)
	}
	if got := screen.Get(41, 10); got != ' ' {
		t.Errorf("gap cell = %q, expected blank", got)
	}
	if got := screen.Get(41, 20); got != PipeChar {
		t.Errorf("lower pipe cell = %q, expected %q", got, PipeChar)
	}
	if c := screen.GetCell(41, 20).Color; c != core.ColorGreen {
		t.Errorf("pipe color = %v, expected green", c)
	}
}

func TestGameRenderOverlays(t *testing.T) {
	g := newTestGame(t, 1)
	screen := core.NewScreen(80, 24)

	g.Step(core.FrameOf(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("pause overlay missing")
	}

	g.Step(core.FrameOf(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "GET READY") {
		t.Error("countdown overlay missing")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Scene.Height = 0

	if _, err := New(cfg, nil, nil); err == nil {
		t.Error("expected an error for a zero-height scene")
	}
}
