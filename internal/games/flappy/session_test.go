package flappy

import (
	"errors"
	"slices"
	"testing"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
)

// memStore is an in-memory BestScoreStore.
type memStore struct {
	best     int
	writes   []int
	readErr  error
	writeErr error
}

func (m *memStore) ReadBestScore() (int, error) {
	if m.readErr != nil {
		return 0, m.readErr
	}
	return m.best, nil
}

func (m *memStore) WriteBestScore(score int) error {
	m.writes = append(m.writes, score)
	if m.writeErr != nil {
		return m.writeErr
	}
	m.best = score
	return nil
}

// disjointConfig gives every tier non-overlapping ranges so tests can tell
// which tier placed a pair.
func disjointConfig() config.FlappyConfig {
	cfg := config.DefaultFlappyConfig()
	cfg.Difficulty.Tiers = config.Tiers{
		Easy: config.TierParams{
			Spacing: config.Range{Min: 300, Max: 310},
			Gap:     config.Range{Min: 150, Max: 160},
		},
		Normal: config.TierParams{
			Spacing: config.Range{Min: 400, Max: 410},
			Gap:     config.Range{Min: 100, Max: 110},
		},
		Hard: config.TierParams{
			Spacing: config.Range{Min: 500, Max: 510},
			Gap:     config.Range{Min: 50, Max: 60},
		},
	}
	return cfg
}

func newTestSession(t *testing.T, cfg config.FlappyConfig, opts ...Option) *Session {
	t.Helper()
	s, err := NewSession(cfg, append([]Option{WithSeed(42)}, opts...)...)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func eventKinds(events []core.Event) []core.EventKind {
	kinds := make([]core.EventKind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind
	}
	return kinds
}

// pushOffScreen moves pair i so the next tick reports it passed.
func pushOffScreen(s *Session, i int) {
	s.pool.pairs[i].X = -100
}

// forceOutOfBounds puts the actor on the floor so the next tick ends the run.
func forceOutOfBounds(s *Session) {
	s.actor.Y = float64(s.cfg.Scene.Height) - s.actor.Height/2 + 1
}

func TestNewSessionInitialState(t *testing.T) {
	s := newTestSession(t, config.DefaultFlappyConfig())

	if s.Phase() != PhaseFlying {
		t.Errorf("phase = %s, expected flying", s.Phase())
	}
	if s.Score() != 0 || s.Tier() != config.TierEasy {
		t.Errorf("score/tier = %d/%s, expected 0/easy", s.Score(), s.Tier())
	}
	a := s.Actor()
	if a.X != 80 || a.Y != 300 || !a.Alive {
		t.Errorf("actor = %+v, expected alive at (80, 300)", a)
	}
	pairs := s.Pairs()
	if len(pairs) != 4 || pairs[0].X != 800 {
		t.Errorf("pairs = %+v, expected 4 starting at x=800", pairs)
	}
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Obstacles.Count = 0

	_, err := NewSession(cfg)
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestOutOfBoundsEndsRun(t *testing.T) {
	s := newTestSession(t, config.DefaultFlappyConfig())
	s.actor.Height = 20
	s.actor.Y = 590

	s.Tick(0.001)

	if s.Phase() != PhaseGameOverPending {
		t.Fatalf("phase = %s, expected game_over", s.Phase())
	}
	if s.Actor().Alive {
		t.Error("actor still alive after game over")
	}
	want := []core.EventKind{core.EventOutOfBounds, core.EventGameOver}
	if got := eventKinds(s.Events()); !slices.Equal(got, want) {
		t.Errorf("events = %v, expected %v", got, want)
	}
}

func TestCollisionEndsRun(t *testing.T) {
	s := newTestSession(t, config.DefaultFlappyConfig())
	// Park a closed pair right on top of the actor.
	s.pool.pairs[0] = Pair{X: 70, GapTop: 20, GapSize: 10}

	s.Tick(0.001)

	if s.Phase() != PhaseGameOverPending {
		t.Fatalf("phase = %s, expected game_over", s.Phase())
	}
	if got := eventKinds(s.Events()); !slices.Contains(got, core.EventCollision) {
		t.Errorf("events = %v, expected a collision", got)
	}
}

func TestGameOverFreezesPhysics(t *testing.T) {
	s := newTestSession(t, config.DefaultFlappyConfig())
	forceOutOfBounds(s)
	s.Tick(0.01)

	before := s.Actor()
	pairs := s.Pairs()
	s.Tick(0.5)

	if s.Actor() != before {
		t.Errorf("actor moved during game over: %+v -> %+v", before, s.Actor())
	}
	if !slices.Equal(s.Pairs(), pairs) {
		t.Error("pairs moved during game over")
	}
	if s.Flap() {
		t.Error("Flap accepted during game over")
	}
	if s.RequestPause() {
		t.Error("RequestPause accepted during game over")
	}
}

func TestGameOverRestartsAfterDelay(t *testing.T) {
	s := newTestSession(t, config.DefaultFlappyConfig())
	s.score = 2
	s.tier = config.TierNormal
	forceOutOfBounds(s)
	s.Tick(0.01)
	s.Events()

	s.AdvanceTimer(0.5)
	if s.Phase() != PhaseGameOverPending {
		t.Fatalf("restarted after half the delay")
	}

	s.AdvanceTimer(0.5)
	if s.Phase() != PhaseFlying {
		t.Fatalf("phase = %s after 1s, expected flying", s.Phase())
	}
	if s.Score() != 0 || s.Tier() != config.TierEasy {
		t.Errorf("score/tier = %d/%s, expected 0/easy", s.Score(), s.Tier())
	}
	a := s.Actor()
	if a.Y != 300 || a.VelY != 0 || !a.Alive {
		t.Errorf("actor not reset: %+v", a)
	}
	if s.Pairs()[0].X != 800 {
		t.Errorf("pool not reinitialised, first pair at %g", s.Pairs()[0].X)
	}
	if got := eventKinds(s.Events()); !slices.Equal(got, []core.EventKind{core.EventRestarted}) {
		t.Errorf("events = %v, expected [restarted]", got)
	}
	if s.Runs() != 1 {
		t.Errorf("Runs = %d, expected 1", s.Runs())
	}
}

func TestRestartCancelsPendingTimers(t *testing.T) {
	s := newTestSession(t, config.DefaultFlappyConfig())
	forceOutOfBounds(s)
	s.Tick(0.01)

	s.Restart()
	if s.timers.Pending() != 0 {
		t.Errorf("Pending = %d after Restart, expected 0", s.timers.Pending())
	}

	s.AdvanceTimer(2)
	if s.Runs() != 1 {
		t.Errorf("Runs = %d, the cancelled game-over timer fired", s.Runs())
	}
}

func TestRecycleScoresAndRaisesTier(t *testing.T) {
	s := newTestSession(t, disjointConfig())
	tiers := s.cfg.Difficulty.Tiers

	// Score 0 -> 1: placed with easy, then tier becomes normal.
	before := s.pool.RightmostX()
	pushOffScreen(s, 0)
	s.Tick(0.01)

	if s.Score() != 1 || s.Tier() != config.TierNormal {
		t.Fatalf("score/tier = %d/%s, expected 1/normal", s.Score(), s.Tier())
	}
	p := s.pool.Pair(0)
	if !tiers.Easy.Gap.Contains(p.GapSize) {
		t.Errorf("first recycle gap %d, expected easy range %s", p.GapSize, tiers.Easy.Gap)
	}
	if spacing := int(p.X - (before - 2)); !tiers.Easy.Spacing.Contains(spacing) {
		t.Errorf("first recycle spacing %d, expected easy range %s", spacing, tiers.Easy.Spacing)
	}
	want := []core.EventKind{core.EventScored, core.EventTierChanged}
	if got := eventKinds(s.Events()); !slices.Equal(got, want) {
		t.Errorf("events = %v, expected %v", got, want)
	}

	// Score 1 -> 2: placed with normal.
	pushOffScreen(s, 1)
	s.Tick(0.01)
	if p := s.pool.Pair(1); !tiers.Normal.Gap.Contains(p.GapSize) {
		t.Errorf("second recycle gap %d, expected normal range %s", p.GapSize, tiers.Normal.Gap)
	}
	if s.Tier() != config.TierNormal {
		t.Errorf("tier = %s at score 2, expected normal", s.Tier())
	}

	// Score 2 -> 3: placed with normal, then tier becomes hard.
	pushOffScreen(s, 2)
	s.Tick(0.01)
	if p := s.pool.Pair(2); !tiers.Normal.Gap.Contains(p.GapSize) {
		t.Errorf("third recycle gap %d, expected normal range %s", p.GapSize, tiers.Normal.Gap)
	}
	if s.Score() != 3 || s.Tier() != config.TierHard {
		t.Fatalf("score/tier = %d/%s, expected 3/hard", s.Score(), s.Tier())
	}

	pushOffScreen(s, 3)
	s.Tick(0.01)
	if p := s.pool.Pair(3); !tiers.Hard.Gap.Contains(p.GapSize) {
		t.Errorf("fourth recycle gap %d, expected hard range %s", p.GapSize, tiers.Hard.Gap)
	}
	if s.Phase() != PhaseFlying {
		t.Errorf("phase = %s, expected flying", s.Phase())
	}
}

func TestMultiplePairsRecycledInOneTick(t *testing.T) {
	s := newTestSession(t, disjointConfig())
	rightmost := s.pool.Pair(3).X - 2 // Position after the tick scrolls 2 units.
	for i := range 3 {
		pushOffScreen(s, i)
	}

	s.Tick(0.01)

	if s.Score() != 3 {
		t.Fatalf("score = %d, expected 3", s.Score())
	}
	if s.Tier() != config.TierHard {
		t.Errorf("tier = %s, expected hard", s.Tier())
	}

	var scored []int
	var tierChanges []int
	for _, e := range s.Events() {
		switch e.Kind {
		case core.EventScored:
			scored = append(scored, e.Value)
		case core.EventTierChanged:
			tierChanges = append(tierChanges, e.Value)
		}
	}
	if !slices.Equal(scored, []int{0, 1, 2}) {
		t.Errorf("scored pairs = %v, expected [0 1 2]", scored)
	}
	if !slices.Equal(tierChanges, []int{int(config.TierNormal), int(config.TierHard)}) {
		t.Errorf("tier changes = %v, expected [normal hard]", tierChanges)
	}

	pairs := s.Pairs()
	if !(rightmost < pairs[0].X && pairs[0].X < pairs[1].X && pairs[1].X < pairs[2].X) {
		t.Errorf("recycled pairs not laid out in index order after pair 3: %+v", pairs)
	}
}

func TestFlapIsIdempotent(t *testing.T) {
	s := newTestSession(t, config.DefaultFlappyConfig())

	if !s.Flap() || !s.Flap() {
		t.Fatal("Flap rejected while flying")
	}
	if v := s.Actor().VelY; v != -300 {
		t.Errorf("VelY = %g after two flaps, expected -300", v)
	}
}

func TestPauseAndCountdown(t *testing.T) {
	s := newTestSession(t, config.DefaultFlappyConfig())

	if s.RequestResume() {
		t.Error("RequestResume accepted while flying")
	}
	if !s.RequestPause() {
		t.Fatal("RequestPause rejected while flying")
	}
	if s.RequestPause() {
		t.Error("second RequestPause accepted")
	}
	if s.Flap() {
		t.Error("Flap accepted while paused")
	}

	before := s.Actor()
	s.Tick(0.5)
	s.AdvanceTimer(5)
	if s.Actor() != before || s.Phase() != PhasePaused {
		t.Fatal("paused session moved")
	}

	if !s.RequestResume() {
		t.Fatal("RequestResume rejected while paused")
	}
	if s.Phase() != PhaseCountingDown || s.Countdown() != 3 {
		t.Fatalf("phase/countdown = %s/%d, expected counting_down/3", s.Phase(), s.Countdown())
	}
	if s.RequestPause() || s.RequestResume() || s.Flap() {
		t.Error("request accepted while counting down")
	}

	s.AdvanceTimer(1)
	if s.Countdown() != 2 {
		t.Errorf("countdown = %d, expected 2", s.Countdown())
	}
	s.AdvanceTimer(1)
	if s.Countdown() != 1 {
		t.Errorf("countdown = %d, expected 1", s.Countdown())
	}
	s.AdvanceTimer(1)
	if s.Phase() != PhaseFlying || s.Countdown() != 0 {
		t.Errorf("phase/countdown = %s/%d, expected flying/0", s.Phase(), s.Countdown())
	}

	var countdown []int
	var kinds []core.EventKind
	for _, e := range s.Events() {
		kinds = append(kinds, e.Kind)
		if e.Kind == core.EventCountdown {
			countdown = append(countdown, e.Value)
		}
	}
	if !slices.Equal(countdown, []int{3, 2, 1}) {
		t.Errorf("countdown events = %v, expected [3 2 1]", countdown)
	}
	if kinds[0] != core.EventPaused || kinds[len(kinds)-1] != core.EventResumed {
		t.Errorf("events = %v, expected paused first and resumed last", kinds)
	}
}

func TestResumeWithoutCountdown(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Timing.CountdownFrom = 0
	s := newTestSession(t, cfg)

	s.RequestPause()
	if !s.RequestResume() {
		t.Fatal("RequestResume rejected")
	}
	if s.Phase() != PhaseFlying {
		t.Errorf("phase = %s, expected flying", s.Phase())
	}
}

func TestBestScoreReadAndWritten(t *testing.T) {
	store := &memStore{best: 5}
	s := newTestSession(t, config.DefaultFlappyConfig(), WithStore(store))

	if s.BestScore() != 5 {
		t.Fatalf("BestScore = %d, expected 5 from store", s.BestScore())
	}

	// A run below the best is not written.
	s.score = 3
	forceOutOfBounds(s)
	s.Tick(0.01)
	if len(store.writes) != 0 {
		t.Errorf("writes = %v, expected none", store.writes)
	}
	s.AdvanceTimer(1)

	// A run above the best is written once.
	s.score = 7
	forceOutOfBounds(s)
	s.Tick(0.01)
	if !slices.Equal(store.writes, []int{7}) {
		t.Errorf("writes = %v, expected [7]", store.writes)
	}
	if got := eventKinds(s.Events()); !slices.Contains(got, core.EventNewBest) {
		t.Errorf("events = %v, expected new_best", got)
	}

	s.AdvanceTimer(1)
	if s.BestScore() != 7 {
		t.Errorf("BestScore after restart = %d, expected 7", s.BestScore())
	}
}

func TestEqualScoreIsNotWritten(t *testing.T) {
	store := &memStore{best: 4}
	s := newTestSession(t, config.DefaultFlappyConfig(), WithStore(store))

	s.score = 4
	forceOutOfBounds(s)
	s.Tick(0.01)

	if len(store.writes) != 0 {
		t.Errorf("writes = %v, expected none for an equal score", store.writes)
	}
}

func TestStoreFailuresDoNotChangeGameplay(t *testing.T) {
	store := &memStore{readErr: errors.New("disk gone"), writeErr: errors.New("disk gone")}
	s := newTestSession(t, config.DefaultFlappyConfig(), WithStore(store))

	if s.BestScore() != 0 {
		t.Errorf("BestScore = %d with failing store, expected 0", s.BestScore())
	}

	s.score = 2
	forceOutOfBounds(s)
	s.Tick(0.01)
	if s.Phase() != PhaseGameOverPending {
		t.Fatalf("phase = %s, expected game_over", s.Phase())
	}
	if s.BestScore() != 2 {
		t.Errorf("in-memory best = %d, expected 2", s.BestScore())
	}

	s.AdvanceTimer(1)
	if s.Phase() != PhaseFlying {
		t.Fatalf("phase = %s, expected flying", s.Phase())
	}
	if s.BestScore() != 2 {
		t.Errorf("best after restart = %d, expected the in-memory 2", s.BestScore())
	}
}

func TestSessionsWithSameSeedMatch(t *testing.T) {
	a := newTestSession(t, config.DefaultFlappyConfig())
	b := newTestSession(t, config.DefaultFlappyConfig())

	for i := range 300 {
		if i%20 == 0 {
			a.Flap()
			b.Flap()
		}
		a.Tick(1.0 / 60)
		b.Tick(1.0 / 60)
	}

	if a.Snapshot().Frame != b.Snapshot().Frame || !slices.Equal(a.Pairs(), b.Pairs()) || a.Actor() != b.Actor() {
		t.Error("sessions with the same seed diverged")
	}
}
