package flappy

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
)

// Phase is the session state.
type Phase int

const (
	PhaseFlying          Phase = iota // Physics and flap input active
	PhaseGameOverPending              // Frozen until the restart timer fires
	PhasePaused                       // Frozen until a resume request
	PhaseCountingDown                 // Frozen while the resume countdown runs
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseFlying:
		return "flying"
	case PhaseGameOverPending:
		return "game_over"
	case PhasePaused:
		return "paused"
	case PhaseCountingDown:
		return "counting_down"
	default:
		return "unknown"
	}
}

// BestScoreStore persists the best score. A missing value reads as 0.
type BestScoreStore interface {
	ReadBestScore() (int, error)
	WriteBestScore(score int) error
}

// Option configures a Session.
type Option func(*Session)

// WithStore sets the best-score store.
func WithStore(store BestScoreStore) Option {
	return func(s *Session) {
		s.store = store
	}
}

// WithLogger sets the logger used for transitions and store failures.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSeed sets the RNG seed for obstacle placement.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.seed = seed
	}
}

// Session owns one actor and one obstacle pool and drives them through the
// flying / game over / paused / countdown state machine.
// It is not safe for concurrent use.
type Session struct {
	cfg       config.FlappyConfig
	seed      int64
	rng       *core.Random
	actor     *Actor
	pool      *Pool
	timers    Scheduler
	phase     Phase
	score     int
	best      int
	tier      config.Tier
	countdown int
	frames    uint64  // Tick calls over the session lifetime
	runTicks  uint64  // Flying ticks in the current run
	elapsed   float64 // Flying seconds in the current run
	runs      int     // Completed restarts
	store     BestScoreStore
	logger    *log.Logger
	events    []core.Event
}

// NewSession validates cfg and starts a session in the flying phase.
func NewSession(cfg config.FlappyConfig, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("flappy: %w", err)
	}

	s := &Session{
		cfg:    cfg,
		seed:   1,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.rng = core.NewRandom(s.seed)
	s.pool = NewPool(cfg.Obstacles.Count, cfg.Obstacles.Width, cfg.Scene.Margin, s.rng)
	s.reset()
	return s, nil
}

// reset reinitialises everything a run owns and cancels pending timers.
func (s *Session) reset() {
	s.timers.CancelAll()
	s.phase = PhaseFlying
	s.score = 0
	s.tier = config.TierEasy
	s.countdown = 0
	s.runTicks = 0
	s.elapsed = 0
	s.actor = NewActor(s.cfg.Actor, s.cfg.Physics)
	s.pool.Initialize(s.sceneWidth(), s.sceneHeight(), s.cfg.Difficulty.ParametersFor(s.tier))
	s.best = s.readBest()
}

// Restart starts a fresh run. Pending game-over and countdown timers are
// cancelled outright.
func (s *Session) Restart() {
	s.reset()
	s.runs++
	s.emit(core.EventRestarted, 0)
	s.logger.Debug("session restarted", "runs", s.runs, "best", s.best)
}

// Tick advances the physics by dt seconds. It does nothing outside the
// flying phase.
func (s *Session) Tick(dt float64) {
	s.frames++
	if s.phase != PhaseFlying || dt <= 0 {
		return
	}
	s.runTicks++
	s.elapsed += dt

	s.pool.Advance(s.cfg.Physics.ScrollSpeed * dt)
	s.actor.Tick(dt)

	for _, i := range s.pool.CollectPassed(0) {
		s.recycle(i)
	}

	collided := s.pool.Collides(s.actor.Bounds())
	outOfBounds := s.actor.IsOutOfBounds(s.sceneHeight())
	if collided {
		s.emit(core.EventCollision, 0)
	}
	if outOfBounds {
		s.emit(core.EventOutOfBounds, 0)
	}
	if collided || outOfBounds {
		s.gameOver()
	}
}

// recycle re-places a passed pair with the current tier, scores it and
// re-evaluates the tier.
func (s *Session) recycle(i int) {
	s.pool.Place(i, s.cfg.Difficulty.ParametersFor(s.tier), s.sceneHeight())
	s.score++
	s.emit(core.EventScored, i)

	next := s.cfg.Difficulty.Next(s.tier, s.score)
	if next != s.tier {
		s.tier = next
		s.emit(core.EventTierChanged, int(next))
		s.logger.Debug("difficulty raised", "tier", next, "score", s.score)
	}
}

func (s *Session) gameOver() {
	s.phase = PhaseGameOverPending
	s.actor.Alive = false
	s.emit(core.EventGameOver, 0)
	s.logger.Debug("game over", "score", s.score, "best", s.best, "seconds", s.elapsed)

	if s.score > s.best {
		s.best = s.score
		s.emit(core.EventNewBest, s.score)
		if s.store != nil {
			if err := s.store.WriteBestScore(s.score); err != nil {
				s.logger.Warn("could not save best score", "score", s.score, "error", err)
			}
		}
	}

	s.timers.After(s.cfg.Timing.GameOverDelay, s.Restart)
}

// AdvanceTimer moves the session's deferred timers forward by dt seconds.
func (s *Session) AdvanceTimer(dt float64) {
	s.timers.Advance(dt)
}

// Flap applies an upward impulse. Only accepted while flying.
func (s *Session) Flap() bool {
	if s.phase != PhaseFlying {
		return false
	}
	s.actor.Flap()
	s.emit(core.EventFlap, 0)
	return true
}

// RequestPause freezes a flying session.
func (s *Session) RequestPause() bool {
	if s.phase != PhaseFlying {
		return false
	}
	s.phase = PhasePaused
	s.emit(core.EventPaused, 0)
	s.logger.Debug("session paused", "score", s.score)
	return true
}

// RequestResume starts the countdown out of a pause. With a zero countdown
// the session resumes immediately.
func (s *Session) RequestResume() bool {
	if s.phase != PhasePaused {
		return false
	}

	from := s.cfg.Timing.CountdownFrom
	if from == 0 {
		s.resume()
		return true
	}

	s.phase = PhaseCountingDown
	s.countdown = from
	s.emit(core.EventCountdown, s.countdown)
	s.timers.Every(s.cfg.Timing.CountdownInterval, from, s.countdownStep)
	return true
}

func (s *Session) countdownStep() {
	s.countdown--
	if s.countdown > 0 {
		s.emit(core.EventCountdown, s.countdown)
		return
	}
	s.resume()
}

func (s *Session) resume() {
	s.countdown = 0
	s.phase = PhaseFlying
	s.emit(core.EventResumed, 0)
	s.logger.Debug("session resumed", "score", s.score)
}

// readBest loads the stored best score, keeping the in-memory value when
// the store is missing, fails, or lags behind it.
func (s *Session) readBest() int {
	if s.store == nil {
		return s.best
	}
	stored, err := s.store.ReadBestScore()
	if err != nil {
		s.logger.Warn("could not read best score", "error", err)
		return s.best
	}
	return max(stored, s.best)
}

func (s *Session) emit(kind core.EventKind, value int) {
	s.events = append(s.events, core.Event{Kind: kind, Score: s.score, Value: value})
}

// Events returns the events since the last call and clears them.
func (s *Session) Events() []core.Event {
	events := s.events
	s.events = nil
	return events
}

func (s *Session) sceneWidth() float64 {
	return float64(s.cfg.Scene.Width)
}

func (s *Session) sceneHeight() float64 {
	return float64(s.cfg.Scene.Height)
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Score returns the current run's score.
func (s *Session) Score() int {
	return s.score
}

// BestScore returns the best score known to the session.
func (s *Session) BestScore() int {
	return s.best
}

// Tier returns the active difficulty tier.
func (s *Session) Tier() config.Tier {
	return s.tier
}

// Countdown returns the remaining countdown steps, 0 unless counting down.
func (s *Session) Countdown() int {
	return s.countdown
}

// Actor returns a copy of the actor.
func (s *Session) Actor() Actor {
	return *s.actor
}

// Pairs returns a copy of the obstacle pairs.
func (s *Session) Pairs() []Pair {
	return s.pool.Pairs()
}

// Config returns the session configuration.
func (s *Session) Config() config.FlappyConfig {
	return s.cfg
}

// Elapsed returns the flying time of the current run in seconds.
func (s *Session) Elapsed() float64 {
	return s.elapsed
}

// Runs returns how many times the session has restarted.
func (s *Session) Runs() int {
	return s.runs
}
