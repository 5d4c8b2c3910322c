package flappy

// Snapshot is a read-only copy of a session for spectators and replays.
// Uses primitive types only so the msgpack encoding stays stable.
type Snapshot struct {
	Frame     uint64 `msgpack:"frame"`
	Phase     string `msgpack:"phase"`
	Score     int    `msgpack:"score"`
	Best      int    `msgpack:"best"`
	Tier      string `msgpack:"tier"`
	Countdown int    `msgpack:"countdown,omitempty"`
	Runs      int    `msgpack:"runs"`

	// Flying seconds of the current run.
	Elapsed float64 `msgpack:"elapsed"`

	SceneWidth  int     `msgpack:"scene_w"`
	SceneHeight int     `msgpack:"scene_h"`
	PipeWidth   float64 `msgpack:"pipe_w"`

	Actor ActorSnapshot  `msgpack:"actor"`
	Pairs []PairSnapshot `msgpack:"pairs"`
}

// ActorSnapshot is the actor part of a Snapshot.
type ActorSnapshot struct {
	X      float64 `msgpack:"x"`
	Y      float64 `msgpack:"y"`
	VelY   float64 `msgpack:"vy"`
	Width  float64 `msgpack:"w"`
	Height float64 `msgpack:"h"`
	Alive  bool    `msgpack:"alive"`
}

// PairSnapshot is one obstacle pair of a Snapshot.
type PairSnapshot struct {
	X       float64 `msgpack:"x"`
	GapTop  int     `msgpack:"gap_top"`
	GapSize int     `msgpack:"gap_size"`
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	pairs := make([]PairSnapshot, 0, s.pool.Len())
	for _, p := range s.pool.Pairs() {
		pairs = append(pairs, PairSnapshot{X: p.X, GapTop: p.GapTop, GapSize: p.GapSize})
	}

	return Snapshot{
		Frame:       s.frames,
		Phase:       s.phase.String(),
		Score:       s.score,
		Best:        s.best,
		Tier:        s.tier.String(),
		Countdown:   s.countdown,
		Runs:        s.runs,
		Elapsed:     s.elapsed,
		SceneWidth:  s.cfg.Scene.Width,
		SceneHeight: s.cfg.Scene.Height,
		PipeWidth:   s.pool.Width(),
		Actor: ActorSnapshot{
			X:      s.actor.X,
			Y:      s.actor.Y,
			VelY:   s.actor.VelY,
			Width:  s.actor.Width,
			Height: s.actor.Height,
			Alive:  s.actor.Alive,
		},
		Pairs: pairs,
	}
}
