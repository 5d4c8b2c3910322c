package replay

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flapper/internal/core"
	"github.com/vovakirdan/flapper/internal/games/flappy"
)

// Result is the outcome of a re-simulated recording.
type Result struct {
	Ticks    uint64
	Scores   []int // Score of every run that ended in the recording
	Best     int
	Final    core.GameState
	Snapshot flappy.Snapshot
}

// Run re-simulates f through the same Step path the live game uses.
// Identical files always produce identical results.
func Run(f File, logger *log.Logger) (Result, error) {
	g, err := flappy.New(f.Header.Config, nil, logger)
	if err != nil {
		return Result{}, fmt.Errorf("replay: %w", err)
	}
	g.Reset(f.Header.Runtime())

	frames := make(map[uint64][]core.Action, len(f.Frames))
	for _, fr := range f.Frames {
		frames[fr.Tick] = fr.Actions
	}

	var res Result
	for tick := uint64(1); tick <= f.Ticks; tick++ {
		step := g.Step(core.FrameOf(frames[tick]...))
		for _, ev := range step.Events {
			if ev.Kind == core.EventGameOver {
				res.Scores = append(res.Scores, ev.Score)
			}
		}
	}

	res.Ticks = f.Ticks
	res.Final = g.State()
	res.Best = res.Final.Best
	res.Snapshot = g.Snapshot()
	return res, nil
}
