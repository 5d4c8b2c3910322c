package replay

import (
	"time"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
)

// Recorder captures every tick's input. It is not safe for concurrent use.
type Recorder struct {
	file File
}

// NewRecorder starts a recording for a game reset with rt and cfg.
func NewRecorder(runID, player string, rt core.RuntimeConfig, cfg config.FlappyConfig) *Recorder {
	return &Recorder{
		file: File{
			Header: Header{
				Version:   Version,
				RunID:     runID,
				Player:    player,
				Seed:      rt.Seed,
				TickRate:  rt.TickRate,
				ScreenW:   rt.ScreenW,
				ScreenH:   rt.ScreenH,
				Config:    cfg,
				CreatedAt: time.Now().UTC(),
			},
		},
	}
}

// Record appends the input of the next tick.
func (r *Recorder) Record(in core.InputFrame) {
	r.file.Ticks++
	if in.Empty() {
		return
	}
	r.file.Frames = append(r.file.Frames, Frame{Tick: r.file.Ticks, Actions: in.List()})
}

// Ticks returns the number of recorded ticks.
func (r *Recorder) Ticks() uint64 {
	return r.file.Ticks
}

// File returns the recording so far.
func (r *Recorder) File() File {
	f := r.file
	f.Frames = append([]Frame(nil), r.file.Frames...)
	return f
}

// Save writes the recording to path.
func (r *Recorder) Save(path string) error {
	return Save(path, r.file)
}
