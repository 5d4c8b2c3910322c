// Package replay records the actions of a flappy session and re-simulates
// them headlessly. Files are msgpack-encoded.
package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
)

// Version is the current file format version.
const Version = 1

// ErrUnsupportedVersion is returned when a file was written by an
// incompatible version.
var ErrUnsupportedVersion = errors.New("replay: unsupported file version")

// Header describes how a recording was made.
type Header struct {
	Version   int                 `msgpack:"version"`
	RunID     string              `msgpack:"run_id"`
	Player    string              `msgpack:"player"`
	Seed      int64               `msgpack:"seed"`
	TickRate  int                 `msgpack:"tick_rate"`
	ScreenW   int                 `msgpack:"screen_w"`
	ScreenH   int                 `msgpack:"screen_h"`
	Config    config.FlappyConfig `msgpack:"config"`
	CreatedAt time.Time           `msgpack:"created_at"`
}

// Runtime returns the runtime config the recording was made with.
func (h Header) Runtime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  h.ScreenW,
		ScreenH:  h.ScreenH,
		TickRate: h.TickRate,
		Seed:     h.Seed,
	}
}

// Frame holds the actions of one tick. Ticks without actions are not stored.
type Frame struct {
	Tick    uint64        `msgpack:"t"`
	Actions []core.Action `msgpack:"a"`
}

// File is a complete recording.
type File struct {
	Header Header  `msgpack:"header"`
	Ticks  uint64  `msgpack:"ticks"`
	Frames []Frame `msgpack:"frames"`
}

// Encode writes f to w.
func Encode(w io.Writer, f File) error {
	if err := msgpack.NewEncoder(w).Encode(&f); err != nil {
		return fmt.Errorf("replay: encode: %w", err)
	}
	return nil
}

// Decode reads a file from r.
func Decode(r io.Reader) (File, error) {
	var f File
	if err := msgpack.NewDecoder(r).Decode(&f); err != nil {
		return File{}, fmt.Errorf("replay: decode: %w", err)
	}
	if f.Header.Version != Version {
		return File{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, f.Header.Version)
	}
	return f, nil
}

// Save writes f to path.
func Save(path string, f File) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("replay: cannot create %s: %w", path, err)
	}

	w := bufio.NewWriter(out)
	if err := Encode(w, f); err != nil {
		out.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		out.Close()
		return fmt.Errorf("replay: cannot write %s: %w", path, err)
	}
	return out.Close()
}

// Load reads a file from path.
func Load(path string) (File, error) {
	in, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("replay: cannot open %s: %w", path, err)
	}
	defer in.Close()

	return Decode(bufio.NewReader(in))
}
