package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapper/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Re-simulate a recorded game",
	Long: `Re-run a replay file headlessly and print every finished run.

Replays are written by 'flapper play --record <file>'. The same file always
produces the same scores.

Examples:
  flapper replay run.fr
  flapper replay run.fr --log-level debug --log-file replay.log`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(_ *cobra.Command, args []string) {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	f, err := replay.Load(args[0])
	if err != nil {
		exitf("%v", err)
	}

	res, err := replay.Run(f, logger)
	if err != nil {
		exitf("%v", err)
	}

	h := f.Header
	seconds := float64(res.Ticks) / float64(max(h.TickRate, 1))
	fmt.Printf("Replay %s\n", h.RunID)
	fmt.Printf("  player:   %s\n", h.Player)
	fmt.Printf("  recorded: %s\n", h.CreatedAt.Format(time.DateTime))
	fmt.Printf("  seed:     %d\n", h.Seed)
	fmt.Printf("  ticks:    %d (%.1fs at %d fps)\n", res.Ticks, seconds, h.TickRate)
	fmt.Println()

	if len(res.Scores) == 0 {
		fmt.Println("  No finished runs.")
	}
	for i, score := range res.Scores {
		fmt.Printf("  run %d: %d\n", i+1, score)
	}
	fmt.Println()
	fmt.Printf("  best: %d, final score: %d (%s)\n", res.Best, res.Final.Score, res.Final.Tier)
}
