package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapper/internal/platform/tui"
	"github.com/vovakirdan/flapper/internal/spectate"
)

var (
	flagRecord   string
	flagSpectate string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing right away.

Controls:
  Space/Up/W - Flap
  P          - Pause / resume (resuming counts down)
  Esc/B      - Leave (when paused or after game over)
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

Examples:
  flapper play
  flapper play --seed 42 --record run.fr
  flapper play --spectate :8081
  flapper play --config ./my-flappy.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Save the game's input as a replay file")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Stream the game to websocket spectators on this address (e.g. :8081)")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	flappyCfg, err := loadConfig(logger)
	if err != nil {
		exitf("%v", err)
	}

	deps := tui.Deps{
		Flappy: flappyCfg,
		Player: flagPlayer,
		Logger: logger,
	}

	// Open score storage; the game still works without it
	deps.Store = openStore(logger)
	if deps.Store != nil {
		defer deps.Store.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var spectateDone chan error
	if flagSpectate != "" {
		ln, listenErr := net.Listen("tcp", flagSpectate)
		if listenErr != nil {
			exitf("cannot listen for spectators: %v", listenErr)
		}
		deps.Hub = spectate.NewHub(logger)
		spectateDone = make(chan error, 1)
		go func() {
			spectateDone <- spectate.Serve(ctx, ln, deps.Hub)
		}()
		logger.Info("spectator feed", "url", fmt.Sprintf("ws://%s%s", ln.Addr(), spectate.Path))
	}

	runErr := tui.Run(deps, runtimeConfig(), flagRecord)

	if spectateDone != nil {
		cancel()
		runErr = errors.Join(runErr, <-spectateDone)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
	if flagRecord != "" {
		fmt.Printf("Replay saved to %s\n", flagRecord)
	}
}
