package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapper/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the main menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After leaving a game you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  flapper menu
  flapper menu --fps 30
  flapper menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	flappyCfg, err := loadConfig(logger)
	if err != nil {
		exitf("%v", err)
	}

	store := openStore(logger)
	deps := tui.Deps{
		Flappy: flappyCfg,
		Store:  store,
		Player: flagPlayer,
		Logger: logger,
	}

	runErr := tui.RunSession(deps, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}
	if runErr != nil {
		exitf("%v", runErr)
	}
}
