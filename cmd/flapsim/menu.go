package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapsim/internal/platform/tui"
	"github.com/vovakirdan/flapsim/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a speed profile and pilot interactively",
	Long: `Start in interactive menu mode.

Use Up/Down to choose a speed profile and Left/Right to choose who flies.
Leaving a session (B while paused or after game over) returns to the menu.

Controls:
  Up/Down/j/k     - Choose profile
  Left/Right/h/l  - Choose pilot
  Enter/Space     - Start
  Tab             - Scoreboard
  Q               - Quit

Examples:
  flapsim menu
  flapsim menu --fps 30
  flapsim menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger, closeLog := tuiLogger()
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	runErr := tui.RunSession(store, cfg, runtimeConfig(), logger)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
