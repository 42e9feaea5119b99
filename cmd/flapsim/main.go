// flapsim is a terminal obstacle-avoidance simulator with pluggable pilots.
//
// Usage:
//
//	flapsim list                - List speed profiles and pilots
//	flapsim play                - Play a session
//	flapsim menu                - Pick profiles and pilots interactively
//	flapsim sim                 - Run headless sessions with a pilot
//	flapsim replay [id]         - List or watch recorded replays
//	flapsim serve               - Start SSH server for remote play
//	flapsim scores [profile]    - Show high scores
//
// Global flags:
//
//	--fps <rate>         - Set redraw rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible sessions
//	--db <path>          - Set database path (default: ~/.flapsim/scores.db)
//	--config <path>      - Use a custom simulation config YAML
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flapsim/internal/config"
	"github.com/vovakirdan/flapsim/internal/core"

	// Import pilots to register them
	_ "github.com/vovakirdan/flapsim/internal/pilot"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flapsim",
	Short: "flapsim - fly through gaps in your terminal",
	Long: `flapsim is a fixed-step side-scrolling simulator. A player falls under
gravity, flaps upward on command and must pass through gaps between
scrolling obstacle pairs. Sessions can be flown by you or by a pilot.

Available commands:
  list     - Show speed profiles and pilots
  play     - Play a session directly
  menu     - Interactive profile and pilot picker
  sim      - Run headless sessions and print results
  replay   - List or watch recorded replays
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  flapsim list
  flapsim play --profile turbo
  flapsim play --pilot auto
  flapsim sim --pilot auto --runs 20
  flapsim serve --ssh :2222
  flapsim scores classic`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Redraw rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flapsim/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom simulation config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while a TUI is open")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "flapsim",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// tuiLogger returns a logger that cannot draw over the terminal UI: it
// writes to --log-file when set and discards everything otherwise.
// The returned func closes the file.
func tuiLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(expandHome(flagLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	return newLogger(f), func() { f.Close() }
}

func expandHome(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return path
}

// loadConfig loads the simulation config or exits.
func loadConfig() config.FlappyConfig {
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// runtimeConfig sizes the view to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
