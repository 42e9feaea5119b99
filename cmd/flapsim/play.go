package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapsim/internal/platform/tui"
	"github.com/vovakirdan/flapsim/internal/prefs"
	"github.com/vovakirdan/flapsim/internal/registry"
	"github.com/vovakirdan/flapsim/internal/storage"
)

var (
	flagProfile string
	flagPilot   string
	flagWeights string
	flagRecord  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a session",
	Long: `Start a session with the given speed profile.

Controls:
  Space/Up/W/click  - Flap
  P/Esc             - Pause
  R/Enter/click     - Restart (after game over, click the button)
  B                 - Leave (while paused or after game over)
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

With --pilot a registered pilot flies alongside you; your own flaps still
count. Every finished session with a score is recorded as a replay unless
--record=false is given.

Examples:
  flapsim play
  flapsim play --profile turbo
  flapsim play --pilot auto
  flapsim play --pilot auto --weights ./my-net.yaml
  flapsim play --config ./my-flappy.yaml --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagProfile, "profile", "", "Speed profile (default from config)")
	playCmd.Flags().StringVar(&flagPilot, "pilot", tui.HumanPilot, "Pilot ID, see 'flapsim list'")
	playCmd.Flags().StringVar(&flagWeights, "weights", "", "Network weights YAML for the auto pilot")
	playCmd.Flags().BoolVar(&flagRecord, "record", true, "Save flap ticks as a replay")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger, closeLog := tuiLogger()
	defer closeLog()

	if flagPilot != tui.HumanPilot && !registry.Exists(flagPilot) {
		fmt.Fprintf(os.Stderr, "Error: unknown pilot %q\n", flagPilot)
		fmt.Fprintln(os.Stderr, "Run 'flapsim list' to see available pilots.")
		os.Exit(1)
	}
	p, err := resolvePilot(flagPilot, flagWeights)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if _, err := cfg.SpeedProfile(flagProfile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - the session still works
		store = nil
	}

	pm := prefs.Open(logger)
	profile := flagProfile
	if profile == "" {
		profile = cfg.Profile
	}
	pm.SetLast(profile, flagPilot)

	runErr := tui.Run(tui.GameOptions{
		Flappy:  cfg,
		Runtime: runtimeConfig(),
		Profile: profile,
		Pilot:   p,
		Store:   store,
		Prefs:   pm,
		Logger:  logger,
		Record:  flagRecord,
	})

	if err := pm.Save(); err != nil {
		logger.Warn("saving prefs failed", "err", err)
	}
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running session: %v\n", runErr)
		os.Exit(1)
	}
}
