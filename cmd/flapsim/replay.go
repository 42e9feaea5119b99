package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapsim/internal/config"
	"github.com/vovakirdan/flapsim/internal/flappy"
	"github.com/vovakirdan/flapsim/internal/pilot"
	"github.com/vovakirdan/flapsim/internal/platform/tui"
	"github.com/vovakirdan/flapsim/internal/storage"
)

var flagVerify bool

var replayCmd = &cobra.Command{
	Use:   "replay [id]",
	Short: "List or watch recorded replays",
	Long: `Without an ID, list the most recent replays. With an ID, watch the replay
in the terminal, or re-run it headless with --verify and compare the result
with the stored score.

Examples:
  flapsim replay
  flapsim replay 12
  flapsim replay 12 --verify`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagVerify, "verify", false, "Re-run headless and compare scores")
}

func runReplay(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		listReplays(store)
		return
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid replay ID %q\n", args[0])
		os.Exit(1)
	}
	r, err := store.Replay(id)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "Error: no replay with ID %d\n", id)
		fmt.Fprintln(os.Stderr, "Run 'flapsim replay' to see recorded replays.")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := loadConfig()
	if flagVerify {
		verifyReplay(cfg, r)
		return
	}

	logger, closeLog := tuiLogger()
	defer closeLog()

	rt := runtimeConfig()
	rt.Seed = r.Seed
	runErr := tui.Run(tui.GameOptions{
		Flappy:  cfg,
		Runtime: rt,
		Profile: r.Profile,
		Pilot:   pilot.NewReplay(r.FlapTicks),
		Logger:  logger,
	})
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running replay: %v\n", runErr)
		os.Exit(1)
	}
}

func listReplays(store *storage.Store) {
	replays, err := store.RecentReplays(20)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving replays: %v\n", err)
		os.Exit(1)
	}
	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		return
	}

	fmt.Printf("  %-5s  %-10s  %-8s  %-8s  %-7s  %s\n", "ID", "Profile", "Pilot", "Score", "Flaps", "Date")
	fmt.Printf("  %-5s  %-10s  %-8s  %-8s  %-7s  %s\n", "--", "-------", "-----", "-----", "-----", "----")
	for _, r := range replays {
		fmt.Printf("  %-5d  %-10s  %-8s  %-8.1f  %-7d  %s\n",
			r.ID, r.Profile, r.Pilot, r.Score, len(r.FlapTicks), r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func verifyReplay(cfg config.FlappyConfig, r *storage.Replay) {
	res, err := flappy.Simulate(context.Background(), cfg, r.Profile, r.Seed, pilot.NewReplay(r.FlapTicks), r.Ticks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Replay %d: stored %.1f in %d ticks, replayed %.1f in %d ticks\n",
		r.ID, r.Score, r.Ticks, res.Score, res.Ticks)
	if res.Score != r.Score || res.Ticks != r.Ticks {
		fmt.Println("Mismatch: the config or simulation changed since recording.")
		os.Exit(1)
	}
	fmt.Println("OK")
}
