package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapsim/internal/flappy"
	"github.com/vovakirdan/flapsim/internal/pilot"
	"github.com/vovakirdan/flapsim/internal/storage"
)

var (
	flagSimProfile  string
	flagSimPilot    string
	flagSimWeights  string
	flagSimRuns     int
	flagSimMaxTicks uint64
	flagSimSave     bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless sessions with a pilot",
	Long: `Run sessions without a terminal UI, as fast as the CPU allows, and print
one line per run plus a summary. Runs use consecutive seeds starting at
--seed (or a time-based seed).

Examples:
  flapsim sim
  flapsim sim --pilot pulse --runs 5
  flapsim sim --pilot auto --weights ./my-net.yaml --runs 100
  flapsim sim --seed 42 --max-ticks 100000 --save`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimProfile, "profile", "", "Speed profile (default from config)")
	simCmd.Flags().StringVar(&flagSimPilot, "pilot", "auto", "Pilot ID, see 'flapsim list'")
	simCmd.Flags().StringVar(&flagSimWeights, "weights", "", "Network weights YAML for the auto pilot")
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 10, "Number of sessions")
	simCmd.Flags().Uint64Var(&flagSimMaxTicks, "max-ticks", 0, "Stop each run after this many ticks (0 = until game over)")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Store scores and replays in the database")
}

func runSim(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	logger := newLogger(os.Stderr)

	p, err := resolvePilot(flagSimPilot, flagSimWeights)
	if err != nil {
		return fmt.Errorf("cannot create pilot %q: %w", flagSimPilot, err)
	}
	if p == nil {
		return errors.New("headless runs need a pilot, use --pilot auto")
	}

	var store *storage.Store
	if flagSimSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("cannot open scores database: %w", err)
		}
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := flagSeed
	if start == 0 {
		start = flappy.TimeSeeder()
	}

	fmt.Printf("  %-20s  %-8s  %-5s  %-9s  %s\n", "Seed", "Score", "Level", "Ticks", "End")
	fmt.Printf("  %-20s  %-8s  %-5s  %-9s  %s\n", "----", "-----", "-----", "-----", "---")

	var total, best float64
	runs := 0
	for i := range flagSimRuns {
		rec := pilot.NewRecorder()
		res, err := flappy.Simulate(ctx, cfg, flagSimProfile, start+int64(i), p, flagSimMaxTicks,
			flappy.WithRecorder(rec), flappy.WithLogger(logger.WithPrefix("sim")))
		if errors.Is(err, context.Canceled) {
			logger.Warn("interrupted", "completed", runs)
			break
		}
		if err != nil {
			return fmt.Errorf("run with seed %d failed: %w", start+int64(i), err)
		}

		end := res.Cause.String()
		if !res.GameOver {
			end = "tick limit"
		}
		fmt.Printf("  %-20d  %-8.1f  %-5d  %-9d  %s\n", res.Seed, res.Score, res.Level, res.Ticks, end)

		runs++
		total += res.Score
		best = max(best, res.Score)

		if store != nil && res.Score > 0 {
			saveSimResult(logger, store, p.ID(), res, rec)
		}
	}

	if runs == 0 {
		return nil
	}
	fmt.Println()
	fmt.Printf("Pilot %s: %d runs, average %.2f, best %.1f\n", p.ID(), runs, total/float64(runs), best)
	return nil
}

func saveSimResult(logger *log.Logger, store *storage.Store, pilotID string, res flappy.SimResult, rec *pilot.Recorder) {
	_, err := store.SaveScore(storage.ScoreEntry{
		Profile: res.Profile,
		Pilot:   pilotID,
		Score:   res.Score,
		Level:   res.Level,
		Ticks:   res.Ticks,
		Seed:    res.Seed,
	})
	if err != nil {
		logger.Warn("saving score failed", "seed", res.Seed, "err", err)
		return
	}
	id, err := store.SaveReplay(storage.Replay{
		Profile:   res.Profile,
		Pilot:     pilotID,
		Seed:      res.Seed,
		Score:     res.Score,
		Ticks:     res.Ticks,
		FlapTicks: rec.Ticks(),
	})
	if err != nil {
		logger.Warn("saving replay failed", "seed", res.Seed, "err", err)
		return
	}
	logger.Debug("replay saved", "id", id, "seed", res.Seed)
}
