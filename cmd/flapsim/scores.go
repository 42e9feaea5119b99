package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapsim/internal/storage"
)

var (
	flagScoresLimit int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [profile]",
	Short: "Show high scores",
	Long: `Display the top scores for a speed profile, or across all profiles when
none is given, followed by per-profile statistics.

Examples:
  flapsim scores
  flapsim scores classic
  flapsim scores turbo --limit 25
  flapsim scores classic --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the scores of the given profile")
}

func runScores(_ *cobra.Command, args []string) {
	profile := ""
	if len(args) == 1 {
		profile = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if profile == "" {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a profile")
			os.Exit(1)
		}
		if err := store.ClearScores(profile); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared scores for %s\n", profile)
		return
	}

	scores, err := store.TopScores(profile, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	title := "all profiles"
	if profile != "" {
		title = profile
	}
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flapsim play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-10s  %-8s  %s\n", "Rank", "Score", "Level", "Profile", "Pilot", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-10s  %-8s  %s\n", "----", "-----", "-----", "-------", "-----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-8.1f  %-5d  %-10s  %-8s  %s\n",
			i+1, e.Score, e.Level, e.Profile, e.Pilot, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	printStats(store, profile)
}

func printStats(store *storage.Store, profile string) {
	if profile != "" {
		s, err := store.GetProfileStats(profile)
		if err == nil {
			fmt.Printf("Best: %.1f  Sessions: %d  Average: %.2f\n", s.HighScore, s.Sessions, s.AvgScore)
		}
		return
	}

	all, err := store.GetAllProfileStats()
	if err != nil {
		return
	}
	for _, name := range sortedKeys(all) {
		s := all[name]
		fmt.Printf("%-10s  best %.1f  sessions %d  average %.2f\n", name, s.HighScore, s.Sessions, s.AvgScore)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
