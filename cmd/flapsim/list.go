package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapsim/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List speed profiles and pilots",
	Long:  `Shows the configured speed profiles, level tiers and registered pilots.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	fmt.Println("Speed profiles:")
	fmt.Println()
	fmt.Printf("  %-10s  %-8s  %-6s  %s\n", "Name", "Rate", "Flap", "Angle")
	fmt.Printf("  %-10s  %-8s  %-6s  %s\n", "----", "----", "----", "-----")
	for _, name := range cfg.ProfileNames() {
		p := cfg.Profiles[name]
		marker := ""
		if name == cfg.Profile {
			marker = " (default)"
		}
		fmt.Printf("  %-10s  %-8s  %-6.1f  %.0f%s\n", name, fmt.Sprintf("%d Hz", p.TickRate), p.FlapAcceleration, p.FlapAngle, marker)
	}

	fmt.Println()
	fmt.Println("Level tiers:")
	fmt.Println()
	for i, t := range cfg.Levels.Tiers {
		floor := "safe floor"
		if t.LethalFloor {
			floor = "lethal floor"
		}
		extra := ""
		if t.Oscillates {
			extra = ", moving obstacles"
		}
		fmt.Printf("  %d  %-10s  from %-4.0f  %s%s\n", i, t.Name, float64(i)*cfg.Levels.ScoreStep, floor, extra)
	}

	pilots := registry.List()
	fmt.Println()
	fmt.Println("Pilots:")
	fmt.Println()

	maxIDLen := len("human")
	for _, p := range pilots {
		maxIDLen = max(maxIDLen, len(p.ID))
	}
	fmt.Printf("  %-*s  %s\n", maxIDLen, "human", "You")
	for _, p := range pilots {
		fmt.Printf("  %-*s  %s\n", maxIDLen, p.ID, p.Title)
	}

	fmt.Println()
	fmt.Println("Run 'flapsim play --profile <name> --pilot <id>' to start.")
}
