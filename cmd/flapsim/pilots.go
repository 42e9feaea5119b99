package main

import (
	"fmt"

	"github.com/vovakirdan/flapsim/internal/pilot"
	"github.com/vovakirdan/flapsim/internal/platform/tui"
	"github.com/vovakirdan/flapsim/internal/registry"
)

// resolvePilot returns the pilot for id, or nil for a human player.
// A weights file replaces the built-in network of the autopilot.
func resolvePilot(id, weights string) (registry.Pilot, error) {
	if id == "" || id == tui.HumanPilot {
		if weights != "" {
			return nil, fmt.Errorf("--weights needs --pilot auto")
		}
		return nil, nil
	}
	if weights != "" {
		if id != "auto" {
			return nil, fmt.Errorf("--weights only applies to the auto pilot, not %q", id)
		}
		n, err := pilot.LoadNetwork(weights)
		if err != nil {
			return nil, err
		}
		return pilot.NewAutopilot(n), nil
	}
	return registry.Create(id)
}
