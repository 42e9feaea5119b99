// Package pilot provides programmatic controllers that produce flap
// commands from frame snapshots, plus flap recording for replays.
package pilot

import (
	"github.com/vovakirdan/flapsim/internal/flappy"
	"github.com/vovakirdan/flapsim/internal/registry"
)

// DefaultPulse is the pulse pilot's default flap period in ticks.
const DefaultPulse = 40

func init() {
	registry.Register("auto", func() registry.Pilot { return NewAutopilot(DefaultNetwork()) })
	registry.Register("pulse", func() registry.Pilot { return NewPulse(DefaultPulse) })
	registry.Register("idle", func() registry.Pilot { return Idle{} })
}

// Autopilot flaps whenever its network's output crosses the threshold.
type Autopilot struct {
	net Network
}

// NewAutopilot creates an autopilot from a network.
func NewAutopilot(n Network) *Autopilot {
	return &Autopilot{net: n}
}

// ID returns the pilot's registry key.
func (a *Autopilot) ID() string {
	return "auto"
}

// Title returns the display name.
func (a *Autopilot) Title() string {
	return "Neural autopilot"
}

// Reset is a no-op; the network keeps no per-session state.
func (a *Autopilot) Reset(int64) {}

// Decide runs the network on the frame.
func (a *Autopilot) Decide(f flappy.Frame) bool {
	return a.net.Predict(Observe(f)) > a.net.Threshold
}

// Pulse flaps on a fixed period regardless of what it sees.
type Pulse struct {
	every uint64
}

// NewPulse creates a pulse pilot flapping every n ticks.
func NewPulse(n uint64) *Pulse {
	if n == 0 {
		n = DefaultPulse
	}
	return &Pulse{every: n}
}

// ID returns the pilot's registry key.
func (p *Pulse) ID() string {
	return "pulse"
}

// Title returns the display name.
func (p *Pulse) Title() string {
	return "Metronome"
}

// Reset is a no-op; the period keeps no per-session state.
func (p *Pulse) Reset(int64) {}

// Decide flaps when the coming tick is a multiple of the period.
func (p *Pulse) Decide(f flappy.Frame) bool {
	return (f.Tick+1)%p.every == 0
}

// Idle never flaps.
type Idle struct{}

// ID returns the pilot's registry key.
func (Idle) ID() string {
	return "idle"
}

// Title returns the display name.
func (Idle) Title() string {
	return "Idle"
}

// Reset is a no-op; it keeps no per-session state.
func (Idle) Reset(int64) {}

// Decide always returns false.
func (Idle) Decide(flappy.Frame) bool {
	return false
}
