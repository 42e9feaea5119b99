// Package tui provides the Bubble Tea integration for the simulator.
// It handles the terminal UI loop, input mapping, and session orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// defaultRedrawRate is used when no redraw rate is configured.
const defaultRedrawRate = 60

// TickMsg is sent to give the driver control and trigger a redraw.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
// The simulation runs on its own fixed step; this only sets how often the
// driver is pumped.
func tickCmd(rate int) tea.Cmd {
	if rate <= 0 {
		rate = defaultRedrawRate
	}
	interval := time.Second / time.Duration(rate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
