package flappy

import (
	"math"

	"github.com/vovakirdan/flapsim/internal/config"
	"github.com/vovakirdan/flapsim/internal/core"
)

// Command is an input consumed by a tick.
type Command int

const (
	CmdNone Command = iota
	CmdFlap
)

// Player is the controllable entity. X never changes after setup.
type Player struct {
	X, Y          float64
	Vel           float64
	Acc           float64
	Angle         float64 // Degrees, positive = nose down
	Width, Height float64
	Dead          bool
	OnFloor       bool
}

// Box returns the player's collision box. correction narrows the width to
// match the sprite silhouette and is usually negative.
func (p Player) Box(correction float64) core.Box {
	return core.NewBox(p.X, p.Y, p.Width+correction, p.Height)
}

// Physics holds the integration constants for one speed profile.
type Physics struct {
	Gravity          float64
	FlapAcceleration float64
	FlapClampScale   float64
	FlapAngle        float64
	Decay            float64
	TickDelta        float64
	PositionScale    float64
	RotationStep     float64
	MaxAngle         float64
}

// NewPhysics combines the shared physics constants with a speed profile.
func NewPhysics(ph config.PhysicsConfig, p config.SpeedProfile) Physics {
	return Physics{
		Gravity:          ph.Gravity,
		FlapAcceleration: p.FlapAcceleration,
		FlapClampScale:   ph.FlapClampScale,
		FlapAngle:        p.FlapAngle,
		Decay:            ph.Decay,
		TickDelta:        p.TickDelta(),
		PositionScale:    ph.PositionScale,
		RotationStep:     ph.RotationStep,
		MaxAngle:         ph.MaxAngle,
	}
}

// Bounds is the vertical extent the player is confined to.
type Bounds struct {
	CanvasHeight float64
	FloorHeight  float64
}

// FloorLine returns the highest y the player's top edge may reach.
func (b Bounds) FloorLine(playerHeight float64) float64 {
	return b.CanvasHeight - playerHeight - b.FloorHeight
}

// Advance integrates the player's vertical motion for one tick.
func Advance(p *Player, cmd Command, ph Physics, b Bounds) {
	if cmd == CmdFlap {
		p.Acc = ph.FlapAcceleration
		if p.Vel > 0 {
			p.Vel = 0
		}
		p.Angle = ph.FlapAngle
	}

	// Repeated flaps must not stack into runaway upward acceleration.
	p.Acc = math.Max(p.Acc, ph.FlapAcceleration*ph.FlapClampScale)
	p.Vel += (p.Acc + ph.Gravity) * ph.TickDelta
	p.Y += p.Vel * ph.TickDelta * ph.PositionScale
	p.Acc = math.Min(0, p.Acc+ph.Decay)

	if p.Vel > 0 && p.Angle < ph.MaxAngle {
		p.Angle = math.Min(ph.MaxAngle, p.Angle+ph.RotationStep)
	}

	p.OnFloor = hitFloor(p, b)
	hitCeiling(p)
}

func hitFloor(p *Player, b Bounds) bool {
	floor := b.FloorLine(p.Height)
	if p.Y >= floor {
		p.Y = floor
		p.Vel = 0
		p.Angle = 0
		return true
	}
	return false
}

func hitCeiling(p *Player) bool {
	if p.Y <= 0 {
		p.Y = 0
		p.Vel = 0
		return true
	}
	return false
}
