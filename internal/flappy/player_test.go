package flappy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/flapsim/internal/config"
)

func classicPhysics(t *testing.T) (Physics, Bounds) {
	t.Helper()
	cfg := config.DefaultFlappyConfig()
	speed, err := cfg.SpeedProfile("classic")
	require.NoError(t, err)
	return NewPhysics(cfg.Physics, speed), Bounds{CanvasHeight: 600, FloorHeight: 60}
}

func TestAdvanceFlapTick(t *testing.T) {
	ph, b := classicPhysics(t)
	p := Player{X: 100, Y: 300, Width: 51, Height: 36}

	Advance(&p, CmdFlap, ph, b)

	assert.InDelta(t, -0.11825, p.Vel, 1e-9)
	assert.InDelta(t, 300-0.0985416666, p.Y, 1e-6)
	assert.InDelta(t, -23.25, p.Acc, 1e-9, "acceleration relaxes by the decay")
	assert.Equal(t, -20.0, p.Angle)

	Advance(&p, CmdNone, ph, b)
	assert.InDelta(t, -22.5, p.Acc, 1e-9)
}

func TestAdvanceDecayNeverPositive(t *testing.T) {
	ph, b := classicPhysics(t)
	p := Player{Y: 200, Width: 51, Height: 36, Acc: -0.5}

	Advance(&p, CmdNone, ph, b)
	assert.Equal(t, 0.0, p.Acc)
}

func TestAdvanceFlapZeroesDownwardVelocity(t *testing.T) {
	ph, b := classicPhysics(t)
	p := Player{Y: 200, Width: 51, Height: 36, Vel: 3}

	Advance(&p, CmdFlap, ph, b)
	assert.Less(t, p.Vel, 0.0)
}

func TestAdvanceFloorContact(t *testing.T) {
	ph, b := classicPhysics(t)
	p := Player{Y: 503.9, Vel: 5, Angle: 40, Width: 51, Height: 36}

	Advance(&p, CmdNone, ph, b)

	assert.Equal(t, 504.0, p.Y)
	assert.Equal(t, 0.0, p.Vel)
	assert.Equal(t, 0.0, p.Angle)
	assert.True(t, p.OnFloor)

	p.Y = 300
	Advance(&p, CmdNone, ph, b)
	assert.False(t, p.OnFloor)
}

func TestAdvanceCeilingContact(t *testing.T) {
	ph, b := classicPhysics(t)
	p := Player{Y: 0.01, Vel: -5, Width: 51, Height: 36}

	Advance(&p, CmdNone, ph, b)

	assert.Equal(t, 0.0, p.Y)
	assert.Equal(t, 0.0, p.Vel)
}

func TestAdvanceRotationCapped(t *testing.T) {
	ph, b := classicPhysics(t)
	p := Player{Y: 0, Vel: 0.1, Angle: 89.5, Width: 51, Height: 36}

	Advance(&p, CmdNone, ph, b)
	assert.Equal(t, 90.0, p.Angle)

	Advance(&p, CmdNone, ph, b)
	assert.Equal(t, 90.0, p.Angle)
}

func TestAdvanceStaysInBounds(t *testing.T) {
	ph, b := classicPhysics(t)
	rng := rand.New(rand.NewSource(7))
	p := Player{Y: 282, Width: 51, Height: 36}
	floor := b.FloorLine(p.Height)

	for i := 0; i < 20000; i++ {
		cmd := CmdNone
		if rng.Intn(4) == 0 {
			cmd = CmdFlap
		}
		Advance(&p, cmd, ph, b)

		require.GreaterOrEqual(t, p.Y, 0.0, "tick %d", i)
		require.LessOrEqual(t, p.Y, floor, "tick %d", i)
		require.GreaterOrEqual(t, p.Acc, ph.FlapAcceleration*ph.FlapClampScale, "tick %d", i)
	}
}
