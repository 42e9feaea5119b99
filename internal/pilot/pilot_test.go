package pilot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/flapsim/internal/config"
	"github.com/vovakirdan/flapsim/internal/flappy"
	"github.com/vovakirdan/flapsim/internal/registry"
)

// gapFrame is a frame with one pair whose gap spans [100, 250].
func gapFrame(y, vel float64) flappy.Frame {
	return flappy.Frame{
		Canvas: config.CanvasConfig{Width: 800, Height: 600, FloorHeight: 60},
		Player: flappy.PlayerPose{X: 374.5, Y: y, Width: 51, Height: 36, Vel: vel, Alive: true},
		Obstacles: []flappy.ObstacleView{
			{X: 500, Y: 0, Width: 20, Height: 100, Role: flappy.RoleTop},
			{X: 500, Y: 250, Width: 20, Height: 290, Role: flappy.RoleBottom},
		},
	}
}

func TestDefaultNetworkValid(t *testing.T) {
	n := DefaultNetwork()
	require.NoError(t, n.Validate())
	assert.Len(t, n.Hidden, 2)
	assert.Equal(t, 0.5, n.Threshold)
}

func TestAutopilotDecide(t *testing.T) {
	a := NewAutopilot(DefaultNetwork())

	tests := []struct {
		name string
		y    float64
		vel  float64
		want bool
	}{
		{"below the gap and falling", 400, 0.5, true},
		{"low in the gap and falling", 190, 0.3, true},
		{"high in the gap", 110, 0.5, false},
		{"low but already rising", 220, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Decide(gapFrame(tt.y, tt.vel)))
		})
	}
}

func TestAutopilotBeatsIdle(t *testing.T) {
	ctx := context.Background()
	cfg := config.DefaultFlappyConfig()

	var auto, idle float64
	for seed := int64(1); seed <= 10; seed++ {
		res, err := flappy.Simulate(ctx, cfg, "", seed, NewAutopilot(DefaultNetwork()), 50000)
		require.NoError(t, err)
		auto += res.Score

		res, err = flappy.Simulate(ctx, cfg, "", seed, Idle{}, 50000)
		require.NoError(t, err)
		idle += res.Score
	}

	assert.Equal(t, 0.0, idle)
	assert.Greater(t, auto, 10.0)
}

func TestObserve(t *testing.T) {
	in := Observe(gapFrame(214, 0.25))

	assert.InDelta(t, (500-425.5)/800.0, in[0], 1e-9)
	assert.InDelta(t, 0.0, in[1], 1e-9)
	assert.InDelta(t, 114/600.0, in[2], 1e-9)
	assert.Equal(t, 0.25, in[3])
}

func TestObserveWithoutGap(t *testing.T) {
	f := gapFrame(100, 0)
	f.Obstacles = nil

	in := Observe(f)
	assert.Equal(t, 0.0, in[0])
	assert.InDelta(t, (136-306)/600.0, in[1], 1e-9)
}

func TestParseNetworkErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no hidden", "output: {weights: []}\nthreshold: 0.5\n"},
		{"short hidden", "hidden: [{weights: [1, 2]}]\noutput: {weights: [1]}\nthreshold: 0.5\n"},
		{"output shape", "hidden: [{weights: [1, 2, 3, 4]}]\noutput: {weights: [1, 2]}\nthreshold: 0.5\n"},
		{"threshold", "hidden: [{weights: [1, 2, 3, 4]}]\noutput: {weights: [1]}\nthreshold: 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseNetwork([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidNetwork)
		})
	}

	_, err := ParseNetwork([]byte("hidden: ["))
	assert.Error(t, err)
}

func TestPredict(t *testing.T) {
	n := Network{
		Hidden:    []Neuron{{Weights: []float64{0, 0, 0, 0}}},
		Output:    Neuron{Weights: []float64{1}, Bias: 0},
		Threshold: 0.5,
	}
	assert.InDelta(t, 0.5, n.Predict([Inputs]float64{1, 2, 3, 4}), 1e-12)
}

func TestLoadNetwork(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.yaml")
	require.NoError(t, os.WriteFile(path, defaultWeights, 0o600))

	n, err := LoadNetwork(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultNetwork(), n)

	_, err = LoadNetwork(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPulse(t *testing.T) {
	p := NewPulse(40)
	assert.False(t, p.Decide(flappy.Frame{Tick: 0}))
	assert.True(t, p.Decide(flappy.Frame{Tick: 39}))
	assert.False(t, p.Decide(flappy.Frame{Tick: 40}))
	assert.True(t, p.Decide(flappy.Frame{Tick: 79}))

	assert.Equal(t, uint64(DefaultPulse), NewPulse(0).every)
}

func TestRegisteredPilots(t *testing.T) {
	for _, id := range []string{"auto", "pulse", "idle"} {
		p, err := registry.Create(id)
		require.NoError(t, err)
		assert.Equal(t, id, p.ID())
		assert.NotEmpty(t, p.Title())
	}
	assert.False(t, Idle{}.Decide(flappy.Frame{Tick: 99}))
}
