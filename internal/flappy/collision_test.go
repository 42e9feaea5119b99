package flappy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollides(t *testing.T) {
	// Hitbox is [100, 147] x [200, 236] after the -4 correction.
	p := Player{X: 100, Y: 200, Width: 51, Height: 36}

	tests := []struct {
		name string
		o    Obstacle
		want bool
	}{
		{"overlapping", Obstacle{X: 120, Y: 0, Width: 20, Height: 210}, true},
		{"touching left edge", Obstacle{X: 147, Y: 0, Width: 20, Height: 300}, true},
		{"inside the correction", Obstacle{X: 148, Y: 0, Width: 20, Height: 300}, false},
		{"touching right edge", Obstacle{X: 80, Y: 0, Width: 20, Height: 300}, true},
		{"left of player", Obstacle{X: 79, Y: 0, Width: 20, Height: 300}, false},
		{"touching from above", Obstacle{X: 120, Y: 0, Width: 20, Height: 200}, true},
		{"above", Obstacle{X: 120, Y: 0, Width: 20, Height: 199.5}, false},
		{"touching from below", Obstacle{X: 120, Y: 236, Width: 20, Height: 100}, true},
		{"below", Obstacle{X: 120, Y: 236.5, Width: 20, Height: 100}, false},
		{"zero height on the floor line", Obstacle{X: 120, Y: 236, Width: 20, Height: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Collides(p, tt.o, -4))
		})
	}
}

func TestDetectCollision(t *testing.T) {
	p := Player{X: 100, Y: 200, Width: 51, Height: 36}
	pairs := []Pair{
		{
			Top:    Obstacle{Role: RoleTop, X: 400, Width: 20, Height: 100},
			Bottom: Obstacle{Role: RoleBottom, X: 400, Y: 250, Width: 20, Height: 290},
		},
		{
			Top:    Obstacle{Role: RoleTop, X: 120, Width: 20, Height: 100},
			Bottom: Obstacle{Role: RoleBottom, X: 120, Y: 230, Width: 20, Height: 310},
		},
	}

	assert.True(t, DetectCollision(p, pairs, -4))

	p.Dead = true
	assert.False(t, DetectCollision(p, pairs, -4), "dead players are ignored")

	p.Dead = false
	pairs[1].Bottom.Y = 240
	assert.False(t, DetectCollision(p, pairs, -4))
}
