package flappy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func scorePair(x float64) Pair {
	return Pair{
		Top:    Obstacle{Role: RoleTop, X: x, Width: 20, Height: 100},
		Bottom: Obstacle{Role: RoleBottom, X: x, Y: 250, Width: 20, Height: 290},
	}
}

func TestUpdateScore(t *testing.T) {
	p := Player{X: 100}
	pairs := []Pair{scorePair(79), scorePair(80), scorePair(300)}

	assert.Equal(t, 1.0, UpdateScore(p, pairs), "only the pair whose trailing edge is behind the player")
	assert.True(t, pairs[0].Top.Completed)
	assert.True(t, pairs[0].Bottom.Completed)
	assert.False(t, pairs[1].Top.Completed, "trailing edge exactly at the player does not count")

	assert.Equal(t, 0.0, UpdateScore(p, pairs), "completed obstacles never score twice")

	pairs[1].Top.X, pairs[1].Bottom.X = 79.5, 79.5
	assert.Equal(t, 1.0, UpdateScore(p, pairs))
}

func TestUpdateScoreHalfPair(t *testing.T) {
	p := Player{X: 100}
	pairs := []Pair{scorePair(50)}
	pairs[0].Bottom.Completed = true

	assert.Equal(t, PointsPerObstacle, UpdateScore(p, pairs))
}
