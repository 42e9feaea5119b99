package flappy

import (
	"math"

	"github.com/vovakirdan/flapsim/internal/config"
)

// Levels derives the difficulty tier from the score.
type Levels struct {
	step  float64
	tiers []config.Tier
}

// NewLevels creates a level table from the config.
func NewLevels(cfg config.LevelConfig) Levels {
	return Levels{step: cfg.ScoreStep, tiers: cfg.Tiers}
}

// LevelFor returns floor(score / step).
func (l Levels) LevelFor(score float64) int {
	return int(math.Floor(score / l.step))
}

// Tier returns the constants for a level; levels past the table reuse the last tier.
func (l Levels) Tier(level int) config.Tier {
	if level < 0 {
		level = 0
	}
	if level >= len(l.tiers) {
		level = len(l.tiers) - 1
	}
	return l.tiers[level]
}

// TierFor returns the tier for a score.
func (l Levels) TierFor(score float64) config.Tier {
	return l.Tier(l.LevelFor(score))
}
