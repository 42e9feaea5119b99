package flappy

import (
	"context"

	"github.com/vovakirdan/flapsim/internal/config"
)

// SimResult summarizes a headless run.
type SimResult struct {
	Seed     int64
	Profile  string
	Score    float64
	Level    int
	Ticks    uint64
	Cause    DeathCause
	GameOver bool
}

// Simulate runs one session as fast as possible with c at the controls until
// it ends or maxTicks have run (0 means no limit). A nil controller never flaps.
func Simulate(ctx context.Context, cfg config.FlappyConfig, profile string, seed int64,
	c Controller, maxTicks uint64, opts ...Option) (SimResult, error) {
	if c != nil {
		opts = append(opts, WithController(c))
	}
	d, err := NewDriver(cfg, profile, seed, opts...)
	if err != nil {
		return SimResult{}, err
	}

	for maxTicks == 0 || d.Session().Tick() < maxTicks {
		if d.Session().Tick()%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return resultOf(d.Session()), err
			}
		}
		if !d.Step() {
			break
		}
	}
	return resultOf(d.Session()), nil
}

func resultOf(s *Session) SimResult {
	return SimResult{
		Seed:     s.Seed(),
		Profile:  s.Profile(),
		Score:    s.CurrentScore(),
		Level:    s.Level(),
		Ticks:    s.Tick(),
		Cause:    s.Cause(),
		GameOver: s.IsGameOver(),
	}
}
