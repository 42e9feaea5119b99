package flappy

import (
	"github.com/vovakirdan/flapsim/internal/config"
	"github.com/vovakirdan/flapsim/internal/core"
)

// PlayerPose is the renderable part of the player.
type PlayerPose struct {
	X, Y          float64
	Width, Height float64
	Angle         float64
	Vel           float64
	Alive         bool
}

// ObstacleView is the renderable part of an obstacle.
type ObstacleView struct {
	X, Y        float64
	Width       float64
	Height      float64
	Role        Role
	Oscillating bool
}

// Frame is the read-only snapshot handed to renderers and pilots after a tick.
type Frame struct {
	Tick      uint64
	Player    PlayerPose
	Obstacles []ObstacleView // Pair order: top, bottom, top, ...
	Score     float64
	Best      float64
	Level     int
	Tier      config.Tier
	Phase     Phase
	Paused    bool
	GameOver  bool

	Canvas        config.CanvasConfig
	RestartButton core.Box
}

// Frame builds a snapshot of the current state.
func (s *Session) Frame() Frame {
	obstacles := make([]ObstacleView, 0, 2*len(s.gen.Pairs()))
	for _, o := range s.gen.Obstacles() {
		obstacles = append(obstacles, ObstacleView{
			X:           o.X,
			Y:           o.Y,
			Width:       o.Width,
			Height:      o.Height,
			Role:        o.Role,
			Oscillating: o.Oscillating,
		})
	}

	return Frame{
		Tick: s.frame,
		Player: PlayerPose{
			X:      s.player.X,
			Y:      s.player.Y,
			Width:  s.player.Width,
			Height: s.player.Height,
			Angle:  s.player.Angle,
			Vel:    s.player.Vel,
			Alive:  !s.player.Dead,
		},
		Obstacles:     obstacles,
		Score:         s.score,
		Best:          s.best,
		Level:         s.Level(),
		Tier:          s.tier(),
		Phase:         s.phase,
		Paused:        s.phase == PhasePaused,
		GameOver:      s.phase == PhaseGameOver,
		Canvas:        s.cfg.Canvas,
		RestartButton: s.restartButton,
	}
}

// NextGap returns the gap of the nearest pair whose trailing edge is still
// ahead of the player's leading edge. ok is false when there is none.
func (f Frame) NextGap() (x, width, top, bottom float64, ok bool) {
	lead := f.Player.X
	for i := 0; i+1 < len(f.Obstacles); i += 2 {
		t, b := f.Obstacles[i], f.Obstacles[i+1]
		if t.X+t.Width < lead {
			continue
		}
		return t.X, t.Width, t.Y + t.Height, b.Y, true
	}
	return 0, 0, 0, 0, false
}
