package flappy

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/flapsim/internal/config"
)

func newTestSession(t *testing.T, seed int64) *Session {
	t.Helper()
	s, err := NewSession(config.DefaultFlappyConfig(), "", seed, 0)
	require.NoError(t, err)
	return s
}

func eventKinds(events []Event) []EventKind {
	out := make([]EventKind, 0, len(events))
	for _, e := range events {
		out = append(out, e.Kind)
	}
	return out
}

// placeBehind moves the front pair just behind the player so the next tick scores it.
func placeBehind(s *Session) {
	x := s.player.X - 30
	s.gen.pairs[0].Top.X = x
	s.gen.pairs[0].Bottom.X = x
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t, 1)

	assert.Equal(t, PhaseRunning, s.Phase())
	assert.Equal(t, uint64(0), s.Tick())
	assert.Equal(t, 0.0, s.CurrentScore())
	assert.Equal(t, 0, s.Level())
	assert.Equal(t, "classic", s.Profile())
	assert.Len(t, s.Pairs(), 2)
	assert.Equal(t, 374.5, s.Player().X)
	assert.Equal(t, 282.0, s.Player().Y)
	assert.False(t, s.IsGameOver())
	assert.False(t, s.IsPaused())
}

func TestNewSessionErrors(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Obstacles.MinGapFactor = 20
	_, err := NewSession(cfg, "", 1, 0)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = NewSession(config.DefaultFlappyConfig(), "warp", 1, 0)
	assert.Error(t, err)
}

func TestSessionScores(t *testing.T) {
	s := newTestSession(t, 1)
	placeBehind(s)

	res := s.Step(false)

	assert.Equal(t, 1.0, s.CurrentScore())
	assert.Equal(t, []EventKind{EventScored}, eventKinds(res.Events))
	assert.Equal(t, PhaseRunning, res.Phase)

	s.Step(false)
	assert.Equal(t, 1.0, s.CurrentScore(), "a completed pair never scores again")
}

func TestSessionLevelUp(t *testing.T) {
	s := newTestSession(t, 1)
	s.score = 9
	placeBehind(s)

	res := s.Step(false)

	assert.Equal(t, 1, s.Level())
	assert.Equal(t, []EventKind{EventScored, EventLevelUp}, eventKinds(res.Events))
	assert.Equal(t, 1, res.Events[1].Level)
}

func TestSessionFloorRestsAtTierZero(t *testing.T) {
	s := newTestSession(t, 1)
	for i := 0; i < 200; i++ {
		s.Step(false)
	}

	assert.True(t, s.Player().OnFloor)
	assert.False(t, s.Player().Dead)
	assert.Equal(t, PhaseRunning, s.Phase())
}

func TestSessionLethalFloor(t *testing.T) {
	s := newTestSession(t, 1)
	s.score = 10
	s.player.Y = s.bounds.FloorLine(s.player.Height)

	res := s.Step(false)

	assert.Equal(t, PhaseGameOver, res.Phase)
	assert.Equal(t, CauseFloor, s.Cause())
	assert.Equal(t, []EventKind{EventDied, EventGameOver}, eventKinds(res.Events))
	assert.Equal(t, 10.0, s.BestScore())
}

func TestSessionDyingGracePeriod(t *testing.T) {
	s := newTestSession(t, 1)
	s.gen.pairs[0].Top.X = 380
	s.gen.pairs[0].Top.Height = 300
	startX := s.gen.pairs[1].Top.X

	res := s.Step(false)
	require.Equal(t, PhaseDying, res.Phase)
	assert.Equal(t, []EventKind{EventDied}, eventKinds(res.Events))
	assert.Equal(t, CauseObstacle, s.Cause())
	assert.True(t, s.Player().Dead)

	prevY := s.Player().Y
	s.Step(true)
	assert.Greater(t, s.Player().Y, prevY, "flap is detached while dying")

	ticks := 2
	for !s.IsGameOver() && ticks < 1000 {
		s.Step(true)
		ticks++
	}

	require.True(t, s.IsGameOver())
	assert.True(t, s.Player().OnFloor)
	assert.Equal(t, 0.0, s.CurrentScore())
	assert.Less(t, s.gen.pairs[1].Top.X, startX, "obstacles keep scrolling while dying")

	// GameOver is terminal until restart.
	tick := s.Tick()
	res = s.Step(true)
	assert.Equal(t, PhaseGameOver, res.Phase)
	assert.Equal(t, tick, s.Tick())
}

func TestSessionNoScoreWhileDying(t *testing.T) {
	s := newTestSession(t, 1)
	s.gen.pairs[0].Top.X = 380
	s.gen.pairs[0].Top.Height = 300
	s.Step(false)
	require.Equal(t, PhaseDying, s.Phase())

	placeBehind(s)
	s.Step(false)
	assert.Equal(t, 0.0, s.CurrentScore())
}

func TestSessionOscillatingTier(t *testing.T) {
	s := newTestSession(t, 1)
	s.score = 20
	s.Step(false)

	for _, o := range s.gen.Obstacles() {
		assert.True(t, o.Oscillating)
	}

	s.score = 0
	s.Step(false)
	for _, o := range s.gen.Obstacles() {
		assert.False(t, o.Oscillating)
	}
}

func TestSessionWithoutInputEnds(t *testing.T) {
	s := newTestSession(t, 3)
	for i := 0; i < 2000 && !s.IsGameOver(); i++ {
		s.Step(false)
	}

	require.True(t, s.IsGameOver())
	assert.Equal(t, CauseObstacle, s.Cause())
	assert.Equal(t, 0.0, s.BestScore())
}

func TestSessionBestScore(t *testing.T) {
	s, err := NewSession(config.DefaultFlappyConfig(), "", 1, 5)
	require.NoError(t, err)
	s.score = 3
	s.die(CauseObstacle)
	s.gameOver()
	assert.Equal(t, 5.0, s.BestScore(), "lower scores keep the previous best")

	s, err = NewSession(config.DefaultFlappyConfig(), "", 1, 5)
	require.NoError(t, err)
	s.score = 7.5
	s.die(CauseObstacle)
	s.gameOver()
	assert.Equal(t, 7.5, s.BestScore())
}

func TestSessionPause(t *testing.T) {
	s := newTestSession(t, 1)
	s.Step(false)

	assert.True(t, s.TogglePause())
	assert.True(t, s.IsPaused())

	before := s.Frame()
	res := s.Step(true)
	assert.Equal(t, PhasePaused, res.Phase)
	assert.Equal(t, []EventKind{EventPaused}, eventKinds(res.Events))
	assert.Equal(t, before, s.Frame(), "paused sessions are frozen")

	assert.True(t, s.TogglePause())
	assert.Equal(t, PhaseRunning, s.Phase())
	s.Step(false)
	assert.Equal(t, uint64(2), s.Tick())
}

func TestSessionPauseDisabled(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Pausing = false
	s, err := NewSession(cfg, "", 1, 0)
	require.NoError(t, err)

	assert.False(t, s.TogglePause())
	assert.Equal(t, PhaseRunning, s.Phase())
}

func TestSessionPauseIgnoredWhenOver(t *testing.T) {
	s := newTestSession(t, 1)
	s.die(CauseObstacle)
	s.gameOver()

	assert.False(t, s.TogglePause())
	assert.Equal(t, PhaseGameOver, s.Phase())
}

func TestSessionHitRestart(t *testing.T) {
	s := newTestSession(t, 1)

	assert.True(t, s.HitRestart(400, 355))
	assert.True(t, s.HitRestart(325, 330), "edges are inside")
	assert.False(t, s.HitRestart(0, 0))
	assert.False(t, s.HitRestart(400, 381))
}

func TestSessionDeterministic(t *testing.T) {
	run := func() Frame {
		s := newTestSession(t, 99)
		for i := 0; i < 3000 && !s.IsGameOver(); i++ {
			s.Step(i%28 == 0)
		}
		return s.Frame()
	}
	assert.Equal(t, run(), run())
}

func TestSessionInvariants(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	floor := cfg.Canvas.Height - cfg.Player.Height - cfg.Canvas.FloorHeight

	for seed := int64(1); seed <= 20; seed++ {
		s := newTestSession(t, seed)
		rng := rand.New(rand.NewSource(seed))
		var score float64

		for i := 0; i < 5000 && !s.IsGameOver(); i++ {
			s.Step(rng.Intn(25) == 0)

			f := s.Frame()
			require.NotEmpty(t, f.Obstacles)
			require.Zero(t, len(f.Obstacles)%2, "seed %d tick %d", seed, i)
			require.GreaterOrEqual(t, f.Player.Y, 0.0)
			require.LessOrEqual(t, f.Player.Y, floor)
			require.GreaterOrEqual(t, f.Score, score, "score never decreases")
			require.Equal(t, f.Score*2, math.Trunc(f.Score*2), "score moves in half points")
			score = f.Score

			for _, p := range s.Pairs() {
				require.Equal(t, cfg.Canvas.Height, p.TopHeight+p.Gap+p.BottomHeight+cfg.Canvas.FloorHeight)
			}
		}
	}
}

func TestFrame(t *testing.T) {
	s := newTestSession(t, 1)
	f := s.Frame()

	require.Len(t, f.Obstacles, 4)
	assert.Equal(t, RoleTop, f.Obstacles[0].Role)
	assert.Equal(t, RoleBottom, f.Obstacles[1].Role)
	assert.Equal(t, 750.0, f.Obstacles[0].X)
	assert.Equal(t, 1000.0, f.Obstacles[2].X)
	assert.True(t, f.Player.Alive)
	assert.Equal(t, "meadow", f.Tier.Name)
	assert.Equal(t, 800.0, f.Canvas.Width)
	assert.False(t, f.Paused)
	assert.False(t, f.GameOver)

	x, w, top, bottom, ok := f.NextGap()
	require.True(t, ok)
	assert.Equal(t, 750.0, x)
	assert.Equal(t, 20.0, w)
	assert.Equal(t, s.Pairs()[0].TopHeight, top)
	assert.Equal(t, s.Pairs()[0].TopHeight+s.Pairs()[0].Gap, bottom)

	placeBehind(s)
	x, _, _, _, ok = s.Frame().NextGap()
	require.True(t, ok)
	assert.Equal(t, 1000.0, x, "passed pairs are skipped")
}
