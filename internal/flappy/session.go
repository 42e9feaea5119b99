// Package flappy implements the side-scrolling obstacle-avoidance simulation:
// player physics, obstacle generation, collision, scoring, level progression
// and the session state machine. It performs no drawing and no I/O.
package flappy

import (
	"github.com/vovakirdan/flapsim/internal/config"
	"github.com/vovakirdan/flapsim/internal/core"
)

// Session is the complete mutable state of one game. Every operation goes
// through it; restarting means building a new Session.
type Session struct {
	cfg           config.FlappyConfig
	profile       string
	physics       Physics
	bounds        Bounds
	levels        Levels
	correction    float64
	restartButton core.Box

	player Player
	gen    *Generator
	seed   int64
	frame  uint64
	score  float64
	best   float64
	phase  Phase
	cause  DeathCause
	events []Event
}

// NewSession validates the config and sets up a running session.
// best carries the best score over from previous sessions.
func NewSession(cfg config.FlappyConfig, profile string, seed int64, best float64) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	speed, err := cfg.SpeedProfile(profile)
	if err != nil {
		return nil, err
	}
	if profile == "" {
		profile = cfg.Profile
	}

	s := &Session{
		cfg:        cfg,
		profile:    profile,
		physics:    NewPhysics(cfg.Physics, speed),
		bounds:     Bounds{CanvasHeight: cfg.Canvas.Height, FloorHeight: cfg.Canvas.FloorHeight},
		levels:     NewLevels(cfg.Levels),
		correction: cfg.Physics.HitboxCorrection,
		restartButton: core.NewBox(
			cfg.RestartButton.X, cfg.RestartButton.Y,
			cfg.RestartButton.Width, cfg.RestartButton.Height,
		),
		seed:  seed,
		best:  best,
		phase: PhaseSetup,
	}
	s.setup()
	return s, nil
}

// setup places the player, pre-seeds obstacles and starts running.
func (s *Session) setup() {
	s.player = Player{
		X:      s.cfg.PlayerX(),
		Y:      (s.cfg.Canvas.Height - s.cfg.Player.Height) / 2,
		Width:  s.cfg.Player.Width,
		Height: s.cfg.Player.Height,
	}
	s.gen = NewGenerator(NewGeneratorConfig(s.cfg), s.seed)
	for _, x := range s.cfg.Obstacles.PreseedX {
		s.gen.SpawnPair(x)
	}
	s.phase = PhaseRunning
}

// Step runs one tick: collision, scoring, obstacle maintenance, physics and
// state evaluation, in that order. flap is ignored unless the player is alive.
// Steps outside Running and Dying change nothing.
func (s *Session) Step(flap bool) StepResult {
	if !s.phase.Ticking() {
		return StepResult{Phase: s.phase, Events: s.drain()}
	}
	s.frame++

	if DetectCollision(s.player, s.gen.Pairs(), s.correction) {
		s.die(CauseObstacle)
	}

	if !s.player.Dead {
		before := s.Level()
		if gained := UpdateScore(s.player, s.gen.Pairs()); gained > 0 {
			s.score += gained
			s.emit(EventScored)
			if s.Level() != before {
				s.emit(EventLevelUp)
			}
		}
	}

	s.maintainObstacles()

	cmd := CmdNone
	if flap && !s.player.Dead {
		cmd = CmdFlap
	}
	Advance(&s.player, cmd, s.physics, s.bounds)

	s.evaluate()
	return StepResult{Phase: s.phase, Events: s.drain()}
}

func (s *Session) maintainObstacles() {
	if s.frame%uint64(s.cfg.Obstacles.Spacing) == 0 {
		s.gen.SpawnPair(s.cfg.Obstacles.SpawnX)
	}
	s.gen.Advance()
	s.gen.Retire()
	s.gen.SetOscillating(s.tier().Oscillates)
	s.gen.Oscillate()
}

func (s *Session) emit(kind EventKind) {
	s.events = append(s.events, Event{
		Kind:  kind,
		Tick:  s.frame,
		Score: s.score,
		Level: s.Level(),
		Cause: s.cause,
	})
}

// drain returns and clears the pending events.
func (s *Session) drain() []Event {
	if len(s.events) == 0 {
		return nil
	}
	out := s.events
	s.events = nil
	return out
}

// CurrentScore returns the score of this session.
func (s *Session) CurrentScore() float64 {
	return s.score
}

// BestScore returns the best score including this session once it has ended.
func (s *Session) BestScore() float64 {
	return s.best
}

// IsGameOver reports whether the session has ended.
func (s *Session) IsGameOver() bool {
	return s.phase == PhaseGameOver
}

// IsPaused reports whether the session is paused.
func (s *Session) IsPaused() bool {
	return s.phase == PhasePaused
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Level returns the current level index. It is always derived from the score.
func (s *Session) Level() int {
	return s.levels.LevelFor(s.score)
}

func (s *Session) tier() config.Tier {
	return s.levels.TierFor(s.score)
}

// Tick returns the number of ticks run since setup.
func (s *Session) Tick() uint64 {
	return s.frame
}

// Seed returns the RNG seed the session was set up with.
func (s *Session) Seed() int64 {
	return s.seed
}

// Profile returns the speed profile name.
func (s *Session) Profile() string {
	return s.profile
}

// Cause returns what killed the player, if anything.
func (s *Session) Cause() DeathCause {
	return s.cause
}

// Player returns a copy of the player entity.
func (s *Session) Player() Player {
	return s.player
}

// Pairs returns the live obstacle pairs, oldest first.
// The slice is owned by the session and must not be modified.
func (s *Session) Pairs() []Pair {
	return s.gen.Pairs()
}
