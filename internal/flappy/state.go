package flappy

// Phase is the session's lifecycle state.
//
//	Setup -> Running <-> Paused
//	Running -> Dying -> GameOver -> Setup (restart)
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseRunning
	PhasePaused
	PhaseDying
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseDying:
		return "dying"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Ticking reports whether the phase advances the simulation.
func (p Phase) Ticking() bool {
	return p == PhaseRunning || p == PhaseDying
}

// DeathCause records what killed the player.
type DeathCause int

const (
	CauseNone DeathCause = iota
	CauseObstacle
	CauseFloor
)

// String returns a human-readable name for the cause.
func (c DeathCause) String() string {
	switch c {
	case CauseObstacle:
		return "obstacle"
	case CauseFloor:
		return "floor"
	default:
		return "none"
	}
}

// EventKind identifies something notable that happened during a tick.
type EventKind int

const (
	EventScored EventKind = iota
	EventLevelUp
	EventDied
	EventGameOver
	EventPaused
	EventResumed
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventScored:
		return "scored"
	case EventLevelUp:
		return "level up"
	case EventDied:
		return "died"
	case EventGameOver:
		return "game over"
	case EventPaused:
		return "paused"
	case EventResumed:
		return "resumed"
	default:
		return "unknown"
	}
}

// Event is emitted by a session for hosts to log or react to.
type Event struct {
	Kind  EventKind
	Tick  uint64
	Score float64
	Level int
	Cause DeathCause
}

// StepResult is returned by Session.Step after each tick.
type StepResult struct {
	Phase  Phase
	Events []Event
}

// die latches the death and moves Running to Dying.
func (s *Session) die(cause DeathCause) {
	if s.player.Dead {
		return
	}
	s.player.Dead = true
	s.cause = cause
	s.phase = PhaseDying
	s.emit(EventDied)
}

// evaluate runs the end-of-tick transitions.
func (s *Session) evaluate() {
	tier := s.tier()

	if s.phase == PhaseRunning && tier.LethalFloor && s.player.OnFloor {
		s.die(CauseFloor)
	}

	if s.phase != PhaseDying {
		return
	}
	// A lethal tier ends at once; otherwise let the body come to rest first.
	if tier.LethalFloor || (s.player.Dead && s.player.OnFloor) {
		s.gameOver()
	}
}

func (s *Session) gameOver() {
	s.phase = PhaseGameOver
	if s.score > s.best {
		s.best = s.score
	}
	s.emit(EventGameOver)
}

// TogglePause switches between Running and Paused. It is a no-op when
// pausing is disabled or the session is in any other phase.
// Returns true if the phase changed.
func (s *Session) TogglePause() bool {
	if !s.cfg.Pausing {
		return false
	}
	switch s.phase {
	case PhaseRunning:
		s.phase = PhasePaused
		s.emit(EventPaused)
		return true
	case PhasePaused:
		s.phase = PhaseRunning
		s.emit(EventResumed)
		return true
	}
	return false
}

// HitRestart reports whether a pointer position falls on the restart button.
func (s *Session) HitRestart(x, y float64) bool {
	return s.restartButton.Contains(x, y)
}
