package flappy

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flapsim/internal/config"
	"github.com/vovakirdan/flapsim/internal/core"
	"github.com/vovakirdan/flapsim/internal/loop"
)

// Controller decides whether to flap on the coming tick. Pilots implement it.
type Controller interface {
	Reset(seed int64)
	Decide(f Frame) bool
}

// Recorder is told about every tick on which a flap was requested.
type Recorder interface {
	Begin(seed int64)
	Record(tick uint64)
}

// Seeder returns the RNG seed for a fresh session.
type Seeder func() int64

// TimeSeeder seeds from the wall clock.
func TimeSeeder() int64 {
	return time.Now().UnixNano()
}

// Option configures a Driver.
type Option func(*Driver)

// WithClock replaces the system clock.
func WithClock(c loop.Clock) Option {
	return func(d *Driver) { d.clock = c }
}

// WithSeeder sets how restart seeds are chosen.
func WithSeeder(s Seeder) Option {
	return func(d *Driver) { d.seeder = s }
}

// WithController lets a pilot flap alongside the human.
func WithController(c Controller) Option {
	return func(d *Driver) { d.controller = c }
}

// WithRecorder captures flap ticks for replays.
func WithRecorder(r Recorder) Option {
	return func(d *Driver) { d.recorder = r }
}

// WithBest seeds the best score carried into the first session.
func WithBest(best float64) Option {
	return func(d *Driver) { d.best = best }
}

// WithLogger sets the event logger.
func WithLogger(l *log.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// Driver couples a Session to a fixed-step ticker and translates host input
// into session commands. Hosts call Handle for every input and Pump whenever
// they get control; rendering reads Frame.
type Driver struct {
	cfg     config.FlappyConfig
	profile string
	session *Session
	ticker  *loop.Ticker

	clock      loop.Clock
	seeder     Seeder
	controller Controller
	recorder   Recorder
	logger     *log.Logger

	flap bool // latched until the next tick
	best float64
}

// NewDriver builds a session with the given seed and a stopped ticker.
func NewDriver(cfg config.FlappyConfig, profile string, seed int64, opts ...Option) (*Driver, error) {
	d := &Driver{
		cfg:     cfg,
		profile: profile,
		clock:   loop.SystemClock{},
		seeder:  TimeSeeder,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(d)
	}

	if err := d.reset(seed, d.best); err != nil {
		return nil, err
	}
	speed, err := cfg.SpeedProfile(profile)
	if err != nil {
		return nil, err
	}
	d.ticker = loop.NewTicker(speed.TickInterval(), cfg.MaxCatchUp)
	return d, nil
}

func (d *Driver) reset(seed int64, best float64) error {
	s, err := NewSession(d.cfg, d.profile, seed, best)
	if err != nil {
		return err
	}
	d.session = s
	d.flap = false
	if d.controller != nil {
		d.controller.Reset(seed)
	}
	if d.recorder != nil {
		d.recorder.Begin(seed)
	}
	d.logger.Debug("session ready", "seed", seed, "profile", s.Profile())
	return nil
}

// Start begins ticking. It is a no-op while running, paused or over.
func (d *Driver) Start() {
	if d.session.Phase().Ticking() && d.ticker.Start(d.clock.Now()) {
		d.logger.Debug("ticker started")
	}
}

// Stop halts ticking. Calling it twice is harmless.
func (d *Driver) Stop() {
	if d.ticker.Stop() {
		d.logger.Debug("ticker stopped")
	}
}

// Running reports whether ticks are being produced.
func (d *Driver) Running() bool {
	return d.ticker.Running()
}

// Handle applies one host input. pointer is the click position in world
// coordinates, or nil. Returns true if the input changed anything.
func (d *Driver) Handle(action core.Action, pointer *core.Point) bool {
	switch action {
	case core.ActionFlap:
		if d.session.Phase() != PhaseRunning {
			return false
		}
		d.flap = true
		return true

	case core.ActionPause:
		if !d.session.TogglePause() {
			return false
		}
		d.logEvents(d.session.drain())
		if d.session.IsPaused() {
			d.flap = false
			d.Stop()
		} else {
			d.Start()
		}
		return true

	case core.ActionRestart:
		return d.restart(pointer)
	}
	return false
}

// restart replaces a finished session. A pointer restart must land on the
// restart button; a keyed one is always accepted.
func (d *Driver) restart(pointer *core.Point) bool {
	if !d.session.IsGameOver() {
		return false
	}
	if pointer != nil && !d.session.HitRestart(pointer.X, pointer.Y) {
		return false
	}

	d.Stop()
	seed := d.seeder()
	if err := d.reset(seed, d.session.BestScore()); err != nil {
		// The config was already validated once; this cannot happen.
		d.logger.Error("restart failed", "error", err)
		return false
	}
	d.Start()
	return true
}

// Pump runs every tick that is due and returns how many ran.
func (d *Driver) Pump() int {
	due := d.ticker.Due(d.clock.Now())
	ran := 0
	for ran < due {
		d.tick()
		ran++
		if d.session.IsGameOver() {
			d.Stop()
			break
		}
	}
	return ran
}

// tick runs exactly one simulation step.
func (d *Driver) tick() {
	flap := d.flap
	d.flap = false
	if d.controller != nil && !flap && !d.session.Player().Dead {
		flap = d.controller.Decide(d.session.Frame())
	}
	if flap && d.recorder != nil {
		d.recorder.Record(d.session.Tick() + 1)
	}
	res := d.session.Step(flap)
	d.logEvents(res.Events)
}

// Step runs one tick immediately, bypassing the clock. Returns false if the
// session is not ticking.
func (d *Driver) Step() bool {
	if !d.session.Phase().Ticking() {
		return false
	}
	d.tick()
	if d.session.IsGameOver() {
		d.Stop()
	}
	return true
}

func (d *Driver) logEvents(events []Event) {
	for _, e := range events {
		switch e.Kind {
		case EventScored:
			d.logger.Debug("scored", "tick", e.Tick, "score", e.Score)
		case EventLevelUp:
			d.logger.Info("level up", "tick", e.Tick, "level", e.Level)
		case EventDied:
			d.logger.Info("died", "tick", e.Tick, "cause", e.Cause, "score", e.Score)
		case EventGameOver:
			d.logger.Info("game over", "tick", e.Tick, "score", e.Score)
		default:
			d.logger.Debug(e.Kind.String(), "tick", e.Tick)
		}
	}
}

// Session returns the current session. It changes on restart.
func (d *Driver) Session() *Session {
	return d.session
}

// Frame returns a snapshot of the current session.
func (d *Driver) Frame() Frame {
	return d.session.Frame()
}
