package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flapsim/internal/config"
	"github.com/vovakirdan/flapsim/internal/core"
	"github.com/vovakirdan/flapsim/internal/flappy"
	"github.com/vovakirdan/flapsim/internal/pilot"
	"github.com/vovakirdan/flapsim/internal/prefs"
	"github.com/vovakirdan/flapsim/internal/registry"
	"github.com/vovakirdan/flapsim/internal/storage"
)

// HumanPilot is the pilot ID stored for sessions without a controller.
const HumanPilot = "human"

// GameOptions configures a single interactive session.
type GameOptions struct {
	Flappy  config.FlappyConfig
	Runtime core.RuntimeConfig
	Profile string
	Pilot   registry.Pilot // nil for a human player
	Store   *storage.Store // optional
	Prefs   *prefs.Manager // optional, in-memory when nil
	Logger  *log.Logger    // optional
	Record  bool           // save flap ticks as a replay on game over
}

func (o GameOptions) pilotID() string {
	if o.Pilot == nil {
		return HumanPilot
	}
	return o.Pilot.ID()
}

// Model is the Bubble Tea model for running a session.
type Model struct {
	driver     *flappy.Driver
	screen     *core.Screen
	keys       *KeyMapper
	opts       GameOptions
	recorder   *pilot.Recorder
	inputFrame core.InputFrame
	saved      *flappy.Session // session whose result is already stored
	quitting   bool
	back       bool
}

// NewModel creates a new Bubble Tea model for the given options.
func NewModel(opts GameOptions) (Model, error) {
	seed := opts.Runtime.Seed
	if seed == 0 {
		seed = flappy.TimeSeeder()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Prefs == nil {
		opts.Prefs = prefs.New(nil, opts.Logger)
	}

	profile := opts.Profile
	if profile == "" {
		profile = opts.Flappy.Profile
	}
	opts.Profile = profile

	best := opts.Prefs.Best(profile)
	if opts.Store != nil {
		if hs, err := opts.Store.HighScore(profile); err == nil {
			best = max(best, hs)
		}
	}

	driverOpts := []flappy.Option{flappy.WithLogger(opts.Logger), flappy.WithBest(best)}
	if opts.Pilot != nil {
		driverOpts = append(driverOpts, flappy.WithController(opts.Pilot))
	}
	var rec *pilot.Recorder
	if opts.Record {
		rec = pilot.NewRecorder()
		driverOpts = append(driverOpts, flappy.WithRecorder(rec))
	}

	d, err := flappy.NewDriver(opts.Flappy, profile, seed, driverOpts...)
	if err != nil {
		return Model{}, err
	}

	return Model{
		driver:     d,
		screen:     core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		keys:       NewKeyMapper(),
		opts:       opts,
		recorder:   rec,
		inputFrame: core.NewInputFrame(),
	}, nil
}

// Init starts the driver and the redraw loop.
func (m Model) Init() tea.Cmd {
	m.driver.Start()
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		vp := NewViewport(m.screen.Width(), m.screen.Height(),
			m.opts.Flappy.Canvas.Width, m.opts.Flappy.Canvas.Height)
		m.keys.MapMouse(msg, vp, m.driver.Session().IsGameOver(), &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		// The world is a fixed virtual canvas, so resizing only rescales the view.
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if err := m.saveScreenshot(); err != nil {
			m.opts.Logger.Warn("screenshot failed", "err", err)
		}
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		m.driver.Stop()
		return m, tea.Quit
	}
	return m, nil
}

// handleTick applies buffered input, pumps the driver and stores results.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	for _, a := range []core.Action{core.ActionPause, core.ActionRestart, core.ActionFlap} {
		if !m.inputFrame.Has(a) {
			continue
		}
		if a == core.ActionRestart {
			m.driver.Handle(a, m.inputFrame.Pointer)
			continue
		}
		m.driver.Handle(a, nil)
	}

	if m.inputFrame.Has(core.ActionBack) && (m.driver.Session().IsGameOver() || m.driver.Session().IsPaused()) {
		m.back = true
		m.driver.Stop()
		return m, tea.Quit
	}
	m.inputFrame.Clear()

	m.driver.Pump()

	s := m.driver.Session()
	if s.IsGameOver() && m.saved != s {
		m.saveResult(s)
		m.saved = s
	}

	return m, tickCmd(m.opts.Runtime.TickRate)
}

// saveResult stores the finished session once. Storage failures are logged
// and the game continues regardless.
func (m *Model) saveResult(s *flappy.Session) {
	score := s.CurrentScore()
	if m.opts.Prefs.RecordBest(s.Profile(), score) {
		if err := m.opts.Prefs.Save(); err != nil {
			m.opts.Logger.Warn("saving prefs failed", "err", err)
		}
	}
	if m.opts.Store == nil || score <= 0 {
		return
	}

	entry := storage.ScoreEntry{
		Profile: s.Profile(),
		Pilot:   m.opts.pilotID(),
		Score:   score,
		Level:   s.Level(),
		Ticks:   s.Tick(),
		Seed:    s.Seed(),
	}
	if _, err := m.opts.Store.SaveScore(entry); err != nil {
		m.opts.Logger.Warn("saving score failed", "err", err)
	}

	if m.recorder == nil {
		return
	}
	id, err := m.opts.Store.SaveReplay(storage.Replay{
		Profile:   s.Profile(),
		Pilot:     m.opts.pilotID(),
		Seed:      m.recorder.Seed(),
		Score:     score,
		Ticks:     s.Tick(),
		FlapTicks: m.recorder.Ticks(),
	})
	if err != nil {
		m.opts.Logger.Warn("saving replay failed", "err", err)
		return
	}
	m.opts.Logger.Info("replay saved", "id", id, "score", score)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() error {
	m.render()

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".flapsim", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.opts.Profile, timestamp)
	return os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

func (m *Model) render() {
	m.screen.Clear()
	DrawFrame(m.screen, m.driver.Frame())
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.render()
	return RenderScreen(m.screen)
}

// IsQuitting reports whether the player asked to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Back reports whether the player asked to return to the menu.
func (m Model) Back() bool {
	return m.back
}

// Driver exposes the underlying driver.
func (m Model) Driver() *flappy.Driver {
	return m.driver
}

// Run starts the Bubble Tea program for one session.
func Run(opts GameOptions) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks flap and press the restart button
	)

	_, err = p.Run()
	return err
}
