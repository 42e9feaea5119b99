// Package prefs persists small per-user preferences (last choices and
// personal bests) through gdata, independent of the scores database.
package prefs

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName is the gdata application namespace.
const AppName = "flapsim"

const (
	prefsObject   = "prefs"
	prefsProperty = "user"
)

// Prefs holds the persisted preferences.
type Prefs struct {
	LastProfile string             `yaml:"last_profile"`
	LastPilot   string             `yaml:"last_pilot"`
	Best        map[string]float64 `yaml:"best"` // Keyed by speed profile
}

// Defaults returns empty preferences.
func Defaults() *Prefs {
	return &Prefs{Best: make(map[string]float64)}
}

// Manager loads and saves Prefs. A nil gdata manager keeps everything in
// memory only.
type Manager struct {
	gm     *gdata.Manager
	prefs  *Prefs
	logger *log.Logger
}

// Open opens the default gdata store. If that fails the manager runs
// in memory and the error is logged.
func Open(logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	gm, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		logger.Warn("preferences are not persisted", "error", err)
		gm = nil
	}
	return New(gm, logger)
}

// New creates a manager over gm and loads any saved preferences.
func New(gm *gdata.Manager, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &Manager{gm: gm, prefs: Defaults(), logger: logger}
	if err := m.Load(); err != nil {
		logger.Warn("could not load preferences, using defaults", "error", err)
	}
	return m
}

// Persistent reports whether changes survive a restart.
func (m *Manager) Persistent() bool {
	return m.gm != nil
}

// Load replaces the in-memory preferences with the saved ones.
func (m *Manager) Load() error {
	m.prefs = Defaults()
	if m.gm == nil || !m.gm.ObjectPropExists(prefsObject, prefsProperty) {
		return nil
	}

	data, err := m.gm.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return fmt.Errorf("prefs: load: %w", err)
	}

	var p Prefs
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("prefs: decode: %w", err)
	}
	if p.Best == nil {
		p.Best = make(map[string]float64)
	}
	m.prefs = &p
	return nil
}

// Save writes the preferences. It is a no-op without persistence.
func (m *Manager) Save() error {
	if m.gm == nil {
		return nil
	}

	data, err := yaml.Marshal(m.prefs)
	if err != nil {
		return fmt.Errorf("prefs: encode: %w", err)
	}
	if err := m.gm.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("prefs: save: %w", err)
	}
	return nil
}

// Prefs returns the current preferences.
func (m *Manager) Prefs() *Prefs {
	return m.prefs
}

// SetLast remembers the most recent profile and pilot choice.
func (m *Manager) SetLast(profile, pilot string) {
	m.prefs.LastProfile = profile
	m.prefs.LastPilot = pilot
}

// Best returns the personal best for a speed profile.
func (m *Manager) Best(profile string) float64 {
	return m.prefs.Best[profile]
}

// RecordBest stores score if it beats the personal best for profile.
// Returns true if it did.
func (m *Manager) RecordBest(profile string, score float64) bool {
	if score <= m.prefs.Best[profile] {
		return false
	}
	m.prefs.Best[profile] = score
	return true
}
