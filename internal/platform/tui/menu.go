package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flapsim/internal/config"
	"github.com/vovakirdan/flapsim/internal/core"
	"github.com/vovakirdan/flapsim/internal/registry"
	"github.com/vovakirdan/flapsim/internal/storage"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuItem is one selectable speed profile.
type MenuItem struct {
	Profile  string
	TickRate int
	Best     float64
}

// PilotChoice is one entry of the pilot selector.
type PilotChoice struct {
	ID    string
	Title string
}

// MenuModel is the Bubble Tea model for the profile and pilot picker.
type MenuModel struct {
	items          []MenuItem
	pilots         []PilotChoice
	cursor         int
	pilot          int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a profile
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// pilotChoices lists the human player first, then every registered pilot.
func pilotChoices() []PilotChoice {
	choices := []PilotChoice{{ID: HumanPilot, Title: "You"}}
	for _, p := range registry.List() {
		choices = append(choices, PilotChoice{ID: p.ID, Title: p.Title})
	}
	return choices
}

// NewMenuModel creates a new menu model. The cursor starts on lastProfile
// and lastPilot when they are known.
func NewMenuModel(store *storage.Store, fc config.FlappyConfig, cfg core.RuntimeConfig, lastProfile, lastPilot string) MenuModel {
	names := fc.ProfileNames()
	items := make([]MenuItem, 0, len(names))
	cursor := 0

	for i, name := range names {
		item := MenuItem{Profile: name, TickRate: fc.Profiles[name].TickRate}
		if store != nil {
			if hs, err := store.HighScore(name); err == nil {
				item.Best = hs
			}
		}
		if name == lastProfile {
			cursor = i
		}
		items = append(items, item)
	}

	pilots := pilotChoices()
	pilotIdx := 0
	for i, p := range pilots {
		if p.ID == lastPilot {
			pilotIdx = i
		}
	}

	return MenuModel{
		items:     items,
		pilots:    pilots,
		cursor:    cursor,
		pilot:     pilotIdx,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.pilot = (m.pilot + len(m.pilots) - 1) % len(m.pilots)

	case MenuActionRight:
		m.pilot = (m.pilot + 1) % len(m.pilots)

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  F L A P S I M  "), m.width, len("  F L A P S I M  ")))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a speed profile", m.width, 0))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("%-10s %3d Hz  best %s", item.Profile, item.TickRate, formatScore(item.Best))
		if i == m.cursor {
			line = "> " + line
			b.WriteString(centerText(menuCursorStyle.Render(line), m.width, len(line)))
		} else {
			b.WriteString(centerText("  "+line, m.width, 0))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	p := m.pilots[m.pilot]
	b.WriteString(centerText(fmt.Sprintf("Pilot: < %s >", p.Title), m.width, 0))
	b.WriteString("\n\n")

	controls := "Up/Down: Profile  |  Left/Right: Pilot  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuDimStyle.Render(controls), m.width, len(controls)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Pilot returns the pilot currently chosen.
func (m MenuModel) Pilot() PilotChoice {
	return m.pilots[m.pilot]
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width. visible is the printed
// width of styled text; 0 means len(text).
func centerText(text string, width, visible int) string {
	if visible == 0 {
		visible = len([]rune(text))
	}
	if visible >= width {
		return text
	}
	padding := (width - visible) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Profile         string
	PilotID         string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// Result converts the final menu state to a MenuResult.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{Config: m.Config(), PilotID: m.Pilot().ID}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting(), m.Selected() == nil:
		result.Quit = true
	default:
		result.Profile = m.Selected().Profile
	}
	return result
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, fc config.FlappyConfig, cfg core.RuntimeConfig, lastProfile, lastPilot string) (MenuResult, error) {
	model := NewMenuModel(store, fc, cfg, lastProfile, lastPilot)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
