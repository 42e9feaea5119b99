package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flapsim/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForStats = 80  // Minimum width to show the stats panel
	statsWidth       = 24  // Width of the stats panel
	maxScores        = 100 // Max scores to load
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	NextProfile key.Binding
	PrevProfile key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextProfile, k.PrevProfile, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextProfile, k.PrevProfile},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextProfile: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next profile"),
		),
		PrevProfile: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev profile"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	profiles  []string
	cursor    int
	store     *storage.Store
	scores    []storage.ScoreEntry
	stats     *storage.ProfileStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
	showStats bool
}

// scoreboardProfiles merges configured profiles with any that only exist
// in the store, so scores from removed profiles stay visible.
func scoreboardProfiles(store *storage.Store, configured []string) []string {
	profiles := slices.Clone(configured)
	if store == nil {
		return profiles
	}
	all, err := store.GetAllProfileStats()
	if err != nil {
		return profiles
	}
	for name := range all {
		if !slices.Contains(profiles, name) {
			profiles = append(profiles, name)
		}
	}
	slices.Sort(profiles)
	return profiles
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, profiles []string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		profiles:  scoreboardProfiles(store, profiles),
		store:     store,
		keys:      DefaultScoreboardKeyMap(),
		help:      h,
		width:     width,
		height:    height,
		showStats: width >= minWidthForStats,
	}
	m.table = m.createTable()

	if len(m.profiles) > 0 {
		m.loadScores(m.profiles[0])
	}
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Lvl", Width: 4},
		{Title: "Pilot", Width: 8},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadScores loads scores and aggregate stats for a profile.
func (m *ScoreboardModel) loadScores(profile string) {
	m.scores, m.stats = nil, nil
	if m.store != nil {
		if scores, err := m.store.TopScores(profile, maxScores); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GetProfileStats(profile); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current scores.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			formatScore(s.Score),
			fmt.Sprintf("%d", s.Level),
			s.Pilot,
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) move(delta int) {
	if len(m.profiles) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.profiles)) % len(m.profiles)
	m.loadScores(m.profiles[m.cursor])
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextProfile):
			m.move(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevProfile):
			m.move(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showStats = m.width >= minWidthForStats
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	title := "HIGH SCORES"
	b.WriteString(centerText(titleStyle.Render(title), m.width, len(title)))
	b.WriteString("\n\n")

	tabs := m.renderTabs()
	b.WriteString(centerText(tabs, m.width, lipgloss.Width(tabs)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	body := boxStyle.Render(m.renderTableContent())
	if m.showStats {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", boxStyle.Width(statsWidth).Render(m.renderStats()))
	}
	b.WriteString(body)

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTabs renders one tab per profile, or just the current one with
// arrows when they do not fit.
func (m ScoreboardModel) renderTabs() string {
	if len(m.profiles) == 0 {
		return ""
	}

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Padding(0, 1)

	tabs := make([]string, len(m.profiles))
	for i, p := range m.profiles {
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(p)
		} else {
			tabs[i] = tabStyle.Render(p)
		}
	}

	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		line = fmt.Sprintf("< %s >", m.profiles[m.cursor])
	}
	return line
}

// renderStats renders the aggregate numbers for the current profile.
func (m ScoreboardModel) renderStats() string {
	if m.stats == nil || m.stats.Sessions == 0 {
		return "No sessions yet"
	}
	s := m.stats
	return strings.Join([]string{
		"Sessions  " + fmt.Sprint(s.Sessions),
		"Best      " + formatScore(s.HighScore),
		"Average   " + fmt.Sprintf("%.1f", s.AvgScore),
		"Ticks     " + fmt.Sprint(s.TotalTicks),
		"Last      " + s.LastPlayed.Format("Jan 02 15:04"),
	}, "\n")
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.scores) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No scores recorded yet.\nFly through a gap to set one!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, profiles []string, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, profiles, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
