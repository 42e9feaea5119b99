package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/flapsim/internal/config"
	"github.com/vovakirdan/flapsim/internal/core"
	"github.com/vovakirdan/flapsim/internal/pilot"
	"github.com/vovakirdan/flapsim/internal/prefs"
	"github.com/vovakirdan/flapsim/internal/storage"
)

func newTestModel(t *testing.T, opts GameOptions) Model {
	t.Helper()
	opts.Flappy = config.DefaultFlappyConfig()
	opts.Runtime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3}
	m, err := NewModel(opts)
	require.NoError(t, err)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	require.True(t, ok)
	return mm, cmd
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(t, m, TickMsg(time.Now()))
	return m
}

func TestModelPauseAndBack(t *testing.T) {
	m := newTestModel(t, GameOptions{})
	m.Init()

	m, _ = update(t, m, runeKey('b'))
	m = tick(t, m)
	assert.False(t, m.Back(), "back is ignored while playing")

	m, _ = update(t, m, runeKey('p'))
	m = tick(t, m)
	require.True(t, m.Driver().Session().IsPaused())
	assert.False(t, m.Driver().Running())

	m, _ = update(t, m, runeKey('b'))
	m, cmd := update(t, m, TickMsg(time.Now()))
	assert.True(t, m.Back())
	assert.NotNil(t, cmd)
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, GameOptions{})

	m, cmd := update(t, m, runeKey('q'))
	assert.True(t, m.IsQuitting())
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestModelResizeKeepsSession(t *testing.T) {
	m := newTestModel(t, GameOptions{})
	before := m.Driver().Session()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Same(t, before, m.Driver().Session())
	assert.NotEmpty(t, m.View())
}

func TestModelRestartByClick(t *testing.T) {
	m := newTestModel(t, GameOptions{})
	for i := 0; i < 200000 && m.Driver().Step(); i++ {
	}
	require.True(t, m.Driver().Session().IsGameOver())
	over := m.Driver().Session()

	miss := tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, _ = update(t, m, miss)
	m = tick(t, m)
	assert.Same(t, over, m.Driver().Session())

	hit := tea.MouseMsg{X: 40, Y: 14, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, _ = update(t, m, hit)
	m = tick(t, m)
	assert.NotSame(t, over, m.Driver().Session())
	assert.False(t, m.Driver().Session().IsGameOver())
}

func TestModelSavesResultOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer store.Close()

	pm := prefs.New(nil, nil)
	m := newTestModel(t, GameOptions{
		Pilot:  pilot.NewAutopilot(pilot.DefaultNetwork()),
		Store:  store,
		Prefs:  pm,
		Record: true,
	})
	for i := 0; i < 200000 && m.Driver().Step(); i++ {
	}
	require.True(t, m.Driver().Session().IsGameOver())
	score := m.Driver().Session().CurrentScore()

	m = tick(t, m)
	m = tick(t, m)

	scores, err := store.TopScores("classic", 10)
	require.NoError(t, err)
	replays, err := store.RecentReplays(10)
	require.NoError(t, err)

	if score == 0 {
		assert.Empty(t, scores)
		assert.Empty(t, replays)
		return
	}
	require.Len(t, scores, 1)
	assert.Equal(t, score, scores[0].Score)
	assert.Equal(t, "auto", scores[0].Pilot)
	assert.Equal(t, int64(3), scores[0].Seed)

	require.Len(t, replays, 1)
	assert.NotEmpty(t, replays[0].FlapTicks)
	loaded, err := store.Replay(replays[0].ID)
	require.NoError(t, err)
	assert.Equal(t, replays[0].FlapTicks, loaded.FlapTicks)
	assert.Equal(t, score, pm.Best("classic"))
}
