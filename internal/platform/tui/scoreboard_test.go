package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-clicker/internal/storage"
)

func TestScoreboardSwitchesGames(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer store.Close()
	_, err = store.SaveScore("stub", "", 42)
	require.NoError(t, err)

	var m tea.Model = NewScoreboardModel(store, 100, 30)
	assert.Contains(t, m.View(), "HIGH SCORES - Stub")
	assert.Contains(t, m.View(), "local", "an empty player name is the local player")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, m.View(), "HIGH SCORES - Other")
	assert.Contains(t, m.View(), "No scores recorded yet.")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, m.View(), "HIGH SCORES - Stub", "tab wraps around")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Contains(t, m.View(), "HIGH SCORES - Other")

	m = update(t, m, runeKey('b'))
	assert.True(t, m.(ScoreboardModel).IsGoingBack())
	assert.Empty(t, m.View())
}

func TestScoreboardNarrowTabs(t *testing.T) {
	m := NewScoreboardModel(nil, 12, 12)
	assert.Contains(t, m.View(), "< Stub >")
	assert.Contains(t, m.View(), "No scores recorded yet.")
}

func TestScoreboardQuit(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	next, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.True(t, next.(ScoreboardModel).IsQuitting())
}
