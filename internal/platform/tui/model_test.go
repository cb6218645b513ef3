package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-clicker/internal/core"
	"github.com/vovakirdan/tui-clicker/internal/registry"
	"github.com/vovakirdan/tui-clicker/internal/storage"
)

// stubGame ends after a fixed number of steps with the step count as score.
type stubGame struct {
	endAfter int
	steps    int
	resets   int
	closes   int
	inputs   []core.InputFrame
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps = 0
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	copied := core.NewInputFrame()
	for a := range in.Actions {
		copied.Set(a)
	}
	g.inputs = append(g.inputs, copied)
	g.steps++
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "stub game")
}

func (g *stubGame) State() core.GameState {
	return core.GameState{Score: g.steps, GameOver: g.endAfter > 0 && g.steps >= g.endAfter}
}

func (g *stubGame) Close() error {
	g.closes++
	return nil
}

type recordedScore struct {
	game, player string
	score        int64
}

type fakeScores struct {
	saved []recordedScore
}

func (f *fakeScores) SaveScore(gameID, player string, score int64) (int64, error) {
	f.saved = append(f.saved, recordedScore{gameID, player, score})
	return int64(len(f.saved)), nil
}

func (f *fakeScores) SubmitBest(gameID, player string, score int64) (bool, error) {
	return true, nil
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 1}
}

func update(t *testing.T, m tea.Model, msg tea.Msg) tea.Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next
}

func TestGameModelStepsWithInput(t *testing.T) {
	game := &stubGame{}
	var m tea.Model = NewGameModel(game, testRuntime(), GameOptions{})
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	require.Len(t, game.inputs, 2)
	assert.True(t, game.inputs[0].Has(core.ActionPrimary))
	assert.True(t, game.inputs[1].Empty(), "input is cleared after each tick")
	assert.Contains(t, m.View(), "stub game")
}

func TestGameModelSavesScoreOnce(t *testing.T) {
	game := &stubGame{endAfter: 3}
	scores := &fakeScores{}
	var m tea.Model = NewGameModel(game, testRuntime(), GameOptions{Scores: scores, Player: "alice"})

	for i := 0; i < 10; i++ {
		m = update(t, m, TickMsg{})
	}

	assert.Equal(t, []recordedScore{{"stub", "alice", 3}}, scores.saved)
}

func TestGameModelRestart(t *testing.T) {
	game := &stubGame{endAfter: 1}
	var m tea.Model = NewGameModel(game, testRuntime(), GameOptions{})
	m = update(t, m, TickMsg{})
	require.True(t, game.State().GameOver)

	m = update(t, m, runeKey('r'))
	update(t, m, TickMsg{})

	assert.Equal(t, 1, game.resets)
	assert.False(t, game.State().GameOver)
}

func TestGameModelBackClosesGame(t *testing.T) {
	game := &stubGame{}
	var m tea.Model = NewGameModel(game, testRuntime(), GameOptions{})

	m = update(t, m, runeKey('b'))
	m = update(t, m, TickMsg{})

	gm := m.(GameModel)
	assert.True(t, gm.BackToMenu())
	assert.Equal(t, 1, game.closes)
	assert.Zero(t, game.steps, "a closed game is not stepped")
}

func TestGameModelQuit(t *testing.T) {
	game := &stubGame{}
	m := NewGameModel(game, testRuntime(), GameOptions{})

	next, cmd := m.Update(runeKey('q'))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.True(t, next.(GameModel).IsQuitting())
	assert.Equal(t, 1, game.closes)
	assert.Empty(t, next.View())
}

func TestGameModelScreenshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	game := &stubGame{}
	var m tea.Model = NewGameModel(game, testRuntime(), GameOptions{ScreenshotDir: dir})

	update(t, m, tea.KeyMsg{Type: tea.KeyF2})

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "stub_"))
}

func TestRenderScreenKeepsText(t *testing.T) {
	screen := core.NewScreen(10, 2)
	screen.DrawTextColored(0, 0, "coins", core.ColorCoins)
	screen.DrawText(0, 1, "plain")

	out := RenderScreen(screen)

	assert.Contains(t, out, "coins")
	assert.Contains(t, out, "plain")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

var lastStub *stubGame

func init() {
	registry.Register("stub", "Stub", func(env registry.Env) (registry.Game, error) {
		lastStub = &stubGame{}
		return lastStub, nil
	})
	registry.Register("stub2", "Other", func(env registry.Env) (registry.Game, error) {
		return &stubGame{}, nil
	})
}

func TestSessionModelFlow(t *testing.T) {
	slot := &gameSlot{}
	var m tea.Model = NewSessionModel(registry.Env{}, nil, testRuntime(), slot)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	sm := m.(SessionModel)
	require.Equal(t, screenGame, sm.screen)
	require.NotNil(t, lastStub)
	assert.Same(t, lastStub, slot.game)

	m = update(t, m, runeKey('b'))
	sm = m.(SessionModel)
	assert.Equal(t, screenMenu, sm.screen)
	assert.Nil(t, slot.game)
	assert.Equal(t, 1, lastStub.closes)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	sm = m.(SessionModel)
	require.Equal(t, screenScoreboard, sm.screen)
	assert.Contains(t, m.View(), "HIGH SCORES")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenMenu, m.(SessionModel).screen)

	_, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestGameSlotCloseOnDrop(t *testing.T) {
	game := &stubGame{}
	slot := &gameSlot{game: game}

	require.NoError(t, slot.close())
	require.NoError(t, slot.close())

	assert.Equal(t, 1, game.closes)
}

func TestScoreboardShowsPlayers(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer store.Close()
	_, err = store.SaveScore("stub", "alice", 1500)
	require.NoError(t, err)

	m := NewScoreboardModel(store, 100, 30)

	view := m.View()
	assert.Contains(t, view, "alice")
	assert.Contains(t, view, "1,500")
	assert.Contains(t, view, "1 games")
}
