package clicker

import (
	"context"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-clicker/internal/clicker"
	"github.com/vovakirdan/tui-clicker/internal/config"
	"github.com/vovakirdan/tui-clicker/internal/core"
	"github.com/vovakirdan/tui-clicker/internal/registry"
	"github.com/vovakirdan/tui-clicker/internal/save"
)

type submission struct {
	game, player string
	score        int64
}

type fakeScores struct {
	submitted []submission
}

func (f *fakeScores) SaveScore(gameID, player string, score int64) (int64, error) {
	return 1, nil
}

func (f *fakeScores) SubmitBest(gameID, player string, score int64) (bool, error) {
	f.submitted = append(f.submitted, submission{gameID, player, score})
	return true, nil
}

func testEnv(kv save.KV) registry.Env {
	return registry.Env{Saves: kv, Logger: log.New(io.Discard)}
}

func newTestGame(t *testing.T, env registry.Env) *Game {
	t.Helper()
	g := New(env, config.DefaultClickerConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 50})
	t.Cleanup(func() { g.Close() })
	return g
}

func press(g *Game, actions ...core.Action) core.StepResult {
	return g.Step(core.FrameOf(actions...))
}

func repeat(g *Game, n int, a core.Action) {
	for i := 0; i < n; i++ {
		press(g, a)
	}
}

func TestSpaceClicks(t *testing.T) {
	g := newTestGame(t, testEnv(save.NewMemoryKV()))

	res := press(g, core.ActionPrimary)

	assert.Equal(t, 11, res.State.Score)
	assert.Contains(t, res.Notice, "First Click")
	assert.Equal(t, int64(1), g.Session().State().Statistics.TotalClicks)
}

func TestEnterBuysSelectedUpgrade(t *testing.T) {
	g := newTestGame(t, testEnv(save.NewMemoryKV()))
	press(g, core.ActionPrimary)

	press(g, core.ActionConfirm)

	st := g.Session().State()
	u, _ := st.Upgrade("cursor")
	assert.Equal(t, 1, u.Level)
	assert.Equal(t, 51.0, st.Coins())
}

func TestRefusedPurchaseExplains(t *testing.T) {
	g := newTestGame(t, testEnv(save.NewMemoryKV()))

	res := press(g, core.ActionConfirm)

	assert.Equal(t, "Not enough Coins for Cursor", res.Notice)
	assert.Zero(t, g.Session().State().Coins())
}

func TestPanelsAndCursor(t *testing.T) {
	g := newTestGame(t, testEnv(save.NewMemoryKV()))

	repeat(g, 5, core.ActionDown)
	assert.Equal(t, 1, g.cursor, "cursor clamps to the last upgrade")
	repeat(g, 3, core.ActionUp)
	assert.Equal(t, 0, g.cursor)

	press(g, core.ActionDown)
	press(g, core.ActionNextPanel)
	assert.Equal(t, panelAchievements, g.panel)
	assert.Zero(t, g.cursor, "switching panels resets the cursor")

	repeat(g, 3, core.ActionNextPanel)
	assert.Equal(t, panelUpgrades, g.panel)
}

func TestSettingsPanel(t *testing.T) {
	g := newTestGame(t, testEnv(save.NewMemoryKV()))
	repeat(g, 3, core.ActionNextPanel)
	require.Equal(t, panelSettings, g.panel)

	press(g, core.ActionConfirm)
	assert.False(t, g.Session().State().Settings.SoundEnabled)

	repeat(g, settingSoundVolume, core.ActionDown)
	press(g, core.ActionRight)
	assert.InDelta(t, 0.6, g.Session().State().Settings.SoundVolume, 1e-9)

	repeat(g, 10, core.ActionRight)
	assert.Equal(t, 1.0, g.Session().State().Settings.SoundVolume)

	g.cursor = settingReset
	press(g, core.ActionConfirm)
	assert.True(t, g.Session().State().Settings.SoundEnabled)
	assert.Equal(t, 0.5, g.Session().State().Settings.SoundVolume)
}

func TestVolumeKeysIgnoredOutsideSettings(t *testing.T) {
	g := newTestGame(t, testEnv(save.NewMemoryKV()))
	before := g.Session().State().Settings

	press(g, core.ActionRight)

	assert.Equal(t, before, g.Session().State().Settings)
}

func TestResetProgressNeedsConfirmation(t *testing.T) {
	g := newTestGame(t, testEnv(save.NewMemoryKV()))
	press(g, core.ActionPrimary)
	repeat(g, 3, core.ActionNextPanel)
	repeat(g, settingResetProgress, core.ActionDown)

	press(g, core.ActionConfirm)
	assert.Equal(t, 11.0, g.Session().State().Coins())
	assert.True(t, g.confirmReset)

	press(g, core.ActionConfirm)
	assert.Zero(t, g.Session().State().Coins())
	assert.Zero(t, g.Session().State().Statistics.TotalClicks)
}

func TestOneSecondOfFramesTicks(t *testing.T) {
	g := newTestGame(t, testEnv(save.NewMemoryKV()))

	repeat(g, 49, core.ActionNone)
	assert.Zero(t, g.Session().State().Statistics.TimePlayed)

	press(g)
	assert.Equal(t, int64(1), g.Session().State().Statistics.TimePlayed)
}

func TestPrestigeLockedNotice(t *testing.T) {
	g := newTestGame(t, testEnv(save.NewMemoryKV()))

	res := press(g, core.ActionPrestige)

	assert.Equal(t, "Prestige needs 1K coins", res.Notice)
}

func TestSaveAndLoadKeys(t *testing.T) {
	g := newTestGame(t, testEnv(save.NewMemoryKV()))
	press(g, core.ActionPrimary)

	res := press(g, core.ActionSave)
	assert.Equal(t, "Game saved", res.Notice)

	press(g, core.ActionPrimary)
	assert.Equal(t, 12.0, g.Session().State().Coins())

	res = press(g, core.ActionLoad)
	assert.Equal(t, "Game loaded", res.Notice)
	assert.Equal(t, 11.0, g.Session().State().Coins())
}

func TestNotificationsCanBeDisabled(t *testing.T) {
	g := newTestGame(t, testEnv(save.NewMemoryKV()))
	s := g.Session().State().Settings
	s.NotificationsEnabled = false
	g.Session().UpdateSettings(s)

	res := press(g, core.ActionPrimary)

	assert.Empty(t, res.Notice)
	assert.Empty(t, g.notices)
}

func TestNoticesExpire(t *testing.T) {
	g := newTestGame(t, testEnv(save.NewMemoryKV()))
	press(g, core.ActionPrimary)
	require.Len(t, g.notices, 1)

	repeat(g, 200, core.ActionNone)
	assert.Empty(t, g.notices)
}

func TestCloseSavesAndSubmitsBest(t *testing.T) {
	ctx := context.Background()
	kv := save.NewMemoryKV()
	scores := &fakeScores{}
	env := testEnv(kv)
	env.Scores = scores
	env.Player = "alice"

	g := New(env, config.DefaultClickerConfig())
	press(g, core.ActionPrimary)
	require.NoError(t, g.Close())
	require.NoError(t, g.Close())

	_, found, err := kv.Get(ctx, save.KeyFor("alice"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []submission{{"clicker", "alice", 11}}, scores.submitted)

	again := New(env, config.DefaultClickerConfig())
	defer again.Close()
	assert.Equal(t, 11, again.State().Score)
}

func TestHugeCoinTotalsSaturate(t *testing.T) {
	ctx := context.Background()
	kv := save.NewMemoryKV()
	st := clicker.NewState(config.DefaultClickerConfig().Catalog())
	for i := range st.Resources {
		if st.Resources[i].ID == clicker.CoinID {
			st.Resources[i].Amount = 1e30
		}
	}
	_, err := save.NewStore(kv, save.Key).Save(ctx, st)
	require.NoError(t, err)

	scores := &fakeScores{}
	env := testEnv(kv)
	env.Scores = scores
	g := New(env, config.DefaultClickerConfig())

	assert.Equal(t, math.MaxInt64, g.State().Score)
	require.NoError(t, g.Close())
	assert.Equal(t, []submission{{"clicker", "", math.MaxInt64}}, scores.submitted)
}

func TestWholeAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{0, 0},
		{-5, 0},
		{math.NaN(), 0},
		{12.9, 12},
		{1e30, math.MaxInt64},
		{math.Inf(1), math.MaxInt64},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, wholeAmount(tt.in), "wholeAmount(%v)", tt.in)
	}
}

func TestPlayersHaveSeparateSaves(t *testing.T) {
	kv := save.NewMemoryKV()
	alice := testEnv(kv)
	alice.Player = "alice"

	g := New(alice, config.DefaultClickerConfig())
	press(g, core.ActionPrimary)
	require.NoError(t, g.Close())

	bob := testEnv(kv)
	bob.Player = "bob"
	other := New(bob, config.DefaultClickerConfig())
	defer other.Close()
	assert.Zero(t, other.State().Score)
}

func TestStepAfterCloseIsNoop(t *testing.T) {
	g := New(testEnv(save.NewMemoryKV()), config.DefaultClickerConfig())
	require.NoError(t, g.Close())

	res := press(g, core.ActionPrimary)

	assert.Zero(t, res.State.Score)
}

func TestRegistered(t *testing.T) {
	game, err := registry.Create(GameID, testEnv(nil))
	require.NoError(t, err)
	defer registry.Close(game)

	assert.Equal(t, "Clicker", game.Title())
}

func TestRender(t *testing.T) {
	g := newTestGame(t, testEnv(save.NewMemoryKV()))
	press(g, core.ActionPrimary)
	screen := core.NewScreen(100, 30)

	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"CLICKER", "Coins", "[Upgrades]", "Cursor", "CLICK", "First Click"} {
		assert.True(t, strings.Contains(out, want), "screen missing %q", want)
	}

	press(g, core.ActionNextPanel)
	press(g, core.ActionNextPanel)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Total clicks")
}

func TestRenderTinyScreen(t *testing.T) {
	g := newTestGame(t, testEnv(save.NewMemoryKV()))
	screen := core.NewScreen(10, 4)

	assert.NotPanics(t, func() { g.Render(screen) })
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1.5, "1.5"},
		{1000, "1K"},
		{1500, "1.5K"},
		{2_000_000, "2M"},
		{12_345_678, "12.35M"},
		{1e15, "1Qa"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatAmount(tt.in), "formatAmount(%v)", tt.in)
	}
}

func TestFit(t *testing.T) {
	assert.Equal(t, "abc", fit("abc", 5))
	assert.Equal(t, "ab…", fit("abcdef", 3))
	assert.Empty(t, fit("abc", 0))
}
