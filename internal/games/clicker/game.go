// Package clicker adapts a clicker session to the arcade Game interface:
// keys become engine operations and the state is drawn as panels.
package clicker

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-clicker/internal/clicker"
	"github.com/vovakirdan/tui-clicker/internal/config"
	"github.com/vovakirdan/tui-clicker/internal/core"
	"github.com/vovakirdan/tui-clicker/internal/registry"
	"github.com/vovakirdan/tui-clicker/internal/save"
	"github.com/vovakirdan/tui-clicker/internal/session"
)

// GameID is the registry and leaderboard id.
const GameID = "clicker"

// noticeTTL is how long a notification stays on screen.
const noticeTTL = 3 * time.Second

// maxNotices caps the notification stack.
const maxNotices = 3

func init() {
	registry.Register(GameID, "Clicker", func(env registry.Env) (registry.Game, error) {
		cfg, err := config.LoadClicker(env.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("clicker: load config: %w", err)
		}
		return New(env, cfg), nil
	})
}

type panel int

const (
	panelUpgrades panel = iota
	panelAchievements
	panelStatistics
	panelSettings
	panelCount
)

var panelNames = [...]string{"Upgrades", "Achievements", "Stats", "Settings"}

// Settings panel rows.
const (
	settingSound = iota
	settingMusic
	settingNotifications
	settingAutoSave
	settingSoundVolume
	settingMusicVolume
	settingReset
	settingResetProgress
	settingCount
)

// volumeStep is the change per left/right press.
const volumeStep = 0.1

type notice struct {
	text  string
	color core.Color
	left  time.Duration
}

// Game is the clicker as an arcade game.
type Game struct {
	sess    *session.Session
	scores  registry.ScoreRecorder
	player  string
	logger  *log.Logger
	runtime core.RuntimeConfig

	panel   panel
	cursor  int
	notices []notice
	latest  string // newest notice of the current step
	// confirmReset is set after the first press on "Reset progress".
	confirmReset bool
}

// New opens the player's session from env.
func New(env registry.Env, cfg config.ClickerConfig) *Game {
	logger := env.Log()
	if env.Player != "" {
		logger = logger.With("player", env.Player)
	}
	store := save.NewStore(env.KV(), save.KeyFor(env.Player))
	sess := session.Open(context.Background(), store, cfg.Catalog(), session.Options{
		Engine:           clicker.NewEngine(cfg.EngineRules()),
		TickInterval:     cfg.Timing.TickInterval,
		AutoSaveInterval: cfg.Timing.AutoSaveInterval,
		Logger:           logger,
	})
	return &Game{
		sess:    sess,
		scores:  env.Scores,
		player:  env.Player,
		logger:  logger,
		runtime: core.DefaultConfig(),
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Clicker"
}

// Session exposes the underlying session.
func (g *Game) Session() *session.Session {
	return g.sess
}

// Reset adapts to a new screen size. Progress lives in the session and is
// never restarted here.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
}

// Step applies this frame's input and advances the session timers by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.sess.Closed() {
		return core.StepResult{State: g.State()}
	}
	ctx := context.Background()
	g.latest = ""

	if in.Has(core.ActionNextPanel) {
		g.panel = (g.panel + 1) % panelCount
		g.cursor = 0
		g.confirmReset = false
	}
	if in.Has(core.ActionUp) {
		g.moveCursor(-1)
	}
	if in.Has(core.ActionDown) {
		g.moveCursor(1)
	}
	if in.Has(core.ActionPrimary) {
		g.events(g.sess.Click())
	}
	if in.Has(core.ActionConfirm) {
		g.confirm(ctx)
	}
	if in.Has(core.ActionLeft) {
		g.adjustVolume(-volumeStep)
	}
	if in.Has(core.ActionRight) {
		g.adjustVolume(volumeStep)
	}
	if in.Has(core.ActionPrestige) {
		g.prestige()
	}
	if in.Has(core.ActionSave) {
		if err := g.sess.Save(ctx); err != nil {
			g.notify("Save failed", core.ColorRed)
		} else {
			g.notify("Game saved", core.ColorGreen)
		}
	}
	if in.Has(core.ActionLoad) {
		g.load(ctx)
	}

	dt := g.runtime.FrameDuration()
	g.events(g.sess.Advance(ctx, dt))
	g.expireNotices(dt)

	return core.StepResult{State: g.State(), Notice: g.latest}
}

// State reports the current coin amount as the score. A clicker never ends.
func (g *Game) State() core.GameState {
	return core.GameState{Score: int(wholeAmount(g.sess.State().Coins()))}
}

// wholeAmount truncates a resource amount to an integer score, saturating
// at math.MaxInt64 so compounded prestige totals cannot wrap around.
func wholeAmount(v float64) int64 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= math.MaxInt64:
		return math.MaxInt64
	}
	return int64(v)
}

// Close ends the session with a final save and submits the best coin total
// to the leaderboard.
func (g *Game) Close() error {
	if g.sess.Closed() {
		return nil
	}
	best := g.sess.State().Statistics.HighestResource[clicker.CoinID]
	err := g.sess.Close(context.Background())

	if score := wholeAmount(best); g.scores != nil && score >= 1 {
		improved, serr := g.scores.SubmitBest(GameID, g.player, score)
		if serr != nil {
			g.logger.Error("submit score failed", "error", serr)
			err = errors.Join(err, serr)
		} else if improved {
			g.logger.Info("new best", "score", score)
		}
	}
	return err
}

func (g *Game) itemCount() int {
	st := g.sess.State()
	switch g.panel {
	case panelUpgrades:
		return len(st.Upgrades)
	case panelAchievements:
		return len(st.Achievements)
	case panelSettings:
		return settingCount
	default:
		return 0
	}
}

func (g *Game) moveCursor(delta int) {
	n := g.itemCount()
	if n == 0 {
		g.cursor = 0
		return
	}
	g.cursor = core.Clamp(g.cursor+delta, 0, n-1)
	if g.cursor != settingResetProgress {
		g.confirmReset = false
	}
}

func (g *Game) confirm(ctx context.Context) {
	switch g.panel {
	case panelUpgrades:
		g.purchase()
	case panelSettings:
		g.toggleSetting(ctx)
	}
}

func (g *Game) purchase() {
	st := g.sess.State()
	if g.cursor >= len(st.Upgrades) {
		return
	}
	u := st.Upgrades[g.cursor]
	events, err := g.sess.Purchase(u.ID)
	if err != nil {
		g.notify(refusal(st, u, err), core.ColorRed)
		return
	}
	g.events(events)
}

// refusal explains a refused purchase.
func refusal(st clicker.State, u clicker.Upgrade, err error) string {
	switch {
	case errors.Is(err, clicker.ErrInsufficientFunds):
		name := u.Target
		if r, ok := st.Resource(u.Target); ok {
			name = r.Name
		}
		return fmt.Sprintf("Not enough %s for %s", name, u.Name)
	case errors.Is(err, clicker.ErrUpgradeLocked):
		if u.Maxed() {
			return u.Name + " is maxed out"
		}
		return u.Name + " is locked"
	case errors.Is(err, clicker.ErrResourceLocked):
		return u.Name + " needs a locked resource"
	default:
		return err.Error()
	}
}

func (g *Game) prestige() {
	events, err := g.sess.Prestige()
	if errors.Is(err, clicker.ErrPrestigeLocked) {
		cost := g.sess.State().Prestige.Cost
		g.notify("Prestige needs "+formatAmount(cost)+" coins", core.ColorRed)
		return
	}
	if err != nil {
		g.notify(err.Error(), core.ColorRed)
		return
	}
	g.events(events)
}

func (g *Game) load(ctx context.Context) {
	ok, err := g.sess.Load(ctx)
	switch {
	case err != nil:
		g.notify("Load failed", core.ColorRed)
	case !ok:
		g.notify("No saved game", core.ColorGray)
	default:
		g.notify("Game loaded", core.ColorGreen)
	}
}

func (g *Game) toggleSetting(ctx context.Context) {
	s := g.sess.State().Settings
	switch g.cursor {
	case settingSound:
		s.SoundEnabled = !s.SoundEnabled
	case settingMusic:
		s.MusicEnabled = !s.MusicEnabled
	case settingNotifications:
		s.NotificationsEnabled = !s.NotificationsEnabled
	case settingAutoSave:
		s.AutoSaveEnabled = !s.AutoSaveEnabled
	case settingReset:
		g.sess.ResetSettings()
		g.notify("Settings reset", core.ColorGreen)
		return
	case settingResetProgress:
		if !g.confirmReset {
			g.confirmReset = true
			g.notify("Press enter again to erase all progress", core.ColorOrange)
			return
		}
		g.confirmReset = false
		if err := g.sess.Reset(ctx); err != nil {
			g.notify("Reset failed", core.ColorRed)
			return
		}
		g.notify("Progress reset", core.ColorOrange)
		return
	default:
		return
	}
	g.sess.UpdateSettings(s)
}

func (g *Game) adjustVolume(delta float64) {
	if g.panel != panelSettings {
		return
	}
	s := g.sess.State().Settings
	switch g.cursor {
	case settingSoundVolume:
		s.SoundVolume += delta
	case settingMusicVolume:
		s.MusicVolume += delta
	default:
		return
	}
	g.sess.UpdateSettings(s)
}

// events turns engine events into notifications when they are enabled.
func (g *Game) events(events []clicker.Event) {
	if !g.sess.State().Settings.NotificationsEnabled {
		return
	}
	for _, e := range events {
		color := core.ColorAccent
		switch e.Kind {
		case clicker.EventAchievement:
			color = core.ColorCoins
		case clicker.EventUpgradePurchased:
			continue
		case clicker.EventResourceUnlocked:
			color = core.ColorGems
		}
		g.notify(e.String(), color)
	}
}

func (g *Game) notify(text string, color core.Color) {
	g.latest = text
	g.notices = append(g.notices, notice{text: text, color: color, left: noticeTTL})
	if len(g.notices) > maxNotices {
		g.notices = g.notices[len(g.notices)-maxNotices:]
	}
}

func (g *Game) expireNotices(dt time.Duration) {
	kept := g.notices[:0]
	for _, n := range g.notices {
		n.left -= dt
		if n.left > 0 {
			kept = append(kept, n)
		}
	}
	g.notices = kept
}
