package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-clicker/internal/core"
	"github.com/vovakirdan/tui-clicker/internal/registry"
)

type screenKind int

const (
	screenMenu screenKind = iota
	screenScoreboard
	screenGame
)

// SessionModel manages the full arcade flow inside one program:
// menu -> game or scoreboard -> menu. The SSH server runs one per connection.
type SessionModel struct {
	env        registry.Env
	source     ScoreSource
	config     core.RuntimeConfig
	slot       *gameSlot
	screen     screenKind
	menu       MenuModel
	scoreboard ScoreboardModel
	gameModel  *GameModel
	notice     string // last error shown above the menu
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(env registry.Env, source ScoreSource, cfg core.RuntimeConfig, slot *gameSlot) SessionModel {
	if slot == nil {
		slot = &gameSlot{}
	}
	return SessionModel{
		env:    env,
		source: source,
		config: cfg,
		slot:   slot,
		menu:   NewMenuModel(cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.gameModel = nil
	m.menu = NewMenuModel(m.config)
	return m, m.menu.Init()
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.screen = screenScoreboard
		m.scoreboard = NewScoreboardModel(m.source, m.config.ScreenW, m.config.ScreenH)
		return m, m.scoreboard.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		m.config = m.menu.Config()
		game, err := registry.Create(selected.GameID, m.env)
		if err != nil {
			m.env.Log().Error("create game failed", "game", selected.GameID, "error", err)
			m.notice = err.Error()
			return m.backToMenu()
		}
		m.notice = ""
		m.slot.game = game

		gameModel := NewGameModel(game, m.config, GameOptions{
			Scores: m.env.Scores,
			Player: m.env.Player,
			Logger: m.env.Log(),
		})
		m.gameModel = &gameModel
		m.screen = screenGame
		return m, m.gameModel.Init()
	}

	return m, cmd
}

// updateScoreboard handles updates when the scoreboard is shown.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		return m.backToMenu()
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.slot.game = nil
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		m.slot.game = nil
		return m.backToMenu()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenScoreboard:
		return m.scoreboard.View()
	}
	if m.notice != "" {
		return menuHelpStyle.Render(m.notice) + "\n" + m.menu.View()
	}
	return m.menu.View()
}

// RunSession runs the menu-driven arcade in the local terminal. A game still
// open when the program ends is closed before RunSession returns.
func RunSession(env registry.Env, source ScoreSource, cfg core.RuntimeConfig) error {
	slot := &gameSlot{}
	p := tea.NewProgram(NewSessionModel(env, source, cfg, slot), tea.WithAltScreen())

	_, err := p.Run()
	if cerr := slot.close(); cerr != nil {
		env.Log().Error("close game failed", "error", cerr)
	}
	return err
}
