package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-clicker/internal/config"
	"github.com/vovakirdan/tui-clicker/internal/core"
	"github.com/vovakirdan/tui-clicker/internal/platform/tui"
	"github.com/vovakirdan/tui-clicker/internal/registry"
)

var flagConfig string

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Clicker controls:
  Space        - Click
  Up/Down      - Move the cursor
  Enter        - Buy / toggle the selected row
  Left/Right   - Adjust a volume setting
  Tab          - Next panel
  X            - Prestige
  Ctrl+S       - Save
  Ctrl+L       - Load
  B/Esc        - Back to menu
  Q/Ctrl+C     - Quit (saves first)

Platformer controls:
  Left/Right   - Move
  Space/Up     - Jump
  P            - Pause
  R            - Restart (after game over)

F2 writes a screenshot to ~/.clicker/screenshots.

Difficulty options (platformer):
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  clicker play clicker
  clicker play clicker --player alice
  clicker play platformer --difficulty hard
  clicker play clicker --config ./my-clicker.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

// terminalConfig sizes the runtime config to the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func screenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, config.AppDir, "screenshots")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if err := requireGame(gameID); err != nil {
		return err
	}

	logger, closeLog := fileLogger()
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	env := baseEnv(store, logger, flagConfig)
	game, err := registry.Create(gameID, env)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	logger.Info("playing", "game", gameID, "player", flagPlayer)

	opts := tui.GameOptions{
		Player:        flagPlayer,
		Logger:        logger,
		ScreenshotDir: screenshotDir(),
	}
	if store != nil {
		opts.Scores = store
	}

	if _, err := tui.Run(game, terminalConfig(), opts); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
