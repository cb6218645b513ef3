package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-clicker/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
Leaving a game with B or Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - High scores
  Q            - Quit

Examples:
  clicker menu
  clicker menu --fps 30
  clicker menu --db ./clicker.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog := fileLogger()
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	var source tui.ScoreSource
	if store != nil {
		source = store
	}
	return tui.RunSession(baseEnv(store, logger, ""), source, terminalConfig())
}
