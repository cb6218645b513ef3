// clicker is an idle clicker game with a small arcade around it, played in
// the terminal or over SSH.
//
// Usage:
//
//	clicker list              - List available games
//	clicker play <game>       - Play a game
//	clicker menu              - Start menu to pick games interactively
//	clicker serve             - Start SSH server for remote play
//	clicker scores <game>     - Show high scores for a game
//	clicker save <command>    - Inspect, export, import or reset a save
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible gameplay
//	--db <path>       - Set database path (default: ~/.clicker/clicker.db)
//	--player <name>   - Save slot and leaderboard name (default: local)
//	--log-file <path> - Log destination while a TUI is running
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-clicker/internal/config"
	"github.com/vovakirdan/tui-clicker/internal/registry"
	"github.com/vovakirdan/tui-clicker/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/tui-clicker/internal/games/clicker"
	_ "github.com/vovakirdan/tui-clicker/internal/games/platformer"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagPlayer     string
	flagLogFile    string
	flagVerbose    bool
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "clicker",
	Short: "TUI Clicker - An idle clicker game in your terminal",
	Long: `TUI Clicker is an idle clicker game for the terminal. Click for coins,
buy upgrades, unlock achievements and prestige for a permanent multiplier.
A platformer minigame ships alongside it.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  save     - Inspect, export, import or reset a save

Examples:
  clicker play clicker
  clicker play platformer --difficulty hard
  clicker menu
  clicker serve --ssh :2222
  clicker save export > backup.txt`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.clicker/clicker.db", "Path to saves and scores database")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Player name for the save slot and leaderboard")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.clicker/clicker.log", "Log file used while a TUI is running")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(saveCmd)
}

// newLogger returns a logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "clicker",
		ReportTimestamp: true,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// fileLogger opens the log file so a running TUI is not drawn over.
// The returned closer must be called when the program exits.
func fileLogger() (*log.Logger, func()) {
	path := expandHome(flagLogFile)
	if path == "" {
		return newLogger(io.Discard), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return newLogger(io.Discard), func() {}
	}
	// #nosec G302 -- log file is meant to be readable by the user
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return newLogger(io.Discard), func() {}
	}
	return newLogger(f), func() { _ = f.Close() }
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, path[1:])
}

// openStore opens the database, logging and returning nil on failure so the
// games still run with in-memory saves.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		logger.Warn("storage unavailable", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// baseEnv builds the game environment shared by the TUI commands.
func baseEnv(store *storage.Store, logger *log.Logger, configPath string) registry.Env {
	env := registry.Env{
		Logger:     logger,
		Player:     flagPlayer,
		ConfigPath: configPath,
		Difficulty: config.ParsePreset(flagDifficulty),
	}
	// A nil *Store in an interface field would not read as nil.
	if store != nil {
		env.Saves = store
		env.Scores = store
	}
	return env
}

func requireGame(gameID string) error {
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'clicker list' to see available games", gameID)
	}
	return nil
}
