package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-clicker/internal/save"
	"github.com/vovakirdan/tui-clicker/internal/storage"
)

var flagResetYes bool

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Inspect, export, import or reset a save",
	Long: `Manage the clicker save of the selected player (--player).

Exports are base64 strings that can be pasted back with import.

Examples:
  clicker save show
  clicker save export > backup.txt
  clicker save import "$(cat backup.txt)"
  clicker save import < backup.txt
  clicker save reset --yes
  clicker save list`,
}

var saveShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Summarise the stored save",
	Args:  cobra.NoArgs,
	RunE: withSaveStore(func(ctx context.Context, out io.Writer, _ *storage.Store, s *save.Store, _ []string) error {
		st, ok, err := s.Load(ctx)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "No saved game.")
			return nil
		}

		fmt.Fprintf(out, "Save %s (version %s)\n", s.Key(), st.GameVersion)
		if st.LastSave > 0 {
			fmt.Fprintf(out, "Last saved %s\n", humanize.Time(time.UnixMilli(st.LastSave)))
		}
		fmt.Fprintln(out)
		for _, r := range st.Resources {
			if !r.Unlocked {
				continue
			}
			fmt.Fprintf(out, "  %-10s %16s  (+%s/s)\n", r.Name, humanize.CommafWithDigits(r.Amount, 1), humanize.CommafWithDigits(r.PerSecond, 1))
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  Prestige level   %d (x%.2f)\n", st.Prestige.Level, st.Prestige.Multiplier)
		fmt.Fprintf(out, "  Achievements     %d/%d\n", st.UnlockedAchievements(), len(st.Achievements))
		fmt.Fprintf(out, "  Total clicks     %s\n", humanize.Comma(st.Statistics.TotalClicks))
		fmt.Fprintf(out, "  Time played      %s\n", time.Duration(st.Statistics.TimePlayed)*time.Second)
		return nil
	}),
}

var saveExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the save as a base64 string",
	Args:  cobra.NoArgs,
	RunE: withSaveStore(func(ctx context.Context, out io.Writer, _ *storage.Store, s *save.Store, _ []string) error {
		encoded, err := s.Export(ctx)
		if err != nil {
			return err
		}
		if encoded == "" {
			return errors.New("no saved game to export")
		}
		fmt.Fprintln(out, encoded)
		return nil
	}),
}

var saveImportCmd = &cobra.Command{
	Use:   "import [base64]",
	Short: "Replace the save with an exported string (stdin when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: withSaveStore(func(ctx context.Context, out io.Writer, _ *storage.Store, s *save.Store, args []string) error {
		var encoded string
		if len(args) == 1 {
			encoded = args[0]
		} else {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			encoded = string(data)
		}

		st, err := s.Import(ctx, encoded)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Imported save with %s coins.\n", humanize.CommafWithDigits(st.Coins(), 1))
		return nil
	}),
}

var saveResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the save",
	Args:  cobra.NoArgs,
	RunE: withSaveStore(func(ctx context.Context, out io.Writer, _ *storage.Store, s *save.Store, _ []string) error {
		if !flagResetYes {
			return errors.New("reset deletes all progress, pass --yes to confirm")
		}
		if err := s.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "Save deleted.")
		return nil
	}),
}

var saveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every stored save",
	Args:  cobra.NoArgs,
	RunE: withSaveStore(func(ctx context.Context, out io.Writer, db *storage.Store, _ *save.Store, _ []string) error {
		saves, err := db.Saves(ctx)
		if err != nil {
			return err
		}
		if len(saves) == 0 {
			fmt.Fprintln(out, "No saves stored.")
			return nil
		}
		fmt.Fprintf(out, "  %-32s  %-10s  %s\n", "Key", "Size", "Updated")
		fmt.Fprintf(out, "  %-32s  %-10s  %s\n", "---", "----", "-------")
		for _, info := range saves {
			fmt.Fprintf(out, "  %-32s  %-10s  %s\n",
				info.Key, humanize.Bytes(uint64(info.Size)), humanize.Time(info.UpdatedAt)) // #nosec G115 -- LENGTH() is never negative
		}
		return nil
	}),
}

func init() {
	saveResetCmd.Flags().BoolVar(&flagResetYes, "yes", false, "Confirm deleting the save")

	saveCmd.AddCommand(saveShowCmd)
	saveCmd.AddCommand(saveExportCmd)
	saveCmd.AddCommand(saveImportCmd)
	saveCmd.AddCommand(saveResetCmd)
	saveCmd.AddCommand(saveListCmd)
}

type saveAction func(ctx context.Context, out io.Writer, db *storage.Store, s *save.Store, args []string) error

// withSaveStore opens the database and hands the action the selected
// player's save.
func withSaveStore(action saveAction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		db, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return action(ctx, cmd.OutOrStdout(), db, save.NewStore(db, save.KeyFor(flagPlayer)), args)
	}
}
