package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/chessboard/internal/storage"
)

var dropForce bool

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete the run snapshot database",
	Long: `Delete the SQLite run snapshot together with its -wal and -shm files.
The CSV reports are left alone. Without --force, only lists what would go.`,
	Args: cobra.NoArgs,
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "delete without asking")
}

func runDrop(cmd *cobra.Command, _ []string) error {
	path, err := requireDB()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if !dropForce {
		fmt.Fprintf(out, "Would delete: %s\nRe-run with --force to confirm.\n", strings.Join(storage.Files(path), ", "))
		return nil
	}

	removed, err := storage.Remove(path)
	for _, f := range removed {
		fmt.Fprintf(out, "Deleted: %s\n", f)
	}
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		fmt.Fprintf(out, "No snapshot at %s, nothing to drop.\n", path)
		return nil
	}
	logger.Info("dropped run snapshot", "path", path, "files", len(removed))
	return nil
}
