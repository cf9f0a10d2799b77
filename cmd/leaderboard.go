package cmd

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pable/chessboard/internal/aggregator"
	"github.com/pable/chessboard/internal/report"
)

var leaderboardWindow int

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the leaderboard of the stored run",
	Long: `Rebuild the rolling and total leaderboards from the SQLite snapshot written
by 'chessboard run --db', without contacting chess.com. The stored scoring
and window size are used unless --last is given.`,
	Args: cobra.NoArgs,
	RunE: runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().IntVar(&leaderboardWindow, "last", 0, "rolling window size in games (default: the stored run's)")
}

func runLeaderboard(cmd *cobra.Command, _ []string) error {
	db, err := openSnapshot()
	if err != nil {
		return err
	}
	defer db.Close()

	meta, err := db.LoadRun()
	if err != nil {
		return errors.Wrap(err, "load run")
	}
	if meta == nil {
		fmt.Fprintln(os.Stdout, "No run stored yet. Run 'chessboard run --db <path>' first.")
		return nil
	}
	outcomes, err := db.ListOutcomes("")
	if err != nil {
		return errors.Wrap(err, "list games")
	}

	window := meta.WindowSize
	if cmd.Flags().Changed("last") {
		window = leaderboardWindow
	}

	fmt.Fprintf(os.Stdout, "Run finished %s  |  roster: %d players  |  games: %d\n",
		meta.FinishedAt.Local().Format("2006-01-02 15:04"), len(meta.Roster), len(outcomes))
	report.PrintBoard(os.Stdout, aggregator.Build(outcomes, meta.Scoring, window))
	return nil
}
