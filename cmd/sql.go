package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/chessboard/internal/report"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the stored run",
	Long: `Run an arbitrary SQL query against the SQLite snapshot and print results as a table.

Schema overview:
  runs(id, finished_at, roster, win_points, draw_points, window_size)
  games(seq, player, opponent, outcome, end_time, url)

end_time is unix seconds. Example:
  chessboard sql --db run.db "SELECT player, outcome, COUNT(*) FROM games GROUP BY 1, 2"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	db, err := openSnapshot()
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(strings.Join(args, " "))
	if err != nil {
		return err
	}
	report.PrintRows(cmd.OutOrStdout(), cols, rows)
	return nil
}
