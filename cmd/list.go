package cmd

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pable/chessboard/internal/report"
)

var listPlayer string

var listCmd = &cobra.Command{
	Use:     "games",
	Aliases: []string{"list"},
	Short:   "List the games of the stored run",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringVarP(&listPlayer, "player", "p", "", "only show this player's side of each game")
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openSnapshot()
	if err != nil {
		return err
	}
	defer db.Close()

	outcomes, err := db.ListOutcomes(listPlayer)
	if err != nil {
		return errors.Wrap(err, "list games")
	}
	if len(outcomes) == 0 {
		fmt.Fprintln(os.Stdout, "No games stored. Run 'chessboard run --db <path>' to add some.")
		return nil
	}

	report.PrintGames(os.Stdout, outcomes)
	fmt.Fprintf(os.Stdout, "\n(%d games)\n", len(outcomes))
	return nil
}
