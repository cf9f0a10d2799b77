package cmd

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pable/chessboard/internal/aggregator"
	"github.com/pable/chessboard/internal/chesscom"
	"github.com/pable/chessboard/internal/collector"
	"github.com/pable/chessboard/internal/config"
	"github.com/pable/chessboard/internal/model"
	"github.com/pable/chessboard/internal/report"
	"github.com/pable/chessboard/internal/storage"
)

// run command flags.
var (
	// runRoster replaces the configured roster.
	runRoster []string
	// runWindow is the rolling leaderboard size in games.
	runWindow int
	// runLegend appends the points legend to the leaderboard CSV.
	runLegend bool
	// runGamesOut and runBoardOut override the output file names.
	runGamesOut string
	runBoardOut string
	// runQuiet suppresses the terminal leaderboard.
	runQuiet bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch games and write the game log and leaderboard",
	Long: `Fetches the archives of every roster player from chess.com, keeps daily
games between roster members, and writes:

  game_list.csv    Date,Player,Opponent,Outcome,Game URL (oldest first)
  leaderboard.csv  rolling and total leaderboards

Every run starts from scratch. With --db, the run's games are also stored in
a SQLite snapshot for the leaderboard, games and sql subcommands.

Examples:
  chessboard run
  chessboard run --roster alice,bob,carol --window 10
  chessboard run --config chessboard.toml --db run.db`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	for _, fs := range []*pflag.FlagSet{rootCmd.Flags(), runCmd.Flags()} {
		fs.StringSliceVar(&runRoster, "roster", nil, "comma-separated chess.com usernames (overrides config)")
		fs.IntVar(&runWindow, "window", 0, "rolling leaderboard size in games (overrides config)")
		fs.BoolVar(&runLegend, "legend", false, "append the points legend to the leaderboard CSV")
		fs.StringVar(&runGamesOut, "games-out", "", "game log CSV path (overrides config)")
		fs.StringVar(&runBoardOut, "leaderboard-out", "", "leaderboard CSV path (overrides config)")
		fs.BoolVarP(&runQuiet, "quiet", "q", false, "do not print the leaderboard to stdout")
	}
}

// applyRunFlags copies explicitly set run flags onto c.
func applyRunFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("roster") {
		c.Roster = runRoster
	}
	if flags.Changed("window") {
		c.Leaderboard.RollingWindow = runWindow
	}
	if flags.Changed("legend") {
		c.Leaderboard.Legend = runLegend
	}
	if flags.Changed("games-out") {
		c.Output.GameLog = runGamesOut
	}
	if flags.Changed("leaderboard-out") {
		c.Output.Leaderboard = runBoardOut
	}
}

func runRun(cmd *cobra.Command, _ []string) error {
	opts := cfg.ClientOptions()
	opts.Logger = logger
	client := chesscom.NewClient(opts)

	logger.Info("starting run", "players", len(cfg.Roster), "window", cfg.Leaderboard.RollingWindow)
	outcomes, err := collector.Collect(cmd.Context(), client, cfg.Roster, logger)
	if err != nil {
		return err
	}

	board := aggregator.Build(outcomes, cfg.Scoring, cfg.Leaderboard.RollingWindow)

	if err := report.SaveGameLog(cfg.Output.GameLog, outcomes); err != nil {
		return err
	}
	logger.Info("saved game list", "path", cfg.Output.GameLog, "games", len(outcomes))

	boardOpts := report.LeaderboardOptions{Legend: cfg.Leaderboard.Legend}
	if err := report.SaveLeaderboard(cfg.Output.Leaderboard, board, boardOpts); err != nil {
		return err
	}
	logger.Info("saved leaderboard", "path", cfg.Output.Leaderboard, "players", len(board.Total))

	if cfg.Output.Database != "" {
		if err := saveSnapshot(cfg.Output.Database, outcomes); err != nil {
			return err
		}
		logger.Info("saved run snapshot", "path", cfg.Output.Database)
	}

	if !runQuiet {
		report.PrintBoard(os.Stdout, board)
	}
	return nil
}

// saveSnapshot replaces the SQLite snapshot at path with this run.
func saveSnapshot(path string, outcomes []model.Outcome) error {
	db, err := storage.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open snapshot %s", path)
	}
	defer db.Close()

	meta := storage.RunMeta{
		FinishedAt: time.Now(),
		Roster:     cfg.Roster,
		Scoring:    cfg.Scoring,
		WindowSize: cfg.Leaderboard.RollingWindow,
	}
	return errors.Wrap(db.ReplaceRun(meta, outcomes), "save snapshot")
}
