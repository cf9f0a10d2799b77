package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pable/chessboard/internal/config"
	"github.com/pable/chessboard/internal/logging"
	"github.com/pable/chessboard/internal/storage"
)

var (
	configPath string
	logLevel   string
	dbPath     string

	cfg    *config.Config
	logger = logging.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "chessboard",
	Short: "Head-to-head daily chess leaderboard for a fixed roster",
	Long: `Fetch every roster player's chess.com game archives, keep the daily games
played between roster members, and write a chronological game log and a
points leaderboard (rolling window and all-time) as CSV.

Running without a subcommand is the same as 'chessboard run'.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runRun,
}

// Execute runs the root command. A failure is printed with its stack trace
// and the process exits with status 1.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		reportFatal(os.Stderr, err)
	}
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// reportFatal prints err once, with the stack recorded where it was created.
// It does not go through the logger, which is a no-op if setup failed.
func reportFatal(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %+v\n", err)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite run snapshot (overrides output.database)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
}

// setup loads and validates configuration, then builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.LogLevel = logLevel
	}
	if dbPath != "" {
		loaded.Output.Database = dbPath
	}
	applyRunFlags(cmd, loaded)
	if err := loaded.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(loaded.LogLevel)
	if err != nil {
		return err
	}
	logger = logging.NewConsole(level)
	cfg = loaded
	return nil
}

// requireDB returns the configured snapshot path or an error telling the
// user how to set one.
func requireDB() (string, error) {
	if cfg.Output.Database == "" {
		return "", errors.New("no database configured: pass --db or set output.database")
	}
	return cfg.Output.Database, nil
}

// openSnapshot opens the configured run snapshot.
func openSnapshot() (*storage.DB, error) {
	path, err := requireDB()
	if err != nil {
		return nil, err
	}
	db, err := storage.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open snapshot %s", path)
	}
	return db, nil
}
