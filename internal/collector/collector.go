// Package collector walks the roster's chess.com archives and gathers the
// head-to-head Outcomes among roster members.
package collector

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/pable/chessboard/internal/chesscom"
	"github.com/pable/chessboard/internal/classifier"
	"github.com/pable/chessboard/internal/logging"
	"github.com/pable/chessboard/internal/model"
)

// Fetcher is the subset of *chesscom.Client the collector needs.
type Fetcher interface {
	Archives(ctx context.Context, username string) ([]string, error)
	Games(ctx context.Context, archiveURL string) ([]chesscom.Game, error)
}

// Collect fetches every roster player's archives in order and returns the
// concatenated Outcomes. A failure listing a player's archives aborts the
// run; a failure fetching one archive is logged and that archive skipped.
func Collect(ctx context.Context, f Fetcher, roster []string, log *logging.Logger) ([]model.Outcome, error) {
	if log == nil {
		log = logging.NewNop()
	}

	var all []model.Outcome
	for _, player := range roster {
		subject := strings.ToLower(player)
		plog := log.With("player", subject)
		plog.Info("parsing games")

		archives, err := f.Archives(ctx, subject)
		if err != nil {
			return nil, errors.Wrapf(err, "collect %s", subject)
		}

		eligible := classifier.Eligible(roster, subject)
		before := len(all)
		for _, url := range archives {
			games, err := f.Games(ctx, url)
			if err != nil {
				plog.Warn("failed to fetch archive, skipping", "archive", url, "error", err)
				continue
			}
			found := classifier.ClassifyArchive(games, subject, eligible)
			plog.Debug("archive classified", "archive", url, "games", len(games), "outcomes", len(found))
			all = append(all, found...)
		}
		plog.Info("player done", "archives", len(archives), "outcomes", len(all)-before)
	}
	return all, nil
}
