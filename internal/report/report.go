package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/chessboard/internal/aggregator"
	"github.com/pable/chessboard/internal/model"
)

var (
	gameLogHeader     = []string{"Date", "Player", "Opponent", "Outcome", "Game URL"}
	leaderboardHeader = []string{"Player", "Games", "Wins", "Draws", "Losses", "Points"}
)

// RollingTitle is the section title for the trailing-window leaderboard.
func RollingTitle(n int) string {
	return fmt.Sprintf("Rolling Leaderboard (Last %d Games)", n)
}

// TotalTitle is the section title for the all-time leaderboard.
const TotalTitle = "Total Leaderboard"

// WriteGameLog writes every outcome as CSV, oldest first.
func WriteGameLog(w io.Writer, outcomes []model.Outcome) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(gameLogHeader); err != nil {
		return err
	}
	for _, o := range aggregator.SortChronological(outcomes) {
		if err := cw.Write([]string{o.Date(), o.Player, o.Opponent, string(o.Result), o.URL}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// LeaderboardOptions controls the optional parts of the leaderboard CSV.
type LeaderboardOptions struct {
	// Legend appends the points legend after both sections.
	Legend bool
}

// WriteLeaderboard writes the rolling section followed by the total section.
func WriteLeaderboard(w io.Writer, board aggregator.Leaderboard, opts LeaderboardOptions) error {
	cw := csv.NewWriter(w)
	writeSection(cw, RollingTitle(board.WindowSize), board.Rolling)
	writeSection(cw, TotalTitle, board.Total)
	if opts.Legend {
		cw.Write([]string{"Legend"})
		cw.Write([]string{
			fmt.Sprintf("Win = %d points", board.Scoring.Win),
			fmt.Sprintf("Draw = %d points", board.Scoring.Draw),
		})
	}
	cw.Flush()
	return cw.Error()
}

// writeSection writes title, header, rows and a blank separator. Write errors
// are sticky on the csv.Writer and surface from Error after Flush.
func writeSection(cw *csv.Writer, title string, ranked []model.PlayerStats) {
	cw.Write([]string{title})
	cw.Write(leaderboardHeader)
	for _, s := range ranked {
		cw.Write([]string{
			s.Player,
			strconv.Itoa(s.Games),
			strconv.Itoa(s.Wins),
			strconv.Itoa(s.Draws),
			strconv.Itoa(s.Losses),
			strconv.Itoa(s.Points),
		})
	}
	cw.Write([]string{})
}

// SaveGameLog writes the game log CSV to path.
func SaveGameLog(path string, outcomes []model.Outcome) error {
	return saveFile(path, func(w io.Writer) error {
		return WriteGameLog(w, outcomes)
	})
}

// SaveLeaderboard writes the leaderboard CSV to path.
func SaveLeaderboard(path string, board aggregator.Leaderboard, opts LeaderboardOptions) error {
	return saveFile(path, func(w io.Writer) error {
		return WriteLeaderboard(w, board, opts)
	})
}

// saveFile creates path, runs write, and closes it. A failed write leaves
// whatever was written so far.
func saveFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()
	if err := write(f); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

var cTitle = color.New(color.FgCyan, color.Bold)

// newTable returns a table with centered headers and rows aligned to rowAlign.
func newTable(w io.Writer, rowAlign tw.Align) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: rowAlign}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// PrintLeaderboard prints one ranked section as a terminal table.
func PrintLeaderboard(w io.Writer, title string, ranked []model.PlayerStats) {
	cTitle.Fprintf(w, "\n%s\n", title)
	if len(ranked) == 0 {
		fmt.Fprintln(w, "(no games)")
		return
	}

	table := newTable(w, tw.AlignRight)
	table.Header("#", "PLAYER", "GAMES", "W", "D", "L", "PTS", "PPG")

	for i, s := range ranked {
		table.Append(
			strconv.Itoa(i+1),
			s.Player,
			strconv.Itoa(s.Games),
			strconv.Itoa(s.Wins),
			strconv.Itoa(s.Draws),
			strconv.Itoa(s.Losses),
			strconv.Itoa(s.Points),
			fmt.Sprintf("%.2f", s.PointsPerGame),
		)
	}
	table.Render()
}

// PrintBoard prints both sections of a leaderboard.
func PrintBoard(w io.Writer, board aggregator.Leaderboard) {
	PrintLeaderboard(w, RollingTitle(board.WindowSize), board.Rolling)
	PrintLeaderboard(w, TotalTitle, board.Total)
}

// PrintGames prints outcomes as a terminal table, oldest first.
func PrintGames(w io.Writer, outcomes []model.Outcome) {
	table := newTable(w, tw.AlignLeft)
	table.Header("DATE", "PLAYER", "OPPONENT", "OUTCOME", "URL")
	for _, o := range aggregator.SortChronological(outcomes) {
		table.Append(o.Date(), o.Player, o.Opponent, string(o.Result), o.URL)
	}
	table.Render()
}

// PrintRows prints the result of an ad-hoc query followed by its row count.
func PrintRows(w io.Writer, cols []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}
	table := newTable(w, tw.AlignRight)
	table.Header(toAny(cols)...)
	for _, row := range rows {
		table.Append(toAny(row)...)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
