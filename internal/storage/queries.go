package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/pable/chessboard/internal/model"
)

// RunMeta describes the run that produced the stored games.
type RunMeta struct {
	FinishedAt time.Time
	Roster     []string
	Scoring    model.Scoring
	WindowSize int
}

// ReplaceRun discards any previous snapshot and stores meta and outcomes in
// a single transaction. Outcomes keep their input order.
func (db *DB) ReplaceRun(meta RunMeta, outcomes []model.Outcome) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM games"); err != nil {
		return errors.Wrap(err, "clear games")
	}
	if _, err := tx.Exec("DELETE FROM runs"); err != nil {
		return errors.Wrap(err, "clear runs")
	}
	_, err = tx.Exec(`
		INSERT INTO runs(id, finished_at, roster, win_points, draw_points, window_size)
		VALUES (1, ?, ?, ?, ?, ?)`,
		meta.FinishedAt.UTC().Format(time.RFC3339), strings.Join(meta.Roster, ","),
		meta.Scoring.Win, meta.Scoring.Draw, meta.WindowSize,
	)
	if err != nil {
		return errors.Wrap(err, "insert run")
	}

	stmt, err := tx.Prepare(`
		INSERT INTO games(seq, player, opponent, outcome, end_time, url)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, o := range outcomes {
		if _, err := stmt.Exec(i, o.Player, o.Opponent, string(o.Result), o.EndTime, o.URL); err != nil {
			return errors.Wrapf(err, "insert game %s vs %s", o.Player, o.Opponent)
		}
	}
	return tx.Commit()
}

// LoadRun returns the stored run metadata, or nil if no run was saved.
func (db *DB) LoadRun() (*RunMeta, error) {
	var (
		finished, roster string
		meta             RunMeta
	)
	err := db.conn.QueryRow(`
		SELECT finished_at, roster, win_points, draw_points, window_size
		FROM runs WHERE id = 1`).Scan(&finished, &roster, &meta.Scoring.Win, &meta.Scoring.Draw, &meta.WindowSize)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	meta.FinishedAt, err = time.Parse(time.RFC3339, finished)
	if err != nil {
		return nil, errors.Wrapf(err, "parse finished_at %q", finished)
	}
	if roster != "" {
		meta.Roster = strings.Split(roster, ",")
	}
	return &meta, nil
}

// ListOutcomes returns stored outcomes in insertion order. A non-empty
// player restricts the result to that player's side of each game.
func (db *DB) ListOutcomes(player string) ([]model.Outcome, error) {
	query := "SELECT player, opponent, outcome, end_time, url FROM games"
	var args []any
	if player != "" {
		query += " WHERE player = ?"
		args = append(args, strings.ToLower(player))
	}
	query += " ORDER BY seq"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Outcome
	for rows.Next() {
		var o model.Outcome
		var result string
		if err := rows.Scan(&o.Player, &o.Opponent, &result, &o.EndTime, &o.URL); err != nil {
			return nil, err
		}
		o.Result = model.Result(result)
		out = append(out, o)
	}
	return out, rows.Err()
}

// QueryRaw runs an arbitrary read query and returns column names and rows
// rendered as strings.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, errors.Wrap(err, "query")
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(x)
			default:
				row[i] = fmt.Sprint(x)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}
