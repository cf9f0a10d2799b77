package storage

import (
	"database/sql"
	_ "embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/cockroachdb/errors"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// DB wraps a sql.DB holding the snapshot of the latest run.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database at the given path and applies the schema.
func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open db")
	}
	// A single connection keeps ":memory:" databases coherent.
	conn.SetMaxOpenConns(1)
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "apply schema")
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Files lists the files SQLite may keep for the database at path.
func Files(path string) []string {
	return []string{path, path + "-wal", path + "-shm"}
}

// Remove deletes the database at path along with its WAL and shared-memory
// files and returns the ones that existed. Missing files are not an error.
func Remove(path string) ([]string, error) {
	var removed []string
	for _, f := range Files(path) {
		err := os.Remove(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return removed, errors.Wrapf(err, "remove %s", f)
		}
		removed = append(removed, f)
	}
	return removed, nil
}
