package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/pable/chessboard/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

var sampleMeta = RunMeta{
	FinishedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	Roster:     []string{"alice", "bob"},
	Scoring:    model.DefaultScoring,
	WindowSize: 30,
}

var sampleOutcomes = []model.Outcome{
	{Player: "alice", Opponent: "bob", Result: model.ResultWin, EndTime: 200, URL: "u2"},
	{Player: "bob", Opponent: "alice", Result: model.ResultLoss, EndTime: 200, URL: "u2"},
	{Player: "alice", Opponent: "bob", Result: model.ResultDraw, EndTime: 100, URL: "u1"},
}

func TestLoadRun_Empty(t *testing.T) {
	db := openMemDB(t)

	meta, err := db.LoadRun()
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}
	if meta != nil {
		t.Errorf("expected nil meta before any run, got %+v", meta)
	}
}

func TestReplaceRunRoundTrip(t *testing.T) {
	db := openMemDB(t)

	if err := db.ReplaceRun(sampleMeta, sampleOutcomes); err != nil {
		t.Fatalf("ReplaceRun: %v", err)
	}

	meta, err := db.LoadRun()
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}
	if meta == nil {
		t.Fatal("expected stored run")
	}
	if !meta.FinishedAt.Equal(sampleMeta.FinishedAt) || meta.WindowSize != 30 || meta.Scoring != model.DefaultScoring {
		t.Errorf("meta mismatch: %+v", meta)
	}
	if len(meta.Roster) != 2 || meta.Roster[1] != "bob" {
		t.Errorf("roster mismatch: %v", meta.Roster)
	}

	got, err := db.ListOutcomes("")
	if err != nil {
		t.Fatalf("ListOutcomes: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(got))
	}
	for i := range got {
		if got[i] != sampleOutcomes[i] {
			t.Errorf("row %d: got %+v, want %+v", i, got[i], sampleOutcomes[i])
		}
	}
}

func TestReplaceRunDiscardsPrevious(t *testing.T) {
	db := openMemDB(t)

	db.ReplaceRun(sampleMeta, sampleOutcomes)
	if err := db.ReplaceRun(sampleMeta, sampleOutcomes[:1]); err != nil {
		t.Fatalf("second ReplaceRun: %v", err)
	}

	got, err := db.ListOutcomes("")
	if err != nil {
		t.Fatalf("ListOutcomes: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected previous snapshot to be replaced, got %d rows", len(got))
	}
}

func TestListOutcomesByPlayer(t *testing.T) {
	db := openMemDB(t)
	db.ReplaceRun(sampleMeta, sampleOutcomes)

	got, err := db.ListOutcomes("BOB")
	if err != nil {
		t.Fatalf("ListOutcomes: %v", err)
	}
	if len(got) != 1 || got[0].Player != "bob" {
		t.Errorf("expected only bob's row, got %+v", got)
	}
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)
	db.ReplaceRun(sampleMeta, sampleOutcomes)

	cols, rows, err := db.QueryRaw("SELECT player, COUNT(*) AS n FROM games GROUP BY player ORDER BY player")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(cols) != 2 || cols[1] != "n" {
		t.Errorf("unexpected columns %v", cols)
	}
	if len(rows) != 2 || rows[0][0] != "alice" || rows[0][1] != "2" {
		t.Errorf("unexpected rows %v", rows)
	}

	if _, _, err := db.QueryRaw("SELECT * FROM nope"); err == nil {
		t.Error("expected error for unknown table")
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := db.ReplaceRun(sampleMeta, sampleOutcomes); err != nil {
		t.Fatalf("ReplaceRun: %v", err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	got, err := db.ListOutcomes("")
	if err != nil || len(got) != 3 {
		t.Errorf("expected 3 persisted rows, got %d (err=%v)", len(got), err)
	}
}

func TestRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	db.Close()
	if err := os.WriteFile(path+"-wal", nil, 0o644); err != nil {
		t.Fatal(err)
	}

	removed, err := Remove(path)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if want := []string{path, path + "-wal"}; !reflect.DeepEqual(removed, want) {
		t.Errorf("removed = %v, want %v", removed, want)
	}
	for _, f := range Files(path) {
		if _, err := os.Stat(f); !os.IsNotExist(err) {
			t.Errorf("%s still present (err=%v)", f, err)
		}
	}

	removed, err = Remove(path)
	if err != nil || len(removed) != 0 {
		t.Errorf("second Remove = %v, %v; want nothing removed", removed, err)
	}
}
