package aggregator

import (
	"reflect"
	"testing"

	"github.com/pable/chessboard/internal/model"
)

// outcome builds a minimal Outcome with no URL.
func outcome(player, opponent string, r model.Result, endTime int64) model.Outcome {
	return model.Outcome{Player: player, Opponent: opponent, Result: r, EndTime: endTime}
}

func TestAggregate_PointsAndPPG(t *testing.T) {
	outcomes := []model.Outcome{
		outcome("alice", "bob", model.ResultWin, 1),
		outcome("alice", "bob", model.ResultWin, 2),
		outcome("alice", "carol", model.ResultDraw, 3),
		outcome("alice", "carol", model.ResultLoss, 4),
	}

	stats := Aggregate(outcomes, model.DefaultScoring)
	a, ok := stats["alice"]
	if !ok {
		t.Fatal("alice missing from stats")
	}
	if a.Games != 4 || a.Wins != 2 || a.Draws != 1 || a.Losses != 1 {
		t.Errorf("counts: %+v", a)
	}
	if a.Points != 7 {
		t.Errorf("points: want 7, got %d", a.Points)
	}
	if a.PointsPerGame != 1.75 {
		t.Errorf("ppg: want 1.75, got %f", a.PointsPerGame)
	}
}

func TestAggregate_OpponentsOnlyAreAbsent(t *testing.T) {
	stats := Aggregate([]model.Outcome{outcome("alice", "bob", model.ResultLoss, 1)}, model.DefaultScoring)
	if _, ok := stats["bob"]; ok {
		t.Error("bob only appears as opponent and should have no entry")
	}
	if stats["alice"].PointsPerGame != 0 {
		t.Errorf("all losses should give ppg 0, got %f", stats["alice"].PointsPerGame)
	}
}

func TestAggregate_CustomScoring(t *testing.T) {
	outcomes := []model.Outcome{
		outcome("alice", "bob", model.ResultWin, 1),
		outcome("alice", "bob", model.ResultDraw, 2),
		outcome("alice", "bob", model.ResultDraw, 3),
	}
	s := Aggregate(outcomes, model.Scoring{Win: 2, Draw: 1})["alice"]
	if s.Points != 4 {
		t.Errorf("points: want 4, got %d", s.Points)
	}
	if s.PointsPerGame != 1.33 {
		t.Errorf("ppg: want 1.33, got %f", s.PointsPerGame)
	}
}

func TestAggregate_Invariants(t *testing.T) {
	results := []model.Result{model.ResultWin, model.ResultDraw, model.ResultLoss}
	players := []string{"alice", "bob", "carol"}
	var outcomes []model.Outcome
	for i := 0; i < 50; i++ {
		p := players[i%len(players)]
		opp := players[(i+1)%len(players)]
		outcomes = append(outcomes, outcome(p, opp, results[(i*7)%3], int64(i)))
	}

	for _, s := range Aggregate(outcomes, model.DefaultScoring) {
		if s.Games != s.Wins+s.Draws+s.Losses {
			t.Errorf("%s: games %d != %d+%d+%d", s.Player, s.Games, s.Wins, s.Draws, s.Losses)
		}
		if s.Points != 3*s.Wins+s.Draws {
			t.Errorf("%s: points %d != 3*%d+%d", s.Player, s.Points, s.Wins, s.Draws)
		}
	}
}

func TestRank_TieBreakByPlayer(t *testing.T) {
	stats := map[string]model.PlayerStats{
		"carol": {Player: "carol", Points: 3},
		"alice": {Player: "alice", Points: 3},
		"bob":   {Player: "bob", Points: 6},
		"dave":  {Player: "dave", Points: 0},
	}
	var got []string
	for _, s := range Rank(stats) {
		got = append(got, s.Player)
	}
	want := []string{"bob", "alice", "carol", "dave"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSortChronological_StableAndCopy(t *testing.T) {
	in := []model.Outcome{
		outcome("alice", "bob", model.ResultWin, 30),
		outcome("bob", "alice", model.ResultLoss, 10),
		outcome("carol", "bob", model.ResultDraw, 10),
	}
	got := SortChronological(in)

	if got[0].Player != "bob" || got[1].Player != "carol" || got[2].Player != "alice" {
		t.Errorf("unexpected order: %v", got)
	}
	if in[0].Player != "alice" {
		t.Error("input slice was mutated")
	}
}

func TestWindow(t *testing.T) {
	sorted := []model.Outcome{
		outcome("a", "b", model.ResultWin, 1),
		outcome("a", "b", model.ResultWin, 2),
		outcome("a", "b", model.ResultWin, 3),
	}
	if got := Window(sorted, 2); len(got) != 2 || got[0].EndTime != 2 {
		t.Errorf("Window(2) = %v", got)
	}
	if got := Window(sorted, 30); len(got) != 3 {
		t.Errorf("Window(30) should return all, got %d", len(got))
	}
	if got := Window(sorted, 0); len(got) != 0 {
		t.Errorf("Window(0) should be empty, got %d", len(got))
	}
}

func TestBuild_RollingEqualsTotalWhenShort(t *testing.T) {
	outcomes := []model.Outcome{
		outcome("alice", "bob", model.ResultWin, 5),
		outcome("bob", "alice", model.ResultLoss, 5),
		outcome("alice", "bob", model.ResultDraw, 9),
		outcome("bob", "alice", model.ResultDraw, 9),
	}
	b := Build(outcomes, model.DefaultScoring, 30)
	if !reflect.DeepEqual(b.Rolling, b.Total) {
		t.Errorf("rolling %v != total %v", b.Rolling, b.Total)
	}
}

func TestBuild_RollingUsesMostRecentAcrossPlayers(t *testing.T) {
	outcomes := []model.Outcome{
		outcome("alice", "bob", model.ResultWin, 300),
		outcome("bob", "alice", model.ResultWin, 100),
		outcome("bob", "alice", model.ResultWin, 200),
	}
	b := Build(outcomes, model.DefaultScoring, 2)

	if len(b.Rolling) != 2 {
		t.Fatalf("expected 2 rolling rows, got %d", len(b.Rolling))
	}
	// Window holds bob@200 and alice@300: one win each, tie broken by name.
	if b.Rolling[0].Player != "alice" || b.Rolling[1].Player != "bob" {
		t.Errorf("unexpected rolling order: %+v", b.Rolling)
	}
	if b.Total[0].Player != "bob" || b.Total[0].Points != 6 {
		t.Errorf("unexpected total leader: %+v", b.Total[0])
	}
}
