package aggregator

import (
	"math"
	"sort"

	"github.com/pable/chessboard/internal/model"
)

// Aggregate computes PlayerStats for every distinct Player in outcomes.
// Opponents that never appear as Player get no entry.
func Aggregate(outcomes []model.Outcome, scoring model.Scoring) map[string]model.PlayerStats {
	out := make(map[string]model.PlayerStats)
	for _, o := range outcomes {
		s := out[o.Player]
		s.Player = o.Player
		switch o.Result {
		case model.ResultWin:
			s.Wins++
		case model.ResultDraw:
			s.Draws++
		case model.ResultLoss:
			s.Losses++
		default:
			continue
		}
		out[o.Player] = s
	}

	for p, s := range out {
		s.Games = s.Wins + s.Draws + s.Losses
		s.Points = scoring.Points(s.Wins, s.Draws)
		s.PointsPerGame = pointsPerGame(s.Points, s.Games)
		out[p] = s
	}
	return out
}

// pointsPerGame returns points/games rounded to 2 decimals, 0 when games is 0.
func pointsPerGame(points, games int) float64 {
	if games == 0 {
		return 0
	}
	return math.Round(float64(points)/float64(games)*100) / 100
}

// Rank orders stats by points descending, breaking ties by player ascending.
func Rank(stats map[string]model.PlayerStats) []model.PlayerStats {
	out := make([]model.PlayerStats, 0, len(stats))
	for _, s := range stats {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].Player < out[j].Player
	})
	return out
}

// SortChronological returns a copy of outcomes sorted by EndTime ascending.
// Outcomes sharing an EndTime keep their input order.
func SortChronological(outcomes []model.Outcome) []model.Outcome {
	out := make([]model.Outcome, len(outcomes))
	copy(out, outcomes)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EndTime < out[j].EndTime
	})
	return out
}

// Window returns the last n outcomes of a chronologically sorted list,
// counted across all players combined. The whole list is returned when it
// holds fewer than n outcomes.
func Window(sorted []model.Outcome, n int) []model.Outcome {
	if n <= 0 {
		return nil
	}
	if len(sorted) <= n {
		return sorted
	}
	return sorted[len(sorted)-n:]
}

// Leaderboard is the pair of ranked tables written to the leaderboard report.
type Leaderboard struct {
	WindowSize int
	Rolling    []model.PlayerStats
	Total      []model.PlayerStats
	Scoring    model.Scoring
}

// Build ranks outcomes over the trailing window and over the whole list.
func Build(outcomes []model.Outcome, scoring model.Scoring, window int) Leaderboard {
	sorted := SortChronological(outcomes)
	return Leaderboard{
		WindowSize: window,
		Rolling:    Rank(Aggregate(Window(sorted, window), scoring)),
		Total:      Rank(Aggregate(sorted, scoring)),
		Scoring:    scoring,
	}
}
