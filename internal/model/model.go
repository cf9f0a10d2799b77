package model

import "time"

// Result is a game outcome from the subject player's point of view.
type Result string

const (
	ResultWin  Result = "win"
	ResultDraw Result = "draw"
	ResultLoss Result = "loss"
)

// Valid reports whether r is one of the three scored results.
func (r Result) Valid() bool {
	switch r {
	case ResultWin, ResultDraw, ResultLoss:
		return true
	default:
		return false
	}
}

// Outcome is one qualifying head-to-head game seen from Player's side.
// A game between two roster members yields two Outcomes, one per side,
// because each player's archive is scanned separately.
type Outcome struct {
	Player   string
	Opponent string
	Result   Result
	EndTime  int64 // unix seconds, 0 if the API omitted it
	URL      string
}

// Date returns the UTC calendar date the game ended on.
func (o Outcome) Date() string {
	return time.Unix(o.EndTime, 0).UTC().Format("2006-01-02")
}

// Scoring holds the points awarded per result. A loss is always worth 0.
type Scoring struct {
	Win  int `toml:"win" validate:"gte=0"`
	Draw int `toml:"draw" validate:"gte=0"`
}

// DefaultScoring is 3 points for a win and 1 for a draw.
var DefaultScoring = Scoring{Win: 3, Draw: 1}

// Points returns the score for the given result counts.
func (s Scoring) Points(wins, draws int) int {
	return wins*s.Win + draws*s.Draw
}

// PlayerStats is the aggregated record of one player over a set of Outcomes.
type PlayerStats struct {
	Player        string
	Games         int
	Wins          int
	Draws         int
	Losses        int
	Points        int
	PointsPerGame float64
}
