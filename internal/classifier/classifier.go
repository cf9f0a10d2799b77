// Package classifier turns raw chess.com game records into head-to-head
// Outcomes between roster members.
package classifier

import (
	"strings"

	"github.com/pable/chessboard/internal/chesscom"
	"github.com/pable/chessboard/internal/model"
)

// TimeClassDaily is the only time control that is scored.
const TimeClassDaily = "daily"

// Reason explains why Classify accepted or rejected a record.
type Reason int

const (
	ReasonAccepted Reason = iota
	ReasonTimeClass
	ReasonMissingField
	ReasonNotParticipant
	ReasonNotRoster
	ReasonUnscored
)

func (r Reason) String() string {
	switch r {
	case ReasonAccepted:
		return "accepted"
	case ReasonTimeClass:
		return "time-class"
	case ReasonMissingField:
		return "missing-field"
	case ReasonNotParticipant:
		return "not-participant"
	case ReasonNotRoster:
		return "not-roster"
	case ReasonUnscored:
		return "unscored"
	default:
		return "?"
	}
}

// lossCodes are the result codes chess.com assigns to the losing side.
// "abandoned" is not scored.
var lossCodes = map[string]struct{}{
	"checkmated": {},
	"timeout":    {},
	"resigned":   {},
	"lose":       {},
}

// drawCodes are scored draw codes that do not contain "draw". Other draw
// endings such as "repetition" or "insufficient" are not scored.
var drawCodes = map[string]struct{}{
	"stalemate": {},
	"agreed":    {},
}

// MapResult converts a chess.com result code to a scored Result. The second
// return is false for codes that are not scored.
func MapResult(code string) (model.Result, bool) {
	if code == "win" {
		return model.ResultWin, true
	}
	if _, ok := lossCodes[code]; ok {
		return model.ResultLoss, true
	}
	if _, ok := drawCodes[code]; ok || strings.Contains(code, "draw") {
		return model.ResultDraw, true
	}
	return "", false
}

// Eligible returns the lower-cased roster minus subject.
func Eligible(roster []string, subject string) map[string]struct{} {
	subject = strings.ToLower(subject)
	out := make(map[string]struct{}, len(roster))
	for _, p := range roster {
		p = strings.ToLower(p)
		if p == subject {
			continue
		}
		out[p] = struct{}{}
	}
	return out
}

// Classify decides whether g is a scored daily game between subject and a
// member of eligible. On acceptance it returns the Outcome from subject's
// side and ReasonAccepted. Identifiers in the Outcome are lower-cased.
func Classify(g chesscom.Game, subject string, eligible map[string]struct{}) (model.Outcome, Reason) {
	if g.TimeClass != TimeClassDaily {
		return model.Outcome{}, ReasonTimeClass
	}

	white, okW := chesscom.UsernameOf(g.White)
	black, okB := chesscom.UsernameOf(g.Black)
	if !okW || !okB {
		return model.Outcome{}, ReasonMissingField
	}
	subject = strings.ToLower(subject)
	white, black = strings.ToLower(white), strings.ToLower(black)

	var opponent string
	var own *chesscom.Side
	switch subject {
	case white:
		opponent, own = black, g.White
	case black:
		opponent, own = white, g.Black
	default:
		return model.Outcome{}, ReasonNotParticipant
	}

	if _, ok := eligible[opponent]; !ok || opponent == subject {
		return model.Outcome{}, ReasonNotRoster
	}

	result, ok := MapResult(chesscom.ResultOf(own))
	if !ok {
		return model.Outcome{}, ReasonUnscored
	}

	return model.Outcome{
		Player:   subject,
		Opponent: opponent,
		Result:   result,
		EndTime:  g.EndTimeOr(),
		URL:      g.URLOr(),
	}, ReasonAccepted
}

// ClassifyArchive returns the accepted Outcomes of games, in input order.
func ClassifyArchive(games []chesscom.Game, subject string, eligible map[string]struct{}) []model.Outcome {
	var out []model.Outcome
	for _, g := range games {
		if o, reason := Classify(g, subject, eligible); reason == ReasonAccepted {
			out = append(out, o)
		}
	}
	return out
}
