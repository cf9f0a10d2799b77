// Package main is the entry point for the chessboard CLI, which builds a
// head-to-head daily chess leaderboard for a roster of chess.com players.
package main

import "github.com/pable/chessboard/cmd"

func main() {
	cmd.Execute()
}
