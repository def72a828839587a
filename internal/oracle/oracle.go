// Package oracle asks an external rule engine for the opponent move.
//
// The engine is a black box: it receives the board snapshot, its dimensions and
// the difficulty, and answers with an empty cell index or with no move at all.
package oracle

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/nxm-tictactoe/internal/entity"
)

// Request is the board snapshot handed to the engine.
type Request struct {
	Board      []string
	Rows       int
	Cols       int
	Difficulty entity.Difficulty
}

// NewRequest snapshots the board of the given game.
func NewRequest(game *entity.Game) Request {
	rows, cols := game.Board.Size()

	return Request{
		Board:      game.Board.Snapshot(),
		Rows:       rows,
		Cols:       cols,
		Difficulty: game.Difficulty,
	}
}

// predicate maps the difficulty to the rule entry point.
func predicate(difficulty entity.Difficulty) string {
	if difficulty == entity.DifficultDifficulty {
		return "bot_move_difficult"
	}
	return "bot_move_easy"
}

// buildQuery renders the request as a goal, the board as a list of quoted atoms.
func buildQuery(req Request) string {
	cells := make([]string, len(req.Board))
	for i, cell := range req.Board {
		cells[i] = "'" + strings.ReplaceAll(cell, "'", "''") + "'"
	}

	return fmt.Sprintf("%s([%s], %d, %d, Move).", predicate(req.Difficulty), strings.Join(cells, ","), req.Rows, req.Cols)
}
