package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/nxm-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/nxm-tictactoe/internal/entity"
)

func MakeTurn(gameInstance *entity.Game, player entity.Mark, cell int) error {
	if gameInstance.IsFinished() {
		return apperror.ErrGameFinished
	}

	if gameInstance.Turn != player {
		return apperror.ErrNotYourTurn
	}

	if err := gameInstance.Board.Set(cell, player); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	gameInstance.Moves++
	updateGameStatus(gameInstance, player)

	return nil
}

// DeclareDraw ends the game when the opponent has no move left to offer.
func DeclareDraw(gameInstance *entity.Game) {
	gameInstance.Status = entity.StatusDraw
	gameInstance.Turn = ""
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(gameInstance *entity.Game, player entity.Mark) {
	gameInstance.Status = Evaluate(gameInstance.Board, player)

	if gameInstance.IsFinished() {
		gameInstance.Turn = ""
		return
	}

	gameInstance.Turn = player.Opponent()
}
