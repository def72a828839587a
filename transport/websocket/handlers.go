package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/nxm-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/nxm-tictactoe/internal/entity"
)

// handleNewGame replaces the session game with a fresh one.
func (that *Server) handleNewGame(_ context.Context, sess *session, msg *Message) error {
	log := that.logger.With("method", "handleNewGame")

	var payloadReq NewGameRequest

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		_ = sess.sendError("invalid game:new payload")
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	difficulty := that.defaultDifficulty
	if payloadReq.Difficulty != "" {
		difficulty = entity.ParseDifficulty(payloadReq.Difficulty)
	}

	game, err := that.gameManager.NewGame(payloadReq.Rows, payloadReq.Cols, difficulty)
	if errors.Is(err, apperror.ErrInvalidDimensions) {
		return sess.sendError(err.Error())
	}

	if err != nil {
		_ = sess.sendError("failed to create a new game")
		return fmt.Errorf("failed to create game: %w", err)
	}

	sess.game = game
	sess.send(actionGameNew, newStatusPayload(game))

	log.Info("game started", "gameID", game.ID)

	return sess.writeErr
}

func (that *Server) handleGameTurn(ctx context.Context, sess *session, msg *Message) error {
	log := that.logger.With("method", "handleGameTurn")

	var payloadReq TurnRequest

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		_ = sess.sendError("invalid game:turn payload")
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Cell == nil {
		return sess.sendError("cell is required")
	}

	if sess.game == nil {
		return sess.sendError("game is not started")
	}

	log = log.With("gameID", sess.game.ID)

	sess.statusSent = false

	err := that.gameManager.MakeTurn(ctx, sess.game, *payloadReq.Cell, sess)
	switch {
	case errors.Is(err, apperror.ErrGameFinished):
		return sess.sendError(fmt.Sprintf("game %s: %v", sess.game.ID, err))
	case errors.Is(err, apperror.ErrOracleFailed):
		log.Error("oracle failed, game aborted", "error", err)
		return sess.sendError("AI opponent failed, game aborted")
	case err != nil:
		log.Error("failed to make turn", "error", err)
		return sess.sendError("failed to make turn")
	}

	// An ignored move produces no events, the client still gets the current state.
	if !sess.statusSent {
		sess.StatusChanged(sess.game)
	}

	return sess.writeErr
}
