package websocket

import (
	"fmt"
	"log/slog"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/nxm-tictactoe/internal/entity"
)

// session is one connection and the game it plays. Messages of a connection
// are handled one at a time so the game is never shared.
type session struct {
	logger *slog.Logger
	conn   *websocket.Conn
	game   *entity.Game

	statusSent bool
	writeErr   error
}

func newSession(logger *slog.Logger, conn *websocket.Conn) *session {
	return &session{
		logger: logger.With("component", "session", "remote", conn.RemoteAddr().String()),
		conn:   conn,
	}
}

func (that *session) CellUpdated(cell int, mark entity.Mark) {
	that.send(actionCellUpdate, CellPayload{Cell: cell, Mark: mark})
}

func (that *session) StatusChanged(game *entity.Game) {
	that.statusSent = true
	that.send(actionGameStatus, newStatusPayload(game))
}

func (that *session) sendError(text string) error {
	that.send(actionError, ErrorPayload{Error: text})
	return that.writeErr
}

// send writes a message, after the first failure every later write is skipped.
func (that *session) send(action string, payload any) {
	if that.writeErr != nil {
		return
	}

	message, err := newMessage(action, payload)
	if err != nil {
		that.writeErr = err
		return
	}

	if err = that.conn.WriteJSON(message); err != nil {
		that.writeErr = fmt.Errorf("failed to write %s: %w", action, err)
		that.logger.Error("failed to send message", "action", action, "error", err)
	}
}
