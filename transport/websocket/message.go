package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/nxm-tictactoe/internal/entity"
)

// Message is the envelope of every frame in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type NewGameRequest struct {
	Rows       int    `json:"rows"`
	Cols       int    `json:"cols"`
	Difficulty string `json:"difficulty,omitempty"`
}

type TurnRequest struct {
	Cell *int `json:"cell"`
}

type CellPayload struct {
	Cell int         `json:"cell"`
	Mark entity.Mark `json:"mark"`
}

type StatusPayload struct {
	Status entity.Status `json:"status"`
	Text   string        `json:"text"`
	Game   *entity.Game  `json:"game"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

func newMessage(action string, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("failed to marshal payload: %w", err)
	}

	return Message{Action: action, Payload: raw}, nil
}

func newStatusPayload(game *entity.Game) StatusPayload {
	return StatusPayload{
		Status: game.Status,
		Text:   game.StatusText(),
		Game:   game,
	}
}
