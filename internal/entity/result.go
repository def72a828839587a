package entity

// Result is the outcome of a finished game.
type Result struct {
	GameID     string     `json:"game_id"`
	Rows       int        `json:"rows"`
	Cols       int        `json:"cols"`
	Difficulty Difficulty `json:"difficulty"`
	Status     Status     `json:"status"`
	Moves      int        `json:"moves"`
}

// Tally counts finished games by outcome.
type Tally struct {
	Difficulty Difficulty `json:"difficulty"`
	PlayerWins int64      `json:"player_wins"`
	AIWins     int64      `json:"ai_wins"`
	Draws      int64      `json:"draws"`
}

func (that Tally) Total() int64 {
	return that.PlayerWins + that.AIWins + that.Draws
}
