package entity

// Status is derived from the board after every move.
type Status string

const (
	StatusInProgress  Status = "in_progress"
	StatusPlayerWin   Status = "player_win"
	StatusOpponentWin Status = "opponent_win"
	StatusDraw        Status = "draw"
)

const (
	textPlayerTurn  = "Player's turn"
	textPlayerWin   = "Player wins!"
	textOpponentWin = "AI wins!"
	textDraw        = "Draw!"
	textAborted     = "Game aborted"
)

// WinStatus returns the status reached when mark completes a line.
func WinStatus(mark Mark) Status {
	if mark == PlayerX {
		return StatusPlayerWin
	}
	return StatusOpponentWin
}

// Game is a single human-versus-AI session. It is owned by whoever drives the
// session (a websocket connection, the terminal UI), never shared globally.
type Game struct {
	ID         string     `json:"id"`
	Board      *Board     `json:"board"`
	Difficulty Difficulty `json:"difficulty"`
	Turn       Mark       `json:"player_turn"`
	Status     Status     `json:"status"`
	Moves      int        `json:"moves"`
	Aborted    bool       `json:"aborted,omitempty"`
}

func NewGame(id string, board *Board, difficulty Difficulty) *Game {
	return &Game{
		ID:         id,
		Board:      board,
		Difficulty: difficulty,
		Turn:       PlayerX,
		Status:     StatusInProgress,
	}
}

func (that *Game) IsFinished() bool {
	return that.Aborted || that.Status != StatusInProgress
}

func (that *Game) IsOngoing() bool {
	return !that.IsFinished()
}

// Abort freezes the board after an unrecoverable failure.
func (that *Game) Abort() {
	that.Aborted = true
	that.Turn = ""
}

// StatusText is the line shown to the player.
func (that *Game) StatusText() string {
	if that.Aborted {
		return textAborted
	}

	switch that.Status {
	case StatusPlayerWin:
		return textPlayerWin
	case StatusOpponentWin:
		return textOpponentWin
	case StatusDraw:
		return textDraw
	default:
		return textPlayerTurn
	}
}

// Result summarizes the game for the results repository.
func (that *Game) Result() Result {
	rows, cols := that.Board.Size()

	return Result{
		GameID:     that.ID,
		Rows:       rows,
		Cols:       cols,
		Difficulty: that.Difficulty,
		Status:     that.Status,
		Moves:      that.Moves,
	}
}
