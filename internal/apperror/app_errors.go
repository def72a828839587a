package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrInvalidMove       = errors.New("invalid move")
	ErrInvalidDimensions = errors.New("invalid board dimensions")
	ErrOracleFailed      = errors.New("move oracle failed")
	ErrUnfinishedResult  = errors.New("game is not finished")
)
