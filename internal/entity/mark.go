package entity

// Mark is the content of a single board cell. The value is the one-character
// symbol handed to the move oracle.
type Mark string

const (
	EmptyCell Mark = " "
	PlayerX   Mark = "x"
	PlayerO   Mark = "o"
)

// IsPlayable reports whether the mark can be placed on a board.
func (that Mark) IsPlayable() bool {
	return that == PlayerX || that == PlayerO
}

// Opponent returns the other playable mark.
func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}
