package entity

import "strings"

// Difficulty selects the opponent strategy. It is passed to the move oracle as is.
type Difficulty string

const (
	EasyDifficulty      Difficulty = "easy"
	DifficultDifficulty Difficulty = "difficult"
)

// ParseDifficulty maps user input to a difficulty. Only "easy" selects the easy
// rules, anything else plays difficult. Callers pick a default for absent input.
func ParseDifficulty(value string) Difficulty {
	if Difficulty(strings.ToLower(strings.TrimSpace(value))) == EasyDifficulty {
		return EasyDifficulty
	}
	return DifficultDifficulty
}

func (that Difficulty) String() string {
	return string(that)
}
