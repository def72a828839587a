package tictactoe

import "github.com/rocketscienceinc/nxm-tictactoe/internal/entity"

// lines lists every row, every column and, on square boards only, both main
// diagonals as row-major cell indexes.
func lines(board *entity.Board) [][]int {
	rows, cols := board.Size()

	result := make([][]int, 0, rows+cols+2)

	for row := 0; row < rows; row++ {
		line := make([]int, cols)
		for col := 0; col < cols; col++ {
			line[col] = row*cols + col
		}
		result = append(result, line)
	}

	for col := 0; col < cols; col++ {
		line := make([]int, rows)
		for row := 0; row < rows; row++ {
			line[row] = row*cols + col
		}
		result = append(result, line)
	}

	if rows != cols {
		return result
	}

	diagonal := make([]int, rows)
	antiDiagonal := make([]int, rows)
	for i := 0; i < rows; i++ {
		diagonal[i] = i*cols + i
		antiDiagonal[i] = i*cols + (cols - 1 - i)
	}

	return append(result, diagonal, antiDiagonal)
}

// Win reports whether mark fills a whole line.
func Win(board *entity.Board, mark entity.Mark) bool {
	if !mark.IsPlayable() {
		return false
	}

	for _, line := range lines(board) {
		if filledWith(board, line, mark) {
			return true
		}
	}

	return false
}

func filledWith(board *entity.Board, line []int, mark entity.Mark) bool {
	for _, index := range line {
		if board.Get(index) != mark {
			return false
		}
	}
	return true
}

// Exhausted reports whether every line already holds both marks, so nobody
// can complete one any more. Empty cells may still remain.
func Exhausted(board *entity.Board) bool {
	for _, line := range lines(board) {
		if potentialLine(board, line) {
			return false
		}
	}
	return true
}

// potentialLine reports whether at most one distinct mark occupies the line.
func potentialLine(board *entity.Board, line []int) bool {
	seen := entity.EmptyCell

	for _, index := range line {
		mark := board.Get(index)
		if mark == entity.EmptyCell {
			continue
		}

		if seen == entity.EmptyCell {
			seen = mark
			continue
		}

		if mark != seen {
			return false
		}
	}

	return true
}

// Evaluate derives the game status after mover has played.
func Evaluate(board *entity.Board, mover entity.Mark) entity.Status {
	if Win(board, mover) {
		return entity.WinStatus(mover)
	}

	if board.IsFull() || Exhausted(board) {
		return entity.StatusDraw
	}

	return entity.StatusInProgress
}
