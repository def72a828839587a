package entity

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/rocketscienceinc/nxm-tictactoe/internal/apperror"
)

// Board is a row-major n×m grid. Cells are written once and never cleared.
type Board struct {
	rows  int
	cols  int
	cells []Mark
}

func NewBoard(rows, cols int) (*Board, error) {
	if err := checkDimensions(rows, cols); err != nil {
		return nil, err
	}

	cells := make([]Mark, rows*cols)
	for i := range cells {
		cells[i] = EmptyCell
	}

	return &Board{rows: rows, cols: cols, cells: cells}, nil
}

// checkDimensions rejects non-positive sizes and sizes whose cell count overflows int.
func checkDimensions(rows, cols int) error {
	if rows <= 0 || cols <= 0 || rows > math.MaxInt/cols {
		return fmt.Errorf("%w: %dx%d", apperror.ErrInvalidDimensions, rows, cols)
	}
	return nil
}

// NewBoardFrom builds a board from already placed marks, e.g. a restored snapshot.
func NewBoardFrom(rows, cols int, cells []Mark) (*Board, error) {
	if err := checkDimensions(rows, cols); err != nil {
		return nil, err
	}

	if len(cells) != rows*cols {
		return nil, fmt.Errorf("%w: %d cells for %dx%d board", apperror.ErrInvalidDimensions, len(cells), rows, cols)
	}

	board, err := NewBoard(rows, cols)
	if err != nil {
		return nil, err
	}

	for i, mark := range cells {
		if mark != EmptyCell && !mark.IsPlayable() {
			return nil, fmt.Errorf("%w: unknown mark %q at cell %d", apperror.ErrInvalidMove, mark, i)
		}
		board.cells[i] = mark
	}

	return board, nil
}

// Size returns the number of rows and columns.
func (that *Board) Size() (int, int) {
	return that.rows, that.cols
}

func (that *Board) Len() int {
	return len(that.cells)
}

// Index converts a row and a column to a cell index.
func (that *Board) Index(row, col int) int {
	return row*that.cols + col
}

// Get returns the mark at index, EmptyCell for indexes outside the board.
func (that *Board) Get(index int) Mark {
	if index < 0 || index >= len(that.cells) {
		return EmptyCell
	}
	return that.cells[index]
}

// Set places mark at index. It fails with apperror.ErrInvalidMove and leaves
// the board untouched when the index is out of range or the cell is taken.
func (that *Board) Set(index int, mark Mark) error {
	if !mark.IsPlayable() {
		return fmt.Errorf("%w: mark %q", apperror.ErrInvalidMove, mark)
	}

	if index < 0 || index >= len(that.cells) {
		return fmt.Errorf("%w: cell %d out of range", apperror.ErrInvalidMove, index)
	}

	if that.cells[index] != EmptyCell {
		return fmt.Errorf("%w: cell %d is already occupied", apperror.ErrInvalidMove, index)
	}

	that.cells[index] = mark

	return nil
}

func (that *Board) IsFull() bool {
	for _, cell := range that.cells {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

// Cells returns a copy of the marks in row-major order.
func (that *Board) Cells() []Mark {
	cells := make([]Mark, len(that.cells))
	copy(cells, that.cells)
	return cells
}

// Snapshot returns the board as one-character symbols, a space for empty cells.
func (that *Board) Snapshot() []string {
	snapshot := make([]string, len(that.cells))
	for i, cell := range that.cells {
		snapshot[i] = string(cell)
	}
	return snapshot
}

type boardJSON struct {
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
	Cells []string `json:"cells"`
}

func (that *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardJSON{
		Rows:  that.rows,
		Cols:  that.cols,
		Cells: that.Snapshot(),
	})
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var raw boardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	cells := make([]Mark, len(raw.Cells))
	for i, cell := range raw.Cells {
		cells[i] = Mark(cell)
	}

	board, err := NewBoardFrom(raw.Rows, raw.Cols, cells)
	if err != nil {
		return err
	}

	*that = *board

	return nil
}
