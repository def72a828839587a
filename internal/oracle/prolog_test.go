package oracle

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rocketscienceinc/nxm-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/nxm-tictactoe/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOracle(t *testing.T) *Prolog {
	t.Helper()

	rules, err := LoadRules("")
	require.NoError(t, err)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	oracle, err := NewProlog(logger, rules)
	require.NoError(t, err)

	return oracle
}

// request builds a request from a layout string, '.' marks an empty cell.
func request(rows, cols int, layout string, difficulty entity.Difficulty) Request {
	board := make([]string, 0, len(layout))
	for _, r := range layout {
		if r == '.' {
			board = append(board, " ")
			continue
		}
		board = append(board, string(r))
	}

	return Request{Board: board, Rows: rows, Cols: cols, Difficulty: difficulty}
}

func TestBuildQuery(t *testing.T) {
	// Given: a 1x3 board with x in the middle
	req := request(1, 3, ".x.", entity.DifficultDifficulty)

	// When: rendering the goal
	query := buildQuery(req)

	// Then: the board is a list of quoted atoms and the difficulty picks the predicate
	assert.Equal(t, "bot_move_difficult([' ','x',' '], 1, 3, Move).", query)
}

func TestNewRequest(t *testing.T) {
	board, err := entity.NewBoard(2, 3)
	require.NoError(t, err)
	require.NoError(t, board.Set(4, entity.PlayerX))
	game := entity.NewGame("g1", board, entity.EasyDifficulty)

	req := NewRequest(game)

	assert.Equal(t, Request{
		Board:      []string{" ", " ", " ", " ", "x", " "},
		Rows:       2,
		Cols:       3,
		Difficulty: entity.EasyDifficulty,
	}, req)
}

func TestProlog_NextMove_Easy(t *testing.T) {
	oracle := newOracle(t)
	ctx := context.Background()

	t.Run("Takes an empty cell", func(t *testing.T) {
		// Given: a board where the first two cells are taken
		req := request(3, 3, "xo.......", entity.EasyDifficulty)

		// When: asking for a move
		move, ok, err := oracle.NextMove(ctx, req)

		// Then: the first empty cell is chosen
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 2, move)
	})

	t.Run("Full board has no move", func(t *testing.T) {
		// Given: a full board
		req := request(3, 3, "xoxoxooxo", entity.EasyDifficulty)

		// When: asking for a move
		_, ok, err := oracle.NextMove(ctx, req)

		// Then: the oracle signals no move without failing
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestProlog_NextMove_Difficult(t *testing.T) {
	oracle := newOracle(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		rows   int
		cols   int
		layout string
		want   int
	}{
		{"Completes its own row before blocking", 3, 3, "oo.xx....", 2},
		{"Blocks the player's row", 3, 3, "xx.o.....", 2},
		{"Blocks the player's anti diagonal", 3, 3, "o.x.x....", 6},
		{"Completes a column on a rectangular board", 3, 2, "oxox..", 4},
		{"Extends the first open line", 3, 3, "x........", 3},
		{"Prefers the line it already holds", 3, 3, "x.......o", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request(tt.rows, tt.cols, tt.layout, entity.DifficultDifficulty)

			move, ok, err := oracle.NextMove(ctx, req)

			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.want, move)
		})
	}

	t.Run("Full board has no move", func(t *testing.T) {
		_, ok, err := oracle.NextMove(ctx, request(2, 2, "xoox", entity.DifficultDifficulty))

		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestProlog_NextMove_CanceledContext(t *testing.T) {
	// Given: a canceled context
	oracle := newOracle(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// When: asking for a move
	_, _, err := oracle.NextMove(ctx, request(3, 3, ".........", entity.EasyDifficulty))

	// Then: the call fails as an oracle failure
	require.ErrorIs(t, err, apperror.ErrOracleFailed)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProlog_NextMove_DeadlineStopsQuery(t *testing.T) {
	// Given: rules that backtrack forever
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	oracle, err := NewProlog(logger, "bot_move_easy(_, _, _, _) :- repeat, fail.\n")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	// When: asking for a move
	_, ok, err := oracle.NextMove(ctx, request(3, 3, ".........", entity.EasyDifficulty))

	// Then: the deadline interrupts the query
	require.ErrorIs(t, err, apperror.ErrOracleFailed)
	assert.False(t, ok)
}

func TestNewProlog_InvalidRules(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	_, err := NewProlog(logger, "bot_move_easy(")

	require.Error(t, err)
}

func TestLoadRules(t *testing.T) {
	t.Run("Reads a custom rules file", func(t *testing.T) {
		// Given: a rules file that always answers cell 4
		path := filepath.Join(t.TempDir(), "rules.pl")
		require.NoError(t, os.WriteFile(path, []byte("bot_move_easy(_, _, _, 4).\n"), 0o600))

		// When: the file is loaded and consulted
		rules, err := LoadRules(path)
		require.NoError(t, err)

		logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
		oracle, err := NewProlog(logger, rules)
		require.NoError(t, err)

		move, ok, err := oracle.NextMove(context.Background(), request(3, 3, ".........", entity.EasyDifficulty))

		// Then: the custom answer is returned untouched
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 4, move)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadRules(filepath.Join(t.TempDir(), "missing.pl"))

		require.Error(t, err)
	})
}
