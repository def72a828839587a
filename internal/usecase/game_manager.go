package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/nxm-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/nxm-tictactoe/internal/entity"
	"github.com/rocketscienceinc/nxm-tictactoe/internal/oracle"
	"github.com/rocketscienceinc/nxm-tictactoe/internal/tictactoe"
)

type moveOracle interface {
	NextMove(ctx context.Context, req oracle.Request) (int, bool, error)
}

type resultRepo interface {
	Record(ctx context.Context, result entity.Result) error
	Tally(ctx context.Context, difficulty entity.Difficulty) (entity.Tally, error)
	Recent(ctx context.Context, limit int) ([]entity.Result, error)
}

// Observer is notified about every change of a session, in order.
type Observer interface {
	CellUpdated(cell int, mark entity.Mark)
	StatusChanged(game *entity.Game)
}

// Limits bound the board dimensions a session may be started with. A zero
// maximum leaves that side unbounded.
type Limits struct {
	MinRows int
	MinCols int
	MaxRows int
	MaxCols int
}

func (that Limits) check(rows, cols int) error {
	if rows < that.MinRows || cols < that.MinCols {
		return fmt.Errorf("%w: %dx%d, need at least %dx%d",
			apperror.ErrInvalidDimensions, rows, cols, that.MinRows, that.MinCols)
	}

	if (that.MaxRows > 0 && rows > that.MaxRows) || (that.MaxCols > 0 && cols > that.MaxCols) {
		return fmt.Errorf("%w: %dx%d, at most %dx%d allowed",
			apperror.ErrInvalidDimensions, rows, cols, that.MaxRows, that.MaxCols)
	}

	return nil
}

type GameManager struct {
	logger     *slog.Logger
	oracle     moveOracle
	resultRepo resultRepo
	limits     Limits
}

func NewGameManager(logger *slog.Logger, engine moveOracle, resultRepo resultRepo, limits Limits) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		oracle:     engine,
		resultRepo: resultRepo,
		limits:     limits,
	}
}

// NewGame starts an empty session, the player moves first.
func (that *GameManager) NewGame(rows, cols int, difficulty entity.Difficulty) (*entity.Game, error) {
	if err := that.limits.check(rows, cols); err != nil {
		return nil, err
	}

	board, err := entity.NewBoard(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("failed create board: %w", err)
	}

	game := entity.NewGame(uuid.NewString(), board, difficulty)

	that.logger.Info("game created", "gameID", game.ID, "rows", rows, "cols", cols, "difficulty", difficulty)

	return game, nil
}

// MakeTurn plays the player's cell and, while the game goes on, the oracle's
// answer. Invalid player moves are ignored. An oracle failure aborts the game
// and is returned wrapped in apperror.ErrOracleFailed.
func (that *GameManager) MakeTurn(ctx context.Context, game *entity.Game, cell int, observer Observer) error {
	log := that.logger.With("method", "MakeTurn", "gameID", game.ID)

	if observer == nil {
		observer = nopObserver{}
	}

	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	if err := tictactoe.MakeTurn(game, entity.PlayerX, cell); err != nil {
		if errors.Is(err, apperror.ErrInvalidMove) {
			log.Debug("player move ignored", "cell", cell, "error", err)
			return nil
		}

		return fmt.Errorf("failed make turn: %w", err)
	}

	observer.CellUpdated(cell, entity.PlayerX)

	if game.IsFinished() {
		that.finishGame(ctx, game, observer)
		return nil
	}

	move, ok, err := that.oracle.NextMove(ctx, oracle.NewRequest(game))
	if err != nil {
		return that.abortGame(game, observer, err)
	}

	if !ok {
		log.Info("oracle has no move left")
		tictactoe.DeclareDraw(game)
		that.finishGame(ctx, game, observer)
		return nil
	}

	if err = tictactoe.MakeTurn(game, entity.PlayerO, move); err != nil {
		return that.abortGame(game, observer, fmt.Errorf("oracle chose cell %d: %w", move, err))
	}

	observer.CellUpdated(move, entity.PlayerO)

	if game.IsFinished() {
		that.finishGame(ctx, game, observer)
		return nil
	}

	observer.StatusChanged(game)

	return nil
}

func (that *GameManager) Tally(ctx context.Context, difficulty entity.Difficulty) (entity.Tally, error) {
	tally, err := that.resultRepo.Tally(ctx, difficulty)
	if err != nil {
		return tally, fmt.Errorf("failed get tally: %w", err)
	}

	return tally, nil
}

func (that *GameManager) RecentResults(ctx context.Context, limit int) ([]entity.Result, error) {
	results, err := that.resultRepo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed get recent results: %w", err)
	}

	return results, nil
}

func (that *GameManager) finishGame(ctx context.Context, game *entity.Game, observer Observer) {
	log := that.logger.With("method", "finishGame", "gameID", game.ID)

	observer.StatusChanged(game)

	if err := that.resultRepo.Record(ctx, game.Result()); err != nil {
		log.Error("failed to record result", "error", err)
	}

	log.Info("game finished", "status", game.Status, "moves", game.Moves)
}

func (that *GameManager) abortGame(game *entity.Game, observer Observer, cause error) error {
	log := that.logger.With("method", "abortGame", "gameID", game.ID)

	if !errors.Is(cause, apperror.ErrOracleFailed) {
		cause = fmt.Errorf("%w: %w", apperror.ErrOracleFailed, cause)
	}

	game.Abort()
	observer.StatusChanged(game)

	log.Error("game aborted", "error", cause)

	return cause
}

type nopObserver struct{}

func (nopObserver) CellUpdated(int, entity.Mark) {}

func (nopObserver) StatusChanged(*entity.Game) {}
