package oracle

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/ichiban/prolog"

	"github.com/rocketscienceinc/nxm-tictactoe/internal/apperror"
)

//go:embed rules/tic_tac_toe.pl
var defaultRules string

// LoadRules reads a rule file, or returns the bundled rules when path is empty.
func LoadRules(path string) (string, error) {
	if path == "" {
		return defaultRules, nil
	}

	rules, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read rules file: %w", err)
	}

	return string(rules), nil
}

// Prolog evaluates the opponent rules with an embedded Prolog interpreter.
// One interpreter serves every session, queries run one at a time.
type Prolog struct {
	logger *slog.Logger

	mu          sync.Mutex
	interpreter *prolog.Interpreter
}

func NewProlog(logger *slog.Logger, rules string) (*Prolog, error) {
	interpreter := prolog.New(nil, nil)
	if err := interpreter.Exec(rules); err != nil {
		return nil, fmt.Errorf("failed to consult rules: %w", err)
	}

	return &Prolog{
		logger:      logger.With("component", "oracle"),
		interpreter: interpreter,
	}, nil
}

// NextMove returns the chosen cell index. ok is false when the rules have no
// move to offer.
func (that *Prolog) NextMove(ctx context.Context, req Request) (int, bool, error) {
	log := that.logger.With("method", "NextMove", "difficulty", req.Difficulty)

	if err := ctx.Err(); err != nil {
		return 0, false, fmt.Errorf("%w: %w", apperror.ErrOracleFailed, err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	sols, err := that.interpreter.QueryContext(ctx, buildQuery(req))
	if err != nil {
		return 0, false, fmt.Errorf("%w: query: %w", apperror.ErrOracleFailed, err)
	}
	defer sols.Close()

	if !sols.Next() {
		if err = sols.Err(); err != nil {
			return 0, false, fmt.Errorf("%w: solve: %w", apperror.ErrOracleFailed, err)
		}

		log.Debug("rules have no move")

		return 0, false, nil
	}

	var solution struct {
		Move int
	}

	if err = sols.Scan(&solution); err != nil {
		return 0, false, fmt.Errorf("%w: scan move: %w", apperror.ErrOracleFailed, err)
	}

	log.Debug("rules chose a move", "cell", solution.Move)

	return solution.Move, true, nil
}
