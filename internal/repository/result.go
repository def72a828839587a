package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/nxm-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/nxm-tictactoe/internal/entity"
)

const (
	fieldPlayerWins = "player"
	fieldAIWins     = "ai"
	fieldDraws      = "draw"

	recentResultsKey = "results:recent"
	recentResultsCap = 100
)

type ResultRepository interface {
	Record(ctx context.Context, result entity.Result) error
	Tally(ctx context.Context, difficulty entity.Difficulty) (entity.Tally, error)
	Recent(ctx context.Context, limit int) ([]entity.Result, error)
}

type dbResult struct {
	client *redis.Client
}

func NewResultRepository(client *redis.Client) ResultRepository {
	return &dbResult{
		client: client,
	}
}

func tallyKey(difficulty entity.Difficulty) string {
	return "results:" + difficulty.String()
}

func tallyField(status entity.Status) (string, error) {
	switch status {
	case entity.StatusPlayerWin:
		return fieldPlayerWins, nil
	case entity.StatusOpponentWin:
		return fieldAIWins, nil
	case entity.StatusDraw:
		return fieldDraws, nil
	default:
		return "", fmt.Errorf("%w: status %q", apperror.ErrUnfinishedResult, status)
	}
}

// Record counts a finished game and keeps it in the recent results list.
func (that *dbResult) Record(ctx context.Context, result entity.Result) error {
	field, err := tallyField(result.Status)
	if err != nil {
		return err
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, tallyKey(result.Difficulty), field, 1)
		pipe.LPush(ctx, recentResultsKey, resultJSON)
		pipe.LTrim(ctx, recentResultsKey, 0, recentResultsCap-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}

	return nil
}

func (that *dbResult) Tally(ctx context.Context, difficulty entity.Difficulty) (entity.Tally, error) {
	tally := entity.Tally{Difficulty: difficulty}

	values, err := that.client.HGetAll(ctx, tallyKey(difficulty)).Result()
	if err != nil {
		return tally, fmt.Errorf("failed to get tally: %w", err)
	}

	counters := map[string]*int64{
		fieldPlayerWins: &tally.PlayerWins,
		fieldAIWins:     &tally.AIWins,
		fieldDraws:      &tally.Draws,
	}

	for field, counter := range counters {
		value, ok := values[field]
		if !ok {
			continue
		}

		*counter, err = strconv.ParseInt(value, 10, 64)
		if err != nil {
			return tally, fmt.Errorf("failed to parse %s counter: %w", field, err)
		}
	}

	return tally, nil
}

// Recent returns the latest finished games, newest first.
func (that *dbResult) Recent(ctx context.Context, limit int) ([]entity.Result, error) {
	if limit <= 0 {
		return []entity.Result{}, nil
	}

	response, err := that.client.LRange(ctx, recentResultsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get recent results: %w", err)
	}

	results := make([]entity.Result, 0, len(response))
	for _, item := range response {
		var result entity.Result
		if err = json.Unmarshal([]byte(item), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}
		results = append(results, result)
	}

	return results, nil
}

// NopResults is used when no Redis is configured, nothing is kept.
type NopResults struct{}

func (NopResults) Record(_ context.Context, result entity.Result) error {
	_, err := tallyField(result.Status)
	return err
}

func (NopResults) Tally(_ context.Context, difficulty entity.Difficulty) (entity.Tally, error) {
	return entity.Tally{Difficulty: difficulty}, nil
}

func (NopResults) Recent(_ context.Context, _ int) ([]entity.Result, error) {
	return []entity.Result{}, nil
}
