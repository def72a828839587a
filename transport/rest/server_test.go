package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/nxm-tictactoe/internal/entity"
)

type mockStats struct {
	mock.Mock
}

func (that *mockStats) Tally(ctx context.Context, difficulty entity.Difficulty) (entity.Tally, error) {
	args := that.Called(ctx, difficulty)
	return args.Get(0).(entity.Tally), args.Error(1)
}

func (that *mockStats) RecentResults(ctx context.Context, limit int) ([]entity.Result, error) {
	args := that.Called(ctx, limit)
	return args.Get(0).([]entity.Result), args.Error(1)
}

func newTestServer(t *testing.T) (*Server, *mockStats) {
	t.Helper()

	stats := &mockStats{}
	t.Cleanup(func() { stats.AssertExpectations(t) })

	return New(slog.New(slog.NewJSONHandler(io.Discard, nil)), stats), stats
}

func serve(server *Server, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))

	return recorder
}

func TestPing(t *testing.T) {
	server, _ := newTestServer(t)

	recorder := serve(server, "/ping")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "pong", recorder.Body.String())
}

func TestStats(t *testing.T) {
	t.Run("Returns the tally of the requested difficulty", func(t *testing.T) {
		// Given: two player wins and one draw on difficult
		server, stats := newTestServer(t)
		stats.On("Tally", mock.Anything, entity.DifficultDifficulty).
			Return(entity.Tally{Difficulty: entity.DifficultDifficulty, PlayerWins: 2, Draws: 1}, nil).Once()

		// When: the stats are requested
		recorder := serve(server, "/stats?difficulty=difficult")

		// Then: the counters and their total are returned
		require.Equal(t, http.StatusOK, recorder.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "difficult", body["difficulty"])
		assert.InDelta(t, 2, body["player_wins"], 0)
		assert.InDelta(t, 0, body["ai_wins"], 0)
		assert.InDelta(t, 1, body["draws"], 0)
		assert.InDelta(t, 3, body["total"], 0)
	})

	t.Run("Defaults to easy", func(t *testing.T) {
		server, stats := newTestServer(t)
		stats.On("Tally", mock.Anything, entity.EasyDifficulty).
			Return(entity.Tally{Difficulty: entity.EasyDifficulty}, nil).Once()

		recorder := serve(server, "/stats")

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Storage failure is an internal error", func(t *testing.T) {
		server, stats := newTestServer(t)
		stats.On("Tally", mock.Anything, entity.EasyDifficulty).
			Return(entity.Tally{}, errors.New("redis down")).Once()

		recorder := serve(server, "/stats?difficulty=easy")

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}

func TestRecentResults(t *testing.T) {
	t.Run("Uses the requested limit", func(t *testing.T) {
		server, stats := newTestServer(t)
		stats.On("RecentResults", mock.Anything, 2).
			Return([]entity.Result{{GameID: "g1", Status: entity.StatusDraw}}, nil).Once()

		recorder := serve(server, "/results/recent?limit=2")

		require.Equal(t, http.StatusOK, recorder.Code)

		var results []entity.Result
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &results))
		assert.Equal(t, []entity.Result{{GameID: "g1", Status: entity.StatusDraw}}, results)
	})

	t.Run("Defaults the limit", func(t *testing.T) {
		server, stats := newTestServer(t)
		stats.On("RecentResults", mock.Anything, defaultRecentLimit).Return([]entity.Result{}, nil).Once()

		recorder := serve(server, "/results/recent")

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Rejects a bad limit", func(t *testing.T) {
		server, _ := newTestServer(t)

		recorder := serve(server, "/results/recent?limit=abc")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
