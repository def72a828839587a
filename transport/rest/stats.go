package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/nxm-tictactoe/internal/entity"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 100
)

// statsHandler - returns the outcome counters of one difficulty, easy by default.
func (that *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "statsHandler")

	difficulty := entity.EasyDifficulty
	if value := r.URL.Query().Get("difficulty"); value != "" {
		difficulty = entity.ParseDifficulty(value)
	}

	tally, err := that.stats.Tally(r.Context(), difficulty)
	if err != nil {
		log.Error("failed to get tally", "difficulty", difficulty, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, struct {
		entity.Tally
		Total int64 `json:"total"`
	}{Tally: tally, Total: tally.Total()})
}

func (that *Server) recentResultsHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "recentResultsHandler")

	limit := defaultRecentLimit
	if value := r.URL.Query().Get("limit"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 1 || parsed > maxRecentLimit {
			http.Error(w, "limit must be between 1 and 100", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	results, err := that.stats.RecentResults(r.Context(), limit)
	if err != nil {
		log.Error("failed to get recent results", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, results)
}

func (that *Server) writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
