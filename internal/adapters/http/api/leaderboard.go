// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"

	service "github.com/nytrack/puzzleboard/internal/app"
	"github.com/nytrack/puzzleboard/internal/domain/almanac"
	"github.com/nytrack/puzzleboard/internal/domain/game"
	"github.com/nytrack/puzzleboard/internal/domain/query"
)

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps Dependencies
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps Dependencies) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps}
}

// HandleGetLeaderboard handles GET /leaderboard?game=G&mode=M requests.
// Mode accepts the query vocabulary: empty/week/weekly, 10day, alltime,
// today, #N or an anchor date like 1/16/2022.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	gameName := q.Get("game")
	if gameName == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("game is required"))
		return
	}

	board, err := h.deps.Leaderboard(r.Context(), gameName, q.Get("mode"))
	switch {
	case errors.Is(err, game.ErrUnknownVariant):
		writeError(w, http.StatusBadRequest, "unknown_game", err)
		return
	case errors.Is(err, query.ErrUnknownMode):
		writeError(w, http.StatusBadRequest, "unknown_mode", err)
		return
	case errors.Is(err, almanac.ErrNotWeekAnchor):
		writeError(w, http.StatusBadRequest, "not_week_anchor", err)
		return
	case errors.Is(err, service.ErrNoEntries):
		writeError(w, http.StatusNotFound, "no_entries", err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}
