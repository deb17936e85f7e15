// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/nytrack/puzzleboard/internal/domain/game"
)

// MissingHandler reports players who have not posted a given puzzle.
type MissingHandler struct {
	deps Dependencies
}

// NewMissingHandler creates a new missing handler.
func NewMissingHandler(deps Dependencies) *MissingHandler {
	return &MissingHandler{deps: deps}
}

type missingResponse struct {
	Game    string   `json:"game"`
	Players []string `json:"players"`
}

// HandleGetMissing handles GET /missing?game=G[&puzzle=N] requests. With no
// puzzle parameter today's puzzle is used.
func (h *MissingHandler) HandleGetMissing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	gameName := r.URL.Query().Get("game")
	if gameName == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("game is required"))
		return
	}

	puzzleID := -1
	if raw := r.URL.Query().Get("puzzle"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", errors.New("puzzle must be a non-negative integer"))
			return
		}
		puzzleID = id
	}

	players, err := h.deps.Missing(r.Context(), gameName, puzzleID)
	switch {
	case errors.Is(err, game.ErrUnknownVariant):
		writeError(w, http.StatusBadRequest, "unknown_game", err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	if players == nil {
		players = []string{}
	}
	writeJSON(w, http.StatusOK, missingResponse{Game: gameName, Players: players})
}
