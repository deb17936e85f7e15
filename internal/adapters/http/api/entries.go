// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/nytrack/puzzleboard/internal/adapters/repository"
	"github.com/nytrack/puzzleboard/internal/domain/game"
	"github.com/nytrack/puzzleboard/internal/domain/submission"
)

// EntriesHandler handles direct entry management: synchronous adds, listing
// and removal.
type EntriesHandler struct {
	deps Dependencies
}

// NewEntriesHandler creates a new entries handler.
func NewEntriesHandler(deps Dependencies) *EntriesHandler {
	return &EntriesHandler{deps: deps}
}

// HandleEntries dispatches /entries by method: POST adds synchronously,
// GET lists a player's results, DELETE removes one.
func (h *EntriesHandler) HandleEntries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handlePost(w, r)
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodDelete:
		h.handleDelete(w, r)
	default:
		http.NotFound(w, r)
	}
}

// handlePost handles POST /entries. Unlike /submissions this is synchronous
// and surfaces parse errors, so operators can correct entries on behalf of
// players.
func (h *EntriesHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	var req submissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	entry, err := h.deps.AddEntry(r.Context(), req.Game, req.PlayerID, req.Title, req.Body)
	switch {
	case errors.Is(err, game.ErrUnknownVariant):
		writeError(w, http.StatusBadRequest, "unknown_game", err)
		return
	case errors.Is(err, submission.ErrUnrecognizedSubmission),
		errors.Is(err, submission.ErrBadScore):
		writeError(w, http.StatusUnprocessableEntity, "unparseable", err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// handleGet handles GET /entries?game=G&player=P.
func (h *EntriesHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	gameName := q.Get("game")
	playerID := q.Get("player")
	if gameName == "" || playerID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("game and player are required"))
		return
	}

	entries, err := h.deps.Entries(r.Context(), gameName, playerID)
	switch {
	case errors.Is(err, game.ErrUnknownVariant):
		writeError(w, http.StatusBadRequest, "unknown_game", err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleDelete handles DELETE /entries?game=G&player=P[&puzzle=N]. With no
// puzzle parameter today's entry is removed.
func (h *EntriesHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	gameName := q.Get("game")
	playerID := q.Get("player")
	if gameName == "" || playerID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("game and player are required"))
		return
	}

	puzzleID := -1
	if raw := q.Get("puzzle"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", errors.New("puzzle must be a non-negative integer"))
			return
		}
		puzzleID = id
	}

	removed, err := h.deps.RemoveEntry(r.Context(), gameName, playerID, puzzleID)
	switch {
	case errors.Is(err, game.ErrUnknownVariant):
		writeError(w, http.StatusBadRequest, "unknown_game", err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "not_found", repository.ErrNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
