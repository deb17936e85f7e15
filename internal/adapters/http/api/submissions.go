// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/nytrack/puzzleboard/internal/domain/game"
	"github.com/nytrack/puzzleboard/internal/domain/model"
)

// SubmissionsHandler handles async submission intake.
type SubmissionsHandler struct {
	deps Dependencies
}

// NewSubmissionsHandler creates a new submissions handler.
func NewSubmissionsHandler(deps Dependencies) *SubmissionsHandler {
	return &SubmissionsHandler{deps: deps}
}

// HandlePostSubmission handles POST /submissions requests. Submissions are
// accepted for asynchronous parsing; an unparseable result is silently
// dropped later, matching chat-room intake where not every message is a
// puzzle result.
func (h *SubmissionsHandler) HandlePostSubmission(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req submissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	cfg, err := game.Lookup(req.Game)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_game", err)
		return
	}

	// Chat transports carry a message id; generate one when absent so
	// dedupe still has a key.
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	sub := model.Submission{
		ID:       req.ID,
		Game:     cfg.Variant,
		PlayerID: req.PlayerID,
		Title:    req.Title,
		Body:     req.Body,
	}

	queued, duplicate := h.deps.Submit(r.Context(), sub)
	if duplicate {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}
	if !queued {
		writeError(w, http.StatusTooManyRequests, "backpressure", ErrBackpressure)
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Duplicate: false})
}
