// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/nytrack/puzzleboard/internal/domain/model"
)

// Dependencies required by the HTTP handlers. An interface bundle keeps the
// handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// Submit queues a submission for async processing. The duplicate
	// return distinguishes an already-seen id from backpressure.
	Submit(ctx context.Context, sub model.Submission) (queued, duplicate bool)

	// AddEntry parses and stores a result synchronously.
	AddEntry(ctx context.Context, game, playerID, title, body string) (model.Entry, error)

	// RemoveEntry deletes a player's entry; a negative puzzle id targets
	// today's puzzle.
	RemoveEntry(ctx context.Context, game, playerID string, puzzleID int) (bool, error)

	// Leaderboard resolves a query mode and returns the ranked standing.
	Leaderboard(ctx context.Context, game, mode string) (*model.Leaderboard, error)

	// Entries lists a player's recorded results, oldest first.
	Entries(ctx context.Context, game, playerID string) ([]model.Entry, error)

	// Missing lists known players without an entry for the puzzle.
	// A negative puzzleID means today's puzzle.
	Missing(ctx context.Context, game string, puzzleID int) ([]string, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	submissionsHandler *SubmissionsHandler
	leaderboardHandler *LeaderboardHandler
	entriesHandler     *EntriesHandler
	missingHandler     *MissingHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		submissionsHandler: NewSubmissionsHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps),
		entriesHandler:     NewEntriesHandler(deps),
		missingHandler:     NewMissingHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/submissions", MetricsMiddleware(s.submissionsHandler.HandlePostSubmission, "submissions"))
	mux.HandleFunc("/entries", MetricsMiddleware(s.entriesHandler.HandleEntries, "entries"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/missing", MetricsMiddleware(s.missingHandler.HandleGetMissing, "missing"))
}

// submissionRequest is the POST /submissions and POST /entries body.
type submissionRequest struct {
	ID       string `json:"id,omitempty"`
	Game     string `json:"game"`
	PlayerID string `json:"player_id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
}

func (s submissionRequest) validate() error {
	switch {
	case strings.TrimSpace(s.Game) == "":
		return errors.New("missing game")
	case strings.TrimSpace(s.PlayerID) == "":
		return errors.New("missing player_id")
	case strings.TrimSpace(s.Title) == "":
		return errors.New("missing title")
	}
	return nil
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
