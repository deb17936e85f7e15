// Package model contains domain models passed between layers.
package model

import "github.com/nytrack/puzzleboard/internal/domain/game"

// Entry is one player's parsed result for one puzzle. A (PlayerID, PuzzleID)
// pair is unique within a variant; recording the same pair again replaces
// the earlier entry.
type Entry struct {
	Game     game.Variant `json:"game"`
	PuzzleID int          `json:"puzzle_id"`
	PlayerID string       `json:"player_id"`

	// Score is the primary result: attempts used for attempt-capped variants
	// (the variant's FailureScore when unsolved), or the computed rating for
	// rating-based variants.
	Score float64 `json:"score"`

	// Features holds the per-variant glyph tallies, keyed by the names in
	// the variant's FeatureNames. Nil for variants without body features.
	Features map[string]int `json:"features,omitempty"`
}

// Feature returns a named tally, zero when absent.
func (e Entry) Feature(name string) int {
	return e.Features[name]
}

// Key identifies an entry within a variant's store.
type Key struct {
	PlayerID string
	PuzzleID int
}

// Key returns the entry's store key.
func (e Entry) Key() Key {
	return Key{PlayerID: e.PlayerID, PuzzleID: e.PuzzleID}
}

// Submission is a raw result posting awaiting parsing. It flows from the
// intake surface through the queue to the recording workers.
type Submission struct {
	ID       string       `json:"id"` // unique id for idempotency
	Game     game.Variant `json:"game"`
	PlayerID string       `json:"player_id"`
	Title    string       `json:"title"` // header line(s), e.g. "Wordle 1,234 3/6"
	Body     string       `json:"body"`  // glyph grid / result body
}
