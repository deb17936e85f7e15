// Package repository defines the entry store interface and errors.
package repository

import (
	"context"

	"github.com/nytrack/puzzleboard/internal/domain/model"
)

// Store is the authoritative in-process collection of entries for one game
// variant, indexed both by puzzle and by player. Implementations must keep
// the two indexes consistent under every mutation.
type Store interface {
	// Upsert inserts the entry, replacing any existing entry with the same
	// (player, puzzle) key. Both indexes are updated atomically.
	Upsert(ctx context.Context, e model.Entry)

	// Remove deletes the entry for (playerID, puzzleID) from both indexes.
	// It reports whether an entry existed; removing an absent key is a no-op.
	Remove(ctx context.Context, playerID string, puzzleID int) bool

	// Entry returns a single entry, or ErrNotFound.
	Entry(ctx context.Context, playerID string, puzzleID int) (model.Entry, error)

	// EntriesForPlayer returns a player's entries sorted by puzzle id. A
	// non-nil filter restricts the result to the given puzzle ids; a nil
	// filter returns all history.
	EntriesForPlayer(ctx context.Context, playerID string, filter []int) []model.Entry

	// PuzzleIDsForPlayer returns the sorted puzzle ids a player has entries for.
	PuzzleIDsForPlayer(ctx context.Context, playerID string) []int

	// PlayersForPuzzle returns the sorted player ids with an entry for puzzleID.
	PlayersForPuzzle(ctx context.Context, puzzleID int) []string

	// PlayerIDs returns every known player id, sorted.
	PlayerIDs(ctx context.Context) []string

	// PuzzleIDs returns every recorded puzzle id, sorted.
	PuzzleIDs(ctx context.Context) []int

	// Count returns the total number of entries.
	Count(ctx context.Context) int
}
