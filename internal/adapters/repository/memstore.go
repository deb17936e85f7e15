package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/nytrack/puzzleboard/internal/domain/game"
	"github.com/nytrack/puzzleboard/internal/domain/model"
	"github.com/nytrack/puzzleboard/pkg/metrics"
)

// MemStore is the in-memory Store implementation. It holds the same entry
// set twice, keyed by puzzle and by player, so both directions of lookup are
// O(1); every mutation touches both maps inside one critical section so a
// reader can never observe the indexes disagreeing.
type MemStore struct {
	mu       sync.RWMutex
	variant  game.Variant
	byPuzzle map[int]map[string]model.Entry
	byPlayer map[string]map[int]model.Entry
	count    int
}

// NewMemStore creates an empty store for one variant.
func NewMemStore(variant game.Variant) *MemStore {
	return &MemStore{
		variant:  variant,
		byPuzzle: make(map[int]map[string]model.Entry),
		byPlayer: make(map[string]map[int]model.Entry),
	}
}

// Upsert inserts or replaces the entry under its (player, puzzle) key.
func (s *MemStore) Upsert(_ context.Context, e model.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byPlayer[e.PlayerID][e.PuzzleID]; !exists {
		s.count++
	}

	players := s.byPuzzle[e.PuzzleID]
	if players == nil {
		players = make(map[string]model.Entry)
		s.byPuzzle[e.PuzzleID] = players
	}
	players[e.PlayerID] = e

	puzzles := s.byPlayer[e.PlayerID]
	if puzzles == nil {
		puzzles = make(map[int]model.Entry)
		s.byPlayer[e.PlayerID] = puzzles
	}
	puzzles[e.PuzzleID] = e

	metrics.UpdateStoreSize(s.variant.String(), s.count)
}

// Remove deletes the keyed entry from both indexes.
func (s *MemStore) Remove(_ context.Context, playerID string, puzzleID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	puzzles, ok := s.byPlayer[playerID]
	if !ok {
		return false
	}
	if _, ok := puzzles[puzzleID]; !ok {
		return false
	}

	delete(puzzles, puzzleID)
	if len(puzzles) == 0 {
		delete(s.byPlayer, playerID)
	}

	players := s.byPuzzle[puzzleID]
	delete(players, playerID)
	if len(players) == 0 {
		delete(s.byPuzzle, puzzleID)
	}

	s.count--
	metrics.UpdateStoreSize(s.variant.String(), s.count)
	return true
}

// Entry returns the keyed entry or ErrNotFound.
func (s *MemStore) Entry(_ context.Context, playerID string, puzzleID int) (model.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byPlayer[playerID][puzzleID]
	if !ok {
		return model.Entry{}, ErrNotFound
	}
	return e, nil
}

// EntriesForPlayer returns the player's entries sorted by puzzle id,
// optionally restricted to a puzzle id filter.
func (s *MemStore) EntriesForPlayer(_ context.Context, playerID string, filter []int) []model.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	puzzles := s.byPlayer[playerID]
	var entries []model.Entry
	if filter == nil {
		entries = make([]model.Entry, 0, len(puzzles))
		for _, e := range puzzles {
			entries = append(entries, e)
		}
	} else {
		for _, id := range filter {
			if e, ok := puzzles[id]; ok {
				entries = append(entries, e)
			}
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].PuzzleID < entries[j].PuzzleID })
	return entries
}

// PuzzleIDsForPlayer returns the sorted puzzle ids the player has entries for.
func (s *MemStore) PuzzleIDsForPlayer(_ context.Context, playerID string) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedIntKeys(s.byPlayer[playerID])
}

// PlayersForPuzzle returns the sorted player ids with an entry for puzzleID.
func (s *MemStore) PlayersForPuzzle(_ context.Context, puzzleID int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedStringKeys(s.byPuzzle[puzzleID])
}

// PlayerIDs returns every known player id, sorted.
func (s *MemStore) PlayerIDs(_ context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedStringKeys(s.byPlayer)
}

// PuzzleIDs returns every recorded puzzle id, sorted.
func (s *MemStore) PuzzleIDs(_ context.Context) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedIntKeys(s.byPuzzle)
}

// Count returns the total number of entries.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.count
}

func sortedIntKeys[V any](m map[int]V) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func sortedStringKeys[V any](m map[string]V) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
