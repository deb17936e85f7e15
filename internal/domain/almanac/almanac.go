// Package almanac maps calendar dates to sequential puzzle ids and back.
//
// Each variant anchors the mapping with a (date, puzzle id) pair; from there
// the id advances by one per calendar day. Weeks are anchored on Sunday, the
// day the tracked chat rooms reset their weekly boards.
package almanac

import (
	"time"

	"github.com/nytrack/puzzleboard/internal/domain/game"
)

// DaysPerWeek is the length of a weekly puzzle window.
const DaysPerWeek = 7

const hoursPerDay = 24

// Resolver converts between dates and puzzle ids for one variant.
type Resolver struct {
	anchorDate time.Time
	anchorID   int
}

// New builds a Resolver from a variant config.
func New(cfg game.Config) Resolver {
	return Resolver{anchorDate: midnightUTC(cfg.AnchorDate), anchorID: cfg.AnchorPuzzleID}
}

// PuzzleID returns the puzzle id published on d. Dates before the anchor
// produce ids at or below the anchor id; callers decide whether those are
// meaningful.
func (r Resolver) PuzzleID(d time.Time) int {
	days := int(midnightUTC(d).Sub(r.anchorDate).Hours() / hoursPerDay)
	return r.anchorID + days
}

// Date returns the publication date of a puzzle id. It is the inverse of
// PuzzleID for any calendar date.
func (r Resolver) Date(id int) time.Time {
	return r.anchorDate.AddDate(0, 0, id-r.anchorID)
}

// IsWeekAnchor reports whether d falls on the weekday that starts a weekly
// window.
func IsWeekAnchor(d time.Time) bool {
	return d.Weekday() == time.Sunday
}

// WeekStart rewinds d to the most recent week anchor, or d itself when it
// already is one.
func WeekStart(d time.Time) time.Time {
	d = midnightUTC(d)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// WeekPuzzleIDs returns the seven sequential puzzle ids for the week starting
// at weekStart. It returns ErrNotWeekAnchor when weekStart is not a week
// anchor; a window computed from mid-week would be silently wrong.
func (r Resolver) WeekPuzzleIDs(weekStart time.Time) ([]int, error) {
	if !IsWeekAnchor(weekStart) {
		return nil, ErrNotWeekAnchor
	}
	first := r.PuzzleID(weekStart)
	ids := make([]int, DaysPerWeek)
	for i := range ids {
		ids[i] = first + i
	}
	return ids, nil
}

// midnightUTC truncates a timestamp to its calendar date in UTC. All
// resolver arithmetic happens on whole days so wall-clock time and zone
// offsets never shift a puzzle id.
func midnightUTC(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
