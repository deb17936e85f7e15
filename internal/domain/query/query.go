// Package query resolves leaderboard query modes into puzzle-id windows.
package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/nytrack/puzzleboard/internal/domain/almanac"
)

// Type classifies a resolved window; ranking policy depends on it.
type Type int

const (
	// SinglePuzzle targets exactly one puzzle id.
	SinglePuzzle Type = iota
	// MultiPuzzle targets a bounded window of ids (a week, ten days).
	MultiPuzzle
	// AllTime targets every recorded puzzle.
	AllTime
)

// tenDayWindow is the length of the "10day" mode.
const tenDayWindow = 10

// Window is the resolved target of a leaderboard query.
type Window struct {
	Type      Type
	PuzzleIDs []int
	// Label is a short human description, e.g. "This Week (so far)".
	Label string
}

var (
	puzzleIDArg = regexp.MustCompile(`^#?\d+$`)
	dateArg     = regexp.MustCompile(`^\d{1,2}/\d{1,2}(/\d{2}(\d{2})?)?$`)
)

// Resolve translates a mode token into a Window.
//
// Recognized modes: empty/"week"/"weekly" (current week so far), "10day"/
// "10-day", "alltime"/"all-time", "today", "#<puzzle id>", and an explicit
// "MM/DD[/YY[YY]]" date that must fall on a week anchor. today is the
// caller's current calendar date; allPuzzles is the full recorded id set
// used by all-time queries.
func Resolve(mode string, today time.Time, r almanac.Resolver, allPuzzles []int) (Window, error) {
	mode = strings.TrimSpace(mode)
	todayID := r.PuzzleID(today)

	switch {
	case mode == "" || mode == "week" || mode == "weekly":
		ids, err := r.WeekPuzzleIDs(almanac.WeekStart(today))
		if err != nil {
			return Window{}, fmt.Errorf("current week: %w", err)
		}
		return Window{
			Type:      MultiPuzzle,
			PuzzleIDs: upTo(ids, todayID),
			Label:     "This Week (so far)",
		}, nil

	case mode == "10day" || mode == "10-day":
		first := r.PuzzleID(today.AddDate(0, 0, -tenDayWindow))
		ids := make([]int, tenDayWindow)
		for i := range ids {
			ids[i] = first + i
		}
		return Window{Type: MultiPuzzle, PuzzleIDs: ids, Label: "Last 10 Days"}, nil

	case mode == "alltime" || mode == "all-time":
		return Window{Type: AllTime, PuzzleIDs: allPuzzles, Label: "All-time"}, nil

	case mode == "today":
		return Window{
			Type:      SinglePuzzle,
			PuzzleIDs: []int{todayID},
			Label:     fmt.Sprintf("Puzzle #%d", todayID),
		}, nil

	case puzzleIDArg.MatchString(mode):
		id, err := strconv.Atoi(strings.TrimPrefix(mode, "#"))
		if err != nil {
			return Window{}, fmt.Errorf("puzzle id %q: %w", mode, ErrUnknownMode)
		}
		return Window{
			Type:      SinglePuzzle,
			PuzzleIDs: []int{id},
			Label:     fmt.Sprintf("Puzzle #%d", id),
		}, nil

	case dateArg.MatchString(mode):
		d, err := parseDate(mode, today.Year())
		if err != nil {
			return Window{}, err
		}
		ids, err := r.WeekPuzzleIDs(d)
		if err != nil {
			return Window{}, fmt.Errorf("week of %s: %w", mode, err)
		}
		return Window{
			Type:      MultiPuzzle,
			PuzzleIDs: upTo(ids, todayID),
			Label:     "Week of " + d.Format("01/02/2006"),
		}, nil

	default:
		return Window{}, fmt.Errorf("mode %q: %w", mode, ErrUnknownMode)
	}
}

// parseDate reads MM/DD, MM/DD/YY or MM/DD/YYYY; a missing year defaults to
// the current one.
func parseDate(s string, currentYear int) (time.Time, error) {
	for _, layout := range []string{"1/2/2006", "1/2/06"} {
		if d, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return d, nil
		}
	}
	if d, err := time.ParseInLocation("1/2", s, time.UTC); err == nil {
		return d.AddDate(currentYear, 0, 0), nil
	}
	return time.Time{}, fmt.Errorf("date %q: %w", s, ErrUnknownMode)
}

// upTo filters ids to those at or below limit, so a partially elapsed week
// never penalizes puzzles that have not been published yet.
func upTo(ids []int, limit int) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id <= limit {
			out = append(out, id)
		}
	}
	return out
}
