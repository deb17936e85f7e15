package service

import "errors"

var (
	// ErrNoEntries signals a leaderboard window with no participating players.
	ErrNoEntries = errors.New("no entries for window")
)
