package config

import "errors"

var (
	ErrEmptyAddr         = errors.New("addr must not be empty")
	ErrBadLeaderboardCap = errors.New("max_leaderboard_rows must be positive")
)
