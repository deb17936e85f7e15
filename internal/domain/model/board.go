package model

// LeaderboardRow is one ranked line of a leaderboard.
type LeaderboardRow struct {
	Rank     int                `json:"rank"`
	PlayerID string             `json:"player_id"`
	Played   int                `json:"played"`
	Missed   int                `json:"missed"`
	RawMean  float64            `json:"raw_mean"`
	AdjMean  float64            `json:"adj_mean"`
	Features map[string]float64 `json:"features,omitempty"`
}

// Leaderboard is a ranked standing for one game over one query window.
type Leaderboard struct {
	Game  string           `json:"game"`
	Label string           `json:"label"`
	Rows  []LeaderboardRow `json:"rows"`
}
