// Package config defines service configuration structures and loading hooks.
package config

import "runtime"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory submission queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of parsing workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the submission deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxLeaderboardRows caps the number of rows a leaderboard response
	// may carry.
	MaxLeaderboardRows int `koanf:"max_leaderboard_rows"`

	// DBPath is the SQLite archive file. Empty disables persistence.
	DBPath string `koanf:"db_path"`

	// Timezone names the location used to decide what "today" means,
	// e.g. America/New_York.
	Timezone string `koanf:"timezone"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		QueueSize:          10_000,
		WorkerCount:        runtime.NumCPU() * 4,
		DedupeSize:         50_000,
		MaxLeaderboardRows: 100,
		DBPath:             "puzzleboard.db",
		Timezone:           "America/New_York",
	}
}
