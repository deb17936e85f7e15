// Package persistence archives puzzle entries in SQLite so the in-memory
// stores can be rebuilt across restarts.
package persistence

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nytrack/puzzleboard/internal/domain/game"
	"github.com/nytrack/puzzleboard/internal/domain/model"
)

//go:embed schema.sql
var schemaFS embed.FS

// Archive is the durable record of all entries.
type Archive interface {
	// LoadAll returns every archived entry for a game, in no particular order.
	LoadAll(ctx context.Context, g game.Variant) ([]model.Entry, error)

	// Save inserts or replaces an entry.
	Save(ctx context.Context, e model.Entry) error

	// Delete removes an entry. Deleting an absent entry is not an error.
	Delete(ctx context.Context, g game.Variant, playerID string, puzzleID int) error

	Close() error
}

// SQLiteArchive implements Archive over a single SQLite file.
type SQLiteArchive struct {
	db *sql.DB
}

// Open opens (or creates) the archive at path and applies the schema.
func Open(ctx context.Context, path string) (*SQLiteArchive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// modernc sqlite handles one writer at a time.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("read schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteArchive{db: db}, nil
}

// LoadAll returns every archived entry for a game.
func (a *SQLiteArchive) LoadAll(ctx context.Context, g game.Variant) ([]model.Entry, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT puzzle_id, player_id, score, features FROM entries WHERE game = ?`,
		g.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var out []model.Entry
	for rows.Next() {
		var (
			e        model.Entry
			features string
		)
		e.Game = g
		if err := rows.Scan(&e.PuzzleID, &e.PlayerID, &e.Score, &features); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if features != "" && features != "{}" {
			if err := json.Unmarshal([]byte(features), &e.Features); err != nil {
				return nil, fmt.Errorf("decode features for %s #%d: %w", e.PlayerID, e.PuzzleID, err)
			}
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return out, nil
}

// Save inserts or replaces an entry.
func (a *SQLiteArchive) Save(ctx context.Context, e model.Entry) error {
	features := "{}"
	if len(e.Features) > 0 {
		raw, err := json.Marshal(e.Features)
		if err != nil {
			return fmt.Errorf("encode features: %w", err)
		}
		features = string(raw)
	}

	_, err := a.db.ExecContext(ctx,
		`INSERT INTO entries (game, puzzle_id, player_id, score, features, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (game, puzzle_id, player_id)
		 DO UPDATE SET score = excluded.score, features = excluded.features, updated_at = excluded.updated_at`,
		e.Game.String(), e.PuzzleID, e.PlayerID, e.Score, features,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save entry: %w", err)
	}
	return nil
}

// Delete removes an entry.
func (a *SQLiteArchive) Delete(ctx context.Context, g game.Variant, playerID string, puzzleID int) error {
	_, err := a.db.ExecContext(ctx,
		`DELETE FROM entries WHERE game = ? AND puzzle_id = ? AND player_id = ?`,
		g.String(), puzzleID, playerID,
	)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (a *SQLiteArchive) Close() error {
	return a.db.Close()
}
