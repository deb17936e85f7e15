// Package stats computes per-player statistics over a puzzle window and
// ranks them. One generic calculator serves every variant; the variant
// config supplies the miss penalty, the feature list and the tie-break
// order.
package stats

import (
	"context"

	"github.com/nytrack/puzzleboard/internal/domain/game"
	"github.com/nytrack/puzzleboard/internal/domain/model"
)

// EntrySource abstracts the slice of the entry store the calculator reads.
type EntrySource interface {
	EntriesForPlayer(ctx context.Context, playerID string, filter []int) []model.Entry
}

// PlayerStats is the per-query aggregate for one player. It is recomputed
// for every query and never persisted.
type PlayerStats struct {
	PlayerID string

	// Played and Missed partition the target window.
	Played int
	Missed int

	// RawMean averages the scores the player actually posted inside the
	// window. AdjMean additionally counts each missed puzzle as one
	// worst-case score, so skipping a hard day never beats attempting it.
	RawMean float64
	AdjMean float64

	// FeatureMeans follow the variant's FeatureNames order. Feature
	// averages carry no miss penalty; only the primary score does.
	FeatureMeans []float64

	// Rank is assigned by Rank; zero until then.
	Rank int
}

// Calculator builds PlayerStats for one variant.
type Calculator struct {
	cfg game.Config
}

// NewCalculator creates a calculator for the variant.
func NewCalculator(cfg game.Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// Compute aggregates a player's entries inside the target window. A player
// with no entries in the window gets all-zero means rather than an error:
// display code never needs to special-case an empty aggregate.
func (c *Calculator) Compute(ctx context.Context, playerID string, window []int, store EntrySource) PlayerStats {
	entries := store.EntriesForPlayer(ctx, playerID, window)

	s := PlayerStats{
		PlayerID:     playerID,
		Played:       len(entries),
		FeatureMeans: make([]float64, len(c.cfg.FeatureNames)),
	}
	// A nil window means "everything the player posted"; nothing can be
	// missed against it.
	if window != nil {
		s.Missed = len(window) - len(entries)
	}

	if len(entries) == 0 {
		if s.Missed > 0 {
			// Every target puzzle was skipped; the adjusted mean is the
			// pure penalty.
			s.AdjMean = c.cfg.FailureScore
		}
		return s
	}

	var sum float64
	featureSums := make([]float64, len(c.cfg.FeatureNames))
	for _, e := range entries {
		sum += e.Score
		for i, name := range c.cfg.FeatureNames {
			featureSums[i] += float64(e.Feature(name))
		}
	}

	n := float64(len(entries))
	s.RawMean = sum / n
	s.AdjMean = (sum + c.cfg.FailureScore*float64(s.Missed)) / (n + float64(s.Missed))
	for i, fs := range featureSums {
		s.FeatureMeans[i] = fs / n
	}
	return s
}

// StatList returns the fixed-order tuple compared for rank ties: the raw
// mean, the adjusted mean, then the feature means in declaration order. It
// is deterministic for identical inputs.
func (s PlayerStats) StatList() []float64 {
	out := make([]float64, 0, 2+len(s.FeatureMeans))
	out = append(out, s.RawMean, s.AdjMean)
	out = append(out, s.FeatureMeans...)
	return out
}

// FeatureMean returns the mean for a named feature per the config order, or
// zero when the variant does not track it.
func (c *Calculator) FeatureMean(s PlayerStats, name string) float64 {
	i := c.cfg.FeatureIndex(name)
	if i < 0 || i >= len(s.FeatureMeans) {
		return 0
	}
	return s.FeatureMeans[i]
}
