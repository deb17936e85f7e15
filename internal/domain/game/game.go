// Package game enumerates the supported daily-puzzle variants and their
// per-variant constants. Everything the generic stats and ranking code
// needs to know about a variant lives in its Config; no other package
// switches on the variant directly.
package game

import (
	"strings"
	"time"
)

// Variant identifies one of the supported daily puzzles.
type Variant int

const (
	Unknown Variant = iota
	Wordle
	Connections
	Strands
)

// String returns the lowercase variant name used in config, storage and URLs.
func (v Variant) String() string {
	switch v {
	case Wordle:
		return "wordle"
	case Connections:
		return "connections"
	case Strands:
		return "strands"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the variant as its name.
func (v Variant) MarshalJSON() ([]byte, error) {
	return []byte(`"` + v.String() + `"`), nil
}

// UnmarshalJSON decodes a variant name.
func (v *Variant) UnmarshalJSON(data []byte) error {
	name := strings.Trim(string(data), `"`)
	cfg, err := Lookup(name)
	if err != nil {
		return err
	}
	*v = cfg.Variant
	return nil
}

// Config carries the per-variant constants.
type Config struct {
	Variant Variant

	// Title is the token that begins a submission header, e.g. "Wordle".
	Title string

	// AnchorDate and AnchorPuzzleID fix the linear date-to-puzzle mapping.
	// Puzzle AnchorPuzzleID was published on AnchorDate; each later calendar
	// day increments the id by one.
	AnchorDate     time.Time
	AnchorPuzzleID int

	// MaxAttempts is the attempt cap shown in the score token (the "6" in
	// "3/6"). Zero for variants without an attempt cap.
	MaxAttempts int

	// FailureScore is the score recorded for an unsolved puzzle and the
	// penalty appended once per missed puzzle in adjusted means. For
	// attempt-capped variants it is one past MaxAttempts.
	FailureScore float64

	// FeatureNames lists the glyph-tally features an entry carries, in the
	// order feature averages are reported.
	FeatureNames []string

	// TieBreakers lists feature names, best-first, consulted after the
	// primary mean when ordering the leaderboard. Ascending is better.
	TieBreakers []string
}

// The three production variants. Anchor pairs come from the historical
// puzzles the tracker was first deployed against.
var configs = map[Variant]Config{
	Wordle: {
		Variant:        Wordle,
		Title:          "Wordle",
		AnchorDate:     time.Date(2022, time.January, 10, 0, 0, 0, 0, time.UTC),
		AnchorPuzzleID: 205,
		MaxAttempts:    6,
		FailureScore:   7,
		FeatureNames:   []string{"green", "yellow", "other"},
		TieBreakers:    []string{"other", "yellow", "green"},
	},
	Connections: {
		Variant:        Connections,
		Title:          "Connections",
		AnchorDate:     time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC),
		AnchorPuzzleID: 210,
		MaxAttempts:    7,
		FailureScore:   8,
	},
	Strands: {
		Variant:        Strands,
		Title:          "Strands",
		AnchorDate:     time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		AnchorPuzzleID: 2,
		FailureScore:   2.0,
		FeatureNames:   []string{"hints", "spangram"},
		TieBreakers:    []string{"hints", "spangram"},
	},
}

// Lookup resolves a variant name (case-insensitive) to its Config.
func Lookup(name string) (Config, error) {
	for _, cfg := range configs {
		if strings.EqualFold(name, cfg.Variant.String()) {
			return cfg, nil
		}
	}
	return Config{}, ErrUnknownVariant
}

// MustLookup is Lookup for statically known names; it panics on failure.
func MustLookup(name string) Config {
	cfg, err := Lookup(name)
	if err != nil {
		panic("game: " + name + ": " + err.Error())
	}
	return cfg
}

// All returns every registered variant config.
func All() []Config {
	return []Config{configs[Wordle], configs[Connections], configs[Strands]}
}

// FeatureIndex returns the position of a feature name in FeatureNames,
// or -1 when the variant does not track it.
func (c Config) FeatureIndex(name string) int {
	for i, f := range c.FeatureNames {
		if f == name {
			return i
		}
	}
	return -1
}
