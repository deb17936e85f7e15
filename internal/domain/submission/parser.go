// Package submission parses free-text puzzle result postings into typed
// entries. Parsing is pure: the same title and body always yield the same
// entry, and malformed input yields an error, never a zero-value entry.
package submission

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nytrack/puzzleboard/internal/domain/game"
	"github.com/nytrack/puzzleboard/internal/domain/model"
)

// Result glyphs shared across variants.
const (
	glyphGreen    = '🟩'
	glyphYellow   = '🟨'
	glyphWhite    = '⬜'
	glyphBlack    = '⬛'
	glyphHint     = '💡'
	glyphWord     = '🔵'
	glyphSpangram = '🟡'
)

// hintPenalty is the rating cost per hint (and per relative spangram delay)
// in the strands rating formula.
const hintPenalty = 0.25

// Parser extracts entries for a single variant.
type Parser struct {
	cfg game.Config

	title *regexp.Regexp
}

// NewParser builds the parser for a variant.
func NewParser(cfg game.Config) *Parser {
	return &Parser{cfg: cfg, title: titlePattern(cfg)}
}

// puzzleNumber matches a puzzle id with optional thousands separators.
const puzzleNumber = `(\d{1,3}(?:,\d{3})*|\d+)`

func titlePattern(cfg game.Config) *regexp.Regexp {
	switch cfg.Variant {
	case game.Wordle:
		// e.g. "Wordle 1,234 3/6" or "Wordle 205 X/6"; the celebratory
		// marker some clients append is tolerated.
		return regexp.MustCompile(`^Wordle ` + puzzleNumber + `(?: 🎉)? (\d|X)/` + strconv.Itoa(cfg.MaxAttempts) + `$`)
	case game.Connections:
		// e.g. "Connections\nPuzzle #620"
		return regexp.MustCompile(`^Connections\s*\nPuzzle #` + puzzleNumber + `\s*$`)
	case game.Strands:
		// e.g. "Strands #154\n“Theme title”"
		return regexp.MustCompile(`(?s)^Strands #` + puzzleNumber + `\b.*$`)
	default:
		return regexp.MustCompile(`$^`) // matches nothing
	}
}

// Parse converts a submission header and body into an entry for playerID.
// It returns an error wrapping ErrUnrecognizedSubmission when the title does
// not match the variant's shape, and ErrBadScore when the score token cannot
// be interpreted.
func (p *Parser) Parse(playerID, title, body string) (model.Entry, error) {
	m := p.title.FindStringSubmatch(strings.TrimSpace(title))
	if m == nil {
		return model.Entry{}, fmt.Errorf("%s title %q: %w", p.cfg.Variant, title, ErrUnrecognizedSubmission)
	}

	id, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return model.Entry{}, fmt.Errorf("%s puzzle number %q: %w", p.cfg.Variant, m[1], ErrUnrecognizedSubmission)
	}

	entry := model.Entry{
		Game:     p.cfg.Variant,
		PuzzleID: id,
		PlayerID: playerID,
	}

	switch p.cfg.Variant {
	case game.Wordle:
		if err := p.parseWordle(&entry, m[2], body); err != nil {
			return model.Entry{}, err
		}
	case game.Connections:
		p.parseConnections(&entry, body)
	case game.Strands:
		p.parseStrands(&entry, body)
	default:
		return model.Entry{}, fmt.Errorf("%s: %w", p.cfg.Variant, ErrUnrecognizedSubmission)
	}

	return entry, nil
}

// parseWordle reads the score token and tallies the guess-grid glyphs.
func (p *Parser) parseWordle(entry *model.Entry, scoreToken, body string) error {
	switch {
	case scoreToken == "X":
		entry.Score = p.cfg.FailureScore
	default:
		n, err := strconv.Atoi(scoreToken)
		if err != nil || n < 1 || n > p.cfg.MaxAttempts {
			return fmt.Errorf("wordle score %q: %w", scoreToken, ErrBadScore)
		}
		entry.Score = float64(n)
	}

	entry.Features = map[string]int{
		"green":  strings.Count(body, string(glyphGreen)),
		"yellow": strings.Count(body, string(glyphYellow)),
		"other":  strings.Count(body, string(glyphWhite)) + strings.Count(body, string(glyphBlack)),
	}
	return nil
}

// parseConnections derives the score from the guess rows: a solve ends with
// a row of one single colour, and scores the number of guesses taken. Any
// other final row is a failed grid and scores the attempt cap.
func (p *Parser) parseConnections(entry *model.Entry, body string) {
	rows := strings.Split(strings.TrimSpace(body), "\n")
	last := strings.TrimSpace(rows[len(rows)-1])

	distinct := make(map[rune]struct{})
	for _, r := range last {
		distinct[r] = struct{}{}
	}

	if len(distinct) == 1 {
		entry.Score = float64(len(rows))
	} else {
		entry.Score = float64(p.cfg.MaxAttempts)
	}
}

// parseStrands tallies hints and locates the spangram within the glyph run,
// then rates the solve. A lower rating is a better solve: 1.0 is a hint-free
// game opened with the spangram, and each hint (or each word guessed before
// the spangram, proportionally) adds a fixed penalty.
func (p *Parser) parseStrands(entry *model.Entry, body string) {
	glyphs := []rune(strings.NewReplacer("\n", "", " ", "").Replace(strings.TrimSpace(body)))

	hints := 0
	words := 0
	spangram := len(glyphs) + 1
	for i, r := range glyphs {
		switch r {
		case glyphHint:
			hints++
		case glyphWord:
			words++
		case glyphSpangram:
			if spangram > len(glyphs) {
				spangram = i + 1
			}
		}
	}

	rating := 1.0 + float64(hints)*hintPenalty
	if words > 0 {
		rating += (float64(spangram) - 1.0) / float64(words) * hintPenalty
	}

	entry.Score = rating
	entry.Features = map[string]int{
		"hints":    hints,
		"spangram": spangram,
	}
}
