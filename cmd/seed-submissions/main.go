// seed-submissions posts synthetic Wordle results to a running instance,
// useful for exercising the intake pipeline and eyeballing leaderboards.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultPlayers = 8
	defaultDays    = 14
	defaultTimeout = 10 * time.Second
)

// wordleAnchor matches the service's Wordle date-to-id mapping.
var wordleAnchor = time.Date(2022, time.January, 10, 0, 0, 0, 0, time.UTC)

const wordleAnchorID = 205

type submission struct {
	ID       string `json:"id"`
	Game     string `json:"game"`
	PlayerID string `json:"player_id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
}

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9080", "Base URL of the service")
		players = flag.Int("players", defaultPlayers, "Number of synthetic players")
		days    = flag.Int("days", defaultDays, "Number of past days to seed")
		seed    = flag.Int64("seed", time.Now().UnixNano(), "Random seed")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
	)
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	client := &http.Client{Timeout: *timeout}
	ctx := context.Background()

	var sent, failed int
	today := time.Now().UTC()
	for d := 0; d < *days; d++ {
		day := today.AddDate(0, 0, -d)
		puzzleID := wordleAnchorID + int(day.Sub(wordleAnchor).Hours()/24)
		for p := 0; p < *players; p++ {
			playerID := fmt.Sprintf("player-%02d", p)
			// Roughly one in six days goes unplayed.
			if rng.Intn(6) == 0 {
				continue
			}
			sub := makeWordle(rng, playerID, puzzleID)
			if err := post(ctx, client, *baseURL+"/submissions", sub); err != nil {
				failed++
				os.Stderr.WriteString("post failed: " + err.Error() + "\n")
				continue
			}
			sent++
		}
	}

	fmt.Printf("seeded %d submissions (%d failed)\n", sent, failed)
}

// makeWordle builds a plausible result: a score skewed toward 3-4 attempts
// with an occasional X, and a glyph grid matching the attempt count.
func makeWordle(rng *rand.Rand, playerID string, puzzleID int) submission {
	scores := []string{"2", "3", "3", "4", "4", "4", "5", "6", "X"}
	score := scores[rng.Intn(len(scores))]

	attempts := 6
	if score != "X" {
		attempts = int(score[0] - '0')
	}

	var rows []string
	for i := 0; i < attempts-1; i++ {
		rows = append(rows, randomRow(rng))
	}
	if score == "X" {
		rows = append(rows, randomRow(rng))
	} else {
		rows = append(rows, "🟩🟩🟩🟩🟩")
	}

	return submission{
		ID:       uuid.NewString(),
		Game:     "wordle",
		PlayerID: playerID,
		Title:    fmt.Sprintf("Wordle %d %s/6", puzzleID, score),
		Body:     strings.Join(rows, "\n"),
	}
}

func randomRow(rng *rand.Rand) string {
	glyphs := []string{"🟩", "🟨", "⬜"}
	var b strings.Builder
	for i := 0; i < 5; i++ {
		b.WriteString(glyphs[rng.Intn(len(glyphs))])
	}
	return b.String()
}

func post(ctx context.Context, client *http.Client, url string, sub submission) error {
	raw, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
