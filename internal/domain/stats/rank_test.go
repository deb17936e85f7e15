package stats_test

import (
	"context"
	"testing"

	"github.com/nytrack/puzzleboard/internal/adapters/repository"
	"github.com/nytrack/puzzleboard/internal/domain/game"
	"github.com/nytrack/puzzleboard/internal/domain/query"
	"github.com/nytrack/puzzleboard/internal/domain/stats"
	. "github.com/smartystreets/goconvey/convey"
)

func aggregate(player string, raw, adj float64, features ...float64) stats.PlayerStats {
	return stats.PlayerStats{
		PlayerID:     player,
		RawMean:      raw,
		AdjMean:      adj,
		FeatureMeans: features,
	}
}

func TestRankTieSharing(t *testing.T) {
	Convey("Given a connections ranker", t, func() {
		r := stats.NewRanker(game.MustLookup("connections"))

		Convey("When two players tie on the full stat tuple", func() {
			ranked := r.Rank([]stats.PlayerStats{
				aggregate("a", 2, 2),
				aggregate("b", 2, 2),
				aggregate("c", 3, 1),
			}, query.AllTime)

			Convey("Then they share the rank and numbering resumes at the index", func() {
				So(ranked[0].Rank, ShouldEqual, 1)
				So(ranked[1].Rank, ShouldEqual, 1)
				So(ranked[2].Rank, ShouldEqual, 3)
			})
		})

		Convey("When a longer field has repeated runs", func() {
			ranked := r.Rank([]stats.PlayerStats{
				aggregate("a", 2, 2),
				aggregate("b", 2, 2),
				aggregate("c", 3, 3),
				aggregate("d", 4, 4),
				aggregate("e", 4, 4),
				aggregate("f", 5, 5),
			}, query.AllTime)

			Convey("Then the sequence is 1,1,3,4,4,6", func() {
				got := make([]int, len(ranked))
				for i, s := range ranked {
					got[i] = s.Rank
				}
				So(got, ShouldResemble, []int{1, 1, 3, 4, 4, 6})
			})
		})
	})
}

func TestRankTieBreakers(t *testing.T) {
	Convey("Given a wordle ranker", t, func() {
		r := stats.NewRanker(game.MustLookup("wordle"))

		Convey("When adjusted means tie in a weekly window", func() {
			// Equal primary; the 'other' average breaks the tie, then
			// 'yellow', then 'green'. Features are [green, yellow, other].
			ranked := r.Rank([]stats.PlayerStats{
				aggregate("heavy-grey", 3, 3.5, 4, 1, 9),
				aggregate("light-grey", 3, 3.5, 4, 1, 7),
			}, query.MultiPuzzle)

			Convey("Then the lower 'other' average ranks first", func() {
				So(ranked[0].PlayerID, ShouldEqual, "light-grey")
				So(ranked[0].Rank, ShouldEqual, 1)
				So(ranked[1].Rank, ShouldEqual, 2)
			})
		})

		Convey("When primary and tie-breakers all differ only in green", func() {
			ranked := r.Rank([]stats.PlayerStats{
				aggregate("more-green", 3, 3.5, 6, 1, 7),
				aggregate("less-green", 3, 3.5, 4, 1, 7),
			}, query.MultiPuzzle)

			So(ranked[0].PlayerID, ShouldEqual, "less-green")
		})
	})
}

func TestRankPolicyDivergence(t *testing.T) {
	Convey("Given two players whose only difference is one old miss", t, func() {
		ctx := context.Background()
		cfg := game.MustLookup("wordle")
		calc := stats.NewCalculator(cfg)
		r := stats.NewRanker(cfg)
		store := repository.NewMemStore(game.Wordle)

		window := []int{100, 101, 102, 103, 104, 105, 106}
		for _, id := range window {
			// steady posts middling scores every day.
			store.Upsert(ctx, wordleEntry("steady", id, 4, 4, 2, 10))
			// sharp posts perfect scores but skipped the first day.
			if id != 100 {
				store.Upsert(ctx, wordleEntry("sharp", id, 2, 8, 1, 2))
			}
		}

		compute := func(window []int) []stats.PlayerStats {
			return []stats.PlayerStats{
				calc.Compute(ctx, "steady", window, store),
				calc.Compute(ctx, "sharp", window, store),
			}
		}

		Convey("When ranked all-time on the raw mean", func() {
			ranked := r.Rank(compute(window), query.AllTime)

			Convey("Then the skipped day does not dent the stronger player", func() {
				So(ranked[0].PlayerID, ShouldEqual, "sharp")
				So(ranked[0].Rank, ShouldEqual, 1)
			})
		})

		Convey("When ranked over a short window that includes the miss", func() {
			// sharp: (2 + 7)/2 = 4.5 adjusted vs steady's 4.0.
			ranked := r.Rank(compute([]int{100, 101}), query.MultiPuzzle)

			Convey("Then the miss penalty flips the order", func() {
				So(ranked[0].PlayerID, ShouldEqual, "steady")
				So(ranked[1].PlayerID, ShouldEqual, "sharp")
			})
		})
	})
}
