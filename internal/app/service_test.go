package service

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/nytrack/puzzleboard/internal/adapters/persistence"
	"github.com/nytrack/puzzleboard/internal/domain/game"
	"github.com/nytrack/puzzleboard/internal/domain/model"
	"github.com/nytrack/puzzleboard/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// fixedNow pins "today" to 2022-01-19, which is Wordle #214.
func fixedNow() time.Time {
	return time.Date(2022, time.January, 19, 12, 0, 0, 0, time.UTC)
}

func newTestService(opts ...Option) *Service {
	base := []Option{
		WithClock(fixedNow),
		WithLocation(time.UTC),
		WithWorkerCount(2),
	}
	return New(append(base, opts...)...)
}

func wordleBody(attempts int) string {
	body := ""
	for i := 0; i < attempts; i++ {
		body += "🟨🟨⬜⬜⬜\n"
	}
	return body + "🟩🟩🟩🟩🟩"
}

func eventually(check func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if check() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return check()
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := newTestService()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("Start is idempotent", func() {
			So(svc.Start(ctx), ShouldBeNil)
		})

		Convey("GetStats reports the running components", func() {
			st := svc.GetStats()
			So(st["started"], ShouldEqual, true)
			So(st["workerCount"], ShouldEqual, 2)
			So(st["entries"], ShouldNotBeNil)
		})
	})
}

func TestServiceAddEntry(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := newTestService()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("AddEntry records a parsed result synchronously", func() {
			entry, err := svc.AddEntry(ctx, "wordle", "alice", "Wordle 214 3/6", wordleBody(2))
			So(err, ShouldBeNil)
			So(entry.PuzzleID, ShouldEqual, 214)
			So(entry.Score, ShouldEqual, 3)

			got, err := svc.Entries(ctx, "wordle", "alice")
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 1)
		})

		Convey("AddEntry surfaces parse failures", func() {
			_, err := svc.AddEntry(ctx, "wordle", "alice", "not a result", "")
			So(err, ShouldNotBeNil)
		})

		Convey("AddEntry rejects unknown games", func() {
			_, err := svc.AddEntry(ctx, "sudoku", "alice", "Sudoku 1", "")
			So(err, ShouldEqual, game.ErrUnknownVariant)
		})
	})
}

func TestServiceSubmit(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := newTestService()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		sub := model.Submission{
			ID:       "msg-1",
			Game:     game.Wordle,
			PlayerID: "alice",
			Title:    "Wordle 214 4/6",
			Body:     wordleBody(3),
		}

		Convey("a queued submission eventually lands in the store", func() {
			queued, duplicate := svc.Submit(ctx, sub)
			So(queued, ShouldBeTrue)
			So(duplicate, ShouldBeFalse)

			So(eventually(func() bool {
				got, _ := svc.Entries(ctx, "wordle", "alice")
				return len(got) == 1
			}), ShouldBeTrue)
		})

		Convey("resending the same id reports a duplicate", func() {
			queued, duplicate := svc.Submit(ctx, sub)
			So(queued, ShouldBeTrue)
			So(duplicate, ShouldBeFalse)

			queued, duplicate = svc.Submit(ctx, sub)
			So(queued, ShouldBeFalse)
			So(duplicate, ShouldBeTrue)
		})

		Convey("an unparseable submission is dropped and its id freed", func() {
			bad := sub
			bad.ID = "msg-bad"
			bad.Title = "Wordle what?"
			queued, duplicate := svc.Submit(ctx, bad)
			So(queued, ShouldBeTrue)
			So(duplicate, ShouldBeFalse)

			// The worker rejects it and frees the id for retry.
			So(eventually(func() bool {
				q, d := svc.Submit(ctx, bad)
				return q && !d
			}), ShouldBeTrue)

			got, _ := svc.Entries(ctx, "wordle", "alice")
			So(got, ShouldBeEmpty)
		})
	})
}

func TestServiceRemoveEntry(t *testing.T) {
	Convey("Given a service with a recorded entry", t, func() {
		ctx := context.Background()
		svc := newTestService()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		_, err := svc.AddEntry(ctx, "wordle", "alice", "Wordle 214 3/6", wordleBody(2))
		So(err, ShouldBeNil)

		Convey("a negative puzzle id removes today's entry", func() {
			removed, err := svc.RemoveEntry(ctx, "wordle", "alice", -1)
			So(err, ShouldBeNil)
			So(removed, ShouldBeTrue)

			got, _ := svc.Entries(ctx, "wordle", "alice")
			So(got, ShouldBeEmpty)
		})

		Convey("removing an absent entry reports false", func() {
			removed, err := svc.RemoveEntry(ctx, "wordle", "bob", 214)
			So(err, ShouldBeNil)
			So(removed, ShouldBeFalse)
		})
	})
}

func TestServiceLeaderboard(t *testing.T) {
	Convey("Given a service with a week of results", t, func() {
		ctx := context.Background()
		svc := newTestService()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		// Week of 2022-01-16 runs #211..#217; today is #214.
		titles := map[int]string{211: "3/6", 212: "4/6", 213: "2/6", 214: "5/6"}
		for id, score := range titles {
			attempts := int(score[0] - '0')
			_, err := svc.AddEntry(ctx, "wordle", "alice",
				"Wordle "+strconv.Itoa(id)+" "+score, wordleBody(attempts-1))
			So(err, ShouldBeNil)
		}
		_, err := svc.AddEntry(ctx, "wordle", "bob", "Wordle 214 2/6", wordleBody(1))
		So(err, ShouldBeNil)

		Convey("the default mode ranks the current week so far", func() {
			lb, err := svc.Leaderboard(ctx, "wordle", "")
			So(err, ShouldBeNil)
			So(lb.Label, ShouldEqual, "This Week (so far)")
			So(lb.Rows, ShouldHaveLength, 2)

			// alice played all four; bob played one and missed three.
			var alice, bob model.LeaderboardRow
			for _, row := range lb.Rows {
				switch row.PlayerID {
				case "alice":
					alice = row
				case "bob":
					bob = row
				}
			}
			So(alice.Played, ShouldEqual, 4)
			So(alice.Missed, ShouldEqual, 0)
			So(alice.AdjMean, ShouldAlmostEqual, 3.5)
			So(bob.Played, ShouldEqual, 1)
			So(bob.Missed, ShouldEqual, 3)
			So(bob.AdjMean, ShouldAlmostEqual, (2.0+3*7.0)/4.0)
			So(alice.Rank, ShouldEqual, 1)
			So(bob.Rank, ShouldEqual, 2)
		})

		Convey("today's board considers only today's puzzle", func() {
			lb, err := svc.Leaderboard(ctx, "wordle", "today")
			So(err, ShouldBeNil)
			So(lb.Rows, ShouldHaveLength, 2)
			So(lb.Rows[0].PlayerID, ShouldEqual, "bob")
			So(lb.Rows[0].Rank, ShouldEqual, 1)
		})

		Convey("an all-time board ranks by raw mean", func() {
			lb, err := svc.Leaderboard(ctx, "wordle", "alltime")
			So(err, ShouldBeNil)
			So(lb.Label, ShouldEqual, "All-time")
			So(lb.Rows[0].PlayerID, ShouldEqual, "bob")
		})

		Convey("an empty window is an error", func() {
			_, err := svc.Leaderboard(ctx, "connections", "")
			So(err, ShouldEqual, ErrNoEntries)
		})

		Convey("an unknown mode is rejected", func() {
			_, err := svc.Leaderboard(ctx, "wordle", "fortnight")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestServiceMissing(t *testing.T) {
	Convey("Given players with uneven participation", t, func() {
		ctx := context.Background()
		svc := newTestService()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		_, err := svc.AddEntry(ctx, "wordle", "alice", "Wordle 214 3/6", wordleBody(2))
		So(err, ShouldBeNil)
		_, err = svc.AddEntry(ctx, "wordle", "bob", "Wordle 213 3/6", wordleBody(2))
		So(err, ShouldBeNil)

		Convey("Missing lists players without today's entry", func() {
			missing, err := svc.Missing(ctx, "wordle", -1)
			So(err, ShouldBeNil)
			So(missing, ShouldResemble, []string{"bob"})
		})

		Convey("Missing accepts an explicit puzzle ID", func() {
			missing, err := svc.Missing(ctx, "wordle", 213)
			So(err, ShouldBeNil)
			So(missing, ShouldResemble, []string{"alice"})
		})
	})
}

func TestServiceHydration(t *testing.T) {
	Convey("Given an archive with prior entries", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "entries.db")

		archive, err := persistence.Open(ctx, path)
		So(err, ShouldBeNil)
		So(archive.Save(ctx, model.Entry{
			Game:     game.Wordle,
			PuzzleID: 213,
			PlayerID: "carol",
			Score:    4,
			Features: map[string]int{"green": 8, "yellow": 3, "other": 9},
		}), ShouldBeNil)
		So(archive.Close(), ShouldBeNil)

		Convey("a fresh service replays them on Start", func() {
			reopened, err := persistence.Open(ctx, path)
			So(err, ShouldBeNil)

			svc := newTestService(WithArchive(reopened))
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			got, err := svc.Entries(ctx, "wordle", "carol")
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 1)
			So(got[0].Score, ShouldEqual, 4)
		})
	})
}
