package submission_test

import (
	"errors"
	"testing"

	"github.com/nytrack/puzzleboard/internal/domain/game"
	"github.com/nytrack/puzzleboard/internal/domain/submission"
	. "github.com/smartystreets/goconvey/convey"
)

const wordleBody = "⬜🟨⬜⬜⬜\n🟩🟨⬜⬜⬜\n🟩🟩🟩🟩🟩"

func TestParseWordle(t *testing.T) {
	Convey("Given a wordle parser", t, func() {
		p := submission.NewParser(game.MustLookup("wordle"))

		Convey("When parsing a comma-grouped puzzle number", func() {
			entry, err := p.Parse("alice", "Wordle 1,234 3/6", wordleBody)
			So(err, ShouldBeNil)

			Convey("Then the number, score and glyph tallies come through", func() {
				So(entry.PuzzleID, ShouldEqual, 1234)
				So(entry.PlayerID, ShouldEqual, "alice")
				So(entry.Score, ShouldEqual, 3)
				So(entry.Feature("green"), ShouldEqual, 6)
				So(entry.Feature("yellow"), ShouldEqual, 2)
				So(entry.Feature("other"), ShouldEqual, 7)
			})
		})

		Convey("When parsing a failed grid", func() {
			entry, err := p.Parse("alice", "Wordle 205 X/6", "⬛⬛⬛⬛⬛")
			So(err, ShouldBeNil)

			Convey("Then the failure marker maps to the failure score", func() {
				So(entry.PuzzleID, ShouldEqual, 205)
				So(entry.Score, ShouldEqual, 7)
			})
		})

		Convey("When the header carries the celebratory marker", func() {
			entry, err := p.Parse("alice", "Wordle 807 🎉 2/6", wordleBody)
			So(err, ShouldBeNil)
			So(entry.Score, ShouldEqual, 2)
		})

		Convey("When the title does not match", func() {
			_, err := p.Parse("alice", "Wordle friday vibes", wordleBody)
			So(errors.Is(err, submission.ErrUnrecognizedSubmission), ShouldBeTrue)
		})

		Convey("When the attempt cap is wrong", func() {
			_, err := p.Parse("alice", "Wordle 205 3/5", wordleBody)
			So(errors.Is(err, submission.ErrUnrecognizedSubmission), ShouldBeTrue)
		})

		Convey("Then parsing is idempotent", func() {
			a, errA := p.Parse("alice", "Wordle 1,234 3/6", wordleBody)
			b, errB := p.Parse("alice", "Wordle 1,234 3/6", wordleBody)
			So(errA, ShouldBeNil)
			So(errB, ShouldBeNil)
			So(a, ShouldResemble, b)
		})
	})
}

func TestParseConnections(t *testing.T) {
	Convey("Given a connections parser", t, func() {
		p := submission.NewParser(game.MustLookup("connections"))

		Convey("When the grid ends with a clean group", func() {
			body := "🟨🟨🟨🟨\n🟩🟩🟩🟩\n🟦🟦🟦🟦\n🟪🟪🟪🟪"
			entry, err := p.Parse("bob", "Connections\nPuzzle #620", body)
			So(err, ShouldBeNil)

			Convey("Then the score is the number of guess rows", func() {
				So(entry.PuzzleID, ShouldEqual, 620)
				So(entry.Score, ShouldEqual, 4)
			})
		})

		Convey("When the final row is mixed", func() {
			body := "🟨🟨🟨🟨\n🟩🟩🟦🟩\n🟦🟩🟦🟦\n🟪🟦🟪🟪"
			entry, err := p.Parse("bob", "Connections\nPuzzle #620", body)
			So(err, ShouldBeNil)

			Convey("Then the grid counts as unsolved", func() {
				So(entry.Score, ShouldEqual, 7)
			})
		})

		Convey("When the header is missing the puzzle line", func() {
			_, err := p.Parse("bob", "Connections", "🟨🟨🟨🟨")
			So(errors.Is(err, submission.ErrUnrecognizedSubmission), ShouldBeTrue)
		})
	})
}

func TestParseStrands(t *testing.T) {
	Convey("Given a strands parser", t, func() {
		p := submission.NewParser(game.MustLookup("strands"))

		Convey("When the spangram opens the solve with no hints", func() {
			entry, err := p.Parse("cara", "Strands #154\n“Over the moon”", "🟡🔵🔵🔵\n🔵🔵🔵🔵")
			So(err, ShouldBeNil)

			Convey("Then the rating is the baseline 1.0", func() {
				So(entry.PuzzleID, ShouldEqual, 154)
				So(entry.Feature("hints"), ShouldEqual, 0)
				So(entry.Feature("spangram"), ShouldEqual, 1)
				So(entry.Score, ShouldEqual, 1.0)
			})
		})

		Convey("When hints and a late spangram are used", func() {
			// 2 hints, spangram at glyph position 6 of 8, 5 words.
			body := "💡🔵💡🔵\n🔵🟡🔵🔵"
			entry, err := p.Parse("cara", "Strands #154", body)
			So(err, ShouldBeNil)

			Convey("Then each hint and the spangram delay add penalties", func() {
				So(entry.Feature("hints"), ShouldEqual, 2)
				So(entry.Feature("spangram"), ShouldEqual, 6)
				// 1.0 + 2*0.25 + ((6-1)/5)*0.25
				So(entry.Score, ShouldAlmostEqual, 1.75, 1e-9)
			})
		})

		Convey("When the spangram never appears", func() {
			entry, err := p.Parse("cara", "Strands #154", "🔵🔵🔵🔵")
			So(err, ShouldBeNil)

			Convey("Then the position falls one past the glyph run", func() {
				So(entry.Feature("spangram"), ShouldEqual, 5)
				// 1.0 + ((5-1)/4)*0.25
				So(entry.Score, ShouldAlmostEqual, 1.25, 1e-9)
			})
		})

		Convey("When the header is another game's", func() {
			_, err := p.Parse("cara", "Wordle 205 3/6", "🔵🔵")
			So(errors.Is(err, submission.ErrUnrecognizedSubmission), ShouldBeTrue)
		})
	})
}
