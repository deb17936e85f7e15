package logger

import (
	"context"
	"log/slog"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(Init(), ShouldBeNil)

		Convey("Get returns a usable logger", func() {
			l := Get()
			So(l, ShouldNotBeNil)
			So(func() {
				l.Info(context.Background(), "hello", String("k", "v"), Int("n", 1))
			}, ShouldNotPanic)
		})

		Convey("Named returns a child logger", func() {
			l := Named("worker")
			So(l, ShouldNotBeNil)
			So(func() { l.Debug(context.Background(), "child") }, ShouldNotPanic)
		})

		Convey("SetLevelString accepts known names", func() {
			So(SetLevelString("debug"), ShouldBeNil)
			So(levelVar.Level(), ShouldEqual, slog.LevelDebug)
			So(SetLevelString("WARN"), ShouldBeNil)
			So(levelVar.Level(), ShouldEqual, slog.LevelWarn)
			So(SetLevelString(""), ShouldBeNil)
			So(levelVar.Level(), ShouldEqual, slog.LevelInfo)
		})

		Convey("SetLevelString rejects garbage", func() {
			So(SetLevelString("loud"), ShouldNotBeNil)
		})
	})
}

func TestFieldConstructors(t *testing.T) {
	Convey("Field constructors carry their keys and values", t, func() {
		So(String("a", "b"), ShouldResemble, Field{Key: "a", Value: "b"})
		So(Int("n", 3).Value, ShouldEqual, 3)
		So(Bool("ok", true).Value, ShouldEqual, true)
		So(Float64("f", 1.5).Value, ShouldEqual, 1.5)
		So(Error(context.Canceled).Key, ShouldEqual, "error")
	})
}
