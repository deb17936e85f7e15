package config_test

import (
	"runtime"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/nytrack/puzzleboard/internal/config"
)

func TestNew(t *testing.T) {
	convey.Convey("New returns sane defaults", t, func() {
		cfg := config.New()
		convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
		convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
		convey.So(cfg.QueueSize, convey.ShouldEqual, 10_000)
		convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*4)
		convey.So(cfg.DedupeSize, convey.ShouldEqual, 50_000)
		convey.So(cfg.MaxLeaderboardRows, convey.ShouldEqual, 100)
		convey.So(cfg.DBPath, convey.ShouldEqual, "puzzleboard.db")
		convey.So(cfg.Timezone, convey.ShouldEqual, "America/New_York")
	})
}
