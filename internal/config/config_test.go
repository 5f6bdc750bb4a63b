package config_test

import (
	"testing"

	"github.com/okian/chestboard/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given a default config", t, func() {
		cfg := config.New()

		Convey("Then sensible defaults apply", func() {
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.DataSource, ShouldEqual, "data/players.json")
			So(cfg.SnapshotMaxAgeMin, ShouldEqual, 60)
			So(cfg.FetchTimeoutMS, ShouldEqual, 30000)
			So(cfg.SnapshotKey, ShouldEqual, "chestboard:snapshot")
			So(cfg.RedisAddr, ShouldBeEmpty)
			So(cfg.ReloadOnStart, ShouldBeTrue)
		})
	})
}
