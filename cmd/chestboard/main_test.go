package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/okian/chestboard/internal/adapters/http/api"
	"github.com/okian/chestboard/internal/adapters/snapstore"
	service "github.com/okian/chestboard/internal/app"
	"github.com/okian/chestboard/internal/config"
	"github.com/okian/chestboard/pkg/logger"
	"github.com/okian/chestboard/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("CHESTBOARD_ADDR", ":8080")
			_ = os.Setenv("CHESTBOARD_DATA_SOURCE", "testdata/players.json")
			defer func() {
				_ = os.Unsetenv("CHESTBOARD_ADDR")
				_ = os.Unsetenv("CHESTBOARD_DATA_SOURCE")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataSource, convey.ShouldEqual, "testdata/players.json")
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := service.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := service.New(
					service.WithStore(snapstore.NewMemoryStore()),
					service.WithMaxAge(time.Hour),
					service.WithReloadOnStart(false),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := service.New(service.WithReloadOnStart(false))
			mux := http.NewServeMux()
			apiServer := api.NewServer(svc, svc)
			apiServer.Register(context.Background(), mux)

			srv := &http.Server{
				Addr:              ":0",
				Handler:           mux,
				ReadTimeout:       readTimeout,
				WriteTimeout:      writeTimeout,
				IdleTimeout:       idleTimeout,
				ReadHeaderTimeout: readHeaderTimeout,
			}

			convey.Convey("Then the server should be configured", func() {
				convey.So(srv.Handler, convey.ShouldNotBeNil)
				convey.So(srv.ReadTimeout, convey.ShouldEqual, 10*time.Second)
			})
		})

		convey.Convey("When updating system metrics", func() {
			convey.Convey("Then the update should not panic", func() {
				convey.So(updateSystemMetrics, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When updating service metrics", func() {
			svc := service.New(service.WithReloadOnStart(false))

			convey.Convey("Then the update should not panic", func() {
				convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When gathering the metrics registry", func() {
			families, err := metrics.GetRegistry().Gather()

			convey.Convey("Then gathering should succeed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(families, convey.ShouldNotBeNil)
			})
		})
	})
}
