package seed

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/chestboard/internal/domain/model"
	"github.com/okian/chestboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

func TestGenerate(t *testing.T) {
	Convey("Given the generator", t, func() {
		ctx := context.Background()

		Convey("When generating a batch of players", func() {
			players, err := Generate(ctx, 200)

			Convey("Then every player is well formed", func() {
				So(err, ShouldBeNil)
				So(players, ShouldHaveLength, 200)

				seen := make(map[string]bool, len(players))
				for _, p := range players {
					So(p.ID, ShouldNotBeEmpty)
					So(seen[p.ID], ShouldBeFalse)
					seen[p.ID] = true

					So(p.Name, ShouldNotBeEmpty)
					So(p.Server, ShouldNotBeEmpty)
					So(p.Score, ShouldBeGreaterThanOrEqualTo, 0)
					So(p.Chests, ShouldBeGreaterThanOrEqualTo, 0)
					So(p.Ratio, ShouldEqual, model.SafeRatio(p.Score, p.Chests))
				}
			})
		})

		Convey("When requesting a non-positive count", func() {
			_, err := Generate(ctx, 0)

			Convey("Then an error returns", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When the context is already cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := Generate(cancelled, 10)

			Convey("Then generation stops with an error", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestWrite(t *testing.T) {
	Convey("Given a generated batch", t, func() {
		ctx := context.Background()
		players, err := Generate(ctx, 25)
		So(err, ShouldBeNil)

		Convey("When writing it to a file", func() {
			path := filepath.Join(t.TempDir(), "players.json")
			out, err := Write(ctx, players, path)

			Convey("Then the dataset round-trips through the wire shape", func() {
				So(err, ShouldBeNil)
				So(out, ShouldEqual, path)

				data, err := os.ReadFile(path)
				So(err, ShouldBeNil)

				var doc struct {
					Players []model.Player `json:"players"`
				}
				So(json.Unmarshal(data, &doc), ShouldBeNil)
				So(doc.Players, ShouldHaveLength, 25)
			})
		})

		Convey("When writing into a missing directory", func() {
			path := filepath.Join(t.TempDir(), "nested", "players.json")
			_, err := Write(ctx, players, path)

			Convey("Then the directory is created", func() {
				So(err, ShouldBeNil)
				_, statErr := os.Stat(path)
				So(statErr, ShouldBeNil)
			})
		})
	})
}
