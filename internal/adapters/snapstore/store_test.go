package snapstore_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/okian/chestboard/internal/adapters/snapstore"
	"github.com/okian/chestboard/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleSnapshot() *model.Snapshot {
	players := []model.Player{
		{ID: "p1", Name: "Ragnar", Alliance: "Wolves", Server: "EU-1", Score: 100, Chests: 10, Ratio: 10},
		{ID: "p2", Name: "Astrid", Alliance: "Bears", Server: "EU-2", Score: 300, Chests: 0, Ratio: 0},
	}
	return model.NewSnapshot(players, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	Convey("Given an empty memory store", t, func() {
		store := snapstore.NewMemoryStore()
		ctx := context.Background()

		Convey("When loading before any save", func() {
			snap, ok, err := store.Load(ctx)

			Convey("Then there is no snapshot and no error", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
				So(snap, ShouldBeNil)
			})
		})

		Convey("When saving and loading a snapshot", func() {
			orig := sampleSnapshot()
			So(store.Save(ctx, orig), ShouldBeNil)
			snap, ok, err := store.Load(ctx)

			Convey("Then the snapshot survives intact", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(snap.Players, ShouldResemble, orig.Players)
				So(snap.Alliances, ShouldResemble, []string{"Bears", "Wolves"})
				So(snap.Servers, ShouldResemble, []string{"EU-1", "EU-2"})
				So(snap.LastUpdated.Equal(orig.LastUpdated), ShouldBeTrue)
			})

			Convey("And staleness is measured from the persisted timestamp", func() {
				So(snap.StaleAt(orig.LastUpdated.Add(time.Hour), time.Hour), ShouldBeTrue)
				So(snap.StaleAt(orig.LastUpdated.Add(time.Hour-time.Second), time.Hour), ShouldBeFalse)
			})
		})

		Convey("When clearing after a save", func() {
			So(store.Save(ctx, sampleSnapshot()), ShouldBeNil)
			So(store.Clear(ctx), ShouldBeNil)
			_, ok, err := store.Load(ctx)

			Convey("Then the snapshot is gone", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestPersistedShape(t *testing.T) {
	Convey("Given a saved snapshot", t, func() {
		store := snapstore.NewMemoryStore()
		ctx := context.Background()
		So(store.Save(ctx, sampleSnapshot()), ShouldBeNil)

		Convey("When saving again", func() {
			replacement := model.NewSnapshot(nil, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
			So(store.Save(ctx, replacement), ShouldBeNil)
			snap, ok, _ := store.Load(ctx)

			Convey("Then the previous snapshot is fully replaced", func() {
				So(ok, ShouldBeTrue)
				So(snap.Players, ShouldBeEmpty)
				So(snap.LastUpdated.Equal(replacement.LastUpdated), ShouldBeTrue)
			})
		})
	})

	Convey("Given the documented wire contract", t, func() {
		Convey("Then lastUpdated serializes as an ISO-8601 string", func() {
			// The persisted payload must stay readable by non-Go consumers.
			payload := struct {
				LastUpdated string `json:"lastUpdated"`
			}{}
			raw := `{"players":[],"alliances":[],"servers":[],"lastUpdated":"2025-06-01T12:00:00Z"}`
			So(json.Unmarshal([]byte(raw), &payload), ShouldBeNil)
			ts, err := time.Parse(time.RFC3339, payload.LastUpdated)
			So(err, ShouldBeNil)
			So(ts.Hour(), ShouldEqual, 12)
		})
	})
}
