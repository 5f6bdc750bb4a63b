package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/chestboard/internal/adapters/http/api"
	"github.com/okian/chestboard/internal/domain/chart"
	"github.com/okian/chestboard/internal/domain/filter"
	"github.com/okian/chestboard/internal/domain/model"
	"github.com/okian/chestboard/internal/domain/stats"
	. "github.com/smartystreets/goconvey/convey"
)

// mockEngine implements api.Dependencies over a fixed player list.
type mockEngine struct {
	players   []model.Player
	reloadErr error
	clearErr  error
	source    string

	reloads int
	cleared int
}

func (m *mockEngine) Players() []model.Player { return m.players }

func (m *mockEngine) FilteredPlayers(spec filter.Spec) []model.Player {
	return filter.Apply(m.players, spec)
}

func (m *mockEngine) PlayerDetails(id string) (model.Player, error) {
	for _, p := range m.players {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Player{}, errors.New("player not found: " + id)
}

func (m *mockEngine) Alliances() []string { return []string{"Bears", "Wolves"} }
func (m *mockEngine) Servers() []string   { return []string{"EU-1", "EU-2"} }

func (m *mockEngine) Statistics() stats.Summary {
	return stats.Compute(m.players, m.Alliances(), m.Servers())
}

func (m *mockEngine) FilteredStatistics(spec filter.Spec) stats.Summary {
	return stats.Compute(filter.Apply(m.players, spec), m.Alliances(), m.Servers())
}

func (m *mockEngine) ChartData(kind chart.Kind, spec filter.Spec, opts chart.Options) (chart.Data, error) {
	return chart.Build(kind, filter.Apply(m.players, spec), opts)
}

func (m *mockEngine) Reload(ctx context.Context) error {
	m.reloads++
	return m.reloadErr
}

func (m *mockEngine) ClearCache(ctx context.Context) error {
	m.cleared++
	return m.clearErr
}

func (m *mockEngine) SetDataSource(identifier string) error {
	if strings.TrimSpace(identifier) == "" {
		return errors.New("invalid data source identifier")
	}
	m.source = identifier
	return nil
}

func (m *mockEngine) DataSource() string { return m.source }

type mockStatsProvider struct{}

func (mockStatsProvider) GetStats() map[string]interface{} {
	return map[string]interface{}{"players": 2, "started": true}
}

func newTestMux(engine *mockEngine) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(engine, mockStatsProvider{}).Register(context.Background(), mux)
	return mux
}

func testPlayers() []model.Player {
	return []model.Player{
		{ID: "p1", Name: "Ragnar", Alliance: "Wolves", Server: "EU-1", Score: 1000, Chests: 100, Ratio: 10},
		{ID: "p2", Name: "Astrid", Alliance: "Bears", Server: "EU-2", Score: 300, Chests: 0, Ratio: 0},
	}
}

func TestPlayersEndpoints(t *testing.T) {
	Convey("Given the API over a loaded engine", t, func() {
		engine := &mockEngine{players: testPlayers(), source: "data/players.json"}
		mux := newTestMux(engine)

		Convey("When listing players without filters", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/players", nil))

			Convey("Then the full list returns as JSON", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var players []model.Player
				So(json.Unmarshal(rec.Body.Bytes(), &players), ShouldBeNil)
				So(players, ShouldHaveLength, 2)
			})
		})

		Convey("When listing players with a filter", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/players?alliance=Wolves", nil))

			var players []model.Player
			So(json.Unmarshal(rec.Body.Bytes(), &players), ShouldBeNil)

			Convey("Then only matching players return", func() {
				So(players, ShouldHaveLength, 1)
				So(players[0].ID, ShouldEqual, "p1")
			})
		})

		Convey("When listing players with an unparseable numeric filter", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/players?min_score=abc", nil))

			var players []model.Player
			So(json.Unmarshal(rec.Body.Bytes(), &players), ShouldBeNil)

			Convey("Then the bad bound is ignored, not rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(players, ShouldHaveLength, 2)
			})
		})

		Convey("When fetching a player by id", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/players/p2", nil))

			Convey("Then the player returns", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var p model.Player
				So(json.Unmarshal(rec.Body.Bytes(), &p), ShouldBeNil)
				So(p.Name, ShouldEqual, "Astrid")
			})
		})

		Convey("When fetching an unknown player", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/players/ghost", nil))

			Convey("Then a 404 returns", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When fetching with an empty id", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/players/", nil))

			Convey("Then a 400 returns", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestMetaAndStatisticsEndpoints(t *testing.T) {
	Convey("Given the API over a loaded engine", t, func() {
		engine := &mockEngine{players: testPlayers()}
		mux := newTestMux(engine)

		Convey("When fetching alliances and servers", func() {
			recA := httptest.NewRecorder()
			mux.ServeHTTP(recA, httptest.NewRequest(http.MethodGet, "/alliances", nil))
			recS := httptest.NewRecorder()
			mux.ServeHTTP(recS, httptest.NewRequest(http.MethodGet, "/servers", nil))

			Convey("Then the sorted sets return", func() {
				var names []string
				So(json.Unmarshal(recA.Body.Bytes(), &names), ShouldBeNil)
				So(names, ShouldResemble, []string{"Bears", "Wolves"})
				So(json.Unmarshal(recS.Body.Bytes(), &names), ShouldBeNil)
				So(names, ShouldResemble, []string{"EU-1", "EU-2"})
			})
		})

		Convey("When fetching statistics", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/statistics", nil))

			Convey("Then the summary returns", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var s stats.Summary
				So(json.Unmarshal(rec.Body.Bytes(), &s), ShouldBeNil)
				So(s.PlayerCount, ShouldEqual, 2)
				So(s.AvgScore, ShouldEqual, 650)
			})
		})

		Convey("When fetching filtered statistics", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/statistics?server=EU-2", nil))

			var s stats.Summary
			So(json.Unmarshal(rec.Body.Bytes(), &s), ShouldBeNil)

			Convey("Then only matching players are aggregated", func() {
				So(s.PlayerCount, ShouldEqual, 1)
			})

			Convey("And unmatched groups keep zero rows", func() {
				So(s.ByServer["EU-1"].Count, ShouldEqual, 0)
			})
		})
	})
}

func TestChartsEndpoint(t *testing.T) {
	Convey("Given the API over a loaded engine", t, func() {
		engine := &mockEngine{players: testPlayers()}
		mux := newTestMux(engine)

		Convey("When requesting a score distribution", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/charts?kind=score_distribution", nil))

			Convey("Then the bucketed shape returns", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var d chart.Data
				So(json.Unmarshal(rec.Body.Bytes(), &d), ShouldBeNil)
				So(d.Categories[0], ShouldEqual, "0-1K")
				So(d.Series, ShouldHaveLength, 1)
			})
		})

		Convey("When requesting top players by ratio", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/charts?kind=top_players&metric=ratio", nil))

			var d chart.Data
			So(json.Unmarshal(rec.Body.Bytes(), &d), ShouldBeNil)

			Convey("Then the series is ranked by the requested metric", func() {
				So(d.Series[0].Name, ShouldEqual, "ratio")
				So(d.Categories[0], ShouldEqual, "Ragnar")
			})
		})

		Convey("When requesting an unknown kind", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/charts?kind=bogus", nil))

			Convey("Then a 200 with the empty shape returns", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var d chart.Data
				So(json.Unmarshal(rec.Body.Bytes(), &d), ShouldBeNil)
				So(d.Series, ShouldBeEmpty)
				So(d.Categories, ShouldBeEmpty)
			})
		})

		Convey("When the kind parameter is missing", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/charts", nil))

			Convey("Then a 400 returns", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestAdminEndpoints(t *testing.T) {
	Convey("Given the API over an engine", t, func() {
		engine := &mockEngine{players: testPlayers(), source: "data/players.json"}
		mux := newTestMux(engine)

		Convey("When triggering a reload", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reload", nil))

			Convey("Then the engine reloads once", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(engine.reloads, ShouldEqual, 1)
			})
		})

		Convey("When a reload is already in flight", func() {
			engine.reloadErr = errors.New("reload already in flight")
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reload", nil))

			Convey("Then a 409 returns", func() {
				So(rec.Code, ShouldEqual, http.StatusConflict)
			})
		})

		Convey("When a reload fails upstream", func() {
			engine.reloadErr = errors.New("reload failed: connection refused")
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reload", nil))

			Convey("Then a 502 returns", func() {
				So(rec.Code, ShouldEqual, http.StatusBadGateway)
			})
		})

		Convey("When clearing the cache", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/cache", nil))

			Convey("Then a 204 returns and the engine cleared once", func() {
				So(rec.Code, ShouldEqual, http.StatusNoContent)
				So(engine.cleared, ShouldEqual, 1)
			})
		})

		Convey("When switching the data source", func() {
			body := strings.NewReader(`{"source":"https://example.com/players.json"}`)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/source", body))

			Convey("Then the new identifier is echoed back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(engine.source, ShouldEqual, "https://example.com/players.json")
			})
		})

		Convey("When switching to an invalid source", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/source", strings.NewReader(`{"source":""}`)))

			Convey("Then a 400 returns", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the source body is not JSON", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/source", strings.NewReader("nope")))

			Convey("Then a 400 returns", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestStatsAndHealthEndpoints(t *testing.T) {
	Convey("Given the API over an engine", t, func() {
		mux := newTestMux(&mockEngine{players: testPlayers()})

		Convey("When fetching monitoring stats", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

			Convey("Then the provider's map returns", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var m map[string]interface{}
				So(json.Unmarshal(rec.Body.Bytes(), &m), ShouldBeNil)
				So(m["players"], ShouldEqual, 2)
			})
		})

		Convey("When fetching health metrics", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			Convey("Then Prometheus metrics are served", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "chestboard_engine")
			})
		})

		Convey("When using a wrong method", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/players", nil))

			Convey("Then a 404 returns", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}
