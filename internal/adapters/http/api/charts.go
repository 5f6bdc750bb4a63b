// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/chestboard/internal/domain/chart"
	"github.com/okian/chestboard/internal/domain/stats"
)

// ChartsHandler handles chart data requests.
type ChartsHandler struct {
	deps Dependencies
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(deps Dependencies) *ChartsHandler {
	return &ChartsHandler{deps: deps}
}

// HandleGetChart handles GET /charts?kind=...&metric=... requests. The same
// filter parameters as /players narrow the charted set. An unknown kind is
// reported by the engine but still answered with the empty chart shape and
// a 200, so a dashboard never breaks mid-render.
func (h *ChartsHandler) HandleGetChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	kind := chart.Kind(q.Get("kind"))
	if kind == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrMissingChartKind)
		return
	}

	var opts chart.Options
	if kind == chart.KindTopPlayers {
		opts = chart.TopPlayersOptions{Metric: stats.Metric(q.Get("metric"))}
	}

	data, err := h.deps.ChartData(kind, specFromQuery(r), opts)
	if err != nil {
		// Reported upstream; the empty shape keeps renderers alive.
		writeJSON(w, http.StatusOK, chart.Empty())
		return
	}
	writeJSON(w, http.StatusOK, data)
}
