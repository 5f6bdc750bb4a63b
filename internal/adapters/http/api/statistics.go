// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// StatisticsHandler handles summary statistics requests.
type StatisticsHandler struct {
	deps Dependencies
}

// NewStatisticsHandler creates a new statistics handler.
func NewStatisticsHandler(deps Dependencies) *StatisticsHandler {
	return &StatisticsHandler{deps: deps}
}

// HandleGetStatistics handles GET /statistics requests. The same filter
// query parameters as /players narrow the aggregated set; alliance and
// server breakdowns always cover every known group.
func (h *StatisticsHandler) HandleGetStatistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	spec := specFromQuery(r)
	if spec.IsZero() {
		writeJSON(w, http.StatusOK, h.deps.Statistics())
		return
	}
	writeJSON(w, http.StatusOK, h.deps.FilteredStatistics(spec))
}
