// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/chestboard/internal/domain/chart"
	"github.com/okian/chestboard/internal/domain/filter"
	"github.com/okian/chestboard/internal/domain/model"
	"github.com/okian/chestboard/internal/domain/stats"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the engine implementation.
type Dependencies interface {
	// Read operations over the current snapshot.
	Players() []model.Player
	FilteredPlayers(spec filter.Spec) []model.Player
	PlayerDetails(id string) (model.Player, error)
	Alliances() []string
	Servers() []string
	Statistics() stats.Summary
	FilteredStatistics(spec filter.Spec) stats.Summary
	ChartData(kind chart.Kind, spec filter.Spec, opts chart.Options) (chart.Data, error)

	// Cache management.
	Reload(ctx context.Context) error
	ClearCache(ctx context.Context) error
	SetDataSource(identifier string) error
	DataSource() string
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	playersHandler    *PlayersHandler
	playerHandler     *PlayerHandler
	alliancesHandler  *AlliancesHandler
	serversHandler    *ServersHandler
	statisticsHandler *StatisticsHandler
	chartsHandler     *ChartsHandler
	adminHandler      *AdminHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		playersHandler:    NewPlayersHandler(deps),
		playerHandler:     NewPlayerHandler(deps),
		alliancesHandler:  NewAlliancesHandler(deps),
		serversHandler:    NewServersHandler(deps),
		statisticsHandler: NewStatisticsHandler(deps),
		chartsHandler:     NewChartsHandler(deps),
		adminHandler:      NewAdminHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/players", MetricsMiddleware(s.playersHandler.HandleGetPlayers, "players"))
	mux.HandleFunc("/players/", MetricsMiddleware(s.playerHandler.HandleGetPlayer, "player"))
	mux.HandleFunc("/alliances", MetricsMiddleware(s.alliancesHandler.HandleGetAlliances, "alliances"))
	mux.HandleFunc("/servers", MetricsMiddleware(s.serversHandler.HandleGetServers, "servers"))
	mux.HandleFunc("/statistics", MetricsMiddleware(s.statisticsHandler.HandleGetStatistics, "statistics"))
	mux.HandleFunc("/charts", MetricsMiddleware(s.chartsHandler.HandleGetChart, "charts"))
	mux.HandleFunc("/reload", MetricsMiddleware(s.adminHandler.HandleReload, "reload"))
	mux.HandleFunc("/cache", MetricsMiddleware(s.adminHandler.HandleCache, "cache"))
	mux.HandleFunc("/source", MetricsMiddleware(s.adminHandler.HandleSource, "source"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// specFromQuery parses the shared filter query parameters. Unparseable
// numeric bounds degrade to "no constraint" inside ParseSpec, so this never
// produces a client error.
func specFromQuery(r *http.Request) filter.Spec {
	q := r.URL.Query()
	return filter.ParseSpec(q.Get)
}

// isNotFound translates upstream not-found errors to 404 without coupling
// the handler layer to specific sentinel values.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}
