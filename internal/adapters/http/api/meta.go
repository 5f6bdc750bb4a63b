// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// AlliancesHandler handles alliance set requests.
type AlliancesHandler struct {
	deps Dependencies
}

// NewAlliancesHandler creates a new alliances handler.
func NewAlliancesHandler(deps Dependencies) *AlliancesHandler {
	return &AlliancesHandler{deps: deps}
}

// HandleGetAlliances handles GET /alliances requests.
func (h *AlliancesHandler) HandleGetAlliances(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Alliances())
}

// ServersHandler handles server set requests.
type ServersHandler struct {
	deps Dependencies
}

// NewServersHandler creates a new servers handler.
func NewServersHandler(deps Dependencies) *ServersHandler {
	return &ServersHandler{deps: deps}
}

// HandleGetServers handles GET /servers requests.
func (h *ServersHandler) HandleGetServers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Servers())
}
