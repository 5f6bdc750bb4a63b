// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// AdminHandler handles cache management requests: reload, clear, and
// data source switching.
type AdminHandler struct {
	deps Dependencies
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(deps Dependencies) *AdminHandler {
	return &AdminHandler{deps: deps}
}

type reloadResponse struct {
	Status string `json:"status"`
	Source string `json:"source"`
}

// HandleReload handles POST /reload requests. The reload runs to completion
// before responding; an overlapping request is answered with 409.
func (h *AdminHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.Reload(r.Context()); err != nil {
		if strings.Contains(err.Error(), "in flight") {
			writeError(w, http.StatusConflict, "reload_in_flight", err)
			return
		}
		writeError(w, http.StatusBadGateway, "reload_failed", err)
		return
	}
	writeJSON(w, http.StatusOK, reloadResponse{Status: "reloaded", Source: h.deps.DataSource()})
}

// HandleCache handles DELETE /cache requests.
func (h *AdminHandler) HandleCache(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.ClearCache(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type sourceRequest struct {
	Source string `json:"source"`
}

// HandleSource handles GET and PUT /source requests.
func (h *AdminHandler) HandleSource(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, sourceRequest{Source: h.deps.DataSource()})
	case http.MethodPut:
		var req sourceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", errors.New("invalid JSON body"))
			return
		}
		if err := h.deps.SetDataSource(req.Source); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		writeJSON(w, http.StatusOK, sourceRequest{Source: h.deps.DataSource()})
	default:
		http.NotFound(w, r)
	}
}
