package api

import (
	"encoding/json"
	"net/http"

	"github.com/langsard/pose/internal/metrics"
	"github.com/langsard/pose/internal/store"
)

// SettingsHandler handles HTTP requests for the user preferences.
type SettingsHandler struct {
	store    *store.Store
	defaults store.Settings
}

// NewSettingsHandler creates a new SettingsHandler. The defaults fill keys
// that were never saved.
func NewSettingsHandler(s *store.Store, defaults store.Settings) *SettingsHandler {
	return &SettingsHandler{store: s, defaults: defaults}
}

// ServeHTTP implements the http.Handler interface.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// get handles GET /api/settings and returns the effective settings.
func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.Settings().Get(h.defaults)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// update handles PUT /api/settings and replaces the stored settings.
func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req store.Settings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ConfidenceThreshold < 0 || req.ConfidenceThreshold > 1 {
		writeError(w, http.StatusBadRequest, "confidence_threshold must be within [0, 1]")
		return
	}
	if req.PresenceThreshold < 0 || req.PresenceThreshold > 1 {
		writeError(w, http.StatusBadRequest, "presence_threshold must be within [0, 1]")
		return
	}
	switch metrics.MergePolicy(req.MergePolicy) {
	case metrics.PolicyBestPerAngle, metrics.PolicyBestPerKeypoint:
	default:
		writeError(w, http.StatusBadRequest, "Invalid merge policy")
		return
	}
	if req.DisplayWidth <= 0 || req.DisplayHeight <= 0 {
		writeError(w, http.StatusBadRequest, "Display box must be positive")
		return
	}

	if err := h.store.Settings().Save(req); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}

	writeJSON(w, http.StatusOK, req)
}
