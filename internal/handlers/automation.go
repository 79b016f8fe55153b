package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/globalyuen/achievepack-sub004/internal/store"
)

// AutomationHandler exposes the follow-up automation flag as a small JSON
// API. External schedulers poll the flag before running, so the endpoint is
// CORS-open and unauthenticated by design of the callers' deployment.
type AutomationHandler struct {
	Store  *store.Store
	Logger *slog.Logger
}

func (h *AutomationHandler) Options(w http.ResponseWriter, r *http.Request) {
	corsHeaders(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AutomationHandler) Get(w http.ResponseWriter, r *http.Request) {
	corsHeaders(w)
	w.Header().Set("Content-Type", "application/json")

	enabled, err := h.Store.GetAutomationEnabled(r.Context())
	if err != nil {
		http.Error(w, `{"error":"failed to read setting"}`, http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]bool{"enabled": enabled})
}

// Post sets the flag. The body must be {"enabled": <bool>}; anything else,
// including a missing field, is a 400.
func (h *AutomationHandler) Post(w http.ResponseWriter, r *http.Request) {
	corsHeaders(w)
	w.Header().Set("Content-Type", "application/json")

	var req struct {
		Enabled *bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Enabled == nil {
		http.Error(w, `{"error":"enabled must be a boolean"}`, http.StatusBadRequest)
		return
	}

	if err := h.Store.SetAutomationEnabled(r.Context(), *req.Enabled); err != nil {
		http.Error(w, `{"error":"failed to save setting"}`, http.StatusInternalServerError)
		return
	}

	h.Logger.Info("Automation flag changed", "enabled", *req.Enabled)
	json.NewEncoder(w).Encode(map[string]bool{"enabled": *req.Enabled})
}
