package handlers

import (
	"encoding/json"
	"net/http"
)

// PinItem pins a work item. Routed as POST /api/pins/{ns}/{id}; the
// dashboard calls this from the pin sheet without a page reload.
func (h *AdminHandler) PinItem(w http.ResponseWriter, r *http.Request) {
	h.writePin(w, r, true)
}

// UnpinItem removes a pin. Routed as DELETE /api/pins/{ns}/{id}.
func (h *AdminHandler) UnpinItem(w http.ResponseWriter, r *http.Request) {
	h.writePin(w, r, false)
}

func (h *AdminHandler) writePin(w http.ResponseWriter, r *http.Request, pinned bool) {
	w.Header().Set("Content-Type", "application/json")

	ns := r.PathValue("ns")
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, `{"error":"namespace and id are required"}`, http.StatusBadRequest)
		return
	}
	if ns != PinNamespaceAdmin && ns != PinNamespaceManagement {
		http.Error(w, `{"error":"unknown namespace"}`, http.StatusBadRequest)
		return
	}

	var err error
	if pinned {
		err = h.Pins.Pin(ns, id)
	} else {
		err = h.Pins.Unpin(ns, id)
	}
	if err != nil {
		http.Error(w, `{"error":"failed to update pins"}`, http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"id":     id,
		"pinned": pinned,
	})
}
