package handlers

import (
	"net/http"

	"github.com/gorilla/csrf"
)

func (h *AdminHandler) ListBin(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.ListBin(r.Context())
	if err != nil {
		http.Error(w, "Error fetching bin", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_bin.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"Items":     items,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// DeleteItem soft-deletes a work item. The confirmation happens in the form;
// by the time this runs the operator already said yes.
func (h *AdminHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	kind := r.FormValue("kind")
	id := r.FormValue("id")
	redirect := r.FormValue("redirect")
	if redirect == "" {
		redirect = "/admin"
	}

	if err := h.Workflow.Delete(r.Context(), kind, id); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		http.Redirect(w, r, redirect, http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Item moved to bin."})
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

func (h *AdminHandler) RestoreItem(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	if err := h.Workflow.Restore(r.Context(), r.FormValue("kind"), r.FormValue("id")); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		http.Redirect(w, r, "/admin/bin", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Item restored."})
	http.Redirect(w, r, "/admin/bin", http.StatusSeeOther)
}

func (h *AdminHandler) PurgeItem(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	if err := h.Workflow.Purge(r.Context(), r.FormValue("kind"), r.FormValue("id")); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		http.Redirect(w, r, "/admin/bin", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Item permanently deleted."})
	http.Redirect(w, r, "/admin/bin", http.StatusSeeOther)
}
