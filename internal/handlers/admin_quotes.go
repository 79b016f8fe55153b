package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"
)

func (h *AdminHandler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.Store.ListQuotes(r.Context(), true)
	if err != nil {
		http.Error(w, "Error fetching quotes", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_quotes.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	var selected interface{}
	if id := r.URL.Query().Get("id"); id != "" {
		if q, err := h.Store.GetQuoteByID(r.Context(), id); err == nil {
			selected = q
		}
	}

	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"Quotes":    quotes,
		"Selected":  selected,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// UpdateQuoteStatus handles direct ground-truth status changes.
func (h *AdminHandler) UpdateQuoteStatus(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	id := r.FormValue("id")
	status := r.FormValue("status")
	if id == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Missing quote id."})
		http.Redirect(w, r, "/admin/quotes", http.StatusSeeOther)
		return
	}

	if err := h.Workflow.SetQuoteStatus(r.Context(), id, status); err != nil {
		// Raw error surfaced to the operator; no automatic retry.
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		http.Redirect(w, r, "/admin/quotes", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Quote updated!"})
	http.Redirect(w, r, "/admin/quotes", http.StatusSeeOther)
}

// UpdateQuoteQuickStatus handles the radial quick-access action. The six
// quick states are lossy-mapped onto the four ground-truth states.
func (h *AdminHandler) UpdateQuoteQuickStatus(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	id := r.FormValue("id")
	quick := r.FormValue("quick_status")
	if id == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Missing quote id."})
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	if err := h.Workflow.SetQuoteQuickStatus(r.Context(), id, quick); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Quote updated!"})
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *AdminHandler) ReplyToQuote(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	id := r.FormValue("id")
	reply := r.FormValue("reply")
	if id == "" || reply == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Reply message is required."})
		http.Redirect(w, r, "/admin/quotes", http.StatusSeeOther)
		return
	}

	amount := 0.0
	if raw := r.FormValue("quoted_amount"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			session.AddFlash(FlashMessage{Type: "error", Message: "Invalid quoted amount."})
			http.Redirect(w, r, "/admin/quotes", http.StatusSeeOther)
			return
		}
		amount = parsed
	}

	if err := h.Store.SaveQuoteReply(r.Context(), id, reply, amount); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		http.Redirect(w, r, "/admin/quotes", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Reply saved!"})
	http.Redirect(w, r, "/admin/quotes?id="+id, http.StatusSeeOther)
}
