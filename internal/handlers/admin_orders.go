package handlers

import (
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/globalyuen/achievepack-sub004/internal/models"
)

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Store.ListOrders(r.Context(), true)
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_orders.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	var selected interface{}
	if id := r.URL.Query().Get("id"); id != "" {
		if o, err := h.Store.GetOrderByID(r.Context(), id); err == nil {
			selected = o
		}
	}

	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"Orders":    orders,
		"Selected":  selected,
		"Statuses":  models.OrderStatuses,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	id := r.FormValue("id")
	status := r.FormValue("status")
	if id == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Missing order id."})
		http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
		return
	}

	if err := h.Workflow.SetOrderStatus(r.Context(), id, status); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Order updated!"})
	http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
}
