package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"

	"github.com/globalyuen/achievepack-sub004/internal/derive"
	"github.com/globalyuen/achievepack-sub004/internal/pinstore"
	"github.com/globalyuen/achievepack-sub004/internal/store"
	"github.com/globalyuen/achievepack-sub004/internal/workflow"
)

const (
	sessionName = "admin-session"

	// Pin namespaces, one per dashboard surface.
	PinNamespaceAdmin      = "admin"
	PinNamespaceManagement = "admin-management"
)

type AdminHandler struct {
	Store        *store.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
	Pins         *pinstore.Store
	Workflow     *workflow.Controller
	UploadDir    string
}

func (h *AdminHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("login.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)

	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := h.Store.GetUserByUsername(r.Context(), username)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Internal Server Error"})
		session.Save(r, w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if user == nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid username or password"})
		session.Save(r, w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid username or password"})
		session.Save(r, w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	session.Values["authenticated"] = true
	session.Values["user_id"] = user.ID
	session.Options.Path = "/"
	session.AddFlash(FlashMessage{Type: "success", Message: "Welcome, " + user.Username + "!"})

	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	slog.Info("Login successful, redirecting to /admin", "user_id", user.ID)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	session.Values["authenticated"] = false
	session.Options.MaxAge = -1 // Expire immediately
	session.Save(r, w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// AuthMiddleware ensures the user is logged in
func (h *AdminHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := h.SessionStore.Get(r, sessionName)
		if auth, ok := session.Values["authenticated"].(bool); !ok || !auth {
			session.AddFlash(FlashMessage{Type: "error", Message: "You must be logged in to access this page."})
			session.Save(r, w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// Dashboard renders stats plus the derived attention views: notifications,
// the work queue, quick access and the pin sheet.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.Store.GetDashboardStats(ctx)
	if err != nil {
		http.Error(w, "Error fetching stats", http.StatusInternalServerError)
		return
	}

	quotes, err := h.Store.ListQuotes(ctx, true)
	if err != nil {
		http.Error(w, "Error fetching quotes", http.StatusInternalServerError)
		return
	}
	artworks, err := h.Store.ListArtworks(ctx, true)
	if err != nil {
		http.Error(w, "Error fetching artworks", http.StatusInternalServerError)
		return
	}
	orders, err := h.Store.ListOrders(ctx, true)
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}

	pins, err := h.Pins.Pins(PinNamespaceAdmin)
	if err != nil {
		slog.Error("Failed to load pin set", "error", err)
		pins = map[string]bool{}
	}

	resolve := func(userID string) string {
		name, _ := h.Store.ResolveCustomer(ctx, userID)
		return name
	}

	now := time.Now()
	tmpl := h.Templates.Get("admin.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"Stats":         stats,
		"Notifications": derive.Notifications(quotes, artworks, now),
		"WorkQueue":     derive.WorkQueueItems(quotes, artworks, orders, resolve),
		"QuickAccess":   derive.QuickAccessItems(quotes, artworks, orders),
		"PinList":       derive.PinListItems(quotes, artworks, pins),
		"Flashes":       GetFlash(session),
		"CsrfField":     csrf.TemplateField(r),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
