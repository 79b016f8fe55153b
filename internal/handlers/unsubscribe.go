package handlers

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/globalyuen/achievepack-sub004/internal/store"
)

// UnsubscribeHandler serves the one-click opt-out link embedded in campaign
// emails. The address travels base64-encoded in the e query parameter.
type UnsubscribeHandler struct {
	Store  *store.Store
	Logger *slog.Logger
}

func (h *UnsubscribeHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	raw, err := base64.StdEncoding.DecodeString(r.URL.Query().Get("e"))
	if err != nil || !strings.Contains(string(raw), "@") {
		http.Error(w, "Invalid unsubscribe link.", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(string(raw))

	// The same address may exist as a subscriber and as a CRM inquiry; both
	// records get flagged so no future campaign picks it up.
	subs, err := h.Store.MarkSubscriberUnsubscribed(r.Context(), email)
	if err != nil {
		http.Error(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
		return
	}
	inqs, err := h.Store.MarkInquiryUnsubscribed(r.Context(), email)
	if err != nil {
		http.Error(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
		return
	}

	h.Logger.Info("Unsubscribe processed", "subscribers", subs, "inquiries", inqs)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(`<!DOCTYPE html>
<html><head><title>Unsubscribed</title></head>
<body style="font-family:Arial,sans-serif;text-align:center;padding:4rem;">
<h1>You're unsubscribed</h1>
<p>You will no longer receive marketing emails from us.</p>
</body></html>`))
}
