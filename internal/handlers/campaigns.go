package handlers

import (
	"context"
	"encoding/json"
	"html"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/globalyuen/achievepack-sub004/internal/mailer"
	"github.com/globalyuen/achievepack-sub004/internal/models"
	"github.com/globalyuen/achievepack-sub004/internal/store"
)

// CampaignHandler owns the email builder: drafts, recipient preview and the
// chunked dispatch itself.
type CampaignHandler struct {
	Store        *store.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
	Dispatcher   *mailer.Dispatcher
	Client       *mailer.Client
	Logger       *slog.Logger

	// PublicBaseURL anchors the unsubscribe link embedded in every campaign.
	PublicBaseURL string
}

func (h *CampaignHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	drafts, err := h.Store.ListDrafts(ctx)
	if err != nil {
		http.Error(w, "Error fetching drafts", http.StatusInternalServerError)
		return
	}

	var selected *models.EmailDraft
	if id := r.URL.Query().Get("id"); id != "" {
		if d, err := h.Store.GetDraftByID(ctx, id); err == nil {
			selected = d
		}
	}

	dedup, err := h.collectRecipients(r)
	if err != nil {
		http.Error(w, "Error fetching contacts", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_campaigns.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"Drafts":              drafts,
		"Selected":            selected,
		"RecipientCount":      len(dedup.Recipients),
		"SkippedUnsubscribed": dedup.SkippedUnsubscribed,
		"SkippedInvalid":      dedup.SkippedInvalid,
		"CsrfField":           csrf.TemplateField(r),
		"Flashes":             GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *CampaignHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	draft := &models.EmailDraft{
		ID:           r.FormValue("id"),
		Subject:      r.FormValue("subject"),
		Greeting:     r.FormValue("greeting"),
		Content:      r.FormValue("content"),
		Closing:      r.FormValue("closing"),
		SelectedPage: r.FormValue("selected_page"),
	}
	for _, img := range strings.Split(r.FormValue("images"), "\n") {
		if img = strings.TrimSpace(img); img != "" {
			draft.Images = append(draft.Images, img)
		}
	}

	if draft.Subject == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Subject is required."})
		http.Redirect(w, r, "/admin/campaigns", http.StatusSeeOther)
		return
	}

	if err := h.Store.SaveDraft(r.Context(), draft); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving draft."})
		http.Redirect(w, r, "/admin/campaigns", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Draft saved!"})
	http.Redirect(w, r, "/admin/campaigns?id="+draft.ID, http.StatusSeeOther)
}

func (h *CampaignHandler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	if err := h.Store.DeleteDraft(r.Context(), r.FormValue("id")); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting draft."})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Draft deleted."})
	}
	http.Redirect(w, r, "/admin/campaigns", http.StatusSeeOther)
}

// PreviewRecipients returns the deduplicated send list summary as JSON so the
// builder can show "N recipients" before the operator commits.
func (h *CampaignHandler) PreviewRecipients(w http.ResponseWriter, r *http.Request) {
	dedup, err := h.collectRecipients(r)
	if err != nil {
		http.Error(w, `{"error":"failed to load contacts"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"recipients":           len(dedup.Recipients),
		"skipped_unsubscribed": dedup.SkippedUnsubscribed,
		"skipped_invalid":      dedup.SkippedInvalid,
	})
}

// SendCampaign dispatches a draft to the full deduplicated contact list. The
// response is JSON with per-chunk aggregates; partial failure is still a 200.
func (h *CampaignHandler) SendCampaign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	w.Header().Set("Content-Type", "application/json")

	draft, err := h.Store.GetDraftByID(ctx, r.FormValue("id"))
	if err != nil {
		http.Error(w, `{"error":"draft not found"}`, http.StatusNotFound)
		return
	}

	subject, htmlContent := buildCampaignEmail(draft, h.PublicBaseURL)

	dedup, err := h.collectRecipients(r)
	if err != nil {
		http.Error(w, `{"error":"failed to load contacts"}`, http.StatusInternalServerError)
		return
	}
	if len(dedup.Recipients) == 0 {
		http.Error(w, `{"error":"no recipients"}`, http.StatusBadRequest)
		return
	}

	h.Logger.Info("Starting campaign dispatch",
		"draft_id", draft.ID,
		"recipients", len(dedup.Recipients),
		"skipped_unsubscribed", dedup.SkippedUnsubscribed,
		"skipped_invalid", dedup.SkippedInvalid,
	)

	result, err := h.Dispatcher.Dispatch(ctx, dedup.Recipients, subject, htmlContent, func(sent, total int) {
		h.Logger.Info("Campaign progress", "processed", sent, "total", total)
	})
	if err != nil {
		// Context cancelled mid-dispatch; report what was attempted.
		h.Logger.Error("Campaign dispatch aborted", "error", err, "sent", result.Success, "failed", result.Failed)
	}

	if result.Success > 0 {
		h.recordInquiryActivities(ctx, dedup.InquiryIDs, draft.Subject)
	}

	json.NewEncoder(w).Encode(result)
}

// recordInquiryActivities appends a CRM note for every inquiry-sourced
// contact the campaign reached. Failures are logged and do not affect the
// dispatch response.
func (h *CampaignHandler) recordInquiryActivities(ctx context.Context, inquiryIDs map[string]string, subject string) {
	for email, inquiryID := range inquiryIDs {
		err := h.Store.AddActivity(ctx, inquiryID, "campaign", "Sent campaign: "+subject)
		if err != nil {
			h.Logger.Error("Failed to record campaign activity", "inquiry_id", inquiryID, "email", email, "error", err)
		}
	}
}

// SendTest delivers the draft to a single address without touching the
// contact lists.
func (h *CampaignHandler) SendTest(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	id := r.FormValue("id")
	email := strings.TrimSpace(r.FormValue("test_email"))
	if email == "" || !strings.Contains(email, "@") {
		session.AddFlash(FlashMessage{Type: "error", Message: "A valid test address is required."})
		http.Redirect(w, r, "/admin/campaigns?id="+id, http.StatusSeeOther)
		return
	}

	draft, err := h.Store.GetDraftByID(r.Context(), id)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Draft not found."})
		http.Redirect(w, r, "/admin/campaigns", http.StatusSeeOther)
		return
	}

	subject, htmlContent := buildCampaignEmail(draft, h.PublicBaseURL)
	if _, err := h.Client.SendOne(r.Context(), mailer.Recipient{Email: email}, "[TEST] "+subject, htmlContent); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Test send failed: " + err.Error()})
		http.Redirect(w, r, "/admin/campaigns?id="+id, http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Test email sent to " + email + "."})
	http.Redirect(w, r, "/admin/campaigns?id="+id, http.StatusSeeOther)
}

// collectRecipients merges the requested contact sources. Absent a sources
// parameter every source is included.
func (h *CampaignHandler) collectRecipients(r *http.Request) (mailer.DedupResult, error) {
	ctx := r.Context()
	sources := r.FormValue("sources")
	want := func(name string) bool {
		return sources == "" || strings.Contains(sources, name)
	}

	var subscribers []models.Subscriber
	var profiles []models.Profile
	var inquiries []models.Inquiry
	var err error

	if want("subscribers") {
		if subscribers, err = h.Store.ListSubscribers(ctx); err != nil {
			return mailer.DedupResult{}, err
		}
	}
	if want("profiles") {
		if profiles, err = h.Store.ListProfiles(ctx); err != nil {
			return mailer.DedupResult{}, err
		}
	}
	if want("inquiries") {
		if inquiries, err = h.Store.ListInquiries(ctx); err != nil {
			return mailer.DedupResult{}, err
		}
	}

	return mailer.DedupRecipients(subscribers, profiles, inquiries), nil
}

// buildCampaignEmail assembles the draft sections into the outgoing HTML.
// The {{name}} and {{email_encoded}} placeholders are left intact for
// per-recipient personalization at send time.
func buildCampaignEmail(d *models.EmailDraft, baseURL string) (subject, htmlContent string) {
	var b strings.Builder
	b.WriteString(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;">`)

	greeting := d.Greeting
	if greeting == "" {
		greeting = "Hi {{name}},"
	}
	b.WriteString("<p>" + html.EscapeString(greeting) + "</p>")

	for _, para := range strings.Split(d.Content, "\n\n") {
		if para = strings.TrimSpace(para); para != "" {
			b.WriteString("<p>" + html.EscapeString(para) + "</p>")
		}
	}

	for _, img := range d.Images {
		b.WriteString(`<img src="` + html.EscapeString(img) + `" style="max-width:100%;" alt="">`)
	}

	if d.Closing != "" {
		b.WriteString("<p>" + html.EscapeString(d.Closing) + "</p>")
	}

	b.WriteString(`<p style="font-size:12px;color:#888;"><a href="` + baseURL + `/unsubscribe?e={{email_encoded}}">Unsubscribe</a></p>`)
	b.WriteString("</div>")

	return d.Subject, b.String()
}
