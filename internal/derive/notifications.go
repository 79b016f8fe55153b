// Package derive computes the dashboard's attention views (notifications,
// pin candidates, work queue, quick access) from entity snapshots. Every
// function here is pure: no I/O, full recomputation per call. Collection
// sizes are bounded upstream by the fetch layer, so wholesale re-filtering
// is fine.
package derive

import (
	"sort"
	"time"

	"github.com/globalyuen/achievepack-sub004/internal/models"
)

const (
	notificationCap        = 6
	notifyNewArtworkCap    = 3
	notifyNewQuoteCap      = 3
	notifyApprovedCap      = 2
	NotificationTypeUpload = "artwork_upload"
	NotificationTypeQuote  = "quote_request"
	NotificationTypeReview = "artwork_approved"
)

type Notification struct {
	ID       string
	Title    string
	Subtitle string
	Time     string
	Type     string
	Link     string
}

// Notifications builds the bell-menu list: up to 3 newest pending-review
// artworks, then up to 3 newest pending quotes, then up to 2 newest approved
// artworks carrying an updated_at, truncated to 6. The category order is
// fixed; entries are not re-sorted globally by time.
func Notifications(quotes []models.Quote, artworks []models.ArtworkFile, now time.Time) []Notification {
	var out []Notification

	uploads := filterArtworks(artworks, func(a models.ArtworkFile) bool {
		return a.Status == models.ArtworkStatusPendingReview
	})
	sort.Slice(uploads, func(i, j int) bool { return uploads[i].CreatedAt.After(uploads[j].CreatedAt) })
	for _, a := range capArtworks(uploads, notifyNewArtworkCap) {
		out = append(out, Notification{
			ID:       a.ID,
			Title:    "New artwork uploaded",
			Subtitle: a.FileName,
			Time:     TimeAgo(now, a.CreatedAt),
			Type:     NotificationTypeUpload,
			Link:     "/admin/artworks?id=" + a.ID,
		})
	}

	pending := filterQuotes(quotes, func(q models.Quote) bool {
		return q.Status == models.QuoteStatusPending
	})
	sort.Slice(pending, func(i, j int) bool { return pending[i].CreatedAt.After(pending[j].CreatedAt) })
	for _, q := range capQuotes(pending, notifyNewQuoteCap) {
		out = append(out, Notification{
			ID:       q.ID,
			Title:    "New quote request",
			Subtitle: q.QuoteNumber,
			Time:     TimeAgo(now, q.CreatedAt),
			Type:     NotificationTypeQuote,
			Link:     "/admin/quotes?id=" + q.ID,
		})
	}

	approved := filterArtworks(artworks, func(a models.ArtworkFile) bool {
		return a.Status == models.ArtworkStatusApproved && a.UpdatedAt != nil
	})
	sort.Slice(approved, func(i, j int) bool { return approved[i].UpdatedAt.After(*approved[j].UpdatedAt) })
	for _, a := range capArtworks(approved, notifyApprovedCap) {
		out = append(out, Notification{
			ID:       a.ID,
			Title:    "Artwork approved",
			Subtitle: a.FileName,
			Time:     TimeAgo(now, *a.UpdatedAt),
			Type:     NotificationTypeReview,
			Link:     "/admin/artworks?id=" + a.ID,
		})
	}

	if len(out) > notificationCap {
		out = out[:notificationCap]
	}
	return out
}

func filterQuotes(quotes []models.Quote, keep func(models.Quote) bool) []models.Quote {
	var out []models.Quote
	for _, q := range quotes {
		if q.DeletedAt != nil {
			continue
		}
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}

func filterArtworks(artworks []models.ArtworkFile, keep func(models.ArtworkFile) bool) []models.ArtworkFile {
	var out []models.ArtworkFile
	for _, a := range artworks {
		if a.DeletedAt != nil {
			continue
		}
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

func capQuotes(quotes []models.Quote, n int) []models.Quote {
	if len(quotes) > n {
		return quotes[:n]
	}
	return quotes
}

func capArtworks(artworks []models.ArtworkFile, n int) []models.ArtworkFile {
	if len(artworks) > n {
		return artworks[:n]
	}
	return artworks
}
