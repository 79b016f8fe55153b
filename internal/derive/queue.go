package derive

import (
	"github.com/globalyuen/achievepack-sub004/internal/models"
)

type WorkQueueItem struct {
	ID           string
	Type         string // "quote", "artwork", "order"
	Name         string
	CustomerName string
	Status       string
	Urgent       bool
	Link         string
}

// CustomerResolver maps an owner id to a display name. The store's resolver
// is best effort and may return "Unknown".
type CustomerResolver func(userID string) string

// WorkQueueItems builds the uncapped operator attention list. Pending quotes
// and pending-review artworks are urgent; in-progress artworks and
// in-flight orders are listed but not urgent. Display truncation is the
// consumer's job.
func WorkQueueItems(quotes []models.Quote, artworks []models.ArtworkFile, orders []models.Order, resolve CustomerResolver) []WorkQueueItem {
	var items []WorkQueueItem

	for _, q := range filterQuotes(quotes, func(q models.Quote) bool { return q.Status == models.QuoteStatusPending }) {
		items = append(items, WorkQueueItem{
			ID:           q.ID,
			Type:         "quote",
			Name:         q.QuoteNumber,
			CustomerName: resolve(q.UserID),
			Status:       q.Status,
			Urgent:       true,
			Link:         "/admin/quotes?id=" + q.ID,
		})
	}

	for _, a := range filterArtworks(artworks, func(a models.ArtworkFile) bool {
		switch a.Status {
		case models.ArtworkStatusPendingReview, models.ArtworkStatusInReview, models.ArtworkStatusPrepress:
			return true
		}
		return false
	}) {
		items = append(items, WorkQueueItem{
			ID:           a.ID,
			Type:         "artwork",
			Name:         a.FileName,
			CustomerName: resolve(a.UserID),
			Status:       a.Status,
			Urgent:       a.Status == models.ArtworkStatusPendingReview,
			Link:         "/admin/artworks?id=" + a.ID,
		})
	}

	for _, o := range orders {
		if o.DeletedAt != nil {
			continue
		}
		switch o.Status {
		case models.OrderStatusConfirmed, models.OrderStatusProduction:
			items = append(items, WorkQueueItem{
				ID:           o.ID,
				Type:         "order",
				Name:         o.OrderRef,
				CustomerName: resolve(o.UserID),
				Status:       o.Status,
				Urgent:       false,
				Link:         "/admin/orders?id=" + o.ID,
			})
		}
	}

	return items
}
