package derive

import (
	"github.com/globalyuen/achievepack-sub004/internal/models"
)

const quickAccessCap = 8

const (
	QuickKindQuote   = "quote"
	QuickKindInvoice = "invoice"
	QuickKindArtwork = "artwork"
)

type QuickAccessItem struct {
	ID     string
	Kind   string
	Label  string
	Status string
}

// QuickAccessItems maps up to 8 active entries of each kind into the radial
// menu's three-kind model. The shown status is always the first value of the
// kind's enum, not the live backing status; the shortcut never read the real
// status and that simplification is kept.
func QuickAccessItems(quotes []models.Quote, artworks []models.ArtworkFile, orders []models.Order) []QuickAccessItem {
	var items []QuickAccessItem

	active := filterQuotes(quotes, func(q models.Quote) bool {
		return q.Status == models.QuoteStatusPending
	})
	for _, q := range capQuotes(active, quickAccessCap) {
		items = append(items, QuickAccessItem{
			ID:     q.ID,
			Kind:   QuickKindQuote,
			Label:  q.QuoteNumber,
			Status: models.QuickStatusReceived,
		})
	}

	working := filterArtworks(artworks, func(a models.ArtworkFile) bool {
		switch a.Status {
		case models.ArtworkStatusApproved, models.ArtworkStatusInProduction:
			return false
		}
		return true
	})
	for _, a := range capArtworks(working, quickAccessCap) {
		items = append(items, QuickAccessItem{
			ID:     a.ID,
			Kind:   QuickKindArtwork,
			Label:  a.FileName,
			Status: models.ArtworkStatusPendingReview,
		})
	}

	var openOrders []models.Order
	for _, o := range orders {
		if o.DeletedAt != nil {
			continue
		}
		switch o.Status {
		case models.OrderStatusPending, models.OrderStatusPendingPayment, models.OrderStatusConfirmed, models.OrderStatusProduction:
			openOrders = append(openOrders, o)
		}
	}
	if len(openOrders) > quickAccessCap {
		openOrders = openOrders[:quickAccessCap]
	}
	for _, o := range openOrders {
		items = append(items, QuickAccessItem{
			ID:     o.ID,
			Kind:   QuickKindInvoice,
			Label:  o.OrderRef,
			Status: models.OrderStatusPending,
		})
	}

	return items
}
