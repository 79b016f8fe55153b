package derive

import (
	"sort"

	"github.com/globalyuen/achievepack-sub004/internal/models"
)

const (
	pinPendingQuoteCap  = 5
	pinPendingReviewCap = 5
	pinInProgressCap    = 3
)

type PinItem struct {
	ID     string
	Kind   string // "quote" or "artwork"
	Label  string
	Badge  string
	Pinned bool
	Link   string
}

// PinListItems builds the pin-sheet candidates: up to 5 pending quotes, up to
// 5 pending-review artworks and up to 3 in-review/prepress artworks. Pinned
// entries sort last (stable ascending on the pinned flag) so unpinned
// candidates surface at the top of the sheet.
func PinListItems(quotes []models.Quote, artworks []models.ArtworkFile, pinned map[string]bool) []PinItem {
	var items []PinItem

	pendingQuotes := filterQuotes(quotes, func(q models.Quote) bool {
		return q.Status == models.QuoteStatusPending
	})
	for _, q := range capQuotes(pendingQuotes, pinPendingQuoteCap) {
		items = append(items, PinItem{
			ID:     q.ID,
			Kind:   "quote",
			Label:  q.QuoteNumber,
			Badge:  "Quote",
			Pinned: pinned[q.ID],
			Link:   "/admin/quotes?id=" + q.ID,
		})
	}

	review := filterArtworks(artworks, func(a models.ArtworkFile) bool {
		return a.Status == models.ArtworkStatusPendingReview
	})
	for _, a := range capArtworks(review, pinPendingReviewCap) {
		items = append(items, PinItem{
			ID:     a.ID,
			Kind:   "artwork",
			Label:  a.FileName,
			Badge:  "Review",
			Pinned: pinned[a.ID],
			Link:   "/admin/artworks?id=" + a.ID,
		})
	}

	inProgress := filterArtworks(artworks, func(a models.ArtworkFile) bool {
		return a.Status == models.ArtworkStatusInReview || a.Status == models.ArtworkStatusPrepress
	})
	for _, a := range capArtworks(inProgress, pinInProgressCap) {
		items = append(items, PinItem{
			ID:     a.ID,
			Kind:   "artwork",
			Label:  a.FileName,
			Badge:  "In Progress",
			Pinned: pinned[a.ID],
			Link:   "/admin/artworks?id=" + a.ID,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return pinRank(items[i]) < pinRank(items[j])
	})
	return items
}

func pinRank(item PinItem) int {
	if item.Pinned {
		return 1
	}
	return 0
}
