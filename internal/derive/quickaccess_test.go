package derive

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalyuen/achievepack-sub004/internal/models"
)

func TestQuickAccessItemsPerKindCap(t *testing.T) {
	now := time.Now()

	var quotes []models.Quote
	for i := 0; i < 12; i++ {
		quotes = append(quotes, testQuote(i, models.QuoteStatusPending, now))
	}
	var orders []models.Order
	for i := 0; i < 10; i++ {
		orders = append(orders, models.Order{
			ID:       fmt.Sprintf("o-%d", i),
			OrderRef: fmt.Sprintf("ORD-%04d", i),
			Status:   models.OrderStatusConfirmed,
		})
	}

	got := QuickAccessItems(quotes, nil, orders)
	require.Len(t, got, 16)

	counts := map[string]int{}
	for _, item := range got {
		counts[item.Kind]++
	}
	assert.Equal(t, 8, counts[QuickKindQuote])
	assert.Equal(t, 8, counts[QuickKindInvoice])
}

// The radial menu always shows the kind's first enum value, not the live
// status. An order in production still displays as pending.
func TestQuickAccessItemsDisplayStatusIsFixed(t *testing.T) {
	orders := []models.Order{{ID: "o-1", OrderRef: "ORD-0001", Status: models.OrderStatusProduction}}
	artworks := []models.ArtworkFile{testArtwork(1, models.ArtworkStatusPrepress, time.Now())}

	got := QuickAccessItems(nil, artworks, orders)
	require.Len(t, got, 2)
	assert.Equal(t, models.ArtworkStatusPendingReview, got[0].Status)
	assert.Equal(t, models.OrderStatusPending, got[1].Status)
}

func TestQuickAccessItemsExcludesFinishedArtwork(t *testing.T) {
	now := time.Now()
	artworks := []models.ArtworkFile{
		testArtwork(0, models.ArtworkStatusApproved, now),
		testArtwork(1, models.ArtworkStatusInProduction, now),
		testArtwork(2, models.ArtworkStatusInReview, now),
	}

	got := QuickAccessItems(nil, artworks, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "a-2", got[0].ID)
}
