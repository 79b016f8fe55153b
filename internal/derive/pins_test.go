package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalyuen/achievepack-sub004/internal/models"
)

func TestPinListItemsCaps(t *testing.T) {
	now := time.Now()

	var quotes []models.Quote
	for i := 0; i < 8; i++ {
		quotes = append(quotes, testQuote(i, models.QuoteStatusPending, now))
	}
	var artworks []models.ArtworkFile
	for i := 0; i < 7; i++ {
		artworks = append(artworks, testArtwork(i, models.ArtworkStatusPendingReview, now))
	}
	for i := 10; i < 15; i++ {
		artworks = append(artworks, testArtwork(i, models.ArtworkStatusInReview, now))
	}

	got := PinListItems(quotes, artworks, nil)
	// 5 pending quotes + 5 pending-review + 3 in-progress
	require.Len(t, got, 13)

	counts := map[string]int{}
	for _, item := range got {
		counts[item.Badge]++
	}
	assert.Equal(t, 5, counts["Quote"])
	assert.Equal(t, 5, counts["Review"])
	assert.Equal(t, 3, counts["In Progress"])
}

func TestPinListItemsPinnedSortLast(t *testing.T) {
	now := time.Now()
	quotes := []models.Quote{
		testQuote(0, models.QuoteStatusPending, now),
		testQuote(1, models.QuoteStatusPending, now),
		testQuote(2, models.QuoteStatusPending, now),
	}

	got := PinListItems(quotes, nil, map[string]bool{"q-0": true})
	require.Len(t, got, 3)

	// The pinned entry moves to the end; the unpinned two keep their
	// relative order (stable sort).
	assert.Equal(t, "q-1", got[0].ID)
	assert.Equal(t, "q-2", got[1].ID)
	assert.Equal(t, "q-0", got[2].ID)
	assert.True(t, got[2].Pinned)
}
