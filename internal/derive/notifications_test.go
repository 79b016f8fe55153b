package derive

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalyuen/achievepack-sub004/internal/models"
)

func testQuote(i int, status string, createdAt time.Time) models.Quote {
	return models.Quote{
		ID:          fmt.Sprintf("q-%d", i),
		QuoteNumber: fmt.Sprintf("Q-%04d", i),
		Status:      status,
		CreatedAt:   createdAt,
	}
}

func testArtwork(i int, status string, createdAt time.Time) models.ArtworkFile {
	return models.ArtworkFile{
		ID:        fmt.Sprintf("a-%d", i),
		FileName:  fmt.Sprintf("file-%d.png", i),
		Status:    status,
		CreatedAt: createdAt,
	}
}

func TestNotificationsCategoryCapsAndOrder(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	// 5 pending-review artworks and 4 pending quotes; no approved artworks.
	// The list must hold exactly 3 uploads followed by 3 quotes: the first
	// two categories fill all six slots and the third never appears.
	var artworks []models.ArtworkFile
	for i := 0; i < 5; i++ {
		artworks = append(artworks, testArtwork(i, models.ArtworkStatusPendingReview, now.Add(-time.Duration(i)*time.Hour)))
	}
	var quotes []models.Quote
	for i := 0; i < 4; i++ {
		quotes = append(quotes, testQuote(i, models.QuoteStatusPending, now.Add(-time.Duration(i)*time.Hour)))
	}

	got := Notifications(quotes, artworks, now)
	require.Len(t, got, 6)
	for i := 0; i < 3; i++ {
		assert.Equal(t, NotificationTypeUpload, got[i].Type)
	}
	for i := 3; i < 6; i++ {
		assert.Equal(t, NotificationTypeQuote, got[i].Type)
	}
}

func TestNotificationsNewestFirstWithinCategory(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	artworks := []models.ArtworkFile{
		testArtwork(0, models.ArtworkStatusPendingReview, now.Add(-3*time.Hour)),
		testArtwork(1, models.ArtworkStatusPendingReview, now.Add(-time.Hour)),
		testArtwork(2, models.ArtworkStatusPendingReview, now.Add(-2*time.Hour)),
	}

	got := Notifications(nil, artworks, now)
	require.Len(t, got, 3)
	assert.Equal(t, "a-1", got[0].ID)
	assert.Equal(t, "a-2", got[1].ID)
	assert.Equal(t, "a-0", got[2].ID)
}

func TestNotificationsApprovedRequiresUpdatedAt(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	updated := now.Add(-time.Hour)

	withStamp := testArtwork(0, models.ArtworkStatusApproved, now.Add(-2*time.Hour))
	withStamp.UpdatedAt = &updated
	withoutStamp := testArtwork(1, models.ArtworkStatusApproved, now.Add(-2*time.Hour))

	got := Notifications(nil, []models.ArtworkFile{withStamp, withoutStamp}, now)
	require.Len(t, got, 1)
	assert.Equal(t, "a-0", got[0].ID)
	assert.Equal(t, NotificationTypeReview, got[0].Type)
	assert.Equal(t, "1h ago", got[0].Time)
}

func TestNotificationsSkipDeleted(t *testing.T) {
	now := time.Now()
	deleted := now.Add(-time.Minute)

	q := testQuote(0, models.QuoteStatusPending, now)
	q.DeletedAt = &deleted

	got := Notifications([]models.Quote{q}, nil, now)
	assert.Empty(t, got)
}
