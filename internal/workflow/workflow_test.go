package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalyuen/achievepack-sub004/internal/models"
	"github.com/globalyuen/achievepack-sub004/internal/outbox"
	"github.com/globalyuen/achievepack-sub004/internal/store"
)

func newTestController(t *testing.T) (*Controller, *store.Store, *outbox.Store) {
	t.Helper()
	db, err := store.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	ob := outbox.NewStore(db.DB)
	return NewController(db, ob, nil), db, ob
}

func TestMapQuickStatus(t *testing.T) {
	tests := []struct {
		quick string
		want  string
	}{
		{models.QuickStatusWin, models.QuoteStatusAccepted},
		{models.QuickStatusLose, models.QuoteStatusRejected},
		{models.QuickStatusReceived, models.QuoteStatusPending},
		{models.QuickStatusWaitingSupplier, models.QuoteStatusPending},
		{models.QuickStatusQuotedToCustomer, models.QuoteStatusPending},
		{models.QuickStatusFollowUp, models.QuoteStatusPending},
		{"garbage", models.QuoteStatusPending},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapQuickStatus(tt.quick), "quick=%s", tt.quick)
	}
}

func TestSetQuoteQuickStatusWritesGroundTruth(t *testing.T) {
	c, db, _ := newTestController(t)
	ctx := context.Background()

	q := &models.Quote{QuoteNumber: "Q-0001"}
	require.NoError(t, db.CreateQuote(ctx, q))

	require.NoError(t, c.SetQuoteQuickStatus(ctx, q.ID, models.QuickStatusWin))
	got, err := db.GetQuoteByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QuoteStatusAccepted, got.Status)

	// A non-terminal quick action collapses back to pending, even from
	// accepted. Lossy on purpose.
	require.NoError(t, c.SetQuoteQuickStatus(ctx, q.ID, models.QuickStatusFollowUp))
	got, err = db.GetQuoteByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QuoteStatusPending, got.Status)
}

func TestSetQuoteStatusAppliesToRFQToo(t *testing.T) {
	c, db, _ := newTestController(t)
	ctx := context.Background()

	id, err := db.CreateRFQ(ctx, "user-1", "need 500 pouches", "Acme")
	require.NoError(t, err)

	require.NoError(t, c.SetQuoteStatus(ctx, id, models.QuoteStatusAccepted))
	got, err := db.GetQuoteByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.IsRFQ)
	assert.Equal(t, models.QuoteStatusAccepted, got.Status)
}

func TestSetQuoteStatusRejectsUnknown(t *testing.T) {
	c, _, _ := newTestController(t)
	assert.Error(t, c.SetQuoteStatus(context.Background(), "any", "won"))
}

func TestSetOrderStatusValidates(t *testing.T) {
	c, db, _ := newTestController(t)
	ctx := context.Background()

	o := &models.Order{OrderRef: "ORD-0001", Status: models.OrderStatusPending}
	require.NoError(t, db.CreateOrder(ctx, o))

	require.NoError(t, c.SetOrderStatus(ctx, o.ID, models.OrderStatusShipped))
	got, err := db.GetOrderByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, got.Status)

	assert.Error(t, c.SetOrderStatus(ctx, o.ID, "teleported"))
}

func TestTransitionArtworkEnqueuesNotification(t *testing.T) {
	c, db, ob := newTestController(t)
	ctx := context.Background()

	profile := &models.Profile{Email: "alice@x.com", FullName: "Alice"}
	require.NoError(t, db.CreateProfile(ctx, profile))

	a := &models.ArtworkFile{UserID: profile.ID, FileName: "label.png"}
	require.NoError(t, db.CreateArtwork(ctx, a))

	require.NoError(t, c.TransitionArtwork(ctx, a.ID, models.ArtworkStatusApproved, true))

	got, err := db.GetArtworkByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ArtworkStatusApproved, got.Status)

	pending, err := ob.PendingBatch(ctx, 10, time.Now())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "alice@x.com", pending[0].Recipient)
	assert.Equal(t, outbox.EventTypeArtworkStatus, pending[0].EventType)
}

func TestTransitionArtworkNoEmailSkipsNotification(t *testing.T) {
	c, db, ob := newTestController(t)
	ctx := context.Background()

	a := &models.ArtworkFile{UserID: "nobody", FileName: "label.png"}
	require.NoError(t, db.CreateArtwork(ctx, a))

	require.NoError(t, c.TransitionArtwork(ctx, a.ID, models.ArtworkStatusInReview, true))

	got, err := db.GetArtworkByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ArtworkStatusInReview, got.Status)

	pending, err := ob.PendingBatch(ctx, 10, time.Now())
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestTransitionArtworkRejectsUnknownStatus(t *testing.T) {
	c, _, _ := newTestController(t)
	assert.Error(t, c.TransitionArtwork(context.Background(), "any", "framed", false))
}

func TestDeleteOverwritesDeletedAt(t *testing.T) {
	_, db, _ := newTestController(t)
	ctx := context.Background()

	q := &models.Quote{QuoteNumber: "Q-0001"}
	require.NoError(t, db.CreateQuote(ctx, q))

	require.NoError(t, db.SoftDelete(ctx, "quote", q.ID, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	first, err := db.GetDeletedAt(ctx, "quote", q.ID)
	require.NoError(t, err)
	require.NotNil(t, first)

	// Deleting again refreshes the timestamp rather than failing.
	require.NoError(t, db.SoftDelete(ctx, "quote", q.ID, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
	second, err := db.GetDeletedAt(ctx, "quote", q.ID)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.True(t, second.After(*first))
}

func TestDeleteRestorePurgeLifecycle(t *testing.T) {
	c, db, _ := newTestController(t)
	ctx := context.Background()

	a := &models.ArtworkFile{FileName: "label.png"}
	require.NoError(t, db.CreateArtwork(ctx, a))

	require.NoError(t, c.Delete(ctx, "artwork", a.ID))
	active, err := db.ListArtworks(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	bin, err := db.ListBin(ctx)
	require.NoError(t, err)
	require.Len(t, bin, 1)
	assert.Equal(t, "artwork", bin[0].Kind)
	assert.Equal(t, "label.png", bin[0].Name)

	require.NoError(t, c.Restore(ctx, "artwork", a.ID))
	active, err = db.ListArtworks(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	require.NoError(t, c.Delete(ctx, "artwork", a.ID))
	require.NoError(t, c.Purge(ctx, "artwork", a.ID))
	_, err = db.GetArtworkByID(ctx, a.ID)
	assert.Error(t, err)

	bin, err = db.ListBin(ctx)
	require.NoError(t, err)
	assert.Empty(t, bin)
}

func TestDeleteUnknownKind(t *testing.T) {
	c, _, _ := newTestController(t)
	assert.Error(t, c.Delete(context.Background(), "invoice", "any"))
}
