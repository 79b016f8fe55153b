package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalyuen/achievepack-sub004/internal/models"
)

func TestListQuotesMergesRFQSubmissions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	q := &models.Quote{QuoteNumber: "Q-0001", TotalAmount: 1200}
	require.NoError(t, s.CreateQuote(ctx, q))
	rfqID, err := s.CreateRFQ(ctx, "user-1", "need 500 pouches", "Acme")
	require.NoError(t, err)

	all, err := s.ListQuotes(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 2)

	byID := map[string]models.Quote{}
	for _, item := range all {
		byID[item.ID] = item
	}

	regular := byID[q.ID]
	assert.False(t, regular.IsRFQ)
	assert.Equal(t, "Q-0001", regular.QuoteNumber)

	rfq := byID[rfqID]
	assert.True(t, rfq.IsRFQ)
	assert.Equal(t, "RFQ-"+rfqID[:8], rfq.QuoteNumber)
	assert.Equal(t, models.QuoteStatusPending, rfq.Status)
	// RFQs get a synthetic 30 day validity window.
	assert.WithinDuration(t, rfq.CreatedAt.Add(30*24*time.Hour), rfq.ValidUntil, time.Second)
}

func TestGetQuoteByIDFallsBackToRFQ(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rfqID, err := s.CreateRFQ(ctx, "user-1", "bulk order", "Acme")
	require.NoError(t, err)

	got, err := s.GetQuoteByID(ctx, rfqID)
	require.NoError(t, err)
	assert.True(t, got.IsRFQ)
	assert.Equal(t, "bulk order", got.Notes)
}

func TestUpdateQuoteStatusReachesBothTables(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	q := &models.Quote{QuoteNumber: "Q-0001"}
	require.NoError(t, s.CreateQuote(ctx, q))
	rfqID, err := s.CreateRFQ(ctx, "user-1", "msg", "Acme")
	require.NoError(t, err)

	require.NoError(t, s.UpdateQuoteStatus(ctx, q.ID, models.QuoteStatusAccepted))
	require.NoError(t, s.UpdateQuoteStatus(ctx, rfqID, models.QuoteStatusRejected))

	gotQ, err := s.GetQuoteByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QuoteStatusAccepted, gotQ.Status)

	gotRFQ, err := s.GetQuoteByID(ctx, rfqID)
	require.NoError(t, err)
	assert.Equal(t, models.QuoteStatusRejected, gotRFQ.Status)
}

func TestSaveQuoteReplyKeepsAmountWhenZero(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	q := &models.Quote{QuoteNumber: "Q-0001", TotalAmount: 900}
	require.NoError(t, s.CreateQuote(ctx, q))

	require.NoError(t, s.SaveQuoteReply(ctx, q.ID, "see attached", 0))
	got, err := s.GetQuoteByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "see attached", got.AdminReply)
	assert.Equal(t, 900.0, got.TotalAmount)
	assert.NotNil(t, got.RepliedAt)

	require.NoError(t, s.SaveQuoteReply(ctx, q.ID, "updated price", 1250))
	got, err = s.GetQuoteByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, 1250.0, got.TotalAmount)
}

func TestListQuotesActiveOnlyHidesBinned(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	q := &models.Quote{QuoteNumber: "Q-0001"}
	require.NoError(t, s.CreateQuote(ctx, q))
	require.NoError(t, s.SoftDelete(ctx, "quote", q.ID, time.Now()))

	active, err := s.ListQuotes(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := s.ListQuotes(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
