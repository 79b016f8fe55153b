package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalyuen/achievepack-sub004/internal/models"
)

func TestSaveDraftInsertThenUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	d := &models.EmailDraft{
		Subject:  "Spring promo",
		Greeting: "Hi {{name}},",
		Content:  "New pouches are in.",
		Images:   []string{"https://cdn.example.com/a.jpg"},
	}
	require.NoError(t, s.SaveDraft(ctx, d))
	require.NotEmpty(t, d.ID)

	d.Subject = "Spring promo v2"
	d.Images = append(d.Images, "https://cdn.example.com/b.jpg")
	require.NoError(t, s.SaveDraft(ctx, d))

	got, err := s.GetDraftByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spring promo v2", got.Subject)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}, got.Images)

	drafts, err := s.ListDrafts(ctx)
	require.NoError(t, err)
	assert.Len(t, drafts, 1)
}

func TestDeleteDraft(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	d := &models.EmailDraft{Subject: "Doomed"}
	require.NoError(t, s.SaveDraft(ctx, d))
	require.NoError(t, s.DeleteDraft(ctx, d.ID))

	_, err := s.GetDraftByID(ctx, d.ID)
	assert.Error(t, err)
}
