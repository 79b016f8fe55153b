package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalyuen/achievepack-sub004/internal/models"
)

func TestDedupRecipientsCaseInsensitiveFirstNameWins(t *testing.T) {
	subscribers := []models.Subscriber{{Email: "A@x.com", Name: "Alice"}}
	profiles := []models.Profile{{Email: "a@x.com", FullName: "Alicia"}}

	got := DedupRecipients(subscribers, profiles, nil)
	require.Len(t, got.Recipients, 1)
	assert.Equal(t, "a@x.com", got.Recipients[0].Email)
	assert.Equal(t, "Alice", got.Recipients[0].Name)
}

func TestDedupRecipientsSkipsUnsubscribedAndInvalid(t *testing.T) {
	subscribers := []models.Subscriber{
		{Email: "ok@x.com", Name: "Ok"},
		{Email: "gone@x.com", Name: "Gone", Unsubscribed: true},
		{Email: "not-an-email", Name: "Broken"},
	}
	inquiries := []models.Inquiry{
		{Email: "silent@x.com", Name: "Silent", Unsubscribed: true},
	}

	got := DedupRecipients(subscribers, nil, inquiries)
	require.Len(t, got.Recipients, 1)
	assert.Equal(t, "ok@x.com", got.Recipients[0].Email)
	assert.Equal(t, 2, got.SkippedUnsubscribed)
	assert.Equal(t, 1, got.SkippedInvalid)
}

func TestDedupRecipientsTrimsBeforeValidation(t *testing.T) {
	subscribers := []models.Subscriber{
		{Email: " padded@x.com ", Name: "Padded"},
		{Email: "padded@x.com", Name: "Dup"},
		{Email: "   ", Name: "Blank"},
	}

	got := DedupRecipients(subscribers, nil, nil)
	require.Len(t, got.Recipients, 1)
	assert.Equal(t, "padded@x.com", got.Recipients[0].Email)
	assert.Equal(t, "Padded", got.Recipients[0].Name)
	assert.Equal(t, 1, got.SkippedInvalid)
}

func TestDedupRecipientsTracksInquirySources(t *testing.T) {
	subscribers := []models.Subscriber{{Email: "both@x.com", Name: "Sub"}}
	inquiries := []models.Inquiry{
		{ID: "inq-1", Email: "both@x.com", Name: "Dup"},
		{ID: "inq-2", Email: "Only@x.com", Name: "Inq"},
		{ID: "inq-3", Email: "gone@x.com", Name: "Gone", Unsubscribed: true},
	}

	got := DedupRecipients(subscribers, nil, inquiries)
	require.Len(t, got.Recipients, 2)
	// Only addresses the inquiries source actually contributed carry an
	// inquiry id; the subscriber-deduped and unsubscribed ones do not.
	assert.Equal(t, map[string]string{"only@x.com": "inq-2"}, got.InquiryIDs)
}

func TestDedupRecipientsSourceOrder(t *testing.T) {
	// Subscribers are merged before profiles, profiles before inquiries.
	subscribers := []models.Subscriber{{Email: "one@x.com", Name: "Sub"}}
	profiles := []models.Profile{{Email: "two@x.com", FullName: "Prof"}}
	inquiries := []models.Inquiry{
		{Email: "one@x.com", Name: "InqDup"},
		{Email: "three@x.com", Name: "Inq"},
	}

	got := DedupRecipients(subscribers, profiles, inquiries)
	require.Len(t, got.Recipients, 3)
	assert.Equal(t, "Sub", got.Recipients[0].Name)
	assert.Equal(t, "Prof", got.Recipients[1].Name)
	assert.Equal(t, "Inq", got.Recipients[2].Name)
}
