package mailer

import (
	"strings"

	"github.com/globalyuen/achievepack-sub004/internal/models"
)

// DedupResult is shown to the operator before dispatch begins. InquiryIDs
// maps the lowercased email of every inquiry-sourced recipient to its CRM
// inquiry id, so a campaign send can be recorded as an activity afterwards.
type DedupResult struct {
	Recipients          []Recipient
	InquiryIDs          map[string]string
	SkippedUnsubscribed int
	SkippedInvalid      int
}

// DedupRecipients merges the selected contact sources into a single send
// list, deduplicated by trimmed, lowercased email. The first name encountered
// wins. Unsubscribed contacts and addresses without an "@" are excluded and
// counted separately for the confirmation prompt.
func DedupRecipients(subscribers []models.Subscriber, profiles []models.Profile, inquiries []models.Inquiry) DedupResult {
	result := DedupResult{InquiryIDs: make(map[string]string)}
	seen := make(map[string]bool)

	// add reports the normalized key when the address made the list.
	add := func(email, name string, unsubscribed bool) string {
		if unsubscribed {
			result.SkippedUnsubscribed++
			return ""
		}
		key := strings.ToLower(strings.TrimSpace(email))
		if !strings.Contains(key, "@") {
			result.SkippedInvalid++
			return ""
		}
		if seen[key] {
			return ""
		}
		seen[key] = true
		result.Recipients = append(result.Recipients, Recipient{Email: key, Name: name})
		return key
	}

	for _, s := range subscribers {
		add(s.Email, s.Name, s.Unsubscribed)
	}
	for _, p := range profiles {
		add(p.Email, p.FullName, false)
	}
	for _, i := range inquiries {
		if key := add(i.Email, i.Name, i.Unsubscribed); key != "" {
			result.InquiryIDs[key] = i.ID
		}
	}

	return result
}
