// Package outbox gives artwork status notifications at-least-once delivery.
// Messages are enqueued in the same transaction as the status write and a
// background processor delivers them with bounded retries. The transition
// itself never waits on, or rolls back for, delivery.
package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const EventTypeArtworkStatus = "artwork.status_changed"

type Message struct {
	ID             int64
	EventID        string
	EventType      string
	ArtworkID      string
	Recipient      string
	Payload        json.RawMessage
	CreatedAt      time.Time
	PublishedAt    *time.Time
	RetryCount     int
	NextRetryAt    *time.Time
	LastError      *string
	DeadLetteredAt *time.Time
}

// StatusPayload is what the notification email is rendered from.
type StatusPayload struct {
	ArtworkID     string `json:"artworkId"`
	ArtworkName   string `json:"artworkName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerName  string `json:"customerName"`
	Status        string `json:"status"`
	Feedback      string `json:"feedback,omitempty"`
}

// NewStatusMessage builds an outbox message for an artwork status change.
func NewStatusMessage(p StatusPayload) (*Message, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return &Message{
		EventID:   uuid.New().String(),
		EventType: EventTypeArtworkStatus,
		ArtworkID: p.ArtworkID,
		Recipient: p.CustomerEmail,
		Payload:   payload,
	}, nil
}

// IsPublished returns true if the message has been delivered.
func (m *Message) IsPublished() bool {
	return m.PublishedAt != nil
}

// CanRetry returns true while the message is under the retry budget.
func (m *Message) CanRetry(maxRetries int) bool {
	return m.RetryCount < maxRetries
}
