package outbox

import (
	"context"
	"database/sql"
	"time"

	"github.com/globalyuen/achievepack-sub004/internal/store"
)

// Store persists outbox messages in the application database.
type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

// Enqueue writes the message through db, which may be a transaction shared
// with the status write that produced the event.
func (s *Store) Enqueue(ctx context.Context, db store.DBTX, m *Message) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO outbox_messages (event_id, event_type, artwork_id, recipient, payload, created_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, m.EventID, m.EventType, m.ArtworkID, m.Recipient, string(m.Payload))
	return err
}

// PendingBatch returns undelivered, non-dead-lettered messages whose retry
// time has passed, oldest first.
func (s *Store) PendingBatch(ctx context.Context, limit int, now time.Time) ([]Message, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, event_id, event_type, artwork_id, recipient, payload, created_at, published_at, retry_count, next_retry_at, last_error, dead_lettered_at
		FROM outbox_messages
		WHERE published_at IS NULL
		  AND dead_lettered_at IS NULL
		  AND (next_retry_at IS NULL OR next_retry_at <= ?)
		ORDER BY id
		LIMIT ?
	`, now.UTC(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		var payload string
		var publishedAt, nextRetryAt, deadLetteredAt sql.NullTime
		var lastError sql.NullString
		if err := rows.Scan(&m.ID, &m.EventID, &m.EventType, &m.ArtworkID, &m.Recipient, &payload, &m.CreatedAt, &publishedAt, &m.RetryCount, &nextRetryAt, &lastError, &deadLetteredAt); err != nil {
			return nil, err
		}
		m.Payload = []byte(payload)
		if publishedAt.Valid {
			t := publishedAt.Time
			m.PublishedAt = &t
		}
		if nextRetryAt.Valid {
			t := nextRetryAt.Time
			m.NextRetryAt = &t
		}
		if lastError.Valid {
			e := lastError.String
			m.LastError = &e
		}
		if deadLetteredAt.Valid {
			t := deadLetteredAt.Time
			m.DeadLetteredAt = &t
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (s *Store) MarkPublished(ctx context.Context, id int64, at time.Time) error {
	_, err := s.DB.ExecContext(ctx,
		`UPDATE outbox_messages SET published_at = ? WHERE id = ?`, at.UTC(), id)
	return err
}

// MarkFailed records the failure and schedules the next attempt.
func (s *Store) MarkFailed(ctx context.Context, id int64, sendErr string, nextRetryAt time.Time) error {
	_, err := s.DB.ExecContext(ctx, `
		UPDATE outbox_messages
		SET retry_count = retry_count + 1, last_error = ?, next_retry_at = ?
		WHERE id = ?
	`, sendErr, nextRetryAt.UTC(), id)
	return err
}

// DeadLetter parks the message permanently; the reason is kept for operators.
func (s *Store) DeadLetter(ctx context.Context, id int64, reason string, at time.Time) error {
	_, err := s.DB.ExecContext(ctx, `
		UPDATE outbox_messages
		SET dead_lettered_at = ?, last_error = ?
		WHERE id = ?
	`, at.UTC(), reason, id)
	return err
}

// CountPending reports how many messages are awaiting delivery.
func (s *Store) CountPending(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM outbox_messages
		WHERE published_at IS NULL AND dead_lettered_at IS NULL
	`).Scan(&count)
	return count, err
}
