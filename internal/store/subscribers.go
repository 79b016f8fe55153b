package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/globalyuen/achievepack-sub004/internal/models"
)

func (s *Store) CreateSubscriber(ctx context.Context, email, name string) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO newsletter_subscribers (id, email, name, created_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(email) DO NOTHING
	`, uuid.New().String(), email, name)
	return err
}

func (s *Store) ListSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, email, name, unsubscribed, created_at FROM newsletter_subscribers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []models.Subscriber
	for rows.Next() {
		var sub models.Subscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.Name, &sub.Unsubscribed, &sub.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (s *Store) MarkSubscriberUnsubscribed(ctx context.Context, email string) (int64, error) {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE newsletter_subscribers SET unsubscribed = 1 WHERE LOWER(email) = LOWER(?)`, email)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
