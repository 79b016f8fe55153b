package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/globalyuen/achievepack-sub004/internal/models"
)

func (s *Store) CreateQuote(ctx context.Context, q *models.Quote) error {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	if q.Status == "" {
		q.Status = models.QuoteStatusPending
	}
	query := `
		INSERT INTO quotes (id, quote_number, user_id, status, total_amount, valid_until, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`
	_, err := s.DB.ExecContext(ctx, query, q.ID, q.QuoteNumber, q.UserID, q.Status, q.TotalAmount, q.ValidUntil, q.Notes)
	return err
}

func (s *Store) CreateRFQ(ctx context.Context, userID, message, company string) (string, error) {
	id := uuid.New().String()
	query := `
		INSERT INTO rfq_submissions (id, user_id, status, message, company, created_at, updated_at)
		VALUES (?, ?, 'pending', ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`
	_, err := s.DB.ExecContext(ctx, query, id, userID, message, company)
	return id, err
}

// ListQuotes returns the merged view of regular quotes and RFQ submissions,
// newest first. RFQ rows get a synthesized quote number, zero amount and a
// 30 day validity window, matching how the dashboard always presented them.
func (s *Store) ListQuotes(ctx context.Context, activeOnly bool) ([]models.Quote, error) {
	quotes, err := s.listRegularQuotes(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	rfqs, err := s.listRFQQuotes(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	all := append(quotes, rfqs...)
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

func (s *Store) listRegularQuotes(ctx context.Context, activeOnly bool) ([]models.Quote, error) {
	query := `
		SELECT id, quote_number, user_id, status, total_amount, valid_until, notes, admin_reply, replied_at, created_at, updated_at, deleted_at
		FROM quotes
	`
	if activeOnly {
		query += ` WHERE deleted_at IS NULL`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []models.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

func (s *Store) listRFQQuotes(ctx context.Context, activeOnly bool) ([]models.Quote, error) {
	query := `
		SELECT id, user_id, status, message, admin_reply, replied_at, created_at, updated_at, deleted_at
		FROM rfq_submissions
	`
	if activeOnly {
		query += ` WHERE deleted_at IS NULL`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []models.Quote
	for rows.Next() {
		var q models.Quote
		var repliedAt, deletedAt sql.NullTime
		if err := rows.Scan(&q.ID, &q.UserID, &q.Status, &q.Notes, &q.AdminReply, &repliedAt, &q.CreatedAt, &q.UpdatedAt, &deletedAt); err != nil {
			return nil, err
		}
		q.IsRFQ = true
		q.QuoteNumber = rfqNumber(q.ID)
		q.ValidUntil = q.CreatedAt.Add(30 * 24 * time.Hour)
		if repliedAt.Valid {
			t := repliedAt.Time
			q.RepliedAt = &t
		}
		if deletedAt.Valid {
			t := deletedAt.Time
			q.DeletedAt = &t
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

func rfqNumber(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return "RFQ-" + id
}

func (s *Store) GetQuoteByID(ctx context.Context, id string) (*models.Quote, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT id, quote_number, user_id, status, total_amount, valid_until, notes, admin_reply, replied_at, created_at, updated_at, deleted_at
		FROM quotes WHERE id = ?
	`, id)
	q, err := scanQuote(row)
	if err == nil {
		return &q, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	// Fall back to the RFQ table
	var rq models.Quote
	var repliedAt, deletedAt sql.NullTime
	err = s.DB.QueryRowContext(ctx, `
		SELECT id, user_id, status, message, admin_reply, replied_at, created_at, updated_at, deleted_at
		FROM rfq_submissions WHERE id = ?
	`, id).Scan(&rq.ID, &rq.UserID, &rq.Status, &rq.Notes, &rq.AdminReply, &repliedAt, &rq.CreatedAt, &rq.UpdatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}
	rq.IsRFQ = true
	rq.QuoteNumber = rfqNumber(rq.ID)
	rq.ValidUntil = rq.CreatedAt.Add(30 * 24 * time.Hour)
	if repliedAt.Valid {
		t := repliedAt.Time
		rq.RepliedAt = &t
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		rq.DeletedAt = &t
	}
	return &rq, nil
}

// UpdateQuoteStatus writes the ground-truth status. Both backing tables are
// updated in one transaction so a quote that exists in either place can never
// end up half-written.
func (s *Store) UpdateQuoteStatus(ctx context.Context, id, status string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE quotes SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, status, id); err != nil {
		return fmt.Errorf("update quotes: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE rfq_submissions SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, status, id); err != nil {
		return fmt.Errorf("update rfq_submissions: %w", err)
	}
	return tx.Commit()
}

// SaveQuoteReply records the admin reply (and quoted amount for regular
// quotes) against whichever table holds the quote.
func (s *Store) SaveQuoteReply(ctx context.Context, id, reply string, quotedAmount float64) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		UPDATE quotes SET admin_reply = ?, total_amount = CASE WHEN ? > 0 THEN ? ELSE total_amount END,
			replied_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, reply, quotedAmount, quotedAmount, id); err != nil {
		return fmt.Errorf("update quotes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE rfq_submissions SET admin_reply = ?, replied_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, reply, id); err != nil {
		return fmt.Errorf("update rfq_submissions: %w", err)
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuote(row rowScanner) (models.Quote, error) {
	var q models.Quote
	var validUntil, repliedAt, deletedAt sql.NullTime
	err := row.Scan(&q.ID, &q.QuoteNumber, &q.UserID, &q.Status, &q.TotalAmount, &validUntil, &q.Notes, &q.AdminReply, &repliedAt, &q.CreatedAt, &q.UpdatedAt, &deletedAt)
	if err != nil {
		return q, err
	}
	if validUntil.Valid {
		q.ValidUntil = validUntil.Time
	}
	if repliedAt.Valid {
		t := repliedAt.Time
		q.RepliedAt = &t
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		q.DeletedAt = &t
	}
	return q, nil
}
