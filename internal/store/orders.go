package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/globalyuen/achievepack-sub004/internal/models"
)

func (s *Store) CreateOrder(ctx context.Context, o *models.Order) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.Status == "" {
		o.Status = models.OrderStatusPending
	}
	query := `
		INSERT INTO orders (id, order_ref, user_id, status, total_amount, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`
	_, err := s.DB.ExecContext(ctx, query, o.ID, o.OrderRef, o.UserID, o.Status, o.TotalAmount, o.Notes)
	return err
}

func (s *Store) ListOrders(ctx context.Context, activeOnly bool) ([]models.Order, error) {
	query := `
		SELECT id, order_ref, user_id, status, total_amount, notes, created_at, updated_at, deleted_at
		FROM orders
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

	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *Store) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT id, order_ref, user_id, status, total_amount, notes, created_at, updated_at, deleted_at
		FROM orders WHERE id = ?
	`, id)
	o, err := scanOrder(row)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id, status string) error {
	_, err := s.DB.ExecContext(ctx,
		`UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, status, id)
	return err
}

func scanOrder(row rowScanner) (models.Order, error) {
	var o models.Order
	var deletedAt sql.NullTime
	err := row.Scan(&o.ID, &o.OrderRef, &o.UserID, &o.Status, &o.TotalAmount, &o.Notes, &o.CreatedAt, &o.UpdatedAt, &deletedAt)
	if err != nil {
		return o, err
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		o.DeletedAt = &t
	}
	return o, nil
}
