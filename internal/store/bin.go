package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Tables that participate in the soft-delete lifecycle. Quote ids may live in
// either quotes or rfq_submissions, so quote operations touch both.
var binTables = map[string][]string{
	"quote":   {"quotes", "rfq_submissions"},
	"artwork": {"artwork_files"},
	"order":   {"orders"},
}

// BinItem is one row of the bin view, regardless of kind.
type BinItem struct {
	Kind      string
	ID        string
	Name      string
	DeletedAt time.Time
}

// SoftDelete marks the item as deleted. Calling it on an already deleted item
// overwrites deleted_at with the newer timestamp; that matches the shipped
// behavior and is asserted as such in tests.
func (s *Store) SoftDelete(ctx context.Context, kind, id string, now time.Time) error {
	return s.setDeletedAt(ctx, kind, id, &now)
}

// Restore clears deleted_at so the item is visible in active views again.
func (s *Store) Restore(ctx context.Context, kind, id string) error {
	return s.setDeletedAt(ctx, kind, id, nil)
}

func (s *Store) setDeletedAt(ctx context.Context, kind, id string, at *time.Time) error {
	tables, ok := binTables[kind]
	if !ok {
		return fmt.Errorf("unknown bin kind %q", kind)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var val any
	if at != nil {
		val = at.UTC()
	}
	for _, table := range tables {
		if _, err := tx.ExecContext(ctx,
			`UPDATE `+table+` SET deleted_at = ? WHERE id = ?`, val, id); err != nil {
			return fmt.Errorf("update %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// Purge removes the row permanently. Irreversible.
func (s *Store) Purge(ctx context.Context, kind, id string) error {
	tables, ok := binTables[kind]
	if !ok {
		return fmt.Errorf("unknown bin kind %q", kind)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range tables {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete from %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// ListBin returns every soft-deleted work item, newest deletion first.
func (s *Store) ListBin(ctx context.Context) ([]BinItem, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT 'quote' AS kind, id, quote_number AS name, deleted_at FROM quotes WHERE deleted_at IS NOT NULL
		UNION ALL
		SELECT 'quote', id, 'RFQ-' || substr(id, 1, 8), deleted_at FROM rfq_submissions WHERE deleted_at IS NOT NULL
		UNION ALL
		SELECT 'artwork', id, file_name, deleted_at FROM artwork_files WHERE deleted_at IS NOT NULL
		UNION ALL
		SELECT 'order', id, order_ref, deleted_at FROM orders WHERE deleted_at IS NOT NULL
		ORDER BY deleted_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []BinItem
	for rows.Next() {
		var item BinItem
		var deletedAt sql.NullTime
		if err := rows.Scan(&item.Kind, &item.ID, &item.Name, &deletedAt); err != nil {
			return nil, err
		}
		if deletedAt.Valid {
			item.DeletedAt = deletedAt.Time
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetDeletedAt reports the current deleted_at of the item, nil when active.
func (s *Store) GetDeletedAt(ctx context.Context, kind, id string) (*time.Time, error) {
	tables, ok := binTables[kind]
	if !ok {
		return nil, fmt.Errorf("unknown bin kind %q", kind)
	}
	for _, table := range tables {
		var deletedAt sql.NullTime
		err := s.DB.QueryRowContext(ctx,
			`SELECT deleted_at FROM `+table+` WHERE id = ?`, id).Scan(&deletedAt)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, err
		}
		if deletedAt.Valid {
			t := deletedAt.Time
			return &t, nil
		}
		return nil, nil
	}
	return nil, sql.ErrNoRows
}
