package store

import (
	"context"
	"database/sql"
)

type DashboardStats struct {
	TotalQuotes      int
	TotalArtworks    int
	TotalOrders      int
	TotalCustomers   int
	QuotesByStatus   map[string]int
	ArtworksByStatus map[string]int
	OrdersByStatus   map[string]int
	BinCount         int
}

// GetDashboardStats counts active (non-deleted) work items per status.
func (s *Store) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{
		QuotesByStatus:   make(map[string]int),
		ArtworksByStatus: make(map[string]int),
		OrdersByStatus:   make(map[string]int),
	}

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM quotes WHERE deleted_at IS NULL`, &stats.TotalQuotes},
		{`SELECT COUNT(*) FROM artwork_files WHERE deleted_at IS NULL`, &stats.TotalArtworks},
		{`SELECT COUNT(*) FROM orders WHERE deleted_at IS NULL`, &stats.TotalOrders},
		{`SELECT COUNT(*) FROM profiles`, &stats.TotalCustomers},
	}
	for _, c := range counts {
		if err := s.DB.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil && err != sql.ErrNoRows {
			return nil, err
		}
	}

	// RFQ submissions count as quotes in the merged view.
	var rfqCount int
	if err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rfq_submissions WHERE deleted_at IS NULL`).Scan(&rfqCount); err == nil {
		stats.TotalQuotes += rfqCount
	}

	groups := []struct {
		query string
		dest  map[string]int
	}{
		{`SELECT status, COUNT(*) FROM quotes WHERE deleted_at IS NULL GROUP BY status`, stats.QuotesByStatus},
		{`SELECT status, COUNT(*) FROM rfq_submissions WHERE deleted_at IS NULL GROUP BY status`, stats.QuotesByStatus},
		{`SELECT status, COUNT(*) FROM artwork_files WHERE deleted_at IS NULL GROUP BY status`, stats.ArtworksByStatus},
		{`SELECT status, COUNT(*) FROM orders WHERE deleted_at IS NULL GROUP BY status`, stats.OrdersByStatus},
	}
	for _, g := range groups {
		rows, err := s.DB.QueryContext(ctx, g.query)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var status string
			var count int
			if err := rows.Scan(&status, &count); err != nil {
				rows.Close()
				return nil, err
			}
			g.dest[status] += count
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	err := s.DB.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM quotes WHERE deleted_at IS NOT NULL)
			+ (SELECT COUNT(*) FROM rfq_submissions WHERE deleted_at IS NOT NULL)
			+ (SELECT COUNT(*) FROM artwork_files WHERE deleted_at IS NOT NULL)
			+ (SELECT COUNT(*) FROM orders WHERE deleted_at IS NOT NULL)
	`).Scan(&stats.BinCount)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	return stats, nil
}
