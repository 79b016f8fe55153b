package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/globalyuen/achievepack-sub004/internal/models"
)

func (s *Store) CreateArtwork(ctx context.Context, a *models.ArtworkFile) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Status == "" {
		a.Status = models.ArtworkStatusPendingReview
	}
	query := `
		INSERT INTO artwork_files (id, user_id, file_name, file_url, thumbnail_url, status, customer_code, product_code, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`
	_, err := s.DB.ExecContext(ctx, query, a.ID, a.UserID, a.FileName, a.FileURL, a.ThumbnailURL, a.Status, a.CustomerCode, a.ProductCode)
	return err
}

func (s *Store) ListArtworks(ctx context.Context, activeOnly bool) ([]models.ArtworkFile, error) {
	query := `
		SELECT id, user_id, file_name, file_url, thumbnail_url, status, admin_feedback, proof_url, customer_code, product_code, created_at, updated_at, deleted_at
		FROM artwork_files
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

	var artworks []models.ArtworkFile
	for rows.Next() {
		a, err := scanArtwork(rows)
		if err != nil {
			return nil, err
		}
		artworks = append(artworks, a)
	}
	return artworks, rows.Err()
}

func (s *Store) GetArtworkByID(ctx context.Context, id string) (*models.ArtworkFile, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT id, user_id, file_name, file_url, thumbnail_url, status, admin_feedback, proof_url, customer_code, product_code, created_at, updated_at, deleted_at
		FROM artwork_files WHERE id = ?
	`, id)
	a, err := scanArtwork(row)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateArtworkStatusIn runs inside a caller transaction so the status write
// and its outbox message commit together.
func UpdateArtworkStatusIn(ctx context.Context, db DBTX, id, status string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE artwork_files SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, status, id)
	return err
}

func (s *Store) UpdateArtworkFeedback(ctx context.Context, id, feedback string) error {
	_, err := s.DB.ExecContext(ctx,
		`UPDATE artwork_files SET admin_feedback = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, feedback, id)
	return err
}

func (s *Store) UpdateArtworkProof(ctx context.Context, id, proofURL string) error {
	_, err := s.DB.ExecContext(ctx,
		`UPDATE artwork_files SET proof_url = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, proofURL, id)
	return err
}

func (s *Store) UpdateArtworkCodes(ctx context.Context, id, customerCode, productCode string) error {
	_, err := s.DB.ExecContext(ctx,
		`UPDATE artwork_files SET customer_code = ?, product_code = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		customerCode, productCode, id)
	return err
}

func scanArtwork(row rowScanner) (models.ArtworkFile, error) {
	var a models.ArtworkFile
	var updatedAt, deletedAt sql.NullTime
	err := row.Scan(&a.ID, &a.UserID, &a.FileName, &a.FileURL, &a.ThumbnailURL, &a.Status, &a.AdminFeedback, &a.ProofURL, &a.CustomerCode, &a.ProductCode, &a.CreatedAt, &updatedAt, &deletedAt)
	if err != nil {
		return a, err
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		a.UpdatedAt = &t
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		a.DeletedAt = &t
	}
	return a, nil
}
