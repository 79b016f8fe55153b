package store

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/globalyuen/achievepack-sub004/internal/models"
)

func (s *Store) SaveDraft(ctx context.Context, d *models.EmailDraft) error {
	images, err := json.Marshal(d.Images)
	if err != nil {
		return err
	}
	if d.ID == "" {
		d.ID = uuid.New().String()
		_, err = s.DB.ExecContext(ctx, `
			INSERT INTO email_drafts (id, subject, greeting, content, closing, images, selected_page, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		`, d.ID, d.Subject, d.Greeting, d.Content, d.Closing, string(images), d.SelectedPage)
		return err
	}
	_, err = s.DB.ExecContext(ctx, `
		UPDATE email_drafts SET subject = ?, greeting = ?, content = ?, closing = ?, images = ?, selected_page = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, d.Subject, d.Greeting, d.Content, d.Closing, string(images), d.SelectedPage, d.ID)
	return err
}

func (s *Store) ListDrafts(ctx context.Context) ([]models.EmailDraft, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, subject, greeting, content, closing, images, selected_page, created_at, updated_at
		FROM email_drafts ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drafts []models.EmailDraft
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	return drafts, rows.Err()
}

func (s *Store) GetDraftByID(ctx context.Context, id string) (*models.EmailDraft, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT id, subject, greeting, content, closing, images, selected_page, created_at, updated_at
		FROM email_drafts WHERE id = ?
	`, id)
	d, err := scanDraft(row)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Store) DeleteDraft(ctx context.Context, id string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM email_drafts WHERE id = ?`, id)
	return err
}

func scanDraft(row rowScanner) (models.EmailDraft, error) {
	var d models.EmailDraft
	var images string
	err := row.Scan(&d.ID, &d.Subject, &d.Greeting, &d.Content, &d.Closing, &images, &d.SelectedPage, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return d, err
	}
	if err := json.Unmarshal([]byte(images), &d.Images); err != nil {
		d.Images = nil
	}
	return d, nil
}
