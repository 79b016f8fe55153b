package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/globalyuen/achievepack-sub004/internal/models"
)

func (s *Store) CreateProfile(ctx context.Context, p *models.Profile) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO profiles (id, email, full_name, company, created_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, p.ID, p.Email, p.FullName, p.Company)
	return err
}

func (s *Store) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, email, full_name, company, created_at FROM profiles ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.Email, &p.FullName, &p.Company, &p.CreatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (s *Store) CreateInquiry(ctx context.Context, i *models.Inquiry) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO crm_inquiries (id, email, name, company, message, unsubscribed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, i.ID, i.Email, i.Name, i.Company, i.Message, i.Unsubscribed)
	return err
}

func (s *Store) ListInquiries(ctx context.Context) ([]models.Inquiry, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, email, name, company, message, unsubscribed, created_at FROM crm_inquiries ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inquiries []models.Inquiry
	for rows.Next() {
		var i models.Inquiry
		if err := rows.Scan(&i.ID, &i.Email, &i.Name, &i.Company, &i.Message, &i.Unsubscribed, &i.CreatedAt); err != nil {
			return nil, err
		}
		inquiries = append(inquiries, i)
	}
	return inquiries, rows.Err()
}

// ResolveCustomer finds the display name and email for a work item owner.
// Profiles win over inquiries; resolution is best effort and may come back
// as "Unknown" with no email.
func (s *Store) ResolveCustomer(ctx context.Context, userID string) (name, email string) {
	if userID == "" {
		return "Unknown", ""
	}

	err := s.DB.QueryRowContext(ctx,
		`SELECT full_name, email FROM profiles WHERE id = ?`, userID).Scan(&name, &email)
	if err == nil {
		if name == "" {
			name = email
		}
		return name, email
	}
	if err != sql.ErrNoRows {
		return "Unknown", ""
	}

	err = s.DB.QueryRowContext(ctx,
		`SELECT name, email FROM crm_inquiries WHERE id = ?`, userID).Scan(&name, &email)
	if err != nil {
		return "Unknown", ""
	}
	if name == "" {
		name = email
	}
	return name, email
}

func (s *Store) MarkInquiryUnsubscribed(ctx context.Context, email string) (int64, error) {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE crm_inquiries SET unsubscribed = 1 WHERE LOWER(email) = LOWER(?)`, email)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) AddActivity(ctx context.Context, inquiryID, kind, note string) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO crm_activities (id, inquiry_id, kind, note, created_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, uuid.New().String(), inquiryID, kind, note)
	return err
}

func (s *Store) ListActivities(ctx context.Context, inquiryID string) ([]models.Activity, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, inquiry_id, kind, note, created_at FROM crm_activities WHERE inquiry_id = ? ORDER BY created_at DESC`, inquiryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.InquiryID, &a.Kind, &a.Note, &a.CreatedAt); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
