package store

import (
	"context"
	"database/sql"

	"github.com/globalyuen/achievepack-sub004/internal/models"
)

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT id, username, password FROM users WHERE username = ?`, username)

	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.Password); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser is mainly for seeding the initial admin
func (s *Store) CreateUser(ctx context.Context, username, hashedPassword string) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO users (username, password) VALUES (?, ?)`, username, hashedPassword)
	return err
}
