package storage

import (
	"context"
	"fmt"

	"github.com/Varun5711/bookmarkd/internal/models"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, hash, first_name, last_name, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *PostgresStorage) CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (email, hash)
		VALUES ($1, $2)
		RETURNING ` + userColumns

	user, err := scanUser(s.db.Write().QueryRow(ctx, query, email, passwordHash))
	if isUniqueViolation(err) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUserByEmail reads from the primary: signin right after signup must see
// the new row even when replicas lag.
func (s *PostgresStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(s.db.Write().QueryRow(ctx, query, email))
	if isNoRows(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetUserByID also reads from the primary: a token issued right after signup
// must resolve to its user.
func (s *PostgresStorage) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(s.db.Write().QueryRow(ctx, query, id))
	if isNoRows(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (s *PostgresStorage) UpdateUser(ctx context.Context, id int64, patch models.EditUserRequest) (*models.User, error) {
	query := `
		UPDATE users
		SET email = COALESCE($2, email),
		    first_name = COALESCE($3, first_name),
		    last_name = COALESCE($4, last_name),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	user, err := scanUser(s.db.Write().QueryRow(ctx, query, id, patch.Email, patch.FirstName, patch.LastName))
	if isUniqueViolation(err) {
		return nil, ErrDuplicateEmail
	}
	if isNoRows(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}
