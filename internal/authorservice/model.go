package authorservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	ErrDuplicateEmail = errors.New("duplicate email")
	ErrNotFound       = errors.New("author not found")
)

func newDBModel(db *sql.DB) *DBModel {
	return &DBModel{db: db}
}

// UniqueViolationError is a helper function to check if the error is a unique constraint error.
func UniqueViolationError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23505" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

func (m *DBModel) insertAuthor(ctx context.Context, a *Author) error {
	query := `
		INSERT INTO authors (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	args := []any{
		a.Name,
		a.Email,
		a.Password.hash,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		switch {
		case UniqueViolationError(err, "authors_email_key"):
			return ErrDuplicateEmail
		default:
			return err
		}
	}
	return nil
}

func (m *DBModel) getAuthorByEmail(ctx context.Context, email string) (*Author, error) {
	query := `
		SELECT id, name, email, password, created_at, updated_at
		FROM authors
		WHERE email = $1`

	var a Author

	err := m.db.QueryRowContext(ctx, query, email).Scan(&a.ID, &a.Name, &a.Email, &a.Password.hash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &a, nil
}
