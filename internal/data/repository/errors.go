package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned by updates that matched no row.
	ErrNotFound = errors.New("record not found")

	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateUsername = errors.New("username already taken")

	// ErrSessionNotFound means the refresh token is unknown, expired or already revoked.
	ErrSessionNotFound = errors.New("session not found or already revoked")
)

const uniqueViolation = "23505"

// translateUnique maps unique-constraint violations on users to sentinel errors.
func translateUnique(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case "users_username_key":
		return ErrDuplicateUsername
	default:
		return ErrDuplicateEmail
	}
}
