package repository

import (
	"errors"
	"strings"

	domainRepo "go-hospital-booking/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error code 23505 = unique_violation
const uniqueViolation = "23505"

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation &&
			strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName))
	}
	return false
}

// translateUserError maps unique index violations on users to domain errors.
func translateUserError(err error) error {
	switch {
	case err == nil:
		return nil
	case isDuplicateKeyError(err, "email"):
		return domainRepo.ErrDuplicateEmail
	case isDuplicateKeyError(err, "username"):
		return domainRepo.ErrDuplicateUsername
	default:
		return err
	}
}
