package repository

import "errors"

// Uniqueness violations reported by UserRepository writes.
var (
	ErrDuplicateEmail    = errors.New("duplicate email")
	ErrDuplicateUsername = errors.New("duplicate username")
)
