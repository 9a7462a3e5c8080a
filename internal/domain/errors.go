package domain

import "errors"

var (
	// ErrNotFound is returned by repositories when the requested record does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicateEmail is returned when the email unique constraint is violated.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrVersionConflict is returned by conditional updates when the stored
	// version no longer matches the one the caller read.
	ErrVersionConflict = errors.New("profile version conflict")
)
