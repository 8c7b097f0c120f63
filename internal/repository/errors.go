package repository

import "errors"

var (
	// ErrNotFound is returned when a requested record doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an insert collides with an existing record.
	ErrConflict = errors.New("conflict: record already exists")
)
