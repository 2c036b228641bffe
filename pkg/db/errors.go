package db

import "errors"

var (
	// ErrStorageUnavailable is returned when the database cannot be opened or initialized.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrInvalidFormat is returned when import or legacy data is not a JSON array of entries.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrNotFound is returned by lookups for an id that is not stored.
	ErrNotFound = errors.New("word not found")
)
