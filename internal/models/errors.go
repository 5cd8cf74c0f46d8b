package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation.
var (
	ErrMissingID      = errors.New("id is required")
	ErrMissingTitle   = errors.New("title is required")
	ErrMissingName    = errors.New("name is required")
	ErrMissingMovieID = errors.New("movie id is required")
	ErrMissingStarID  = errors.New("star id is required")
	ErrInvalidGenreID = errors.New("genre id must be positive")
)

// Sentinel errors for entity lookups.
var (
	ErrMovieNotFound = errors.New("movie not found")
)

// ErrDuplicateKey indicates a unique constraint violation.
var ErrDuplicateKey = errors.New("duplicate key")

// ErrFieldTooLong returns an error indicating a field exceeds its maximum length.
func ErrFieldTooLong(field string, maxLen int) error {
	return fmt.Errorf("%s exceeds maximum length of %d", field, maxLen)
}

// ErrOutOfRange returns an error indicating a numeric field is outside its allowed range.
func ErrOutOfRange(field string, value, lo, hi any) error {
	return fmt.Errorf("%s %v is outside the range %v..%v", field, value, lo, hi)
}
