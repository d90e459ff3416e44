package errorz

import "errors"

var (
	// ErrMissing is returned by the service when a short code has no mapping.
	// The text is shown to API clients as is.
	ErrMissing = errors.New("Short code not found.")

	// ErrDuplicate is returned by the service when a new mapping collides
	// with an existing one on the original URL or the short code.
	ErrDuplicate = errors.New("URL mapping already exists.")

	// ErrNotFound is returned by stores when no record matches.
	ErrNotFound = errors.New("mapping not found")

	// ErrConstraintViolation is returned by stores when an insert breaks
	// the unique constraint on original_url or short_code.
	ErrConstraintViolation = errors.New("unique constraint violation")

	ErrInvalidPage = errors.New("page and limit must be positive")
)
