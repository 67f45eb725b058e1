package page

import "errors"

var (
	// ErrCorruptPage is returned when a page's magic, length or offset
	// tables are inconsistent with the configured page size.
	ErrCorruptPage = errors.New("corrupt page")

	// ErrIncompatiblePageSize is returned when a file header records a page
	// size different from the one the store is configured with.
	ErrIncompatiblePageSize = errors.New("incompatible page size")

	// ErrInvalidPageSize is returned for a page size that is not a power of
	// two within [MinPageSize, MaxPageSize].
	ErrInvalidPageSize = errors.New("invalid page size")
)
