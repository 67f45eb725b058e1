package bplus

import (
	"errors"

	"PageKV/page"
	"PageKV/storage"
)

var (
	// ErrCorruptPage is returned when a page fails validation. The operation
	// is aborted; pages it did not touch stay usable.
	ErrCorruptPage = page.ErrCorruptPage

	// ErrIncompatiblePageSize is returned at open when the file was created
	// with a different page size.
	ErrIncompatiblePageSize = page.ErrIncompatiblePageSize

	// ErrInvalidPageSize is returned for a configured page size that is not
	// a power of two in [MinPageSize, MaxPageSize].
	ErrInvalidPageSize = page.ErrInvalidPageSize

	// ErrIOFailure wraps every failure of the backing medium.
	ErrIOFailure = storage.ErrIO

	// ErrBufferTooSmall is returned by Get together with the value length.
	ErrBufferTooSmall = errors.New("output buffer too small")

	// ErrEntryTooLarge is returned for a key/value pair that could not be
	// split across two pages.
	ErrEntryTooLarge = errors.New("entry too large for page size")
)
