// Package storage provides the byte-addressable backing mediums a store is
// persisted on. A Storage only knows how to fill or persist an exact byte
// range at an absolute offset; page semantics live in package page.
package storage

import "errors"

var (
	// ErrIO is wrapped by every failure of a backing medium.
	ErrIO = errors.New("storage I/O failure")

	// ErrClosed is returned when a medium is used after Close.
	ErrClosed = errors.New("storage is closed")
)

// Storage is the persistence contract used by the store. Read and Write are
// all-or-nothing: they either transfer len(buf) bytes or return an error.
type Storage interface {
	// Read fills buf completely from offset.
	Read(offset uint64, buf []byte) error
	// Write persists buf completely at offset, growing the medium if needed.
	Write(offset uint64, buf []byte) error
	// Size returns the current extent of the medium in bytes.
	Size() (uint64, error)
	Sync() error
	Close() error
}
