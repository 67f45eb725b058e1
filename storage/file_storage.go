package storage

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// FileStorage implements Storage on top of a single file.
type FileStorage struct {
	file     *os.File
	filePath string
	mu       sync.RWMutex
}

// CreateFile creates (or truncates) the file at path.
func CreateFile(path string) (*FileStorage, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create store file %s: %w", ErrIO, path, err)
	}
	return &FileStorage{file: file, filePath: path}, nil
}

// OpenFile opens an existing file at path for reading and writing.
func OpenFile(path string) (*FileStorage, error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open store file %s: %w", ErrIO, path, err)
	}
	return &FileStorage{file: file, filePath: path}, nil
}

// Path returns the path the storage was opened with.
func (s *FileStorage) Path() string {
	return s.filePath
}

// Read fills buf from offset. A short read is an error, never zero padding.
func (s *FileStorage) Read(offset uint64, buf []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.file == nil {
		return fmt.Errorf("%w: %w", ErrIO, ErrClosed)
	}

	n, err := s.file.ReadAt(buf, int64(offset))
	if n == len(buf) {
		return nil
	}
	if err == nil || err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("%w: read %d bytes at offset %d (got %d): %w", ErrIO, len(buf), offset, n, err)
}

// Write persists buf at offset. The file grows when offset+len(buf) is past its end.
func (s *FileStorage) Write(offset uint64, buf []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return fmt.Errorf("%w: %w", ErrIO, ErrClosed)
	}

	if _, err := s.file.WriteAt(buf, int64(offset)); err != nil {
		return fmt.Errorf("%w: write %d bytes at offset %d: %w", ErrIO, len(buf), offset, err)
	}
	return nil
}

// Size returns the file size.
func (s *FileStorage) Size() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.file == nil {
		return 0, fmt.Errorf("%w: %w", ErrIO, ErrClosed)
	}

	stat, err := s.file.Stat()
	if err != nil {
		return 0, fmt.Errorf("%w: failed to stat store file: %w", ErrIO, err)
	}
	return uint64(stat.Size()), nil
}

// Sync flushes all pending writes to disk.
func (s *FileStorage) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return fmt.Errorf("%w: %w", ErrIO, ErrClosed)
	}

	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// Close syncs and closes the file. Closing twice is a no-op.
func (s *FileStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}

	err := s.file.Sync() // flush before closing
	if err != nil {
		s.file.Close()
		s.file = nil
		return fmt.Errorf("%w: failed to sync before close: %w", ErrIO, err)
	}

	err = s.file.Close()
	s.file = nil
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}
