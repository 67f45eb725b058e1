package storage

import (
	"fmt"
	"sync"
)

// MemoryStorage is a non-durable, growable in-memory medium.
type MemoryStorage struct {
	data   []byte
	mu     sync.RWMutex
	closed bool
}

// NewMemoryStorage returns an empty medium with room for capacity bytes
// before the first reallocation.
func NewMemoryStorage(capacity int) *MemoryStorage {
	if capacity < 0 {
		capacity = 0
	}
	return &MemoryStorage{
		data: make([]byte, 0, capacity),
	}
}

func (m *MemoryStorage) Read(offset uint64, buf []byte) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return fmt.Errorf("%w: %w", ErrIO, ErrClosed)
	}

	end := offset + uint64(len(buf))
	if end < offset || end > uint64(len(m.data)) {
		return fmt.Errorf("%w: read [%d, %d) beyond extent %d", ErrIO, offset, end, len(m.data))
	}

	copy(buf, m.data[offset:end])
	return nil
}

func (m *MemoryStorage) Write(offset uint64, buf []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("%w: %w", ErrIO, ErrClosed)
	}

	end := offset + uint64(len(buf))
	if end < offset || end > uint64(maxInt) {
		return fmt.Errorf("%w: write [%d, %d) exceeds addressable memory", ErrIO, offset, end)
	}

	if end > uint64(len(m.data)) {
		if end <= uint64(cap(m.data)) {
			m.data = m.data[:end]
		} else {
			grown := make([]byte, end, max(int(end), 2*cap(m.data)))
			copy(grown, m.data)
			m.data = grown
		}
	}

	copy(m.data[offset:end], buf)
	return nil
}

func (m *MemoryStorage) Size() (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return 0, fmt.Errorf("%w: %w", ErrIO, ErrClosed)
	}
	return uint64(len(m.data)), nil
}

func (m *MemoryStorage) Sync() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("%w: %w", ErrIO, ErrClosed)
	}

	// In-memory sync is a no-op, but we should still check if we are closed
	return nil
}

func (m *MemoryStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	m.data = nil
	m.closed = true
	return nil
}

const maxInt = int(^uint(0) >> 1)
