package storage

import (
	"bytes"
	"errors"
	"testing"
)

func TestMemoryStorageGrowsOnWrite(t *testing.T) {
	m := NewMemoryStorage(16)

	if err := m.Write(100, []byte("abc")); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	size, _ := m.Size()
	if size != 103 {
		t.Fatalf("Expected size 103, got %d", size)
	}

	// bytes before the write are zero filled
	gap := make([]byte, 100)
	if err := m.Read(0, gap); err != nil {
		t.Fatalf("Failed to read gap: %v", err)
	}
	if !bytes.Equal(gap, make([]byte, 100)) {
		t.Errorf("Expected zero filled gap")
	}

	got := make([]byte, 3)
	if err := m.Read(100, got); err != nil {
		t.Fatalf("Failed to read: %v", err)
	}
	if string(got) != "abc" {
		t.Errorf("Expected abc, got %q", got)
	}
}

func TestMemoryStorageReadBeyondExtent(t *testing.T) {
	m := NewMemoryStorage(0)
	if err := m.Write(0, make([]byte, 8)); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	tests := []struct {
		name   string
		offset uint64
		n      int
	}{
		{"past end", 8, 1},
		{"straddles end", 4, 8},
		{"overflowing offset", ^uint64(0), 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := m.Read(tc.offset, make([]byte, tc.n))
			if !errors.Is(err, ErrIO) {
				t.Errorf("Expected ErrIO, got %v", err)
			}
		})
	}
}

func TestMemoryStorageOverwriteInPlace(t *testing.T) {
	m := NewMemoryStorage(0)
	_ = m.Write(0, []byte("hello world"))
	_ = m.Write(6, []byte("there"))

	got := make([]byte, 11)
	if err := m.Read(0, got); err != nil {
		t.Fatalf("Failed to read: %v", err)
	}
	if string(got) != "hello there" {
		t.Errorf("Expected %q, got %q", "hello there", got)
	}
}

func TestMemoryStorageClosed(t *testing.T) {
	m := NewMemoryStorage(0)
	_ = m.Close()

	if _, err := m.Size(); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
	if err := m.Read(0, nil); !errors.Is(err, ErrIO) {
		t.Errorf("Expected ErrIO, got %v", err)
	}
}
