package storage

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
)

// TestFileStorageBasicOperations tests write, read, size and reopen
func TestFileStorageBasicOperations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "basic.kv")

	st, err := CreateFile(path)
	if err != nil {
		t.Fatalf("Failed to create file storage: %v", err)
	}
	defer st.Close()

	// Test 1: Write a block past the end grows the file
	block := make([]byte, 64)
	copy(block, []byte("Hello, File Storage!"))
	if err := st.Write(128, block); err != nil {
		t.Fatalf("Failed to write block: %v", err)
	}

	size, err := st.Size()
	if err != nil {
		t.Fatalf("Failed to stat storage: %v", err)
	}
	if size != 192 {
		t.Errorf("Expected size 192, got %d", size)
	}

	// Test 2: Read the block back
	got := make([]byte, 64)
	if err := st.Read(128, got); err != nil {
		t.Fatalf("Failed to read block: %v", err)
	}
	if !bytes.Equal(block, got) {
		t.Errorf("Data mismatch: expected %q, got %q", block[:20], got[:20])
	}

	// Test 3: Sync, close and reopen
	if err := st.Sync(); err != nil {
		t.Fatalf("Failed to sync: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Failed to close: %v", err)
	}

	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to reopen storage: %v", err)
	}
	defer reopened.Close()

	persisted := make([]byte, 64)
	if err := reopened.Read(128, persisted); err != nil {
		t.Fatalf("Failed to read persisted block: %v", err)
	}
	if !bytes.Equal(block, persisted) {
		t.Errorf("Data not persisted correctly")
	}
}

func TestFileStorageShortReadFails(t *testing.T) {
	st, err := CreateFile(filepath.Join(t.TempDir(), "short.kv"))
	if err != nil {
		t.Fatalf("Failed to create file storage: %v", err)
	}
	defer st.Close()

	if err := st.Write(0, make([]byte, 10)); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	err = st.Read(0, make([]byte, 20))
	if !errors.Is(err, ErrIO) {
		t.Fatalf("Expected ErrIO for short read, got %v", err)
	}
}

func TestFileStorageClosed(t *testing.T) {
	st, err := CreateFile(filepath.Join(t.TempDir(), "closed.kv"))
	if err != nil {
		t.Fatalf("Failed to create file storage: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Failed to close: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Errorf("Second close should be a no-op, got %v", err)
	}

	err = st.Write(0, []byte{1})
	if !errors.Is(err, ErrIO) || !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrIO wrapping ErrClosed, got %v", err)
	}
}

func TestOpenFileMissing(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing.kv"))
	if !errors.Is(err, ErrIO) {
		t.Fatalf("Expected ErrIO opening a missing file, got %v", err)
	}
}
