package page

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"PageKV/storage"
)

func TestNewFileHeaderAt32Bytes(t *testing.T) {
	h := NewFileHeader(32)

	want := "6b763166" + // kv1f
		strings.Repeat("ff", 8) + // root_page
		strings.Repeat("ff", 8) + // first_free_page
		"0000000000000020" + // page_size
		"00000000"
	if got := hex.EncodeToString(h.Bytes()); got != want {
		t.Fatalf("fresh header mismatch:\n got %s\nwant %s", got, want)
	}
	if h.RootPage() != NullPage || h.FirstFreePage() != NullPage {
		t.Errorf("Expected NULL_PAGE root and free list")
	}
}

func TestFileHeaderRoundTrip(t *testing.T) {
	const pageSize = 4096
	st := storage.NewMemoryStorage(0)

	h := NewFileHeader(pageSize)
	h.SetRootPage(5)
	h.SetFirstFreePage(9)
	if err := Persist(h, st, 0); err != nil {
		t.Fatalf("Failed to persist header: %v", err)
	}

	p, err := Load(st, 0, pageSize)
	if err != nil {
		t.Fatalf("Failed to load header: %v", err)
	}
	got, ok := p.(*FileHeader)
	if !ok {
		t.Fatalf("Expected *FileHeader, got %T", p)
	}
	if got.RootPage() != 5 || got.FirstFreePage() != 9 || got.PageSize() != pageSize {
		t.Errorf("Round trip mismatch: root=%d free=%d size=%d", got.RootPage(), got.FirstFreePage(), got.PageSize())
	}
}

func TestFromBufferIncompatiblePageSize(t *testing.T) {
	h := NewFileHeader(8192)

	// a 4096-byte read of an 8192-byte store still sees the header fields
	_, err := FromBuffer(h.Bytes()[:4096], 4096)
	if !errors.Is(err, ErrIncompatiblePageSize) {
		t.Fatalf("Expected ErrIncompatiblePageSize, got %v", err)
	}
	if errors.Is(err, ErrCorruptPage) {
		t.Errorf("Page size mismatch must not be reported as corruption")
	}
}

func TestFromBufferDetectsKinds(t *testing.T) {
	for _, kind := range []Kind{KindFileHeader, KindIndex, KindLeaf, KindFree} {
		p := New(kind, 64)
		got, err := FromBuffer(p.Bytes(), 64)
		if err != nil {
			t.Fatalf("%v: unexpected error %v", kind, err)
		}
		if got.Kind() != kind {
			t.Errorf("Expected %v, got %v", kind, got.Kind())
		}
	}
}

func TestFromBufferCorruption(t *testing.T) {
	tests := []struct {
		name   string
		mutate func() []byte
	}{
		{"unknown magic", func() []byte {
			buf := make([]byte, 64)
			copy(buf, "kv2l")
			return buf
		}},
		{"zeroed page", func() []byte {
			return make([]byte, 64)
		}},
		{"length past bound", func() []byte {
			l := NewLeaf(64)
			writeWord(l.buf, lenOffset, 17)
			return l.Bytes()
		}},
		{"huge length", func() []byte {
			x := NewIndex(64)
			writeWord(x.buf, lenOffset, NullPage)
			return x.Bytes()
		}},
		{"tables overrun page", func() []byte {
			x := NewIndex(64)
			writeWord(x.buf, lenOffset, 5) // 12 + 5*12 > 64
			return x.Bytes()
		}},
		{"key span outside arena", func() []byte {
			l := NewLeaf(64)
			l.Insert(0, []byte("k"), []byte("v"))
			writeSpan(l.keyTable(), 0, span{0, 60})
			return l.Bytes()
		}},
		{"inverted value span", func() []byte {
			l := NewLeaf(64)
			l.Insert(0, []byte("k"), []byte("v"))
			writeSpan(l.auxTable(), 0, span{2, 1})
			return l.Bytes()
		}},
		{"short buffer", func() []byte {
			return NewLeaf(64).Bytes()[:32]
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromBuffer(tc.mutate(), 64)
			if !errors.Is(err, ErrCorruptPage) {
				t.Errorf("Expected ErrCorruptPage, got %v", err)
			}
		})
	}
}

func TestValidatePageSize(t *testing.T) {
	for _, size := range []int{32, 64, 4096, 8192, MaxPageSize} {
		if err := ValidatePageSize(size); err != nil {
			t.Errorf("ValidatePageSize(%d) = %v", size, err)
		}
	}
	for _, size := range []int{0, 16, 31, 100, 4095, 2 * MaxPageSize} {
		if err := ValidatePageSize(size); !errors.Is(err, ErrInvalidPageSize) {
			t.Errorf("ValidatePageSize(%d) = %v, want ErrInvalidPageSize", size, err)
		}
	}
}

func TestNewPanicsOnInvalidPageSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic for page size 100")
		}
	}()
	New(KindLeaf, 100)
}

func TestLoadRejectsNullPage(t *testing.T) {
	_, err := Load(storage.NewMemoryStorage(0), NullPage, 64)
	if !errors.Is(err, ErrCorruptPage) {
		t.Errorf("Expected ErrCorruptPage, got %v", err)
	}
}

func TestLoadPropagatesIOFailure(t *testing.T) {
	_, err := Load(storage.NewMemoryStorage(0), 3, 64)
	if !errors.Is(err, storage.ErrIO) {
		t.Errorf("Expected storage.ErrIO, got %v", err)
	}
}

func TestFreePageLink(t *testing.T) {
	f := NewFree(64)
	if f.Next() != NullPage {
		t.Errorf("Expected fresh free page to end the list")
	}
	f.SetNext(42)

	p, err := FromBuffer(f.Bytes(), 64)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p.(*Free).Next() != 42 {
		t.Errorf("Expected next 42, got %d", p.(*Free).Next())
	}
}
