package bplus

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

func TestInspectEmptyStore(t *testing.T) {
	s := newTestStore(t, DefaultOptions())

	var buf bytes.Buffer
	if err := s.InspectTo(&buf); err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"root=null", "first_free=null", "page_size=4096", "(empty tree)", "Free pages: []"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestInspectFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.kv")
	s, err := Create(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	value := bytes.Repeat([]byte("v"), 100)
	for i := range 36 {
		mustSet(t, s, fmt.Appendf(nil, "key-%03d", i), value)
	}
	mustSet(t, s, []byte("bin"), []byte{0, 1, 2})
	if err := s.Delete([]byte("bin")); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	mustSet(t, s, []byte("zz"), []byte{0xff, 0x00})
	s.Close()

	var buf bytes.Buffer
	if err := InspectFileTo(&buf, path, DefaultPageSize); err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Store file: " + path,
		"root=4",
		"[page 4] INDEX entries=2",
		`children=[2 3]`,
		"[page 2] LEAF entries=18",
		"Free pages: [1]",
		`"key-000" -> "vvvv`,
		`"zz" -> 0xff00`,
		"Level 1:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte("abc"), `"abc"`},
		{[]byte{}, `""`},
		{[]byte{0x00, 0x7f}, "0x007f"},
		{bytes.Repeat([]byte("a"), 40), `"` + strings.Repeat("a", 32) + `"...`},
	}
	for _, tc := range tests {
		if got := formatBytes(tc.in); got != tc.want {
			t.Errorf("formatBytes(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
