package bplus

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

func TestIteratorEmptyStore(t *testing.T) {
	s := newTestStore(t, DefaultOptions())

	it := s.SeekGE(nil)
	if it.Valid() || it.Next() || it.Key() != nil || it.Err() != nil {
		t.Errorf("Expected an exhausted iterator on an empty store")
	}
}

func TestIteratorSeekAcrossLeaves(t *testing.T) {
	s := newTestStore(t, DefaultOptions())
	value := bytes.Repeat([]byte("v"), 100)
	key := func(i int) []byte { return fmt.Appendf(nil, "key-%03d", i*2) }

	// even keys only, enough for several leaves
	for i := range 200 {
		mustSet(t, s, key(i), value)
	}
	if d := depth(t, s); d < 2 {
		t.Fatalf("Expected several leaves, got depth %d", d)
	}

	tests := []struct {
		name   string
		target []byte
		first  int // index of the first key returned, -1 for none
	}{
		{"from start", nil, 0},
		{"exact", key(50), 50},
		{"between", []byte("key-101"), 51},
		{"before all", []byte("a"), 0},
		{"last", key(199), 199},
		{"past end", []byte("key-999"), -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			it := s.SeekGE(tc.target)
			if tc.first < 0 {
				if it.Valid() {
					t.Fatalf("Expected no entries, got %q", it.Key())
				}
				return
			}
			want := tc.first
			for ; it.Valid(); it.Next() {
				if !bytes.Equal(it.Key(), key(want)) {
					t.Fatalf("Expected %s, got %s", key(want), it.Key())
				}
				if !bytes.Equal(it.Value(), value) {
					t.Fatalf("Wrong value at %s", it.Key())
				}
				want++
			}
			if err := it.Err(); err != nil {
				t.Fatalf("Iterator failed: %v", err)
			}
			if want != 200 {
				t.Errorf("Scan stopped at %d, want 200", want)
			}
		})
	}
}

func TestScanRange(t *testing.T) {
	s := newTestStore(t, DefaultOptions())
	for _, k := range []string{"apple", "banana", "cherry", "date", "elder"} {
		mustSet(t, s, []byte(k), []byte(k[:1]))
	}

	var got []string
	err := s.Scan([]byte("b"), []byte("date"), func(key, value []byte) error {
		got = append(got, string(key))
		return nil
	})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if fmt.Sprint(got) != "[banana cherry]" {
		t.Errorf("Expected [banana cherry], got %v", got)
	}

	stop := errors.New("stop")
	calls := 0
	err = s.Scan(nil, nil, func(key, value []byte) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Errorf("Expected the callback error to stop the scan, got %v after %d calls", err, calls)
	}
}
