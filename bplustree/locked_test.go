package bplus

import (
	"fmt"
	"testing"

	"golang.org/x/sync/errgroup"
)

func TestSyncStoreConcurrentWriters(t *testing.T) {
	s := newTestStore(t, DefaultOptions())
	kv := NewSyncStore(s)

	const writers, perWriter = 8, 150
	var g errgroup.Group
	for w := range writers {
		g.Go(func() error {
			for i := range perWriter {
				k := fmt.Appendf(nil, "w%d-%04d", w, i)
				if err := kv.Set(k, k); err != nil {
					return err
				}
				if i%3 == 0 {
					if err := kv.Delete(k); err != nil {
						return err
					}
				}
				if _, _, err := kv.Lookup(k); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("Concurrent writers failed: %v", err)
	}

	count := 0
	err := kv.Scan(nil, nil, func(key, value []byte) error {
		if string(key) != string(value) {
			return fmt.Errorf("value mismatch for %q", key)
		}
		count++
		return nil
	})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if want := writers * (perWriter - perWriter/3); count != want {
		t.Errorf("Expected %d entries, got %d", want, count)
	}

	out := make([]byte, 16)
	n, found, err := kv.Get([]byte("w0-0001"), out)
	if err != nil || !found || string(out[:n]) != "w0-0001" {
		t.Errorf("Get failed: %q %v %v", out[:n], found, err)
	}
}
