// Seed program: creates a sample store with a few thousand records.
// Run: go run ./cmd/seed [path]
// Then inspect: go run ./cmd/inspect_kv data/sample.kv
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	bplus "PageKV/bplustree"
	"PageKV/logging"
)

const (
	defaultPath = "data/sample.kv"
	records     = 5000
)

func main() {
	if err := logging.Init(logging.Config{Level: logging.LevelInfo}); err != nil {
		log.Fatal(err)
	}
	defer logging.Close()

	path := defaultPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Fatalf("mkdir: %v", err)
	}

	store, err := bplus.Create(path, bplus.DefaultOptions())
	if err != nil {
		log.Fatalf("create store: %v", err)
	}
	kv := bplus.NewSyncStore(store)
	defer kv.Close()

	fmt.Printf("Writing %d records to %s...\n", records, path)
	for i := range records {
		if err := kv.Set(key(i), value(i)); err != nil {
			log.Fatalf("set %s: %v", key(i), err)
		}
	}
	// Drop every tenth record so the file carries a free list.
	for i := 0; i < records; i += 10 {
		if err := kv.Delete(key(i)); err != nil {
			log.Fatalf("delete %s: %v", key(i), err)
		}
	}
	if err := kv.Sync(); err != nil {
		log.Fatalf("sync: %v", err)
	}

	if err := verify(context.Background(), kv); err != nil {
		log.Fatalf("verify: %v", err)
	}

	for _, i := range []int{1, 10, 4999} {
		v, found, err := kv.Lookup(key(i))
		if err != nil {
			log.Fatalf("lookup: %v", err)
		}
		fmt.Printf("  %s -> %q (found=%v)\n", key(i), v, found)
	}
	fmt.Println("Done. Inspect with: go run ./cmd/inspect_kv", path)
}

// verify reads every record back from several goroutines.
func verify(ctx context.Context, kv *bplus.SyncStore) error {
	g, ctx := errgroup.WithContext(ctx)
	workers := runtime.GOMAXPROCS(0)
	for w := range workers {
		g.Go(func() error {
			for i := w; i < records; i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				v, found, err := kv.Lookup(key(i))
				if err != nil {
					return err
				}
				if want := i%10 != 0; found != want {
					return fmt.Errorf("%s: found=%v, want %v", key(i), found, want)
				}
				if found && string(v) != string(value(i)) {
					return fmt.Errorf("%s: got %q, want %q", key(i), v, value(i))
				}
			}
			return nil
		})
	}
	return g.Wait()
}

func key(i int) []byte {
	return fmt.Appendf(nil, "user:%06d", i)
}

func value(i int) []byte {
	return fmt.Appendf(nil, "{\"id\":%d,\"name\":\"user-%d\",\"score\":%d}", i, i, i*7%100)
}
