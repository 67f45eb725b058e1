package storage

import (
	"fmt"

	"github.com/dgraph-io/ristretto/v2"
)

// CachedStorage keeps recently read pages of an inner Storage in a ristretto
// cache. Only whole, page-aligned reads are served from or added to the cache.
// Every write goes straight to the inner medium and evicts the pages it
// overlaps before returning, so a later read never observes stale bytes.
type CachedStorage struct {
	inner    Storage
	pageSize uint64
	cache    *ristretto.Cache[uint64, []byte]
}

// NewCachedStorage wraps inner with a cache holding up to pages pages.
// metrics enables the hit and miss counters behind Hits and Misses.
func NewCachedStorage(inner Storage, pageSize int, pages int, metrics bool) (*CachedStorage, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("invalid page size %d for cache", pageSize)
	}
	if pages <= 0 {
		return nil, fmt.Errorf("invalid cache capacity %d", pages)
	}

	cache, err := ristretto.NewCache(&ristretto.Config[uint64, []byte]{
		NumCounters:        int64(pages) * 10,
		MaxCost:            int64(pages),
		BufferItems:        64,
		Metrics:            metrics,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create page cache: %w", err)
	}

	return &CachedStorage{
		inner:    inner,
		pageSize: uint64(pageSize),
		cache:    cache,
	}, nil
}

func (c *CachedStorage) Read(offset uint64, buf []byte) error {
	pageID, whole := c.wholePage(offset, len(buf))
	if !whole {
		return c.inner.Read(offset, buf)
	}

	if data, ok := c.cache.Get(pageID); ok && len(data) == len(buf) {
		copy(buf, data)
		return nil
	}

	if err := c.inner.Read(offset, buf); err != nil {
		return err
	}

	// the cache owns its copy; callers are free to mutate buf
	c.cache.Set(pageID, append([]byte(nil), buf...), 1)
	return nil
}

func (c *CachedStorage) Write(offset uint64, buf []byte) error {
	err := c.inner.Write(offset, buf)
	c.invalidate(offset, len(buf))
	return err
}

func (c *CachedStorage) Size() (uint64, error) {
	return c.inner.Size()
}

func (c *CachedStorage) Sync() error {
	return c.inner.Sync()
}

// Close releases the cache and closes the inner medium.
func (c *CachedStorage) Close() error {
	c.cache.Close()
	return c.inner.Close()
}

// Wait blocks until buffered cache admissions have been applied.
func (c *CachedStorage) Wait() {
	c.cache.Wait()
}

// Hits returns the number of reads served from the cache, or 0 without metrics.
func (c *CachedStorage) Hits() uint64 {
	return c.cache.Metrics.Hits()
}

// Misses returns the number of page reads that went to the inner medium.
func (c *CachedStorage) Misses() uint64 {
	return c.cache.Metrics.Misses()
}

func (c *CachedStorage) wholePage(offset uint64, n int) (uint64, bool) {
	if uint64(n) != c.pageSize || offset%c.pageSize != 0 {
		return 0, false
	}
	return offset / c.pageSize, true
}

// invalidate drops every cached page touched by [offset, offset+n). Wait
// drains admissions still queued from earlier reads so none of them can
// resurrect an old copy afterwards.
func (c *CachedStorage) invalidate(offset uint64, n int) {
	if n == 0 {
		return
	}
	first := offset / c.pageSize
	last := (offset + uint64(n) - 1) / c.pageSize
	for id := first; id <= last; id++ {
		c.cache.Del(id)
	}
	c.cache.Wait()
}
