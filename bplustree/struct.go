// Structure of the store
/*
File
 ├── Page 0: File Header (root page, first free page, page size)
 ├── Index Page (separator keys + child page pointers)
 │      └── Child Index Pages ...
 │             └── Leaf Pages (keys + values)
 └── Free Pages (singly linked from the header)

- keys: sorted ascending, unique within a page
- index entry i routes keys in [key[i], key[i+1]); entry 0 has an empty
  separator and takes everything below key[1]
- an emptied leaf is detached and freed; an empty tree has no root page
- the store keeps no tree in memory: every operation re-reads its pages
*/
package bplus

import (
	"errors"
	"fmt"
	"log/slog"

	"PageKV/logging"
	"PageKV/page"
	"PageKV/storage"
)

const (
	DefaultPageSize = 4096
	// MinPageSize is the smallest page size a store accepts.
	MinPageSize = 4096
	MaxPageSize = page.MaxPageSize

	// maxDepth bounds a descent so a cycle in corrupt pages cannot loop forever.
	maxDepth = 64
)

// Options configures a store.
type Options struct {
	// PageSize is fixed for the lifetime of a store. Zero selects DefaultPageSize.
	PageSize int
	// CachePages enables a read cache of that many pages. Zero disables it.
	CachePages int
	// CacheMetrics turns on the cache's hit and miss counters.
	CacheMetrics bool
	// Logger defaults to the global logger tagged with component=bplus.
	Logger *slog.Logger
}

// DefaultOptions returns a 4 KiB page store without a page cache.
func DefaultOptions() Options {
	return Options{
		PageSize: DefaultPageSize,
	}
}

func (o Options) normalize() (Options, error) {
	if o.PageSize == 0 {
		o.PageSize = DefaultPageSize
	}
	if err := page.ValidatePageSize(o.PageSize); err != nil {
		return o, err
	}
	if o.PageSize < MinPageSize {
		return o, fmt.Errorf("%w: %d is below the store minimum %d", ErrInvalidPageSize, o.PageSize, MinPageSize)
	}
	if o.CachePages < 0 {
		return o, fmt.Errorf("invalid cache size %d", o.CachePages)
	}
	if o.Logger == nil {
		o.Logger = logging.WithComponent("bplus")
	}
	return o, nil
}

// Store is a key-value store persisted as pages on a storage medium. It has
// no internal locking; wrap it in a SyncStore to share it between goroutines.
type Store struct {
	st       storage.Storage
	pageSize int
	log      *slog.Logger
}

// frame records one index page on the path from the root to a leaf.
type frame struct {
	id    uint64
	index *page.Index
	slot  int
}

func (s *Store) readPage(id uint64) (page.Page, error) {
	p, err := page.Load(s.st, id, s.pageSize)
	if errors.Is(err, ErrCorruptPage) {
		s.log.Warn("corrupt page", "page", id, "error", err)
	}
	return p, err
}

func (s *Store) writePage(id uint64, p page.Page) error {
	if err := page.Persist(p, s.st, id); err != nil {
		return fmt.Errorf("write page %d: %w", id, err)
	}
	return nil
}

func (s *Store) readHeader() (*page.FileHeader, error) {
	p, err := s.readPage(0)
	if err != nil {
		return nil, fmt.Errorf("read file header: %w", err)
	}
	hdr, ok := p.(*page.FileHeader)
	if !ok {
		return nil, fmt.Errorf("%w: page 0 is a %v page", ErrCorruptPage, p.Kind())
	}
	return hdr, nil
}

// PageSize returns the page size the store was opened with.
func (s *Store) PageSize() int {
	return s.pageSize
}
