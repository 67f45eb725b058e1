package bplus

import (
	"fmt"

	"PageKV/page"
	"PageKV/storage"
)

// Create creates (or truncates) a store file at path.
func Create(path string, opts Options) (*Store, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	st, err := storage.CreateFile(path)
	if err != nil {
		return nil, err
	}
	s, err := newStore(st, opts, true)
	if err != nil {
		st.Close()
		return nil, err
	}
	s.log.Info("store created", "path", path, "page_size", opts.PageSize)
	return s, nil
}

// Open opens an existing store file. The page size recorded in the file must
// match opts.PageSize.
func Open(path string, opts Options) (*Store, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	st, err := storage.OpenFile(path)
	if err != nil {
		return nil, err
	}
	s, err := newStore(st, opts, false)
	if err != nil {
		st.Close()
		return nil, err
	}
	s.log.Info("store opened", "path", path, "page_size", opts.PageSize)
	return s, nil
}

// OpenInMemory creates an empty non-durable store. capacity is the number of
// bytes reserved up front.
func OpenInMemory(capacity int, opts Options) (*Store, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	s, err := newStore(storage.NewMemoryStorage(capacity), opts, true)
	if err != nil {
		return nil, err
	}
	s.log.Info("store created", "path", ":memory:", "page_size", opts.PageSize)
	return s, nil
}

// NewStore runs a store on st, initializing it when st is empty.
func NewStore(st storage.Storage, opts Options) (*Store, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	size, err := st.Size()
	if err != nil {
		return nil, err
	}
	return newStore(st, opts, size == 0)
}

func newStore(st storage.Storage, opts Options, initialize bool) (*Store, error) {
	if opts.CachePages > 0 {
		cached, err := storage.NewCachedStorage(st, opts.PageSize, opts.CachePages, opts.CacheMetrics)
		if err != nil {
			return nil, err
		}
		st = cached
	}

	s := &Store{
		st:       st,
		pageSize: opts.PageSize,
		log:      opts.Logger,
	}

	if initialize {
		if err := s.writePage(0, page.NewFileHeader(s.pageSize)); err != nil {
			return nil, fmt.Errorf("write file header: %w", err)
		}
		return s, nil
	}

	if err := s.checkHeader(); err != nil {
		return nil, err
	}
	return s, nil
}

// checkHeader validates page 0 reading only its fixed fields, so a page size
// mismatch is reported even when the file is shorter than one configured page.
func (s *Store) checkHeader() error {
	buf := make([]byte, s.pageSize)
	if err := s.st.Read(0, buf[:page.FileHeaderSize]); err != nil {
		return fmt.Errorf("read file header: %w", err)
	}
	p, err := page.FromBuffer(buf, s.pageSize)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	if p.Kind() != page.KindFileHeader {
		return fmt.Errorf("%w: page 0 is a %v page", ErrCorruptPage, p.Kind())
	}
	return nil
}

// Sync flushes the backing medium.
func (s *Store) Sync() error {
	return s.st.Sync()
}

// Close syncs and releases the backing medium.
func (s *Store) Close() error {
	return s.st.Close()
}

// CacheStats returns the page cache hit and miss counts. Both are zero
// without a cache or without Options.CacheMetrics.
func (s *Store) CacheStats() (hits, misses uint64) {
	if c, ok := s.st.(*storage.CachedStorage); ok {
		c.Wait()
		return c.Hits(), c.Misses()
	}
	return 0, 0
}
