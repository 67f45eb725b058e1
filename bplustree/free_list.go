package bplus

import (
	"fmt"

	"PageKV/page"
)

// mutation carries the file header through the page writes of one Set or
// Delete. Content only ever goes to freshly allocated pages until a single
// page write (a parent index or the header) links it in; pages replaced that
// way are retired and pushed on the free list by finish. A failed write
// therefore leaks pages at worst and never loses stored entries.
type mutation struct {
	s       *Store
	hdr     *page.FileHeader
	dirty   bool
	retired []uint64
}

func (s *Store) begin() (*mutation, error) {
	hdr, err := s.readHeader()
	if err != nil {
		return nil, err
	}
	return &mutation{s: s, hdr: hdr}, nil
}

func (m *mutation) setRoot(id uint64) {
	m.hdr.SetRootPage(id)
	m.dirty = true
	m.s.log.Debug("root changed", "root", id)
}

// allocate returns a page for new content, popping the free list before
// extending the medium. A popped page is unlinked on disk before it is
// returned, so it is never both listed as free and in use.
func (m *mutation) allocate() (uint64, error) {
	if head := m.hdr.FirstFreePage(); head != page.NullPage {
		p, err := m.s.readPage(head)
		if err != nil {
			return 0, fmt.Errorf("read free page: %w", err)
		}
		free, ok := p.(*page.Free)
		if !ok {
			return 0, fmt.Errorf("%w: free list entry %d is a %v page", ErrCorruptPage, head, p.Kind())
		}
		m.hdr.SetFirstFreePage(free.Next())
		if err := m.s.writePage(0, m.hdr); err != nil {
			m.hdr.SetFirstFreePage(head)
			return 0, fmt.Errorf("unlink free page %d: %w", head, err)
		}
		m.s.log.Debug("page reused", "page", head)
		return head, nil
	}

	size, err := m.s.st.Size()
	if err != nil {
		return 0, err
	}
	ps := uint64(m.s.pageSize)
	id := (size + ps - 1) / ps

	// Initialize the new page with zeros so a second allocation in the same
	// operation sees the extended medium.
	if err := m.s.st.Write(page.Offset(id, m.s.pageSize), make([]byte, ps)); err != nil {
		return 0, fmt.Errorf("failed to allocate page %d: %w", id, err)
	}
	m.s.log.Debug("page allocated", "page", id)
	return id, nil
}

// retire marks id for release once the tree no longer references it.
func (m *mutation) retire(id uint64) {
	m.retired = append(m.retired, id)
}

// finish writes the header if the root changed, then frees retired pages.
// The tree change is durable once the header (or the parent page written
// before finish) is; an error from the release only leaks pages.
func (m *mutation) finish() error {
	if err := m.commit(); err != nil {
		return err
	}
	if len(m.retired) == 0 {
		return nil
	}

	head := m.hdr.FirstFreePage()
	for _, id := range m.retired {
		free := page.NewFree(m.s.pageSize)
		free.SetNext(head)
		if err := m.s.writePage(id, free); err != nil {
			return err
		}
		head = id
		m.s.log.Debug("page freed", "page", id)
	}
	m.retired = nil
	m.hdr.SetFirstFreePage(head)
	m.dirty = true
	return m.commit()
}

func (m *mutation) commit() error {
	if !m.dirty {
		return nil
	}
	if err := m.s.writePage(0, m.hdr); err != nil {
		return fmt.Errorf("write file header: %w", err)
	}
	m.dirty = false
	return nil
}

// FreePages returns the page indexes on the free list, head first.
func (s *Store) FreePages() ([]uint64, error) {
	hdr, err := s.readHeader()
	if err != nil {
		return nil, err
	}
	size, err := s.st.Size()
	if err != nil {
		return nil, err
	}
	limit := size / uint64(s.pageSize)

	var ids []uint64
	for id := hdr.FirstFreePage(); id != page.NullPage; {
		if uint64(len(ids)) >= limit {
			return nil, fmt.Errorf("%w: free list longer than the file", ErrCorruptPage)
		}
		p, err := s.readPage(id)
		if err != nil {
			return nil, err
		}
		free, ok := p.(*page.Free)
		if !ok {
			return nil, fmt.Errorf("%w: free list entry %d is a %v page", ErrCorruptPage, id, p.Kind())
		}
		ids = append(ids, id)
		id = free.Next()
	}
	return ids, nil
}
