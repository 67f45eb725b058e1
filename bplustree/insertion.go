package bplus

import (
	"fmt"
	"slices"

	"PageKV/page"
)

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key []byte, value []byte) error {
	if err := s.checkEntry(key, value); err != nil {
		return err
	}
	m, err := s.begin()
	if err != nil {
		return err
	}

	// If tree is empty
	root := m.hdr.RootPage()
	if root == page.NullPage {
		id, err := m.allocate()
		if err != nil {
			return err
		}
		leaf := page.NewLeaf(s.pageSize)
		leaf.Insert(0, key, value)
		if err := s.writePage(id, leaf); err != nil {
			return err
		}
		m.setRoot(id)
		return m.finish()
	}

	path, leafID, leaf, err := s.findLeaf(root, key)
	if err != nil {
		return err
	}

	i, found := leaf.Find(key)
	if found {
		if leaf.Overwrite(i, value) {
			return s.writePage(leafID, leaf)
		}
		leaf.Remove(i)
	}
	if leaf.Insert(i, key, value) {
		return s.writePage(leafID, leaf)
	}

	entries := slices.Insert(leaf.Entries(), i, page.Entry{Key: key, Value: value})
	if err := m.splitLeaf(path, leafID, entries); err != nil {
		return err
	}
	return m.finish()
}

// checkEntry rejects pairs taking more than half of a page, which is what
// guarantees that an overflowing page can always be split in two.
func (s *Store) checkEntry(key, value []byte) error {
	limit := page.NodeCapacity(s.pageSize) / 2
	if page.LeafFootprint(len(key), len(value)) > limit || page.IndexFootprint(len(key)) > limit {
		return fmt.Errorf("%w: key %d bytes, value %d bytes, page size %d",
			ErrEntryTooLarge, len(key), len(value), s.pageSize)
	}
	return nil
}

// MaxEntrySize returns the largest len(key)+len(value) accepted by Set.
func (s *Store) MaxEntrySize() int {
	return page.NodeCapacity(s.pageSize)/2 - page.LeafFootprint(0, 0)
}
