package bplus

import (
	"PageKV/page"
)

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key []byte) error {
	m, err := s.begin()
	if err != nil {
		return err
	}
	root := m.hdr.RootPage()
	if root == page.NullPage {
		return nil
	}

	path, leafID, leaf, err := s.findLeaf(root, key)
	if err != nil {
		return err
	}
	i, found := leaf.Find(key)
	if !found {
		return nil
	}

	leaf.Remove(i)
	if leaf.Len() > 0 {
		return s.writePage(leafID, leaf)
	}

	if err := m.detach(path, leafID); err != nil {
		return err
	}
	return m.finish()
}

// detach unlinks the empty page id from its parent, cascading up through
// parents that become empty. A root index left with a single child is
// replaced by that child. Unlinked pages are only retired; they reach the
// free list after the parent (or header) no longer points at them.
func (m *mutation) detach(path []frame, id uint64) error {
	m.retire(id)
	if len(path) == 0 {
		m.setRoot(page.NullPage)
		return nil
	}

	f := path[len(path)-1]
	if f.index.Len() == 1 {
		return m.detach(path[:len(path)-1], f.id)
	}
	dropEntry(f.index, f.slot)

	if len(path) == 1 && f.index.Len() == 1 {
		m.retire(f.id)
		m.setRoot(f.index.Child(0))
		return nil
	}
	return m.s.writePage(f.id, f.index)
}

// dropEntry removes entry i, keeping entry 0's separator empty.
func dropEntry(x *page.Index, i int) {
	if i > 0 {
		x.Remove(i)
		return
	}
	entries := x.Entries()[1:]
	entries[0].Key = nil
	x.Fill(entries)
}
