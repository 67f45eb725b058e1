package bplus

import (
	"bytes"
	"fmt"

	"PageKV/page"
)

// Iterator provides a forward-only range scan over the leaves. It reads pages
// as it goes; any Set or Delete on the store invalidates it.
type Iterator struct {
	s    *Store
	path []frame
	leaf *page.Leaf
	pos  int
	err  error
}

// SeekGE positions the iterator at the first key >= target. A nil target
// starts at the smallest key.
func (s *Store) SeekGE(target []byte) *Iterator {
	it := &Iterator{s: s}
	hdr, err := s.readHeader()
	if err != nil {
		it.err = err
		return it
	}
	root := hdr.RootPage()
	if root == page.NullPage {
		return it
	}

	path, _, leaf, err := s.findLeaf(root, target)
	if err != nil {
		it.err = err
		return it
	}
	it.path, it.leaf = path, leaf
	it.pos, _ = leaf.Find(target)
	if it.pos >= leaf.Len() {
		it.nextLeaf()
	}
	return it
}

// Valid reports whether the iterator is positioned at an entry.
func (it *Iterator) Valid() bool {
	return it.err == nil && it.leaf != nil
}

// Next advances the iterator. Returns false when exhausted.
func (it *Iterator) Next() bool {
	if !it.Valid() {
		return false
	}
	it.pos++
	if it.pos >= it.leaf.Len() {
		it.nextLeaf()
	}
	return it.Valid()
}

// Key returns the current key. The slice is valid until the next call to Next.
func (it *Iterator) Key() []byte {
	if !it.Valid() {
		return nil
	}
	return it.leaf.Key(it.pos)
}

// Value returns the current value. The slice is valid until the next call to Next.
func (it *Iterator) Value() []byte {
	if !it.Valid() {
		return nil
	}
	return it.leaf.Value(it.pos)
}

// Err returns the error that stopped the scan, if any.
func (it *Iterator) Err() error {
	return it.err
}

// nextLeaf moves to the first entry of the following non-empty leaf, climbing
// the path until an index page has a child to the right.
func (it *Iterator) nextLeaf() {
	it.leaf = nil
	for len(it.path) > 0 {
		f := &it.path[len(it.path)-1]
		if f.slot+1 >= f.index.Len() {
			it.path = it.path[:len(it.path)-1]
			continue
		}
		f.slot++
		if it.descend(f.index.Child(f.slot)) {
			return
		}
		if it.err != nil {
			return
		}
	}
}

// descend walks to the leftmost leaf under id. It returns false when that leaf
// is empty or an error occurred.
func (it *Iterator) descend(id uint64) bool {
	for len(it.path) < maxDepth {
		p, err := it.s.readPage(id)
		if err != nil {
			it.err = err
			return false
		}
		switch pg := p.(type) {
		case *page.Leaf:
			if pg.Len() == 0 {
				return false
			}
			it.leaf, it.pos = pg, 0
			return true
		case *page.Index:
			if pg.Len() == 0 {
				it.err = fmt.Errorf("%w: index page %d has no entries", ErrCorruptPage, id)
				return false
			}
			it.path = append(it.path, frame{id: id, index: pg})
			id = pg.Child(0)
		default:
			it.err = fmt.Errorf("%w: page %d in the tree is a %v page", ErrCorruptPage, id, p.Kind())
			return false
		}
	}
	it.err = fmt.Errorf("%w: tree deeper than %d levels", ErrCorruptPage, maxDepth)
	return false
}

// Scan calls fn for every pair with start <= key < end in key order. A nil
// end scans to the last key. fn must not modify the store.
func (s *Store) Scan(start, end []byte, fn func(key, value []byte) error) error {
	it := s.SeekGE(start)
	for ; it.Valid(); it.Next() {
		if end != nil && bytes.Compare(it.Key(), end) >= 0 {
			break
		}
		if err := fn(it.Key(), it.Value()); err != nil {
			return err
		}
	}
	return it.Err()
}
