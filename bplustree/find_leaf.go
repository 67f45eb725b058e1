package bplus

import (
	"fmt"

	"PageKV/page"
)

// findLeaf descends from root to the leaf covering key, returning the index
// pages passed on the way.
func (s *Store) findLeaf(root uint64, key []byte) ([]frame, uint64, *page.Leaf, error) {
	var path []frame
	id := root
	for depth := 0; depth < maxDepth; depth++ {
		p, err := s.readPage(id)
		if err != nil {
			return nil, 0, nil, err
		}
		switch pg := p.(type) {
		case *page.Leaf:
			return path, id, pg, nil
		case *page.Index:
			if pg.Len() == 0 {
				return nil, 0, nil, fmt.Errorf("%w: index page %d has no entries", ErrCorruptPage, id)
			}
			slot := pg.Route(key)
			path = append(path, frame{id: id, index: pg, slot: slot})
			id = pg.Child(slot)
		default:
			return nil, 0, nil, fmt.Errorf("%w: page %d in the tree is a %v page", ErrCorruptPage, id, p.Kind())
		}
	}
	return nil, 0, nil, fmt.Errorf("%w: tree deeper than %d levels", ErrCorruptPage, maxDepth)
}
