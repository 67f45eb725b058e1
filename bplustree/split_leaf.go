package bplus

import (
	"fmt"

	"PageKV/page"
)

// splitLeaf writes entries, which overflow one page, into two new leaves and
// links them into the parent in place of the leaf at id, which is retired.
func (m *mutation) splitLeaf(path []frame, id uint64, entries []page.Entry) error {
	mid := splitPoint(entries, func(e page.Entry) int {
		return page.LeafFootprint(len(e.Key), len(e.Value))
	})

	left, right := page.NewLeaf(m.s.pageSize), page.NewLeaf(m.s.pageSize)
	if !left.Fill(entries[:mid]) || !right.Fill(entries[mid:]) {
		return fmt.Errorf("%w: leaf entries do not fit two pages", ErrEntryTooLarge)
	}

	leftID, rightID, err := m.writePair(left, right)
	if err != nil {
		return err
	}
	m.retire(id)
	m.s.log.Debug("leaf split", "page", id, "left", leftID, "right", rightID, "entries", len(entries))

	return m.insertIntoParent(path, leftID, entries[mid].Key, rightID)
}

// writePair stores the two halves of a split on newly allocated pages.
func (m *mutation) writePair(left, right page.Page) (uint64, uint64, error) {
	leftID, err := m.allocate()
	if err != nil {
		return 0, 0, err
	}
	rightID, err := m.allocate()
	if err != nil {
		return 0, 0, err
	}
	if err := m.s.writePage(leftID, left); err != nil {
		return 0, 0, err
	}
	if err := m.s.writePage(rightID, right); err != nil {
		return 0, 0, err
	}
	return leftID, rightID, nil
}

// splitPoint returns the position in [1, len(entries)-1] that balances the
// bytes on both sides, minimizing the larger half.
func splitPoint(entries []page.Entry, footprint func(page.Entry) int) int {
	total := 0
	for _, e := range entries {
		total += footprint(e)
	}

	best, bestSize := 1, -1
	left := 0
	for i := 1; i < len(entries); i++ {
		left += footprint(entries[i-1])
		size := max(left, total-left)
		if bestSize < 0 || size < bestSize {
			best, bestSize = i, size
		}
	}
	return best
}
