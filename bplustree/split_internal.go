package bplus

import (
	"fmt"

	"PageKV/page"
)

// splitInternal divides an overflowing index page into two new pages. The
// first separator of the right half moves up to the parent and the right
// page's entry 0 keeps only its child.
func (m *mutation) splitInternal(path []frame, id uint64, entries []page.Entry) error {
	mid := splitPoint(entries, func(e page.Entry) int {
		return page.IndexFootprint(len(e.Key))
	})
	sep := entries[mid].Key

	rightEntries := append([]page.Entry{{Child: entries[mid].Child}}, entries[mid+1:]...)

	left, right := page.NewIndex(m.s.pageSize), page.NewIndex(m.s.pageSize)
	if !left.Fill(entries[:mid]) || !right.Fill(rightEntries) {
		return fmt.Errorf("%w: index entries do not fit two pages", ErrEntryTooLarge)
	}

	leftID, rightID, err := m.writePair(left, right)
	if err != nil {
		return err
	}
	m.retire(id)
	m.s.log.Debug("index split", "page", id, "left", leftID, "right", rightID, "separator", len(sep))

	return m.insertIntoParent(path, leftID, sep, rightID)
}
