package bplus

import (
	"slices"

	"PageKV/page"
)

// insertIntoParent replaces the split child at the end of path with leftID
// and links rightID after it. Writing the parent is what makes the split
// visible. With an empty path the split page was the root and a new root is
// created above both halves.
func (m *mutation) insertIntoParent(path []frame, leftID uint64, sep []byte, rightID uint64) error {
	if len(path) == 0 {
		rootID, err := m.allocate()
		if err != nil {
			return err
		}
		root := page.NewIndex(m.s.pageSize)
		root.Fill([]page.Entry{
			{Child: leftID},
			{Key: sep, Child: rightID},
		})
		if err := m.s.writePage(rootID, root); err != nil {
			return err
		}
		m.s.log.Debug("new root", "page", rootID, "left", leftID, "right", rightID)
		m.setRoot(rootID)
		return nil
	}

	f := path[len(path)-1]
	f.index.SetChild(f.slot, leftID)
	pos := f.slot + 1
	if f.index.Insert(pos, sep, rightID) {
		return m.s.writePage(f.id, f.index)
	}

	entries := slices.Insert(f.index.Entries(), pos, page.Entry{Key: sep, Child: rightID})
	return m.splitInternal(path[:len(path)-1], f.id, entries)
}
