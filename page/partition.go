package page

import "bytes"

// TieBreak decides which side of the partition an equal key falls on.
type TieBreak int

const (
	// Lower treats an equal key as not less than the target.
	Lower TieBreak = iota
	// Upper treats an equal key as less than the target.
	Upper
)

// Partition binary searches a table of (start, end) spans into arena whose
// keys are sorted ascending. It returns the first position whose key is not
// less than target (Lower) or greater than target (Upper), in [0, n].
// Spans must lie within arena; page loading guarantees this.
func Partition(target, arena, offsets []byte, tie TieBreak) int {
	left, right := 0, len(offsets)/spanSize
	for left < right {
		mid := int(uint(left+right) >> 1)
		s := readSpan(offsets, mid)

		cmp := bytes.Compare(arena[s.start:s.end], target)
		if cmp == 0 {
			if tie == Lower {
				cmp = 1
			} else {
				cmp = -1
			}
		}

		if cmp < 0 {
			left = mid + 1
		} else {
			right = mid
		}
	}
	return left
}
