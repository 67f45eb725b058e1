package page

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"slices"
)

const (
	lenOffset      = MagicSize
	nodeHeaderSize = lenOffset + WordSize

	spanSize   = 4 // (start, end) as two big-endian u16
	childWidth = WordSize
)

// Entry is a decoded leaf or index entry. Leaf entries carry Value, index
// entries carry Child.
type Entry struct {
	Key   []byte
	Value []byte
	Child uint64
}

// LeafFootprint returns the bytes a leaf entry occupies in a page: its two
// table spans plus its arena bytes.
func LeafFootprint(keyLen, valueLen int) int {
	return 2*spanSize + keyLen + valueLen
}

// IndexFootprint returns the bytes an index entry occupies in a page.
func IndexFootprint(keyLen int) int {
	return spanSize + childWidth + keyLen
}

// NodeCapacity returns the bytes of an index or leaf page available to entries.
func NodeCapacity(pageSize int) int {
	return pageSize - nodeHeaderSize
}

type span struct {
	start, end int
}

func (s span) len() int { return s.end - s.start }

func (s span) within(limit int) bool {
	return s.start <= s.end && s.end <= limit
}

func readSpan(table []byte, i int) span {
	b := table[i*spanSize : i*spanSize+spanSize]
	return span{
		start: int(binary.BigEndian.Uint16(b[0:2])),
		end:   int(binary.BigEndian.Uint16(b[2:4])),
	}
}

func writeSpan(table []byte, i int, s span) {
	b := table[i*spanSize : i*spanSize+spanSize]
	binary.BigEndian.PutUint16(b[0:2], uint16(s.start))
	binary.BigEndian.PutUint16(b[2:4], uint16(s.end))
}

type slot struct {
	key   span
	value span   // leaves
	child uint64 // index pages
}

// node holds the layout shared by leaf and index pages. aux is the width of
// the per-entry slot following the key table.
type node struct {
	base
	aux int
}

func (n *node) isLeaf() bool { return n.aux == spanSize }

// Len returns the number of entries.
func (n *node) Len() int {
	return int(readWord(n.buf, lenOffset))
}

func (n *node) slotSize() int { return spanSize + n.aux }

func (n *node) arenaStart(count int) int {
	return nodeHeaderSize + count*n.slotSize()
}

func (n *node) keyTable() []byte {
	c := n.Len()
	return n.buf[nodeHeaderSize : nodeHeaderSize+c*spanSize]
}

func (n *node) auxTable() []byte {
	c := n.Len()
	start := nodeHeaderSize + c*spanSize
	return n.buf[start : start+c*n.aux]
}

func (n *node) arena() []byte {
	return n.buf[n.arenaStart(n.Len()):]
}

// check validates the length field and every span against the page size.
func (n *node) check() error {
	raw := readWord(n.buf, lenOffset)
	if raw > uint64(len(n.buf)/4) {
		return fmt.Errorf("%w: %d entries exceed bound %d", ErrCorruptPage, raw, len(n.buf)/4)
	}
	c := int(raw)
	start := n.arenaStart(c)
	if start > len(n.buf) {
		return fmt.Errorf("%w: offset tables for %d entries overrun the page", ErrCorruptPage, c)
	}
	limit := len(n.buf) - start
	for i := 0; i < c; i++ {
		s := n.slot(i)
		if !s.key.within(limit) || (n.isLeaf() && !s.value.within(limit)) {
			return fmt.Errorf("%w: entry %d spans outside the arena", ErrCorruptPage, i)
		}
	}
	return nil
}

func (n *node) slot(i int) slot {
	s := slot{key: readSpan(n.keyTable(), i)}
	if n.isLeaf() {
		s.value = readSpan(n.auxTable(), i)
	} else {
		s.child = readWord(n.auxTable(), i*childWidth)
	}
	return s
}

func (n *node) slots() []slot {
	out := make([]slot, n.Len())
	for i := range out {
		out[i] = n.slot(i)
	}
	return out
}

// writeSlots stores len(slots) and both tables. The arena must already be
// positioned at arenaStart(len(slots)).
func (n *node) writeSlots(slots []slot) {
	c := len(slots)
	writeWord(n.buf, lenOffset, uint64(c))
	keys := n.buf[nodeHeaderSize : nodeHeaderSize+c*spanSize]
	aux := n.buf[nodeHeaderSize+c*spanSize : n.arenaStart(c)]
	for i, s := range slots {
		writeSpan(keys, i, s.key)
		if n.isLeaf() {
			writeSpan(aux, i, s.value)
		} else {
			writeWord(aux, i*childWidth, s.child)
		}
	}
}

// Key returns the key of entry i. The slice aliases the page.
func (n *node) Key(i int) []byte {
	s := readSpan(n.keyTable(), i)
	return n.arena()[s.start:s.end:s.end]
}

// used returns the arena high-water mark.
func (n *node) used() int {
	hw := 0
	for _, s := range n.slots() {
		hw = max(hw, s.key.end, s.value.end)
	}
	return hw
}

// live returns the arena bytes referenced by entries; used()-live() is
// fragmentation left by removals and shrinking overwrites.
func (n *node) live() int {
	total := 0
	for _, s := range n.slots() {
		total += s.key.len() + s.value.len()
	}
	return total
}

// Available returns the bytes an insert could use after compaction.
func (n *node) Available() int {
	return len(n.buf) - n.arenaStart(n.Len()) - n.live()
}

func (n *node) arenaBytes(e Entry) int {
	if n.isLeaf() {
		return len(e.Key) + len(e.Value)
	}
	return len(e.Key)
}

// insert places e at position i. It appends to the arena, compacting first
// when removals left holes in the way. It returns false, leaving the page
// untouched, when e cannot fit.
func (n *node) insert(i int, e Entry) bool {
	c := n.Len()
	need := n.arenaBytes(e)
	newStart := n.arenaStart(c + 1)
	used := n.used()

	if newStart+used+need > len(n.buf) {
		if newStart+n.live()+need > len(n.buf) {
			return false
		}
		n.fill(slices.Insert(n.entries(), i, e))
		return true
	}

	slots := n.slots()
	oldStart := n.arenaStart(c)
	copy(n.buf[newStart:newStart+used], n.buf[oldStart:oldStart+used])

	s := slot{key: span{used, used + len(e.Key)}, child: e.Child}
	copy(n.buf[newStart+s.key.start:], e.Key)
	if n.isLeaf() {
		s.value = span{s.key.end, s.key.end + len(e.Value)}
		copy(n.buf[newStart+s.value.start:], e.Value)
	}
	n.writeSlots(slices.Insert(slots, i, s))
	return true
}

// remove drops entry i. Its arena bytes become a hole reclaimed by the next
// compaction.
func (n *node) remove(i int) {
	c := n.Len()
	used := n.used()
	slots := slices.Delete(n.slots(), i, i+1)

	oldStart, newStart := n.arenaStart(c), n.arenaStart(c-1)
	copy(n.buf[newStart:newStart+used], n.buf[oldStart:oldStart+used])
	clear(n.buf[newStart+used : oldStart+used])
	n.writeSlots(slots)
}

// entries decodes every entry into copies that do not alias the page.
func (n *node) entries() []Entry {
	arena := n.arena()
	out := make([]Entry, n.Len())
	for i := range out {
		s := n.slot(i)
		out[i] = Entry{Key: bytes.Clone(arena[s.key.start:s.key.end]), Child: s.child}
		if n.isLeaf() {
			out[i].Value = bytes.Clone(arena[s.value.start:s.value.end])
		}
	}
	return out
}

// fill rewrites the page with entries packed at the start of the arena. It
// returns false, leaving the page untouched, when they do not fit.
func (n *node) fill(entries []Entry) bool {
	start := n.arenaStart(len(entries))
	total := 0
	for _, e := range entries {
		total += n.arenaBytes(e)
	}
	if start+total > len(n.buf) {
		return false
	}

	clear(n.buf[lenOffset:])
	slots := make([]slot, len(entries))
	off := 0
	for i, e := range entries {
		s := slot{key: span{off, off + len(e.Key)}, child: e.Child}
		copy(n.buf[start+s.key.start:], e.Key)
		off = s.key.end
		if n.isLeaf() {
			s.value = span{off, off + len(e.Value)}
			copy(n.buf[start+s.value.start:], e.Value)
			off = s.value.end
		}
		slots[i] = s
	}
	n.writeSlots(slots)
	return true
}

func cloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = Entry{Key: bytes.Clone(e.Key), Value: bytes.Clone(e.Value), Child: e.Child}
	}
	return out
}
