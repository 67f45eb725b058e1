package page

// Leaf is a page of ordered (key, value) entries.
type Leaf struct {
	node
}

func NewLeaf(pageSize int) *Leaf {
	return &Leaf{node{base{newBuffer(KindLeaf, pageSize)}, spanSize}}
}

func (l *Leaf) Kind() Kind { return KindLeaf }

// Value returns the value of entry i. The slice aliases the page.
func (l *Leaf) Value(i int) []byte {
	s := readSpan(l.auxTable(), i)
	return l.arena()[s.start:s.end:s.end]
}

// Search returns the half-open range [lower, upper) of entries equal to key.
// With unique keys the range is empty or holds exactly one entry.
func (l *Leaf) Search(key []byte) (lower, upper int) {
	arena, keys := l.arena(), l.keyTable()
	return Partition(key, arena, keys, Lower), Partition(key, arena, keys, Upper)
}

// Find returns the position of key and whether it is present. When absent
// the position is where key would be inserted.
func (l *Leaf) Find(key []byte) (int, bool) {
	lower, upper := l.Search(key)
	return lower, upper > lower
}

// Insert places (key, value) at position i, reporting false if it does not fit.
func (l *Leaf) Insert(i int, key, value []byte) bool {
	return l.insert(i, Entry{Key: key, Value: value})
}

func (l *Leaf) Remove(i int) {
	l.remove(i)
}

// Overwrite replaces the value of entry i in place. It reports false when
// value is longer than the bytes the current value occupies.
func (l *Leaf) Overwrite(i int, value []byte) bool {
	s := readSpan(l.auxTable(), i)
	if len(value) > s.len() {
		return false
	}
	arena := l.arena()
	copy(arena[s.start:], value)
	clear(arena[s.start+len(value) : s.end])
	writeSpan(l.auxTable(), i, span{s.start, s.start + len(value)})
	return true
}

// Entries returns copies of every entry in key order.
func (l *Leaf) Entries() []Entry {
	return l.entries()
}

// Fill replaces the page contents with entries, which must be sorted by key.
func (l *Leaf) Fill(entries []Entry) bool {
	return l.fill(cloneEntries(entries))
}
