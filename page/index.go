package page

// Index is a page routing keys to child pages. Entry i covers keys from its
// separator up to the next separator; entry 0 also covers everything below.
type Index struct {
	node
}

func NewIndex(pageSize int) *Index {
	return &Index{node{base{newBuffer(KindIndex, pageSize)}, childWidth}}
}

func (x *Index) Kind() Kind { return KindIndex }

// Child returns the page index stored in entry i.
func (x *Index) Child(i int) uint64 {
	return readWord(x.auxTable(), i*childWidth)
}

func (x *Index) SetChild(i int, id uint64) {
	writeWord(x.auxTable(), i*childWidth, id)
}

// Route returns the entry whose child covers key: the closest separator not
// greater than key, or entry 0 when every separator is greater.
func (x *Index) Route(key []byte) int {
	i := Partition(key, x.arena(), x.keyTable(), Upper) - 1
	if i < 0 {
		return 0
	}
	return i
}

// Insert places (key, child) at position i, reporting false if it does not fit.
func (x *Index) Insert(i int, key []byte, child uint64) bool {
	return x.insert(i, Entry{Key: key, Child: child})
}

func (x *Index) Remove(i int) {
	x.remove(i)
}

// Entries returns copies of every entry in key order.
func (x *Index) Entries() []Entry {
	return x.entries()
}

// Fill replaces the page contents with entries, which must be sorted by key.
func (x *Index) Fill(entries []Entry) bool {
	return x.fill(cloneEntries(entries))
}
