package page

const nextFreeOffset = MagicSize

// Free is a reclaimed page linked into the free list.
type Free struct {
	base
}

func NewFree(pageSize int) *Free {
	f := &Free{base{newBuffer(KindFree, pageSize)}}
	f.SetNext(NullPage)
	return f
}

func (f *Free) Kind() Kind { return KindFree }

// Next returns the following free page, or NullPage at the end of the list.
func (f *Free) Next() uint64 {
	return readWord(f.buf, nextFreeOffset)
}

func (f *Free) SetNext(id uint64) {
	writeWord(f.buf, nextFreeOffset, id)
}
