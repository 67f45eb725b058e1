package page

const (
	rootPageOffset      = MagicSize
	firstFreePageOffset = rootPageOffset + WordSize
	pageSizeOffset      = firstFreePageOffset + WordSize

	// FileHeaderSize is the number of meaningful bytes in a file header page.
	FileHeaderSize = pageSizeOffset + WordSize
)

// FileHeader is page 0 of every store.
type FileHeader struct {
	base
}

// NewFileHeader returns a header for an empty store.
func NewFileHeader(pageSize int) *FileHeader {
	h := &FileHeader{base{newBuffer(KindFileHeader, pageSize)}}
	h.SetRootPage(NullPage)
	h.SetFirstFreePage(NullPage)
	writeWord(h.buf, pageSizeOffset, uint64(pageSize))
	return h
}

func (h *FileHeader) Kind() Kind { return KindFileHeader }

// RootPage returns the root of the tree, or NullPage for an empty tree.
func (h *FileHeader) RootPage() uint64 {
	return readWord(h.buf, rootPageOffset)
}

func (h *FileHeader) SetRootPage(id uint64) {
	writeWord(h.buf, rootPageOffset, id)
}

// FirstFreePage returns the head of the free list, or NullPage.
func (h *FileHeader) FirstFreePage() uint64 {
	return readWord(h.buf, firstFreePageOffset)
}

func (h *FileHeader) SetFirstFreePage(id uint64) {
	writeWord(h.buf, firstFreePageOffset, id)
}

// PageSize returns the page size recorded when the store was created.
func (h *FileHeader) PageSize() uint64 {
	return readWord(h.buf, pageSizeOffset)
}
